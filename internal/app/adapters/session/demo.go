package session

import (
	"chatkeywords/internal/app/domain/chat"
	"time"
)

var demoCandidates = []chat.RawCandidate{
	{Kind: chat.KindTip, AmountText: "100トークン", CommentText: "ありがとう！", Username: "user1"},
	{Kind: chat.KindTip, AmountText: "50トークン", CommentText: "ダンス", Username: "user2", IsHighlightMenu: true},
	{Kind: chat.KindTip, AmountText: "50トークン", CommentText: "ダンス", Username: "user3", IsHighlightMenu: true},
	{Kind: chat.KindTip, AmountText: "50トークン", CommentText: "ダンス", Username: "user2", IsHighlightMenu: true},
	{Kind: chat.KindTip, AmountText: "500トークン", CommentText: "ゴールまであと少し", Username: "user4", IsEpicGoal: true},
	{Kind: chat.KindPlugin, PluginName: "Wheel of Fortune", PluginAccentText: "投げキッス", Username: "user1"},
}

func demoEvents(now time.Time) []chat.Event {
	events := make([]chat.Event, len(demoCandidates))
	for i, c := range demoCandidates {
		events[i] = chat.Classify(c, now.Add(time.Duration(i)*time.Second))
	}
	return events
}
