package extractor

import (
	"chatkeywords/internal/app/adapters/metrics"
	"chatkeywords/internal/app/domain/chat"
	"github.com/andybalholm/cascadia"
	"github.com/go-shiori/dom"
	"golang.org/x/net/html"
	"iter"
	"net/url"
	"slices"
	"strings"
)

const wheelOfFortune = "Wheel of Fortune"

var (
	selRows          = cascadia.MustCompile(".messages .message")
	selTipBody       = cascadia.MustCompile(".tip-comment-body")
	selTipAmount     = cascadia.MustCompile(".tip-amount-highlight")
	selUsername      = cascadia.MustCompile(".user-levels-username-text")
	selHighlightMenu = cascadia.MustCompile(".tip-comment.tip-comment-with-highlight.tip-menu")
	selEpicGoal      = cascadia.MustCompile(".tip-comment-epic-goal")
	selPluginName    = cascadia.MustCompile(".plugin-message-plugin-name")
	selPluginAccent  = cascadia.MustCompile(".plugin-message-accent")
)

type Stripchat struct {
	hosts []string
}

func NewStripchat(hosts ...string) *Stripchat {
	if len(hosts) == 0 {
		hosts = []string{"stripchat.com"}
	}
	return &Stripchat{hosts: hosts}
}

func (s *Stripchat) Name() string {
	return "stripchat"
}

func (s *Stripchat) Match(u *url.URL) bool {
	host := strings.ToLower(u.Hostname())
	if host == "" {
		host = strings.ToLower(u.Host)
	}
	for _, h := range s.hosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

func (s *Stripchat) Candidates(doc *html.Node) iter.Seq[chat.RawCandidate] {
	return func(yield func(chat.RawCandidate) bool) {
		if doc == nil {
			return
		}

		for _, row := range selRows.MatchAll(doc) {
			matched := false

			if c, ok := tipCandidate(row); ok {
				matched = true
				if !yield(c) {
					return
				}
			}

			if c, ok := pluginCandidate(row); ok {
				matched = true
				if !yield(c) {
					return
				}
			}

			if !matched {
				metrics.SkippedRows.Inc()
			}
		}
	}
}

func tipCandidate(row *html.Node) (chat.RawCandidate, bool) {
	body := find(row, selTipBody)
	amount := find(row, selTipAmount)
	username := find(row, selUsername)
	if len(body) == 0 || len(amount) == 0 || len(username) == 0 {
		return chat.RawCandidate{}, false
	}

	return chat.RawCandidate{
		Kind:            chat.KindTip,
		CommentText:     strings.TrimSpace(text(body)),
		AmountText:      strings.TrimSpace(text(amount)),
		Username:        strings.TrimSpace(text(username)),
		IsHighlightMenu: len(find(row, selHighlightMenu)) > 0,
		IsEpicGoal:      len(find(row, selEpicGoal)) > 0,
	}, true
}

func pluginCandidate(row *html.Node) (chat.RawCandidate, bool) {
	if !hasClass(row, "plugin-message") {
		return chat.RawCandidate{}, false
	}

	name := text(find(row, selPluginName))
	if !strings.Contains(name, wheelOfFortune) {
		return chat.RawCandidate{}, false
	}

	prize := strings.TrimSpace(text(find(row, selPluginAccent)))
	username := strings.TrimSpace(text(find(row, selUsername)))
	if prize == "" || username == "" {
		return chat.RawCandidate{}, false
	}

	return chat.RawCandidate{
		Kind:             chat.KindPlugin,
		Username:         username,
		PluginName:       name,
		PluginAccentText: prize,
	}, true
}

// find matches descendants of n only, never n itself.
func find(n *html.Node, sel cascadia.Selector) []*html.Node {
	var out []*html.Node
	for _, c := range dom.Children(n) {
		out = append(out, sel.MatchAll(c)...)
	}
	return out
}

func text(nodes []*html.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(dom.TextContent(n))
	}
	return b.String()
}

func hasClass(n *html.Node, class string) bool {
	return slices.Contains(strings.Fields(dom.ClassName(n)), class)
}
