package extractor

import (
	"bytes"
	"chatkeywords/internal/app/domain/chat"
	"chatkeywords/pkg/logger"
	"fmt"
	"golang.org/x/net/html"
	"io"
	"iter"
	"net/url"
	"strings"
)

// Matcher is a structural extraction strategy for one site layout.
type Matcher interface {
	Name() string
	Match(u *url.URL) bool
	Candidates(doc *html.Node) iter.Seq[chat.RawCandidate]
}

type Extractor struct {
	log      logger.Logger
	fallback Matcher
	matchers []Matcher
}

func New(log logger.Logger, fallback Matcher, matchers ...Matcher) *Extractor {
	return &Extractor{
		log:      log,
		fallback: fallback,
		matchers: matchers,
	}
}

// For picks the first matcher accepting u, or the fallback layout.
func (e *Extractor) For(u *url.URL) Matcher {
	if u != nil {
		for _, m := range e.matchers {
			if m.Match(u) {
				return m
			}
		}
	}
	return e.fallback
}

// ForHost is For for callers that only know the site host.
func (e *Extractor) ForHost(host string) Matcher {
	if host == "" {
		return e.fallback
	}
	return e.For(&url.URL{Host: strings.ToLower(host)})
}

func (e *Extractor) Extract(u *url.URL, doc *html.Node) iter.Seq[chat.RawCandidate] {
	m := e.For(u)
	e.log.Debug("Extracting chat rows", "matcher", m.Name())
	return m.Candidates(doc)
}

func ParseHTML(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

func ParseBytes(b []byte) (*html.Node, error) {
	return ParseHTML(bytes.NewReader(b))
}
