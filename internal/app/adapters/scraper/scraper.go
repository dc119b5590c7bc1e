package scraper

import (
	"chatkeywords/internal/app/adapters/extractor"
	"chatkeywords/internal/app/adapters/metrics"
	"chatkeywords/internal/app/domain/chat"
	"chatkeywords/internal/app/ports"
	"chatkeywords/pkg/logger"
	"context"
	"net/url"
	"strings"
	"time"
)

type Scraper struct {
	log       logger.Logger
	fetcher   ports.FetcherPort
	extractor *extractor.Extractor
	now       func() time.Time
}

func New(log logger.Logger, fetcher ports.FetcherPort, ex *extractor.Extractor) *Scraper {
	return &Scraper{
		log:       log,
		fetcher:   fetcher,
		extractor: ex,
		now:       time.Now,
	}
}

// FetchAndExtract returns either every event of the page or an error, never a
// partial list.
func (s *Scraper) FetchAndExtract(ctx context.Context, rawURL string) ([]chat.Event, error) {
	u, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}
	rawURL = u.String()

	start := time.Now()
	body, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		s.log.Warn("Failed to fetch chat page", "url", rawURL, "error", err.Error())
		return nil, err
	}

	events, err := s.extract(u, body)
	if err != nil {
		metrics.FetchErrors.WithLabelValues("parse").Inc()
		return nil, &chat.FetchError{URL: rawURL, Err: err}
	}

	// the caller may have gone away while the page was parsed
	if err := ctx.Err(); err != nil {
		metrics.FetchErrors.WithLabelValues("canceled").Inc()
		return nil, &chat.FetchError{URL: rawURL, Err: err}
	}

	metrics.FetchDuration.Observe(time.Since(start).Seconds())
	s.log.Info("Chat page extracted", "url", rawURL, "events", len(events))
	return events, nil
}

// ExtractHTML runs the pipeline over an already downloaded document. site picks
// the layout by host; empty means the default layout.
func (s *Scraper) ExtractHTML(site string, body []byte) ([]chat.Event, error) {
	return s.extract(&url.URL{Host: strings.ToLower(site)}, body)
}

func (s *Scraper) extract(u *url.URL, body []byte) ([]chat.Event, error) {
	doc, err := extractor.ParseBytes(body)
	if err != nil {
		return nil, err
	}

	events := chat.ClassifyAll(s.extractor.Extract(u, doc), s.now())
	for _, e := range events {
		metrics.ExtractedEvents.WithLabelValues(string(e.Type)).Inc()
	}
	return events, nil
}

func ValidateURL(rawURL string) (*url.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, &chat.ValidationError{Field: "url", Reason: "is required"}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &chat.ValidationError{Field: "url", Reason: err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &chat.ValidationError{Field: "url", Reason: "scheme must be http or https"}
	}
	if u.Host == "" {
		return nil, &chat.ValidationError{Field: "url", Reason: "host is required"}
	}
	return u, nil
}
