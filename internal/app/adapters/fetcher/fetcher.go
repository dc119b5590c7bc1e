package fetcher

import (
	"chatkeywords/internal/app/adapters/metrics"
	"chatkeywords/internal/app/domain/chat"
	"chatkeywords/pkg/logger"
	"context"
	"errors"
	"fmt"
	"github.com/dustin/go-humanize"
	"github.com/go-resty/resty/v2"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"
)

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// DefaultMaxBodySize bounds a chat page read into memory.
const DefaultMaxBodySize = 16 << 20

type Fetcher struct {
	log     logger.Logger
	client  *resty.Client
	maxBody int64
}

type Option func(*Fetcher)

func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBody = n
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.client.SetHeader("User-Agent", ua)
		}
	}
}

// New wraps the shared http client; its timeout and proxy transport apply to
// every fetch.
func New(log logger.Logger, client *http.Client, opts ...Option) *Fetcher {
	f := &Fetcher{
		log:     log,
		maxBody: DefaultMaxBodySize,
		client: resty.NewWithClient(client).
			SetHeader("User-Agent", DefaultUserAgent).
			SetHeader("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8").
			SetHeader("Accept-Language", "ja,en-US;q=0.9,en;q=0.8"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(rawURL)
	if err != nil {
		return nil, f.networkError(rawURL, err)
	}

	raw := resp.RawBody()
	defer raw.Close()

	body, err := io.ReadAll(io.LimitReader(raw, f.maxBody+1))
	if err != nil {
		return nil, f.networkError(rawURL, err)
	}

	if !resp.IsSuccess() {
		metrics.FetchErrors.WithLabelValues("status").Inc()
		return nil, &chat.FetchError{
			URL:    rawURL,
			Status: resp.StatusCode(),
			Err:    fmt.Errorf("unexpected status %s: %s", resp.Status(), snippet(body)),
		}
	}

	if int64(len(body)) > f.maxBody {
		metrics.FetchErrors.WithLabelValues("too_large").Inc()
		return nil, &chat.FetchError{
			URL:    rawURL,
			Status: resp.StatusCode(),
			Err:    fmt.Errorf("page is larger than %s", humanize.IBytes(uint64(f.maxBody))),
		}
	}

	f.log.Debug("Fetched chat page", "url", rawURL, "size", humanize.Bytes(uint64(len(body))), "took", resp.Time())
	return body, nil
}

func (f *Fetcher) networkError(rawURL string, err error) error {
	reason := "network"
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		reason = "canceled"
	}
	metrics.FetchErrors.WithLabelValues(reason).Inc()
	return &chat.FetchError{URL: rawURL, Err: err}
}

const snippetLen = 256

// snippet shortens a response body for error details without splitting a rune.
func snippet(b []byte) string {
	s := strings.ToValidUTF8(strings.TrimSpace(string(b)), "")
	if len(s) <= snippetLen {
		return s
	}

	cut := snippetLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
