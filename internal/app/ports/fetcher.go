package ports

import "context"

type FetcherPort interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}
