package ports

import (
	"chatkeywords/internal/app/domain/chat"
	"context"
)

type ScraperPort interface {
	FetchAndExtract(ctx context.Context, rawURL string) ([]chat.Event, error)
}
