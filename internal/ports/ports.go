package ports

import (
	"context"
	"time"

	"MovieScanner/internal/domain"
)

// ListingSource retrieves the listing page and extracts one raw entry per
// listed movie.
type ListingSource interface {
	FetchListing(ctx context.Context, listingURL string) ([]domain.RawListingEntry, error)
}

// DetailSource retrieves a movie's detail page (and its details sub-page) and
// extracts all raw detail fields in one pass.
type DetailSource interface {
	ExtractDetail(ctx context.Context, detailLink string) (domain.RawDetailEntry, error)
}

// MovieRepository persists normalized records for deduplication across runs.
type MovieRepository interface {
	AlreadyScraped(ctx context.Context, links []string) (map[string]bool, error)
	SaveMovie(ctx context.Context, record domain.MovieRecord) error
}

// Reporter consumes the normalized table and returns the rendered digest.
type Reporter interface {
	Publish(ctx context.Context, records []domain.MovieRecord) (string, error)
}

// Notifier pushes the rendered digest to an outbound channel (Telegram, etc.).
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when scrape runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
