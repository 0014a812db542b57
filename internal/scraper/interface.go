package scraper

import (
	"context"
	"errors"

	"github.com/romelikethecity/fractional-job-scraper/internal/models"
)

var ErrUnknownSource = errors.New("unknown source")

// Scraper pulls raw listings from one job board. A fetch that dies partway
// returns whatever was collected alongside the error, so the caller can
// decide what a half-seen board is worth.
type Scraper interface {
	Name() string
	Fetch(ctx context.Context, opts models.ScrapeOptions) ([]models.RawListing, error)
}
