package reconcile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/romelikethecity/fractional-job-scraper/internal/models"
	"github.com/romelikethecity/fractional-job-scraper/internal/normalize"
	"github.com/rs/zerolog"
)

// DefaultStaleness is how long a listing may go unseen before a run that
// did not encounter it marks it inactive.
const DefaultStaleness = 48 * time.Hour

// A listing can fail for its own reasons without sinking the run; only the
// first few messages are kept for the run record.
const maxErrorMessages = 5

// Fetcher pulls raw listings from one source.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, opts models.ScrapeOptions) ([]models.RawListing, error)
}

// Storage is the slice of the store the engine needs.
type Storage interface {
	CreateRun(ctx context.Context, source string, startedAt time.Time) (int64, error)
	FinishRun(ctx context.Context, run *models.ScrapeRun) error
	UpsertListing(ctx context.Context, listing *models.Listing) (bool, error)
	DeactivateStale(ctx context.Context, source string, cutoff time.Time, seenIDs []string) (int, error)
}

// Config tunes one engine.
type Config struct {
	// Staleness is the last-seen age beyond which an unseen listing is
	// deactivated. Zero means DefaultStaleness.
	Staleness time.Duration
	// Options are passed through to every fetch.
	Options models.ScrapeOptions
}

// Engine reconciles scraped listings into the store, one accounted run per
// source: upsert everything fetched, then soft-delete what the source no
// longer shows.
type Engine struct {
	store      Storage
	normalizer *normalize.Normalizer
	staleness  time.Duration
	opts       models.ScrapeOptions
	log        zerolog.Logger
	now        func() time.Time
}

func NewEngine(store Storage, normalizer *normalize.Normalizer, cfg Config, logger zerolog.Logger) *Engine {
	staleness := cfg.Staleness
	if staleness <= 0 {
		staleness = DefaultStaleness
	}
	return &Engine{
		store:      store,
		normalizer: normalizer,
		staleness:  staleness,
		opts:       cfg.Options,
		log:        logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Run executes one reconciliation run against a single source. A fetch that
// errors with nothing to show fails the run; one that dies partway through
// is processed but skips deactivation, since the unseen listings may live on
// the pages that never loaded. A listing that cannot be normalized or
// written is skipped and counted. The returned run is also persisted, so it
// reflects what the store recorded.
func (e *Engine) Run(ctx context.Context, fetcher Fetcher) (*models.ScrapeRun, error) {
	source := fetcher.Name()
	startedAt := e.now()

	runID, err := e.store.CreateRun(ctx, source, startedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to start run for %s: %w", source, err)
	}
	run := &models.ScrapeRun{
		ID:        runID,
		Source:    source,
		StartedAt: startedAt,
		Status:    models.RunStatusRunning,
	}
	e.log.Info().Str("source", source).Int64("run_id", runID).Msg("run started")

	raws, err := fetcher.Fetch(ctx, e.opts)
	fetchIncomplete := err != nil
	if fetchIncomplete && len(raws) == 0 {
		fetchErr := fmt.Errorf("failed to fetch %s listings: %w", source, err)
		e.finish(ctx, run, models.RunStatusFailed, fetchErr.Error())
		return run, fetchErr
	}
	run.ListingsFound = len(raws)

	var errs []string
	if fetchIncomplete {
		run.ErrorCount++
		errs = appendError(errs, fmt.Errorf("fetch incomplete: %w", err))
		e.log.Warn().Str("source", source).Err(err).Msg("fetch incomplete, reconciling partial batch")
	}
	seenIDs := make([]string, 0, len(raws))
	for _, raw := range raws {
		listing, err := e.normalizer.Normalize(raw)
		if err != nil {
			run.ErrorCount++
			errs = appendError(errs, err)
			e.log.Warn().Str("source", source).Err(err).Msg("skipping listing")
			continue
		}

		// A listing the source still shows must never be deactivated
		// below, even if writing it fails this time around.
		seenIDs = append(seenIDs, listing.SourceID)

		created, err := e.store.UpsertListing(ctx, &listing)
		if err != nil {
			run.ErrorCount++
			errs = appendError(errs, err)
			e.log.Warn().Str("source", source).Str("source_id", listing.SourceID).Err(err).Msg("failed to write listing")
			continue
		}
		if created {
			run.ListingsNew++
		} else {
			run.ListingsUpdated++
		}
	}

	if !fetchIncomplete {
		cutoff := e.now().Add(-e.staleness)
		deactivated, err := e.store.DeactivateStale(ctx, source, cutoff, seenIDs)
		if err != nil {
			run.ErrorCount++
			errs = appendError(errs, err)
			e.log.Warn().Str("source", source).Err(err).Msg("failed to deactivate stale listings")
		}
		run.ListingsDeactivated = deactivated
	}

	status := models.RunStatusSuccess
	if run.ErrorCount > 0 {
		status = models.RunStatusPartial
	}
	if err := e.finish(ctx, run, status, strings.Join(errs, "; ")); err != nil {
		return run, err
	}

	e.log.Info().
		Str("source", source).
		Int("found", run.ListingsFound).
		Int("new", run.ListingsNew).
		Int("updated", run.ListingsUpdated).
		Int("deactivated", run.ListingsDeactivated).
		Int("errors", run.ErrorCount).
		Str("status", string(run.Status)).
		Msg("run complete")
	return run, nil
}

func (e *Engine) finish(ctx context.Context, run *models.ScrapeRun, status models.RunStatus, errMsg string) error {
	completedAt := e.now()
	run.CompletedAt = &completedAt
	run.Status = status
	run.ErrorMessage = errMsg
	if err := e.store.FinishRun(ctx, run); err != nil {
		e.log.Error().Int64("run_id", run.ID).Err(err).Msg("failed to finalize run")
		return fmt.Errorf("failed to finalize run %d: %w", run.ID, err)
	}
	return nil
}

func appendError(errs []string, err error) []string {
	if len(errs) >= maxErrorMessages {
		return errs
	}
	return append(errs, err.Error())
}
