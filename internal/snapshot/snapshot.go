package snapshot

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/romelikethecity/fractional-job-scraper/internal/classify"
	"github.com/romelikethecity/fractional-job-scraper/internal/models"
)

// DefaultMinCompSample is the smallest per-function sample that yields a
// compensation row; below it the averages are too noisy to publish.
const DefaultMinCompSample = 3

// allSources labels the cross-source snapshot row.
const allSources = "all"

// Storage is the slice of the store the aggregator needs.
type Storage interface {
	ListActive(ctx context.Context) ([]models.Listing, error)
	CountNewSince(ctx context.Context, since time.Time) (int, error)
	CountRemovedBetween(ctx context.Context, from, to time.Time) (int, error)
	SaveListingSnapshot(ctx context.Context, snap *models.ListingSnapshot) error
	SaveCompensationSnapshots(ctx context.Context, snaps []models.CompensationSnapshot) error
	LatestListingSnapshot(ctx context.Context, source string) (*models.ListingSnapshot, error)
	ListingSnapshotsBetween(ctx context.Context, source string, from, to time.Time) ([]models.ListingSnapshot, error)
	CompensationSnapshotsOn(ctx context.Context, date time.Time) ([]models.CompensationSnapshot, error)
}

// Aggregator rolls active listings up into daily snapshot rows and weekly
// summaries. Day boundaries are UTC midnights.
type Aggregator struct {
	store     Storage
	minSample int
}

func New(store Storage, minSample int) *Aggregator {
	if minSample <= 0 {
		minSample = DefaultMinCompSample
	}
	return &Aggregator{store: store, minSample: minSample}
}

// Daily computes and stores the snapshot for now's UTC day. Recomputing
// the same day replaces the earlier rows.
func (a *Aggregator) Daily(ctx context.Context, now time.Time) (*models.ListingSnapshot, []models.CompensationSnapshot, error) {
	midnight := now.UTC().Truncate(24 * time.Hour)

	listings, err := a.store.ListActive(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load active listings: %w", err)
	}
	newToday, err := a.store.CountNewSince(ctx, midnight)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count new listings: %w", err)
	}
	removedToday, err := a.store.CountRemovedBetween(ctx, midnight.Add(-24*time.Hour), midnight)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count removed listings: %w", err)
	}

	snap := &models.ListingSnapshot{
		SnapshotDate:   midnight,
		Source:         allSources,
		TotalActive:    len(listings),
		NewToday:       newToday,
		RemovedToday:   removedToday,
		ByFunction:     models.CountMap{},
		BySeniority:    models.CountMap{},
		ByLocationType: models.CountMap{},
		ByHoursBucket:  models.CountMap{},
	}
	for i := range listings {
		l := &listings[i]
		snap.ByFunction[string(l.FunctionCategory)]++
		snap.BySeniority[string(l.SeniorityTier)]++
		snap.ByLocationType[string(l.LocationType)]++
		snap.ByHoursBucket[classify.HoursBucket(l.HoursPerWeekMin, l.HoursPerWeekMax)]++
		if l.CompensationType != models.CompNotDisclosed && l.CompensationType != "" {
			snap.CompDisclosed++
		}
	}
	if snap.TotalActive > 0 {
		snap.CompDisclosedPct = round1(float64(snap.CompDisclosed) / float64(snap.TotalActive) * 100)
	}

	if err := a.store.SaveListingSnapshot(ctx, snap); err != nil {
		return nil, nil, err
	}

	comp := compensationRows(listings, midnight, a.minSample)
	if err := a.store.SaveCompensationSnapshots(ctx, comp); err != nil {
		return nil, nil, err
	}
	return snap, comp, nil
}

// compensationRows builds the per-function hourly-rate statistics for every
// category that clears the sample floor.
func compensationRows(listings []models.Listing, date time.Time, minSample int) []models.CompensationSnapshot {
	mins := map[models.FunctionCategory][]float64{}
	maxes := map[models.FunctionCategory][]float64{}
	for i := range listings {
		l := &listings[i]
		if l.HourlyRateMin == nil {
			continue
		}
		mins[l.FunctionCategory] = append(mins[l.FunctionCategory], *l.HourlyRateMin)
		if l.HourlyRateMax != nil {
			maxes[l.FunctionCategory] = append(maxes[l.FunctionCategory], *l.HourlyRateMax)
		}
	}

	categories := make([]models.FunctionCategory, 0, len(mins))
	for fc := range mins {
		categories = append(categories, fc)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	var rows []models.CompensationSnapshot
	for _, fc := range categories {
		rates := mins[fc]
		if len(rates) < minSample {
			continue
		}
		row := models.CompensationSnapshot{
			SnapshotDate:     date,
			FunctionCategory: fc,
			SampleSize:       len(rates),
			HourlyRateMinAvg: mean(rates),
			HourlyRateMedian: median(rates),
		}
		if m := maxes[fc]; len(m) > 0 {
			avg := mean(m)
			row.HourlyRateMaxAvg = &avg
		}
		rows = append(rows, row)
	}
	return rows
}

// Latest returns the most recent stored snapshot and its compensation rows
// without recomputing anything. Returns nil when none has been taken yet.
func (a *Aggregator) Latest(ctx context.Context) (*models.ListingSnapshot, []models.CompensationSnapshot, error) {
	snap, err := a.store.LatestListingSnapshot(ctx, allSources)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load latest snapshot: %w", err)
	}
	if snap == nil {
		return nil, nil, nil
	}
	comp, err := a.store.CompensationSnapshotsOn(ctx, snap.SnapshotDate)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load compensation snapshots: %w", err)
	}
	return snap, comp, nil
}

// Weekly summarizes the trailing seven days of snapshots: the newest one
// against the oldest in the window. Returns nil when no snapshots exist.
func (a *Aggregator) Weekly(ctx context.Context, now time.Time) (*models.WeeklySummary, error) {
	to := now.UTC().Truncate(24 * time.Hour)
	from := to.AddDate(0, 0, -7)

	snaps, err := a.store.ListingSnapshotsBetween(ctx, allSources, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly snapshots: %w", err)
	}
	if len(snaps) == 0 {
		return nil, nil
	}

	oldest, newest := snaps[0], snaps[len(snaps)-1]
	summary := &models.WeeklySummary{
		WeekEnding:       newest.SnapshotDate,
		TotalActive:      newest.TotalActive,
		WoWChange:        newest.TotalActive - oldest.TotalActive,
		TopFunctions:     topFunctions(newest.ByFunction, 5),
		CompDisclosedPct: newest.CompDisclosedPct,
		ByLocationType:   newest.ByLocationType,
	}
	if oldest.TotalActive > 0 {
		summary.WoWChangePct = round1(float64(summary.WoWChange) / float64(oldest.TotalActive) * 100)
	}
	for _, s := range snaps {
		summary.NewThisWeek += s.NewToday
		summary.RemovedThisWeek += s.RemovedToday
	}
	return summary, nil
}

// topFunctions ranks a function breakdown by count, ties broken by name so
// the output is stable.
func topFunctions(byFunction models.CountMap, n int) []models.FunctionCount {
	ranked := make([]models.FunctionCount, 0, len(byFunction))
	for fn, count := range byFunction {
		ranked = append(ranked, models.FunctionCount{Function: fn, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Function < ranked[j].Function
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// median returns the upper middle element; even-length inputs are not
// interpolated.
func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return sorted[len(sorted)/2]
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
