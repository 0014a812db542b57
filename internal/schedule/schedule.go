// Package schedule runs the scrape pipeline on a cron cadence.
package schedule

import (
	"context"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DefaultSpec fires once a day in the morning, after the boards have
// published overnight postings.
const DefaultSpec = "0 7 * * *"

// Job is one scheduled tick. The context is the runner's base context and
// is cancelled when the process shuts down.
type Job func(ctx context.Context)

// Runner drives a single job on a cron schedule. A tick that overlaps a
// still-running one is skipped, and a panicking tick is recovered and
// logged rather than taking the process down.
type Runner struct {
	cron *cron.Cron
	job  Job
	log  zerolog.Logger
}

func New(logger zerolog.Logger, job Job) *Runner {
	adapter := cronLogger{log: logger}
	return &Runner{
		cron: cron.New(
			cron.WithLogger(adapter),
			cron.WithChain(
				cron.SkipIfStillRunning(adapter),
				cron.Recover(adapter),
			),
		),
		job: job,
		log: logger,
	}
}

// Start registers the job under spec and launches the scheduler. The
// context is handed to every tick; cancelling it aborts in-flight work
// but leaves the scheduler running until Stop.
func (r *Runner) Start(ctx context.Context, spec string) error {
	if strings.TrimSpace(spec) == "" {
		spec = DefaultSpec
	}
	if _, err := r.cron.AddFunc(spec, func() { r.job(ctx) }); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}

	r.cron.Start()
	r.log.Info().Str("spec", spec).Msg("scheduler started")
	return nil
}

// Stop halts scheduling and waits for a running tick to finish.
func (r *Runner) Stop() {
	<-r.cron.Stop().Done()
	r.log.Info().Msg("scheduler stopped")
}

// cronLogger adapts zerolog to the cron logging interface. Cron's own
// chatter lands at debug so it stays out of normal runs.
type cronLogger struct {
	log zerolog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
