package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/romelikethecity/fractional-job-scraper/internal/config"
	"github.com/romelikethecity/fractional-job-scraper/internal/models"
	"github.com/romelikethecity/fractional-job-scraper/internal/network"
	"github.com/romelikethecity/fractional-job-scraper/internal/normalize"
	"github.com/romelikethecity/fractional-job-scraper/internal/reconcile"
	"github.com/romelikethecity/fractional-job-scraper/internal/scraper"
	"github.com/romelikethecity/fractional-job-scraper/internal/store"
)

const proxyBanDuration = 10 * time.Minute

type ScrapeCmd struct {
	Source   string `help:"Scrape a single source; default all configured." enum:",fractionaljobs,indeed" default:""`
	MaxPages int    `help:"Result pages per query; 0 uses the configured value."`
	Query    string `help:"Override the built-in search query (Indeed only)."`
	Proxies  string `help:"Comma-separated proxy URLs." env:"FRACJOBS_PROXIES"`
}

func (s *ScrapeCmd) Run(ctx *Context) error {
	runCtx := context.Background()

	st, err := ctx.Store(runCtx)
	if err != nil {
		return err
	}

	registry, err := buildRegistry(ctx, s.Proxies)
	if err != nil {
		return err
	}
	sources, err := resolveSources(registry, ctx.Config.Pipeline.Sources, s.Source)
	if err != nil {
		return err
	}

	engine := buildEngine(ctx, st, s.Query, s.MaxPages)

	stopIndicator := startScrapeIndicator(ctx)

	var (
		runs    []*models.ScrapeRun
		failure error
	)
	for _, name := range sources {
		run, runErr := engine.Run(runCtx, registry[name])
		if run != nil {
			runs = append(runs, run)
		}
		if runErr != nil && failure == nil {
			failure = fmt.Errorf("%s: %w", name, runErr)
		}
	}

	if stopIndicator != nil {
		stopIndicator()
	}

	for _, run := range runs {
		ctx.UI.RunSummary(run)
	}
	return failure
}

// buildRegistry assembles one scraper per board, sharing the proxy rotation
// configured by flag, environment, or proxies file.
func buildRegistry(ctx *Context, proxiesFlag string) (map[string]scraper.Scraper, error) {
	proxies, err := config.LoadProxies(proxiesFlag, ctx.Config.Network.ProxiesFile)
	if err != nil {
		return nil, err
	}

	opts := network.Options{
		TimeoutSeconds: ctx.Config.Network.TimeoutSeconds,
		UserAgents:     ctx.Config.Network.UserAgents,
	}
	if len(proxies) > 0 {
		rotator, err := network.NewRotator(proxies, proxyBanDuration)
		if err != nil {
			return nil, err
		}
		opts.Rotator = rotator
		ctx.Logger.Debug().Int("proxies", rotator.Count()).Msg("proxy rotation enabled")
	}

	return scraper.Registry(opts)
}

// resolveSources validates the requested sources against the registry and
// keeps the configured order. A single-source override narrows the set.
func resolveSources(registry map[string]scraper.Scraper, configured []string, override string) ([]string, error) {
	requested := configured
	if strings.TrimSpace(override) != "" {
		requested = []string{override}
	}
	if len(requested) == 0 {
		requested = scraper.Sites()
	}

	sources := scraper.NormalizeSources(requested)
	if len(sources) == 0 {
		return nil, fmt.Errorf("no sources configured")
	}
	for _, name := range sources {
		if _, ok := registry[name]; !ok {
			return nil, fmt.Errorf("%w: %s", scraper.ErrUnknownSource, name)
		}
	}
	return sources, nil
}

func buildEngine(ctx *Context, st *store.Store, query string, maxPages int) *reconcile.Engine {
	pipeline := ctx.Config.Pipeline
	if maxPages <= 0 {
		maxPages = pipeline.MaxPages
	}

	normalizer := normalize.New(normalize.Options{
		MonthlyThreshold:    pipeline.MonthlyThreshold,
		AnnualThreshold:     pipeline.AnnualThreshold,
		DefaultHoursPerWeek: pipeline.DefaultHoursPerWeek,
	})

	return reconcile.NewEngine(st, normalizer, reconcile.Config{
		Staleness: pipeline.Staleness(),
		Options:   models.ScrapeOptions{Query: query, MaxPages: maxPages},
	}, ctx.Logger)
}

func startScrapeIndicator(ctx *Context) func() {
	if ctx == nil || ctx.Err == nil || ctx.UI == nil {
		return nil
	}
	if !isTTY(ctx.Err) {
		return nil
	}

	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		start := time.Now()
		frames := []string{"|", "/", "-", "\\"}
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		index := 0

		for {
			select {
			case <-done:
				fmt.Fprint(ctx.Err, "\r\033[2K")
				return
			case <-ticker.C:
				seconds := int(time.Since(start).Seconds())
				frame := frames[index%len(frames)]
				fmt.Fprintf(ctx.Err, "\r\033[2KScraping... %ds %s", seconds, frame)
				index++
			}
		}
	}()

	return func() {
		close(done)
		<-stopped
	}
}
