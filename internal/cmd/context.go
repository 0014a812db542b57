package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/romelikethecity/fractional-job-scraper/internal/config"
	"github.com/romelikethecity/fractional-job-scraper/internal/store"
	"github.com/romelikethecity/fractional-job-scraper/internal/ui"
	"github.com/rs/zerolog"
)

type Context struct {
	Out        io.Writer
	Err        io.Writer
	UI         *ui.UI
	Config     config.Config
	ConfigDir  string
	Logger     zerolog.Logger
	Verbose    bool
	JSONOutput bool
	PlainText  bool
	Version    string
	ColorMode  ui.ColorMode

	// DBDriver and DBDSN override the configured database when set.
	DBDriver string
	DBDSN    string

	store *store.Store
}

// Store opens the configured database on first use and reuses the handle
// for the rest of the invocation.
func (c *Context) Store(ctx context.Context) (*store.Store, error) {
	if c.store != nil {
		return c.store, nil
	}

	driver := strings.TrimSpace(c.DBDriver)
	if driver == "" {
		driver = c.Config.Database.Driver
	}

	dsn := strings.TrimSpace(c.DBDSN)
	if dsn == "" {
		resolved, err := c.Config.ResolvedDSN()
		if err != nil {
			return nil, err
		}
		dsn = resolved
	}

	// A fresh install has no config directory yet. SQLite needs the
	// parent directory to exist before it can create the file.
	if driver == "sqlite3" && !strings.Contains(dsn, ":memory:") {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
	}

	st, err := store.Open(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}
	c.store = st
	return st, nil
}

// Close releases the database handle if a command opened one.
func (c *Context) Close() error {
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}
