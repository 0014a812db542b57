package cmd

import (
	"fmt"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	JSON    bool   `help:"JSON output to stdout; disables colors."`
	Plain   bool   `help:"TSV output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging."`
	DB      string `name:"db" help:"Database DSN; overrides the configured one." placeholder:"DSN"`
	Driver  string `help:"Database driver." enum:",sqlite3,postgres" default:""`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Version  VersionCmd  `cmd:"" help:"Print version."`
	Config   ConfigCmd   `cmd:"" help:"Manage configuration."`
	Scrape   ScrapeCmd   `cmd:"" help:"Fetch job boards and reconcile listings."`
	Snapshot SnapshotCmd `cmd:"" help:"Compute and store the daily snapshot."`
	Weekly   WeeklyCmd   `cmd:"" help:"Write the week-over-week summary."`
	Export   ExportCmd   `cmd:"" help:"Export active listings."`
	Runs     RunsCmd     `cmd:"" help:"List recent scrape runs."`
	Schedule ScheduleCmd `cmd:"" help:"Run the pipeline on a cron schedule."`
	Proxies  ProxiesCmd  `cmd:"" help:"Proxy utilities."`
}

func NewCLI() *CLI {
	return &CLI{}
}

type VersionCmd struct{}

func (v *VersionCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintln(ctx.Out, ctx.Version)
	return err
}
