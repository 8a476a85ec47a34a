package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/convexa/clientbook/format"
	"github.com/convexa/clientbook/source"
	"github.com/convexa/clientbook/web"
	"github.com/google/subcommands"
)

type serveCmd struct {
	cycleFlags
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the client book as HTML pages" }
func (*serveCmd) Usage() string {
	return `cbk serve [-addr <address>] [-ref <date>] [-window <days>] [<file>]

  Serves the report, the advisors and the client details over HTTP. Files can
  be uploaded from the page. See 'cbk topic serve'.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	c.cycleFlags.SetFlags(f, false)
	f.StringVar(&c.addr, "addr", "", "Listen address. Defaults to the configuration.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path, err := inputPath(f, 0)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	cfg, log, err := Setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	state, err := c.State(cfg, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	srcOpts := c.SourceOptions(cfg)
	wcfg := web.Config{
		Addr:      cfg.Server.Addr,
		Log:       log,
		Aliases:   state.Aliases,
		Status:    state.Status,
		Formatter: format.New(cfg.Convention()),
		Source:    srcOpts,
	}
	if c.addr != "" {
		wcfg.Addr = c.addr
	}
	if path != "" {
		raw, err := source.Open(path, srcOpts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		wcfg.Raw = &raw
	}
	s := web.New(wcfg)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	errc := make(chan error, 1)
	go func() { errc <- s.Start() }()

	select {
	case err := <-errc:
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error serving: %v\n", err)
			return subcommands.ExitFailure
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "Error shutting down: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
