package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/convexa/clientbook/format"
	"github.com/convexa/clientbook/renderer"
	"github.com/google/subcommands"
)

type clientCmd struct {
	cycleFlags
	raw bool
}

func (*clientCmd) Name() string     { return "client" }
func (*clientCmd) Synopsis() string { return "display the detail of a client" }
func (*clientCmd) Usage() string {
	return `cbk client [-ref <date>] [-window <days>] <name> [<file>]

  Displays the portfolio and the rebalancing status of the client named
  <name>, ignoring case.
`
}

func (c *clientCmd) SetFlags(f *flag.FlagSet) {
	c.cycleFlags.SetFlags(f, false)
	f.BoolVar(&c.raw, "md", false, "Print the markdown source instead of styled text.")
}

func (c *clientCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: missing client name")
		return subcommands.ExitUsageError
	}
	rep, cfg, status := runCycle(&c.cycleFlags, f, 1)
	if status != subcommands.ExitSuccess {
		return status
	}
	row, ok := rep.Client(f.Arg(0))
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no client named %q\n", f.Arg(0))
		return subcommands.ExitFailure
	}
	out := renderer.ClientMarkdown(row, format.New(cfg.Convention()))
	if c.raw {
		fmt.Print(out)
	} else {
		printMarkdown(out)
	}
	return subcommands.ExitSuccess
}
