package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/convexa/clientbook/format"
	"github.com/convexa/clientbook/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	cycleFlags
	raw          bool
	skipAdvisors bool
	skipClients  bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the key figures and the table of clients" }
func (*reportCmd) Usage() string {
	return `cbk report [-ref <date>] [-window <days>] [-name <text>] [-advisor <list>] [-status <list>] [<file>]

  Reads the client table in <file>, or the example dataset, and displays the
  key figures, the figures of each advisor and the table of the clients
  selected by the filters.

Usage Examples:
# Overdue and upcoming rebalancing of Vanessa's clients
$ cbk report -advisor Vanessa -status overdue,upcoming carteiras.csv

`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.cycleFlags.SetFlags(f, true)
	f.BoolVar(&c.raw, "md", false, "Print the markdown source instead of styled text.")
	f.BoolVar(&c.skipAdvisors, "skip-advisors", false, "Do not display the figures of each advisor.")
	f.BoolVar(&c.skipClients, "skip-clients", false, "Do not display the table of clients.")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rep, cfg, status := runCycle(&c.cycleFlags, f, 0)
	if status != subcommands.ExitSuccess {
		return status
	}
	out := renderer.RenderReport(rep, format.New(cfg.Convention()), renderer.ReportOptions{
		SkipAdvisors: c.skipAdvisors,
		SkipClients:  c.skipClients,
	})
	if c.raw {
		fmt.Print(out)
	} else {
		printMarkdown(out)
	}
	return subcommands.ExitSuccess
}
