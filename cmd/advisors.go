package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/convexa/clientbook/format"
	"github.com/convexa/clientbook/renderer"
	"github.com/google/subcommands"
)

type advisorsCmd struct {
	cycleFlags
	raw bool
}

func (*advisorsCmd) Name() string     { return "advisors" }
func (*advisorsCmd) Synopsis() string { return "display the key figures of each advisor" }
func (*advisorsCmd) Usage() string {
	return `cbk advisors [-ref <date>] [-window <days>] [-name <text>] [-advisor <list>] [-status <list>] [<file>]

  Displays, for each advisor, the number of clients, the assets, the
  dividends, the weighted return and the number of clients in each status.
`
}

func (c *advisorsCmd) SetFlags(f *flag.FlagSet) {
	c.cycleFlags.SetFlags(f, true)
	f.BoolVar(&c.raw, "md", false, "Print the markdown source instead of styled text.")
}

func (c *advisorsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rep, cfg, status := runCycle(&c.cycleFlags, f, 0)
	if status != subcommands.ExitSuccess {
		return status
	}
	out := renderer.AdvisorsMarkdown(rep.Advisors, format.New(cfg.Convention()))
	if c.raw {
		fmt.Print(out)
	} else {
		printMarkdown(out)
	}
	return subcommands.ExitSuccess
}
