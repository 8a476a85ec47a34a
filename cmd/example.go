package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/convexa/clientbook"
	"github.com/convexa/clientbook/source"
	"github.com/google/subcommands"
)

type exampleCmd struct {
	output string
	sep    string
}

func (*exampleCmd) Name() string     { return "example" }
func (*exampleCmd) Synopsis() string { return "write the example dataset as CSV" }
func (*exampleCmd) Usage() string {
	return `cbk example [-o <file>] [-sep <separator>]

  Writes the example dataset as a CSV file, a starting point for a client
  table.

Usage Examples:
$ cbk example -o carteiras.csv

`
}

func (c *exampleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file. Defaults to stdout.")
	f.StringVar(&c.sep, "sep", ";", "CSV separator.")
}

func (c *exampleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, _, err := clientbook.Normalize(clientbook.Example(), clientbook.DefaultAliases())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	var opts source.Options
	if r := []rune(c.sep); len(r) > 0 {
		opts.Comma = r[0]
	}

	var w io.Writer = os.Stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}
	if err := source.WriteCSV(w, t, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing example: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.output != "" {
		fmt.Fprintf(os.Stderr, "Successfully wrote the example dataset to %s\n", c.output)
	}
	return subcommands.ExitSuccess
}
