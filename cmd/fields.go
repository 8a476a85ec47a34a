package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/convexa/clientbook/renderer"
	"github.com/convexa/clientbook/source"
	"github.com/google/subcommands"
)

type fieldsCmd struct {
	cycleFlags
	raw bool
}

func (*fieldsCmd) Name() string     { return "fields" }
func (*fieldsCmd) Synopsis() string { return "display the accepted column names" }
func (*fieldsCmd) Usage() string {
	return `cbk fields [<file>]

  Displays the column names accepted for every field and, when <file> is
  given, the column of <file> each field is read from.
`
}

func (c *fieldsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sep, "sep", "", "CSV separator. Detected by default.")
	f.StringVar(&c.sheet, "sheet", "", "Spreadsheet sheet. Defaults to the first one.")
	f.StringVar(&c.jsonPath, "json-path", "", "JSONPath selecting the rows of a JSON file.")
	f.BoolVar(&c.raw, "md", false, "Print the markdown source instead of styled text.")
}

func (c *fieldsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path, err := inputPath(f, 0)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	cfg, _, err := Setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	var columns []string
	if path != "" {
		raw, err := source.Open(path, c.SourceOptions(cfg))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		columns = raw.Columns
		if columns == nil {
			columns = []string{}
		}
	}

	out := renderer.FieldsMarkdown(cfg.AliasesFor(), columns)
	if c.raw {
		fmt.Print(out)
	} else {
		printMarkdown(out)
	}
	return subcommands.ExitSuccess
}
