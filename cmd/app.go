// Package cmd implements the CLI application to report on a client book.
package cmd

import (
	"flag"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/convexa/clientbook"
	"github.com/convexa/clientbook/app"
	"github.com/convexa/clientbook/config"
	"github.com/convexa/clientbook/date"
	"github.com/convexa/clientbook/source"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Commands are the cbk subcommands, by group.
var Commands = map[string][]subcommands.Command{
	"report": {&reportCmd{}, &advisorsCmd{}, &clientCmd{}},
	"input":  {&fieldsCmd{}, &exampleCmd{}},
	"view":   {&serveCmd{}},
	"help":   {&topicCmd{}},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, group := range slices.Sorted(maps.Keys(Commands)) {
		for _, cmd := range Commands[group] {
			c.Register(cmd, group)
		}
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", config.DefaultFile, "Path to the configuration file (TOML)")
var logLevel = flag.String("log-level", "", "Log level: debug, info, warn or error. Overrides the configuration.")

// Setup loads the configuration and returns it with the logger it configures.
// A missing file is only an error when it is not the default one.
func Setup() (*config.Config, zerolog.Logger, error) {
	if *configFile != config.DefaultFile {
		if _, err := os.Stat(*configFile); err != nil {
			return nil, zerolog.Nop(), err
		}
	}
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	level := cfg.LogLevel
	if *logLevel != "" {
		level = *logLevel
	}
	return cfg, app.NewLogger(level), nil
}

// printMarkdown prints md to stdout, styled for the terminal.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// cycleFlags are the flags shared by the commands running a reporting cycle.
type cycleFlags struct {
	ref      string
	window   int
	sep      string
	sheet    string
	jsonPath string

	name     string
	advisors string
	statuses string
}

func (c *cycleFlags) SetFlags(f *flag.FlagSet, filter bool) {
	f.StringVar(&c.ref, "ref", "", "Reference date for the statuses, e.g. 2025-07-01 or -1w. Defaults to the configuration, then today.")
	f.IntVar(&c.window, "window", -1, "Alert window in days. Defaults to the configuration.")
	f.StringVar(&c.sep, "sep", "", "CSV separator. Detected by default.")
	f.StringVar(&c.sheet, "sheet", "", "Spreadsheet sheet. Defaults to the first one.")
	f.StringVar(&c.jsonPath, "json-path", "", "JSONPath selecting the rows of a JSON file.")
	if filter {
		f.StringVar(&c.name, "name", "", "Only clients whose name contains this text, ignoring case.")
		f.StringVar(&c.advisors, "advisor", "", "Comma separated list of advisors. '-' selects clients without advisor.")
		f.StringVar(&c.statuses, "status", "", "Comma separated list of statuses: on-track, upcoming, overdue, no-date.")
	}
}

// State returns the state of a cycle over the file at path, or over the
// example dataset when path is empty.
func (c *cycleFlags) State(cfg *config.Config, path string) (clientbook.State, error) {
	opts, err := cfg.StatusOptions()
	if err != nil {
		return clientbook.State{}, err
	}
	if c.ref != "" {
		if opts.Reference, err = date.Parse(c.ref); err != nil {
			return clientbook.State{}, fmt.Errorf("invalid reference date: %w", err)
		}
	}
	if c.window >= 0 {
		opts.AlertWindowDays = c.window
	}
	criteria, err := c.Criteria()
	if err != nil {
		return clientbook.State{}, err
	}

	raw := clientbook.Example()
	if path != "" {
		if raw, err = source.Open(path, c.SourceOptions(cfg)); err != nil {
			return clientbook.State{}, err
		}
	}
	return clientbook.State{
		Raw:      raw,
		Aliases:  cfg.AliasesFor(),
		Status:   opts,
		Criteria: criteria,
	}, nil
}

// SourceOptions returns the reader options of cfg, overridden by the flags.
func (c *cycleFlags) SourceOptions(cfg *config.Config) source.Options {
	opts := cfg.SourceOptions()
	if r := []rune(c.sep); len(r) > 0 {
		opts.Comma = r[0]
	}
	if c.sheet != "" {
		opts.Sheet = c.sheet
	}
	if c.jsonPath != "" {
		opts.JSONPath = c.jsonPath
	}
	return opts
}

// Criteria returns the filter criteria of the flags.
func (c *cycleFlags) Criteria() (clientbook.Criteria, error) {
	criteria := clientbook.Criteria{Name: c.name}
	if c.advisors != "" {
		criteria.Advisors = []string{}
		for _, a := range splitList(c.advisors) {
			if a == "-" {
				a = clientbook.NoAdvisor
			}
			criteria.Advisors = append(criteria.Advisors, a)
		}
	}
	if c.statuses != "" {
		criteria.Statuses = []clientbook.Status{}
		for _, v := range splitList(c.statuses) {
			s, err := clientbook.ParseStatus(v)
			if err != nil {
				return criteria, err
			}
			criteria.Statuses = append(criteria.Statuses, s)
		}
	}
	return criteria, nil
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// inputPath returns the optional input file argument.
func inputPath(f *flag.FlagSet, at int) (string, error) {
	switch {
	case f.NArg() <= at:
		return "", nil
	case f.NArg() == at+1:
		return f.Arg(at), nil
	default:
		return "", fmt.Errorf("too many arguments: %q", f.Args()[at+1:])
	}
}

// runCycle is the common part of the reporting commands.
func runCycle(c *cycleFlags, f *flag.FlagSet, argAt int) (*clientbook.Report, *config.Config, subcommands.ExitStatus) {
	path, err := inputPath(f, argAt)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, nil, subcommands.ExitUsageError
	}
	cfg, log, err := Setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return nil, nil, subcommands.ExitFailure
	}
	state, err := c.State(cfg, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, nil, subcommands.ExitFailure
	}
	rep, err := app.Run(state, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building report: %v\n", err)
		return nil, nil, subcommands.ExitFailure
	}
	return rep, cfg, subcommands.ExitSuccess
}
