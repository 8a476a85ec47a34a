// Package config holds the clientbook configuration.
//
// Configuration is layered: built-in defaults, then TOML files, then
// CLIENTBOOK_* environment variables. Command line flags are applied last by
// the commands themselves.
package config

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/convexa/clientbook"
	"github.com/convexa/clientbook/date"
	"github.com/convexa/clientbook/format"
	"github.com/convexa/clientbook/source"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "CLIENTBOOK"

// DefaultFile is the configuration file read when none is given.
const DefaultFile = "clientbook.toml"

// Config holds all configuration for clientbook.
//
// Environment keys are derived from the field names, CLIENTBOOK_FORMAT_SYMBOL
// for Format.Symbol. Keys without the prefix are never read, so fields carry
// no envconfig tag.
type Config struct {
	AlertWindowDays int    `toml:"alert_window_days" split_words:"true" validate:"gte=0,lte=3650"`
	ReferenceDate   string `toml:"reference_date" split_words:"true"` // empty for today
	LogLevel        string `toml:"log_level" split_words:"true" validate:"oneof=debug info warn error"`

	Format FormatConfig `toml:"format" split_words:"true"`
	Labels LabelsConfig `toml:"labels" split_words:"true"`
	Source SourceConfig `toml:"source" split_words:"true"`
	Server ServerConfig `toml:"server" split_words:"true"`

	// Aliases replaces the accepted column names of canonical fields.
	Aliases map[string][]string `toml:"aliases" ignored:"true"`
}

// FormatConfig holds the display conventions.
type FormatConfig struct {
	Symbol          string `toml:"symbol" split_words:"true"`
	Decimal         string `toml:"decimal" split_words:"true" validate:"required"`
	Thousand        string `toml:"thousand" split_words:"true"`
	Template        string `toml:"template" split_words:"true" validate:"required,contains=1"`
	PercentSuffix   string `toml:"percent_suffix" split_words:"true"`
	DateLayout      string `toml:"date_layout" split_words:"true" validate:"required"`
	DatePlaceholder string `toml:"date_placeholder" split_words:"true"`
	NotAvailable    string `toml:"na" split_words:"true"`
}

// LabelsConfig holds the display label of each rebalancing status.
type LabelsConfig struct {
	OnTrack  string `toml:"on_track" split_words:"true" validate:"required"`
	Upcoming string `toml:"upcoming" split_words:"true" validate:"required"`
	Overdue  string `toml:"overdue" split_words:"true" validate:"required"`
	NoDate   string `toml:"no_date" split_words:"true" validate:"required"`
}

// SourceConfig tunes the file readers.
type SourceConfig struct {
	CSVSeparator string `toml:"csv_separator" split_words:"true"` // empty to detect it
	Sheet        string `toml:"sheet" split_words:"true"`
	JSONPath     string `toml:"json_path" split_words:"true"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr string `toml:"addr" split_words:"true" validate:"required"`
}

// Default returns the built-in configuration.
func Default() *Config {
	c := format.DefaultConvention
	return &Config{
		AlertWindowDays: clientbook.DefaultAlertWindowDays,
		LogLevel:        "info",
		Format: FormatConfig{
			Symbol:          c.Symbol,
			Decimal:         c.Decimal,
			Thousand:        c.Thousand,
			Template:        c.Template,
			PercentSuffix:   c.PercentSuffix,
			DateLayout:      c.DateLayout,
			DatePlaceholder: c.DatePlaceholder,
			NotAvailable:    c.NotAvailable,
		},
		Labels: LabelsConfig{
			OnTrack:  c.Labels.OnTrack,
			Upcoming: c.Labels.Upcoming,
			Overdue:  c.Labels.Overdue,
			NoDate:   c.Labels.NoDate,
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Load returns the defaults merged with the files at paths, in order, then
// with the environment. Missing files are skipped. The result is validated.
func Load(paths ...string) (*Config, error) {
	cfg := Default()
	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read config file %q: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("cannot parse config file %q: %w", path, err)
		}
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with the CLIENTBOOK_* environment variables that are set,
// e.g. CLIENTBOOK_ALERT_WINDOW_DAYS or CLIENTBOOK_FORMAT_SYMBOL.
func ApplyEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("cannot read environment: %w", err)
	}
	return nil
}

// Validate checks every value of c.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	for name, aliases := range c.Aliases {
		if !isField(name) {
			return fmt.Errorf("invalid configuration: aliases of unknown field %q", name)
		}
		if len(aliases) == 0 {
			return fmt.Errorf("invalid configuration: no alias for field %q", name)
		}
	}
	if n := utf8.RuneCountInString(c.Source.CSVSeparator); n > 1 {
		return fmt.Errorf("invalid configuration: csv separator %q is not a single character", c.Source.CSVSeparator)
	}
	if _, err := c.StatusOptions(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func isField(name string) bool {
	for _, f := range clientbook.Fields {
		if string(f) == name {
			return true
		}
	}
	return false
}

// AliasesFor returns the default aliases, with the fields listed in c replaced.
func (c *Config) AliasesFor() clientbook.Aliases {
	a := clientbook.DefaultAliases()
	for _, f := range clientbook.Fields {
		if names, ok := c.Aliases[string(f)]; ok {
			a = a.With(f, names...)
		}
	}
	return a
}

// Convention returns the display conventions.
func (c *Config) Convention() format.Convention {
	return format.Convention{
		Symbol:          c.Format.Symbol,
		Decimal:         c.Format.Decimal,
		Thousand:        c.Format.Thousand,
		Template:        c.Format.Template,
		PercentSuffix:   c.Format.PercentSuffix,
		DateLayout:      c.Format.DateLayout,
		DatePlaceholder: c.Format.DatePlaceholder,
		NotAvailable:    c.Format.NotAvailable,
		Labels: format.StatusLabels{
			OnTrack:  c.Labels.OnTrack,
			Upcoming: c.Labels.Upcoming,
			Overdue:  c.Labels.Overdue,
			NoDate:   c.Labels.NoDate,
		},
	}
}

// StatusOptions returns the status derivation options. An empty reference date is today.
func (c *Config) StatusOptions() (clientbook.StatusOptions, error) {
	opts := clientbook.StatusOptions{AlertWindowDays: c.AlertWindowDays}
	if c.ReferenceDate == "" {
		return opts, nil
	}
	ref, err := date.Parse(c.ReferenceDate)
	if err != nil {
		return opts, fmt.Errorf("invalid reference date: %w", err)
	}
	opts.Reference = ref
	return opts, nil
}

// SourceOptions returns the file reader options.
func (c *Config) SourceOptions() source.Options {
	opts := source.Options{Sheet: c.Source.Sheet, JSONPath: c.Source.JSONPath}
	if r, _ := utf8.DecodeRuneInString(c.Source.CSVSeparator); r != utf8.RuneError {
		opts.Comma = r
	}
	return opts
}
