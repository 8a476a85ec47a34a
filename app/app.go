// Package app runs a reporting cycle the way the interactive surfaces need it:
// normalization warnings are logged and an input that cannot be normalized is
// replaced by the example dataset.
package app

import (
	"errors"
	"io"
	"os"

	"github.com/convexa/clientbook"
	"github.com/rs/zerolog"
)

// Run builds the report of s.
//
// When s.Raw misses canonical fields, the missing fields are logged and the
// report is built over clientbook.Example() instead, with Report.Fallback set
// to the schema error. Any other error is returned.
func Run(s clientbook.State, log zerolog.Logger) (*clientbook.Report, error) {
	r, err := clientbook.NewReport(s)
	var schemaErr *clientbook.SchemaError
	if errors.As(err, &schemaErr) {
		log.Warn().Strs("missing", fieldNames(schemaErr.Missing)).Msg("input does not match the schema, showing the example dataset")
		s.Raw = clientbook.Example()
		s.Aliases = clientbook.DefaultAliases()
		r, err = clientbook.NewReport(s)
		if err != nil {
			return nil, err
		}
		r.Fallback = schemaErr
	}
	if err != nil {
		return nil, err
	}

	for _, w := range r.Warnings {
		e := log.Warn().Int("row", w.Row).Str("kind", w.Kind.String())
		if w.Kind != clientbook.EmptyClientWarning {
			e = e.Str("field", string(w.Field)).Interface("value", w.Value)
		}
		e.Msg(w.String())
	}
	log.Debug().
		Int("rows", len(r.View)).
		Int("filtered", len(r.Filtered)).
		Str("reference", r.Reference.String()).
		Int("window", r.AlertWindowDays).
		Msg("report built")
	return r, nil
}

func fieldNames(fields []clientbook.Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return names
}

// NewLogger returns a console logger on stderr at the named level.
func NewLogger(level string) zerolog.Logger {
	return NewLoggerWithOutput(level, os.Stderr)
}

// NewLoggerWithOutput returns a console logger writing to w. An unknown level is info.
func NewLoggerWithOutput(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: true}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
