package clientbook

import (
	"strings"

	"github.com/convexa/clientbook/date"
	"golang.org/x/text/cases"
)

// State is everything an interaction cycle depends on.
//
// A State is built for one cycle and not modified by it: a new upload, a
// filter change or a selection change means a new State and a new Report.
type State struct {
	Raw      RawTable
	Aliases  Aliases // nil means DefaultAliases()
	Status   StatusOptions
	Criteria Criteria
}

// Report is the outcome of a cycle.
type Report struct {
	Reference       date.Date
	AlertWindowDays int

	Table    Table     // normalized input
	Warnings []Warning // normalization warnings
	View     View      // every row, tagged with its status
	Criteria Criteria
	Filtered View          // rows of View matching Criteria
	KPIs     KPIs          // of Filtered
	Advisors []AdvisorKPIs // of Filtered

	// Fallback is the error that made the caller replace the input by the
	// example dataset, nil when the report is over the actual input.
	Fallback error
}

// NewReport runs the whole pipeline over s: normalize, derive the statuses,
// filter, then aggregate the filtered rows.
//
// The only error is a *SchemaError when s.Raw cannot be normalized.
func NewReport(s State) (*Report, error) {
	aliases := s.Aliases
	if aliases == nil {
		aliases = DefaultAliases()
	}
	t, warnings, err := Normalize(s.Raw, aliases)
	if err != nil {
		return nil, err
	}

	opts := s.Status
	opts.Reference = opts.reference()
	v := Derive(t, opts)
	filtered := Filter(v, s.Criteria)

	return &Report{
		Reference:       opts.Reference,
		AlertWindowDays: opts.AlertWindowDays,
		Table:           t,
		Warnings:        warnings,
		View:            v,
		Criteria:        s.Criteria,
		Filtered:        filtered,
		KPIs:            Aggregate(filtered),
		Advisors:        AggregateByAdvisor(filtered),
	}, nil
}

// Client returns the row of the client named name, ignoring case.
// The search covers every row, not only the filtered ones.
func (r *Report) Client(name string) (Row, bool) {
	fold := cases.Fold()
	key := fold.String(strings.TrimSpace(name))
	for _, row := range r.View {
		if fold.String(row.Client) == key {
			return row, true
		}
	}
	return Row{}, false
}
