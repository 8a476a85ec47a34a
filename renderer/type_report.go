package renderer

import (
	"strings"

	"github.com/convexa/clientbook"
	"github.com/convexa/clientbook/format"
)

// Report is a struct to represent the report data for rendering.
// Every value is already formatted and escaped for a markdown table.
type Report struct {
	Reference       string `json:"reference"`
	AlertWindowDays int    `json:"alertWindowDays"`
	Fallback        string `json:"fallback,omitempty"`
	Filter          string `json:"filter,omitempty"`

	Warnings []string          `json:"warnings,omitempty"`
	KPIs     format.KPIStrings `json:"kpis"`
	Advisors []AdvisorLine     `json:"advisors"`
	Clients  []format.Strings  `json:"clients"`
}

// AdvisorLine is a row of the per advisor table.
type AdvisorLine struct {
	Advisor string            `json:"advisor"`
	KPIs    format.KPIStrings `json:"kpis"`
}

// NewReport converts r for rendering.
func NewReport(r *clientbook.Report, f *format.Formatter) *Report {
	conv := f.Convention()
	out := &Report{
		Reference:       f.Date(clientbook.Some(r.Reference)),
		AlertWindowDays: r.AlertWindowDays,
		Filter:          describeCriteria(r.Criteria, f),
		KPIs:            f.KPIs(r.KPIs),
	}
	if r.Fallback != nil {
		out.Fallback = r.Fallback.Error()
	}
	for _, w := range r.Warnings {
		out.Warnings = append(out.Warnings, w.String())
	}
	for _, a := range r.Advisors {
		out.Advisors = append(out.Advisors, AdvisorLine{
			Advisor: cell(a.Advisor.Or(conv.NotAvailable)),
			KPIs:    f.KPIs(a.KPIs),
		})
	}
	for _, row := range r.Filtered {
		s := f.Row(row)
		s.Client = cell(s.Client)
		s.Advisor = cell(s.Advisor)
		out.Clients = append(out.Clients, s)
	}
	return out
}

// describeCriteria returns a one line summary of c, empty when c has no restriction.
func describeCriteria(c clientbook.Criteria, f *format.Formatter) string {
	var parts []string
	if name := strings.TrimSpace(c.Name); name != "" {
		parts = append(parts, `name contains "`+name+`"`)
	}
	if c.Advisors != nil {
		names := make([]string, len(c.Advisors))
		for i, a := range c.Advisors {
			if a == clientbook.NoAdvisor {
				a = "(none)"
			}
			names[i] = a
		}
		parts = append(parts, "advisors: "+strings.Join(names, ", "))
	}
	if c.Statuses != nil {
		labels := make([]string, len(c.Statuses))
		for i, s := range c.Statuses {
			labels[i] = f.Status(s)
		}
		parts = append(parts, "statuses: "+strings.Join(labels, ", "))
	}
	return strings.Join(parts, "; ")
}
