package web

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/convexa/clientbook"
	"github.com/convexa/clientbook/date"
	"github.com/convexa/clientbook/format"
)

//go:embed page.html
var pageHTML string

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

// noAdvisorValue is the query value standing for clientbook.NoAdvisor.
const noAdvisorValue = "-"

// formMarker is the query parameter sent by the filter form.
const formMarker = "filter"

// page is the layout around a rendered markdown body.
type page struct {
	Title   string
	Filters *Filters // nil hides the filter form
	Body    template.HTML
}

func (p page) render(w io.Writer, body string) error {
	p.Body = template.HTML(body)
	return pageTemplate.Execute(w, p)
}

// Option is a checkbox of the filter form.
type Option struct {
	Value   string
	Label   string
	Checked bool
}

// Filters is the filter form state.
type Filters struct {
	Name     string
	Advisors []Option
	Statuses []Option

	Ref, Window string // carried over from the query
}

// DefaultFilters returns the filter form of rep: one option per advisor
// present in the table and per status, checked when rep.Criteria allows it.
func DefaultFilters(rep *clientbook.Report, f *format.Formatter) *Filters {
	all := clientbook.DefaultCriteria(rep.View)
	c := rep.Criteria
	fs := &Filters{Name: c.Name}
	for _, a := range all.Advisors {
		o := Option{Value: a, Label: a, Checked: c.Advisors == nil || slices.Contains(c.Advisors, a)}
		if a == clientbook.NoAdvisor {
			o.Value, o.Label = noAdvisorValue, "(none)"
		}
		fs.Advisors = append(fs.Advisors, o)
	}
	for _, s := range all.Statuses {
		fs.Statuses = append(fs.Statuses, Option{
			Value:   s.String(),
			Label:   f.Status(s),
			Checked: c.Statuses == nil || slices.Contains(c.Statuses, s),
		})
	}
	return fs
}

// parseStatusOptions returns def with the reference date and the alert window
// of the query, ref and window, when given.
func parseStatusOptions(r *http.Request, def clientbook.StatusOptions) (clientbook.StatusOptions, error) {
	q := r.URL.Query()
	opts := def
	if v := q.Get("ref"); v != "" {
		ref, err := date.Parse(v)
		if err != nil {
			return opts, fmt.Errorf("invalid reference date: %w", err)
		}
		opts.Reference = ref
	}
	if v := q.Get("window"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, fmt.Errorf("invalid alert window %q", v)
		}
		opts.AlertWindowDays = n
	}
	return opts, nil
}

// parseCriteria reads the criteria from the query: q is the name, advisor and
// status are repeated. An absent advisor or status parameter allows all, unless
// the query comes from the filter form.
func parseCriteria(r *http.Request) (clientbook.Criteria, error) {
	q := r.URL.Query()
	c := clientbook.Criteria{Name: strings.TrimSpace(q.Get("q"))}
	fromForm := q.Has(formMarker)
	if advisors, ok := q["advisor"]; ok || fromForm {
		c.Advisors = []string{}
		for _, a := range advisors {
			if a == noAdvisorValue {
				a = clientbook.NoAdvisor
			}
			c.Advisors = append(c.Advisors, a)
		}
	}
	if statuses, ok := q["status"]; ok || fromForm {
		c.Statuses = []clientbook.Status{}
		for _, v := range statuses {
			s, err := clientbook.ParseStatus(v)
			if err != nil {
				return c, fmt.Errorf("invalid status filter: %w", err)
			}
			c.Statuses = append(c.Statuses, s)
		}
	}
	return c, nil
}
