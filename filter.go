package clientbook

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// NoAdvisor is the advisor allowlist entry matching rows without an advisor.
// Normalization never produces an empty advisor name, so it cannot clash with a real one.
const NoAdvisor = ""

// Criteria selects rows. The zero Criteria selects every row.
type Criteria struct {
	// Name is searched in the client name, ignoring case. Empty matches every client.
	Name string
	// Advisors is the advisor allowlist, nil allows every row.
	// Rows without an advisor are only allowed by a non nil list if it holds NoAdvisor.
	Advisors []string
	// Statuses is the status allowlist, nil allows every status.
	Statuses []Status
}

// DefaultCriteria returns the explicit criteria selecting every row of v: every
// advisor present in v, NoAdvisor if a row has none, and every status.
func DefaultCriteria(v View) Criteria {
	c := Criteria{Advisors: []string{}, Statuses: slices.Clone(Statuses)}
	orphans := false
	for _, r := range v {
		name, ok := r.Advisor.Get()
		if !ok {
			orphans = true
			continue
		}
		if !slices.Contains(c.Advisors, name) {
			c.Advisors = append(c.Advisors, name)
		}
	}
	if orphans {
		c.Advisors = append(c.Advisors, NoAdvisor)
	}
	return c
}

// matcher is Criteria compiled for repeated use.
type matcher struct {
	fold     cases.Caser
	name     string
	advisors map[string]bool // nil allows all
	statuses map[Status]bool // nil allows all
}

func (c Criteria) matcher() *matcher {
	m := &matcher{fold: cases.Fold()}
	m.name = m.fold.String(strings.TrimSpace(c.Name))
	if c.Advisors != nil {
		m.advisors = make(map[string]bool, len(c.Advisors))
		for _, a := range c.Advisors {
			m.advisors[a] = true
		}
	}
	if c.Statuses != nil {
		m.statuses = make(map[Status]bool, len(c.Statuses))
		for _, s := range c.Statuses {
			m.statuses[s] = true
		}
	}
	return m
}

func (m *matcher) match(r Row) bool {
	if m.name != "" && !strings.Contains(m.fold.String(r.Client), m.name) {
		return false
	}
	if m.advisors != nil && !m.advisors[r.Advisor.Or(NoAdvisor)] {
		return false
	}
	if m.statuses != nil && !m.statuses[r.Status] {
		return false
	}
	return true
}

// Match reports whether r satisfies every predicate of c.
func (c Criteria) Match(r Row) bool { return c.matcher().match(r) }

// Filter returns the rows of v matching c, in their original order.
// v is left untouched.
func Filter(v View, c Criteria) View {
	m := c.matcher()
	res := make(View, 0, len(v))
	for _, r := range v {
		if m.match(r) {
			res = append(res, r)
		}
	}
	return res
}
