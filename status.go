package clientbook

import (
	"fmt"
	"strings"

	"github.com/convexa/clientbook/date"
)

// Status is the rebalancing status of a portfolio.
type Status int

const (
	OnTrack  Status = iota // next rebalance is beyond the alert window
	Upcoming               // next rebalance is within the alert window
	Overdue                // next rebalance date has passed
	NoDate                 // no next rebalance date

	numStatuses = iota
)

// Statuses lists every status, in display order.
var Statuses = []Status{OnTrack, Upcoming, Overdue, NoDate}

func (s Status) String() string {
	switch s {
	case OnTrack:
		return "on-track"
	case Upcoming:
		return "upcoming"
	case Overdue:
		return "overdue"
	case NoDate:
		return "no-date"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ParseStatus parses the String form of a status, ignoring case.
func ParseStatus(s string) (Status, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, st := range Statuses {
		if st.String() == key {
			return st, nil
		}
	}
	return 0, fmt.Errorf("invalid status %q, want one of on-track, upcoming, overdue, no-date", s)
}

// DefaultAlertWindowDays is the alert window used when none is configured.
const DefaultAlertWindowDays = 30

// StatusOptions parameterize status derivation.
type StatusOptions struct {
	Reference       date.Date // zero means today
	AlertWindowDays int
}

// DefaultStatusOptions returns options relative to today with the default alert window.
func DefaultStatusOptions() StatusOptions {
	return StatusOptions{AlertWindowDays: DefaultAlertWindowDays}
}

func (o StatusOptions) reference() date.Date {
	if o.Reference.IsZero() {
		return date.Today()
	}
	return o.Reference
}

// DeriveStatus returns the status of a portfolio whose next rebalance is next.
//
// A date exactly AlertWindowDays after the reference is still Upcoming.
func DeriveStatus(next Optional[date.Date], opts StatusOptions) Status {
	return deriveStatus(next, opts.reference(), opts.AlertWindowDays)
}

func deriveStatus(next Optional[date.Date], ref date.Date, window int) Status {
	d, ok := next.Get()
	if !ok {
		return NoDate
	}
	delta := d.DaysSince(ref)
	switch {
	case delta < 0:
		return Overdue
	case delta <= window:
		return Upcoming
	default:
		return OnTrack
	}
}

// Derive returns a new view of t with every record tagged with its status.
// t is left untouched.
func Derive(t Table, opts StatusOptions) View {
	ref := opts.reference() // once for the whole table
	v := make(View, len(t))
	for i, r := range t {
		v[i] = Row{Record: r, Status: deriveStatus(r.NextRebalance, ref, opts.AlertWindowDays)}
	}
	return v
}
