package transit

import "strings"

const (
	// NoBuses is reported when a page was read but held no rows for the line.
	NoBuses = "Sin buses"
	// NoData is reported when the page for a line could not be fetched or read.
	NoData = "Sin datos"
	// Placeholder is shown for lines that have not been polled yet.
	Placeholder = "…"

	// ValueSeparator joins the arrival values kept for one line.
	ValueSeparator = " | "

	// MaxArrivals is the number of arrival values kept per line.
	MaxArrivals = 2

	// urgentMarker is the token the operator uses for a bus at the stop.
	urgentMarker = "LLEGANDO"
)

// LineSpec identifies one monitored bus line.
type LineSpec struct {
	Name string // display name, also the label matched in arrival rows
	Ref  string // value of the ?ref= query parameter for the line's page
}

// Label returns the display label for the line, e.g. "Línea 9:".
func (l LineSpec) Label() string {
	return "Línea " + l.Name + ":"
}

// DefaultLines is the fixed set of lines shown on the board, in display order.
var DefaultLines = []LineSpec{
	{Name: "9", Ref: "191"},
	{Name: "7", Ref: "166"},
	{Name: "12", Ref: "132"},
}

// Snapshot maps a line's display name to its formatted arrival value.
type Snapshot map[string]string

// Clone returns a copy of s.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Equal reports whether s and other hold the same entries.
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s) != len(other) {
		return false
	}
	for k, v := range s {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// IsUrgent reports whether an arrival value announces a bus arriving now.
func IsUrgent(value string) bool {
	return strings.Contains(strings.ToUpper(value), urgentMarker)
}
