// Package diagnostics records per-frame measurements and logs their averages.
package diagnostics

import (
	"fmt"
	"slices"
	"strings"
)

// MaxHistory is the default number of samples kept per diagnostic.
const MaxHistory = 20

// ID names a diagnostic.
type ID string

// Built-in diagnostics.
const (
	FPS         ID = "fps"
	FrameTime   ID = "frame_time"
	FrameCount  ID = "frame_count"
	EntityCount ID = "entity_count"
)

// Diagnostic is a bounded history of samples.
type Diagnostic struct {
	ID      ID
	Suffix  string
	history []float64
	max     int
	sum     float64
}

// NewDiagnostic returns a diagnostic keeping up to maxHistory samples.
func NewDiagnostic(id ID, suffix string, maxHistory int) *Diagnostic {
	if maxHistory <= 0 {
		maxHistory = MaxHistory
	}
	return &Diagnostic{ID: id, Suffix: suffix, max: maxHistory}
}

// Add records a sample, evicting the oldest when full.
func (d *Diagnostic) Add(v float64) {
	if len(d.history) == d.max {
		d.sum -= d.history[0]
		d.history = slices.Delete(d.history, 0, 1)
	}
	d.history = append(d.history, v)
	d.sum += v
}

// Value returns the latest sample.
func (d *Diagnostic) Value() (float64, bool) {
	if len(d.history) == 0 {
		return 0, false
	}
	return d.history[len(d.history)-1], true
}

// Average returns the mean of the kept samples.
func (d *Diagnostic) Average() (float64, bool) {
	if len(d.history) == 0 {
		return 0, false
	}
	return d.sum / float64(len(d.history)), true
}

// Len returns the number of kept samples.
func (d *Diagnostic) Len() int { return len(d.history) }

// Diagnostics is the resource holding every registered diagnostic.
type Diagnostics struct {
	byID  map[ID]*Diagnostic
	order []ID
}

// NewDiagnostics returns an empty store.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{byID: make(map[ID]*Diagnostic)}
}

// Register adds d, replacing any diagnostic with the same ID.
func (s *Diagnostics) Register(d *Diagnostic) {
	if _, ok := s.byID[d.ID]; !ok {
		s.order = append(s.order, d.ID)
	}
	s.byID[d.ID] = d
}

// Get returns the diagnostic named id.
func (s *Diagnostics) Get(id ID) (*Diagnostic, bool) {
	d, ok := s.byID[id]
	return d, ok
}

// Add records a sample for id. Unregistered ids are ignored.
func (s *Diagnostics) Add(id ID, v float64) {
	if d, ok := s.byID[id]; ok {
		d.Add(v)
	}
}

// All returns the diagnostics in registration order.
func (s *Diagnostics) All() []*Diagnostic {
	out := make([]*Diagnostic, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// String formats every diagnostic's average, one per line.
func (s *Diagnostics) String() string {
	var b strings.Builder
	for _, d := range s.All() {
		avg, ok := d.Average()
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%-12s: %10.4f%s\n", d.ID, avg, d.Suffix)
	}
	return b.String()
}
