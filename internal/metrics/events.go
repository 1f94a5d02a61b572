package metrics

import "github.com/san-kum/globsim/internal/sim"

// EventCount totals one per-tick event counter over a run.
type EventCount struct {
	name  string
	pick  func(f sim.Frame) int
	total int
}

func NewSplits() *EventCount {
	return &EventCount{name: "splits", pick: func(f sim.Frame) int { return f.Snapshot.Stats.Splits }}
}

func NewMerges() *EventCount {
	return &EventCount{name: "merges", pick: func(f sim.Frame) int { return f.Snapshot.Stats.Merges }}
}

func NewDetachments() *EventCount {
	return &EventCount{name: "detachments", pick: func(f sim.Frame) int { return f.Snapshot.Stats.Detached }}
}

func (e *EventCount) Name() string        { return e.name }
func (e *EventCount) Observe(f sim.Frame) { e.total += e.pick(f) }
func (e *EventCount) Value() float64      { return float64(e.total) }
func (e *EventCount) Reset()              { e.total = 0 }

// Defaults is the metric set attached to CLI runs.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewPopulation(),
		NewGroups(),
		NewRadiusDrift(),
		NewSplits(),
		NewMerges(),
		NewDetachments(),
	}
}
