package sim

import (
	"fmt"

	"github.com/san-kum/globsim/internal/lava"
)

// Frame is what observers and metrics see after every tick.
type Frame struct {
	Tick     int
	Snapshot lava.Snapshot
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(f Frame)
}

type Config struct {
	Ticks int
	Seed  int64
	// Globs seeded into the ellipsoid with semi-axes Axes.
	Globs int
	Axes  [3]float64
}

// Sample is one row of run history.
type Sample struct {
	Tick        int     `json:"tick"`
	Population  int     `json:"population"`
	Groups      int     `json:"groups"`
	MeanRadius  float64 `json:"mean_radius"`
	TotalRadius float64 `json:"total_radius"`
	Splits      int     `json:"splits"`
	Merges      int     `json:"merges"`
	Culled      int     `json:"culled"`
}

func SampleOf(s lava.Snapshot) Sample {
	total := 0.0
	for _, g := range s.Globs {
		total += g.Radius
	}
	mean := 0.0
	if len(s.Globs) > 0 {
		mean = total / float64(len(s.Globs))
	}
	return Sample{
		Tick:        s.Tick,
		Population:  len(s.Globs),
		Groups:      s.Stats.Groups,
		MeanRadius:  mean,
		TotalRadius: total,
		Splits:      s.Stats.Splits,
		Merges:      s.Stats.Merges,
		Culled:      s.Stats.Culled,
	}
}

type Result struct {
	History    []Sample
	Final      lava.Snapshot
	Metrics    map[string]float64
	TicksTaken int
}

// Series extracts one column of the history for plotting.
func (r *Result) Series(column string) ([]float64, error) {
	out := make([]float64, len(r.History))
	for i, s := range r.History {
		switch column {
		case "population":
			out[i] = float64(s.Population)
		case "groups":
			out[i] = float64(s.Groups)
		case "mean_radius":
			out[i] = s.MeanRadius
		case "total_radius":
			out[i] = s.TotalRadius
		case "splits":
			out[i] = float64(s.Splits)
		case "merges":
			out[i] = float64(s.Merges)
		case "culled":
			out[i] = float64(s.Culled)
		default:
			return nil, fmt.Errorf("unknown series: %s", column)
		}
	}
	return out, nil
}

var Columns = []string{"population", "groups", "mean_radius", "total_radius", "splits", "merges", "culled"}
