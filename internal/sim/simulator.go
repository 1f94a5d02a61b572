package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/globsim/internal/lava"
)

type Simulator struct {
	params    lava.Params
	metrics   []Metric
	observers []Observer
}

func New(params lava.Params) *Simulator {
	return &Simulator{
		params:    params,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// NewWorld builds and seeds a world for cfg.
func (s *Simulator) NewWorld(cfg Config) (*lava.World, error) {
	w, err := lava.New(s.params, cfg.Seed)
	if err != nil {
		return nil, err
	}
	w.Seed(cfg.Globs, cfg.Axes[0], cfg.Axes[1], cfg.Axes[2])
	return w, nil
}

// Run seeds a fresh world and ticks it cfg.Ticks times. On cancellation the
// partial result is returned together with the context error.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	w, err := s.NewWorld(cfg)
	if err != nil {
		return nil, err
	}

	result := &Result{
		History: make([]Sample, 0, cfg.Ticks+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result.History = append(result.History, SampleOf(w.Snapshot()))

	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			result.Final = w.Snapshot()
			s.collect(result)
			return result, ctx.Err()
		default:
		}

		w.Tick()
		snap := w.Snapshot()
		f := Frame{Tick: snap.Tick, Snapshot: snap}

		for _, m := range s.metrics {
			m.Observe(f)
		}
		for _, obs := range s.observers {
			obs.OnTick(f)
		}

		result.History = append(result.History, SampleOf(snap))
		result.TicksTaken++
	}

	result.Final = w.Snapshot()
	s.collect(result)
	return result, nil
}

func (s *Simulator) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	if cfg.Globs < 0 {
		return fmt.Errorf("globs must not be negative, got %d", cfg.Globs)
	}
	for i, a := range cfg.Axes {
		if a <= 0 {
			return fmt.Errorf("seed axis %d must be positive, got %f", i, a)
		}
	}
	return nil
}

// RunWithCallback ticks until the callback returns false, the tick budget
// runs out (zero means no budget) or ctx is done.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(lava.Snapshot) bool) error {
	if cfg.Ticks < 0 {
		return fmt.Errorf("ticks must not be negative, got %d", cfg.Ticks)
	}

	w, err := s.NewWorld(cfg)
	if err != nil {
		return err
	}

	for i := 0; cfg.Ticks == 0 || i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(w.Snapshot()) {
			return nil
		}
		w.Tick()
	}

	return nil
}
