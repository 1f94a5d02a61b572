package sim

import (
	"context"
	"testing"

	"github.com/san-kum/globsim/internal/lava"
)

func testConfig() Config {
	return Config{Ticks: 20, Seed: 1, Globs: 30, Axes: [3]float64{400, 300, 350}}
}

func TestSimulatorRun(t *testing.T) {
	s := New(lava.DefaultParams())

	result, err := s.Run(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.History) != 21 {
		t.Errorf("expected 21 samples, got %d", len(result.History))
	}
	if result.TicksTaken != 20 {
		t.Errorf("expected 20 ticks, got %d", result.TicksTaken)
	}
	if result.History[0].Population != 30 {
		t.Errorf("expected 30 seeded globs, got %d", result.History[0].Population)
	}
	if result.Final.Tick != 20 {
		t.Errorf("expected final tick 20, got %d", result.Final.Tick)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := New(lava.DefaultParams())

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero ticks", Config{Ticks: 0, Globs: 1, Axes: [3]float64{1, 1, 1}}},
		{"negative globs", Config{Ticks: 1, Globs: -1, Axes: [3]float64{1, 1, 1}}},
		{"flat axis", Config{Ticks: 1, Globs: 1, Axes: [3]float64{1, 0, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSimulatorInvalidParams(t *testing.T) {
	p := lava.DefaultParams()
	p.Depth = 0
	if _, err := New(p).Run(context.Background(), testConfig()); err == nil {
		t.Error("expected error for invalid params")
	}
}

func TestSimulatorCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New(lava.DefaultParams()).Run(ctx, testConfig())
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result == nil || result.TicksTaken != 0 {
		t.Errorf("expected empty partial result, got %+v", result)
	}
}

type testMetric struct {
	count int
	sum   float64
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(f Frame) {
	t.count++
	t.sum += float64(len(f.Snapshot.Globs))
}
func (t *testMetric) Value() float64 {
	if t.count == 0 {
		return 0
	}
	return t.sum / float64(t.count)
}
func (t *testMetric) Reset() {
	t.count = 0
	t.sum = 0
}

type countingObserver struct{ ticks []int }

func (c *countingObserver) OnTick(f Frame) { c.ticks = append(c.ticks, f.Tick) }

func TestSimulatorMetricsAndObservers(t *testing.T) {
	s := New(lava.DefaultParams())

	metric := &testMetric{}
	obs := &countingObserver{}
	s.AddMetric(metric)
	s.AddObserver(obs)

	result, err := s.Run(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := result.Metrics["test"]; !ok {
		t.Error("metric not found in result")
	}
	if metric.count != 20 {
		t.Errorf("expected 20 observations, got %d", metric.count)
	}
	if len(obs.ticks) != 20 || obs.ticks[0] != 1 || obs.ticks[19] != 20 {
		t.Errorf("unexpected observed ticks %v", obs.ticks)
	}
}

func TestRunWithCallback(t *testing.T) {
	s := New(lava.DefaultParams())
	calls := 0
	err := s.RunWithCallback(context.Background(), Config{Globs: 5, Axes: [3]float64{400, 300, 350}}, func(snap lava.Snapshot) bool {
		calls++
		return calls < 7
	})
	if err != nil {
		t.Fatalf("callback run failed: %v", err)
	}
	if calls != 7 {
		t.Errorf("expected 7 calls, got %d", calls)
	}
}

func TestEnsemble(t *testing.T) {
	e := NewEnsemble(New(lava.DefaultParams()), 3, 100, func() []Metric { return []Metric{&testMetric{}} })
	results, err := e.Run(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if r.TicksTaken != 20 {
			t.Errorf("run %d: expected 20 ticks, got %d", i, r.TicksTaken)
		}
		if _, ok := r.Metrics["test"]; !ok {
			t.Errorf("run %d: metric missing", i)
		}
	}
}
