package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/globsim/internal/config"
	"github.com/san-kum/globsim/internal/storage"
)

const scenarioYAML = `name: demo
description: two short runs
steps:
  - preset: calm
    ticks: 20
    seed: 5
    save_as: calm-short
  - preset: volatile
    ticks: 10
    seed: 6
    params:
      globs: 8
`

func TestLoadAndRunScenario(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	if err := os.WriteFile(path, []byte(scenarioYAML), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	scenario, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if scenario.Name != "demo" || len(scenario.Steps) != 2 {
		t.Fatalf("unexpected scenario %+v", scenario)
	}
	if scenario.Steps[1].Params["globs"] != 8 {
		t.Errorf("expected globs override 8, got %v", scenario.Steps[1].Params)
	}

	st := storage.New(filepath.Join(dir, "runs"))
	results, err := RunScenario(context.Background(), scenario, st)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].RunID == "" {
		t.Error("first step should be saved")
	}
	if results[1].RunID != "" {
		t.Error("second step has no save_as and should not be saved")
	}
	if results[1].Name != "demo-step2" {
		t.Errorf("unexpected step name %s", results[1].Name)
	}
	if results[0].Result.TicksTaken != 20 {
		t.Errorf("expected 20 ticks, got %d", results[0].Result.TicksTaken)
	}

	runs, err := st.List()
	if err != nil || len(runs) != 1 {
		t.Errorf("expected 1 stored run, got %d (%v)", len(runs), err)
	}
}

func TestStepConfigErrors(t *testing.T) {
	if _, err := StepConfig(ScenarioStep{Preset: "nope"}); err == nil {
		t.Error("expected unknown preset error")
	}
	if _, err := StepConfig(ScenarioStep{Params: map[string]float64{"gravity": 1}}); err == nil {
		t.Error("expected unknown parameter error")
	}
	if _, err := StepConfig(ScenarioStep{Params: map[string]float64{"min_radius": -1}}); err == nil {
		t.Error("expected validation error")
	}
}

func TestRunSweep(t *testing.T) {
	sweep := &ParameterSweep{
		Preset:    "sparse",
		ParamName: "split_prob",
		ParamMin:  0,
		ParamMax:  1,
		NumSteps:  3,
		Ticks:     15,
		Seed:      2,
	}
	results, err := RunSweep(context.Background(), sweep)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[1].ParamValue != 0.5 {
		t.Errorf("expected midpoint 0.5, got %f", results[1].ParamValue)
	}
	if results[0].Splits != 0 {
		t.Errorf("split_prob 0 should never split, got %f", results[0].Splits)
	}

	sweep.NumSteps = 1
	if _, err := RunSweep(context.Background(), sweep); err == nil {
		t.Error("expected error for a single step")
	}
}

func TestRunSweepUsesBaseConfig(t *testing.T) {
	base := config.DefaultConfig()
	base.Globs = 4
	base.Split.Prob = 0.9

	sweep := &ParameterSweep{
		Base:      base,
		Preset:    "calm",
		ParamName: "split_prob",
		ParamMin:  0,
		ParamMax:  0,
		NumSteps:  2,
		Ticks:     5,
		Seed:      3,
	}
	results, err := RunSweep(context.Background(), sweep)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	for _, r := range results {
		if r.PeakPopulation > 4 || r.PeakPopulation < 1 {
			t.Errorf("expected peak population within the 4 seeded globs, got %f", r.PeakPopulation)
		}
		if r.Splits != 0 {
			t.Errorf("swept split_prob 0 should override the base, got %f splits", r.Splits)
		}
	}
	if base.Split.Prob != 0.9 {
		t.Errorf("sweep must not modify the base config, got split prob %f", base.Split.Prob)
	}
}
