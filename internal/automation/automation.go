package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/san-kum/globsim/internal/analysis"
	"github.com/san-kum/globsim/internal/config"
	"github.com/san-kum/globsim/internal/metrics"
	"github.com/san-kum/globsim/internal/sim"
	"github.com/san-kum/globsim/internal/storage"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted list of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset and overrides single fields by name.
type ScenarioStep struct {
	Preset string             `yaml:"preset"`
	Ticks  int                `yaml:"ticks"`
	Seed   int64              `yaml:"seed"`
	Params map[string]float64 `yaml:"params"`
	SaveAs string             `yaml:"save_as"`
}

type StepResult struct {
	Name   string
	RunID  string
	Result *sim.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// StepConfig resolves the config a step runs with.
func StepConfig(step ScenarioStep) (*config.Config, error) {
	name := step.Preset
	if name == "" {
		name = "lavalamp"
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s", name)
	}
	return applyStep(cfg, step)
}

func applyStep(cfg *config.Config, step ScenarioStep) (*config.Config, error) {
	if step.Ticks > 0 {
		cfg.Ticks = step.Ticks
	}
	if step.Seed != 0 {
		cfg.Seed = step.Seed
	}
	if err := cfg.Apply(step.Params); err != nil {
		return nil, err
	}
	if err := cfg.Params().Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunScenario executes every step in order. Steps with SaveAs are stored
// when st is non-nil.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := StepConfig(step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		name := step.SaveAs
		if name == "" {
			name = fmt.Sprintf("%s-step%d", scenario.Name, i+1)
		}
		fmt.Printf("Running step %d/%d: %s\n", i+1, len(scenario.Steps), name)

		s := sim.New(cfg.Params())
		for _, m := range metrics.Defaults() {
			s.AddMetric(m)
		}

		result, err := s.Run(ctx, cfg.RunConfig())
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Name: name, Result: result}
		if st != nil && step.SaveAs != "" {
			if sr.RunID, err = st.Save(step.SaveAs, cfg, result); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}

// ParameterSweep runs one config across evenly spaced values of a field.
// Base takes precedence over Preset when set.
type ParameterSweep struct {
	Base      *config.Config
	Preset    string
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Ticks     int
	Seed      int64
}

type SweepResult struct {
	ParamValue     float64
	MeanPopulation float64
	PeakPopulation float64
	Splits         float64
	Merges         float64
	Period         float64
}

func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		step := ScenarioStep{
			Preset: sweep.Preset,
			Ticks:  sweep.Ticks,
			Seed:   sweep.Seed,
			Params: map[string]float64{sweep.ParamName: paramVal},
		}
		var cfg *config.Config
		var err error
		if sweep.Base != nil {
			base := *sweep.Base
			cfg, err = applyStep(&base, step)
		} else {
			cfg, err = StepConfig(step)
		}
		if err != nil {
			return nil, err
		}

		s := sim.New(cfg.Params())
		for _, m := range metrics.Defaults() {
			s.AddMetric(m)
		}
		result, err := s.Run(ctx, cfg.RunConfig())
		if err != nil {
			return nil, err
		}

		pop, _ := result.Series("population")
		period, _ := analysis.DominantPeriod(pop)
		results = append(results, SweepResult{
			ParamValue:     paramVal,
			MeanPopulation: result.Metrics["population"],
			PeakPopulation: analysis.Describe(pop).Max,
			Splits:         result.Metrics["splits"],
			Merges:         result.Metrics["merges"],
			Period:         period,
		})

		fmt.Printf("Sweep %d/%d: %s=%.4f\n", i+1, sweep.NumSteps, sweep.ParamName, paramVal)
	}

	return results, nil
}
