package optim

import (
	"context"
	"math"

	"github.com/san-kum/globsim/internal/config"
	"github.com/san-kum/globsim/internal/metrics"
	"github.com/san-kum/globsim/internal/sim"
)

// GridSearch tries every combination of the given field values and keeps
// the one whose metric lands closest to a target.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs base with each combination applied and returns the
// combination minimising |metric - target|. Combinations that fail to
// build or run are skipped. A cancelled context stops the search early with
// the best found so far.
func (g *GridSearch) Search(
	ctx context.Context,
	base *config.Config,
	metricName string,
	target float64,
) (map[string]float64, float64, error) {

	best := math.Inf(1)
	var bestParams map[string]float64

	g.searchRecursive(ctx, 0, make(map[string]float64), base, metricName, target, &best, &bestParams)

	return bestParams, best, ctx.Err()
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Config,
	metricName string,
	target float64,
	best *float64,
	bestParams *map[string]float64,
) {
	if ctx.Err() != nil {
		return
	}

	if depth == len(g.paramNames) {
		val, err := evaluate(ctx, base, current, metricName)
		if err != nil {
			return
		}

		if d := math.Abs(val - target); d < *best {
			*best = d
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.searchRecursive(ctx, depth+1, newParams, base, metricName, target, best, bestParams)
	}
}

func evaluate(ctx context.Context, base *config.Config, values map[string]float64, metricName string) (float64, error) {
	cfg := *base
	if err := cfg.Apply(values); err != nil {
		return 0, err
	}
	if err := cfg.Params().Validate(); err != nil {
		return 0, err
	}

	s := sim.New(cfg.Params())
	for _, m := range metrics.Defaults() {
		s.AddMetric(m)
	}
	result, err := s.Run(ctx, cfg.RunConfig())
	if err != nil {
		return 0, err
	}
	return result.Metrics[metricName], nil
}
