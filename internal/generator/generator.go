// Package generator draws scenarios and tasks from the constrained uniform
// distributions described by config.ScenarioParams.
package generator

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/radar-rrm/scenario-generator/pkg/config"
	"github.com/radar-rrm/scenario-generator/pkg/models"
	"github.com/radar-rrm/scenario-generator/pkg/utils"
)

const tracerName = "github.com/radar-rrm/scenario-generator/internal/generator"

// Sampler draws uniformly distributed values. UniformClosed must return a
// value in [lo, hi] and exactly lo when lo == hi.
type Sampler interface {
	UniformClosed(lo, hi float64) float64
}

// ProgressFunc receives the number of completed scenarios and the total.
// Calls are serialized.
type ProgressFunc func(done, total int)

// Generator produces the scenarios of a pack from a master seed
type Generator struct {
	seed     int64
	workers  int
	progress ProgressFunc
	tracer   trace.Tracer
}

// NewGenerator creates a new scenario generator. The same seed always yields
// the same scenarios, whatever the worker count.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		seed:    seed,
		workers: 1,
		tracer:  otel.Tracer(tracerName),
	}
}

// WithWorkers sets how many scenarios are generated concurrently
func (g *Generator) WithWorkers(n int) *Generator {
	if n < 1 {
		n = 1
	}
	g.workers = n
	return g
}

// WithProgressReporter sets a callback invoked after each scenario completes
func (g *Generator) WithProgressReporter(fn ProgressFunc) *Generator {
	g.progress = fn
	return g
}

// Seed returns the master seed
func (g *Generator) Seed() int64 {
	return g.seed
}

// Generate validates params and produces exactly params.ScenarioCount
// scenarios, ordered by id.
func (g *Generator) Generate(ctx context.Context, params config.ScenarioParams) ([]models.Scenario, error) {
	ctx, span := g.tracer.Start(ctx, "generator.Generate", trace.WithAttributes(
		attribute.Int64("scenario.seed", g.seed),
		attribute.Int("scenario.count", int(params.ScenarioCount)),
		attribute.Int("scenario.task_count", int(params.TaskCount)),
		attribute.Int("generator.workers", g.workers),
	))
	defer span.End()

	scenarios, err := g.generate(ctx, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}
	return scenarios, nil
}

func (g *Generator) generate(ctx context.Context, params config.ScenarioParams) ([]models.Scenario, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	total := int(params.ScenarioCount)

	// Per-scenario seeds are drawn up front in id order so that scheduling
	// across workers cannot change which stream a scenario gets.
	master := utils.NewRandSource(g.seed)
	seeds := make([]int64, total)
	for i := range seeds {
		seeds[i] = master.Int63()
	}

	scenarios := make([]models.Scenario, total)
	var mu sync.Mutex
	done := 0

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(g.workers)

	for i := 0; i < total; i++ {
		if err := groupCtx.Err(); err != nil {
			break
		}
		id := i
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			rng := utils.NewRandSource(seeds[id])
			scenarios[id] = GenerateScenario(rng, params, uint32(id))

			if g.progress != nil {
				mu.Lock()
				done++
				g.progress(done, total)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("generate scenarios: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("generate scenarios: %w", err)
	}
	return scenarios, nil
}

// GenerateScenario draws params.TaskCount tasks with ids 0..TaskCount-1.
// params must be valid.
func GenerateScenario(rng Sampler, params config.ScenarioParams, scenarioID uint32) models.Scenario {
	tasks := make([]models.Task, params.TaskCount)
	for i := range tasks {
		tasks[i] = GenerateTask(rng, params, uint32(i))
	}
	return models.Scenario{
		ScenarioID: scenarioID,
		Tasks:      tasks,
	}
}

// GenerateTask draws a single task. Each draw narrows the interval of the
// next, so the order of draws is part of the contract. params must be valid.
func GenerateTask(rng Sampler, params config.ScenarioParams, taskID uint32) models.Task {
	length := rng.UniformClosed(params.MinTaskLength, params.MaxTaskLength)

	// Last point at which the task can start at zero cost and still finish by
	// end_time. Rounding in end-length may dip below start_time when the task
	// fills the whole timeline.
	latestNoCostTime := utils.MaxFloat64(params.StartTime, params.EndTime-length)
	noCostTime := rng.UniformClosed(params.StartTime, latestNoCostTime)

	earliestTime := noCostTime
	if !params.EarliestTimeIsNoCost {
		earliestTime = rng.UniformClosed(params.StartTime, noCostTime)
	}

	latestTime := rng.UniformClosed(noCostTime, params.EndTime)

	tardinessCost := rng.UniformClosed(params.MinTardinessCost, params.MaxTardinessCost)
	dropCost := rng.UniformClosed(params.MinDropCost, params.MaxDropCost)

	return models.Task{
		TaskID:        taskID,
		Length:        length,
		EarliestTime:  earliestTime,
		NoCostTime:    noCostTime,
		LatestTime:    latestTime,
		TardinessCost: tardinessCost,
		DropCost:      dropCost,
	}
}
