// Package metrics summarizes and checks generated scenario packs.
package metrics

import (
	"github.com/samber/lo"

	"github.com/radar-rrm/scenario-generator/pkg/models"
	"github.com/radar-rrm/scenario-generator/pkg/utils"
)

// Task field names, as they appear in the document
const (
	FieldLength        = "length"
	FieldEarliestTime  = "earliest_time"
	FieldNoCostTime    = "no_cost_time"
	FieldLatestTime    = "latest_time"
	FieldTardinessCost = "tardiness_cost"
	FieldDropCost      = "drop_cost"
)

var taskFields = []struct {
	name  string
	value func(models.Task) float64
}{
	{FieldLength, func(t models.Task) float64 { return t.Length }},
	{FieldEarliestTime, func(t models.Task) float64 { return t.EarliestTime }},
	{FieldNoCostTime, func(t models.Task) float64 { return t.NoCostTime }},
	{FieldLatestTime, func(t models.Task) float64 { return t.LatestTime }},
	{FieldTardinessCost, func(t models.Task) float64 { return t.TardinessCost }},
	{FieldDropCost, func(t models.Task) float64 { return t.DropCost }},
}

// FieldStats describes the observed distribution of one task field
type FieldStats struct {
	Field  string
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	StdDev float64
}

// Summary describes a pack
type Summary struct {
	PackID    string
	Version   uint32
	Scenarios int
	Tasks     int
	Fields    []FieldStats
}

// Summarize computes per-field statistics over every task in p
func Summarize(p *models.ScenarioPack) Summary {
	tasks := lo.FlatMap(p.Scenarios, func(sc models.Scenario, _ int) []models.Task {
		return sc.Tasks
	})

	summary := Summary{
		PackID:    p.PackID.String(),
		Version:   p.Version,
		Scenarios: len(p.Scenarios),
		Tasks:     len(tasks),
		Fields:    make([]FieldStats, 0, len(taskFields)),
	}
	for _, f := range taskFields {
		values := lo.Map(tasks, func(t models.Task, _ int) float64 {
			return f.value(t)
		})
		summary.Fields = append(summary.Fields, FieldStats{
			Field:  f.name,
			Min:    lo.Min(values),
			Max:    lo.Max(values),
			Mean:   utils.Mean(values),
			Median: utils.P50(values),
			StdDev: utils.StdDev(values),
		})
	}
	return summary
}

// Field returns the statistics for the named field
func (s Summary) Field(name string) (FieldStats, bool) {
	return lo.Find(s.Fields, func(f FieldStats) bool {
		return f.Field == name
	})
}
