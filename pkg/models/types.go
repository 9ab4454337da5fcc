package models

import (
	"github.com/google/uuid"

	"github.com/radar-rrm/scenario-generator/pkg/config"
)

// Task is a schedulable unit on a scenario timeline. Times and lengths share
// the units of the pack's start_time/end_time; the costs are coefficients for
// a downstream scheduler and are not applied here.
type Task struct {
	TaskID        uint32  `json:"task_id" yaml:"task_id"`
	Length        float64 `json:"length" yaml:"length"`
	EarliestTime  float64 `json:"earliest_time" yaml:"earliest_time"`
	NoCostTime    float64 `json:"no_cost_time" yaml:"no_cost_time"`
	LatestTime    float64 `json:"latest_time" yaml:"latest_time"`
	TardinessCost float64 `json:"tardiness_cost" yaml:"tardiness_cost"`
	DropCost      float64 `json:"drop_cost" yaml:"drop_cost"`
}

// Scenario is one independently generated timeline. Task ids restart at zero
// in every scenario.
type Scenario struct {
	ScenarioID uint32 `json:"scenario_id" yaml:"scenario_id"`
	Tasks      []Task `json:"tasks" yaml:"tasks"`
}

// ScenarioPack is the complete output document
type ScenarioPack struct {
	PackID         uuid.UUID             `json:"pack_id" yaml:"pack_id"`
	Version        uint32                `json:"version" yaml:"version"`
	About          string                `json:"about" yaml:"about"`
	LongAbout      string                `json:"long_about" yaml:"long_about"`
	ScenarioParams config.ScenarioParams `json:"scenario_params" yaml:"scenario_params"`
	Scenarios      []Scenario            `json:"scenarios" yaml:"scenarios"`
}

// TaskCount returns the number of tasks across all scenarios
func (p *ScenarioPack) TaskCount() int {
	n := 0
	for _, sc := range p.Scenarios {
		n += len(sc.Tasks)
	}
	return n
}
