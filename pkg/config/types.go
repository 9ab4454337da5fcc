package config

// ScenarioParams holds the global bounds every scenario in a pack is drawn from.
// It is echoed verbatim into the generated pack.
type ScenarioParams struct {
	ScenarioCount        uint32  `json:"scenario_count" yaml:"scenario_count"`
	TaskCount            uint32  `json:"task_count" yaml:"task_count"`
	StartTime            float64 `json:"start_time" yaml:"start_time"`
	EndTime              float64 `json:"end_time" yaml:"end_time"`
	MinTaskLength        float64 `json:"min_task_length" yaml:"min_task_length"`
	MaxTaskLength        float64 `json:"max_task_length" yaml:"max_task_length"`
	MinTardinessCost     float64 `json:"min_tardiness_cost" yaml:"min_tardiness_cost"`
	MaxTardinessCost     float64 `json:"max_tardiness_cost" yaml:"max_tardiness_cost"`
	MinDropCost          float64 `json:"min_drop_cost" yaml:"min_drop_cost"`
	MaxDropCost          float64 `json:"max_drop_cost" yaml:"max_drop_cost"`
	EarliestTimeIsNoCost bool    `json:"earliest_time_is_no_cost" yaml:"earliest_time_is_no_cost"`
}

// Defaults used by the command line and as the base for parameter files.
const (
	DefaultScenarioCount    = 100
	DefaultTaskCount        = 5
	DefaultStartTime        = 0.0
	DefaultEndTime          = 1.0
	DefaultMinTaskLength    = 0.0
	DefaultMaxTaskLength    = 0.4
	DefaultMinTardinessCost = 0.0
	DefaultMaxTardinessCost = 1.0
	DefaultMinDropCost      = 0.0
	DefaultMaxDropCost      = 1.0
)

// DefaultScenarioParams returns the documented default parameters
func DefaultScenarioParams() ScenarioParams {
	return ScenarioParams{
		ScenarioCount:    DefaultScenarioCount,
		TaskCount:        DefaultTaskCount,
		StartTime:        DefaultStartTime,
		EndTime:          DefaultEndTime,
		MinTaskLength:    DefaultMinTaskLength,
		MaxTaskLength:    DefaultMaxTaskLength,
		MinTardinessCost: DefaultMinTardinessCost,
		MaxTardinessCost: DefaultMaxTardinessCost,
		MinDropCost:      DefaultMinDropCost,
		MaxDropCost:      DefaultMaxDropCost,
	}
}

// TotalTasks returns the number of tasks a pack built from p contains
func (p ScenarioParams) TotalTasks() uint64 {
	return uint64(p.ScenarioCount) * uint64(p.TaskCount)
}
