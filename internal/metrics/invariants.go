package metrics

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/radar-rrm/scenario-generator/pkg/models"
)

// Tolerance is the slack allowed on no_cost_time + length <= end_time, which
// is subject to one floating-point rounding step.
const Tolerance = 1e-9

// Rule names reported in violations
const (
	RuleVersion        = "version"
	RulePackID         = "pack_id"
	RuleScenarioCount  = "scenario_count"
	RuleScenarioID     = "scenario_id"
	RuleTaskCount      = "task_count"
	RuleTaskID         = "task_id"
	RuleTimeOrder      = "time_order"
	RuleFinishByEnd    = "finish_by_end"
	RuleEarliestNoCost = "earliest_is_no_cost"
	RuleLengthRange    = "length_range"
	RuleTardinessCost  = "tardiness_cost_range"
	RuleDropCost       = "drop_cost_range"
)

// Violation is a broken pack invariant. ScenarioID and TaskID are -1 when the
// violation is not tied to a scenario or task.
type Violation struct {
	ScenarioID int64
	TaskID     int64
	Rule       string
	Detail     string
}

func (v Violation) String() string {
	switch {
	case v.ScenarioID < 0:
		return fmt.Sprintf("%s: %s", v.Rule, v.Detail)
	case v.TaskID < 0:
		return fmt.Sprintf("scenario %d: %s: %s", v.ScenarioID, v.Rule, v.Detail)
	default:
		return fmt.Sprintf("scenario %d task %d: %s: %s", v.ScenarioID, v.TaskID, v.Rule, v.Detail)
	}
}

// CheckInvariants verifies p against its echoed params. expectedVersion is
// the format version the caller understands.
func CheckInvariants(p *models.ScenarioPack, expectedVersion uint32) []Violation {
	var out []Violation
	add := func(scenarioID, taskID int64, rule, format string, args ...any) {
		out = append(out, Violation{
			ScenarioID: scenarioID,
			TaskID:     taskID,
			Rule:       rule,
			Detail:     fmt.Sprintf(format, args...),
		})
	}

	if p.Version != expectedVersion {
		add(-1, -1, RuleVersion, "expected %d, got %d", expectedVersion, p.Version)
	}
	if p.PackID == uuid.Nil || p.PackID.Version() != 4 || p.PackID.Variant() != uuid.RFC4122 {
		add(-1, -1, RulePackID, "%s is not a random (v4) uuid", p.PackID)
	}

	params := p.ScenarioParams
	if len(p.Scenarios) != int(params.ScenarioCount) {
		add(-1, -1, RuleScenarioCount, "expected %d scenarios, got %d", params.ScenarioCount, len(p.Scenarios))
	}

	for i, sc := range p.Scenarios {
		sid := int64(sc.ScenarioID)
		if sc.ScenarioID != uint32(i) {
			add(sid, -1, RuleScenarioID, "expected id %d at position %d", i, i)
		}
		if len(sc.Tasks) != int(params.TaskCount) {
			add(sid, -1, RuleTaskCount, "expected %d tasks, got %d", params.TaskCount, len(sc.Tasks))
		}

		for j, task := range sc.Tasks {
			tid := int64(task.TaskID)
			if task.TaskID != uint32(j) {
				add(sid, tid, RuleTaskID, "expected id %d at position %d", j, j)
			}
			if !(params.StartTime <= task.EarliestTime &&
				task.EarliestTime <= task.NoCostTime &&
				task.NoCostTime <= task.LatestTime &&
				task.LatestTime <= params.EndTime) {
				add(sid, tid, RuleTimeOrder, "start %g <= earliest %g <= no_cost %g <= latest %g <= end %g does not hold",
					params.StartTime, task.EarliestTime, task.NoCostTime, task.LatestTime, params.EndTime)
			}
			if task.NoCostTime+task.Length > params.EndTime+Tolerance {
				add(sid, tid, RuleFinishByEnd, "no_cost %g + length %g exceeds end %g", task.NoCostTime, task.Length, params.EndTime)
			}
			if params.EarliestTimeIsNoCost && task.EarliestTime != task.NoCostTime {
				add(sid, tid, RuleEarliestNoCost, "earliest %g != no_cost %g", task.EarliestTime, task.NoCostTime)
			}
			if task.Length < params.MinTaskLength || task.Length > params.MaxTaskLength {
				add(sid, tid, RuleLengthRange, "%g outside [%g, %g]", task.Length, params.MinTaskLength, params.MaxTaskLength)
			}
			if task.TardinessCost < params.MinTardinessCost || task.TardinessCost > params.MaxTardinessCost {
				add(sid, tid, RuleTardinessCost, "%g outside [%g, %g]", task.TardinessCost, params.MinTardinessCost, params.MaxTardinessCost)
			}
			if task.DropCost < params.MinDropCost || task.DropCost > params.MaxDropCost {
				add(sid, tid, RuleDropCost, "%g outside [%g, %g]", task.DropCost, params.MinDropCost, params.MaxDropCost)
			}
		}
	}

	return out
}
