package config

import (
	"errors"
	"fmt"

	"github.com/radar-rrm/scenario-generator/pkg/utils"
)

// ErrInvalidParams is wrapped by every parameter validation failure
var ErrInvalidParams = errors.New("invalid scenario params")

// Validate checks that every sampling interval the generator will draw from is
// well formed. All problems are reported together.
func (p ScenarioParams) Validate() error {
	var errs []error

	if p.ScenarioCount == 0 {
		errs = append(errs, fmt.Errorf("scenario_count must be positive"))
	}
	if p.TaskCount == 0 {
		errs = append(errs, fmt.Errorf("task_count must be positive"))
	}

	reals := []struct {
		name  string
		value float64
	}{
		{"start_time", p.StartTime},
		{"end_time", p.EndTime},
		{"min_task_length", p.MinTaskLength},
		{"max_task_length", p.MaxTaskLength},
		{"min_tardiness_cost", p.MinTardinessCost},
		{"max_tardiness_cost", p.MaxTardinessCost},
		{"min_drop_cost", p.MinDropCost},
		{"max_drop_cost", p.MaxDropCost},
	}
	for _, r := range reals {
		if !utils.IsFinite(r.value) {
			errs = append(errs, fmt.Errorf("%s must be finite, got %v", r.name, r.value))
		}
	}
	if len(errs) > 0 {
		return joinInvalid(errs)
	}

	if p.StartTime >= p.EndTime {
		errs = append(errs, fmt.Errorf("start_time (%g) must be before end_time (%g)", p.StartTime, p.EndTime))
	}
	if err := validateRange("task_length", p.MinTaskLength, p.MaxTaskLength); err != nil {
		errs = append(errs, err)
	}
	if span := p.EndTime - p.StartTime; p.StartTime < p.EndTime {
		switch {
		case !utils.IsFinite(span):
			errs = append(errs, fmt.Errorf("timeline span from start_time (%g) to end_time (%g) is not finite", p.StartTime, p.EndTime))
		case p.MaxTaskLength > span:
			errs = append(errs, fmt.Errorf("max_task_length (%g) exceeds the timeline span %g", p.MaxTaskLength, span))
		}
	}
	if err := validateRange("tardiness_cost", p.MinTardinessCost, p.MaxTardinessCost); err != nil {
		errs = append(errs, err)
	}
	if err := validateRange("drop_cost", p.MinDropCost, p.MaxDropCost); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinInvalid(errs)
	}
	return nil
}

// validateRange checks a non-negative [min_<name>, max_<name>] pair
func validateRange(name string, min, max float64) error {
	if min < 0 {
		return fmt.Errorf("min_%s cannot be negative, got %g", name, min)
	}
	if min > max {
		return fmt.Errorf("min_%s (%g) exceeds max_%s (%g)", name, min, name, max)
	}
	return nil
}

func joinInvalid(errs []error) error {
	return fmt.Errorf("%w: %w", ErrInvalidParams, errors.Join(errs...))
}
