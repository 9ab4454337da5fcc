package metrics

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/radar-rrm/scenario-generator/internal/generator"
	"github.com/radar-rrm/scenario-generator/internal/pack"
	"github.com/radar-rrm/scenario-generator/pkg/config"
	"github.com/radar-rrm/scenario-generator/pkg/models"
)

func TestCheckInvariantsFixture(t *testing.T) {
	if violations := CheckInvariants(fixturePack(), 0); len(violations) != 0 {
		t.Fatalf("expected no violations, got %v", violations)
	}
}

func TestCheckInvariantsGeneratedPack(t *testing.T) {
	params := config.DefaultScenarioParams()
	params.EarliestTimeIsNoCost = true

	scenarios, err := generator.NewGenerator(4242).WithWorkers(4).Generate(context.Background(), params)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	p, err := pack.New(params, scenarios)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if violations := CheckInvariants(p, pack.Version); len(violations) != 0 {
		t.Fatalf("expected no violations, got %v", violations)
	}
}

func TestCheckInvariantsDetectsViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *models.ScenarioPack)
		rule   string
	}{
		{"version", func(p *models.ScenarioPack) { p.Version = 3 }, RuleVersion},
		{"nil pack id", func(p *models.ScenarioPack) { p.PackID = uuid.Nil }, RulePackID},
		{"missing scenario", func(p *models.ScenarioPack) { p.Scenarios = p.Scenarios[:1] }, RuleScenarioCount},
		{"scenario id", func(p *models.ScenarioPack) { p.Scenarios[1].ScenarioID = 5 }, RuleScenarioID},
		{"missing task", func(p *models.ScenarioPack) { p.Scenarios[0].Tasks = p.Scenarios[0].Tasks[:1] }, RuleTaskCount},
		{"task id", func(p *models.ScenarioPack) { p.Scenarios[0].Tasks[1].TaskID = 0 }, RuleTaskID},
		{"earliest after no cost", func(p *models.ScenarioPack) { p.Scenarios[0].Tasks[0].EarliestTime = 0.3 }, RuleTimeOrder},
		{"latest after end", func(p *models.ScenarioPack) { p.Scenarios[1].Tasks[1].LatestTime = 1.5 }, RuleTimeOrder},
		{"cannot finish", func(p *models.ScenarioPack) { p.Scenarios[1].Tasks[1].Length = 0.65 }, RuleFinishByEnd},
		{"earliest is no cost", func(p *models.ScenarioPack) { p.ScenarioParams.EarliestTimeIsNoCost = true }, RuleEarliestNoCost},
		{"length", func(p *models.ScenarioPack) { p.Scenarios[0].Tasks[0].Length = 0.45 }, RuleLengthRange},
		{"tardiness", func(p *models.ScenarioPack) { p.Scenarios[0].Tasks[0].TardinessCost = 1.5 }, RuleTardinessCost},
		{"drop", func(p *models.ScenarioPack) { p.Scenarios[0].Tasks[0].DropCost = -0.1 }, RuleDropCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := fixturePack()
			tt.mutate(p)

			violations := CheckInvariants(p, 0)
			found := false
			for _, v := range violations {
				if v.Rule == tt.rule {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected a %s violation, got %v", tt.rule, violations)
			}
		})
	}
}

func TestViolationString(t *testing.T) {
	tests := []struct {
		v    Violation
		want string
	}{
		{Violation{ScenarioID: -1, TaskID: -1, Rule: RuleVersion, Detail: "bad"}, "version: bad"},
		{Violation{ScenarioID: 2, TaskID: -1, Rule: RuleTaskCount, Detail: "bad"}, "scenario 2: task_count: bad"},
		{Violation{ScenarioID: 2, TaskID: 3, Rule: RuleTaskID, Detail: "bad"}, "scenario 2 task 3: task_id: bad"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); !strings.Contains(got, tt.want) {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
