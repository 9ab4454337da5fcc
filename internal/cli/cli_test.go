package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/radar-rrm/scenario-generator/internal/pack"
	"github.com/radar-rrm/scenario-generator/pkg/config"
)

func run(t *testing.T, in string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := Execute(context.Background(), args, strings.NewReader(in), &out, &errOut)
	return out.String(), errOut.String(), err
}

func TestGenerate(t *testing.T) {
	out, _, err := run(t, "", "--seed", "7", "-s", "3", "-t", "2", "-q")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if n := gjson.Get(out, "scenarios.#").Int(); n != 3 {
		t.Fatalf("expected 3 scenarios, got %d", n)
	}
	if n := gjson.Get(out, "scenarios.2.tasks.#").Int(); n != 2 {
		t.Fatalf("expected 2 tasks, got %d", n)
	}
	if v := gjson.Get(out, "scenario_params.max_task_length").Float(); v != config.DefaultMaxTaskLength {
		t.Fatalf("expected default max_task_length, got %g", v)
	}
}

func TestGenerateSameSeedSameScenarios(t *testing.T) {
	first, _, err := run(t, "", "--seed", "123", "--workers", "1", "-q")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, _, err := run(t, "", "--seed", "123", "--workers", "4", "-q")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if gjson.Get(first, "scenarios").Raw != gjson.Get(second, "scenarios").Raw {
		t.Fatal("expected identical scenarios for the same seed")
	}
	if gjson.Get(first, "pack_id").String() == gjson.Get(second, "pack_id").String() {
		t.Fatal("expected distinct pack ids")
	}
}

func TestGenerateSeedFromEnv(t *testing.T) {
	t.Setenv("SCENARIOGEN_SEED", "55")

	fromEnv, _, err := run(t, "", "-s", "2", "-q")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	fromFlag, _, err := run(t, "", "-s", "2", "--seed", "55", "-q")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if gjson.Get(fromEnv, "scenarios").Raw != gjson.Get(fromFlag, "scenarios").Raw {
		t.Fatal("expected the environment seed to be used")
	}
}

func TestGenerateParamsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	data := "scenario_count: 4\ntask_count: 8\nstart_time: 0\nend_time: 10\nmax_task_length: 2\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write params: %v", err)
	}

	out, _, err := run(t, "", "--params", path, "--tasks", "2", "--seed", "1", "-q")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if v := gjson.Get(out, "scenario_params.task_count").Int(); v != 2 {
		t.Fatalf("expected flag to override task_count, got %d", v)
	}
	if v := gjson.Get(out, "scenario_params.scenario_count").Int(); v != 4 {
		t.Fatalf("expected scenario_count from file, got %d", v)
	}
	if v := gjson.Get(out, "scenario_params.end_time").Float(); v != 10 {
		t.Fatalf("expected end_time from file, got %g", v)
	}
}

func TestGenerateYAML(t *testing.T) {
	out, _, err := run(t, "", "--format", "yaml", "-s", "2", "-t", "1", "--seed", "3", "-q")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if _, ok := doc["scenarios"]; !ok {
		t.Fatal("expected scenarios key")
	}
}

func TestGenerateSummary(t *testing.T) {
	_, errOut, err := run(t, "", "--summary", "-s", "5", "--seed", "9", "-q")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, want := range []string{"5 scenarios", "25 tasks", "tardiness_cost", "no_cost_time"} {
		if !strings.Contains(errOut, want) {
			t.Errorf("expected summary to contain %q:\n%s", want, errOut)
		}
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		invalid bool
	}{
		{name: "inverted timeline", args: []string{"--start-time", "5", "--end-time", "1"}, invalid: true},
		{name: "task longer than span", args: []string{"--min-task-length", "2", "--max-task-length", "3"}, invalid: true},
		{name: "unknown format", args: []string{"--format", "xml"}},
		{name: "bad workers", args: []string{"--workers", "0"}},
		{name: "positional argument", args: []string{"extra"}},
		{name: "missing params file", args: []string{"--params", "/nonexistent/params.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, "", append(tt.args, "-q")...)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.invalid && !errors.Is(err, config.ErrInvalidParams) {
				t.Fatalf("expected ErrInvalidParams, got %v", err)
			}
			if out != "" {
				t.Fatalf("expected no document on error, got %q", out)
			}
		})
	}
}

func TestGenerateInvalidLogLevel(t *testing.T) {
	if _, _, err := run(t, "", "--log-level", "loud"); err == nil {
		t.Fatal("expected error for an invalid log level")
	}
}

func TestInspect(t *testing.T) {
	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			doc, _, err := run(t, "", "--format", format, "-s", "3", "--seed", "4", "-q")
			if err != nil {
				t.Fatalf("generate: %v", err)
			}

			out, _, err := run(t, doc, "inspect")
			if err != nil {
				t.Fatalf("inspect: %v\n%s", err, out)
			}
			if !strings.Contains(out, "no invariant violations") {
				t.Fatalf("unexpected inspect output:\n%s", out)
			}
			if !strings.Contains(out, "3 scenarios") {
				t.Fatalf("expected scenario count in output:\n%s", out)
			}
		})
	}
}

func TestInspectFile(t *testing.T) {
	doc, _, err := run(t, "", "-s", "2", "--seed", "4", "-q")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	path := filepath.Join(t.TempDir(), "pack.json")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write pack: %v", err)
	}

	if _, _, err := run(t, "", "inspect", path); err != nil {
		t.Fatalf("inspect: %v", err)
	}
}

func TestInspectReportsViolations(t *testing.T) {
	doc, _, err := run(t, "", "-s", "2", "-t", "2", "--seed", "4", "-q")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	p, err := pack.Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	p.Version = 7
	p.Scenarios[1].Tasks[0].DropCost = 42

	var tampered bytes.Buffer
	if err := pack.Encode(&tampered, p, pack.EncodeOptions{}); err != nil {
		t.Fatalf("encode: %v", err)
	}

	out, _, err := run(t, tampered.String(), "inspect", "-")
	if err == nil {
		t.Fatal("expected inspect to fail")
	}
	if !strings.Contains(err.Error(), "2 invariant violation") {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"version", "drop_cost_range"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestInspectRejectsGarbage(t *testing.T) {
	if _, _, err := run(t, "{not json", "inspect"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestVersionFlag(t *testing.T) {
	out, _, err := run(t, "", "--version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, version) {
		t.Fatalf("expected version %q in output, got %q", version, out)
	}
}

func TestTelemetryConfig(t *testing.T) {
	t.Setenv("SCENARIOGEN_OTEL_ENDPOINT", "http://collector:4318")
	t.Setenv("SCENARIOGEN_OTEL_SAMPLE_RATIO", "0.25")

	runtime, err := config.LoadRuntimeConfig()
	if err != nil {
		t.Fatalf("load runtime config: %v", err)
	}
	a := &app{runtime: runtime}

	cfg := a.telemetryConfig("packd")
	if cfg.ServiceName != serviceName || cfg.ServiceVersion != version || cfg.Component != "packd" {
		t.Errorf("unexpected identity: %+v", cfg)
	}
	if cfg.PackVersion != pack.Version {
		t.Errorf("expected pack version %d, got %d", pack.Version, cfg.PackVersion)
	}
	if !cfg.Active() || cfg.SampleRatio != 0.25 {
		t.Errorf("expected active config sampling 0.25, got %+v", cfg)
	}
}
