package cli

import (
	"bufio"
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/radar-rrm/scenario-generator/internal/generator"
	"github.com/radar-rrm/scenario-generator/internal/metrics"
	"github.com/radar-rrm/scenario-generator/internal/pack"
	"github.com/radar-rrm/scenario-generator/internal/progress"
	"github.com/radar-rrm/scenario-generator/pkg/config"
	"github.com/radar-rrm/scenario-generator/pkg/logger"
	"github.com/radar-rrm/scenario-generator/pkg/telemetry"
	"github.com/radar-rrm/scenario-generator/pkg/utils"
)

type generateOptions struct {
	params     config.ScenarioParams
	paramsFile string
	seed       int64
	workers    int
	format     string
	pretty     bool
	summary    bool
	quiet      bool
}

// paramFlags maps each parameter flag to the field it sets
var paramFlags = []struct {
	name string
	copy func(dst *config.ScenarioParams, src config.ScenarioParams)
}{
	{"scenarios", func(d *config.ScenarioParams, s config.ScenarioParams) { d.ScenarioCount = s.ScenarioCount }},
	{"tasks", func(d *config.ScenarioParams, s config.ScenarioParams) { d.TaskCount = s.TaskCount }},
	{"start-time", func(d *config.ScenarioParams, s config.ScenarioParams) { d.StartTime = s.StartTime }},
	{"end-time", func(d *config.ScenarioParams, s config.ScenarioParams) { d.EndTime = s.EndTime }},
	{"min-task-length", func(d *config.ScenarioParams, s config.ScenarioParams) { d.MinTaskLength = s.MinTaskLength }},
	{"max-task-length", func(d *config.ScenarioParams, s config.ScenarioParams) { d.MaxTaskLength = s.MaxTaskLength }},
	{"min-tardiness-cost", func(d *config.ScenarioParams, s config.ScenarioParams) { d.MinTardinessCost = s.MinTardinessCost }},
	{"max-tardiness-cost", func(d *config.ScenarioParams, s config.ScenarioParams) { d.MaxTardinessCost = s.MaxTardinessCost }},
	{"min-drop-cost", func(d *config.ScenarioParams, s config.ScenarioParams) { d.MinDropCost = s.MinDropCost }},
	{"max-drop-cost", func(d *config.ScenarioParams, s config.ScenarioParams) { d.MaxDropCost = s.MaxDropCost }},
	{"earliest-time-is-no-cost", func(d *config.ScenarioParams, s config.ScenarioParams) {
		d.EarliestTimeIsNoCost = s.EarliestTimeIsNoCost
	}},
}

func bindParamFlags(fs *pflag.FlagSet, p *config.ScenarioParams) {
	fs.Uint32VarP(&p.ScenarioCount, "scenarios", "s", config.DefaultScenarioCount, "number of scenarios to generate")
	fs.Uint32VarP(&p.TaskCount, "tasks", "t", config.DefaultTaskCount, "number of tasks per scenario")
	fs.Float64Var(&p.StartTime, "start-time", config.DefaultStartTime, "start of the scenario timeline")
	fs.Float64Var(&p.EndTime, "end-time", config.DefaultEndTime, "end of the scenario timeline")
	fs.Float64Var(&p.MinTaskLength, "min-task-length", config.DefaultMinTaskLength, "minimum task length")
	fs.Float64Var(&p.MaxTaskLength, "max-task-length", config.DefaultMaxTaskLength, "maximum task length")
	fs.Float64Var(&p.MinTardinessCost, "min-tardiness-cost", config.DefaultMinTardinessCost, "minimum tardiness cost")
	fs.Float64Var(&p.MaxTardinessCost, "max-tardiness-cost", config.DefaultMaxTardinessCost, "maximum tardiness cost")
	fs.Float64Var(&p.MinDropCost, "min-drop-cost", config.DefaultMinDropCost, "minimum drop cost")
	fs.Float64Var(&p.MaxDropCost, "max-drop-cost", config.DefaultMaxDropCost, "maximum drop cost")
	fs.BoolVar(&p.EarliestTimeIsNoCost, "earliest-time-is-no-cost", false, "make every task's earliest time its no-cost time")
}

// overlayParams copies the explicitly set flag values in flagged onto base
func overlayParams(fs *pflag.FlagSet, base, flagged config.ScenarioParams) config.ScenarioParams {
	for _, f := range paramFlags {
		if fs.Changed(f.name) {
			f.copy(&base, flagged)
		}
	}
	return base
}

func bindGenerate(cmd *cobra.Command, a *app) {
	opts := &generateOptions{}
	fs := cmd.Flags()

	bindParamFlags(fs, &opts.params)
	fs.StringVar(&opts.paramsFile, "params", "", "YAML parameter file; explicit flags override its values")
	fs.Int64Var(&opts.seed, "seed", 0, "master seed (0 picks a random seed)")
	fs.IntVar(&opts.workers, "workers", 1, "number of scenarios generated concurrently")
	fs.StringVar(&opts.format, "format", string(pack.FormatJSON), "output format (json, yaml)")
	fs.BoolVar(&opts.pretty, "pretty", false, "indent JSON output")
	fs.BoolVar(&opts.summary, "summary", false, "print a summary table to stderr")
	fs.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress the progress bar and informational logs")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return a.runGenerate(cmd, opts)
	}
}

func (a *app) resolveParams(fs *pflag.FlagSet, opts *generateOptions) (config.ScenarioParams, error) {
	params := config.DefaultScenarioParams()
	if opts.paramsFile != "" {
		loaded, err := config.LoadParams(opts.paramsFile)
		if err != nil {
			return config.ScenarioParams{}, err
		}
		params = loaded
	}
	params = overlayParams(fs, params, opts.params)
	if err := params.Validate(); err != nil {
		return config.ScenarioParams{}, err
	}
	return params, nil
}

func (a *app) runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	ctx := cmd.Context()
	fs := cmd.Flags()

	if opts.quiet && !fs.Changed("log-level") {
		logger.SetDefault(logger.NewWithFormat(a.runtime.LogFormat, "warn", a.errOut))
	}

	params, err := a.resolveParams(fs, opts)
	if err != nil {
		return err
	}
	format, err := pack.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	seed := a.runtime.Seed
	if fs.Changed("seed") {
		seed = opts.seed
	}
	if seed == 0 {
		if seed, err = utils.NewSeed(); err != nil {
			return err
		}
		logger.Info("seed chosen", "seed", seed)
	}

	workers := a.runtime.Workers
	if fs.Changed("workers") {
		workers = opts.workers
	}
	if workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", workers)
	}

	shutdown, err := telemetry.Setup(ctx, a.telemetryConfig("generate"))
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	gen := generator.NewGenerator(seed).WithWorkers(workers)
	var bar *progress.Bar
	if !opts.quiet && progress.IsTerminal(a.errOut) {
		bar = progress.NewBar(a.errOut)
		gen.WithProgressReporter(bar.Update)
	}

	w := bufio.NewWriter(a.out)
	p, err := pack.Run(ctx, w, gen, params, pack.EncodeOptions{Format: format, Pretty: opts.pretty})
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write pack: %w", err)
	}

	if opts.summary {
		writeSummary(a.errOut, metrics.Summarize(p))
	}
	return nil
}
