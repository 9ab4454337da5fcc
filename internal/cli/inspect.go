package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/radar-rrm/scenario-generator/internal/metrics"
	"github.com/radar-rrm/scenario-generator/internal/pack"
	"github.com/radar-rrm/scenario-generator/pkg/logger"
)

func newInspectCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [FILE|-]",
		Short: "Summarize a scenario pack and check its invariants",
		Long: "Reads a JSON or YAML scenario pack from FILE, or from stdin when FILE is\n" +
			"omitted or \"-\", prints per-field statistics and reports every broken\n" +
			"invariant. Exits non-zero when the pack is invalid.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return a.runInspect(path)
		},
	}
}

func (a *app) runInspect(path string) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(a.in)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read pack %s: %w", path, err)
	}

	p, err := pack.DecodeAny(data)
	if err != nil {
		return err
	}

	writeSummary(a.out, metrics.Summarize(p))

	violations := metrics.CheckInvariants(p, pack.Version)
	if len(violations) == 0 {
		fmt.Fprintln(a.out, "no invariant violations")
		return nil
	}
	writeViolations(a.out, violations)
	logger.Debug("pack inspected", "pack_id", p.PackID.String(), "violations", len(violations))
	return fmt.Errorf("pack %s has %d invariant violation(s)", p.PackID, len(violations))
}
