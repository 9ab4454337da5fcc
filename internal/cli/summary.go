package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/radar-rrm/scenario-generator/internal/metrics"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func formatID(id int64) string {
	if id < 0 {
		return "-"
	}
	return strconv.FormatInt(id, 10)
}

// writeSummary prints a pack header line followed by a per-field table
func writeSummary(w io.Writer, s metrics.Summary) {
	fmt.Fprintf(w, "pack %s (version %d): %s scenarios, %s tasks\n",
		s.PackID, s.Version, humanize.Comma(int64(s.Scenarios)), humanize.Comma(int64(s.Tasks)))

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Field", "Min", "Max", "Mean", "Median", "StdDev"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, f := range s.Fields {
		table.Append([]string{
			f.Field,
			formatFloat(f.Min),
			formatFloat(f.Max),
			formatFloat(f.Mean),
			formatFloat(f.Median),
			formatFloat(f.StdDev),
		})
	}
	table.Render()
}

func writeViolations(w io.Writer, violations []metrics.Violation) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Scenario", "Task", "Rule", "Detail"})
	table.SetAutoWrapText(false)
	for _, v := range violations {
		table.Append([]string{formatID(v.ScenarioID), formatID(v.TaskID), v.Rule, v.Detail})
	}
	table.Render()
}
