// Package pack assembles generated scenarios into a ScenarioPack document and
// serializes it.
package pack

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/radar-rrm/scenario-generator/internal/generator"
	"github.com/radar-rrm/scenario-generator/pkg/config"
	"github.com/radar-rrm/scenario-generator/pkg/logger"
	"github.com/radar-rrm/scenario-generator/pkg/models"
	"github.com/radar-rrm/scenario-generator/pkg/utils"
)

// Version is the format version of the emitted document
const Version uint32 = 0

// About is the short description carried by every pack
const About = "Standardized Radar Task Selection Format for Radar Resource Management"

// LongAbout is the long description carried by every pack
const LongAbout = "Currently, radar scheduling algorithms are being evaluated on randomly generated tasks, " +
	"this means that interesting results are at times ephemeral, it is difficult to manually create and " +
	"evaluate tricky sets of tasks to evaluate algorithms are behaving as expected, comparing performance " +
	"cross different implementations is difficult, and results are difficult to reproduce. This document " +
	"contains everything needed to define a radar scenario. It is a ScenarioPack which contains many " +
	"Scenarios, each Scenario is created with the same random seeds, and contains many Tasks."

// New wraps scenarios with a fresh pack id and the fixed metadata
func New(params config.ScenarioParams, scenarios []models.Scenario) (*models.ScenarioPack, error) {
	id, err := utils.NewPackID()
	if err != nil {
		return nil, err
	}
	if scenarios == nil {
		scenarios = []models.Scenario{}
	}
	return &models.ScenarioPack{
		PackID:         id,
		Version:        Version,
		About:          About,
		LongAbout:      LongAbout,
		ScenarioParams: params,
		Scenarios:      scenarios,
	}, nil
}

// Build generates the scenarios for params and assembles them into a pack
func Build(ctx context.Context, gen *generator.Generator, params config.ScenarioParams) (*models.ScenarioPack, error) {
	started := time.Now()

	scenarios, err := gen.Generate(ctx, params)
	if err != nil {
		return nil, err
	}
	p, err := New(params, scenarios)
	if err != nil {
		return nil, err
	}

	logger.Info("pack generated",
		"pack_id", p.PackID.String(),
		"seed", gen.Seed(),
		"scenarios", humanize.Comma(int64(params.ScenarioCount)),
		"tasks", humanize.Comma(int64(params.TotalTasks())),
		"elapsed", time.Since(started).String(),
	)
	return p, nil
}

// Run generates a pack and writes it to w as a single document
func Run(ctx context.Context, w io.Writer, gen *generator.Generator, params config.ScenarioParams, opts EncodeOptions) (*models.ScenarioPack, error) {
	p, err := Build(ctx, gen, params)
	if err != nil {
		return nil, err
	}
	if err := Encode(w, p, opts); err != nil {
		return nil, fmt.Errorf("write pack: %w", err)
	}
	return p, nil
}
