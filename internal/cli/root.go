// Package cli implements the scenariogen command line.
package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/radar-rrm/scenario-generator/internal/pack"
	"github.com/radar-rrm/scenario-generator/pkg/config"
	"github.com/radar-rrm/scenario-generator/pkg/logger"
	"github.com/radar-rrm/scenario-generator/pkg/telemetry"
)

const serviceName = "scenariogen"

// version is stamped at build time with -ldflags "-X ...cli.version=..."
var version = "dev"

// app carries state shared by every command
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	runtime   config.RuntimeConfig
	logLevel  string
	logFormat string
}

// NewRootCommand builds the scenariogen command tree. The root command itself
// generates a pack.
func NewRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "scenariogen",
		Short:         pack.About,
		Long:          pack.LongAbout,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "log format (text, json)")

	bindGenerate(root, a)
	root.AddCommand(newInspectCommand(a))
	root.AddCommand(newServeCommand(a))

	return root
}

// Execute runs the command line with args and the given streams
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	root := NewRootCommand(in, out, errOut)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// setup loads runtime configuration from the environment, lets explicit flags
// override it and installs the logger on errOut.
func (a *app) setup(cmd *cobra.Command) error {
	runtime, err := config.LoadRuntimeConfig()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		runtime.LogLevel = a.logLevel
	}
	if flags.Changed("log-format") {
		runtime.LogFormat = a.logFormat
	}
	if err := runtime.Validate(); err != nil {
		return err
	}
	a.runtime = runtime

	logger.SetDefault(logger.NewWithFormat(runtime.LogFormat, runtime.LogLevel, a.errOut))
	return nil
}

// telemetryConfig describes this process to the tracer for component
func (a *app) telemetryConfig(component string) telemetry.Config {
	return telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: version,
		Component:      component,
		PackVersion:    pack.Version,
		Endpoint:       a.runtime.OTelEndpoint,
		Enabled:        a.runtime.OTelEnabled,
		SampleRatio:    a.runtime.OTelSampleRatio,
	}
}
