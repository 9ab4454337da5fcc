package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/radar-rrm/scenario-generator/internal/packd"
	"github.com/radar-rrm/scenario-generator/pkg/logger"
	"github.com/radar-rrm/scenario-generator/pkg/telemetry"
)

type serveOptions struct {
	httpAddr string
	grpcAddr string
	maxTasks uint64
	workers  int
}

func newServeCommand(a *app) *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve pack generation over HTTP and gRPC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServe(cmd, opts)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&opts.httpAddr, "http-addr", ":8080", "HTTP listen address")
	fs.StringVar(&opts.grpcAddr, "grpc-addr", ":50051", "gRPC listen address")
	fs.Uint64Var(&opts.maxTasks, "max-tasks", 1_000_000, "largest scenario_count * task_count accepted per request (0 for no limit)")
	fs.IntVar(&opts.workers, "workers", 1, "generator concurrency per request")

	return cmd
}

func (a *app) runServe(cmd *cobra.Command, opts *serveOptions) error {
	ctx := cmd.Context()
	fs := cmd.Flags()

	httpAddr, grpcAddr := a.runtime.HTTPAddr, a.runtime.GRPCAddr
	maxTasks, workers := a.runtime.MaxTasks, a.runtime.Workers
	if fs.Changed("http-addr") {
		httpAddr = opts.httpAddr
	}
	if fs.Changed("grpc-addr") {
		grpcAddr = opts.grpcAddr
	}
	if fs.Changed("max-tasks") {
		maxTasks = opts.maxTasks
	}
	if fs.Changed("workers") {
		workers = opts.workers
	}

	shutdown, err := telemetry.Setup(ctx, a.telemetryConfig("packd"))
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	svc := packd.NewService(packd.Options{MaxTasks: maxTasks, Workers: workers})
	logger.Info("starting packd", "http_addr", httpAddr, "grpc_addr", grpcAddr, "max_tasks", maxTasks, "workers", workers)
	return packd.Serve(ctx, svc, httpAddr, grpcAddr)
}
