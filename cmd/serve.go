package cmd

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sajjad-MoBe/slotstore/internal/api"
	"github.com/sajjad-MoBe/slotstore/internal/config"
	"github.com/sajjad-MoBe/slotstore/internal/deployment"
	"github.com/sajjad-MoBe/slotstore/internal/grpcapi"
	"github.com/sajjad-MoBe/slotstore/internal/logging"
	"github.com/sajjad-MoBe/slotstore/internal/storage"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the slotstore server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(cfg.Logging)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, *cfg, logger)
		},
	}
	config.AddServerFlags(serveCmd.Flags(), cfg)
	return serveCmd
}

// serve runs the HTTP server, and the gRPC server if configured, until ctx
// is cancelled or one of them fails
func serve(ctx context.Context, cfg config.Config, logger logr.Logger) error {
	kind, err := deployment.ParseKind(cfg.Deployment)
	if err != nil {
		return err
	}

	slot := storage.NewSlot()
	dep, err := deployment.New(kind, slot)
	if err != nil {
		return err
	}

	tracer, err := api.NewTracer("slotstore-"+string(kind), cfg.JaegerEndpoint)
	if err != nil {
		return fmt.Errorf("creating tracer: %w", err)
	}
	defer func() {
		if err := tracer.Shutdown(context.Background()); err != nil {
			logger.Error(err, "flushing spans")
		}
	}()

	metrics := api.NewMetrics(slot)
	srv, err := api.NewServer(logger, api.ServerConfig{EnableRequestLogging: true}, dep, slot, metrics, tracer)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.Address, err)
	}

	var grpcLn net.Listener
	if cfg.GRPCAddress != "" {
		grpcLn, err = net.Listen("tcp", cfg.GRPCAddress)
		if err != nil {
			ln.Close()
			return fmt.Errorf("listening on %s: %w", cfg.GRPCAddress, err)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(ctx, ln); err != nil {
			return fmt.Errorf("http server terminated: %w", err)
		}
		return nil
	})

	if grpcLn != nil {
		grpcSrv := grpcapi.NewServer(logger, dep, metrics)
		g.Go(func() error {
			if err := grpcSrv.Start(ctx, grpcLn); err != nil {
				return fmt.Errorf("grpc server terminated: %w", err)
			}
			return nil
		})
	}

	return g.Wait()
}
