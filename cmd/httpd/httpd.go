// Package httpd implements the long-running API server command.
package httpd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/seasalt-intel/webintel/cmd/common"
	"github.com/seasalt-intel/webintel/internal/api"
	"github.com/seasalt-intel/webintel/internal/scheduler"
)

const shutdownTimeout = 10 * time.Second

// Command builds the httpd command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "httpd",
		Short: "Serve the intelligence API and run scheduled syncs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.Build(common.ConfigFile(cmd))
			if err != nil {
				return err
			}
			defer deps.Close()

			return run(deps)
		},
	}
}

func run(deps *common.Deps) error {
	log := deps.Log

	handler := api.NewHandler(deps.Orchestrator, deps.Repo, log)
	router := api.SetupRouter(handler, log)
	server := api.NewHTTPServer(deps.Config.Server, router)

	var sched *scheduler.Scheduler
	if deps.Config.Schedule.Enabled {
		sched = scheduler.New(deps.Orchestrator, log)
		if err := sched.Schedule(deps.Config.Schedule.Cron); err != nil {
			return err
		}
		sched.Start()
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", "signal", sig.String())
	}

	if sched != nil {
		sched.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return err
	}

	log.Info("server stopped")
	return nil
}
