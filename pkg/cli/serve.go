package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/workforce-labs/caseflow/pkg/cli/config"
	httpctrl "github.com/workforce-labs/caseflow/pkg/controller/http"
	"github.com/workforce-labs/caseflow/pkg/service/worker"
	"github.com/workforce-labs/caseflow/pkg/stream"
	"github.com/workforce-labs/caseflow/pkg/usecase"
	"github.com/workforce-labs/caseflow/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var scanInterval time.Duration
	var repoCfg config.Repository
	var blobCfg config.Blob
	var dirCfg config.Directory
	var slackCfg config.Slack

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("CASEFLOW_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "overdue-scan-interval",
			Usage:       "How often the overdue watchdog sweeps pending cases",
			Value:       10 * time.Minute,
			Sources:     cli.EnvVars("CASEFLOW_OVERDUE_SCAN_INTERVAL"),
			Destination: &scanInterval,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, blobCfg.Flags()...)
	flags = append(flags, dirCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			blob, blobClose, err := blobCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize blob store")
			}
			defer blobClose()

			directory, err := dirCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load user roster")
			}

			notifier, err := slackCfg.Configure(directory)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Slack notifier")
			}

			hub := stream.NewHub()
			defer hub.Close()

			ucOpts := []usecase.Option{
				usecase.WithPublisher(hub),
			}
			if directory != nil {
				ucOpts = append(ucOpts, usecase.WithDirectory(directory))
				logging.Default().Info("User roster loaded")
			}
			if notifier != nil {
				ucOpts = append(ucOpts, usecase.WithNotifier(notifier))
				logging.Default().Info("Slack notices enabled")
			}

			uc := usecase.New(repo, blob, ucOpts...)

			overdueWorker := worker.NewOverdueScanWorker(repo, notifier, scanInterval)
			overdueWorker.Start(ctx)

			srv := httpctrl.New(uc, httpctrl.WithHub(hub))
			server := &http.Server{
				Addr:              addr,
				Handler:           srv,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr, "scan_interval", scanInterval)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				overdueWorker.Stop()
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				overdueWorker.Stop()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
