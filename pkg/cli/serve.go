package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/nyaya-lab/nyayasetu/pkg/cli/config"
	httpctrl "github.com/nyaya-lab/nyayasetu/pkg/controller/http"
	"github.com/nyaya-lab/nyayasetu/pkg/service/assistant"
	"github.com/nyaya-lab/nyayasetu/pkg/service/notify"
	"github.com/nyaya-lab/nyayasetu/pkg/service/realtime"
	"github.com/nyaya-lab/nyayasetu/pkg/usecase"
	"github.com/nyaya-lab/nyayasetu/pkg/utils/logging"
	"github.com/nyaya-lab/nyayasetu/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var repoCfg config.Repository
	var geminiCfg config.Gemini

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("NYAYASETU_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)

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
			defer safe.Close(ctx, repo)

			hub := realtime.New()
			notifier := notify.New(repo.Notification(), hub)

			ucOpts := []usecase.Option{
				usecase.WithNotifier(notifier),
			}

			// AI intake is optional; without Gemini the conversation API
			// rejects client messages but everything else works.
			llm, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}
			if llm != nil {
				assistantSvc, err := assistant.New(llm)
				if err != nil {
					return goerr.Wrap(err, "failed to initialize assistant service")
				}
				ucOpts = append(ucOpts, usecase.WithAssistant(assistantSvc))
				logging.Default().Info("AI assistant enabled", "gemini", geminiCfg.LogAttrs())
			} else {
				logging.Default().Warn("Gemini project not configured, AI intake disabled")
			}

			uc := usecase.New(repo, ucOpts...)

			handler := httpctrl.New(uc, httpctrl.WithRealtimeHub(hub))
			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

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
