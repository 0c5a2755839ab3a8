package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/visitplan/visitplan/app"
	"github.com/visitplan/visitplan/infra/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the run history API and metrics endpoints",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()

	go func() {
		if err := svc.StartMetricsServer(ctx); err != nil {
			logger.New("main").Errorf("metrics server: %v", err)
		}
	}()
	return svc.ServeAPI(ctx)
}
