package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/visitplan/visitplan/app"
	"github.com/visitplan/visitplan/infra/logger"
	"github.com/visitplan/visitplan/pkg/export"
)

var (
	planCustomers string
	planOrders    string
	planOutDir    string
	planClusters  int
	planStart     string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate the visit plan and renewal list",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planCustomers, "customers", "anagrafica_clienti.csv", "customer master CSV")
	planCmd.Flags().StringVar(&planOrders, "orders", "ordini_confermati.csv", "confirmed orders CSV")
	planCmd.Flags().StringVar(&planOutDir, "out-dir", "output", "directory for the generated files")
	planCmd.Flags().IntVar(&planClusters, "clusters", 0, "override the number of geographic clusters")
	planCmd.Flags().StringVar(&planStart, "start", "", "first scheduling day (YYYY-MM-DD, defaults to today)")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if planClusters > 0 {
		cfg.Work.DefaultClusters = planClusters
	}
	var start time.Time
	if planStart != "" {
		start, err = time.Parse("2006-01-02", planStart)
		if err != nil {
			return fmt.Errorf("invalid start date %q: %w", planStart, err)
		}
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

	metricsCtx, cancelMetrics := context.WithCancel(ctx)
	defer cancelMetrics()
	go func() {
		if err := svc.StartMetricsServer(metricsCtx); err != nil {
			logger.New("main").Errorf("metrics server: %v", err)
		}
	}()

	progress := svc.Bus.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for p := range progress {
			fmt.Fprintf(cmd.OutOrStdout(), "[%d/%d] %s\n", p.Stage, p.Stages, p.Message)
		}
	}()

	res, err := svc.GeneratePlanFromFiles(ctx, planCustomers, planOrders, start)
	svc.Bus.Unsubscribe(progress)
	<-done
	if err != nil {
		return err
	}

	if err := svc.Export(res, planOutDir); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run %s completed in %s\n", res.RunID, res.Duration.Round(time.Millisecond))
	fmt.Fprintf(out, "visits planned: %d (unmatched orders: %d)\n", res.Stats.VisitsPlanned, res.Stats.UnmatchedOrders)
	fmt.Fprintf(out, "weeks required: %d, total distance: %s\n", res.Stats.WeeksRequired, export.FormatDistance(res.Stats.TotalKm))
	for _, k := range res.KPIs {
		fmt.Fprintf(out, "  %-12s %2d visits, %s, %s over %d days\n",
			k.Inspector, k.Visits, export.FormatDistance(k.Km), export.FormatDuration(k.Hours), k.Days)
	}
	fmt.Fprintf(out, "renewals to contact: %d\n", res.Stats.RenewalsToContact)
	return nil
}
