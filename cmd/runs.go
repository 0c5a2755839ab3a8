package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/visitplan/visitplan/infra/planlog"
)

var (
	runsSince     string
	runsInspector string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show past planning runs from the run log",
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().StringVar(&runsSince, "since", "", "only runs after this date (YYYY-MM-DD)")
	runsCmd.Flags().StringVar(&runsInspector, "inspector", "", "only runs that planned visits for this inspector")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.PlanLog.Enabled {
		return fmt.Errorf("plan log is disabled in the configuration")
	}
	store, err := planlog.NewStore(cfg.PlanLog)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	q := planlog.RunQuery{Inspector: runsInspector}
	if runsSince != "" {
		q.Start, err = time.Parse("2006-01-02", runsSince)
		if err != nil {
			return fmt.Errorf("invalid since date %q: %w", runsSince, err)
		}
	}
	records, err := store.Query(context.Background(), q)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "no runs recorded")
		return nil
	}
	for _, r := range records {
		fmt.Fprintf(out, "%s  %s  visits=%d unmatched=%d renewals=%d fallbacks=%d (%dms)\n",
			r.Timestamp.Format("2006-01-02 15:04"), r.RunID,
			r.Visits, r.Unmatched, r.Renewals, r.GeocodeFallbacks, r.DurationMs)
	}
	return nil
}
