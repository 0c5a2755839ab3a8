package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/visitplan/visitplan/core/renewal"
	"github.com/visitplan/visitplan/infra/input"
	"github.com/visitplan/visitplan/pkg/export"
)

var (
	renewCustomers string
	renewOut       string
	renewWindow    int
)

var renewalsCmd = &cobra.Command{
	Use:   "renewals",
	Short: "List customers with contracts expiring soon",
	RunE:  runRenewals,
}

func init() {
	renewalsCmd.Flags().StringVar(&renewCustomers, "customers", "anagrafica_clienti.csv", "customer master CSV")
	renewalsCmd.Flags().StringVar(&renewOut, "out", "", "write the list to this CSV file instead of stdout")
	renewalsCmd.Flags().IntVar(&renewWindow, "window", 0, "override the alert window in days")
	rootCmd.AddCommand(renewalsCmd)
}

func runRenewals(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	window := cfg.Work.RenewalAlertDays
	if renewWindow > 0 {
		window = renewWindow
	}

	customers, err := input.LoadCustomers(renewCustomers)
	if err != nil {
		return err
	}
	candidates := renewal.Select(customers, window, time.Now())

	if renewOut == "" {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d contracts expire within %d days\n", len(candidates), window)
		for _, c := range candidates {
			fmt.Fprintf(out, "  %-30s %s (%d days)\n", c.Customer.Name, c.ExpiryDate.Format("02/01/2006"), c.DaysToExpiry)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(renewOut), 0o755); err != nil {
		return err
	}
	f, err := os.Create(renewOut)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return export.WriteRenewalsCSV(f, candidates)
}
