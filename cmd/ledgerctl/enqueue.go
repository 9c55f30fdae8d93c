package main

import (
	"fmt"
	"strings"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/worker"
	"github.com/spf13/cobra"
)

var enqueueCmd = &cobra.Command{
	Use:   "enqueue <revaluation|depreciation|allowances>",
	Short: "Queue a batch run for the background worker",
	Long: `enqueue hands a batch run to ledger-worker through Redis instead of running it here.
An identical run queued within the last hour is rejected.`,
	Example: `  ledgerctl enqueue depreciation --tenant acme --period 2024-03
  ledgerctl enqueue allowances --tenant acme --year 2023`,
	Args: cobra.ExactArgs(1),
	RunE: runEnqueue,
}

func init() {
	rootCmd.AddCommand(enqueueCmd)

	enqueueCmd.Flags().String("period", "", "Month, YYYY-MM (default: resolved by the worker)")
	enqueueCmd.Flags().Int("year", 0, "Year of assessment for allowances (default: resolved by the worker)")
}

func runEnqueue(cmd *cobra.Command, args []string) error {
	if err := requireTenant(); err != nil {
		return err
	}
	if cfg.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required to queue jobs")
	}
	kind, err := worker.ParseKind(args[0])
	if err != nil {
		return err
	}
	period, _ := cmd.Flags().GetString("period")
	year, _ := cmd.Flags().GetInt("year")

	client := worker.NewClient(worker.RedisOpt(cfg), cfg.JobTimeout)
	defer client.Close()

	payload := worker.RunPayload{TenantID: tenantID, UserID: userID, Period: strings.TrimSpace(period), Year: year}
	taskID, err := client.Enqueue(cmd.Context(), kind, payload)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "queued %s run %s\n", kind, taskID)
	return nil
}
