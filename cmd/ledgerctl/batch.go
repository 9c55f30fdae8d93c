package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portssvc "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/services"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// ratePrecision is the number of decimals exchange rates are printed with.
const ratePrecision = 6

var revalueCmd = &cobra.Command{
	Use:   "revalue",
	Short: "Revalue foreign-currency accounts at the period-end rate",
	Example: `  # Preview without storing anything
  ledgerctl revalue --tenant acme --period 2024-03 --dry-run

  # Store one revaluation per account for the month
  ledgerctl revalue --tenant acme --period 2024-03`,
	RunE: runRevalue,
}

var depreciateCmd = &cobra.Command{
	Use:     "depreciate",
	Short:   "Post monthly book depreciation for every active asset",
	Example: `  ledgerctl depreciate --tenant acme --period 2024-03`,
	RunE:    runDepreciate,
}

var claimAllowancesCmd = &cobra.Command{
	Use:     "claim-allowances",
	Short:   "Claim the year's capital allowances for every active asset",
	Example: `  ledgerctl claim-allowances --tenant acme --year 2023`,
	RunE:    runClaimAllowances,
}

func init() {
	rootCmd.AddCommand(revalueCmd, depreciateCmd, claimAllowancesCmd)

	revalueCmd.Flags().String("period", "", "Month to revalue, YYYY-MM (default: previous month)")
	revalueCmd.Flags().Bool("dry-run", false, "Compute the run without storing it")
	depreciateCmd.Flags().String("period", "", "Month to depreciate, YYYY-MM (default: previous month)")
	claimAllowancesCmd.Flags().Int("year", 0, "Year of assessment (default: previous year)")
}

// periodFlag returns --period, or the month before now when it is empty.
func periodFlag(cmd *cobra.Command) (domain.Period, error) {
	s, _ := cmd.Flags().GetString("period")
	if s == "" {
		return domain.PeriodOf(time.Now().UTC()).Previous(), nil
	}
	return domain.ParsePeriod(s)
}

func runRevalue(cmd *cobra.Command, args []string) error {
	if err := requireTenant(); err != nil {
		return err
	}
	period, err := periodFlag(cmd)
	if err != nil {
		return err
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	return withServices(cmd, false, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
		var batch domain.BatchSummary[domain.RevaluationEntry]
		if dryRun {
			batch, err = svc.Revaluation.PreviewRevaluation(ctx, tenantID, period)
		} else {
			batch, err = svc.Revaluation.RunRevaluation(ctx, tenantID, userID, period)
		}
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), batch)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintf(w, "ACCOUNT\tCCY\tBALANCE\tPREV RATE\tRATE\tGAIN/LOSS\t\n")
		total := decimal.Zero
		for _, e := range batch.Processed {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n", e.AccountID, e.CurrencyCode, utils.FormatAmount(e.ForeignBalance),
				utils.FormatWithPrecision(e.PreviousRate, ratePrecision), utils.FormatWithPrecision(e.CurrentRate, ratePrecision),
				utils.FormatAmount(e.UnrealizedGainLoss))
			total = total.Add(e.UnrealizedGainLoss)
		}
		fmt.Fprintf(w, "\t\t\t\tTOTAL\t%s\t\n", utils.FormatAmount(total))
		if err := w.Flush(); err != nil {
			return err
		}
		printSkipped(cmd, batch.Skipped)
		return nil
	})
}

func runDepreciate(cmd *cobra.Command, args []string) error {
	if err := requireTenant(); err != nil {
		return err
	}
	period, err := periodFlag(cmd)
	if err != nil {
		return err
	}

	return withServices(cmd, false, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
		batch, err := svc.Asset.RunDepreciation(ctx, tenantID, userID, period)
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), batch)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "ASSET\tAMOUNT\tACCUMULATED\tNBV\tENTRY\n")
		for _, p := range batch.Processed {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.AssetNumber, utils.FormatAmount(p.Amount),
				utils.FormatAmount(p.AccumulatedDepreciation), utils.FormatAmount(p.NetBookValue), p.JournalEntryID)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		printSkipped(cmd, batch.Skipped)
		return nil
	})
}

func runClaimAllowances(cmd *cobra.Command, args []string) error {
	if err := requireTenant(); err != nil {
		return err
	}
	year, _ := cmd.Flags().GetInt("year")
	if year == 0 {
		year = time.Now().UTC().Year() - 1
	}

	return withServices(cmd, false, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
		batch, err := svc.Asset.ClaimAllowances(ctx, tenantID, userID, year)
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), batch)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "ASSET\tINITIAL\tANNUAL\tTOTAL\tWDV\n")
		total := decimal.Zero
		for _, c := range batch.Processed {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.AssetNumber, utils.FormatAmount(c.Initial),
				utils.FormatAmount(c.Annual), utils.FormatAmount(c.Total), utils.FormatAmount(c.WrittenDownValue))
			total = total.Add(c.Total)
		}
		fmt.Fprintf(w, "\t\t%d\t%s\t\n", year, utils.FormatAmount(total))
		if err := w.Flush(); err != nil {
			return err
		}
		printSkipped(cmd, batch.Skipped)
		return nil
	})
}

func printSkipped(cmd *cobra.Command, skipped []domain.SkippedItem) {
	if len(skipped) == 0 {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "\n%d skipped:\n", len(skipped))
	for _, s := range skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s %s: %s\n", s.ItemID, s.Name, s.Reason)
	}
}
