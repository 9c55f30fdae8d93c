package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	portssvc "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/services"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils"
	"github.com/spf13/cobra"
)

var gctReturnCmd = &cobra.Command{
	Use:     "gct-return",
	Short:   "Compute the GCT return for a date range",
	Example: `  ledgerctl gct-return --tenant acme --from 2024-01-01 --to 2024-01-31`,
	RunE:    runGCTReturn,
}

var trialBalanceCmd = &cobra.Command{
	Use:   "trial-balance",
	Short: "Print the trial balance as of a date",
	RunE:  runTrialBalance,
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Compare stored account balances with their posted lines",
	Long: `reconcile recomputes every account balance from posted journal lines and reports
accounts whose stored balance differs. It exits non-zero when any drift is found.`,
	RunE: runReconcile,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded schema migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, true, func(ctx context.Context, _ *portssvc.ServiceContainer) error {
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(gctReturnCmd, trialBalanceCmd, reconcileCmd, migrateCmd)

	gctReturnCmd.Flags().String("from", "", "First day of the period, YYYY-MM-DD")
	gctReturnCmd.Flags().String("to", "", "Last day of the period, YYYY-MM-DD")
	_ = gctReturnCmd.MarkFlagRequired("from")
	_ = gctReturnCmd.MarkFlagRequired("to")

	trialBalanceCmd.Flags().String("as-of", "", "Cut-off date, YYYY-MM-DD (default: today)")
}

func dateFlag(cmd *cobra.Command, name string) (time.Time, error) {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s. Use YYYY-MM-DD: %w", name, err)
	}
	return t, nil
}

func runGCTReturn(cmd *cobra.Command, args []string) error {
	if err := requireTenant(); err != nil {
		return err
	}
	from, err := dateFlag(cmd, "from")
	if err != nil {
		return err
	}
	to, err := dateFlag(cmd, "to")
	if err != nil {
		return err
	}

	return withServices(cmd, false, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
		ret, err := svc.GCT.ComputeReturn(ctx, tenantID, from, to)
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), ret)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "GCT return %s to %s\n\n", ret.PeriodStart.Format("2006-01-02"), ret.PeriodEnd.Format("2006-01-02"))
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "BUCKET\tSALES\tTAX\tLINES\n")
		for _, b := range ret.Output {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", b.Bucket, utils.FormatAmount(b.TaxableSales), utils.FormatAmount(b.TaxCollected), b.LineCount)
		}
		fmt.Fprintf(w, "\n")
		fmt.Fprintf(w, "Output tax\t%s\n", utils.FormatAmount(ret.TotalOutputTax))
		fmt.Fprintf(w, "Input tax paid\t%s\n", utils.FormatAmount(ret.TotalInputPaid))
		fmt.Fprintf(w, "  claimable\t%s\n", utils.FormatAmount(ret.TotalClaimable))
		fmt.Fprintf(w, "  restricted\t%s\n", utils.FormatAmount(ret.TotalRestricted))
		fmt.Fprintf(w, "  deferred\t%s\n", utils.FormatAmount(ret.TotalDeferred))
		fmt.Fprintf(w, "Net %s\t%s\n", ret.Position, utils.FormatAmount(ret.NetAmount.Abs()))
		return w.Flush()
	})
}

func runTrialBalance(cmd *cobra.Command, args []string) error {
	if err := requireTenant(); err != nil {
		return err
	}
	asOf, err := dateFlag(cmd, "as-of")
	if err != nil {
		return err
	}

	return withServices(cmd, false, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
		tb, err := svc.Reporting.GetTrialBalance(ctx, tenantID, asOf)
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), tb)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "CODE\tACCOUNT\tTYPE\tDEBIT\tCREDIT\n")
		for _, r := range tb.Rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Code, r.AccountName, r.AccountType, utils.FormatAmount(r.Debit), utils.FormatAmount(r.Credit))
		}
		fmt.Fprintf(w, "\t\tTOTAL\t%s\t%s\n", utils.FormatAmount(tb.Totals.Debit), utils.FormatAmount(tb.Totals.Credit))
		return w.Flush()
	})
}

func runReconcile(cmd *cobra.Command, args []string) error {
	if err := requireTenant(); err != nil {
		return err
	}

	return withServices(cmd, false, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
		resp, err := svc.Reporting.ReconcileBalances(ctx, tenantID)
		if err != nil {
			return err
		}
		if asJSON {
			if err := printJSON(cmd.OutOrStdout(), resp); err != nil {
				return err
			}
		} else {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "CODE\tSTORED\tPOSTED\tDIFFERENCE\n")
			for _, d := range resp.Discrepancies {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Code, utils.FormatAmount(d.StoredBalance), utils.FormatAmount(d.PostedBalance), utils.FormatAmount(d.Difference))
			}
			if err := w.Flush(); err != nil {
				return err
			}
		}
		if n := len(resp.Discrepancies); n > 0 {
			return fmt.Errorf("%d of %d accounts out of balance", n, resp.AccountsChecked)
		}
		return nil
	})
}
