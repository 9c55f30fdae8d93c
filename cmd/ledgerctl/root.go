package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	portssvc "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/services"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/services"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/middleware"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/platform/config"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/platform/storage"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// globals shared by every subcommand, filled in by PersistentPreRunE.
var (
	cfg    *config.Config
	logger *slog.Logger

	tenantID string
	userID   string
	asJSON   bool
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "ledgerctl",
	Short: "Operate the general ledger from the command line",
	Long: `ledgerctl runs ledger batch operations directly against the configured store.

Configuration is read from the environment (and a .env file when present), the same
variables the API server and worker use: STORE_DRIVER, DATABASE_URL, REDIS_ADDR, ...`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return err
		}
		if tenantID == "" {
			tenantID = os.Getenv("LEDGER_TENANT")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&tenantID, "tenant", "t", "", "Tenant to operate on (default $LEDGER_TENANT)")
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "ledgerctl", "User recorded in audit fields")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
}

func requireTenant() error {
	if strings.TrimSpace(tenantID) == "" {
		return fmt.Errorf("--tenant or LEDGER_TENANT is required")
	}
	return nil
}

// withServices opens the store, builds the services and runs fn with a tenant-scoped context.
func withServices(cmd *cobra.Command, migrate bool, fn func(ctx context.Context, svc *portssvc.ServiceContainer) error) error {
	ctx := middleware.WithTenant(cmd.Context(), tenantID, userID)
	ctx = middleware.WithLogger(ctx, logger.With(slog.String("tenant_id", tenantID), slog.String("command", cmd.Name())))

	store, closeStore, err := storage.Open(ctx, cfg, migrate, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	return fn(ctx, services.NewServiceContainer(cfg, store))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
