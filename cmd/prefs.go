package cmd

import (
	"fmt"
	"strings"

	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/internal/iocache"
	"github.com/huangsam/shipboard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// prefsSetup loads the minimal configuration needed for preference operations.
// It skips API validation so the store can be inspected without a reachable backend.
func prefsSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("prefs-backend")))
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	connStr := viper.GetString("prefs-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	if err := iocache.InitStores(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize preferences: %w", err)
	}

	cfg.PrefsBackend = backend
	cfg.PrefsDBConnect = connStr

	return nil
}

func prefsSetupWrapper(_ *cobra.Command, _ []string) error {
	return prefsSetup()
}

// prefsCmd focused on the saved board preferences.
var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Manage saved board preferences",
	Long: `Manage the store that remembers board preferences such as the period filter.

Supported backends: SQLite (default), MySQL, PostgreSQL, bbolt, or None (nothing is remembered)

Subcommands:
  status - Show store statistics and connection info
  clear  - Forget every saved preference

Examples:
  shipboard prefs status
  SHIPBOARD_PREFS_BACKEND=bolt shipboard prefs clear`,
}

// prefsClearCmd clears the preferences.
var prefsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every saved preference",
	Long: `Delete every saved preference from the configured backend.

For SQLite and bbolt: Deletes the store file
For MySQL/PostgreSQL: Drops the preferences table

The next board run falls back to the all-time filter.`,
	PreRunE: prefsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Release the file handle before the file is removed
		iocache.CloseStores()
		if err := iocache.ClearPreferences(cfg.PrefsBackend, cfg.PrefsDBConnect); err != nil {
			contract.LogFatal("Failed to clear preferences", err)
		}
		fmt.Println("Preferences cleared successfully.")
	},
}

// prefsStatusCmd shows preferences status.
var prefsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display preference store statistics and connection details",
	Long: `Show the backend, connection state, number of saved keys and the last update time.`,
	PreRunE: prefsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetPreferenceStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get preferences status", err)
		}
		iocache.PrintPreferenceStatus(status)
	},
}
