// Package cmd defines the command-line interface for shipboard.
package cmd

import (
	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(developersCmd)
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(bugfixCmd)
	rootCmd.AddCommand(ownershipCmd)
	rootCmd.AddCommand(coverageCmd)
	rootCmd.AddCommand(quartersCmd)
	rootCmd.AddCommand(incidentsCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the filter subcommands to the parent filter command
	filterCmd.AddCommand(filterShowCmd)
	filterCmd.AddCommand(filterSetCmd)
	filterCmd.AddCommand(filterClearCmd)

	// Add the admin subcommands to the parent admin command
	adminCmd.AddCommand(adminTablesCmd)
	adminCmd.AddCommand(adminListCmd)
	adminCmd.AddCommand(adminCreateCmd)
	adminCmd.AddCommand(adminUpdateCmd)
	adminCmd.AddCommand(adminRemoveCmd)

	// Add the prefs subcommands to the parent prefs command
	prefsCmd.AddCommand(prefsClearCmd)
	prefsCmd.AddCommand(prefsStatusCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("api-url", contract.DefaultAPIURL, "Base URL of the delivery-metrics API")
	rootCmd.PersistentFlags().String("timeout", contract.DefaultTimeout.String(), "Timeout for each API request (e.g., 10s, 1m)")
	rootCmd.PersistentFlags().Float64("rate-limit", contract.DefaultRateLimit, "Maximum API requests per second")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or yaml or html or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("mode", "", "Period mode: all or sprint or range (inferred from the other period flags)")
	rootCmd.PersistentFlags().Int64("sprint-id", 0, "Sprint ID for sprint mode")
	rootCmd.PersistentFlags().String("from", "", "Inclusive start date (YYYY-MM-DD) for range mode")
	rootCmd.PersistentFlags().String("to", "", "Inclusive end date (YYYY-MM-DD) for range mode")
	rootCmd.PersistentFlags().Bool("use-saved-filter", false, "Apply the saved board filter when no period flags are given")
	rootCmd.PersistentFlags().String("prefs-backend", string(schema.SQLiteBackend), "Preferences backend: sqlite or mysql or postgresql or bolt or none")
	rootCmd.PersistentFlags().String("prefs-db-connect", "", "Database connection string for mysql/postgresql, or a file path for sqlite/bolt")
	rootCmd.PersistentFlags().String("history-backend", "", "Snapshot history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for snapshot history (must differ from prefs-db-connect)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of timelineCmd to Viper
	timelineCmd.Flags().String("granularity", string(schema.MonthlyTimeline), "Timeline buckets: monthly or sprint")
	if err := viper.BindPFlags(timelineCmd.Flags()); err != nil {
		contract.LogFatal("Error binding timeline flags", err)
	}

	// Bind all flags of ownershipCmd to Viper
	ownershipCmd.Flags().String("scope", string(schema.RepoScope), "Ownership scope: repo or project")
	if err := viper.BindPFlags(ownershipCmd.Flags()); err != nil {
		contract.LogFatal("Error binding ownership flags", err)
	}

	// Bind all flags of compareCmd to Viper
	compareCmd.Flags().String("base-from", "", "Start date (YYYY-MM-DD) of the BEFORE range")
	compareCmd.Flags().String("base-to", "", "End date (YYYY-MM-DD) of the BEFORE range")
	compareCmd.Flags().String("target-from", "", "Start date (YYYY-MM-DD) of the AFTER range")
	compareCmd.Flags().String("target-to", "", "End date (YYYY-MM-DD) of the AFTER range")
	if err := viper.BindPFlags(compareCmd.Flags()); err != nil {
		contract.LogFatal("Error binding compare flags", err)
	}

	// Admin row payloads are not configuration, so they stay off Viper
	adminCreateCmd.Flags().String("data", "", "Row as a JSON object (merged with key=value arguments)")
	adminUpdateCmd.Flags().String("data", "", "Row as a JSON object (merged with key=value arguments)")

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
