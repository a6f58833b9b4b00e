package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/shipboard/core"
	"github.com/huangsam/shipboard/internal/apiclient"
	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/schema"
	"github.com/spf13/cobra"
)

// parseRow builds a row from an optional JSON object and key=value pairs.
// Values are decoded as JSON when possible so numbers, booleans and null keep their type;
// anything else is kept as a string. Pairs override keys of the JSON object.
func parseRow(data string, pairs []string) (schema.Row, error) {
	row := schema.Row{}
	if strings.TrimSpace(data) != "" {
		if err := json.Unmarshal([]byte(data), &row); err != nil {
			return nil, fmt.Errorf("invalid --data: expected a JSON object: %w", err)
		}
	}
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid field %q: expected key=value", pair)
		}
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}
		row[key] = value
	}
	return row, nil
}

// rowFromCommand parses the --data flag and the positional key=value pairs.
func rowFromCommand(cmd *cobra.Command, pairs []string) schema.Row {
	data, _ := cmd.Flags().GetString("data")
	row, err := parseRow(data, pairs)
	if err != nil {
		contract.LogFatal("Cannot parse row", err)
	}
	return row
}

// adminCmd focused on editing backend tables.
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Edit backend tables (developers, releases, projects, ...)",
	Long: `List, create, update and remove rows of the backend tables.

Rows are given as key=value arguments and/or a JSON object with --data. Required foreign
keys are checked before any request is sent.

Subcommands:
  tables - List the editable tables
  list   - Print every row of a table
  create - Create a row
  update - Replace a row
  remove - Delete a row

Examples:
  shipboard admin list incidents
  shipboard admin create incidents developer_key=alice severity=high date=2024-03-02
  shipboard admin update releases 42 --data '{"developer_key":"bob","is_rollback":true}'
  shipboard admin remove project_releases 17`,
}

// adminTablesCmd lists the tables.
var adminTablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the editable tables and their required foreign keys",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		for _, table := range apiclient.TableNames() {
			keys := apiclient.AdminTables[table]
			if len(keys) == 0 {
				cmd.Println(table)
				continue
			}
			cmd.Printf("%s (requires %s)\n", table, strings.Join(keys, ", "))
		}
	},
}

// adminListCmd lists rows.
var adminListCmd = &cobra.Command{
	Use:     "list <table>",
	Short:   "Print every row of a table",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteAdminList(rootCtx, cfg, services(), args[0]); err != nil {
			contract.LogFatal("Cannot list rows", err)
		}
	},
}

// adminCreateCmd creates a row.
var adminCreateCmd = &cobra.Command{
	Use:     "create <table> [key=value...]",
	Short:   "Create a row",
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, args []string) {
		row := rowFromCommand(cmd, args[1:])
		if err := core.ExecuteAdminCreate(rootCtx, cfg, services(), args[0], row); err != nil {
			contract.LogFatal("Cannot create row", err)
		}
	},
}

// adminUpdateCmd replaces a row.
var adminUpdateCmd = &cobra.Command{
	Use:     "update <table> <id> [key=value...]",
	Short:   "Replace a row",
	Args:    cobra.MinimumNArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, args []string) {
		row := rowFromCommand(cmd, args[2:])
		if err := core.ExecuteAdminUpdate(rootCtx, cfg, services(), args[0], args[1], row); err != nil {
			contract.LogFatal("Cannot update row", err)
		}
	},
}

// adminRemoveCmd deletes a row.
var adminRemoveCmd = &cobra.Command{
	Use:     "remove <table> <id>",
	Short:   "Delete a row",
	Args:    cobra.ExactArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, args []string) {
		if err := core.ExecuteAdminRemove(rootCtx, services(), args[0], args[1]); err != nil {
			contract.LogFatal("Cannot remove row", err)
		}
		cmd.Printf("Removed row %s from %s.\n", args[1], args[0])
	},
}
