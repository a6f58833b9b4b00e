package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/huangsam/shipboard/schema"
)

// adminPath is the root of the generic table editor.
const adminPath = "/admin"

// AdminTables maps every editable table to the foreign keys a row must carry.
var AdminTables = map[string][]string{
	"developers":        nil,
	"repositories":      nil,
	"releases":          {"developer_key"},
	"projects":          nil,
	"project_releases":  {"project_id", "release_id"},
	"bug_fix_details":   {"bugged_release_id", "fix_release_id"},
	"incidents":         {"developer_key"},
	"sprints":           nil,
	"developer_repos":   {"developer_key"},
	"base_branches":     nil,
	"developer_themes":  {"developer_key"},
	"project_leads":     {"project_id", "developer_key"},
	"repository_owners": {"developer_key"},
}

// TableNames returns the editable tables in alphabetical order.
func TableNames() []string {
	names := make([]string, 0, len(AdminTables))
	for name := range AdminTables {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ValidationError is returned when a row fails local validation before any request is sent.
type ValidationError struct {
	Table string
	Field string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required foreign key: %s", e.Field)
}

// ValidateTable rejects tables outside the registry.
func ValidateTable(table string) error {
	if _, ok := AdminTables[table]; !ok {
		return fmt.Errorf("unknown admin table %q (expected one of: %s)", table, strings.Join(TableNames(), ", "))
	}
	return nil
}

// ValidateRow checks that every required foreign key of table is present, non-null and non-empty.
func ValidateRow(table string, row schema.Row) error {
	if err := ValidateTable(table); err != nil {
		return err
	}
	for _, field := range AdminTables[table] {
		if isBlank(row[field]) {
			return &ValidationError{Table: table, Field: field}
		}
	}
	return nil
}

// isBlank reports whether a decoded JSON value is missing, null or an empty string.
func isBlank(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	default:
		return false
	}
}

func tablePath(table string) string {
	return adminPath + "/" + url.PathEscape(table)
}

func rowPath(table, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("row id is required for table %q", table)
	}
	return tablePath(table) + "/" + url.PathEscape(id), nil
}

// List implements the AdminClient interface.
func (c *Client) List(ctx context.Context, table string) ([]schema.Row, error) {
	if err := ValidateTable(table); err != nil {
		return nil, err
	}
	return getJSON[schema.Row](ctx, c, tablePath(table), "")
}

// Create implements the AdminClient interface. The persisted row is echoed back.
func (c *Client) Create(ctx context.Context, table string, row schema.Row) (schema.Row, error) {
	if err := ValidateRow(table, row); err != nil {
		return nil, err
	}
	var saved schema.Row
	if err := c.do(ctx, http.MethodPost, tablePath(table), "", row, &saved); err != nil {
		return nil, err
	}
	return saved, nil
}

// Update implements the AdminClient interface. The persisted row is echoed back.
func (c *Client) Update(ctx context.Context, table string, id string, row schema.Row) (schema.Row, error) {
	if err := ValidateRow(table, row); err != nil {
		return nil, err
	}
	path, err := rowPath(table, id)
	if err != nil {
		return nil, err
	}
	var saved schema.Row
	if err := c.do(ctx, http.MethodPut, path, "", row, &saved); err != nil {
		return nil, err
	}
	return saved, nil
}

// Remove implements the AdminClient interface.
func (c *Client) Remove(ctx context.Context, table string, id string) error {
	if err := ValidateTable(table); err != nil {
		return err
	}
	path, err := rowPath(table, id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, path, "", nil, nil)
}
