package core

import (
	"context"
	"fmt"

	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/schema"
	"github.com/sirupsen/logrus"
)

// ExecuteAdminList prints every row of an admin table.
func ExecuteAdminList(ctx context.Context, cfg *contract.Config, svc Services, table string) error {
	rows, err := svc.Admin.List(ctx, table)
	if err != nil {
		return fmt.Errorf("list %s: %w", table, err)
	}
	return svc.Writer.WriteAdminRows(table, rows, cfg)
}

// ExecuteAdminCreate creates a row and prints the row the backend persisted.
func ExecuteAdminCreate(ctx context.Context, cfg *contract.Config, svc Services, table string, row schema.Row) error {
	saved, err := svc.Admin.Create(ctx, table, row)
	if err != nil {
		return fmt.Errorf("create %s row: %w", table, err)
	}
	svc.Logger.WithField("table", table).Info("Row created")
	return svc.Writer.WriteAdminRows(table, []schema.Row{saved}, cfg)
}

// ExecuteAdminUpdate replaces a row and prints the row the backend persisted.
func ExecuteAdminUpdate(ctx context.Context, cfg *contract.Config, svc Services, table, id string, row schema.Row) error {
	saved, err := svc.Admin.Update(ctx, table, id, row)
	if err != nil {
		return fmt.Errorf("update %s row %s: %w", table, id, err)
	}
	svc.Logger.WithFields(logrus.Fields{"table": table, "id": id}).Info("Row updated")
	return svc.Writer.WriteAdminRows(table, []schema.Row{saved}, cfg)
}

// ExecuteAdminRemove deletes a row.
func ExecuteAdminRemove(ctx context.Context, svc Services, table, id string) error {
	if err := svc.Admin.Remove(ctx, table, id); err != nil {
		return fmt.Errorf("remove %s row %s: %w", table, id, err)
	}
	svc.Logger.WithFields(logrus.Fields{"table": table, "id": id}).Info("Row removed")
	return nil
}
