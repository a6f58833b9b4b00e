package core

import (
	"context"
	"errors"
	"testing"

	"github.com/huangsam/shipboard/internal/apiclient"
	"github.com/huangsam/shipboard/internal/outwriter"
	"github.com/huangsam/shipboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExecuteAdmin(t *testing.T) {
	ctx := context.Background()
	cfg := allTimeConfig()

	t.Run("list", func(t *testing.T) {
		rows := []schema.Row{{"id": 1.0, "number": 7.0}}
		admin := &apiclient.MockAdminClient{}
		admin.On("List", mock.Anything, "sprints").Return(rows, nil)
		writer := &outwriter.MockOutputWriter{}
		writer.On("WriteAdminRows", "sprints", rows, cfg).Return(nil)

		require.NoError(t, ExecuteAdminList(ctx, cfg, Services{Admin: admin, Writer: writer, Logger: quietLogger()}, "sprints"))
		writer.AssertExpectations(t)
	})

	t.Run("create echoes the saved row", func(t *testing.T) {
		row := schema.Row{"developer_key": "alice", "severity": "high"}
		saved := schema.Row{"id": 9.0, "developer_key": "alice", "severity": "high"}
		admin := &apiclient.MockAdminClient{}
		admin.On("Create", mock.Anything, "incidents", row).Return(saved, nil)
		writer := &outwriter.MockOutputWriter{}
		writer.On("WriteAdminRows", "incidents", []schema.Row{saved}, cfg).Return(nil)

		require.NoError(t, ExecuteAdminCreate(ctx, cfg, Services{Admin: admin, Writer: writer, Logger: quietLogger()}, "incidents", row))
		writer.AssertExpectations(t)
	})

	t.Run("update failure is wrapped", func(t *testing.T) {
		admin := &apiclient.MockAdminClient{}
		admin.On("Update", mock.Anything, "releases", "4", mock.Anything).
			Return(nil, &apiclient.ValidationError{Table: "releases", Field: "developer_key"})
		writer := &outwriter.MockOutputWriter{}

		err := ExecuteAdminUpdate(ctx, cfg, Services{Admin: admin, Writer: writer, Logger: quietLogger()}, "releases", "4", schema.Row{})
		var vErr *apiclient.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "developer_key", vErr.Field)
		assert.Contains(t, err.Error(), "update releases row 4")
		writer.AssertNotCalled(t, "WriteAdminRows", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("remove", func(t *testing.T) {
		admin := &apiclient.MockAdminClient{}
		admin.On("Remove", mock.Anything, "projects", "3").Return(nil).Once()
		admin.On("Remove", mock.Anything, "projects", "4").Return(errors.New("404 not found"))
		svc := Services{Admin: admin, Logger: quietLogger()}

		require.NoError(t, ExecuteAdminRemove(ctx, svc, "projects", "3"))
		assert.ErrorContains(t, ExecuteAdminRemove(ctx, svc, "projects", "4"), "remove projects row 4")
	})
}
