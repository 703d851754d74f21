package logging

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "zappy/internal/errors"
	"zappy/internal/logger"
)

func fieldMap(fields []logger.Field) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}

func TestFieldsSkipsReservedMetadata(t *testing.T) {
	appErr := apperrors.UserLogicError("logic failed", errors.New("boom")).
		WithModule("runner").
		WithField("app", "ExampleApp").
		WithField("module", "overwritten")

	got := fieldMap(Fields(appErr))

	assert.Equal(t, apperrors.CodeUserLogic, got["error_code"])
	assert.Equal(t, "RUN", got["error_category"])
	assert.Equal(t, "boom", got["error"])
	assert.Equal(t, "runner", got["module"])
	assert.Equal(t, "ExampleApp", got["app"])
	assert.Equal(t, true, got["recoverable"])
	assert.Contains(t, got, "error_time")
}

func TestDebugAndErrorEmitEntries(t *testing.T) {
	mock := logger.NewMockLogger()
	appErr := apperrors.StorageWriteError("save failed", errors.New("disk full"))

	Debug(context.Background(), mock, "bump failed", appErr)
	Error(context.Background(), mock, "bump failed", appErr)
	Error(context.Background(), nil, "ignored", appErr)

	entries := mock.GetEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, logger.LevelDebug, entries[0].Level)
	assert.Equal(t, logger.LevelError, entries[1].Level)
	assert.Equal(t, "disk full", fieldMap(entries[1].Fields)["error"])
	assert.Nil(t, Fields(nil))
}
