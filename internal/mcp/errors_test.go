package mcp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ganot/tempus-mcp/internal/domain/alert"
	"github.com/ganot/tempus-mcp/internal/domain/project"
	"github.com/ganot/tempus-mcp/internal/domain/timelog"
	"github.com/ganot/tempus-mcp/internal/domain/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{project.ErrProjectNotFound, "PROJECT_NOT_FOUND"},
		{project.ErrInvalidCode, "INVALID_PROJECT_CODE"},
		{project.ErrDuplicateCode, "DUPLICATE_PROJECT_CODE"},
		{timelog.ErrEntryNotFound, "ENTRY_NOT_FOUND"},
		{timer.ErrNoProject, "NO_PROJECT_SELECTED"},
		{timer.ErrNotRunning, "TIMER_NOT_RUNNING"},
		{timer.ErrStaleEntry, "STALE_TIMER_ENTRY"},
		{alert.ErrAlertNotFound, "ALERT_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			apiErr := MapError(tt.err)
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.code, apiErr.Code)
			assert.NotEmpty(t, apiErr.Message)
			assert.NotEmpty(t, apiErr.RecoveryHint)
		})
	}
}

func TestMapErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("saving: %w", timer.ErrStaleEntry)
	apiErr := MapError(wrapped)
	require.NotNil(t, apiErr)
	assert.Equal(t, "STALE_TIMER_ENTRY", apiErr.Code)
}

func TestMapErrorUnknown(t *testing.T) {
	assert.Nil(t, MapError(nil))
	assert.Nil(t, MapError(errors.New("something else")))
}

func TestToolErrorPrefersAPIError(t *testing.T) {
	err := toolError(timer.ErrNoProject)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "NO_PROJECT_SELECTED", apiErr.Code)
	assert.Equal(t, "NO_PROJECT_SELECTED: no project selected", apiErr.Error())

	plain := errors.New("plumbing failure")
	assert.Equal(t, plain, toolError(plain))
}
