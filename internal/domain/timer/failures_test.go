package timer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ganot/tempus-mcp/internal/domain/timer"
	"github.com/ganot/tempus-mcp/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Persistence failures must not interrupt tracking: writes are logged and
// swallowed, and the in-memory counter stays authoritative.
func TestPersistenceFailureDoesNotStopTimer(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()

	states := new(mocks.TimerStateRepository)
	states.On("Load", mock.Anything).Return(nil, nil)
	states.On("Store", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	selection := new(mocks.SelectionRepository)
	selection.On("Load", mock.Anything).Return("DEV-001", nil)
	selection.On("Store", mock.Anything, mock.Anything).Return(nil)

	svc := timer.NewService(ctx, states, selection, &stubLogs{}, &stubDirectory{codes: map[string]bool{"DEV-001": true}}, &stubEvents{}, nil, clock, timer.DefaultOptions(), nil)

	require.NoError(t, svc.Start(ctx, "alice"))
	clock.advance(5 * time.Second)
	svc.Tick(ctx)

	snap := svc.Status()
	assert.True(t, snap.Running)
	assert.Equal(t, int64(5), snap.ElapsedSeconds)
	states.AssertCalled(t, "Store", mock.Anything, mock.Anything)
}

func TestRecoveryToleratesLoadFailure(t *testing.T) {
	ctx := context.Background()

	states := new(mocks.TimerStateRepository)
	states.On("Load", mock.Anything).Return(nil, errors.New("corrupt state"))
	states.On("Store", mock.Anything, mock.Anything).Return(nil)

	selection := new(mocks.SelectionRepository)
	selection.On("Load", mock.Anything).Return("", nil)

	svc := timer.NewService(ctx, states, selection, &stubLogs{}, &stubDirectory{}, &stubEvents{}, nil, newFakeClock(), timer.DefaultOptions(), nil)

	snap := svc.Status()
	assert.False(t, snap.Running)
	assert.Equal(t, int64(0), snap.ElapsedSeconds)
}
