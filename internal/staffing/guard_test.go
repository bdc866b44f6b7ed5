package staffing

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryGuard(t *testing.T) {
	ctx := context.Background()
	guard := NewMemoryGuard()

	ok, err := guard.TryAcquire(ctx, TimesheetKey(1))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = guard.TryAcquire(ctx, TimesheetKey(1))
	require.NoError(t, err)
	require.False(t, ok)

	// 不同实体互不影响
	ok, err = guard.TryAcquire(ctx, TimesheetKey(2))
	require.NoError(t, err)
	require.True(t, ok)

	guard.Release(ctx, TimesheetKey(1))
	ok, err = guard.TryAcquire(ctx, TimesheetKey(1))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMemoryGuardConcurrentAcquire(t *testing.T) {
	ctx := context.Background()
	guard := NewMemoryGuard()

	var acquired atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := guard.TryAcquire(ctx, ShiftKey(9)); ok {
				acquired.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), acquired.Load())
}

func TestKeys(t *testing.T) {
	require.Equal(t, "shift:3", ShiftKey(3))
	require.Equal(t, "application:3", ApplicationKey(3))
	require.Equal(t, "timesheet:3", TimesheetKey(3))
}
