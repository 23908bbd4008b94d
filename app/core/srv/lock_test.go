package srv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSessionLocker(t *testing.T) {
	ctx := context.Background()
	locker := NewLocalSessionLocker()

	ok, err := locker.TryLock(ctx, "session:1")
	require.NoError(t, err)
	assert.True(t, ok)

	// second acquisition on the same key is refused
	ok, err = locker.TryLock(ctx, "session:1")
	require.NoError(t, err)
	assert.False(t, ok)

	// other keys are independent
	ok, err = locker.TryLock(ctx, "session:2")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, locker.Unlock(ctx, "session:1"))
	ok, err = locker.TryLock(ctx, "session:1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocalSessionLockerUnlockUnheld(t *testing.T) {
	locker := NewLocalSessionLocker()
	assert.NoError(t, locker.Unlock(context.Background(), "never-held"))
}
