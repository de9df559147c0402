package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfo(t *testing.T) {
	l, primary, _ := newTestLedger(t,
		WithPlatform(PlatformWeb),
		WithClock(func() time.Time { return fixedNow }))
	ctx := context.Background()

	info := l.Info(ctx)
	assert.Equal(t, PlatformWeb, info.Platform)
	assert.Equal(t, "2025-03-07T19:05:09.123Z", info.Timestamp)
	assert.Equal(t, "mem://characters.json", info.Location)
	assert.False(t, info.Exists)
	assert.Empty(t, info.Error)

	require.NoError(t, l.SaveAll(ctx, docs(`{"name":"Garb"}`)))
	assert.True(t, l.Info(ctx).Exists)

	primary.readErr = errBroken
	info = l.Info(ctx)
	assert.False(t, info.Exists)
	assert.Contains(t, info.Error, "disk on fire")
}
