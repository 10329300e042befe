package orbit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDebugLogEveryInterval(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := stillConfig()
	cfg.Debug = true
	v := newTestViewer(t, testItems(3, 0), cfg, WithLogger(zap.New(core)))

	for i := 0; i < debugInterval; i++ {
		v.Update(testDT)
	}
	ticks := logs.FilterMessage("tick").All()
	require.Len(t, ticks, 1)
	fields := ticks[0].ContextMap()
	assert.Equal(t, int64(3), fields["frames"])
	assert.Equal(t, int64(3), fields["requested"])
}

func TestDebugModeOff(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	v := newTestViewer(t, testItems(3, 0), stillConfig(), WithLogger(zap.New(core)))
	v.SetDebugMode(false)

	for i := 0; i < debugInterval; i++ {
		v.Update(testDT)
	}
	assert.Zero(t, logs.FilterMessage("tick").Len())
}

func TestAssetFailureLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	items := testItems(1, 0)
	v, err := NewViewer(items, stillConfig(),
		instantFetcher(map[string]error{items[0].Cover(): assert.AnError}),
		WithLogger(zap.New(core)),
		WithLoaderOptions(WithTextureFunc(nil)))
	require.NoError(t, err)
	defer v.Close()

	require.Eventually(t, func() bool {
		v.Update(testDT)
		return v.Loader().Progress().Failed == 1
	}, 2*time.Second, time.Millisecond)

	entries := logs.FilterMessage("asset load failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, items[0].Cover(), entries[0].ContextMap()["url"])
	assert.False(t, v.Frames()[0].Asset.Ready(), "failed asset draws a placeholder")
}
