package emitter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	cfgpkg "github.com/taoyao-code/ir-remote/internal/config"
	"github.com/taoyao-code/ir-remote/internal/protocol/panasonic"
)

func TestOpenDryRun(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	e, err := Open(cfgpkg.EmitterConfig{Driver: DriverDryRun}, zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, DriverDryRun, e.Name())

	require.NoError(t, e.Emit(panasonic.Modulate(panasonic.NewFrame())))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, int64(panasonic.PulseCount), logs.All()[0].ContextMap()["pulses"])
	assert.NoError(t, e.Close())
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(cfgpkg.EmitterConfig{Driver: "laser"}, zap.NewNop())
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	assert.Nil(t, r.Last())

	pulses := panasonic.Modulate(panasonic.NewFrame())
	require.NoError(t, r.Emit(pulses))
	pulses[0].Duration = 0 // 调用方修改不影响记录
	assert.Len(t, r.Transmissions(), 1)
	assert.NotZero(t, r.Last()[0].Duration)

	boom := errors.New("boom")
	r.FailWith(boom)
	assert.ErrorIs(t, r.Emit(pulses), boom)
	r.FailWith(nil)
	require.NoError(t, r.Emit(pulses))
	assert.Len(t, r.Transmissions(), 2)
}
