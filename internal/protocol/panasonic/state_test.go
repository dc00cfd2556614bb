package panasonic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		name string
		in   State
		want State
	}{
		{
			name: "开机 24.5 强劲",
			in:   State{Power: true, Temperature: 24, Half: true, FanMode: FanModePowerfull},
			want: State{Power: true, Temperature: 24, Half: true, FanMode: FanModePowerfull},
		},
		{
			name: "关机强制 AUTO",
			in:   State{Power: false, Temperature: 18, FanMode: FanModeQuiet},
			want: State{Power: false, Temperature: 18, FanMode: FanModeAuto},
		},
		{
			name: "30 度无半度",
			in:   State{Power: true, Temperature: 30, Half: true, FanMode: FanModeQuiet},
			want: State{Power: true, Temperature: 30, Half: false, FanMode: FanModeQuiet},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Encode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Decode(f))
			assert.NoError(t, f.Verify())
		})
	}
}

func TestEncodeRejectsInvalid(t *testing.T) {
	_, err := Encode(State{Temperature: 12})
	assert.ErrorIs(t, err, ErrTemperatureOutOfRange)

	_, err = Encode(State{Temperature: 20, FanMode: FanMode(5)})
	assert.ErrorIs(t, err, ErrInvalidFanMode)
}

func TestApplyLeavesFrameOnError(t *testing.T) {
	f := NewFrame()
	f.SetPower(true)
	before := f.Bytes()

	err := State{Power: false, Temperature: 31}.Apply(f)
	assert.ErrorIs(t, err, ErrTemperatureOutOfRange)
	assert.Equal(t, before, f.Bytes())
}

func TestEncodeMatchesMutatorSequence(t *testing.T) {
	f := NewFrame()
	require.NoError(t, f.SetTemperature(24, true))
	f.SetPower(true)
	require.NoError(t, f.SetFanMode(FanModePowerfull))

	encoded, err := Encode(State{Power: true, Temperature: 24, Half: true, FanMode: FanModePowerfull})
	require.NoError(t, err)
	assert.Equal(t, f.Bytes(), encoded.Bytes())
}

func TestDefaultState(t *testing.T) {
	s := DefaultState()
	assert.Equal(t, State{Temperature: 25, FanMode: FanModeAuto}, s)
	assert.InDelta(t, 25.0, s.Celsius(), 0.001)
	assert.InDelta(t, 20.5, State{Temperature: 20, Half: true}.Celsius(), 0.001)
}
