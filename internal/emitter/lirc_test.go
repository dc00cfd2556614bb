package emitter

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taoyao-code/ir-remote/internal/protocol/panasonic"
)

func TestLircTrainFromFrame(t *testing.T) {
	pulses := panasonic.Modulate(panasonic.NewFrame())
	train, err := lircTrain(pulses)
	require.NoError(t, err)

	// 尾部 stop space 被丢弃，奇数个值
	require.Len(t, train, len(pulses)-1)
	assert.Equal(t, 1, len(train)%2)
	assert.Equal(t, uint32(3500), train[0])
	assert.Equal(t, uint32(1700), train[1])
	assert.Equal(t, uint32(430), train[len(train)-1])

	// 子帧间隔保留为 10ms space
	var found bool
	for i := 1; i < len(train); i += 2 {
		if train[i] == 10000 {
			found = true
			assert.Equal(t, uint32(3500), train[i+1], "second subframe starts after stop space")
		}
	}
	assert.True(t, found)
}

func TestLircTrainMergesAndTrims(t *testing.T) {
	us := time.Microsecond
	tests := []struct {
		name string
		in   []panasonic.Pulse
		want []uint32
	}{
		{
			name: "空序列",
			in:   nil,
			want: []uint32{},
		},
		{
			name: "首部 space 丢弃",
			in: []panasonic.Pulse{
				{Level: panasonic.LevelSpace, Duration: 100 * us},
				{Level: panasonic.LevelMark, Duration: 200 * us},
			},
			want: []uint32{200},
		},
		{
			name: "同电平合并",
			in: []panasonic.Pulse{
				{Level: panasonic.LevelMark, Duration: 200 * us},
				{Level: panasonic.LevelMark, Duration: 300 * us},
				{Level: panasonic.LevelSpace, Duration: 100 * us},
				{Level: panasonic.LevelSpace, Duration: 0},
				{Level: panasonic.LevelSpace, Duration: 50 * us},
				{Level: panasonic.LevelMark, Duration: 10 * us},
				{Level: panasonic.LevelSpace, Duration: 900 * us},
			},
			want: []uint32{500, 150, 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lircTrain(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLircTrainTooLong(t *testing.T) {
	var pulses []panasonic.Pulse
	for n := 0; n < lircMaxValues; n++ {
		pulses = append(pulses,
			panasonic.Pulse{Level: panasonic.LevelMark, Duration: time.Microsecond},
			panasonic.Pulse{Level: panasonic.LevelSpace, Duration: time.Microsecond},
		)
	}
	_, err := lircTrain(pulses)
	assert.ErrorIs(t, err, ErrTrainTooLong)
}

func TestLircBytes(t *testing.T) {
	b := lircBytes([]uint32{3500, 1700})
	require.Len(t, b, 8)
	assert.Equal(t, uint32(3500), binary.NativeEndian.Uint32(b[0:4]))
	assert.Equal(t, uint32(1700), binary.NativeEndian.Uint32(b[4:8]))
}
