package emitter

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taoyao-code/ir-remote/internal/protocol/panasonic"
)

type event struct {
	value int
	delay time.Duration
}

// fakeLine 记录 (电平, 延时) 对
type fakeLine struct {
	mu      sync.Mutex
	events  []event
	failAt  int
	writes  int
	closed  bool
	failErr error
}

func (l *fakeLine) SetValue(v int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writes++
	if l.failErr != nil && l.writes == l.failAt {
		return l.failErr
	}
	l.events = append(l.events, event{value: v})
	return nil
}

func (l *fakeLine) Delay(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events[len(l.events)-1].delay = d
}

func (l *fakeLine) Close() error {
	l.closed = true
	return nil
}

type fakeCarrier struct{ closed bool }

func (c *fakeCarrier) Close() error {
	c.closed = true
	return nil
}

func TestLinePlayerReproducesTrain(t *testing.T) {
	line := &fakeLine{}
	p := NewLinePlayer("test", line, line, nil)

	pulses := panasonic.Modulate(panasonic.NewFrame())
	require.NoError(t, p.Emit(pulses))

	require.Len(t, line.events, len(pulses)+1)
	for i, pl := range pulses {
		want := 0
		if pl.Level == panasonic.LevelMark {
			want = 1
		}
		assert.Equal(t, want, line.events[i].value, "pulse %d", i)
		assert.Equal(t, pl.Duration, line.events[i].delay, "pulse %d", i)
	}
	// 结束后回到低电平
	assert.Equal(t, event{value: 0}, line.events[len(line.events)-1])
}

func TestLinePlayerWriteError(t *testing.T) {
	boom := errors.New("boom")
	line := &fakeLine{failAt: 3, failErr: boom}
	p := NewLinePlayer("test", line, line, nil)

	err := p.Emit(panasonic.Modulate(panasonic.NewFrame()))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, line.events[len(line.events)-1].value, "line released low after failure")
}

func TestLinePlayerClose(t *testing.T) {
	line := &fakeLine{}
	carrier := &fakeCarrier{}
	p := NewLinePlayer("test", line, line, carrier)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.True(t, line.closed)
	assert.True(t, carrier.closed)
	assert.ErrorIs(t, p.Emit(nil), ErrClosed)
	assert.Equal(t, "test", p.Name())
}

func TestBusyWait(t *testing.T) {
	start := time.Now()
	BusyWait{}.Delay(2 * time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), 2*time.Millisecond)
}
