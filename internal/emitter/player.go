package emitter

import (
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/taoyao-code/ir-remote/internal/protocol/panasonic"
)

// Line 单路数字输出
type Line interface {
	SetValue(value int) error
}

// Delayer 阻塞延时原语
type Delayer interface {
	Delay(d time.Duration)
}

// BusyWait 基于单调时钟的忙等延时；time.Sleep 的唤醒粒度无法满足百微秒级精度
type BusyWait struct{}

// Delay 自旋直到 d 耗尽
func (BusyWait) Delay(d time.Duration) {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
	}
}

// LinePlayer 在一路输出线上回放脉冲序列（mark=1, space=0）
type LinePlayer struct {
	name    string
	line    Line
	delay   Delayer
	carrier io.Closer

	mu     sync.Mutex
	closed bool
}

// NewLinePlayer 创建回放器；carrier 可为 nil（由外部硬件提供载波）
func NewLinePlayer(name string, line Line, delay Delayer, carrier io.Closer) *LinePlayer {
	return &LinePlayer{name: name, line: line, delay: delay, carrier: carrier}
}

// Name 驱动名
func (p *LinePlayer) Name() string { return p.name }

// Emit 在锁定的 OS 线程上逐区间输出，结束后线路回到低电平
func (p *LinePlayer) Emit(pulses []panasonic.Pulse) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}

	errCh := make(chan error, 1)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		errCh <- p.play(pulses)
	}()
	return <-errCh
}

func (p *LinePlayer) play(pulses []panasonic.Pulse) error {
	for i, pl := range pulses {
		v := 0
		if pl.Level == panasonic.LevelMark {
			v = 1
		}
		if err := p.line.SetValue(v); err != nil {
			_ = p.line.SetValue(0)
			return fmt.Errorf("set line at pulse %d: %w", i, err)
		}
		p.delay.Delay(pl.Duration)
	}
	return p.line.SetValue(0)
}

// Close 释放输出线与载波
func (p *LinePlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	var firstErr error
	if c, ok := p.line.(io.Closer); ok {
		firstErr = c.Close()
	}
	if p.carrier != nil {
		if err := p.carrier.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
