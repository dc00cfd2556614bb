package emitter

import (
	"sync"

	"go.uber.org/zap"

	"github.com/taoyao-code/ir-remote/internal/protocol/panasonic"
)

// Recorder 记录所有发射序列，用于测试与调试
type Recorder struct {
	mu     sync.Mutex
	frames [][]panasonic.Pulse
	err    error
}

// NewRecorder 创建记录器
func NewRecorder() *Recorder { return &Recorder{} }

// Name 驱动名
func (r *Recorder) Name() string { return "recorder" }

// FailWith 之后的 Emit 均返回 err（nil 恢复正常）
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Emit 保存序列副本
func (r *Recorder) Emit(pulses []panasonic.Pulse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.frames = append(r.frames, append([]panasonic.Pulse(nil), pulses...))
	return nil
}

// Close 无操作
func (r *Recorder) Close() error { return nil }

// Transmissions 返回已记录的序列
func (r *Recorder) Transmissions() [][]panasonic.Pulse {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]panasonic.Pulse, len(r.frames))
	copy(out, r.frames)
	return out
}

// Last 最近一次序列
func (r *Recorder) Last() []panasonic.Pulse {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return nil
	}
	return r.frames[len(r.frames)-1]
}

// DryRun 不驱动硬件，仅记录日志
type DryRun struct {
	log *zap.Logger
}

// NewDryRun 创建空跑发射器
func NewDryRun(logger *zap.Logger) *DryRun {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DryRun{log: logger}
}

// Name 驱动名
func (d *DryRun) Name() string { return DriverDryRun }

// Emit 打印序列摘要
func (d *DryRun) Emit(pulses []panasonic.Pulse) error {
	d.log.Info("dry-run emit",
		zap.Int("pulses", len(pulses)),
		zap.Duration("airtime", panasonic.Airtime(pulses)),
	)
	if ce := d.log.Check(zap.DebugLevel, "dry-run pulse train"); ce != nil {
		ce.Write(zap.Stringers("train", pulses))
	}
	return nil
}

// Close 无操作
func (d *DryRun) Close() error { return nil }
