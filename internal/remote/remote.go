// Package remote 持有进程内唯一的空调命令帧，并负责把它发射出去。
//
// 所有修改与发射由同一把互斥锁串行化：任一修改方法返回前校验和已经更新，
// Send 读取的帧始终满足校验和不变式。发射期间调用方被阻塞。
package remote

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taoyao-code/ir-remote/internal/emitter"
	"github.com/taoyao-code/ir-remote/internal/metrics"
	"github.com/taoyao-code/ir-remote/internal/protocol/panasonic"
	"github.com/taoyao-code/ir-remote/internal/storage"
)

// Transmission 一次发射的结果
type Transmission struct {
	ID      string          `json:"id"`
	At      time.Time       `json:"at"`
	State   panasonic.State `json:"state"`
	Frame   string          `json:"frame"`
	Pulses  int             `json:"pulses"`
	Airtime time.Duration   `json:"airtime"`
	Elapsed time.Duration   `json:"elapsed"`
}

// Status 当前帧的只读视图
type Status struct {
	State    panasonic.State `json:"state"`
	Frame    string          `json:"frame"`
	Checksum byte            `json:"checksum"`
	Pulses   int             `json:"pulses"`
	Airtime  time.Duration   `json:"airtime"`
}

// Stats 发射统计
type Stats struct {
	Emitter   string    `json:"emitter"`
	Sent      uint64    `json:"sent"`
	Failed    uint64    `json:"failed"`
	LastAt    time.Time `json:"last_at,omitempty"`
	LastError string    `json:"last_error,omitempty"`
}

// Remote 遥控器
type Remote struct {
	mu      sync.Mutex
	frame   *panasonic.Frame
	emitter emitter.Emitter
	timing  panasonic.Timing
	stats   Stats

	history storage.TransmissionLog
	metrics *metrics.AppMetrics
	logger  *zap.Logger
	now     func() time.Time
}

// Option 可选项
type Option func(*Remote)

// WithTransmissionLog 发射记录写入 log
func WithTransmissionLog(log storage.TransmissionLog) Option {
	return func(r *Remote) { r.history = log }
}

// WithMetrics 设置业务指标
func WithMetrics(m *metrics.AppMetrics) Option {
	return func(r *Remote) { r.metrics = m }
}

// WithLogger 设置日志
func WithLogger(l *zap.Logger) Option {
	return func(r *Remote) { r.logger = l }
}

// WithTiming 覆盖脉冲时序
func WithTiming(t panasonic.Timing) Option {
	return func(r *Remote) { r.timing = t }
}

// New 以模板帧创建遥控器
func New(em emitter.Emitter, opts ...Option) *Remote {
	r := &Remote{
		frame:   panasonic.NewFrame(),
		emitter: em,
		timing:  panasonic.DefaultTiming,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetPower 开关机；关机时风量模式回到 AUTO
func (r *Remote) SetPower(on bool) {
	r.mu.Lock()
	r.frame.SetPower(on)
	r.mu.Unlock()
	r.countCommand("power", nil)
}

// SetTemperature 设置温度，越界时帧不变
func (r *Remote) SetTemperature(value int, half bool) error {
	r.mu.Lock()
	err := r.frame.SetTemperature(value, half)
	r.mu.Unlock()
	r.countCommand("temperature", err)
	return err
}

// SetFanMode 设置风量模式
func (r *Remote) SetFanMode(m panasonic.FanMode) error {
	r.mu.Lock()
	err := r.frame.SetFanMode(m)
	r.mu.Unlock()
	r.countCommand("fan_mode", err)
	return err
}

// Apply 一次性写入完整状态
func (r *Remote) Apply(s panasonic.State) error {
	r.mu.Lock()
	err := s.Apply(r.frame)
	r.mu.Unlock()
	r.countCommand("apply", err)
	return err
}

// Status 当前帧状态
func (r *Remote) Status() Status {
	r.mu.Lock()
	f := r.frame.Clone()
	r.mu.Unlock()

	pulses := panasonic.ModulateWith(r.timing, f)
	return Status{
		State:    panasonic.Decode(f),
		Frame:    f.String(),
		Checksum: f.Checksum(),
		Pulses:   len(pulses),
		Airtime:  panasonic.Airtime(pulses),
	}
}

// Frame 当前帧的副本
func (r *Remote) Frame() *panasonic.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame.Clone()
}

// Send 发射当前帧，阻塞至发射完成。发射一旦开始不可取消，ctx 仅在开始前生效。
func (r *Remote) Send(ctx context.Context) (Transmission, error) {
	if err := ctx.Err(); err != nil {
		return Transmission{}, err
	}
	r.mu.Lock()
	tx, err := r.sendLocked()
	r.mu.Unlock()
	r.record(ctx, tx, err)
	return tx, err
}

// SendState 写入状态并立即发射，两步在同一临界区内完成
func (r *Remote) SendState(ctx context.Context, s panasonic.State) (Transmission, error) {
	if err := ctx.Err(); err != nil {
		return Transmission{}, err
	}
	r.mu.Lock()
	if err := s.Apply(r.frame); err != nil {
		r.mu.Unlock()
		r.countCommand("apply", err)
		return Transmission{}, err
	}
	tx, err := r.sendLocked()
	r.mu.Unlock()
	r.countCommand("apply", nil)
	r.record(ctx, tx, err)
	return tx, err
}

// Close 释放发射器
func (r *Remote) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.emitter.Close()
}

func (r *Remote) sendLocked() (Transmission, error) {
	pulses := panasonic.ModulateWith(r.timing, r.frame)
	tx := Transmission{
		ID:      uuid.NewString(),
		At:      r.now(),
		State:   panasonic.Decode(r.frame),
		Frame:   r.frame.String(),
		Pulses:  len(pulses),
		Airtime: panasonic.Airtime(pulses),
	}

	start := time.Now()
	err := r.emitter.Emit(pulses)
	tx.Elapsed = time.Since(start)
	r.stats.LastAt = tx.At
	if err != nil {
		err = fmt.Errorf("emit via %s: %w", r.emitter.Name(), err)
		r.stats.Failed++
		r.stats.LastError = err.Error()
		return tx, err
	}
	r.stats.Sent++
	r.stats.LastError = ""
	return tx, nil
}

// Stats 发射统计快照
func (r *Remote) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.stats
	st.Emitter = r.emitter.Name()
	return st
}

func (r *Remote) record(ctx context.Context, tx Transmission, err error) {
	fields := []zap.Field{
		zap.String("id", tx.ID),
		zap.Bool("power", tx.State.Power),
		zap.Float64("temperature", tx.State.Celsius()),
		zap.Stringer("fan_mode", tx.State.FanMode),
		zap.Int("pulses", tx.Pulses),
		zap.Duration("elapsed", tx.Elapsed),
	}
	if err != nil {
		r.logger.Error("ir transmit failed", append(fields, zap.Error(err))...)
	} else {
		r.logger.Info("ir frame sent", fields...)
	}

	if r.metrics != nil {
		result := "ok"
		if err != nil {
			result = "error"
		}
		r.metrics.TransmitTotal.WithLabelValues(result).Inc()
		r.metrics.TransmitDuration.Observe(tx.Elapsed.Seconds())
		if err == nil {
			power := 0.0
			if tx.State.Power {
				power = 1
			}
			r.metrics.PowerState.Set(power)
			r.metrics.Temperature.Set(tx.State.Celsius())
		}
	}

	if r.history == nil {
		return
	}
	rec := storage.TransmissionRecord{
		ID:          tx.ID,
		At:          tx.At,
		Power:       tx.State.Power,
		Temperature: tx.State.Temperature,
		Half:        tx.State.Half,
		FanMode:     tx.State.FanMode.String(),
		Frame:       tx.Frame,
		Pulses:      tx.Pulses,
		Airtime:     tx.Airtime,
		Elapsed:     tx.Elapsed,
		Success:     err == nil,
	}
	if err != nil {
		rec.Error = err.Error()
	}
	// 记录失败不影响发射结果
	if appendErr := r.history.Append(context.WithoutCancel(ctx), rec); appendErr != nil {
		r.logger.Warn("append transmission record failed", zap.String("id", tx.ID), zap.Error(appendErr))
	}
}

func (r *Remote) countCommand(command string, err error) {
	if r.metrics == nil {
		return
	}
	result := "applied"
	if err != nil {
		result = "rejected"
	}
	r.metrics.CommandTotal.WithLabelValues(command, result).Inc()
}
