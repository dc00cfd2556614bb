//go:build linux

package emitter

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/taoyao-code/ir-remote/internal/protocol/panasonic"
)

// LIRCEmitter 通过 /dev/lircN 发送，内核负责载波与时序
type LIRCEmitter struct {
	mu     sync.Mutex
	file   *os.File
	closed bool
}

// OpenLIRC 打开 LIRC 发送设备并配置载波频率与占空比
func OpenLIRC(device string, carrierHz, dutyCycle int) (*LIRCEmitter, error) {
	f, err := os.OpenFile(device, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("open lirc device %s: %w", device, err)
	}
	fd := int(f.Fd())

	features, err := unix.IoctlGetUint32(fd, lircGetFeatures)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("lirc get features: %w", err)
	}
	if features&lircCanSendPulse == 0 {
		_ = f.Close()
		return nil, ErrCannotSend
	}
	if carrierHz > 0 && features&lircCanSetSendCarrier != 0 {
		if err := unix.IoctlSetPointerInt(fd, lircSetSendCarrier, carrierHz); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("lirc set carrier %d: %w", carrierHz, err)
		}
	}
	if dutyCycle > 0 && dutyCycle < 100 && features&lircCanSetSendDutyCycle != 0 {
		if err := unix.IoctlSetPointerInt(fd, lircSetSendDutyCycle, dutyCycle); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("lirc set duty cycle %d: %w", dutyCycle, err)
		}
	}
	return &LIRCEmitter{file: f}, nil
}

// Name 驱动名
func (e *LIRCEmitter) Name() string { return DriverLIRC }

// Emit 一次 write 提交整段序列，write 返回时内核已发送完毕
func (e *LIRCEmitter) Emit(pulses []panasonic.Pulse) error {
	train, err := lircTrain(pulses)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if len(train) == 0 {
		return nil
	}
	if _, err := e.file.Write(lircBytes(train)); err != nil {
		return fmt.Errorf("lirc write: %w", err)
	}
	return nil
}

// Close 关闭设备
func (e *LIRCEmitter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	return e.file.Close()
}
