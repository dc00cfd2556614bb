// Package emitter 将调制后的脉冲序列输出到红外发射硬件。
//
// 时序说明：协议依赖 430us 级的 mark/space 精度。LIRC 驱动由内核生成脉冲与
// 38kHz 载波，不受用户态调度影响，是推荐方式；GPIO 驱动在锁定 OS 线程的
// goroutine 中忙等输出包络，GC 停顿或内核抢占仍可能拉长个别区间，只适合
// 接收端容差较大的场景。
package emitter

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	cfgpkg "github.com/taoyao-code/ir-remote/internal/config"
	"github.com/taoyao-code/ir-remote/internal/protocol/panasonic"
)

var (
	// ErrUnsupported 当前平台不支持该驱动
	ErrUnsupported = errors.New("emitter: driver not supported on this platform")
	// ErrUnknownDriver 未知驱动名
	ErrUnknownDriver = errors.New("emitter: unknown driver")
	// ErrClosed 发射器已关闭
	ErrClosed = errors.New("emitter: closed")
)

// 驱动名
const (
	DriverLIRC   = "lirc"
	DriverGPIO   = "gpio"
	DriverDryRun = "dryrun"
)

// Emitter 红外发射器：按顺序阻塞输出整段脉冲序列，一旦开始不可中断
type Emitter interface {
	Name() string
	Emit(pulses []panasonic.Pulse) error
	Close() error
}

// Open 按配置创建发射器
func Open(cfg cfgpkg.EmitterConfig, logger *zap.Logger) (Emitter, error) {
	switch cfg.Driver {
	case DriverLIRC:
		e, err := OpenLIRC(cfg.LIRC.Device, cfg.CarrierHz, cfg.DutyCycle)
		if err != nil {
			return nil, err
		}
		return e, nil
	case DriverGPIO:
		var carrier io.Closer
		if cfg.PWM.Enabled {
			pwm := NewPWMCarrier(cfg.PWM.SysfsRoot, cfg.PWM.Chip, cfg.PWM.Channel)
			if err := pwm.Start(cfg.CarrierHz, cfg.DutyCycle); err != nil {
				return nil, fmt.Errorf("start pwm carrier: %w", err)
			}
			carrier = pwm
		}
		line, err := OpenGPIO(cfg.GPIO.Chip, cfg.GPIO.Line, cfg.GPIO.ActiveLow)
		if err != nil {
			if carrier != nil {
				_ = carrier.Close()
			}
			return nil, err
		}
		return NewLinePlayer(DriverGPIO, line, BusyWait{}, carrier), nil
	case DriverDryRun, "":
		return NewDryRun(logger), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
}
