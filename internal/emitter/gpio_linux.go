//go:build linux

package emitter

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

const gpioConsumer = "ir-remote"

// OpenGPIO 通过 GPIO 字符设备申请一路输出线（初始低电平）
func OpenGPIO(chip string, offset int, activeLow bool) (*gpiocdev.Line, error) {
	opts := []gpiocdev.LineReqOption{
		gpiocdev.AsOutput(0),
		gpiocdev.WithConsumer(gpioConsumer),
	}
	if activeLow {
		opts = append(opts, gpiocdev.AsActiveLow)
	}
	l, err := gpiocdev.RequestLine(chip, offset, opts...)
	if err != nil {
		return nil, fmt.Errorf("request gpio %s:%d: %w", chip, offset, err)
	}
	return l, nil
}
