package emitter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// PWMCarrier 通过 sysfs 硬件 PWM 通道产生 38kHz 载波，GPIO 只输出包络
type PWMCarrier struct {
	root    string
	chip    int
	channel int
}

// NewPWMCarrier root 通常为 /sys/class/pwm
func NewPWMCarrier(root string, chip, channel int) *PWMCarrier {
	if root == "" {
		root = "/sys/class/pwm"
	}
	return &PWMCarrier{root: root, chip: chip, channel: channel}
}

func (c *PWMCarrier) chipDir() string {
	return filepath.Join(c.root, fmt.Sprintf("pwmchip%d", c.chip))
}

func (c *PWMCarrier) channelDir() string {
	return filepath.Join(c.chipDir(), fmt.Sprintf("pwm%d", c.channel))
}

// Start 导出通道并设置周期/占空比后使能
func (c *PWMCarrier) Start(freqHz, dutyPercent int) error {
	if freqHz <= 0 {
		return fmt.Errorf("pwm: invalid carrier frequency %d", freqHz)
	}
	if dutyPercent <= 0 || dutyPercent >= 100 {
		dutyPercent = 50
	}

	if _, err := os.Stat(c.channelDir()); errors.Is(err, os.ErrNotExist) {
		if err := write(filepath.Join(c.chipDir(), "export"), strconv.Itoa(c.channel)); err != nil {
			return err
		}
		// udev 需要时间为新节点设置权限
		if err := waitFor(filepath.Join(c.channelDir(), "period"), time.Second); err != nil {
			return err
		}
	}

	period := int64(time.Second) / int64(freqHz)
	duty := period * int64(dutyPercent) / 100

	// 先清零占空比，避免新周期小于旧占空比时写入失败
	_ = write(filepath.Join(c.channelDir(), "duty_cycle"), "0")
	steps := []struct{ file, value string }{
		{"period", strconv.FormatInt(period, 10)},
		{"duty_cycle", strconv.FormatInt(duty, 10)},
		{"enable", "1"},
	}
	for _, s := range steps {
		if err := write(filepath.Join(c.channelDir(), s.file), s.value); err != nil {
			return err
		}
	}
	return nil
}

// Stop 关闭载波
func (c *PWMCarrier) Stop() error {
	return write(filepath.Join(c.channelDir(), "enable"), "0")
}

// Close 实现 io.Closer
func (c *PWMCarrier) Close() error { return c.Stop() }

func write(path, value string) error {
	if err := os.WriteFile(path, []byte(value), 0o644); err != nil {
		return fmt.Errorf("pwm: write %s: %w", path, err)
	}
	return nil
}

func waitFor(path string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("pwm: %s did not appear", path)
		}
		time.Sleep(20 * time.Millisecond)
	}
}
