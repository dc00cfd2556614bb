package remote

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/taoyao-code/ir-remote/internal/protocol/panasonic"
)

var (
	// ErrBadTemperature 温度字符串无法解析或越界
	ErrBadTemperature = errors.New("bad temperature value")
	// ErrBadOnOff 开关字符串不是 ON/OFF
	ErrBadOnOff = errors.New("bad on/off value")
)

// Controller 暂存 HTTP 命令设定的目标状态，Commit 时一次写入帧并发射。
type Controller struct {
	remote *Remote

	mu      sync.Mutex
	desired panasonic.State
}

// InitialDesired 启动时的暂存状态：关机、16℃、AUTO
func InitialDesired() panasonic.State {
	return panasonic.State{
		Power:       false,
		Temperature: panasonic.MinTemperature,
		FanMode:     panasonic.FanModeAuto,
	}
}

// NewController 创建控制器
func NewController(r *Remote) *Controller {
	return &Controller{remote: r, desired: InitialDesired()}
}

// Remote 底层遥控器
func (c *Controller) Remote() *Remote { return c.remote }

// Desired 当前暂存状态
func (c *Controller) Desired() panasonic.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.desired
}

// Stage 整体替换暂存状态
func (c *Controller) Stage(s panasonic.State) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.Temperature == panasonic.MaxTemperature && s.Half {
		return fmt.Errorf("%w: %d.5", panasonic.ErrTemperatureOutOfRange, s.Temperature)
	}
	c.mu.Lock()
	c.desired = s
	c.mu.Unlock()
	return nil
}

// StageTemperature 暂存温度
func (c *Controller) StageTemperature(value int, half bool) error {
	if value < panasonic.MinTemperature || value > panasonic.MaxTemperature ||
		(value == panasonic.MaxTemperature && half) {
		return ErrBadTemperature
	}
	c.mu.Lock()
	c.desired.Temperature = value
	c.desired.Half = half
	c.mu.Unlock()
	return nil
}

// StageFanMode 暂存风量模式
func (c *Controller) StageFanMode(m panasonic.FanMode) error {
	if !m.Valid() {
		return panasonic.ErrInvalidFanMode
	}
	c.mu.Lock()
	c.desired.FanMode = m
	c.mu.Unlock()
	return nil
}

// StagePower 暂存开关机
func (c *Controller) StagePower(on bool) {
	c.mu.Lock()
	c.desired.Power = on
	c.mu.Unlock()
}

// Commit 按风量模式、温度、开关机顺序写入帧并发射
func (c *Controller) Commit(ctx context.Context) (Transmission, error) {
	return c.remote.SendState(ctx, c.Desired())
}

// ParseTemperature 解析 "24"、"24.5" 形式的温度。
// 小数部分非零即视为半度；超出 16..30 或 30.5 返回 ErrBadTemperature。
func ParseTemperature(s string) (int, bool, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false, ErrBadTemperature
	}
	whole := math.Trunc(v)
	half := v-whole > 0
	t := int(whole)
	if t < panasonic.MinTemperature || t > panasonic.MaxTemperature ||
		(t == panasonic.MaxTemperature && half) {
		return 0, false, ErrBadTemperature
	}
	return t, half, nil
}

// FormatTemperature 一位小数，如 "24.5"
func FormatTemperature(s panasonic.State) string {
	return strconv.FormatFloat(s.Celsius(), 'f', 1, 64)
}

// ParseOnOff 解析 ON/OFF（忽略大小写）
func ParseOnOff(s string) (bool, error) {
	switch {
	case strings.EqualFold(s, "ON"):
		return true, nil
	case strings.EqualFold(s, "OFF"):
		return false, nil
	}
	return false, ErrBadOnOff
}

// FormatOnOff 输出 ON/OFF
func FormatOnOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}
