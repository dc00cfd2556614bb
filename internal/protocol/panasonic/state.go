package panasonic

import "fmt"

// State 空调命令的逻辑状态
type State struct {
	Power       bool    `json:"power" yaml:"power"`
	Temperature int     `json:"temperature" yaml:"temperature"`
	Half        bool    `json:"half" yaml:"half"`
	FanMode     FanMode `json:"fan_mode" yaml:"fan_mode"`
}

// DefaultState 模板帧对应的状态
func DefaultState() State {
	return Decode(NewFrame())
}

// Celsius 温度（含半度）
func (s State) Celsius() float64 {
	t := float64(s.Temperature)
	if s.Half {
		t += 0.5
	}
	return t
}

// Validate 校验取值范围
func (s State) Validate() error {
	if s.Temperature < MinTemperature || s.Temperature > MaxTemperature {
		return fmt.Errorf("%w: %d", ErrTemperatureOutOfRange, s.Temperature)
	}
	if !s.FanMode.Valid() {
		return ErrInvalidFanMode
	}
	return nil
}

// Apply 按 /send 的顺序写入帧：先风量模式，再温度，最后开关机。
// 任一字段非法时返回错误且帧保持不变。
func (s State) Apply(f *Frame) error {
	if err := s.Validate(); err != nil {
		return err
	}
	_ = f.SetFanMode(s.FanMode)
	_ = f.SetTemperature(s.Temperature, s.Half)
	f.SetPower(s.Power)
	return nil
}

// Encode 纯函数：状态 -> 帧
func Encode(s State) (*Frame, error) {
	f := NewFrame()
	if err := s.Apply(f); err != nil {
		return nil, err
	}
	return f, nil
}

// Decode 帧 -> 状态
func Decode(f *Frame) State {
	t, half := f.Temperature()
	return State{
		Power:       f.Power(),
		Temperature: t,
		Half:        half,
		FanMode:     f.FanMode(),
	}
}
