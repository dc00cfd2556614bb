package panasonic

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFanMode 未知的风量模式
	ErrInvalidFanMode = errors.New("panasonic: invalid fan mode")
	// ErrInvalidFanBits 两个模式位同时置位（协议非法状态）
	ErrInvalidFanBits = errors.New("panasonic: both fan mode bits set")
)

// FanMode 风量（stream）模式，封闭集合 {AUTO, POWERFULL, QUIET}
type FanMode uint8

const (
	FanModeAuto FanMode = iota
	FanModePowerfull
	FanModeQuiet
)

// String 返回模式名称（与文本接口一致）
func (m FanMode) String() string {
	switch m {
	case FanModeAuto:
		return "AUTO"
	case FanModePowerfull:
		return "POWERFULL"
	case FanModeQuiet:
		return "QUIET"
	default:
		return fmt.Sprintf("FanMode(%d)", uint8(m))
	}
}

// Valid 是否属于封闭集合
func (m FanMode) Valid() bool {
	return m <= FanModeQuiet
}

// MarshalText 实现 encoding.TextMarshaler
func (m FanMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, ErrInvalidFanMode
	}
	return []byte(m.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (m *FanMode) UnmarshalText(text []byte) error {
	v, err := ParseFanMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseFanMode 解析模式名称，大小写不敏感
func ParseFanMode(s string) (FanMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AUTO":
		return FanModeAuto, nil
	case "POWERFULL":
		return FanModePowerfull, nil
	case "QUIET":
		return FanModeQuiet, nil
	}
	return FanModeAuto, fmt.Errorf("%w: %q", ErrInvalidFanMode, s)
}

// encodeFanBits 将模式写入字节 21 的 bit0/bit5，其余位保持不变。
// 模式与两位线上表示的转换只在 encodeFanBits/decodeFanBits 中完成。
func encodeFanBits(b byte, m FanMode) (byte, error) {
	if !m.Valid() {
		return b, ErrInvalidFanMode
	}
	b &^= 1<<fanPowerfullBit | 1<<fanQuietBit
	switch m {
	case FanModePowerfull:
		b |= 1 << fanPowerfullBit
	case FanModeQuiet:
		b |= 1 << fanQuietBit
	}
	return b, nil
}

// decodeFanBits 从字节 21 读取模式
func decodeFanBits(b byte) (FanMode, error) {
	powerfull := b&(1<<fanPowerfullBit) != 0
	quiet := b&(1<<fanQuietBit) != 0
	switch {
	case powerfull && quiet:
		return FanModeAuto, ErrInvalidFanBits
	case powerfull:
		return FanModePowerfull, nil
	case quiet:
		return FanModeQuiet, nil
	}
	return FanModeAuto, nil
}
