package panasonic

import (
	"encoding/hex"
	"errors"
	"fmt"
)

var (
	// ErrTemperatureOutOfRange 温度超出 [16, 30]
	ErrTemperatureOutOfRange = errors.New("panasonic: temperature out of range")
	// ErrBitOutOfRange 位地址越界（byte >= 27 或 bit >= 8）
	ErrBitOutOfRange = errors.New("panasonic: bit address out of range")
	// ErrHeaderReadOnly 头部子帧只读
	ErrHeaderReadOnly = errors.New("panasonic: header subframe is read-only")
)

// Frame 空调命令帧
//
// 所有写操作都在返回前重算校验和，因此任何时刻观察到的帧都满足
// data[26] == sum(data[8:26]) mod 256。头部字节构造后不再改变。
// Frame 本身不加锁，并发访问由持有者（remote.Remote）串行化。
type Frame struct {
	data [FrameSize]byte
}

// NewFrame 以模板构造一帧
func NewFrame() *Frame {
	return &Frame{data: template}
}

// Bit 读取指定位
func (f *Frame) Bit(byteIdx, bitIdx int) (bool, error) {
	if !inRange(byteIdx, bitIdx) {
		return false, ErrBitOutOfRange
	}
	return f.data[byteIdx]&(1<<bitIdx) != 0, nil
}

func (f *Frame) setBit(byteIdx, bitIdx int) error {
	if err := f.checkWritable(byteIdx, bitIdx); err != nil {
		return err
	}
	f.data[byteIdx] |= 1 << bitIdx
	return nil
}

func (f *Frame) clearBit(byteIdx, bitIdx int) error {
	if err := f.checkWritable(byteIdx, bitIdx); err != nil {
		return err
	}
	f.data[byteIdx] &^= 1 << bitIdx
	return nil
}

func (f *Frame) checkWritable(byteIdx, bitIdx int) error {
	if !inRange(byteIdx, bitIdx) {
		return ErrBitOutOfRange
	}
	if byteIdx < BodyStart {
		return ErrHeaderReadOnly
	}
	return nil
}

func inRange(byteIdx, bitIdx int) bool {
	return byteIdx >= 0 && byteIdx < FrameSize && bitIdx >= 0 && bitIdx < 8
}

// SetPower 开关机。关机时同时将风量模式复位为 AUTO（与原装遥控器行为一致）。
func (f *Frame) SetPower(on bool) {
	if on {
		_ = f.setBit(powerByte, powerBit)
	} else {
		f.data[fanByte], _ = encodeFanBits(f.data[fanByte], FanModeAuto)
		_ = f.clearBit(powerByte, powerBit)
	}
	f.updateChecksum()
}

// SetTemperature 设置温度与半度标志。
// 超出 [16, 30] 时返回 ErrTemperatureOutOfRange，帧保持不变；30℃ 时强制 half=false。
func (f *Frame) SetTemperature(value int, half bool) error {
	if value < MinTemperature || value > MaxTemperature {
		return fmt.Errorf("%w: %d", ErrTemperatureOutOfRange, value)
	}
	b := f.data[tempByte] & tempKeepMsk
	b |= byte(value) << tempShift
	if half && value < MaxTemperature {
		b |= 1 << halfBit
	} else {
		b &^= 1 << halfBit
	}
	f.data[tempByte] = b
	f.updateChecksum()
	return nil
}

// SetFanMode 设置风量模式：先清除两个模式位，再置位目标模式（AUTO 不置位）
func (f *Frame) SetFanMode(m FanMode) error {
	b, err := encodeFanBits(f.data[fanByte], m)
	if err != nil {
		return err
	}
	f.data[fanByte] = b
	f.updateChecksum()
	return nil
}

func (f *Frame) updateChecksum() {
	f.data[ChecksumIndex] = CalculateChecksum(f.data[BodyStart:ChecksumIndex])
}

// Power 是否开机
func (f *Frame) Power() bool {
	return f.data[powerByte]&(1<<powerBit) != 0
}

// Temperature 返回整数温度与半度标志
func (f *Frame) Temperature() (int, bool) {
	b := f.data[tempByte]
	return int(b&^tempKeepMsk) >> tempShift, b&(1<<halfBit) != 0
}

// FanMode 返回风量模式
func (f *Frame) FanMode() FanMode {
	// 写入路径只经过 encodeFanBits，非法组合不可达
	m, _ := decodeFanBits(f.data[fanByte])
	return m
}

// Checksum 返回校验和字节
func (f *Frame) Checksum() byte {
	return f.data[ChecksumIndex]
}

// Verify 校验帧一致性
func (f *Frame) Verify() error {
	if err := VerifyChecksum(f.data); err != nil {
		return err
	}
	if _, err := decodeFanBits(f.data[fanByte]); err != nil {
		return err
	}
	if t, _ := f.Temperature(); t < MinTemperature || t > MaxTemperature {
		return fmt.Errorf("%w: %d", ErrTemperatureOutOfRange, t)
	}
	return nil
}

// Bytes 返回整帧副本
func (f *Frame) Bytes() [FrameSize]byte {
	return f.data
}

// Header 返回头部子帧副本
func (f *Frame) Header() []byte {
	return append([]byte(nil), f.data[HeaderStart:HeaderEnd]...)
}

// Body 返回主体子帧副本（含校验和）
func (f *Frame) Body() []byte {
	return append([]byte(nil), f.data[BodyStart:BodyEnd]...)
}

// Clone 深拷贝
func (f *Frame) Clone() *Frame {
	c := *f
	return &c
}

// String 十六进制表示
func (f *Frame) String() string {
	return hex.EncodeToString(f.data[:])
}
