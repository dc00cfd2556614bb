package panasonic

import "time"

// 帧结构
const (
	FrameSize = 27 // 整帧字节数（216 bit）

	HeaderStart = 0 // 头部子帧：字节 0-7，固定模板
	HeaderEnd   = 8
	BodyStart   = 8 // 主体子帧：字节 8-26
	BodyEnd     = FrameSize

	ChecksumIndex = FrameSize - 1 // 校验和字节
)

// 字段位置（bit 0 为最低位，先发送）
const (
	powerByte = 13
	powerBit  = 0

	tempByte    = 14
	halfBit     = 0
	tempShift   = 1
	tempKeepMsk = 0b11000001 // 温度字段外的位保持不变

	fanByte         = 21
	fanPowerfullBit = 0
	fanQuietBit     = 5
)

// 温度范围（摄氏度）
const (
	MinTemperature = 16
	MaxTemperature = 30
)

// Timing 脉冲时序（微秒级，硬件兼容要求逐值复现）
type Timing struct {
	StartMark  time.Duration
	StartSpace time.Duration
	BitMark    time.Duration
	Space0     time.Duration
	Space1     time.Duration
	StopMark   time.Duration
	StopSpace  time.Duration
}

// DefaultTiming 原装遥控器时序
var DefaultTiming = Timing{
	StartMark:  3500 * time.Microsecond,
	StartSpace: 1700 * time.Microsecond,
	BitMark:    430 * time.Microsecond,
	Space0:     440 * time.Microsecond,
	Space1:     1300 * time.Microsecond,
	StopMark:   430 * time.Microsecond,
	StopSpace:  10000 * time.Microsecond,
}

// CarrierFrequency 载波频率（Hz），接收头据此区分信号与环境光
const CarrierFrequency = 38000

// DefaultDutyCycle 载波占空比（百分比）
const DefaultDutyCycle = 50

// template 帧模板：头部为厂商/设备标识，主体为关机、25℃、AUTO 的出厂状态。
// 必须按二进制常量原样使用，不能推导生成。
var template = [FrameSize]byte{
	// 头部
	0b00000010, 0b00100000, 0b11100000, 0b00000100,
	0b00000000, 0b00000000, 0b00000000, 0b00000110,
	// 主体
	0b00000010, 0b00100000, 0b11100000, 0b00000100,
	0b00000000, 0b00001000, 0b00110010, 0b10000000,
	0b10101111, 0b00000000, 0b00000000, 0b00001110,
	0b11100000, 0b00000000, 0b00000000, 0b10001001,
	0b00000000, 0b00000000,
	// 校验和
	0b11100110,
}

// Template 返回帧模板副本
func Template() [FrameSize]byte {
	return template
}
