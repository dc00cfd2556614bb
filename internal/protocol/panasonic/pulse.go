package panasonic

import (
	"fmt"
	"time"
)

// Level 输出电平
type Level uint8

const (
	LevelSpace Level = iota // 熄灭（space）
	LevelMark               // 点亮/载波（mark）
)

func (l Level) String() string {
	if l == LevelMark {
		return "mark"
	}
	return "space"
}

// Pulse 一个定长电平区间
type Pulse struct {
	Level    Level
	Duration time.Duration
}

func (p Pulse) String() string {
	return fmt.Sprintf("%s:%d", p.Level, p.Duration.Microseconds())
}

// PulseCount 一帧调制后的区间总数：每个子帧为起始位 2 + 每 bit 2 + 停止位 2
const PulseCount = (2 + (HeaderEnd-HeaderStart)*16 + 2) + (2 + (BodyEnd-BodyStart)*16 + 2)

// Modulate 以默认时序调制整帧
func Modulate(f *Frame) []Pulse {
	return ModulateWith(DefaultTiming, f)
}

// ModulateWith 将帧调制为脉冲距离编码序列：
// 子帧 A（头部）与子帧 B（主体）各自带起始位和停止位；每字节从最低位开始，
// mark 后接 space0（bit=0）或 space1（bit=1）。
func ModulateWith(t Timing, f *Frame) []Pulse {
	data := f.Bytes()
	out := make([]Pulse, 0, PulseCount)
	out = appendSubframe(out, t, data[HeaderStart:HeaderEnd])
	out = appendSubframe(out, t, data[BodyStart:BodyEnd])
	return out
}

func appendSubframe(out []Pulse, t Timing, sub []byte) []Pulse {
	out = append(out,
		Pulse{LevelMark, t.StartMark},
		Pulse{LevelSpace, t.StartSpace},
	)
	for _, b := range sub {
		for bit := 0; bit < 8; bit++ {
			space := t.Space0
			if b&(1<<bit) != 0 {
				space = t.Space1
			}
			out = append(out, Pulse{LevelMark, t.BitMark}, Pulse{LevelSpace, space})
		}
	}
	return append(out,
		Pulse{LevelMark, t.StopMark},
		Pulse{LevelSpace, t.StopSpace},
	)
}

// Airtime 序列总时长
func Airtime(pulses []Pulse) time.Duration {
	var d time.Duration
	for _, p := range pulses {
		d += p.Duration
	}
	return d
}
