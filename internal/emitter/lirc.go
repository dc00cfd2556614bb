package emitter

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/taoyao-code/ir-remote/internal/protocol/panasonic"
)

// LIRC 字符设备接口常量（linux/lirc.h）
const (
	lircGetFeatures      = 0x80046900 // _IOR('i', 0x00, __u32)
	lircSetSendCarrier   = 0x40046913 // _IOW('i', 0x13, __u32)
	lircSetSendDutyCycle = 0x40046915 // _IOW('i', 0x15, __u32)

	lircCanSendPulse        = 0x00000002
	lircCanSetSendCarrier   = 0x00000100
	lircCanSetSendDutyCycle = 0x00000200

	// lircMaxValues 内核单次写入上限（LIRCBUF_SIZE）
	lircMaxValues = 1024
)

var (
	// ErrCannotSend 设备不支持 pulse 发送模式
	ErrCannotSend = errors.New("emitter: lirc device cannot send pulses")
	// ErrTrainTooLong 序列超出内核单次写入上限
	ErrTrainTooLong = errors.New("emitter: pulse train exceeds lirc buffer")
)

// lircTrain 将脉冲序列转换为 LIRC pulse 模式写入格式：
// 以 mark 开始、以 mark 结束的奇数个微秒值，相邻同电平区间合并，首部 space 与尾部 space 丢弃
// （尾部静默由发送间隔自然满足）。
func lircTrain(pulses []panasonic.Pulse) ([]uint32, error) {
	out := make([]uint32, 0, len(pulses))
	last := panasonic.LevelSpace
	for _, p := range pulses {
		if p.Duration <= 0 {
			continue
		}
		if len(out) == 0 && p.Level == panasonic.LevelSpace {
			continue
		}
		us := p.Duration.Microseconds()
		if us > math.MaxUint32 {
			return nil, fmt.Errorf("emitter: interval %v too long", p.Duration)
		}
		if len(out) > 0 && p.Level == last {
			out[len(out)-1] += uint32(us)
			continue
		}
		out = append(out, uint32(us))
		last = p.Level
	}
	if len(out) > 0 && last == panasonic.LevelSpace {
		out = out[:len(out)-1]
	}
	if len(out) > lircMaxValues {
		return nil, fmt.Errorf("%w: %d values", ErrTrainTooLong, len(out))
	}
	return out, nil
}

// lircBytes 按本机字节序编码
func lircBytes(train []uint32) []byte {
	buf := make([]byte, 0, len(train)*4)
	for _, v := range train {
		buf = binary.NativeEndian.AppendUint32(buf, v)
	}
	return buf
}
