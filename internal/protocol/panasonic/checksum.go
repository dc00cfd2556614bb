package panasonic

import "errors"

var (
	// ErrChecksumMismatch 校验和不一致
	ErrChecksumMismatch = errors.New("panasonic: checksum mismatch")
)

// CalculateChecksum 计算主体校验和
// 算法：对字节 8-25 逐字节累加，byte 溢出自动丢弃高位（即模 256）
func CalculateChecksum(body []byte) byte {
	var sum byte
	for _, b := range body {
		sum += b
	}
	return sum
}

// VerifyChecksum 校验整帧的校验和字节
func VerifyChecksum(frame [FrameSize]byte) error {
	if frame[ChecksumIndex] != CalculateChecksum(frame[BodyStart:ChecksumIndex]) {
		return ErrChecksumMismatch
	}
	return nil
}
