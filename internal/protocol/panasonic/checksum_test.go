package panasonic

import (
	"testing"
)

func TestCalculateChecksum(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected byte
	}{
		{
			name:     "空数据",
			data:     []byte{},
			expected: 0x00,
		},
		{
			name:     "溢出回绕",
			data:     []byte{0xAA, 0xAA},
			expected: 0x54, // 0x154 & 0xFF
		},
		{
			name: "模板主体",
			data: []byte{
				0x02, 0x20, 0xE0, 0x04, 0x00, 0x08, 0x32, 0x80, 0xAF,
				0x00, 0x00, 0x0E, 0xE0, 0x00, 0x00, 0x89, 0x00, 0x00,
			},
			expected: 0xE6, // 998 % 256
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateChecksum(tt.data)
			if result != tt.expected {
				t.Errorf("CalculateChecksum() = 0x%02X, expected 0x%02X", result, tt.expected)
			}
		})
	}
}

func TestVerifyChecksum(t *testing.T) {
	good := Template()
	if err := VerifyChecksum(good); err != nil {
		t.Fatalf("template checksum: %v", err)
	}

	bad := Template()
	bad[ChecksumIndex]++
	if err := VerifyChecksum(bad); err != ErrChecksumMismatch {
		t.Fatalf("VerifyChecksum() error = %v, expected %v", err, ErrChecksumMismatch)
	}

	// 头部不参与校验
	header := Template()
	header[0] = 0xFF
	if err := VerifyChecksum(header); err != nil {
		t.Fatalf("header change must not affect checksum: %v", err)
	}
}
