package storage

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNoCredentials 尚未保存 WiFi 凭据
	ErrNoCredentials = errors.New("storage: no wifi credentials")
	// ErrInvalidCredentials 凭据不合法
	ErrInvalidCredentials = errors.New("storage: invalid wifi credentials")
)

// SSID/密码各占 32 字节存储槽（末字节为终止符）
const (
	MaxSSIDLen     = 31
	MaxPasswordLen = 31
)

// TransmissionRecord 一次红外发射的审计记录（不用于恢复帧状态）
type TransmissionRecord struct {
	ID          string        `json:"id"`
	At          time.Time     `json:"at"`
	Power       bool          `json:"power"`
	Temperature int           `json:"temperature"`
	Half        bool          `json:"half"`
	FanMode     string        `json:"fan_mode"`
	Frame       string        `json:"frame"` // 27 字节十六进制
	Pulses      int           `json:"pulses"`
	Airtime     time.Duration `json:"airtime"`
	Elapsed     time.Duration `json:"elapsed"`
	Success     bool          `json:"success"`
	Error       string        `json:"error,omitempty"`
}

// TransmissionLog 发射记录存储
type TransmissionLog interface {
	Append(ctx context.Context, rec TransmissionRecord) error
	// Recent 按时间倒序返回最多 limit 条
	Recent(ctx context.Context, limit int) ([]TransmissionRecord, error)
}

// Credentials WiFi 凭据
type Credentials struct {
	SSID     string `json:"ssid" yaml:"ssid"`
	Password string `json:"password" yaml:"password"`
}

// Validate 校验长度限制
func (c Credentials) Validate() error {
	if c.SSID == "" {
		return fmt.Errorf("%w: empty ssid", ErrInvalidCredentials)
	}
	if len(c.SSID) > MaxSSIDLen {
		return fmt.Errorf("%w: ssid longer than %d bytes", ErrInvalidCredentials, MaxSSIDLen)
	}
	if len(c.Password) > MaxPasswordLen {
		return fmt.Errorf("%w: password longer than %d bytes", ErrInvalidCredentials, MaxPasswordLen)
	}
	return nil
}

// CredentialStore WiFi 凭据存储
type CredentialStore interface {
	// Load 未保存时返回 ErrNoCredentials
	Load(ctx context.Context) (Credentials, error)
	Save(ctx context.Context, c Credentials) error
}
