// Package wifi 通过 NetworkManager (nmcli) 完成联网、扫描与配网热点。
package wifi

import (
	"context"
	"errors"
	"time"

	"github.com/taoyao-code/ir-remote/internal/storage"
)

var (
	// ErrConnectTimeout 超时仍未连上
	ErrConnectTimeout = errors.New("wifi: connect timeout")
	// ErrNoInterface 找不到无线网卡
	ErrNoInterface = errors.New("wifi: no wireless interface")
)

// 连接等待参数
const (
	DefaultConnectTimeout = 10 * time.Second
	PollInterval          = 250 * time.Millisecond
)

// Network 扫描到的网络
type Network struct {
	SSID   string `json:"ssid"`
	BSSID  string `json:"bssid"`
	Signal int    `json:"signal"` // 0-100
}

// Status 网卡连接状态
type Status struct {
	Interface  string `json:"interface"`
	State      string `json:"state"`
	Connection string `json:"connection,omitempty"`
}

// Connected 是否已连接
func (s Status) Connected() bool { return s.State == "connected" }

// Connector 联网能力
type Connector interface {
	// Connect 连接并等待至连上或超时
	Connect(ctx context.Context, creds storage.Credentials) error
	Status(ctx context.Context) (Status, error)
	// StartAccessPoint 开启无密码热点供配网
	StartAccessPoint(ctx context.Context, ssid, ip string) error
	StopAccessPoint(ctx context.Context) error
	Scan(ctx context.Context) ([]Network, error)
}
