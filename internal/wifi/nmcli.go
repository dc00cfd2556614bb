package wifi

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/taoyao-code/ir-remote/internal/storage"
)

const (
	nmcli         = "nmcli"
	portalConName = "irremote-portal"
)

// NMCLI 基于 nmcli 的 Connector
type NMCLI struct {
	runner  Runner
	iface   string
	timeout time.Duration
	poll    time.Duration
	logger  *zap.Logger
}

var _ Connector = (*NMCLI)(nil)

// NewNMCLI 创建；iface 为空时使用第一块 wifi 网卡，timeout<=0 时取 10s
func NewNMCLI(runner Runner, iface string, timeout time.Duration, logger *zap.Logger) *NMCLI {
	if runner == nil {
		runner = ExecRunner{}
	}
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NMCLI{runner: runner, iface: iface, timeout: timeout, poll: PollInterval, logger: logger}
}

// Connect 下发连接命令后每 250ms 查询一次状态，直到连上或超时
func (n *NMCLI) Connect(ctx context.Context, creds storage.Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	iface, err := n.interfaceName(ctx)
	if err != nil {
		return err
	}

	args := []string{"device", "wifi", "connect", creds.SSID}
	if creds.Password != "" {
		args = append(args, "password", creds.Password)
	}
	args = append(args, "ifname", iface)
	if _, err := n.runner.Run(ctx, nmcli, args...); err != nil {
		n.logger.Warn("wifi connect command failed", zap.String("ssid", creds.SSID), zap.Error(err))
	}

	ticker := time.NewTicker(n.poll)
	defer ticker.Stop()
	for {
		st, err := n.status(ctx, iface)
		if err == nil && st.Connected() {
			n.logger.Info("wifi connected", zap.String("ssid", creds.SSID), zap.String("interface", iface))
			return nil
		}
		select {
		case <-ctx.Done():
			n.logger.Warn("wifi connect timeout", zap.String("ssid", creds.SSID), zap.String("state", st.State))
			return fmt.Errorf("%w: %s (state %q)", ErrConnectTimeout, creds.SSID, st.State)
		case <-ticker.C:
		}
	}
}

// Status 查询网卡状态
func (n *NMCLI) Status(ctx context.Context) (Status, error) {
	iface, err := n.interfaceName(ctx)
	if err != nil {
		return Status{}, err
	}
	return n.status(ctx, iface)
}

func (n *NMCLI) status(ctx context.Context, iface string) (Status, error) {
	devices, err := n.devices(ctx)
	if err != nil {
		return Status{}, err
	}
	for _, d := range devices {
		if d.Interface == iface {
			return d, nil
		}
	}
	return Status{Interface: iface, State: "unavailable"}, nil
}

// interfaceName 配置的网卡名或第一块 wifi 网卡
func (n *NMCLI) interfaceName(ctx context.Context) (string, error) {
	if n.iface != "" {
		return n.iface, nil
	}
	out, err := n.runner.Run(ctx, nmcli, "-t", "-f", "DEVICE,TYPE", "device", "status")
	if err != nil {
		return "", err
	}
	for _, fields := range parseTerse(out) {
		if len(fields) >= 2 && fields[1] == "wifi" {
			return fields[0], nil
		}
	}
	return "", ErrNoInterface
}

func (n *NMCLI) devices(ctx context.Context) ([]Status, error) {
	out, err := n.runner.Run(ctx, nmcli, "-t", "-f", "DEVICE,STATE,CONNECTION", "device", "status")
	if err != nil {
		return nil, err
	}
	var list []Status
	for _, fields := range parseTerse(out) {
		if len(fields) < 3 {
			continue
		}
		list = append(list, Status{Interface: fields[0], State: fields[1], Connection: fields[2]})
	}
	return list, nil
}

// StartAccessPoint 创建开放热点，地址固定为 ip/24 并共享网络
func (n *NMCLI) StartAccessPoint(ctx context.Context, ssid, ip string) error {
	iface, err := n.interfaceName(ctx)
	if err != nil {
		return err
	}
	// 旧配置可能不存在
	_, _ = n.runner.Run(ctx, nmcli, "connection", "delete", portalConName)

	if _, err := n.runner.Run(ctx, nmcli, "connection", "add",
		"type", "wifi", "ifname", iface, "con-name", portalConName, "autoconnect", "no",
		"ssid", ssid, "802-11-wireless.mode", "ap",
		"ipv4.method", "shared", "ipv4.addresses", ip+"/24"); err != nil {
		return fmt.Errorf("create access point: %w", err)
	}
	if _, err := n.runner.Run(ctx, nmcli, "connection", "up", portalConName); err != nil {
		return fmt.Errorf("start access point: %w", err)
	}
	n.logger.Info("access point started", zap.String("ssid", ssid), zap.String("ip", ip), zap.String("interface", iface))
	return nil
}

// StopAccessPoint 关闭热点
func (n *NMCLI) StopAccessPoint(ctx context.Context) error {
	_, err := n.runner.Run(ctx, nmcli, "connection", "down", portalConName)
	return err
}

// Scan 扫描周边网络，按信号强度降序，同名 SSID 只保留最强的一个
func (n *NMCLI) Scan(ctx context.Context) ([]Network, error) {
	args := []string{"-t", "-f", "SSID,BSSID,SIGNAL", "device", "wifi", "list", "--rescan", "yes"}
	if n.iface != "" {
		args = append(args, "ifname", n.iface)
	}
	out, err := n.runner.Run(ctx, nmcli, args...)
	if err != nil {
		return nil, err
	}
	return parseNetworks(out), nil
}

func parseNetworks(out []byte) []Network {
	best := make(map[string]Network)
	for _, fields := range parseTerse(out) {
		if len(fields) < 3 || fields[0] == "" {
			continue
		}
		signal, _ := strconv.Atoi(fields[2])
		nw := Network{SSID: fields[0], BSSID: fields[1], Signal: signal}
		if prev, ok := best[nw.SSID]; !ok || nw.Signal > prev.Signal {
			best[nw.SSID] = nw
		}
	}
	list := make([]Network, 0, len(best))
	for _, nw := range best {
		list = append(list, nw)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Signal != list[j].Signal {
			return list[i].Signal > list[j].Signal
		}
		return list[i].SSID < list[j].SSID
	})
	return list
}

// parseTerse 解析 nmcli -t 输出：字段以 ':' 分隔，字段内的 ':' 与 '\' 以 '\' 转义
func parseTerse(out []byte) [][]string {
	var rows [][]string
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, splitTerse(line))
	}
	return rows
}

func splitTerse(line string) []string {
	var (
		fields []string
		cur    strings.Builder
	)
	for i := 0; i < len(line); i++ {
		switch c := line[i]; {
		case c == '\\' && i+1 < len(line):
			i++
			cur.WriteByte(line[i])
		case c == ':':
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(fields, cur.String())
}
