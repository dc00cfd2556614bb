package wifi

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taoyao-code/ir-remote/internal/storage"
)

// fakeRunner 按命令前缀返回预设输出
type fakeRunner struct {
	mu      sync.Mutex
	calls   []string
	replies func(cmd string) ([]byte, error)
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	cmd := name + " " + strings.Join(args, " ")
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	f.mu.Unlock()
	return f.replies(cmd)
}

func (f *fakeRunner) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func TestSplitTerse(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: `home:AA\:BB\:CC\:DD\:EE\:FF:72`, want: []string{"home", "AA:BB:CC:DD:EE:FF", "72"}},
		{in: `a\\b:x`, want: []string{`a\b`, "x"}},
		{in: `:11\:22:5`, want: []string{"", "11:22", "5"}},
		{in: `wlan0:wifi`, want: []string{"wlan0", "wifi"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitTerse(tt.in), tt.in)
	}
}

func TestParseNetworks(t *testing.T) {
	out := []byte(strings.Join([]string{
		`home:AA\:BB\:CC\:DD\:EE\:01:40`,
		`home:AA\:BB\:CC\:DD\:EE\:02:80`,
		`:AA\:BB\:CC\:DD\:EE\:03:90`,
		`cafe\: free:AA\:BB\:CC\:DD\:EE\:04:55`,
		``,
	}, "\n"))

	got := parseNetworks(out)
	require.Len(t, got, 2)
	assert.Equal(t, Network{SSID: "home", BSSID: "AA:BB:CC:DD:EE:02", Signal: 80}, got[0])
	assert.Equal(t, "cafe: free", got[1].SSID)
}

func TestNMCLI_Connect(t *testing.T) {
	var polls int
	var mu sync.Mutex
	runner := &fakeRunner{replies: func(cmd string) ([]byte, error) {
		if strings.Contains(cmd, "DEVICE,STATE,CONNECTION") {
			mu.Lock()
			defer mu.Unlock()
			polls++
			if polls < 3 {
				return []byte("wlan0:connecting:home\n"), nil
			}
			return []byte("eth0:unavailable:\nwlan0:connected:home\n"), nil
		}
		return nil, nil
	}}
	n := NewNMCLI(runner, "wlan0", time.Second, nil)
	n.poll = time.Millisecond

	err := n.Connect(context.Background(), storage.Credentials{SSID: "home", Password: "secret"})
	require.NoError(t, err)

	calls := runner.Calls()
	assert.Equal(t, "nmcli device wifi connect home password secret ifname wlan0", calls[0])
	assert.GreaterOrEqual(t, polls, 3)
}

func TestNMCLI_ConnectTimeout(t *testing.T) {
	runner := &fakeRunner{replies: func(cmd string) ([]byte, error) {
		if strings.Contains(cmd, "wifi connect") {
			return nil, errors.New("secrets were required")
		}
		return []byte("wlan0:disconnected:\n"), nil
	}}
	n := NewNMCLI(runner, "wlan0", 20*time.Millisecond, nil)
	n.poll = time.Millisecond

	err := n.Connect(context.Background(), storage.Credentials{SSID: "home"})
	assert.ErrorIs(t, err, ErrConnectTimeout)
	assert.Contains(t, err.Error(), "disconnected")
}

func TestNMCLI_ConnectRejectsInvalid(t *testing.T) {
	n := NewNMCLI(&fakeRunner{replies: func(string) ([]byte, error) { return nil, nil }}, "wlan0", time.Second, nil)
	assert.ErrorIs(t, n.Connect(context.Background(), storage.Credentials{}), storage.ErrInvalidCredentials)
}

func TestNMCLI_InterfaceDiscovery(t *testing.T) {
	runner := &fakeRunner{replies: func(cmd string) ([]byte, error) {
		switch {
		case strings.Contains(cmd, "DEVICE,TYPE"):
			return []byte("eth0:ethernet\nwlp2s0:wifi\n"), nil
		case strings.Contains(cmd, "DEVICE,STATE,CONNECTION"):
			return []byte("eth0:connected:wired\nwlp2s0:disconnected:\n"), nil
		}
		return nil, nil
	}}
	n := NewNMCLI(runner, "", 0, nil)

	st, err := n.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Status{Interface: "wlp2s0", State: "disconnected"}, st)
	assert.False(t, st.Connected())
}

func TestNMCLI_NoInterface(t *testing.T) {
	runner := &fakeRunner{replies: func(string) ([]byte, error) { return []byte("eth0:ethernet\n"), nil }}
	_, err := NewNMCLI(runner, "", 0, nil).Status(context.Background())
	assert.ErrorIs(t, err, ErrNoInterface)
}

func TestNMCLI_StartAccessPoint(t *testing.T) {
	runner := &fakeRunner{replies: func(cmd string) ([]byte, error) {
		if strings.Contains(cmd, "connection delete") {
			return nil, errors.New("unknown connection")
		}
		return nil, nil
	}}
	n := NewNMCLI(runner, "wlan0", 0, nil)

	require.NoError(t, n.StartAccessPoint(context.Background(), "IR Remote", "8.8.8.8"))
	calls := runner.Calls()
	require.Len(t, calls, 3)
	assert.Contains(t, calls[1], "ssid IR Remote")
	assert.Contains(t, calls[1], "ipv4.addresses 8.8.8.8/24")
	assert.Equal(t, "nmcli connection up irremote-portal", calls[2])
}

func TestNMCLI_Scan(t *testing.T) {
	runner := &fakeRunner{replies: func(string) ([]byte, error) {
		return []byte(`office:11\:22\:33\:44\:55\:66:61` + "\n"), nil
	}}
	nets, err := NewNMCLI(runner, "wlan0", 0, nil).Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, nets, 1)
	assert.Equal(t, "11:22:33:44:55:66", nets[0].BSSID)
	assert.Contains(t, runner.Calls()[0], "--rescan yes ifname wlan0")
}
