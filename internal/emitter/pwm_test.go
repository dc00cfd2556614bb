package emitter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestPWMCarrierStartStop(t *testing.T) {
	root := t.TempDir()
	ch := filepath.Join(root, "pwmchip0", "pwm1")
	require.NoError(t, os.MkdirAll(ch, 0o755))

	c := NewPWMCarrier(root, 0, 1)
	require.NoError(t, c.Start(38000, 50))

	assert.Equal(t, "26315", readFile(t, filepath.Join(ch, "period")))
	assert.Equal(t, "13157", readFile(t, filepath.Join(ch, "duty_cycle")))
	assert.Equal(t, "1", readFile(t, filepath.Join(ch, "enable")))

	require.NoError(t, c.Close())
	assert.Equal(t, "0", readFile(t, filepath.Join(ch, "enable")))
}

func TestPWMCarrierExportTimeout(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pwmchip2"), 0o755))

	c := NewPWMCarrier(root, 2, 0)
	err := c.Start(38000, 33)
	require.Error(t, err)
	assert.Equal(t, "0", readFile(t, filepath.Join(root, "pwmchip2", "export")))
}

func TestPWMCarrierInvalidFrequency(t *testing.T) {
	assert.Error(t, NewPWMCarrier("", 0, 0).Start(0, 50))
}
