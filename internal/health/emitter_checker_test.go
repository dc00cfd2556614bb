package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/taoyao-code/ir-remote/internal/remote"
)

type staticStats remote.Stats

func (s staticStats) Stats() remote.Stats { return remote.Stats(s) }

func TestEmitterChecker(t *testing.T) {
	tests := []struct {
		name  string
		stats remote.Stats
		want  Status
	}{
		{name: "尚未发射", stats: remote.Stats{Emitter: "lirc"}, want: StatusHealthy},
		{name: "最近成功", stats: remote.Stats{Emitter: "lirc", Sent: 3, LastAt: time.Now()}, want: StatusHealthy},
		{name: "最近失败", stats: remote.Stats{Emitter: "lirc", Sent: 3, Failed: 1, LastError: "io"}, want: StatusDegraded},
		{name: "从未成功", stats: remote.Stats{Emitter: "lirc", Failed: 2, LastError: "no device"}, want: StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewEmitterChecker(staticStats(tt.stats))
			res := c.Check(context.Background())
			assert.Equal(t, "emitter", c.Name())
			assert.Equal(t, tt.want, res.Status)
			assert.Equal(t, "lirc", res.Details["driver"])
		})
	}
}

func TestReadiness(t *testing.T) {
	r := New()
	assert.False(t, r.Ready())
	r.SetEmitterReady(true)
	assert.False(t, r.Ready())
	r.SetStoreReady(true)
	assert.True(t, r.Ready())
}

func TestHTTPRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		status    Status
		wantReady int
		wantFull  int
	}{
		{name: "healthy", status: StatusHealthy, wantReady: http.StatusOK, wantFull: http.StatusOK},
		{name: "degraded", status: StatusDegraded, wantReady: http.StatusOK, wantFull: http.StatusOK},
		{name: "unhealthy", status: StatusUnhealthy, wantReady: http.StatusServiceUnavailable, wantFull: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			RegisterHTTPRoutes(r, NewAggregator(&mockChecker{"emitter", tt.status}))

			for path, want := range map[string]int{
				"/health/ready": tt.wantReady,
				"/health":       tt.wantFull,
				"/health/live":  http.StatusOK,
			} {
				w := httptest.NewRecorder()
				r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
				assert.Equal(t, want, w.Code, path)
			}
		})
	}
}
