package health

import (
	"context"
	"time"

	"github.com/taoyao-code/ir-remote/internal/remote"
)

// StatsProvider 提供发射统计
type StatsProvider interface {
	Stats() remote.Stats
}

// EmitterChecker 红外发射器健康检查器。
// 发射器没有可探测的回路，只能依据最近一次发射结果判断。
type EmitterChecker struct {
	provider StatsProvider
}

// NewEmitterChecker 创建发射器健康检查器
func NewEmitterChecker(p StatsProvider) *EmitterChecker {
	return &EmitterChecker{provider: p}
}

// Name 返回检查器名称
func (c *EmitterChecker) Name() string {
	return "emitter"
}

// Check 最近一次发射失败时降级，从未成功且失败过则不健康
func (c *EmitterChecker) Check(ctx context.Context) CheckResult {
	start := time.Now()
	st := c.provider.Stats()

	status := StatusHealthy
	message := "ok"
	switch {
	case st.LastError != "" && st.Sent == 0:
		status = StatusUnhealthy
		message = "no successful transmission: " + st.LastError
	case st.LastError != "":
		status = StatusDegraded
		message = "last transmission failed: " + st.LastError
	}

	details := map[string]interface{}{
		"driver": st.Emitter,
		"sent":   st.Sent,
		"failed": st.Failed,
	}
	if !st.LastAt.IsZero() {
		details["last_at"] = st.LastAt
	}

	return CheckResult{
		Status:  status,
		Message: message,
		Details: details,
		Latency: time.Since(start),
	}
}
