package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRegistry 创建自定义 Prometheus Registry，并注册常用采集器
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler 返回 Prometheus 指标 HTTP 处理器
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// AppMetrics 自定义业务指标
type AppMetrics struct {
	TransmitTotal    *prometheus.CounterVec // labels: result=ok|error
	TransmitDuration prometheus.Histogram   // 单次发射耗时（含驱动阻塞时间）
	CommandTotal     *prometheus.CounterVec // labels: command, result=applied|rejected
	RateLimitedTotal prometheus.Counter
	PortalSaveTotal  *prometheus.CounterVec // labels: result
	PowerState       prometheus.Gauge       // 最近一次帧中的开关机位
	Temperature      prometheus.Gauge       // 最近一次帧中的设定温度（含半度）
}

// NewAppMetrics 注册并返回业务指标
func NewAppMetrics(reg prometheus.Registerer) *AppMetrics {
	m := &AppMetrics{
		TransmitTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ir_transmit_total",
			Help: "IR frame transmissions by result.",
		}, []string{"result"}),
		TransmitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ir_transmit_duration_seconds",
			Help:    "Wall time spent emitting one IR frame.",
			Buckets: []float64{0.05, 0.1, 0.15, 0.2, 0.3, 0.5, 1},
		}),
		CommandTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ir_command_total",
			Help: "Frame mutations by command and result.",
		}, []string{"command", "result"}),
		RateLimitedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ir_rate_limited_total",
			Help: "Transmission requests rejected by the rate limiter.",
		}),
		PortalSaveTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_settings_saved_total",
			Help: "WiFi settings submitted through the setup portal.",
		}, []string{"result"}),
		PowerState: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ir_frame_power",
			Help: "Power bit of the last transmitted frame.",
		}),
		Temperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ir_frame_temperature_celsius",
			Help: "Set temperature of the last transmitted frame.",
		}),
	}
	reg.MustRegister(m.TransmitTotal, m.TransmitDuration, m.CommandTotal, m.RateLimitedTotal,
		m.PortalSaveTotal, m.PowerState, m.Temperature)
	return m
}
