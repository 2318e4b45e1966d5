// Package metrics 定义 Prometheus 指标
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 外部服务标签
const (
	ServiceChat          = "chat"
	ServiceTranscription = "transcription"
)

// 调用结果标签
const (
	OutcomeSuccess   = "success"
	OutcomeError     = "error"
	OutcomeMalformed = "malformed"
)

// Metrics 应用指标；nil 接收者上的方法为空操作，方便测试直接传 nil
type Metrics struct {
	registry *prometheus.Registry

	ExternalCalls   *prometheus.CounterVec
	ExternalLatency *prometheus.HistogramVec
	Fallbacks       *prometheus.CounterVec

	TriageCompleted prometheus.Counter
	QueueEntries    prometheus.Counter

	WebSocketConnections prometheus.Gauge
}

// NewMetrics 创建独立 registry 并注册全部指标
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		ExternalCalls: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mediverse_external_calls_total",
			Help: "Calls to external text generation and transcription services by outcome",
		}, []string{"service", "outcome"}),

		// 大模型响应可能很慢，桶上限 2 分钟
		ExternalLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mediverse_external_call_duration_seconds",
			Help:    "Latency of external service calls in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}, []string{"service"}),

		Fallbacks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mediverse_fallbacks_total",
			Help: "Degraded results produced instead of external service output",
		}, []string{"component", "reason"}),

		TriageCompleted: f.NewCounter(prometheus.CounterOpts{
			Name: "mediverse_triage_completed_total",
			Help: "Triage sessions that reached a recommendation",
		}),

		QueueEntries: f.NewCounter(prometheus.CounterOpts{
			Name: "mediverse_queue_entries_total",
			Help: "Queue entries created for scheduled appointments",
		}),

		WebSocketConnections: f.NewGauge(prometheus.GaugeOpts{
			Name: "mediverse_websocket_connections_active",
			Help: "Active doctor queue WebSocket connections",
		}),
	}
}

// Handler /metrics 处理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry 返回底层 registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveExternalCall 记录一次外部调用
func (m *Metrics) ObserveExternalCall(service, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ExternalCalls.WithLabelValues(service, outcome).Inc()
	m.ExternalLatency.WithLabelValues(service).Observe(elapsed.Seconds())
}

// RecordFallback 记录一次降级
func (m *Metrics) RecordFallback(component, reason string) {
	if m == nil {
		return
	}
	m.Fallbacks.WithLabelValues(component, reason).Inc()
}

// RecordTriageCompleted 记录分诊完成
func (m *Metrics) RecordTriageCompleted() {
	if m == nil {
		return
	}
	m.TriageCompleted.Inc()
}

// RecordQueueEntry 记录新增队列条目
func (m *Metrics) RecordQueueEntry() {
	if m == nil {
		return
	}
	m.QueueEntries.Inc()
}

// WebSocketConnected 连接数 +1
func (m *Metrics) WebSocketConnected() {
	if m == nil {
		return
	}
	m.WebSocketConnections.Inc()
}

// WebSocketDisconnected 连接数 -1
func (m *Metrics) WebSocketDisconnected() {
	if m == nil {
		return
	}
	m.WebSocketConnections.Dec()
}
