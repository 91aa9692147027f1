package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "statuspulse"

// 处理失败的分类标签
const (
	FailureAddress = "address"
	FailureRead    = "read"
	FailureWrite   = "write"
	FailureReply   = "reply"
	FailurePanic   = "panic"
)

// Collectors 汇总 responder 的运行时指标。
type Collectors struct {
	Registry *prometheus.Registry

	ConnectionsAccepted prometheus.Counter
	AcceptErrors        prometheus.Counter
	RequestsServed      prometheus.Counter
	HandlerFailures     *prometheus.CounterVec
	BytesIn             prometheus.Counter
	BytesOut            prometheus.Counter
	ActiveConnections   prometheus.Gauge
}

// New 在一个独立的 registry 上创建全部指标。
func New() *Collectors {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Collectors{
		Registry: reg,
		ConnectionsAccepted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_accepted_total",
			Help:      "Number of TCP connections accepted by the responder",
		}),
		AcceptErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "accept_errors_total",
			Help:      "Number of failed accept calls",
		}),
		RequestsServed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_served_total",
			Help:      "Number of connections that produced a status reply attempt",
		}),
		HandlerFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handler_failures_total",
			Help:      "Number of per-connection failures by kind",
		}, []string{"kind"}),
		BytesIn: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_received_total",
			Help:      "Bytes read from peers",
		}),
		BytesOut: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_sent_total",
			Help:      "Bytes written to peers",
		}),
		ActiveConnections: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_connections",
			Help:      "Connections currently being handled",
		}),
	}
}

// TrackRequestCount 注册一个直接读取共享计数器的 gauge。
func (c *Collectors) TrackRequestCount(value func() uint64) error {
	return c.Registry.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "request_count",
		Help:      "Current value of the shared request counter",
	}, func() float64 {
		return float64(value())
	}))
}
