package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "ringd"

var (
	RecordsAppended = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_appended_total",
			Help:      "Total records appended to the ring.",
		},
	)
	RecordsEvicted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_evicted_total",
			Help:      "Total records evicted by appends to a full ring.",
		},
	)
	BytesWritten = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_written_total",
			Help:      "Total bytes accepted by store writes.",
		},
	)
	BytesRead = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_read_total",
			Help:      "Total bytes returned by store reads.",
		},
	)
	LiveBytes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_bytes",
			Help:      "Bytes currently stored across live records.",
		},
	)
	LiveRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_records",
			Help:      "Records currently live in the ring.",
		},
	)
	SeekErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seek_errors_total",
			Help:      "Seeks rejected as out of range.",
		},
	)
	ConnectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tcp_connections_total",
			Help:      "Total accepted TCP sessions.",
		},
	)
	ActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tcp_active_connections",
			Help:      "Currently open TCP sessions.",
		},
	)
	ArchivedRecords = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "archived_records_total",
			Help:      "Records persisted by the archive collaborator.",
		},
	)
)

// Register registers all ringd collectors with reg.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		RecordsAppended,
		RecordsEvicted,
		BytesWritten,
		BytesRead,
		LiveBytes,
		LiveRecords,
		SeekErrors,
		ConnectionsTotal,
		ActiveConnections,
		ArchivedRecords,
	)
}
