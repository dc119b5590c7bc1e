package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FetchErrors - ошибки загрузки страницы чата по причине (network, status, parse).
	FetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatkeywords_fetch_errors_total",
			Help: "Total number of failed chat page fetches per reason",
		},
		[]string{"reason"},
	)

	// ExtractedEvents - извлечённые события по типу.
	ExtractedEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatkeywords_extracted_events_total",
			Help: "Total number of extracted chat events per type",
		},
		[]string{"type"},
	)

	// SkippedRows - строки чата, не подошедшие ни под один шаблон.
	SkippedRows = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatkeywords_skipped_rows_total",
		Help: "Total number of chat rows matching no known pattern",
	})

	StoredEvents = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chatkeywords_stored_events",
		Help: "Number of events currently held by the session store",
	})

	// SaveFailures - ошибки записи в хранилище по ключу.
	SaveFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatkeywords_save_failures_total",
			Help: "Total number of failed key-value store writes per key",
		},
		[]string{"key"},
	)

	// FetchDuration - время загрузки и разбора страницы. Регистрируется в app.
	FetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chatkeywords_fetch_duration_seconds",
			Help:    "Time to fetch and extract a chat page",
			Buckets: prometheus.ExponentialBuckets(0.05, 1.6, 15),
		},
	)
)
