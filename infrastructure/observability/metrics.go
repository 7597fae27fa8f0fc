package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"lotto/events"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// Metrics owns the Prometheus collectors of the application
type Metrics struct {
	registry *prometheus.Registry

	ticketsSaved    *prometheus.CounterVec
	resultsRecorded prometheus.Counter
	prizeAmount     prometheus.Counter
	historyResets   *prometheus.CounterVec
	numbersDrawn    *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// NewMetrics creates the collectors on a private registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticketsSaved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Name:      TicketsSavedTotal,
			Help:      "Tickets appended to the history.",
		}, []string{LabelType}),
		resultsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Name:      ResultsRecordedTotal,
			Help:      "Tickets completed with a draw result.",
		}),
		prizeAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Name:      PrizeAmountTotal,
			Help:      "Sum of recorded prize amounts.",
		}),
		historyResets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Name:      HistoryResetsTotal,
			Help:      "Times the whole history was cleared or replaced.",
		}, []string{LabelReason}),
		numbersDrawn: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Name:      NumbersDrawnTotal,
			Help:      "Games produced by the number generator.",
		}, []string{LabelMode}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Subsystem: "api",
			Name:      HTTPRequestsTotal,
			Help:      "HTTP requests handled.",
		}, []string{LabelMethod, LabelPath, LabelStatus}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: MetricNamespace,
			Subsystem: "api",
			Name:      HTTPRequestDuration,
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		}, []string{LabelMethod, LabelPath}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ticketsSaved,
		m.resultsRecorded,
		m.prizeAmount,
		m.historyResets,
		m.numbersDrawn,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// Registry exposes the registry for tests and additional collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveHTTPRequest records one handled request
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Subscribe attaches the domain counters to the event bus
func (m *Metrics) Subscribe(bus *events.Bus) {
	bus.Subscribe(events.EventTypeTicketSaved, m.handleEvent)
	bus.Subscribe(events.EventTypeResultRecorded, m.handleEvent)
	bus.Subscribe(events.EventTypeHistoryCleared, m.handleEvent)
	bus.Subscribe(events.EventTypeHistoryImported, m.handleEvent)
	bus.Subscribe(events.EventTypeNumbersDrawn, m.handleEvent)
}

func (m *Metrics) handleEvent(ctx context.Context, event events.Event) {
	switch e := event.(type) {
	case events.TicketSavedEvent:
		m.ticketsSaved.WithLabelValues(e.TicketType).Inc()
	case events.ResultRecordedEvent:
		m.resultsRecorded.Inc()
		m.prizeAmount.Add(float64(e.Amount))
	case events.HistoryClearedEvent:
		m.historyResets.WithLabelValues(ResetReasonCleared).Inc()
	case events.HistoryImportedEvent:
		m.historyResets.WithLabelValues(ResetReasonImported).Inc()
	case events.NumbersDrawnEvent:
		m.numbersDrawn.WithLabelValues(e.Mode).Add(float64(e.Games))
	default:
		log.WithField("eventType", event.Type()).Debug("Ignoring event without metric")
	}
}
