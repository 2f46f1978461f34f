package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "govidly"

// Resultados registrados pelos contadores de negócio.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics agrupa os coletores Prometheus da aplicação em um registry próprio.
// InstrumentHandler e os métodos Record* aceitam receptor nil.
type Metrics struct {
	registry *prometheus.Registry

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	checkouts *prometheus.CounterVec
	returns   *prometheus.CounterVec
	fees      prometheus.Histogram
}

// New cria e registra todos os coletores.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "path"}),
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rentals",
			Name:      "checkouts_total",
			Help:      "Total number of rental checkouts by result.",
		}, []string{"result"}),
		returns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rentals",
			Name:      "returns_settled_total",
			Help:      "Total number of return settlements by result.",
		}, []string{"result"}),
		fees: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rentals",
			Name:      "rental_fee",
			Help:      "Fee charged on settled rentals.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100, 250},
		}),
	}

	m.registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.checkouts,
		m.returns,
		m.fees,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)

	return m
}

// Handler retorna o handler HTTP que expõe as métricas registradas.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// InstrumentHandler envolve o handler com a coleta de métricas HTTP.
// Como middleware do gorilla/mux, usa o template da rota como rótulo de path.
func (m *Metrics) InstrumentHandler(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		path := routePath(r)
		method := strings.ToUpper(r.Method)

		m.httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		m.httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	})
}

// RecordCheckout contabiliza uma tentativa de retirada.
func (m *Metrics) RecordCheckout(result string) {
	if m == nil {
		return
	}
	m.checkouts.WithLabelValues(result).Inc()
}

// RecordReturn contabiliza uma devolução; a taxa só é observada em caso de sucesso.
func (m *Metrics) RecordReturn(result string, fee float64) {
	if m == nil {
		return
	}
	m.returns.WithLabelValues(result).Inc()
	if result == ResultSuccess {
		m.fees.Observe(fee)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// routePath evita cardinalidade alta: IDs viram o template "{id}".
func routePath(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return canonicalPath(r.URL.Path)
}

func canonicalPath(raw string) string {
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return "/"
	}
	parts := strings.Split(trimmed, "/")
	if len(parts) == 1 {
		return "/" + parts[0]
	}
	return "/" + parts[0] + "/{id}"
}
