package metrics

import (
	"strconv"

	"booknetwork/internal/apperr"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for lending activity.
type Metrics struct {
	BooksCreated      prometheus.Counter
	LoansOpened       prometheus.Counter
	LoansReturned     prometheus.Counter
	ReturnsApproved   prometheus.Counter
	FeedbacksCreated  prometheus.Counter
	PolicyRejections  *prometheus.CounterVec
	HTTPRequestTiming *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BooksCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "booknetwork_books_created_total",
			Help: "Total number of books added to the catalog",
		}),
		LoansOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "booknetwork_loans_opened_total",
			Help: "Total number of successful borrows",
		}),
		LoansReturned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "booknetwork_loans_returned_total",
			Help: "Total number of books handed back by borrowers",
		}),
		ReturnsApproved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "booknetwork_returns_approved_total",
			Help: "Total number of returns approved by owners",
		}),
		FeedbacksCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "booknetwork_feedbacks_created_total",
			Help: "Total number of feedbacks left on books",
		}),
		PolicyRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booknetwork_policy_rejections_total",
			Help: "Rejected lending actions by action and error code",
		}, []string{"action", "code"}),
		HTTPRequestTiming: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "booknetwork_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	if reg != nil {
		reg.MustRegister(
			m.BooksCreated, m.LoansOpened, m.LoansReturned, m.ReturnsApproved,
			m.FeedbacksCreated, m.PolicyRejections, m.HTTPRequestTiming,
		)
	}
	return m
}

// NewNoop returns unregistered collectors, for tests and tools.
func NewNoop() *Metrics {
	return New(nil)
}

// ObserveRejection counts err against action when it carries a rejection code.
func (m *Metrics) ObserveRejection(action string, err error) {
	if m == nil || err == nil {
		return
	}
	code := apperr.CodeOf(err)
	if code == 0 {
		return
	}
	m.PolicyRejections.WithLabelValues(action, strconv.Itoa(int(code))).Inc()
}
