// Package metrics exposes board activity and HTTP traffic as Prometheus
// metrics.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/overboard/internal/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "overboard"

// Collector counts board events and HTTP requests. It is an
// events.EventHandler.
type Collector struct {
	registry *prometheus.Registry

	users          prometheus.Counter
	questions      prometheus.Counter
	answers        prometheus.Counter
	acceptances    prometheus.Counter
	votes          *prometheus.CounterVec
	ruleViolations *prometheus.CounterVec

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		users: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_total",
			Help:      "Users created on the board.",
		}),
		questions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "questions_total",
			Help:      "Questions asked on the board.",
		}),
		answers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_total",
			Help:      "Answers posted on the board.",
		}),
		acceptances: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "acceptances_total",
			Help:      "Successful answer acceptances, including repeats.",
		}),
		votes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_total",
			Help:      "Votes cast, by direction and whether they changed anything.",
		}, []string{"direction", "changed"}),
		ruleViolations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rule_violations_total",
			Help:      "User actions rejected by a board rule.",
		}, []string{"rule"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"method", "route"}),
	}

	c.registry.MustRegister(
		c.users,
		c.questions,
		c.answers,
		c.acceptances,
		c.votes,
		c.ruleViolations,
		c.requests,
		c.requestDuration,
	)
	return c
}

var _ events.EventHandler = (*Collector)(nil)

// HandleEvent implements events.EventHandler.
func (c *Collector) HandleEvent(ctx context.Context, event *events.BoardEvent) error {
	switch event.Type {
	case events.TypeUserCreated:
		c.users.Inc()
	case events.TypeQuestionAsked:
		c.questions.Inc()
	case events.TypeAnswerPosted:
		c.answers.Inc()
	case events.TypeAnswerAccepted:
		c.acceptances.Inc()
	case events.TypeVoteCast:
		var payload events.VotePayload
		if err := event.UnmarshalPayload(&payload); err != nil {
			return err
		}
		c.votes.WithLabelValues(payload.Direction, strconv.FormatBool(payload.Changed)).Inc()
	}
	return nil
}

// ObserveRuleViolation counts a rejected action. Its signature matches
// service.RuleViolationHook.
func (c *Collector) ObserveRuleViolation(rule string) {
	c.ruleViolations.WithLabelValues(rule).Inc()
}

// Middleware records request counts and latency, labelled by the matched
// chi route pattern.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		c.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		c.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the collected metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
