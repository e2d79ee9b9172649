package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bubble_allowlist"

// Recorder exposes Prometheus metrics for the allowlist service.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	proofsServed    prometheus.Counter
	notEligible     prometheus.Counter
	verifications   *prometheus.CounterVec
	publishes       *prometheus.CounterVec
	rateLimited     prometheus.Counter
	activeLeaves    prometheus.Gauge
	activeDepth     prometheus.Gauge
	activeVersion   prometheus.Gauge
	rootMismatch    prometheus.Gauge
	rootCheckBlock  prometheus.Gauge
	requestDuration *prometheus.HistogramVec
}

// NewRecorder registers metrics with the provided registry.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		proofsServed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proofs_served_total",
			Help:      "Total number of membership proofs returned",
		}),
		notEligible: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "not_eligible_total",
			Help:      "Total proof lookups for addresses not in the active allowlist",
		}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifications_total",
			Help:      "Proof verifications grouped by result",
		}, []string{"result"}),
		publishes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publishes_total",
			Help:      "Allowlist publish attempts grouped by result",
		}, []string{"result"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-client rate limiter",
		}),
		activeLeaves: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_leaves",
			Help:      "Number of leaves in the active allowlist tree",
		}),
		activeDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_depth",
			Help:      "Depth of the active allowlist tree",
		}),
		activeVersion: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_version",
			Help:      "Version number of the active allowlist",
		}),
		rootMismatch: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "onchain_root_mismatch",
			Help:      "1 when the served root differs from the contract's root",
		}),
		rootCheckBlock: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "onchain_root_checked_block",
			Help:      "Block number of the last on-chain root comparison",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency grouped by route and status code",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "code"}),
	}

	reg.MustRegister(
		r.proofsServed,
		r.notEligible,
		r.verifications,
		r.publishes,
		r.rateLimited,
		r.activeLeaves,
		r.activeDepth,
		r.activeVersion,
		r.rootMismatch,
		r.rootCheckBlock,
		r.requestDuration,
	)

	return r
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// ObserveProofServed increments the served proof counter.
func (r *Recorder) ObserveProofServed() {
	if r == nil {
		return
	}
	r.proofsServed.Inc()
}

// ObserveNotEligible counts a lookup for a non-member.
func (r *Recorder) ObserveNotEligible() {
	if r == nil {
		return
	}
	r.notEligible.Inc()
}

// ObserveVerification records a verification outcome.
func (r *Recorder) ObserveVerification(valid bool) {
	if r == nil {
		return
	}
	r.verifications.WithLabelValues(resultLabel(valid)).Inc()
}

// ObservePublish records a publish outcome.
func (r *Recorder) ObservePublish(ok bool) {
	if r == nil {
		return
	}
	r.publishes.WithLabelValues(resultLabel(ok)).Inc()
}

func (r *Recorder) ObserveRateLimited() {
	if r == nil {
		return
	}
	r.rateLimited.Inc()
}

// SetActiveTree updates the gauges describing the served tree.
func (r *Recorder) SetActiveTree(version int64, leaves, depth int) {
	if r == nil {
		return
	}
	r.activeVersion.Set(float64(version))
	r.activeLeaves.Set(float64(leaves))
	r.activeDepth.Set(float64(depth))
}

// SetRootMismatch flags a divergence between the served and on-chain root.
func (r *Recorder) SetRootMismatch(mismatch bool) {
	if r == nil {
		return
	}
	if mismatch {
		r.rootMismatch.Set(1)
		return
	}
	r.rootMismatch.Set(0)
}

// SetRootCheckBlock records the block at which the roots were last compared.
func (r *Recorder) SetRootCheckBlock(block uint64) {
	if r == nil {
		return
	}
	r.rootCheckBlock.Set(float64(block))
}

// ObserveRequest records the latency of one HTTP request.
func (r *Recorder) ObserveRequest(route, code string, d time.Duration) {
	if r == nil {
		return
	}
	r.requestDuration.WithLabelValues(route, code).Observe(d.Seconds())
}

func resultLabel(ok bool) string {
	if ok {
		return "valid"
	}
	return "invalid"
}
