// Package metrics defines and registers the custom Prometheus metrics of the
// auth gateway. It is the single source of truth for metric names, labels, and
// help strings. All metrics are registered with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "authgw"

// Values of the "result" label.
const (
	ResultOK      = "ok"
	ResultInvalid = "invalid"
	ResultFailed  = "failed"
	// ResultPartial marks a sign-up whose account was created but not authenticated.
	ResultPartial = "partial"
)

// ── Use-case metrics ─────────────────────────────────────────────────────────

// SignUpsTotal counts sign-up attempts.
// Label:
//   - result: ok, invalid, failed or partial
var SignUpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of sign-up attempts, by result.",
	},
	[]string{"result"},
)

// SignInsTotal counts sign-in attempts.
// Label:
//   - result: ok, invalid or failed
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// ── Identity provider metrics ────────────────────────────────────────────────

// ProviderCallDuration measures round trips to the identity backend.
// Label:
//   - op: create_account, authenticate or complete_challenge
var ProviderCallDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "provider_call_duration_seconds",
		Help:      "Duration of calls to the identity provider.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"op"},
)

// ChallengesTotal counts new-password challenges raised during authentication.
// Label:
//   - result: ok (answered and re-authenticated) or failed
var ChallengesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "challenges_total",
		Help:      "Total number of new-password challenges handled, by result.",
	},
	[]string{"result"},
)

// RateLimitedTotal counts requests rejected by the rate limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	},
)
