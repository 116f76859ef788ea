package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type WithdrawalMetrics struct {
	WithdrawalsSubmittedTotal prometheus.CounterVec
	WithdrawalsAssignedTotal  prometheus.CounterVec
	UnassignedSubmitsTotal    prometheus.Counter

	WithdrawalsConcludedTotal prometheus.CounterVec
	WithdrawalsAmountTotal    prometheus.CounterVec

	TransfersTotal      prometheus.CounterVec
	ForcedReleasesTotal prometheus.Counter
	PendingWithdrawals  prometheus.Gauge

	ResolutionDuration prometheus.HistogramVec
	AssignScanDuration prometheus.Histogram

	WithdrawalErrorsTotal prometheus.CounterVec
}

func NewWithdrawalMetrics() *WithdrawalMetrics {
	return &WithdrawalMetrics{
		WithdrawalsSubmittedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "withdrawals_submitted_total",
				Help: "Total number of withdrawal requests submitted for review",
			},
			[]string{"method", "currency"},
		),

		WithdrawalsAssignedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "withdrawals_assigned_total",
				Help: "Total number of auto-assignments by reviewer",
			},
			[]string{"reviewer_id"},
		),

		UnassignedSubmitsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "withdrawals_unassigned_submits_total",
				Help: "Submissions left unassigned because no eligible reviewer was online",
			},
		),

		WithdrawalsConcludedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "withdrawals_concluded_total",
				Help: "Total number of concluded withdrawal requests",
			},
			[]string{"reviewer_id", "status", "manual"},
		),

		WithdrawalsAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "withdrawals_amount_total",
				Help: "Total concluded withdrawal amount",
			},
			[]string{"status", "currency"},
		),

		TransfersTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "withdrawal_transfers_total",
				Help: "Total number of assignment changes by kind",
			},
			[]string{"kind"},
		),

		ForcedReleasesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "withdrawal_forced_releases_total",
				Help: "Assignments released because the reviewer went away or offline",
			},
		),

		PendingWithdrawals: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "withdrawals_pending",
				Help: "Current number of pending withdrawal requests",
			},
		),

		ResolutionDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "withdrawal_resolution_duration_minutes",
				Help:    "Time from submission to conclusion in minutes",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"status"},
		),

		AssignScanDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "withdrawal_assign_scan_duration_seconds",
				Help:    "Time spent scanning the rotation queue for an eligible reviewer",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
		),

		WithdrawalErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "withdrawal_errors_total",
				Help: "Total number of errors by type",
			},
			[]string{"error_type"},
		),
	}
}

func (m *WithdrawalMetrics) RecordSubmitted(method, currency string) {
	m.WithdrawalsSubmittedTotal.WithLabelValues(method, currency).Inc()
	m.PendingWithdrawals.Inc()
}

func (m *WithdrawalMetrics) RecordAssigned(reviewerID string) {
	m.WithdrawalsAssignedTotal.WithLabelValues(reviewerID).Inc()
}

func (m *WithdrawalMetrics) RecordUnassignedSubmit() {
	m.UnassignedSubmitsTotal.Inc()
}

func (m *WithdrawalMetrics) RecordConcluded(reviewerID, status, currency string, manual bool, amount, durationMinutes float64) {
	manualStr := "false"
	if manual {
		manualStr = "true"
	}
	m.WithdrawalsConcludedTotal.WithLabelValues(reviewerID, status, manualStr).Inc()
	m.WithdrawalsAmountTotal.WithLabelValues(status, currency).Add(amount)
	m.ResolutionDuration.WithLabelValues(status).Observe(durationMinutes)
	m.PendingWithdrawals.Dec()
}

func (m *WithdrawalMetrics) RecordTransfer(kind string) {
	m.TransfersTotal.WithLabelValues(kind).Inc()
}

func (m *WithdrawalMetrics) RecordForcedRelease() {
	m.ForcedReleasesTotal.Inc()
}

func (m *WithdrawalMetrics) RecordAssignScanDuration(seconds float64) {
	m.AssignScanDuration.Observe(seconds)
}

func (m *WithdrawalMetrics) RecordError(errorType string) {
	m.WithdrawalErrorsTotal.WithLabelValues(errorType).Inc()
}
