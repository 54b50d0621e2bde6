/*
Copyright 2025 Flant JSC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package metrics registers the controller's Prometheus collectors against
// controller-runtime's default registry (spec.md §2): counters for
// successful/failed reconciliations, timers around external calls. Per-call
// timers are gated by enableAdditionalMetrics (spec.md §6) since they add a
// label per admin operation kind.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	crmetrics "sigs.k8s.io/controller-runtime/pkg/metrics"
)

const namespace = "kafka_topic_operator"

var (
	reconciliationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reconciliations_total",
		Help:      "Total reconciliations processed, by outcome.",
	}, []string{"outcome"})

	adminCallDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "admin_call_duration_seconds",
		Help:      "Duration of Kafka admin API calls, by operation.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})
)

func init() {
	crmetrics.Registry.MustRegister(reconciliationsTotal, adminCallDuration)
}

// Outcome labels for ReconciliationsTotal.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// RecordReconciliation increments the reconciliation counter for one item's
// outcome.
func RecordReconciliation(outcome string) {
	reconciliationsTotal.WithLabelValues(outcome).Inc()
}

// additionalMetricsEnabled gates the per-operation admin call timer; set
// once at startup from env.Config.EnableAdditionalMetrics.
var additionalMetricsEnabled bool

// SetAdditionalMetricsEnabled configures whether ObserveAdminCall records
// anything (spec.md §6).
func SetAdditionalMetricsEnabled(enabled bool) {
	additionalMetricsEnabled = enabled
}

// ObserveAdminCall times a single admin operation and records it under
// operation's label, if additional metrics are enabled.
func ObserveAdminCall(operation string, start time.Time) {
	if !additionalMetricsEnabled {
		return
	}
	adminCallDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
