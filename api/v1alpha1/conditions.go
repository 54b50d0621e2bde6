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

package v1alpha1

// =============================================================================
// Condition types
// =============================================================================

const (
	// ConditionTypeReady summarizes reconciliation outcome: True once the
	// resource's desired state has been applied to Kafka with no error left
	// unresolved. Only a managed, unpaused resource ever carries this type;
	// see ConditionTypeUnmanaged and ConditionTypeReconciliationPaused for
	// the other two terminal outcomes spec.md §8 counts separately, so that
	// at most one resource per topic name has Ready=True at any time.
	ConditionTypeReady = "Ready"

	// ConditionTypeUnmanaged is the terminal condition type for a resource
	// excluded from reconciliation by ManagedAnnotation (spec.md §4.2 step 3).
	ConditionTypeUnmanaged = "Unmanaged"

	// ConditionTypeReconciliationPaused is the terminal condition type for a
	// resource skipped because of PausedAnnotation (spec.md §4.2 step 5).
	ConditionTypeReconciliationPaused = "ReconciliationPaused"

	// ConditionTypeWarning carries a non-terminal problem alongside the
	// terminal condition, e.g. config keys the alterableTopicConfig policy
	// dropped (spec.md §4.8, §4.9).
	ConditionTypeWarning = "Warning"
)

// TerminalConditionTypes lists every condition type a status write may set
// as the terminal outcome; only one of them is present on a resource at a
// time, so setting one means removing the other two if they are stale.
var TerminalConditionTypes = [...]string{ConditionTypeReady, ConditionTypeUnmanaged, ConditionTypeReconciliationPaused}

// =============================================================================
// Ready condition reasons for a successful reconcile
// =============================================================================

const (
	// ReasonTopicCreated is set the first time a topic is created for this
	// resource.
	ReasonTopicCreated = "Created"

	// ReasonTopicReconciled is set after any subsequent reconcile that leaves
	// the topic converged with spec, including a no-op reconcile.
	ReasonTopicReconciled = "Reconciled"

	// ReasonUnmanaged is set on a resource excluded from reconciliation by
	// ManagedAnnotation (spec.md §4.2 step 3).
	ReasonUnmanaged = "Unmanaged"

	// ReasonReconciliationPaused is set on a resource skipped because of
	// PausedAnnotation (spec.md §4.2 step 5).
	ReasonReconciliationPaused = "ReconciliationPaused"

	// ReasonNotConfigurable is the Warning condition reason for config keys
	// the alterableTopicConfig policy dropped (spec.md §4.8).
	ReasonNotConfigurable = "NotConfigurable"
)

// =============================================================================
// Ready condition reasons mirroring the error taxonomy (see internal/ctlerrors)
// =============================================================================

const (
	ReasonInvalidResource  = "InvalidResource"
	ReasonNotSupported     = "NotSupported"
	ReasonResourceConflict = "ResourceConflict"
	ReasonKafkaError       = "KafkaError"
	ReasonInternalError    = "InternalError"
)

// FinalizerName is set on every resource this controller manages so that
// deletion can run the topic-delete path before the API object is removed
// (spec.md §4.6).
const FinalizerName = "kafka-topic-operator.deckhouse.io/finalizer"

// ManagedByLabel is a label key reserved for naming the KubeRef that owns a
// topic name. No code in this module sets or reads it: ownership
// arbitration (spec.md §4.3) is computed in-process.
const ManagedByLabel = "kafka-topic-operator.deckhouse.io/managed-by"
