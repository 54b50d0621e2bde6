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

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// +k8s:deepcopy-gen=true
// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object
// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:scope=Namespaced,shortName=kt
// +kubebuilder:printcolumn:name="Ready",type=string,JSONPath=".status.conditions[?(@.type=='Ready')].status"
// +kubebuilder:printcolumn:name="Partitions",type=integer,JSONPath=".spec.partitions"
// +kubebuilder:printcolumn:name="Replicas",type=integer,JSONPath=".spec.replicas"
// +kubebuilder:printcolumn:name="TopicName",type=string,JSONPath=".status.topicName"
type KafkaTopic struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata"`

	// Spec is optional: an absent spec means the resource is a bare claim on
	// topicName (defaulted to metadata.name) with no desired configuration.
	// +optional
	Spec *KafkaTopicSpec `json:"spec,omitempty"`
	// +patchStrategy=merge
	// +optional
	Status *KafkaTopicStatus `json:"status,omitempty" patchStrategy:"merge"`
}

// GetStatusConditions is an adapter method to satisfy
// objutilv1.StatusConditionObject. It returns the root object's
// `.status.conditions`, treating a nil status as empty.
func (t *KafkaTopic) GetStatusConditions() []metav1.Condition {
	if t.Status == nil {
		return nil
	}
	return t.Status.Conditions
}

// SetStatusConditions is an adapter method to satisfy
// objutilv1.StatusConditionObject. It sets the root object's
// `.status.conditions`, allocating Status if it was nil.
func (t *KafkaTopic) SetStatusConditions(conditions []metav1.Condition) {
	if t.Status == nil {
		t.Status = &KafkaTopicStatus{}
	}
	t.Status.Conditions = conditions
}

// +k8s:deepcopy-gen=true
type KafkaTopicSpec struct {
	// TopicName is the Kafka-side topic name. Defaults to metadata.name.
	// Immutable once observed in status.topicName (spec.md invariant I3).
	// +optional
	TopicName string `json:"topicName,omitempty"`

	// Partitions may only increase relative to the current Kafka partition
	// count (spec.md invariant I5). Absent means broker-default.
	// +optional
	// +kubebuilder:validation:Minimum=1
	Partitions *int32 `json:"partitions,omitempty"`

	// Replicas is the desired replication factor. A mismatch with the
	// observed replication factor drives the replica-change subsystem
	// (spec.md §4.7), never a direct partition-assignment edit. Absent means
	// broker-default.
	// +optional
	// +kubebuilder:validation:Minimum=1
	Replicas *int32 `json:"replicas,omitempty"`

	// Config holds dynamic topic configuration entries. Values are scalars
	// (string, bool, number) or lists of scalars (joined with "," when sent
	// to Kafka); any other JSON kind is an InvalidResource error before any
	// admin call is made (spec.md §4.5).
	// +optional
	Config map[string]ConfigValue `json:"config,omitempty"`
}

// +k8s:deepcopy-gen=true
type KafkaTopicStatus struct {
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// TopicName is null when the resource is unmanaged, otherwise preserved
	// from a prior write or derived from spec (spec.md §4.9). Never changes
	// once set on a managed resource (invariant I3).
	// +optional
	TopicName string `json:"topicName,omitempty"`

	// +optional
	TopicID string `json:"topicId,omitempty"`

	// +patchMergeKey=type
	// +patchStrategy=merge
	// +listType=map
	// +listMapKey=type
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty" patchStrategy:"merge" patchMergeKey:"type"`

	// ReplicasChange tracks the replica-change state machine (spec.md §4.7).
	// nil means no change is being tracked.
	// +optional
	ReplicasChange *ReplicasChangeStatus `json:"replicasChange,omitempty"`
}

// ReplicasChangeState is the state of the embedded replica-change state
// machine (spec.md §4.7). It has two values, Pending and Ongoing; within
// Pending, "never submitted" and "previously failed" are not separate
// states and are told apart only by whether ReplicasChangeStatus.Message is
// set.
// +kubebuilder:validation:Enum=Pending;Ongoing
type ReplicasChangeState string

const (
	ReplicasChangePending ReplicasChangeState = "Pending"
	ReplicasChangeOngoing ReplicasChangeState = "Ongoing"
)

// +k8s:deepcopy-gen=true
type ReplicasChangeStatus struct {
	State ReplicasChangeState `json:"state"`

	// SessionID identifies the rebalancer task once accepted. Set only in
	// the Ongoing state.
	// +optional
	SessionID string `json:"sessionId,omitempty"`

	// Message is non-empty only for a PENDING change that previously failed
	// and is awaiting a spec revert or retry; its presence, not its
	// content, disambiguates "never submitted" from "failed" within the
	// PENDING state.
	// +optional
	Message string `json:"message,omitempty"`

	// TargetReplicas is the replication factor this change is converging
	// toward.
	TargetReplicas int32 `json:"targetReplicas"`
}

// +k8s:deepcopy-gen=true
// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object
// +kubebuilder:object:root=true
type KafkaTopicList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata"`
	Items           []KafkaTopic `json:"items"`
}
