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

// Package model holds the per-reconciliation value types the controller
// passes between pipeline stages: the resource's stable identity (KubeRef),
// its observed Kafka-side state (TopicState), and the bundle of the two plus
// the resource itself (ReconcilableTopic).
package model

import (
	"time"

	"k8s.io/apimachinery/pkg/types"

	kafkatopicv1alpha1 "github.com/deckhouse/kafka-topic-operator/api/v1alpha1"
)

// KubeRef is a resource's stable comparable identity, used both as a map key
// in the ownership table and to sort ownership claimants by age (spec.md §3,
// §4.3).
type KubeRef struct {
	Namespace         string
	Name              string
	UID               types.UID
	CreationTimestamp time.Time
}

// KubeRefFrom extracts the KubeRef of a resource.
func KubeRefFrom(res *kafkatopicv1alpha1.KafkaTopic) KubeRef {
	return KubeRef{
		Namespace:         res.Namespace,
		Name:              res.Name,
		UID:               res.UID,
		CreationTimestamp: res.CreationTimestamp.Time,
	}
}

// String renders "namespace/name", used in ResourceConflict messages
// ("Managed by <oldest>", spec.md §4.3).
func (r KubeRef) String() string {
	return r.Namespace + "/" + r.Name
}

// Less orders two claimants by creation time, breaking exact ties by UID for
// determinism (spec.md §9 open question).
func (r KubeRef) Less(other KubeRef) bool {
	if !r.CreationTimestamp.Equal(other.CreationTimestamp) {
		return r.CreationTimestamp.Before(other.CreationTimestamp)
	}
	return r.UID < other.UID
}
