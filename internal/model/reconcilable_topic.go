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

package model

import (
	kafkatopicv1alpha1 "github.com/deckhouse/kafka-topic-operator/api/v1alpha1"
)

// ReconcilableTopic bundles one resource snapshot with everything the
// pipeline learns about it during a batch: its stable identity and the
// Kafka-side state fetched in the describe step (spec.md §3). It exists only
// for the duration of one batch and is never persisted.
type ReconcilableTopic struct {
	Ref      KubeRef
	Resource *kafkatopicv1alpha1.KafkaTopic
	Topic    *TopicState
}

// NewReconcilableTopic wraps a resource snapshot for entry into the pipeline.
func NewReconcilableTopic(res *kafkatopicv1alpha1.KafkaTopic) ReconcilableTopic {
	return ReconcilableTopic{Ref: KubeRefFrom(res), Resource: res}
}

// TopicName returns the Kafka-side topic name spec derives: spec.topicName
// if set, else the resource's own name (spec.md §3, §4.5).
func (r ReconcilableTopic) TopicName() string {
	if r.Resource.Spec != nil && r.Resource.Spec.TopicName != "" {
		return r.Resource.Spec.TopicName
	}
	return r.Resource.Name
}

// WithTopic returns a copy of r with its observed Kafka state attached.
func (r ReconcilableTopic) WithTopic(t *TopicState) ReconcilableTopic {
	r.Topic = t
	return r
}
