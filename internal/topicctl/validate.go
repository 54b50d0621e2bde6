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

package topicctl

import (
	"errors"

	kafkatopicv1alpha1 "github.com/deckhouse/kafka-topic-operator/api/v1alpha1"
	"github.com/deckhouse/kafka-topic-operator/internal/ctlerrors"
	"github.com/deckhouse/kafka-topic-operator/internal/ownership"
)

// validateUnchangedTopicName enforces invariant I3: once status.topicName is
// set on a managed resource, the spec-derived name must never diverge from
// it (spec.md §4.2 step 3).
func validateUnchangedTopicName(res *kafkatopicv1alpha1.KafkaTopic) error {
	if res.Status == nil || res.Status.TopicName == "" {
		return nil
	}
	if res.Status.TopicName != topicNameOf(res) {
		return ctlerrors.NotSupportedf("topicName is immutable: was %q, spec now derives %q", res.Status.TopicName, topicNameOf(res))
	}
	return nil
}

// wrapConflict turns an ownership.ErrConflict into the ResourceConflict
// status message spec.md §4.3 specifies verbatim.
func wrapConflict(err error) error {
	var conflict *ownership.ErrConflict
	if !errors.As(err, &conflict) {
		return ctlerrors.Internalf("%w", err)
	}
	return ctlerrors.ResourceConflictf("Managed by %s", conflict.Owner)
}
