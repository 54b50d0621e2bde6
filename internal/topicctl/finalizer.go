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
	"context"

	"github.com/deckhouse/kafka-topic-operator/api/objutilv1"
	kafkatopicv1alpha1 "github.com/deckhouse/kafka-topic-operator/api/v1alpha1"
	"github.com/deckhouse/kafka-topic-operator/internal/ctlerrors"
)

// ensureFinalizer adds FinalizerName if it is missing, tolerating the case
// where the resource already carries it (spec.md §4.2 step 6, §4.6).
func (c *Controller) ensureFinalizer(ctx context.Context, res *kafkatopicv1alpha1.KafkaTopic) error {
	if objutilv1.HasFinalizer(res, kafkatopicv1alpha1.FinalizerName) {
		return nil
	}
	err := c.store.EditMetadata(ctx, res, func(r *kafkatopicv1alpha1.KafkaTopic) {
		objutilv1.AddFinalizer(r, kafkatopicv1alpha1.FinalizerName)
	})
	if err != nil {
		return ctlerrors.Internalf("adding finalizer: %w", err)
	}
	return nil
}

// removeFinalizer drops FinalizerName once the corresponding Kafka-side
// delete has either succeeded or been confirmed unnecessary (spec.md §4.6).
func (c *Controller) removeFinalizer(ctx context.Context, res *kafkatopicv1alpha1.KafkaTopic) error {
	if !objutilv1.HasFinalizer(res, kafkatopicv1alpha1.FinalizerName) {
		return nil
	}
	err := c.store.EditMetadata(ctx, res, func(r *kafkatopicv1alpha1.KafkaTopic) {
		objutilv1.RemoveFinalizer(r, kafkatopicv1alpha1.FinalizerName)
	})
	if err != nil {
		return ctlerrors.Internalf("removing finalizer: %w", err)
	}
	return nil
}
