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

	kafkatopicv1alpha1 "github.com/deckhouse/kafka-topic-operator/api/v1alpha1"
	"github.com/deckhouse/kafka-topic-operator/internal/model"
)

// classify runs steps 3-6 of spec.md §4.2 over survivors already past the
// selector and deletion filters: drop unmanaged resources, validate the
// topic name, remember and arbitrate ownership, skip paused ones, then add
// or remove the finalizer to match the useFinalizer knob. It returns only the items that
// should proceed to the describe step.
func (c *Controller) classify(ctx context.Context, survivors []*kafkatopicv1alpha1.KafkaTopic, bs *batchState) []*kafkatopicv1alpha1.KafkaTopic {
	var proceed []*kafkatopicv1alpha1.KafkaTopic

	for _, res := range survivors {
		name := topicNameOf(res)
		ref := model.KubeRefFrom(res)

		if !kafkatopicv1alpha1.IsManaged(res) {
			bs.unmanaged[res] = true
			c.owners.Forget(name, ref)
			bs.outcomes.Succeed(res)
			continue
		}

		if err := validateUnchangedTopicName(res); err != nil {
			bs.outcomes.Fail(res, err)
			continue
		}

		c.owners.Remember(name, ref)
		if err := c.owners.Arbitrate(name, ref); err != nil {
			bs.outcomes.Fail(res, wrapConflict(err))
			continue
		}

		if kafkatopicv1alpha1.IsPaused(res) {
			bs.paused[res] = true
			bs.outcomes.Succeed(res)
			continue
		}

		if c.cfg.UseFinalizer() {
			if err := c.ensureFinalizer(ctx, res); err != nil {
				bs.outcomes.Fail(res, err)
				continue
			}
		} else if err := c.removeFinalizer(ctx, res); err != nil {
			bs.outcomes.Fail(res, err)
			continue
		}

		proceed = append(proceed, res)
	}

	return proceed
}
