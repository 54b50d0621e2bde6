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
	"time"

	kafkatopicv1alpha1 "github.com/deckhouse/kafka-topic-operator/api/v1alpha1"
	"github.com/deckhouse/kafka-topic-operator/internal/ctlerrors"
	"github.com/deckhouse/kafka-topic-operator/internal/kafkaadmin"
	"github.com/deckhouse/kafka-topic-operator/internal/metrics"
	"github.com/deckhouse/kafka-topic-operator/internal/model"
)

// handleDeletions runs spec.md §4.6 over items already routed to the
// deletion branch, whether from onDelete directly or onUpdate's deletion
// filter.
func (c *Controller) handleDeletions(ctx context.Context, items []*kafkatopicv1alpha1.KafkaTopic, bs *batchState) {
	var managed []*kafkatopicv1alpha1.KafkaTopic

	for _, res := range items {
		name := topicNameOf(res)
		ref := model.KubeRefFrom(res)

		if !kafkatopicv1alpha1.IsManaged(res) {
			if err := c.removeFinalizer(ctx, res); err != nil {
				bs.outcomes.Fail(res, err)
				continue
			}
			c.owners.Forget(name, ref)
			bs.outcomes.Succeed(res)
			continue
		}

		c.owners.Remember(name, ref)
		if err := c.owners.Arbitrate(name, ref); err != nil {
			bs.outcomes.Fail(res, wrapConflict(err))
			continue
		}
		managed = append(managed, res)
	}

	if len(managed) == 0 {
		return
	}

	names := make([]string, len(managed))
	for i, res := range managed {
		names[i] = topicNameOf(res)
	}

	start := time.Now()
	results := c.admin.DeleteTopics(ctx, names)
	metrics.ObserveAdminCall("deleteTopics", start)

	for i, res := range managed {
		c.finishDeletion(ctx, res, results[names[i]], bs)
	}
}

func (c *Controller) finishDeletion(ctx context.Context, res *kafkatopicv1alpha1.KafkaTopic, deleteErr error, bs *batchState) {
	name := topicNameOf(res)
	ref := model.KubeRefFrom(res)

	kind, hasKind := ctlerrors.KafkaKind(deleteErr)

	switch {
	case deleteErr == nil, hasKind && kind == kafkaadmin.KindUnknownTopicOrPartition:
		if err := c.removeFinalizer(ctx, res); err != nil {
			bs.outcomes.Fail(res, err)
			return
		}
		c.owners.Forget(name, ref)
		bs.outcomes.Succeed(res)

	case hasKind && kind == kafkaadmin.KindTopicDeletionDisabled:
		if !c.cfg.UseFinalizer() {
			c.log.Warn("topic deletion disabled on cluster with finalizers off, no resource left to carry the failure",
				"topicName", name, "namespace", res.Namespace, "name", res.Name)
		}
		bs.outcomes.Fail(res, deleteErr)

	default:
		bs.outcomes.Fail(res, deleteErr)
	}
}
