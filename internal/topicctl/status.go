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
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/deckhouse/kafka-topic-operator/api/objutilv1"
	kafkatopicv1alpha1 "github.com/deckhouse/kafka-topic-operator/api/v1alpha1"
	"github.com/deckhouse/kafka-topic-operator/internal/ctlerrors"
	"github.com/deckhouse/kafka-topic-operator/internal/either"
	"github.com/deckhouse/kafka-topic-operator/internal/metrics"
)

// writeStatuses builds and writes one terminal status per item that
// received an outcome this batch (spec.md §4.9, §8: "exactly one terminal
// status write with a single Ready|Unmanaged|ReconciliationPaused
// condition, plus optional Warning"). Items the selector dropped never
// received an outcome and are skipped entirely. The reconciliations-total
// counter (spec.md §2) is incremented once per item here, from the item's
// own outcome, rather than once per batch call.
func (c *Controller) writeStatuses(ctx context.Context, batch []*kafkatopicv1alpha1.KafkaTopic, bs *batchState) error {
	for _, res := range batch {
		outcome, ok := bs.outcomes.Get(res)
		if !ok {
			continue
		}

		if outcome.IsOk() {
			metrics.RecordReconciliation(metrics.OutcomeSuccess)
		} else {
			metrics.RecordReconciliation(metrics.OutcomeFailure)
		}

		err := c.store.UpdateStatus(ctx, res, func(r *kafkatopicv1alpha1.KafkaTopic) {
			applyStatus(r, outcome, bs)
		})
		if err != nil {
			c.log.Error("writing KafkaTopic status", "namespace", res.Namespace, "name", res.Name, "error", err)
		}
	}
	return nil
}

func applyStatus(res *kafkatopicv1alpha1.KafkaTopic, outcome either.Either[struct{}], bs *batchState) {
	if res.Status == nil {
		res.Status = &kafkatopicv1alpha1.KafkaTopicStatus{}
	}
	res.Status.ObservedGeneration = res.Generation

	if bs.unmanaged[res] {
		res.Status.TopicName = ""
	} else if res.Status.TopicName == "" {
		res.Status.TopicName = topicNameOf(res)
	}

	if id, ok := bs.topicID[res]; ok {
		res.Status.TopicID = id
	}

	cond := readyCondition(res, outcome, bs)
	for _, t := range kafkatopicv1alpha1.TerminalConditionTypes {
		if t != cond.Type {
			objutilv1.RemoveStatusCondition(res, t)
		}
	}
	objutilv1.SetStatusCondition(res, cond)

	if warnings, ok := bs.warnings[res]; ok && len(warnings) > 0 {
		objutilv1.SetStatusCondition(res, metav1.Condition{
			Type:    kafkatopicv1alpha1.ConditionTypeWarning,
			Status:  metav1.ConditionTrue,
			Reason:  kafkatopicv1alpha1.ReasonNotConfigurable,
			Message: "config keys dropped by alterableTopicConfig policy: " + strings.Join(warnings, ", "),
		})
	} else {
		objutilv1.RemoveStatusCondition(res, kafkatopicv1alpha1.ConditionTypeWarning)
	}

	if update, ok := bs.replicaUpdate[res]; ok {
		res.Status.ReplicasChange = update.status
	}
}

// readyCondition picks the terminal condition's Type and Status per spec.md
// §8: an unmanaged or paused resource never reports Ready=True, so at most
// one resource per topic name has Ready=True at any given time.
func readyCondition(res *kafkatopicv1alpha1.KafkaTopic, outcome either.Either[struct{}], bs *batchState) metav1.Condition {
	switch {
	case bs.unmanaged[res]:
		return metav1.Condition{
			Type:    kafkatopicv1alpha1.ConditionTypeUnmanaged,
			Status:  metav1.ConditionTrue,
			Reason:  kafkatopicv1alpha1.ReasonUnmanaged,
			Message: "resource is not managed by this controller",
		}
	case bs.paused[res]:
		return metav1.Condition{
			Type:    kafkatopicv1alpha1.ConditionTypeReconciliationPaused,
			Status:  metav1.ConditionTrue,
			Reason:  kafkatopicv1alpha1.ReasonReconciliationPaused,
			Message: "reconciliation is paused",
		}
	case !outcome.IsOk():
		return metav1.Condition{
			Type:    kafkatopicv1alpha1.ConditionTypeReady,
			Status:  metav1.ConditionFalse,
			Reason:  ctlerrors.Reason(outcome.Err),
			Message: outcome.Err.Error(),
		}
	case bs.created[res]:
		return metav1.Condition{
			Type:    kafkatopicv1alpha1.ConditionTypeReady,
			Status:  metav1.ConditionTrue,
			Reason:  kafkatopicv1alpha1.ReasonTopicCreated,
			Message: "topic created",
		}
	default:
		return metav1.Condition{
			Type:    kafkatopicv1alpha1.ConditionTypeReady,
			Status:  metav1.ConditionTrue,
			Reason:  kafkatopicv1alpha1.ReasonTopicReconciled,
			Message: "topic reconciled",
		}
	}
}
