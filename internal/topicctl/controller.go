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
	"log/slog"

	"k8s.io/apimachinery/pkg/labels"

	kafkatopicv1alpha1 "github.com/deckhouse/kafka-topic-operator/api/v1alpha1"
	"github.com/deckhouse/kafka-topic-operator/internal/ctlerrors"
	"github.com/deckhouse/kafka-topic-operator/internal/either"
	"github.com/deckhouse/kafka-topic-operator/internal/env"
	"github.com/deckhouse/kafka-topic-operator/internal/kafkaadmin"
	"github.com/deckhouse/kafka-topic-operator/internal/model"
	"github.com/deckhouse/kafka-topic-operator/internal/ownership"
	"github.com/deckhouse/kafka-topic-operator/internal/rebalancer"
	"github.com/deckhouse/kafka-topic-operator/internal/resourcestore"
)

// Controller is the batching topic controller (spec.md §2, §4). One
// instance processes batches sequentially (spec.md §5): no locking is done
// around the ownership table beyond what ownership.Table itself provides.
type Controller struct {
	log      *slog.Logger
	store    *resourcestore.Store
	admin    kafkaadmin.AdminClient
	rebal    *rebalancer.Client
	owners   *ownership.Table
	selector labels.Selector
	cfg      env.ConfigProvider
}

// NewController wires the controller's collaborators. The ownership table
// it builds uses Controller.isReady to back arbitration's "already
// Ready=True keeps the crown" rule (spec.md §4.3).
func NewController(
	log *slog.Logger,
	store *resourcestore.Store,
	admin kafkaadmin.AdminClient,
	rebal *rebalancer.Client,
	cfg env.ConfigProvider,
) (*Controller, error) {
	if log == nil {
		log = slog.Default()
	}
	selector := labels.Everything()
	if raw := cfg.TopicLabelSelector(); raw != "" {
		parsed, err := labels.Parse(raw)
		if err != nil {
			return nil, err
		}
		selector = parsed
	}

	c := &Controller{
		log:      log,
		store:    store,
		admin:    admin,
		rebal:    rebal,
		selector: selector,
		cfg:      cfg,
	}
	c.owners = ownership.NewTable(c.isReady)
	return c, nil
}

// batchState accumulates per-item bookkeeping across the pipeline stages of
// one OnUpdate/OnDelete call; it is never shared across batches (spec.md
// §5's no-overlapping-batches invariant is what makes this safe as a plain
// local value rather than a synchronized structure).
type batchState struct {
	outcomes      *either.Outcomes[*kafkatopicv1alpha1.KafkaTopic]
	unmanaged     map[*kafkatopicv1alpha1.KafkaTopic]bool
	paused        map[*kafkatopicv1alpha1.KafkaTopic]bool
	created       map[*kafkatopicv1alpha1.KafkaTopic]bool
	topicID       map[*kafkatopicv1alpha1.KafkaTopic]string
	warnings      map[*kafkatopicv1alpha1.KafkaTopic][]string
	replicaUpdate map[*kafkatopicv1alpha1.KafkaTopic]replicaChangeUpdate
}

func newBatchState() *batchState {
	return &batchState{
		outcomes:      either.NewOutcomes[*kafkatopicv1alpha1.KafkaTopic](),
		unmanaged:     map[*kafkatopicv1alpha1.KafkaTopic]bool{},
		paused:        map[*kafkatopicv1alpha1.KafkaTopic]bool{},
		created:       map[*kafkatopicv1alpha1.KafkaTopic]bool{},
		topicID:       map[*kafkatopicv1alpha1.KafkaTopic]string{},
		warnings:      map[*kafkatopicv1alpha1.KafkaTopic][]string{},
		replicaUpdate: map[*kafkatopicv1alpha1.KafkaTopic]replicaChangeUpdate{},
	}
}

// isReady reports whether the resource identified by ref currently carries
// Ready=True, used only by ownership arbitration's tie-break (spec.md
// §4.3). It is a best-effort lookup against the resource store rather than
// a batch-scoped read, since a prior winner may not appear in the current
// batch at all.
func (c *Controller) isReady(ref model.KubeRef) bool {
	res, err := c.store.Get(context.Background(), ref.Namespace, ref.Name)
	if err != nil || res == nil || res.Status == nil {
		return false
	}
	for _, cond := range res.Status.Conditions {
		if cond.Type == kafkatopicv1alpha1.ConditionTypeReady {
			return cond.Status == "True"
		}
	}
	return false
}

// OnUpdate is one of the two batch entry points (spec.md §4.1). It never
// returns an error except for cooperative cancellation (context.Canceled or
// context.DeadlineExceeded); every other failure is per-item and recorded
// in status.
func (c *Controller) OnUpdate(ctx context.Context, batch []*kafkatopicv1alpha1.KafkaTopic) error {
	bs := newBatchState()

	var toDelete, survivors []*kafkatopicv1alpha1.KafkaTopic
	for _, res := range batch {
		if !c.selector.Matches(labels.Set(res.Labels)) {
			c.owners.Forget(topicNameOf(res), model.KubeRefFrom(res))
			continue
		}
		if isDeleting(res) {
			toDelete = append(toDelete, res)
			continue
		}
		survivors = append(survivors, res)
	}

	if len(toDelete) > 0 {
		c.handleDeletions(ctx, toDelete, bs)
		if err := checkInterrupted(ctx); err != nil {
			return err
		}
	}

	survivors = c.classify(ctx, survivors, bs)
	if err := checkInterrupted(ctx); err != nil {
		return err
	}

	described, err := c.describeAll(ctx, survivors)
	if err != nil {
		return err
	}

	var known, missing []describedItem
	for _, di := range described {
		if di.err != nil {
			if kind, ok := ctlerrors.KafkaKind(di.err); ok && kind == kafkaadmin.KindUnknownTopicOrPartition {
				missing = append(missing, di)
			} else {
				bs.outcomes.Fail(di.item, di.err)
			}
			continue
		}
		known = append(known, di)
	}

	c.createMissing(ctx, missing, bs)
	if err := checkInterrupted(ctx); err != nil {
		return err
	}

	c.diffAndApply(ctx, known, bs)
	if err := checkInterrupted(ctx); err != nil {
		return err
	}

	describedState := make(map[*kafkatopicv1alpha1.KafkaTopic]*model.TopicState, len(known))
	for _, di := range known {
		describedState[di.item] = di.state
	}
	c.reconcileReplicaChanges(ctx, survivors, describedState, bs)
	if err := checkInterrupted(ctx); err != nil {
		return err
	}

	return c.writeStatuses(ctx, batch, bs)
}

// OnDelete is the second batch entry point (spec.md §4.1): every item in
// batch is already known to be a deletion (deletionTimestamp set, or the
// caller otherwise knows the resource is gone from the orchestrator).
func (c *Controller) OnDelete(ctx context.Context, batch []*kafkatopicv1alpha1.KafkaTopic) error {
	bs := newBatchState()
	c.handleDeletions(ctx, batch, bs)
	if err := checkInterrupted(ctx); err != nil {
		return err
	}
	return c.writeStatuses(ctx, batch, bs)
}

// checkInterrupted translates cooperative cancellation into the controller's
// single interrupted signal (spec.md §5): every suspension point in the
// pipeline calls this immediately afterward.
func checkInterrupted(ctx context.Context) error {
	return ctx.Err()
}

func topicNameOf(res *kafkatopicv1alpha1.KafkaTopic) string {
	if res.Spec != nil && res.Spec.TopicName != "" {
		return res.Spec.TopicName
	}
	return res.Name
}

func isDeleting(res *kafkatopicv1alpha1.KafkaTopic) bool {
	return res.DeletionTimestamp != nil && !res.DeletionTimestamp.IsZero()
}
