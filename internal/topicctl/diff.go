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
	"sort"
	"time"

	kafkatopicv1alpha1 "github.com/deckhouse/kafka-topic-operator/api/v1alpha1"
	"github.com/deckhouse/kafka-topic-operator/internal/ctlerrors"
	"github.com/deckhouse/kafka-topic-operator/internal/env"
	"github.com/deckhouse/kafka-topic-operator/internal/kafkaadmin"
	"github.com/deckhouse/kafka-topic-operator/internal/metrics"
	"github.com/deckhouse/kafka-topic-operator/internal/model"
)

// diffAndApply computes and submits the config and partition diffs for
// every known (successfully described) item (spec.md §4.8), grouping the
// admin calls into one wire request each.
func (c *Controller) diffAndApply(ctx context.Context, known []describedItem, bs *batchState) {
	if len(known) == 0 {
		return
	}

	configOps := make(map[string][]kafkaadmin.ConfigOp)
	partitionTargets := make(map[string]int32)
	byName := make(map[string]describedItem, len(known))

	for _, di := range known {
		byName[di.topicName] = di

		if di.item.Spec != nil {
			if _, err := stringifyConfig(di.item.Spec.Config); err != nil {
				bs.outcomes.Fail(di.item, err)
				continue
			}
		}

		ops, dropped := configOpsFor(c.cfg, di.item, di.state)
		if len(dropped) > 0 {
			bs.warnings[di.item] = dropped
		}
		if len(ops) > 0 {
			configOps[di.topicName] = ops
		}

		target, err := partitionTargetFor(di.item, di.state)
		if err != nil {
			bs.outcomes.Fail(di.item, err)
			continue
		}
		if target != nil {
			partitionTargets[di.topicName] = *target
		}
	}

	if len(configOps) > 0 {
		start := time.Now()
		results := c.admin.IncrementalAlterConfigs(ctx, configOps)
		metrics.ObserveAdminCall("incrementalAlterConfigs", start)
		for name, err := range results {
			di := byName[name]
			if err != nil {
				bs.outcomes.Fail(di.item, err)
				continue
			}
			bs.outcomes.Succeed(di.item)
		}
	}

	if len(partitionTargets) > 0 {
		start := time.Now()
		results := c.admin.CreatePartitions(ctx, partitionTargets)
		metrics.ObserveAdminCall("createPartitions", start)
		for name, err := range results {
			di := byName[name]
			if err != nil {
				bs.outcomes.Fail(di.item, err)
				continue
			}
			bs.outcomes.Succeed(di.item)
		}
	}

	for _, di := range known {
		if _, recorded := bs.outcomes.Get(di.item); !recorded {
			bs.outcomes.Succeed(di.item)
		}
	}
}

// configOpsFor computes the SET/DELETE ops for one topic (spec.md §4.8) and
// filters them by the alterableTopicConfig policy, returning the sorted set
// of keys the policy dropped for the Warning condition.
func configOpsFor(cfg env.ConfigProvider, res *kafkatopicv1alpha1.KafkaTopic, state *model.TopicState) ([]kafkaadmin.ConfigOp, []string) {
	if res.Spec == nil {
		return nil, nil
	}

	desired, err := stringifyConfig(res.Spec.Config)
	if err != nil {
		return nil, nil
	}

	var ops []kafkaadmin.ConfigOp
	for key, value := range desired {
		current, ok := state.Config[key]
		if !ok || current.Value != value {
			ops = append(ops, kafkaadmin.ConfigOp{Key: key, Value: value, Type: kafkaadmin.ConfigOpSet})
		}
	}
	for key, entry := range state.Config {
		if entry.Source != model.ConfigSourceDynamicTopic {
			continue
		}
		if _, wanted := desired[key]; !wanted {
			ops = append(ops, kafkaadmin.ConfigOp{Key: key, Type: kafkaadmin.ConfigOpDelete})
		}
	}

	var kept []kafkaadmin.ConfigOp
	var dropped []string
	for _, op := range ops {
		if cfg.IsConfigKeyAlterable(op.Key) {
			kept = append(kept, op)
		} else {
			dropped = append(dropped, op.Key)
		}
	}
	sort.Strings(dropped)
	return kept, dropped
}

// partitionTargetFor computes the createPartitions target for one topic
// (spec.md §4.8): increase-only, a decrease request other than
// broker-default is NotSupported.
func partitionTargetFor(res *kafkatopicv1alpha1.KafkaTopic, state *model.TopicState) (*int32, error) {
	if res.Spec == nil || res.Spec.Partitions == nil {
		return nil, nil
	}
	desired := *res.Spec.Partitions
	current := int32(len(state.Partitions))

	switch {
	case desired > current:
		return &desired, nil
	case desired < current:
		return nil, ctlerrors.NotSupportedf("Decreasing partitions not supported")
	default:
		return nil, nil
	}
}
