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
)

// createMissing submits createTopics for every item whose describe failed
// with UnknownTopicOrPartition (spec.md §4.5). A concurrent TopicExists is
// normalized to success, since another reconciler or a previous partial
// batch may have already created it (spec.md §4.2 step 8, §7).
func (c *Controller) createMissing(ctx context.Context, missing []describedItem, bs *batchState) {
	if len(missing) == 0 {
		return
	}

	specs := make([]kafkaadmin.NewTopicSpec, 0, len(missing))
	byName := make(map[string]describedItem, len(missing))
	for _, di := range missing {
		spec, err := newTopicSpecFrom(di.topicName, di.item)
		if err != nil {
			bs.outcomes.Fail(di.item, err)
			continue
		}
		specs = append(specs, spec)
		byName[di.topicName] = di
	}
	if len(specs) == 0 {
		return
	}

	start := time.Now()
	results := c.admin.CreateTopics(ctx, specs)
	metrics.ObserveAdminCall("createTopics", start)

	for name, di := range byName {
		res := results[name]
		if res.Err != nil {
			if kind, ok := ctlerrors.KafkaKind(res.Err); ok && kind == kafkaadmin.KindTopicExists {
				bs.outcomes.Succeed(di.item)
				bs.created[di.item] = true
				continue
			}
			bs.outcomes.Fail(di.item, res.Err)
			continue
		}
		bs.outcomes.Succeed(di.item)
		bs.created[di.item] = true
		if res.TopicID != "" {
			bs.topicID[di.item] = res.TopicID
		}
	}
}

// newTopicSpecFrom builds the createTopics request for one resource
// (spec.md §4.5): absent partitions/replicas fall back to broker defaults,
// and config values are stringified the way Kafka's admin API expects.
func newTopicSpecFrom(name string, res *kafkatopicv1alpha1.KafkaTopic) (kafkaadmin.NewTopicSpec, error) {
	spec := kafkaadmin.NewTopicSpec{
		Name:       name,
		Partitions: kafkaadmin.BrokerDefault,
		Replicas:   kafkaadmin.BrokerDefault,
	}
	if res.Spec == nil {
		return spec, nil
	}
	if res.Spec.Partitions != nil {
		spec.Partitions = int(*res.Spec.Partitions)
	}
	if res.Spec.Replicas != nil {
		spec.Replicas = int(*res.Spec.Replicas)
	}
	config, err := stringifyConfig(res.Spec.Config)
	if err != nil {
		return kafkaadmin.NewTopicSpec{}, err
	}
	spec.Config = config
	return spec, nil
}

// stringifyConfig renders every requested config entry into Kafka's wire
// form, failing closed on any value that is neither a scalar nor a list of
// scalars (spec.md §4.5: "any other JSON kind is an InvalidResource error
// before any admin call is made").
func stringifyConfig(config map[string]kafkatopicv1alpha1.ConfigValue) (map[string]string, error) {
	if len(config) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(config))
	for key, v := range config {
		if !v.IsValid() {
			return nil, ctlerrors.InvalidResourcef("config key %q has an unsupported value", key)
		}
		out[key] = v.String()
	}
	return out, nil
}
