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

	"golang.org/x/sync/errgroup"

	kafkatopicv1alpha1 "github.com/deckhouse/kafka-topic-operator/api/v1alpha1"
	"github.com/deckhouse/kafka-topic-operator/internal/kafkaadmin"
	"github.com/deckhouse/kafka-topic-operator/internal/metrics"
	"github.com/deckhouse/kafka-topic-operator/internal/model"
)

// describedItem is one resource's joined describeTopics/describeConfigs
// outcome (spec.md §4.4): state is nil when err is set.
type describedItem struct {
	item      *kafkatopicv1alpha1.KafkaTopic
	topicName string
	state     *model.TopicState
	err       error
}

// describeAll fans describeTopics and describeConfigs out concurrently over
// one wire round trip each (spec.md §4.4) and joins the results per topic
// name. A topic describe error takes precedence over a config describe
// error for the same name, matching "the first exception encountered" read
// of spec.md's Java-flavored description.
func (c *Controller) describeAll(ctx context.Context, items []*kafkatopicv1alpha1.KafkaTopic) ([]describedItem, error) {
	if len(items) == 0 {
		return nil, nil
	}

	names := make([]string, len(items))
	for i, it := range items {
		names[i] = topicNameOf(it)
	}

	var topicResults map[string]kafkaadmin.DescribeTopicResult
	var configResults map[string]kafkaadmin.DescribeConfigsResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		topicResults = c.admin.DescribeTopics(gctx, names)
		metrics.ObserveAdminCall("describeTopics", start)
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		configResults = c.admin.DescribeConfigs(gctx, kafkaadmin.ResourceKindTopic, names)
		metrics.ObserveAdminCall("describeConfigs", start)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := checkInterrupted(ctx); err != nil {
		return nil, err
	}

	described := make([]describedItem, 0, len(items))
	for i, it := range items {
		name := names[i]
		tr := topicResults[name]
		if tr.Err != nil {
			described = append(described, describedItem{item: it, topicName: name, err: tr.Err})
			continue
		}

		cr := configResults[name]
		if cr.Err != nil {
			described = append(described, describedItem{item: it, topicName: name, err: cr.Err})
			continue
		}

		state := tr.State
		state.Config = cr.Config
		described = append(described, describedItem{item: it, topicName: name, state: state})
	}
	return described, nil
}
