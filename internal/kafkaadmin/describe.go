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

package kafkaadmin

import (
	"context"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"github.com/deckhouse/kafka-topic-operator/internal/ctlerrors"
	"github.com/deckhouse/kafka-topic-operator/internal/model"
)

// ClusterMetadata is the subset of describeCluster the controller needs: the
// live broker ID list, used by the replica-change min-isr fallback (spec.md
// §4.7 step 3, §9 open question on getClusterConfig).
type ClusterMetadata struct {
	BrokerIDs []int32
}

// DescribeTopicResult is one topic's outcome from a describeTopics call
// (spec.md §4.4): either an observed partition layout or an error.
type DescribeTopicResult struct {
	State *model.TopicState
	Err   error
}

// DescribeConfigsResult is one resource's outcome from a describeConfigs
// call.
type DescribeConfigsResult struct {
	Config map[string]model.ConfigEntry
	Err    error
}

// DescribeCluster returns the live broker IDs.
func (c *Client) DescribeCluster(ctx context.Context) (ClusterMetadata, error) {
	timeout := timeoutFrom(ctx)
	md, err := c.c.GetMetadata(nil, false, int(timeout.Milliseconds()))
	if err != nil {
		return ClusterMetadata{}, wrapKafkaError(err)
	}
	ids := make([]int32, 0, len(md.Brokers))
	for _, b := range md.Brokers {
		ids = append(ids, b.ID)
	}
	return ClusterMetadata{BrokerIDs: ids}, nil
}

// DescribeTopics fetches partition metadata for names in one round trip and
// splits the per-topic results (spec.md §4.4).
func (c *Client) DescribeTopics(ctx context.Context, names []string) map[string]DescribeTopicResult {
	results := make(map[string]DescribeTopicResult, len(names))
	timeout := timeoutFrom(ctx)

	md, err := c.c.GetMetadata(nil, true, int(timeout.Milliseconds()))
	if err != nil {
		wrapped := wrapKafkaError(err)
		for _, name := range names {
			results[name] = DescribeTopicResult{Err: wrapped}
		}
		return results
	}

	byName := make(map[string]kafka.TopicMetadata, len(md.Topics))
	for name, t := range md.Topics {
		byName[name] = t
	}

	for _, name := range names {
		t, ok := byName[name]
		if !ok {
			results[name] = DescribeTopicResult{Err: wrapKafkaError(kafka.NewError(kafka.ErrUnknownTopicOrPart, "topic not found", false))}
			continue
		}
		if t.Error.Code() != kafka.ErrNoError {
			results[name] = DescribeTopicResult{Err: wrapKafkaError(t.Error)}
			continue
		}
		results[name] = DescribeTopicResult{State: topicStateFrom(name, t)}
	}
	return results
}

func topicStateFrom(name string, t kafka.TopicMetadata) *model.TopicState {
	state := &model.TopicState{Name: name, Partitions: make([]model.PartitionState, 0, len(t.Partitions))}
	for _, p := range t.Partitions {
		state.Partitions = append(state.Partitions, model.PartitionState{
			ID:       p.ID,
			Leader:   p.Leader,
			Replicas: append([]int32(nil), p.Replicas...),
		})
	}
	return state
}

// DescribeConfigs fetches dynamic configuration for a set of topic or
// broker resource names.
func (c *Client) DescribeConfigs(ctx context.Context, kind ResourceKind, names []string) map[string]DescribeConfigsResult {
	results := make(map[string]DescribeConfigsResult, len(names))
	ckgType, err := kind.ckgType()
	if err != nil {
		for _, name := range names {
			results[name] = DescribeConfigsResult{Err: ctlerrors.Internalf("%w", err)}
		}
		return results
	}

	resources := make([]kafka.ConfigResource, len(names))
	for i, name := range names {
		resources[i] = kafka.ConfigResource{Type: ckgType, Name: name}
	}

	resourceResults, err := c.c.DescribeConfigs(ctx, resources)
	if err != nil {
		wrapped := wrapKafkaError(err)
		for _, name := range names {
			results[name] = DescribeConfigsResult{Err: wrapped}
		}
		return results
	}

	byName := make(map[string]kafka.ConfigResourceResult, len(resourceResults))
	for _, r := range resourceResults {
		byName[r.Name] = r
	}

	for _, name := range names {
		r, ok := byName[name]
		if !ok {
			continue
		}
		if r.Error.Code() != kafka.ErrNoError {
			results[name] = DescribeConfigsResult{Err: wrapKafkaError(r.Error)}
			continue
		}
		entries := make(map[string]model.ConfigEntry, len(r.Config))
		for key, v := range r.Config {
			entries[key] = model.ConfigEntry{Value: v.Value, Source: sourceOf(v.Source)}
		}
		results[name] = DescribeConfigsResult{Config: entries}
	}
	return results
}

func sourceOf(s kafka.ConfigSource) model.ConfigSource {
	switch s {
	case kafka.ConfigSourceDynamicTopic, kafka.ConfigSourceDynamicBroker:
		return model.ConfigSourceDynamicTopic
	case kafka.ConfigSourceDefault, kafka.ConfigSourceStaticBroker, kafka.ConfigSourceDefaultBroker:
		return model.ConfigSourceDefault
	default:
		return model.ConfigSourceUnknown
	}
}
