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

// Package stub is an in-memory kafkaadmin.AdminClient for controller tests,
// avoiding a real broker (mirrors the shape of the retrieval pack's
// DataDog-kafka-kit kafkaadmin/stub package).
package stub

import (
	"context"
	"sync"

	"github.com/deckhouse/kafka-topic-operator/internal/ctlerrors"
	"github.com/deckhouse/kafka-topic-operator/internal/kafkaadmin"
	"github.com/deckhouse/kafka-topic-operator/internal/model"
)

func kafkaUnknownTopicOrPartition(name string) error {
	return ctlerrors.KafkaErrorf(kafkaadmin.KindUnknownTopicOrPartition, "topic %s not found", name)
}

func kafkaTopicExists(name string) error {
	return ctlerrors.KafkaErrorf(kafkaadmin.KindTopicExists, "topic %s already exists", name)
}

// Client is an in-memory AdminClient backed by a plain map of topic state.
// Every method is safe for the sequential, single-batch-at-a-time use the
// controller makes of it (spec.md §5); it takes its own lock only for
// convenience in table-driven tests that construct it once and reuse it.
type Client struct {
	mu             sync.Mutex
	topics         map[string]*model.TopicState
	configs        map[string]map[string]model.ConfigEntry
	reassignments  map[string][]kafkaadmin.ReassignmentState
	brokerIDs      []int32
	nextTopicID    int
	CreateTopicsFn func([]kafkaadmin.NewTopicSpec) map[string]kafkaadmin.CreateTopicResult
}

// New returns an empty stub with the given live broker IDs.
func New(brokerIDs ...int32) *Client {
	return &Client{
		topics:        make(map[string]*model.TopicState),
		configs:       make(map[string]map[string]model.ConfigEntry),
		reassignments: make(map[string][]kafkaadmin.ReassignmentState),
		brokerIDs:     brokerIDs,
	}
}

// SeedTopic installs a topic as if it already existed in the cluster.
func (c *Client) SeedTopic(state model.TopicState, config map[string]model.ConfigEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := state
	c.topics[state.Name] = &t
	c.configs[state.Name] = config
}

// SeedReassignment installs an in-progress reassignment for a topic.
func (c *Client) SeedReassignment(topic string, states ...kafkaadmin.ReassignmentState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reassignments[topic] = states
}

func (c *Client) Close() {}

func (c *Client) DescribeCluster(context.Context) (kafkaadmin.ClusterMetadata, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return kafkaadmin.ClusterMetadata{BrokerIDs: append([]int32(nil), c.brokerIDs...)}, nil
}

func (c *Client) DescribeTopics(_ context.Context, names []string) map[string]kafkaadmin.DescribeTopicResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	results := make(map[string]kafkaadmin.DescribeTopicResult, len(names))
	for _, name := range names {
		state, ok := c.topics[name]
		if !ok {
			results[name] = kafkaadmin.DescribeTopicResult{
				Err: kafkaUnknownTopicOrPartition(name),
			}
			continue
		}
		clone := *state
		results[name] = kafkaadmin.DescribeTopicResult{State: &clone}
	}
	return results
}

func (c *Client) DescribeConfigs(_ context.Context, _ kafkaadmin.ResourceKind, names []string) map[string]kafkaadmin.DescribeConfigsResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	results := make(map[string]kafkaadmin.DescribeConfigsResult, len(names))
	for _, name := range names {
		cfg, ok := c.configs[name]
		if !ok {
			results[name] = kafkaadmin.DescribeConfigsResult{Config: map[string]model.ConfigEntry{}}
			continue
		}
		results[name] = kafkaadmin.DescribeConfigsResult{Config: cfg}
	}
	return results
}

func (c *Client) CreateTopics(_ context.Context, specs []kafkaadmin.NewTopicSpec) map[string]kafkaadmin.CreateTopicResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.CreateTopicsFn != nil {
		return c.CreateTopicsFn(specs)
	}

	results := make(map[string]kafkaadmin.CreateTopicResult, len(specs))
	for _, spec := range specs {
		if _, exists := c.topics[spec.Name]; exists {
			results[spec.Name] = kafkaadmin.CreateTopicResult{Err: kafkaTopicExists(spec.Name)}
			continue
		}
		partitions := spec.Partitions
		if partitions <= 0 {
			partitions = 1
		}
		replicas := spec.Replicas
		if replicas <= 0 {
			replicas = 1
		}
		parts := make([]model.PartitionState, partitions)
		for i := range parts {
			replicaSet := make([]int32, replicas)
			for j := range replicaSet {
				replicaSet[j] = int32(j + 1)
			}
			parts[i] = model.PartitionState{ID: int32(i), Replicas: replicaSet}
		}
		c.nextTopicID++
		c.topics[spec.Name] = &model.TopicState{Name: spec.Name, TopicID: syntheticTopicID(c.nextTopicID), Partitions: parts}
		entries := make(map[string]model.ConfigEntry, len(spec.Config))
		for k, v := range spec.Config {
			entries[k] = model.ConfigEntry{Value: v, Source: model.ConfigSourceDynamicTopic}
		}
		c.configs[spec.Name] = entries
		results[spec.Name] = kafkaadmin.CreateTopicResult{TopicID: c.topics[spec.Name].TopicID}
	}
	return results
}

func (c *Client) CreatePartitions(_ context.Context, increaseTo map[string]int32) map[string]error {
	c.mu.Lock()
	defer c.mu.Unlock()

	results := make(map[string]error, len(increaseTo))
	for name, target := range increaseTo {
		state, ok := c.topics[name]
		if !ok {
			results[name] = kafkaUnknownTopicOrPartition(name)
			continue
		}
		rf := len(state.Partitions[0].Replicas)
		for i := len(state.Partitions); i < int(target); i++ {
			replicaSet := make([]int32, rf)
			for j := range replicaSet {
				replicaSet[j] = int32(j + 1)
			}
			state.Partitions = append(state.Partitions, model.PartitionState{ID: int32(i), Replicas: replicaSet})
		}
		results[name] = nil
	}
	return results
}

func (c *Client) IncrementalAlterConfigs(_ context.Context, ops map[string][]kafkaadmin.ConfigOp) map[string]error {
	c.mu.Lock()
	defer c.mu.Unlock()

	results := make(map[string]error, len(ops))
	for name, topicOps := range ops {
		if _, ok := c.topics[name]; !ok {
			results[name] = kafkaUnknownTopicOrPartition(name)
			continue
		}
		if c.configs[name] == nil {
			c.configs[name] = make(map[string]model.ConfigEntry)
		}
		for _, op := range topicOps {
			if op.Type == kafkaadmin.ConfigOpDelete {
				delete(c.configs[name], op.Key)
				continue
			}
			c.configs[name][op.Key] = model.ConfigEntry{Value: op.Value, Source: model.ConfigSourceDynamicTopic}
		}
		results[name] = nil
	}
	return results
}

func (c *Client) ListPartitionReassignments(_ context.Context, names []string) (map[string][]kafkaadmin.ReassignmentState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	results := make(map[string][]kafkaadmin.ReassignmentState, len(names))
	for _, name := range names {
		if states, ok := c.reassignments[name]; ok {
			results[name] = states
		}
	}
	return results, nil
}

func (c *Client) DeleteTopics(_ context.Context, names []string) map[string]error {
	c.mu.Lock()
	defer c.mu.Unlock()

	results := make(map[string]error, len(names))
	for _, name := range names {
		if _, ok := c.topics[name]; !ok {
			results[name] = kafkaUnknownTopicOrPartition(name)
			continue
		}
		delete(c.topics, name)
		delete(c.configs, name)
		results[name] = nil
	}
	return results
}

func syntheticTopicID(n int) string {
	const alphabet = "0123456789abcdef"
	id := make([]byte, 32)
	for i := range id {
		id[i] = alphabet[(n+i)%len(alphabet)]
	}
	return string(id)
}

var _ kafkaadmin.AdminClient = (*Client)(nil)
