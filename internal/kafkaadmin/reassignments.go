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
)

// ReassignmentState is one partition's in-progress reassignment: the
// replicas being added and removed, used by the replica-change subsystem to
// filter pseudo-mismatches (spec.md §4.7 step 1).
type ReassignmentState struct {
	PartitionID      int32
	Replicas         []int32
	AddingReplicas   []int32
	RemovingReplicas []int32
}

// TargetReplicationFactor is the replication factor this reassignment is
// converging toward: current replicas minus those being removed.
func (r ReassignmentState) TargetReplicationFactor() int32 {
	removing := make(map[int32]struct{}, len(r.RemovingReplicas))
	for _, id := range r.RemovingReplicas {
		removing[id] = struct{}{}
	}
	var target int32
	for _, id := range r.Replicas {
		if _, ok := removing[id]; !ok {
			target++
		}
	}
	return target
}

// ListPartitionReassignments returns in-progress reassignments for the
// given topics, keyed by topic name (spec.md §6).
func (c *Client) ListPartitionReassignments(ctx context.Context, names []string) (map[string][]ReassignmentState, error) {
	results := make(map[string][]ReassignmentState, len(names))
	if len(names) == 0 {
		return results, nil
	}

	topics := make([]kafka.TopicPartition, 0, len(names))
	for _, name := range names {
		topics = append(topics, kafka.TopicPartition{Topic: &name, Partition: kafka.PartitionAny})
	}

	res, err := c.c.ListPartitionReassignments(ctx, &kafka.TopicPartitions{Partitions: topics})
	if err != nil {
		return nil, wrapKafkaError(err)
	}

	for _, pr := range res.PartitionReassignments {
		state := ReassignmentState{
			PartitionID:      pr.Partition,
			Replicas:         pr.Replicas,
			AddingReplicas:   pr.AddingReplicas,
			RemovingReplicas: pr.RemovingReplicas,
		}
		results[pr.Topic] = append(results[pr.Topic], state)
	}
	return results, nil
}
