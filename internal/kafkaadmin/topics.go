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

// BrokerDefault requests the broker's configured default for partitions or
// replication factor (spec.md §4.5).
const BrokerDefault = -1

// NewTopicSpec is the create-topic request for one topic.
type NewTopicSpec struct {
	Name       string
	Partitions int
	Replicas   int
	Config     map[string]string
}

// CreateTopicResult is one topic's outcome from createTopics: the topic ID
// the cluster assigned, or an error (spec.md §4.5).
type CreateTopicResult struct {
	TopicID string
	Err     error
}

// CreateTopics submits every spec in one wire request and returns one
// result per topic name.
func (c *Client) CreateTopics(ctx context.Context, specs []NewTopicSpec) map[string]CreateTopicResult {
	results := make(map[string]CreateTopicResult, len(specs))
	if len(specs) == 0 {
		return results
	}

	ckgSpecs := make([]kafka.TopicSpecification, len(specs))
	for i, s := range specs {
		ckgSpecs[i] = kafka.TopicSpecification{
			Topic:             s.Name,
			NumPartitions:     s.Partitions,
			ReplicationFactor: s.Replicas,
			Config:            s.Config,
		}
	}

	topicResults, err := c.c.CreateTopics(ctx, ckgSpecs)
	if err != nil {
		wrapped := wrapKafkaError(err)
		for _, s := range specs {
			results[s.Name] = CreateTopicResult{Err: wrapped}
		}
		return results
	}

	for _, r := range topicResults {
		if r.Error.Code() != kafka.ErrNoError {
			results[r.Topic] = CreateTopicResult{Err: wrapKafkaError(r.Error)}
			continue
		}
		results[r.Topic] = CreateTopicResult{TopicID: r.TopicId.String()}
	}
	return results
}

// CreatePartitions submits `increaseTo` (topic name -> target partition
// count) in one wire request (spec.md §4.5, §4.8 partition diff).
func (c *Client) CreatePartitions(ctx context.Context, increaseTo map[string]int32) map[string]error {
	results := make(map[string]error, len(increaseTo))
	if len(increaseTo) == 0 {
		return results
	}

	specs := make([]kafka.PartitionsSpecification, 0, len(increaseTo))
	for name, target := range increaseTo {
		specs = append(specs, kafka.PartitionsSpecification{Topic: name, IncreaseTo: int(target)})
	}

	topicResults, err := c.c.CreatePartitions(ctx, specs)
	if err != nil {
		wrapped := wrapKafkaError(err)
		for name := range increaseTo {
			results[name] = wrapped
		}
		return results
	}
	for _, r := range topicResults {
		if r.Error.Code() != kafka.ErrNoError {
			results[r.Topic] = wrapKafkaError(r.Error)
			continue
		}
		results[r.Topic] = nil
	}
	return results
}

// DeleteTopics submits names in one wire request (spec.md §4.6, §6).
func (c *Client) DeleteTopics(ctx context.Context, names []string) map[string]error {
	results := make(map[string]error, len(names))
	if len(names) == 0 {
		return results
	}

	topicResults, err := c.c.DeleteTopics(ctx, names)
	if err != nil {
		wrapped := wrapKafkaError(err)
		for _, name := range names {
			results[name] = wrapped
		}
		return results
	}
	for _, r := range topicResults {
		if r.Error.Code() != kafka.ErrNoError {
			results[r.Topic] = wrapKafkaError(r.Error)
			continue
		}
		results[r.Topic] = nil
	}
	return results
}
