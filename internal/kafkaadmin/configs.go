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

// ConfigOpType selects the incremental-alter-configs operation kind
// (spec.md §4.8).
type ConfigOpType int

const (
	ConfigOpSet ConfigOpType = iota
	ConfigOpDelete
)

// ConfigOp is one key-level change to a topic's dynamic configuration.
type ConfigOp struct {
	Key   string
	Value string
	Type  ConfigOpType
}

func (op ConfigOp) ckgOpType() kafka.AlterConfigOpType {
	if op.Type == ConfigOpDelete {
		return kafka.AlterConfigOpTypeDelete
	}
	return kafka.AlterConfigOpTypeSet
}

// IncrementalAlterConfigs submits every topic's op list in one wire request
// (spec.md §4.8) and returns one error (or nil) per topic name.
func (c *Client) IncrementalAlterConfigs(ctx context.Context, ops map[string][]ConfigOp) map[string]error {
	results := make(map[string]error, len(ops))
	if len(ops) == 0 {
		return results
	}

	resources := make([]kafka.ConfigResource, 0, len(ops))
	for name, topicOps := range ops {
		entries := make([]kafka.ConfigEntry, len(topicOps))
		for i, op := range topicOps {
			entries[i] = kafka.ConfigEntry{Name: op.Key, Value: op.Value, IncrementalOperation: op.ckgOpType()}
		}
		resources = append(resources, kafka.ConfigResource{
			Type:   kafka.ResourceTopic,
			Name:   name,
			Config: entries,
		})
	}

	resourceResults, err := c.c.IncrementalAlterConfigs(ctx, resources)
	if err != nil {
		wrapped := wrapKafkaError(err)
		for name := range ops {
			results[name] = wrapped
		}
		return results
	}
	for _, r := range resourceResults {
		if r.Error.Code() != kafka.ErrNoError {
			results[r.Name] = wrapKafkaError(r.Error)
			continue
		}
		results[r.Name] = nil
	}
	return results
}
