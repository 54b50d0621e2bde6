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

// Package kafkaadmin is the thin contract over the Kafka admin protocol the
// controller depends on (spec.md §4.1, §6): describe cluster/topics/configs,
// create topics, create partitions, incrementally alter configs, list
// partition reassignments, delete topics. Every batch operation is submitted
// to the broker in one wire request and returns one result per topic name.
package kafkaadmin

import (
	"context"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// defaultTimeout is used when the caller's context carries no deadline.
const defaultTimeout = 10 * time.Second

// AdminClient is the admin façade the controller core depends on. It is
// satisfied by *Client and, in tests, by stub.Client.
type AdminClient interface {
	Close()
	DescribeCluster(ctx context.Context) (ClusterMetadata, error)
	DescribeTopics(ctx context.Context, names []string) map[string]DescribeTopicResult
	DescribeConfigs(ctx context.Context, kind ResourceKind, names []string) map[string]DescribeConfigsResult
	CreateTopics(ctx context.Context, specs []NewTopicSpec) map[string]CreateTopicResult
	CreatePartitions(ctx context.Context, increaseTo map[string]int32) map[string]error
	IncrementalAlterConfigs(ctx context.Context, ops map[string][]ConfigOp) map[string]error
	ListPartitionReassignments(ctx context.Context, names []string) (map[string][]ReassignmentState, error)
	DeleteTopics(ctx context.Context, names []string) map[string]error
}

// ResourceKind selects which kind of resource DescribeConfigs targets
// (spec.md §6: `describeConfigs(BROKER|TOPIC)`).
type ResourceKind int

const (
	ResourceKindTopic ResourceKind = iota
	ResourceKindBroker
)

func (k ResourceKind) ckgType() (kafka.ResourceType, error) {
	switch k {
	case ResourceKindTopic:
		return kafka.ResourceTopic, nil
	case ResourceKindBroker:
		return kafka.ResourceBroker, nil
	default:
		return 0, fmt.Errorf("unknown resource kind %d", k)
	}
}

// Config holds Client connection parameters.
type Config struct {
	BootstrapServers string
	SecurityProtocol string
	SASLMechanism    string
	SASLUsername     string
	SASLPassword     string
	SSLCALocation    string
}

// Client is the production AdminClient, backed by librdkafka via
// confluent-kafka-go.
type Client struct {
	c *kafka.AdminClient
}

// NewClient dials the cluster's admin API.
func NewClient(cfg Config) (*Client, error) {
	kafkaCfg := &kafka.ConfigMap{
		"bootstrap.servers": cfg.BootstrapServers,
	}
	if cfg.SecurityProtocol != "" {
		_ = kafkaCfg.SetKey("security.protocol", cfg.SecurityProtocol)
	}
	if cfg.SSLCALocation != "" {
		_ = kafkaCfg.SetKey("ssl.ca.location", cfg.SSLCALocation)
	}
	if cfg.SASLMechanism != "" {
		_ = kafkaCfg.SetKey("sasl.mechanism", cfg.SASLMechanism)
		_ = kafkaCfg.SetKey("sasl.username", cfg.SASLUsername)
		_ = kafkaCfg.SetKey("sasl.password", cfg.SASLPassword)
	}

	admin, err := kafka.NewAdminClient(kafkaCfg)
	if err != nil {
		return nil, fmt.Errorf("[librdkafka] %w", err)
	}
	return &Client{c: admin}, nil
}

// Close releases the underlying librdkafka handle.
func (c *Client) Close() {
	c.c.Close()
}

func timeoutFrom(ctx context.Context) time.Duration {
	if dl, ok := ctx.Deadline(); ok {
		return time.Until(dl)
	}
	return defaultTimeout
}

var _ AdminClient = (*Client)(nil)
