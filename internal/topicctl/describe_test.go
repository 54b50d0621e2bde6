package topicctl

import (
	"context"
	"testing"

	kafkatopicv1alpha1 "github.com/deckhouse/kafka-topic-operator/api/v1alpha1"
	"github.com/deckhouse/kafka-topic-operator/internal/ctlerrors"
	"github.com/deckhouse/kafka-topic-operator/internal/kafkaadmin"
	"github.com/deckhouse/kafka-topic-operator/internal/kafkaadmin/stub"
	"github.com/deckhouse/kafka-topic-operator/internal/model"
)

func newDescribeController(t *testing.T, admin kafkaadmin.AdminClient) *Controller {
	t.Helper()
	c, err := NewController(nil, newFakeStore(t), admin, disabledRebalancer(), newTestConfig())
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return c
}

func TestDescribeAllJoinsTopicAndConfigState(t *testing.T) {
	s := stub.New(1)
	s.SeedTopic(
		model.TopicState{Name: "t1", Partitions: []model.PartitionState{partitionState(0, 1, 2)}},
		map[string]model.ConfigEntry{"retention.ms": {Value: "3600000", Source: model.ConfigSourceDynamicTopic}},
	)
	c := newDescribeController(t, s)

	res := newTopic("default", "t1", nil)
	described, err := c.describeAll(context.Background(), []*kafkatopicv1alpha1.KafkaTopic{res})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(described) != 1 {
		t.Fatalf("expected one result, got %d", len(described))
	}
	di := described[0]
	if di.err != nil {
		t.Fatalf("unexpected item error: %v", di.err)
	}
	if di.state.Config["retention.ms"].Value != "3600000" {
		t.Fatalf("unexpected config value: %+v", di.state.Config)
	}
}

func TestDescribeAllReportsUnknownTopicOrPartition(t *testing.T) {
	c := newDescribeController(t, stub.New())
	res := newTopic("default", "missing", nil)

	described, err := c.describeAll(context.Background(), []*kafkatopicv1alpha1.KafkaTopic{res})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if described[0].err == nil {
		t.Fatal("expected describe error for missing topic")
	}
	kind, ok := ctlerrors.KafkaKind(described[0].err)
	if !ok || kind != kafkaadmin.KindUnknownTopicOrPartition {
		t.Fatalf("expected UnknownTopicOrPartition, got kind=%q ok=%v", kind, ok)
	}
}

func TestDescribeAllEmptyInputIsNoop(t *testing.T) {
	c := newDescribeController(t, stub.New())
	described, err := c.describeAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if described != nil {
		t.Fatalf("expected nil result for empty input, got %+v", described)
	}
}
