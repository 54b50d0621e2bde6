package topicctl

import (
	"context"
	"testing"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/deckhouse/kafka-topic-operator/api/objutilv1"
	kafkatopicv1alpha1 "github.com/deckhouse/kafka-topic-operator/api/v1alpha1"
	"github.com/deckhouse/kafka-topic-operator/internal/ctlerrors"
	"github.com/deckhouse/kafka-topic-operator/internal/kafkaadmin"
	"github.com/deckhouse/kafka-topic-operator/internal/kafkaadmin/stub"
	"github.com/deckhouse/kafka-topic-operator/internal/model"
)

func newDeletingTopic(name string, mutate func(*kafkatopicv1alpha1.KafkaTopic)) *kafkatopicv1alpha1.KafkaTopic {
	now := metav1.Now()
	return newTopic("default", name, func(r *kafkatopicv1alpha1.KafkaTopic) {
		r.DeletionTimestamp = &now
		r.Finalizers = []string{kafkatopicv1alpha1.FinalizerName}
		if mutate != nil {
			mutate(r)
		}
	})
}

func TestHandleDeletionsUnmanagedJustRemovesFinalizer(t *testing.T) {
	res := newDeletingTopic("t1", func(r *kafkatopicv1alpha1.KafkaTopic) {
		r.Annotations = map[string]string{kafkatopicv1alpha1.ManagedAnnotation: "false"}
	})
	c, err := NewController(nil, newFakeStore(t, res), stub.New(), disabledRebalancer(), newTestConfig())
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	bs := newBatchState()

	c.handleDeletions(context.Background(), []*kafkatopicv1alpha1.KafkaTopic{res}, bs)

	outcome, ok := bs.outcomes.Get(res)
	if !ok || !outcome.IsOk() {
		t.Fatalf("expected success, got %+v ok=%v", outcome, ok)
	}
	if objutilv1.HasFinalizer(res, kafkatopicv1alpha1.FinalizerName) {
		t.Fatal("expected finalizer removed")
	}
}

func TestHandleDeletionsManagedDeletesTopicAndRemovesFinalizer(t *testing.T) {
	s := stub.New()
	createResult := s.CreateTopics(context.Background(), []kafkaadmin.NewTopicSpec{{Name: "t1", Partitions: 1, Replicas: 1}})
	if err := createResult["t1"].Err; err != nil {
		t.Fatalf("seeding topic: %v", err)
	}

	res := newDeletingTopic("t1", nil)
	c, err := NewController(nil, newFakeStore(t, res), s, disabledRebalancer(), newTestConfig())
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	bs := newBatchState()

	c.handleDeletions(context.Background(), []*kafkatopicv1alpha1.KafkaTopic{res}, bs)

	outcome, ok := bs.outcomes.Get(res)
	if !ok || !outcome.IsOk() {
		t.Fatalf("expected success, got %+v ok=%v", outcome, ok)
	}
	if objutilv1.HasFinalizer(res, kafkatopicv1alpha1.FinalizerName) {
		t.Fatal("expected finalizer removed")
	}
	if _, exists := describeState(s, "t1"); exists {
		t.Fatal("expected topic deleted from cluster")
	}
}

func TestFinishDeletionAlreadyGoneSucceeds(t *testing.T) {
	res := newDeletingTopic("t1", nil)
	c, err := NewController(nil, newFakeStore(t, res), stub.New(), disabledRebalancer(), newTestConfig())
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	bs := newBatchState()

	c.finishDeletion(context.Background(), res, ctlerrors.KafkaErrorf(kafkaadmin.KindUnknownTopicOrPartition, "topic t1 not found"), bs)

	outcome, ok := bs.outcomes.Get(res)
	if !ok || !outcome.IsOk() {
		t.Fatalf("expected success, got %+v ok=%v", outcome, ok)
	}
}

func TestFinishDeletionTopicDeletionDisabledFails(t *testing.T) {
	res := newDeletingTopic("t1", nil)
	cfg := newTestConfig()
	c, err := NewController(nil, newFakeStore(t, res), stub.New(), disabledRebalancer(), cfg)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	bs := newBatchState()

	deleteErr := ctlerrors.KafkaErrorf(kafkaadmin.KindTopicDeletionDisabled, "delete.topic.enable is false")
	c.finishDeletion(context.Background(), res, deleteErr, bs)

	outcome, ok := bs.outcomes.Get(res)
	if !ok || outcome.IsOk() {
		t.Fatalf("expected failure outcome, got %+v ok=%v", outcome, ok)
	}
}

func describeState(s *stub.Client, name string) (*model.TopicState, bool) {
	res := s.DescribeTopics(context.Background(), []string{name})[name]
	if res.Err != nil {
		return nil, false
	}
	return res.State, true
}
