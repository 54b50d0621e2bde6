package topicctl

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	kafkatopicv1alpha1 "github.com/deckhouse/kafka-topic-operator/api/v1alpha1"
	"github.com/deckhouse/kafka-topic-operator/internal/kafkaadmin"
	"github.com/deckhouse/kafka-topic-operator/internal/kafkaadmin/stub"
	"github.com/deckhouse/kafka-topic-operator/internal/model"
	"github.com/deckhouse/kafka-topic-operator/internal/rebalancer"
)

func TestPseudoMismatchTrueWhenReassignmentConvergesToDesired(t *testing.T) {
	reassignments := []kafkaadmin.ReassignmentState{
		{PartitionID: 0, Replicas: []int32{1, 2, 3}, AddingReplicas: []int32{3}},
	}
	if !pseudoMismatch(&model.TopicState{}, reassignments, 3) {
		t.Fatal("expected pseudo-mismatch when the in-flight reassignment already targets desired RF")
	}
}

func TestPseudoMismatchFalseWithNoReassignments(t *testing.T) {
	if pseudoMismatch(&model.TopicState{}, nil, 3) {
		t.Fatal("expected no pseudo-mismatch with no in-flight reassignment")
	}
}

func TestPseudoMismatchFalseWhenTargetDiffers(t *testing.T) {
	reassignments := []kafkaadmin.ReassignmentState{
		{PartitionID: 0, Replicas: []int32{1, 2}, AddingReplicas: nil},
	}
	if pseudoMismatch(&model.TopicState{}, reassignments, 3) {
		t.Fatal("expected mismatch to remain when reassignment target differs from desired")
	}
}

func TestEffectiveMinISRFallsBackToTopicConfig(t *testing.T) {
	s := stub.New(1)
	s.SeedTopic(model.TopicState{Name: "t1", Partitions: []model.PartitionState{partitionState(0, 1)}},
		map[string]model.ConfigEntry{"min.insync.replicas": {Value: "2"}})
	c, err := NewController(nil, newFakeStore(t), s, disabledRebalancer(), newTestConfig())
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	got, err := c.effectiveMinISR(context.Background(), "t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestEffectiveMinISRFallsBackToDefault(t *testing.T) {
	c, err := NewController(nil, newFakeStore(t), stub.New(), disabledRebalancer(), newTestConfig())
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	got, err := c.effectiveMinISR(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != defaultMinISR {
		t.Fatalf("expected default %d, got %d", defaultMinISR, got)
	}
}

func TestReconcileReplicaChangesFailsWhenRebalancerDisabled(t *testing.T) {
	s := stub.New(1)
	s.SeedTopic(model.TopicState{Name: "t1", Partitions: []model.PartitionState{partitionState(0, 1)}}, nil)
	c, err := NewController(nil, newFakeStore(t), s, disabledRebalancer(), newTestConfig())
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	desired := int32(3)
	res := newTopic("default", "t1", func(r *kafkatopicv1alpha1.KafkaTopic) {
		r.Spec.Replicas = &desired
	})
	described := map[*kafkatopicv1alpha1.KafkaTopic]*model.TopicState{
		res: {Name: "t1", Partitions: []model.PartitionState{partitionState(0, 1)}},
	}
	bs := newBatchState()

	c.reconcileReplicaChanges(context.Background(), []*kafkatopicv1alpha1.KafkaTopic{res}, described, bs)

	outcome, ok := bs.outcomes.Get(res)
	if !ok || outcome.IsOk() {
		t.Fatalf("expected failure when rebalancer is disabled, got %+v ok=%v", outcome, ok)
	}
}

func TestReconcileReplicaChangesSubmitsPendingChange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var changes []rebalancer.Change
		if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		results := make([]rebalancer.ChangeResult, len(changes))
		for i, ch := range changes {
			results[i] = rebalancer.ChangeResult{Topic: ch.Topic, Ongoing: true, SessionID: "session-1"}
		}
		json.NewEncoder(w).Encode(results)
	}))
	defer server.Close()

	s := stub.New(1)
	s.SeedTopic(model.TopicState{Name: "t1", Partitions: []model.PartitionState{partitionState(0, 1)}}, nil)
	cfg := newTestConfig()
	cfg.skipClusterReview = true
	c, err := NewController(nil, newFakeStore(t), s, rebalancer.New(server.URL, true), cfg)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	desired := int32(3)
	res := newTopic("default", "t1", func(r *kafkatopicv1alpha1.KafkaTopic) {
		r.Spec.Replicas = &desired
	})
	described := map[*kafkatopicv1alpha1.KafkaTopic]*model.TopicState{
		res: {Name: "t1", Partitions: []model.PartitionState{partitionState(0, 1)}},
	}
	bs := newBatchState()

	c.reconcileReplicaChanges(context.Background(), []*kafkatopicv1alpha1.KafkaTopic{res}, described, bs)

	outcome, ok := bs.outcomes.Get(res)
	if !ok || !outcome.IsOk() {
		t.Fatalf("expected success, got %+v ok=%v", outcome, ok)
	}
	update, ok := bs.replicaUpdate[res]
	if !ok || update.status == nil {
		t.Fatal("expected a replicasChange status update")
	}
	if update.status.State != kafkatopicv1alpha1.ReplicasChangeOngoing || update.status.SessionID != "session-1" {
		t.Fatalf("unexpected replicasChange status: %+v", update.status)
	}
}

func TestReconcileReplicaChangesDetectsCompletion(t *testing.T) {
	c, err := NewController(nil, newFakeStore(t), stub.New(), disabledRebalancer(), newTestConfig())
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	desired := int32(3)
	res := newTopic("default", "t1", func(r *kafkatopicv1alpha1.KafkaTopic) {
		r.Spec.Replicas = &desired
		r.Status = &kafkatopicv1alpha1.KafkaTopicStatus{
			ReplicasChange: &kafkatopicv1alpha1.ReplicasChangeStatus{State: kafkatopicv1alpha1.ReplicasChangeOngoing, TargetReplicas: 3},
		}
	})
	described := map[*kafkatopicv1alpha1.KafkaTopic]*model.TopicState{
		res: {Name: "t1", Partitions: []model.PartitionState{partitionState(0, 1, 2, 3)}},
	}
	bs := newBatchState()

	c.reconcileReplicaChanges(context.Background(), []*kafkatopicv1alpha1.KafkaTopic{res}, described, bs)

	update, ok := bs.replicaUpdate[res]
	if !ok || update.status != nil {
		t.Fatalf("expected replicasChange to be cleared, got %+v ok=%v", update, ok)
	}
}

func TestReconcileReplicaChangesMixedRFStaysTrackedViaPseudoMismatch(t *testing.T) {
	s := stub.New(1)
	s.SeedReassignment("t1", kafkaadmin.ReassignmentState{
		PartitionID: 1, Replicas: []int32{1, 2, 3}, AddingReplicas: []int32{3},
	})
	c, err := NewController(nil, newFakeStore(t), s, rebalancer.New("http://unused.invalid", true), newTestConfig())
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	desired := int32(3)
	res := newTopic("default", "t1", func(r *kafkatopicv1alpha1.KafkaTopic) {
		r.Spec.Replicas = &desired
		r.Status = &kafkatopicv1alpha1.KafkaTopicStatus{
			ReplicasChange: &kafkatopicv1alpha1.ReplicasChangeStatus{
				State: kafkatopicv1alpha1.ReplicasChangeOngoing, SessionID: "sess-1", TargetReplicas: 3,
			},
		}
	})
	// Partition 0 has already converged to RF 3; partition 1 is still mid
	// reassignment at RF 2, so ReplicationFactor reports ok=false.
	described := map[*kafkatopicv1alpha1.KafkaTopic]*model.TopicState{
		res: {Name: "t1", Partitions: []model.PartitionState{
			partitionState(0, 1, 2, 3),
			partitionState(1, 1, 2),
		}},
	}
	bs := newBatchState()

	c.reconcileReplicaChanges(context.Background(), []*kafkatopicv1alpha1.KafkaTopic{res}, described, bs)

	outcome, ok := bs.outcomes.Get(res)
	if !ok || !outcome.IsOk() {
		t.Fatalf("expected success, got %+v ok=%v", outcome, ok)
	}
	if _, ok := bs.replicaUpdate[res]; ok {
		t.Fatal("expected status.replicasChange to be left untouched while the reassignment converges")
	}
}
