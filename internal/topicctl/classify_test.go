package topicctl

import (
	"context"
	"testing"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/deckhouse/kafka-topic-operator/api/objutilv1"
	kafkatopicv1alpha1 "github.com/deckhouse/kafka-topic-operator/api/v1alpha1"
	"github.com/deckhouse/kafka-topic-operator/internal/kafkaadmin/stub"
)

func TestClassifyDropsUnmanagedAndSucceeds(t *testing.T) {
	cfg := newTestConfig()
	c, err := NewController(nil, newFakeStore(t), stub.New(), disabledRebalancer(), cfg)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	res := newTopic("default", "t1", func(r *kafkatopicv1alpha1.KafkaTopic) {
		r.Annotations = map[string]string{kafkatopicv1alpha1.ManagedAnnotation: "false"}
	})

	bs := newBatchState()

	proceed := c.classify(context.Background(), []*kafkatopicv1alpha1.KafkaTopic{res}, bs)
	if len(proceed) != 0 {
		t.Fatalf("expected unmanaged resource to be dropped, got %d", len(proceed))
	}
	outcome, ok := bs.outcomes.Get(res)
	if !ok || !outcome.IsOk() {
		t.Fatalf("expected unmanaged resource to succeed trivially, got %+v ok=%v", outcome, ok)
	}
}

func TestClassifySkipsPausedResource(t *testing.T) {
	cfg := newTestConfig()
	c, err := NewController(nil, newFakeStore(t), stub.New(), disabledRebalancer(), cfg)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	res := newTopic("default", "t1", func(r *kafkatopicv1alpha1.KafkaTopic) {
		r.Annotations = map[string]string{kafkatopicv1alpha1.PausedAnnotation: "true"}
	})
	bs := newBatchState()

	proceed := c.classify(context.Background(), []*kafkatopicv1alpha1.KafkaTopic{res}, bs)
	if len(proceed) != 0 {
		t.Fatalf("expected paused resource to be excluded from proceed, got %d", len(proceed))
	}
	if !bs.paused[res] {
		t.Fatal("expected resource marked paused")
	}
	outcome, ok := bs.outcomes.Get(res)
	if !ok || !outcome.IsOk() {
		t.Fatalf("expected paused resource to succeed trivially, got %+v ok=%v", outcome, ok)
	}
}

func TestClassifyRejectsTopicNameDrift(t *testing.T) {
	cfg := newTestConfig()
	c, err := NewController(nil, newFakeStore(t), stub.New(), disabledRebalancer(), cfg)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	res := newTopic("default", "t1", func(r *kafkatopicv1alpha1.KafkaTopic) {
		r.Status = &kafkatopicv1alpha1.KafkaTopicStatus{TopicName: "old"}
		r.Spec.TopicName = "new"
	})
	bs := newBatchState()

	proceed := c.classify(context.Background(), []*kafkatopicv1alpha1.KafkaTopic{res}, bs)
	if len(proceed) != 0 {
		t.Fatalf("expected item to be excluded, got %d", len(proceed))
	}
	outcome, _ := bs.outcomes.Get(res)
	if outcome.IsOk() {
		t.Fatal("expected failure outcome for topicName drift")
	}
}

func TestClassifyArbitratesOwnershipConflict(t *testing.T) {
	cfg := newTestConfig()
	c, err := NewController(nil, newFakeStore(t), stub.New(), disabledRebalancer(), cfg)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	older := newTopic("default", "older", func(r *kafkatopicv1alpha1.KafkaTopic) {
		r.Spec.TopicName = "shared-topic"
	})
	older.CreationTimestamp = metav1.Unix(1, 0)
	younger := newTopic("default", "younger", func(r *kafkatopicv1alpha1.KafkaTopic) {
		r.Spec.TopicName = "shared-topic"
	})
	younger.CreationTimestamp = metav1.Unix(2, 0)

	bs := newBatchState()
	proceed := c.classify(context.Background(), []*kafkatopicv1alpha1.KafkaTopic{older, younger}, bs)

	names := map[string]bool{}
	for _, r := range proceed {
		names[r.Name] = true
	}
	if !names["older"] {
		t.Fatal("expected older claimant to proceed")
	}
	if names["younger"] {
		t.Fatal("expected younger claimant to be excluded")
	}
	outcome, _ := bs.outcomes.Get(younger)
	if outcome.IsOk() {
		t.Fatal("expected younger claimant to fail with a conflict")
	}
}

func TestClassifyEnsuresFinalizerWhenEnabled(t *testing.T) {
	cfg := newTestConfig()
	res := newTopic("default", "t1", nil)
	c, err := NewController(nil, newFakeStore(t, res), stub.New(), disabledRebalancer(), cfg)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	bs := newBatchState()

	proceed := c.classify(context.Background(), []*kafkatopicv1alpha1.KafkaTopic{res}, bs)
	if len(proceed) != 1 {
		t.Fatalf("expected the resource to proceed, got %d", len(proceed))
	}
	if !objutilv1.HasFinalizer(res, kafkatopicv1alpha1.FinalizerName) {
		t.Fatal("expected finalizer to be added")
	}
}

func TestClassifySkipsFinalizerWhenDisabled(t *testing.T) {
	cfg := newTestConfig()
	cfg.useFinalizer = false
	res := newTopic("default", "t1", nil)
	c, err := NewController(nil, newFakeStore(t, res), stub.New(), disabledRebalancer(), cfg)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	bs := newBatchState()

	proceed := c.classify(context.Background(), []*kafkatopicv1alpha1.KafkaTopic{res}, bs)
	if len(proceed) != 1 {
		t.Fatalf("expected the resource to proceed, got %d", len(proceed))
	}
	if objutilv1.HasFinalizer(res, kafkatopicv1alpha1.FinalizerName) {
		t.Fatal("expected no finalizer to be added")
	}
}

func TestClassifyRemovesFinalizerWhenDisabled(t *testing.T) {
	cfg := newTestConfig()
	cfg.useFinalizer = false
	res := newTopic("default", "t1", func(r *kafkatopicv1alpha1.KafkaTopic) {
		objutilv1.AddFinalizer(r, kafkatopicv1alpha1.FinalizerName)
	})
	c, err := NewController(nil, newFakeStore(t, res), stub.New(), disabledRebalancer(), cfg)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	bs := newBatchState()

	proceed := c.classify(context.Background(), []*kafkatopicv1alpha1.KafkaTopic{res}, bs)
	if len(proceed) != 1 {
		t.Fatalf("expected the resource to proceed, got %d", len(proceed))
	}
	if objutilv1.HasFinalizer(res, kafkatopicv1alpha1.FinalizerName) {
		t.Fatal("expected pre-existing finalizer to be removed once the knob is disabled")
	}
}
