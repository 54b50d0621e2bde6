package topicctl

import (
	"errors"
	"testing"
	"time"

	kafkatopicv1alpha1 "github.com/deckhouse/kafka-topic-operator/api/v1alpha1"
	"github.com/deckhouse/kafka-topic-operator/internal/ctlerrors"
	"github.com/deckhouse/kafka-topic-operator/internal/model"
	"github.com/deckhouse/kafka-topic-operator/internal/ownership"
)

func TestValidateUnchangedTopicNameAllowsFirstObservation(t *testing.T) {
	res := newTopic("default", "t1", nil)
	if err := validateUnchangedTopicName(res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateUnchangedTopicNameAllowsMatchingName(t *testing.T) {
	res := newTopic("default", "t1", func(r *kafkatopicv1alpha1.KafkaTopic) {
		r.Status = &kafkatopicv1alpha1.KafkaTopicStatus{TopicName: "t1"}
	})
	if err := validateUnchangedTopicName(res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateUnchangedTopicNameRejectsDrift(t *testing.T) {
	res := newTopic("default", "t1", func(r *kafkatopicv1alpha1.KafkaTopic) {
		r.Status = &kafkatopicv1alpha1.KafkaTopicStatus{TopicName: "old-name"}
		r.Spec.TopicName = "new-name"
	})

	err := validateUnchangedTopicName(res)
	if err == nil {
		t.Fatal("expected error on topicName drift")
	}
	if !errors.Is(err, ctlerrors.ErrNotSupported) {
		t.Fatalf("expected ErrNotSupported, got %v", err)
	}
}

func TestWrapConflictTranslatesOwnershipConflict(t *testing.T) {
	owner := model.KubeRef{Namespace: "default", Name: "winner", CreationTimestamp: time.Unix(1, 0)}
	err := wrapConflict(&ownership.ErrConflict{Owner: owner})

	if !errors.Is(err, ctlerrors.ErrResourceConflict) {
		t.Fatalf("expected ErrResourceConflict, got %v", err)
	}
	if got := err.Error(); got == "" {
		t.Fatal("expected non-empty message")
	}
}

func TestWrapConflictPassesThroughOtherErrors(t *testing.T) {
	other := errors.New("boom")
	err := wrapConflict(other)
	if errors.Is(err, ctlerrors.ErrResourceConflict) {
		t.Fatal("did not expect ErrResourceConflict for an unrelated error")
	}
	if !errors.Is(err, ctlerrors.ErrInternal) {
		t.Fatalf("expected ErrInternal wrapping, got %v", err)
	}
}
