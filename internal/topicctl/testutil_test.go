package topicctl

import (
	"testing"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	kafkatopicv1alpha1 "github.com/deckhouse/kafka-topic-operator/api/v1alpha1"
	"github.com/deckhouse/kafka-topic-operator/internal/model"
	"github.com/deckhouse/kafka-topic-operator/internal/rebalancer"
	"github.com/deckhouse/kafka-topic-operator/internal/resourcestore"
)

// testConfig is a hand-rolled env.ConfigProvider stub, since every test in
// this package wants a different combination of knobs and env.GetConfig
// reads the process environment.
type testConfig struct {
	useFinalizer         bool
	skipClusterReview    bool
	cruiseControlEnabled bool
	alterable            map[string]struct{} // nil means ALL
	labelSelector        string
}

func newTestConfig() *testConfig {
	return &testConfig{useFinalizer: true}
}

func (c *testConfig) Namespace() string        { return "default" }
func (c *testConfig) BootstrapServers() string { return "kafka:9092" }
func (c *testConfig) UseFinalizer() bool       { return c.useFinalizer }
func (c *testConfig) SkipClusterConfigReview() bool { return c.skipClusterReview }
func (c *testConfig) EnableAdditionalMetrics() bool { return false }
func (c *testConfig) CruiseControlEnabled() bool    { return c.cruiseControlEnabled }
func (c *testConfig) CruiseControlBaseURL() string  { return "" }
func (c *testConfig) HealthProbeBindAddress() string { return "" }
func (c *testConfig) MetricsBindAddress() string     { return "" }
func (c *testConfig) TopicLabelSelector() string     { return c.labelSelector }

func (c *testConfig) IsConfigKeyAlterable(key string) bool {
	if c.alterable == nil {
		return true
	}
	_, ok := c.alterable[key]
	return ok
}

func newFakeStore(t *testing.T, objects ...client.Object) *resourcestore.Store {
	t.Helper()
	scheme := runtime.NewScheme()
	if err := kafkatopicv1alpha1.AddToScheme(scheme); err != nil {
		t.Fatalf("adding scheme: %v", err)
	}
	cl := fake.NewClientBuilder().
		WithScheme(scheme).
		WithObjects(objects...).
		WithStatusSubresource(&kafkatopicv1alpha1.KafkaTopic{}).
		Build()
	return resourcestore.New(cl)
}

func disabledRebalancer() *rebalancer.Client {
	return rebalancer.New("", false)
}

func newTopic(namespace, name string, mutate func(*kafkatopicv1alpha1.KafkaTopic)) *kafkatopicv1alpha1.KafkaTopic {
	res := &kafkatopicv1alpha1.KafkaTopic{
		ObjectMeta: metav1.ObjectMeta{
			Namespace:       namespace,
			Name:            name,
			UID:             "uid-" + name,
			ResourceVersion: "1",
			Generation:      1,
		},
		Spec: &kafkatopicv1alpha1.KafkaTopicSpec{},
	}
	if mutate != nil {
		mutate(res)
	}
	return res
}

func findReadyCondition(res *kafkatopicv1alpha1.KafkaTopic) *metav1.Condition {
	if res.Status == nil {
		return nil
	}
	for i := range res.Status.Conditions {
		if res.Status.Conditions[i].Type == kafkatopicv1alpha1.ConditionTypeReady {
			return &res.Status.Conditions[i]
		}
	}
	return nil
}

func warningCondition(res *kafkatopicv1alpha1.KafkaTopic) *metav1.Condition {
	if res.Status == nil {
		return nil
	}
	for i := range res.Status.Conditions {
		if res.Status.Conditions[i].Type == kafkatopicv1alpha1.ConditionTypeWarning {
			return &res.Status.Conditions[i]
		}
	}
	return nil
}

func partitionState(id int32, replicas ...int32) model.PartitionState {
	return model.PartitionState{ID: id, Replicas: replicas}
}
