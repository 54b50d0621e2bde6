package main

import (
	"context"
	"fmt"
	"log/slog"

	"sigs.k8s.io/controller-runtime/pkg/builder"
	"sigs.k8s.io/controller-runtime/pkg/manager"

	u "github.com/deckhouse/sds-common-lib/utils"

	kafkatopicv1alpha1 "github.com/deckhouse/kafka-topic-operator/api/v1alpha1"
	"github.com/deckhouse/kafka-topic-operator/internal/env"
	"github.com/deckhouse/kafka-topic-operator/internal/kafkaadmin"
	"github.com/deckhouse/kafka-topic-operator/internal/metrics"
	"github.com/deckhouse/kafka-topic-operator/internal/rebalancer"
	"github.com/deckhouse/kafka-topic-operator/internal/resourcestore"
	"github.com/deckhouse/kafka-topic-operator/internal/topicctl"
)

// runController wires the batching topic controller against mgr: an admin
// client dialed from cfg's bootstrap servers, the resource store over mgr's
// own client, and the rebalancer client gated by cruiseControlEnabled
// (spec.md §6). It registers one controller-runtime Reconciler per
// KafkaTopic, one resource per batch (internal/topicctl.Reconciler).
func runController(ctx context.Context, log *slog.Logger, mgr manager.Manager, cfg *env.Config) error {
	metrics.SetAdditionalMetricsEnabled(cfg.EnableAdditionalMetrics())

	admin, err := kafkaadmin.NewClient(kafkaadmin.Config{BootstrapServers: cfg.BootstrapServers()})
	if err != nil {
		return u.LogError(log, fmt.Errorf("dialing kafka admin client: %w", err))
	}
	go func() {
		<-ctx.Done()
		admin.Close()
	}()

	store := resourcestore.New(mgr.GetClient())
	rebal := rebalancer.New(cfg.CruiseControlBaseURL(), cfg.CruiseControlEnabled())

	ctl, err := topicctl.NewController(log, store, admin, rebal, cfg)
	if err != nil {
		return u.LogError(log, fmt.Errorf("building topic controller: %w", err))
	}

	topicctl.WarnIfAutoCreateEnabled(ctx, admin, cfg, log)

	err = builder.ControllerManagedBy(mgr).
		Named("kafkaTopic").
		For(&kafkatopicv1alpha1.KafkaTopic{}).
		Complete(topicctl.NewReconciler(ctl, log))
	if err != nil {
		return u.LogError(log, fmt.Errorf("building controller: %w", err))
	}

	return nil
}
