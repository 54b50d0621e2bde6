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

package topicctl

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/deckhouse/kafka-topic-operator/internal/env"
	"github.com/deckhouse/kafka-topic-operator/internal/kafkaadmin"
)

// WarnIfAutoCreateEnabled looks up auto.create.topics.enable on a live
// broker and logs a one-time warning if it is true: an externally created
// topic can then race this controller's own createMissing step, producing
// a topic this controller does not own. Gated by skipClusterConfigReview
// like the min-isr lookup (spec.md §6).
func WarnIfAutoCreateEnabled(ctx context.Context, admin kafkaadmin.AdminClient, cfg env.ConfigProvider, log *slog.Logger) {
	if cfg.SkipClusterConfigReview() {
		return
	}
	if log == nil {
		log = slog.Default()
	}

	cluster, err := admin.DescribeCluster(ctx)
	if err != nil || len(cluster.BrokerIDs) == 0 {
		log.Warn("could not check auto.create.topics.enable: no live brokers", "error", err)
		return
	}

	brokerID := formatBrokerID(cluster.BrokerIDs[0])
	configs := admin.DescribeConfigs(ctx, kafkaadmin.ResourceKindBroker, []string{brokerID})
	entry, ok := configs[brokerID].Config["auto.create.topics.enable"]
	if !ok {
		return
	}

	enabled, err := strconv.ParseBool(entry.Value)
	if err != nil || !enabled {
		return
	}

	log.Warn("auto.create.topics.enable is true on this cluster; topics created implicitly by producers " +
		"will not be owned by any KafkaTopic resource")
}
