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
	"errors"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"github.com/deckhouse/kafka-topic-operator/internal/ctlerrors"
)

// Recognizable Kafka API error kinds (spec.md §6, §7). These are the only
// kinds the controller core branches on; every other kind still becomes a
// KafkaError, just with its own String() as the kind.
const (
	KindUnknownTopicOrPartition = "UnknownTopicOrPartition"
	KindTopicExists             = "TopicExists"
	KindTopicDeletionDisabled   = "TopicDeletionDisabled"
)

// wrapKafkaError maps a librdkafka error to the controller's error taxonomy
// (spec.md §4.4): a Kafka API exception becomes KafkaError(kind); anything
// else becomes InternalError.
func wrapKafkaError(err error) error {
	if err == nil {
		return nil
	}
	var kerr kafka.Error
	if errors.As(err, &kerr) {
		return ctlerrors.KafkaErrorf(kindOf(kerr), "%s", kerr.String())
	}
	return ctlerrors.Internalf("%w", err)
}

// kindOf maps a librdkafka error code to the recognizable kind names
// spec.md §6 requires the controller to branch on.
func kindOf(kerr kafka.Error) string {
	switch kerr.Code() {
	case kafka.ErrUnknownTopicOrPart, kafka.ErrUnknownTopic:
		return KindUnknownTopicOrPartition
	case kafka.ErrTopicAlreadyExists:
		return KindTopicExists
	case kafka.ErrTopicDeletionDisabled:
		return KindTopicDeletionDisabled
	default:
		return kerr.Code().String()
	}
}
