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

// Package ctlerrors defines the reconciliation error taxonomy: spec malformed
// (InvalidResource), a legal request refused by design (NotSupported), loss of
// name ownership (ResourceConflict), a cluster-side rejection (KafkaError), and
// everything else (InternalError). Every error in this taxonomy becomes a
// terminal Ready=False(reason, message) status condition; nothing here is
// retried by the caller.
package ctlerrors

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidResource means the resource spec is malformed, e.g. a config
	// value of an unsupported kind.
	ErrInvalidResource = errors.New("invalid resource")
	// ErrNotSupported means the request is legal but refused by design, e.g.
	// decreasing partitions or renaming a topic.
	ErrNotSupported = errors.New("not supported")
	// ErrResourceConflict means the reconciling resource is not the owner of
	// its target Kafka topic name.
	ErrResourceConflict = errors.New("resource conflict")
	// ErrKafka means the cluster rejected an admin request. Use KafkaErrorf
	// to attach the Kafka API error kind.
	ErrKafka = errors.New("kafka error")
	// ErrInternal wraps an unexpected cause.
	ErrInternal = errors.New("internal error")
)

// Reason names used in status conditions, one per taxonomy member.
const (
	ReasonInvalidResource  = "InvalidResource"
	ReasonNotSupported     = "NotSupported"
	ReasonResourceConflict = "ResourceConflict"
	ReasonKafkaError       = "KafkaError"
	ReasonInternalError    = "InternalError"
)

// WrapErrorf wraps err with a formatted message while keeping err matchable
// via errors.Is.
func WrapErrorf(err error, format string, a ...any) error {
	return fmt.Errorf("%w: %w", err, fmt.Errorf(format, a...))
}

// InvalidResourcef builds an ErrInvalidResource with detail.
func InvalidResourcef(format string, a ...any) error {
	return WrapErrorf(ErrInvalidResource, format, a...)
}

// NotSupportedf builds an ErrNotSupported with detail.
func NotSupportedf(format string, a ...any) error {
	return WrapErrorf(ErrNotSupported, format, a...)
}

// ResourceConflictf builds an ErrResourceConflict with detail.
func ResourceConflictf(format string, a ...any) error {
	return WrapErrorf(ErrResourceConflict, format, a...)
}

// Internalf builds an ErrInternal with detail.
func Internalf(format string, a ...any) error {
	return WrapErrorf(ErrInternal, format, a...)
}

// KafkaAPIError carries the Kafka admin API error kind (e.g.
// "UnknownTopicOrPartition", "TopicExists") so callers can branch on it
// without string-matching the message (spec.md §4.4, §7).
type KafkaAPIError struct {
	Kind    string
	Message string
}

func (e *KafkaAPIError) Error() string {
	return fmt.Sprintf("kafka error [%s]: %s", e.Kind, e.Message)
}

func (e *KafkaAPIError) Unwrap() error {
	return ErrKafka
}

// KafkaErrorf builds a *KafkaAPIError for the given kind.
func KafkaErrorf(kind string, format string, a ...any) error {
	return &KafkaAPIError{Kind: kind, Message: fmt.Sprintf(format, a...)}
}

// Reason maps an error in this taxonomy to its status-condition reason. It
// returns ReasonInternalError for anything not in the taxonomy.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidResource):
		return ReasonInvalidResource
	case errors.Is(err, ErrNotSupported):
		return ReasonNotSupported
	case errors.Is(err, ErrResourceConflict):
		return ReasonResourceConflict
	case errors.Is(err, ErrKafka):
		return ReasonKafkaError
	default:
		return ReasonInternalError
	}
}

// KafkaKind extracts the Kafka API error kind from err, if any is present in
// its chain (spec.md §4.4: callers branch on kind, e.g.
// "UnknownTopicOrPartition", without string-matching the message).
func KafkaKind(err error) (string, bool) {
	var kerr *KafkaAPIError
	if errors.As(err, &kerr) {
		return kerr.Kind, true
	}
	return "", false
}

// IsInterrupted reports whether err represents cooperative cancellation
// (spec.md §5, §7): it is never written to status, only propagated once to
// the batch caller.
func IsInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
