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

// Package topicctl is the batching topic controller: the reconciliation
// engine that keeps KafkaTopic resources converged with the Kafka cluster
// (spec.md §4).
//
// # Controller Responsibilities
//
// Controller.OnUpdate and Controller.OnDelete are the only two mutators of
// the process-wide ownership table. OnUpdate classifies a batch through a
// fixed pipeline (selector, deletion, unmanaged, validation, paused,
// finalizer, describe, create, diff/apply, replica changes, status write);
// OnDelete runs the deletion branch directly for a batch already known to
// be terminal.
//
// # Watched Resources
//
// KafkaTopic is the only resource this package touches directly; it talks
// to the Kafka cluster through internal/kafkaadmin and to the rebalancing
// service through internal/rebalancer.
//
// # Reconciliation Flow
//
// See spec.md §4.2 for the full ten-step pipeline. Every classified item
// gets exactly one terminal status write per batch (spec.md §8).
//
// # Status Updates
//
// Controller writes one terminal condition per item (Ready, Unmanaged or
// ReconciliationPaused), plus a Warning condition when config keys were
// dropped, through internal/resourcestore; write failures are logged and swallowed, per
// spec.md §4.9, so the next reconciliation retries.
package topicctl
