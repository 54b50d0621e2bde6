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

package v1alpha1

import "strconv"

// ManagedAnnotation opts a resource out of reconciliation entirely when set
// to "false" (spec.md §6). Absent or unparsable means managed.
const ManagedAnnotation = "kafka-topic-operator.deckhouse.io/managed"

// PausedAnnotation skips reconciliation for a managed resource while
// keeping it under the operator's ownership (spec.md §6). Absent or
// unparsable means not paused.
const PausedAnnotation = "kafka-topic-operator.deckhouse.io/paused-reconciliation"

// IsManaged reports whether res should be reconciled at all (spec.md §4.2
// step 3).
func IsManaged(res *KafkaTopic) bool {
	v, ok := res.Annotations[ManagedAnnotation]
	if !ok {
		return true
	}
	managed, err := strconv.ParseBool(v)
	if err != nil {
		return true
	}
	return managed
}

// IsPaused reports whether res's reconciliation is paused (spec.md §4.2
// step 5).
func IsPaused(res *KafkaTopic) bool {
	v, ok := res.Annotations[PausedAnnotation]
	if !ok {
		return false
	}
	paused, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return paused
}
