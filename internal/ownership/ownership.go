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

// Package ownership tracks which resources currently claim which Kafka
// topic names and arbitrates conflicts (spec.md §3 invariant I1, §4.3). A
// single controller instance processes batches sequentially (spec.md §5),
// so the table only needs to guard against a caller that shards batches
// across goroutines; it is not contended within one batch.
package ownership

import (
	"fmt"
	"sort"
	"sync"

	"github.com/deckhouse/kafka-topic-operator/internal/model"
)

// Table is the process-wide `name -> [KubeRef]` map from spec.md §3, §9. It
// is initialized empty at process start and never persisted: ownership
// arbitration converges only after every participating resource has been
// reconciled at least once.
type Table struct {
	mu      sync.Mutex
	claims  map[string][]model.KubeRef
	readyOf func(model.KubeRef) bool
}

// NewTable returns an empty ownership table. readyOf must report whether a
// claimant's resource currently carries a Ready=True condition; it is
// consulted only by Arbitrate.
func NewTable(readyOf func(model.KubeRef) bool) *Table {
	return &Table{claims: make(map[string][]model.KubeRef), readyOf: readyOf}
}

// Remember records ref as a claimant of name if it is not already present
// (spec.md §4.2 step 4).
func (t *Table) Remember(name string, ref model.KubeRef) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, existing := range t.claims[name] {
		if existing == ref {
			return
		}
	}
	t.claims[name] = append(t.claims[name], ref)
}

// Forget removes ref as a claimant of name (spec.md I7): called when a
// resource is dropped by the selector filter, becomes unmanaged, or is
// deleted.
func (t *Table) Forget(name string, ref model.KubeRef) {
	t.mu.Lock()
	defer t.mu.Unlock()

	claimants := t.claims[name]
	for i, existing := range claimants {
		if existing == ref {
			t.claims[name] = append(claimants[:i], claimants[i+1:]...)
			break
		}
	}
	if len(t.claims[name]) == 0 {
		delete(t.claims, name)
	}
}

// ErrConflict is returned by Arbitrate when ref is not the resolved owner
// of name. The message matches spec.md §4.3's literal format so it can be
// used directly as a ResourceConflict status message.
type ErrConflict struct {
	Owner model.KubeRef
}

func (e *ErrConflict) Error() string {
	return fmt.Sprintf("Managed by %s", e.Owner)
}

// Arbitrate implements spec.md §4.3: with one claimant, that claimant wins.
// With more than one, sort by creation time; the oldest wins if it is
// strictly older than the second-oldest, or if the oldest is already
// Ready=True (a prior winner keeps the crown even after a tie appears).
// Every other claimant, and every non-oldest claimant, loses with
// ErrConflict naming the oldest.
func (t *Table) Arbitrate(name string, ref model.KubeRef) error {
	t.mu.Lock()
	claimants := append([]model.KubeRef(nil), t.claims[name]...)
	t.mu.Unlock()

	if len(claimants) <= 1 {
		return nil
	}

	sort.Slice(claimants, func(i, j int) bool { return claimants[i].Less(claimants[j]) })
	oldest, nextOldest := claimants[0], claimants[1]

	if ref != oldest {
		return &ErrConflict{Owner: oldest}
	}
	strictlyOlder := oldest.CreationTimestamp.Before(nextOldest.CreationTimestamp)
	if strictlyOlder || t.readyOf(oldest) {
		return nil
	}
	return &ErrConflict{Owner: oldest}
}
