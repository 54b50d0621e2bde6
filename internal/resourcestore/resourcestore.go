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

// Package resourcestore is the controller's only door onto the cluster
// orchestrator's API for KafkaTopic resources: get, editMetadata,
// updateStatus (spec.md §2, §6). It preserves resource-version semantics via
// client.MergeFrom patches and tolerates NotFound on the deletion path.
package resourcestore

import (
	"bytes"
	"context"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	kafkatopicv1alpha1 "github.com/deckhouse/kafka-topic-operator/api/v1alpha1"
)

// Store wraps client.Client with the three operations the controller core
// needs (spec.md §6).
type Store struct {
	cl client.Client
}

func New(cl client.Client) *Store {
	return &Store{cl: cl}
}

// Get fetches a KafkaTopic by namespace/name. It returns (nil, nil) if the
// resource no longer exists.
func (s *Store) Get(ctx context.Context, namespace, name string) (*kafkatopicv1alpha1.KafkaTopic, error) {
	res := &kafkatopicv1alpha1.KafkaTopic{}
	err := s.cl.Get(ctx, types.NamespacedName{Namespace: namespace, Name: name}, res)
	if apierrors.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting KafkaTopic %s/%s: %w", namespace, name, err)
	}
	return res, nil
}

// EditMetadata patches a resource's finalizers/labels/annotations via
// mutate, tolerating the case where mutate leaves the object unchanged
// (spec.md §4.2 step 6: "tolerate the case where it is already in the
// desired state").
func (s *Store) EditMetadata(ctx context.Context, res *kafkatopicv1alpha1.KafkaTopic, mutate func(*kafkatopicv1alpha1.KafkaTopic)) error {
	patch := client.MergeFrom(res.DeepCopy())
	mutate(res)

	if err := s.cl.Patch(ctx, res, patch); err != nil {
		if apierrors.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("patching KafkaTopic %s/%s metadata: %w", res.Namespace, res.Name, err)
	}
	return nil
}

// UpdateStatus patches the status subresource via mutate. A write failure is
// returned to the caller, which logs and swallows it per spec.md §4.9 (the
// next reconciliation reattempts). If mutate leaves the status unchanged, no
// request is sent (spec.md §4.9: "diff against the stored status; only write
// if non-empty").
func (s *Store) UpdateStatus(ctx context.Context, res *kafkatopicv1alpha1.KafkaTopic, mutate func(*kafkatopicv1alpha1.KafkaTopic)) error {
	before := res.DeepCopy()
	patch := client.MergeFrom(before)
	mutate(res)

	data, err := patch.Data(res)
	if err != nil {
		return fmt.Errorf("computing status patch for KafkaTopic %s/%s: %w", res.Namespace, res.Name, err)
	}
	if bytes.Equal(data, []byte("{}")) {
		return nil
	}

	if err := s.cl.Status().Patch(ctx, res, patch); err != nil {
		if apierrors.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("patching KafkaTopic %s/%s status: %w", res.Namespace, res.Name, err)
	}
	return nil
}
