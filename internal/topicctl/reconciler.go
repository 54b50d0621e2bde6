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

	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	kafkatopicv1alpha1 "github.com/deckhouse/kafka-topic-operator/api/v1alpha1"
	"github.com/deckhouse/kafka-topic-operator/internal/ctlerrors"
)

// Reconciler adapts Controller to controller-runtime's per-resource
// reconcile.Reconciler contract: the watch loop and per-resource work
// queue are external collaborators this package does not implement
// (spec.md §1 Non-goals), so this is the thinnest possible bridge, one
// KafkaTopic per batch of one.
type Reconciler struct {
	ctl   *Controller
	store interface {
		Get(ctx context.Context, namespace, name string) (*kafkatopicv1alpha1.KafkaTopic, error)
	}
	log *slog.Logger
}

var _ reconcile.Reconciler = &Reconciler{}

// NewReconciler wraps ctl for controller-runtime's Manager.
func NewReconciler(ctl *Controller, log *slog.Logger) *Reconciler {
	if log == nil {
		log = slog.Default()
	}
	return &Reconciler{ctl: ctl, store: ctl.store, log: log}
}

func (r *Reconciler) Reconcile(ctx context.Context, req reconcile.Request) (reconcile.Result, error) {
	res, err := r.store.Get(ctx, req.Namespace, req.Name)
	if err != nil {
		return reconcile.Result{}, err
	}
	if res == nil {
		return reconcile.Result{}, nil
	}

	batch := []*kafkatopicv1alpha1.KafkaTopic{res}

	if isDeleting(res) {
		err = r.ctl.OnDelete(ctx, batch)
	} else {
		err = r.ctl.OnUpdate(ctx, batch)
	}

	if err != nil {
		if ctlerrors.IsInterrupted(err) {
			return reconcile.Result{}, nil
		}
		return reconcile.Result{}, err
	}

	return reconcile.Result{}, nil
}
