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

// Package rebalancer is the submit-then-poll client for the replica-change
// subsystem's external rebalancing service (spec.md §4.7, §6): a
// Cruise-Control-shaped black box that accepts replication-factor change
// requests and reports on ones already in flight. Wire transport is
// spec.md's explicit out-of-scope ("the rebalancer client transport"), so
// this package speaks plain JSON-over-HTTP rather than a bundled SDK, the
// same shape the pack's Cruise Control client wraps.
package rebalancer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/deckhouse/kafka-topic-operator/internal/ctlerrors"
)

// Change is one topic's replication-factor change request or report, keyed
// by topic name so the caller can join results back to ReconcilableTopics.
type Change struct {
	Topic          string `json:"topic"`
	TargetReplicas int32  `json:"targetReplicas"`
	SessionID      string `json:"sessionId,omitempty"`
}

// ChangeResult is the rebalancer's report on one Change (spec.md §4.7's
// replicasChange state machine): Ongoing with a SessionID, or a failure
// Message left for the next PENDING reconciliation to retry.
type ChangeResult struct {
	Topic     string `json:"topic"`
	Ongoing   bool   `json:"ongoing"`
	SessionID string `json:"sessionId,omitempty"`
	Message   string `json:"message,omitempty"`
	Completed bool   `json:"completed"`
}

// Client talks to the rebalancer's HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
	enabled bool
}

// New returns a Client. enabled mirrors the cruiseControlEnabled knob
// (spec.md §6): when false, Enabled reports false and callers must treat any
// detected RF mismatch as NotSupported rather than calling this client.
func New(baseURL string, enabled bool) *Client {
	return &Client{baseURL: baseURL, http: &http.Client{}, enabled: enabled}
}

// Enabled reports whether the replica-change subsystem may submit requests.
func (c *Client) Enabled() bool {
	return c != nil && c.enabled
}

// RequestPendingChanges submits pending and brand-new candidates (spec.md
// §4.7 step 4) and returns the rebalancer's initial acceptance/failure per
// topic.
func (c *Client) RequestPendingChanges(ctx context.Context, changes []Change) ([]ChangeResult, error) {
	return c.post(ctx, "/api/v1/replica-changes:submit", changes)
}

// RequestOngoingChanges polls status for already-submitted sessions
// (spec.md §4.7 step 4).
func (c *Client) RequestOngoingChanges(ctx context.Context, changes []Change) ([]ChangeResult, error) {
	return c.post(ctx, "/api/v1/replica-changes:poll", changes)
}

func (c *Client) post(ctx context.Context, path string, changes []Change) ([]ChangeResult, error) {
	if len(changes) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(changes)
	if err != nil {
		return nil, ctlerrors.Internalf("marshaling rebalancer request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, ctlerrors.Internalf("building rebalancer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, ctlerrors.Internalf("calling rebalancer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ctlerrors.Internalf("rebalancer returned status %d", resp.StatusCode)
	}

	var results []ChangeResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decoding rebalancer response: %w", err)
	}
	return results, nil
}
