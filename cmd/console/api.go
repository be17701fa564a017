package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/google/uuid"

	"github.com/calebwren/reel-engine/pkg/content"
	"github.com/calebwren/reel-engine/pkg/engine"
	"github.com/calebwren/reel-engine/pkg/state"
)

// SnapshotResponse mirrors the API's snapshot envelope
type SnapshotResponse struct {
	Snapshot *state.Snapshot `json:"snapshot"`
	Timing   *engine.Window  `json:"timing,omitempty"`
}

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

// decodeSnapshot reads an API response and unwraps either the snapshot
// envelope or an error payload.
func decodeSnapshot(resp *http.Response, wantStatus int) (*SnapshotResponse, error) {
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != wantStatus {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("%s", errorResp.Error)
	}

	var sr SnapshotResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot response: %w", err)
	}
	return &sr, nil
}

func getSnapshot(client *http.Client, baseURL string, id uuid.UUID) (*SnapshotResponse, error) {
	resp, err := client.Get(fmt.Sprintf("%s/v1/snapshot/%s", baseURL, id))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return decodeSnapshot(resp, http.StatusOK)
}

func createSnapshot(client *http.Client, baseURL string, bundleID string) (*SnapshotResponse, error) {
	jsonData, err := json.Marshal(map[string]string{"bundle_id": bundleID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(baseURL+"/v1/snapshot", "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return decodeSnapshot(resp, http.StatusCreated)
}

// postVerb hits one of the snapshot sub-endpoints (action, item, fight,
// contract, player) with an arbitrary request body.
func postVerb(client *http.Client, baseURL string, id uuid.UUID, verb string, body any) (*SnapshotResponse, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		fmt.Sprintf("%s/v1/snapshot/%s/%s", baseURL, id, verb),
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return decodeSnapshot(resp, http.StatusOK)
}

func listBundles(client *http.Client, baseURL string) ([]string, map[string]string, error) {
	resp, err := client.Get(baseURL + "/v1/bundles")
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	var bundleMap map[string]string
	if err := json.Unmarshal(body, &bundleMap); err != nil {
		return nil, nil, err
	}

	var ids []string
	for id := range bundleMap {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, bundleMap, nil
}

func getBundle(client *http.Client, baseURL string, id string) (*content.Bundle, error) {
	resp, err := client.Get(baseURL + "/v1/bundles/" + id)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("%s", errorResp.Error)
	}

	var b content.Bundle
	if err := json.Unmarshal(body, &b); err != nil {
		return nil, fmt.Errorf("failed to parse bundle response: %w", err)
	}
	return &b, nil
}
