package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/calebwren/reel-engine/internal/storage"
)

func TestHealthHandler_Healthy(t *testing.T) {
	mockStorage := storage.NewMockStorage()
	handler := NewHealthHandler(mockStorage, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("Expected healthy, got %s", resp.Status)
	}
	if resp.Components["storage"] != "healthy" {
		t.Errorf("Components = %v", resp.Components)
	}
	if resp.Service != "reel-engine" {
		t.Errorf("Service = %s", resp.Service)
	}
}

func TestHealthHandler_Degraded(t *testing.T) {
	mockStorage := storage.NewMockStorage()
	mockStorage.SetPingError(errors.New("connection refused"))
	handler := NewHealthHandler(mockStorage, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected status 503, got %d", rr.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != "degraded" {
		t.Errorf("Expected degraded, got %s", resp.Status)
	}
	if resp.Components["storage"] != "unhealthy" {
		t.Errorf("Components = %v", resp.Components)
	}
}
