package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/calebwren/reel-engine/internal/storage"
)

// BundlesHandler serves the content bundle catalog.
type BundlesHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewBundlesHandler(logger *slog.Logger, st storage.Storage) *BundlesHandler {
	return &BundlesHandler{
		storage: st,
		logger:  logger,
	}
}

// ServeHTTP handles bundle catalog requests.
//
//	GET /v1/bundles      - list bundle ids and names
//	GET /v1/bundles/{id} - full bundle content
func (h *BundlesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
		return
	}

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/bundles"), "/")
	if id == "" {
		bundles, err := h.storage.ListBundles(r.Context())
		if err != nil {
			h.logger.Error("Failed to list bundles", "error", err)
			writeError(w, h.logger, http.StatusInternalServerError, "Failed to list bundles")
			return
		}
		writeJSON(w, h.logger, http.StatusOK, bundles)
		return
	}

	b, err := h.storage.GetBundle(r.Context(), id)
	if err != nil {
		h.logger.Warn("Failed to load bundle", "bundle", id, "error", err)
		writeError(w, h.logger, http.StatusNotFound, "Bundle not found: "+id)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, b)
}
