package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/calebwren/reel-engine/internal/storage"
	"github.com/calebwren/reel-engine/pkg/content"
	"github.com/calebwren/reel-engine/pkg/engine"
	"github.com/calebwren/reel-engine/pkg/state"
)

// EventPublisher pushes snapshot lifecycle events to live consumers.
type EventPublisher interface {
	PublishSnapshotCreated(ctx context.Context, id uuid.UUID) error
	PublishSnapshotUpdated(ctx context.Context, id uuid.UUID, ev *state.Event) error
	PublishSnapshotDeleted(ctx context.Context, id uuid.UUID) error
}

// SnapshotHandler owns the snapshot lifecycle and every state transition.
// All game logic lives in pkg/engine; this handler only loads, delegates,
// saves and responds.
type SnapshotHandler struct {
	storage storage.Storage
	logger  *slog.Logger
	events  EventPublisher // may be nil

	mu  sync.Mutex
	rng *engine.RNG
}

func NewSnapshotHandler(logger *slog.Logger, st storage.Storage, rng *engine.RNG, events EventPublisher) *SnapshotHandler {
	return &SnapshotHandler{
		storage: st,
		logger:  logger,
		events:  events,
		rng:     rng,
	}
}

// SnapshotResponse wraps a snapshot with the current timing window so
// clients can render the timing bar without re-deriving engine formulas.
type SnapshotResponse struct {
	Snapshot *state.Snapshot `json:"snapshot"`
	Timing   *engine.Window  `json:"timing,omitempty"`
}

// ServeHTTP routes snapshot requests.
//
//	POST   /v1/snapshot               - create from a bundle
//	GET    /v1/snapshot/{id}          - read
//	DELETE /v1/snapshot/{id}          - delete
//	POST   /v1/snapshot/{id}/action   - apply a combat action
//	POST   /v1/snapshot/{id}/item     - use an item
//	POST   /v1/snapshot/{id}/fight    - spawn, retry or flee
//	POST   /v1/snapshot/{id}/contract - start, advance, finish or buy
//	POST   /v1/snapshot/{id}/player   - spend stat, unlock skill or respec
func (h *SnapshotHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/snapshot"), "/")
	if path == "" {
		if r.Method != http.MethodPost {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
			return
		}
		h.handleCreate(w, r)
		return
	}

	parts := strings.SplitN(path, "/", 2)
	id, err := uuid.Parse(parts[0])
	if err != nil {
		h.logger.Warn("Invalid snapshot ID", "id", parts[0], "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid snapshot ID format")
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.handleRead(w, r, id)
		case http.MethodDelete:
			h.handleDelete(w, r, id)
		default:
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, DELETE")
		}
		return
	}

	if r.Method != http.MethodPost {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
		return
	}

	switch parts[1] {
	case "action":
		h.handleAction(w, r, id)
	case "item":
		h.handleItem(w, r, id)
	case "fight":
		h.handleFight(w, r, id)
	case "contract":
		h.handleContract(w, r, id)
	case "player":
		h.handlePlayer(w, r, id)
	default:
		writeError(w, h.logger, http.StatusNotFound, "Unknown snapshot operation: "+parts[1])
	}
}

// CreateSnapshotRequest defines the request body for creating a snapshot
type CreateSnapshotRequest struct {
	BundleID string `json:"bundle_id"`
}

func (h *SnapshotHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if req.BundleID == "" {
		writeError(w, h.logger, http.StatusBadRequest, "bundle_id field is required")
		return
	}

	b, err := h.storage.GetBundle(r.Context(), req.BundleID)
	if err != nil {
		h.logger.Warn("Failed to load bundle", "bundle", req.BundleID, "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Failed to load bundle: "+err.Error())
		return
	}

	s := state.NewSnapshot(b)
	if err := h.storage.SaveSnapshot(r.Context(), s.ID, s); err != nil {
		h.logger.Error("Failed to save snapshot", "uuid", s.ID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save snapshot")
		return
	}

	if h.events != nil {
		if err := h.events.PublishSnapshotCreated(r.Context(), s.ID); err != nil {
			h.logger.Warn("Failed to publish snapshot event", "uuid", s.ID, "error", err)
		}
	}

	h.logger.Info("Snapshot created", "uuid", s.ID, "bundle", b.ID)
	writeJSON(w, h.logger, http.StatusCreated, h.respond(b, s))
}

func (h *SnapshotHandler) handleRead(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	b, s, ok := h.load(w, r, id)
	if !ok {
		return
	}
	writeJSON(w, h.logger, http.StatusOK, h.respond(b, s))
}

func (h *SnapshotHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.storage.DeleteSnapshot(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete snapshot", "uuid", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete snapshot")
		return
	}
	if h.events != nil {
		if err := h.events.PublishSnapshotDeleted(r.Context(), id); err != nil {
			h.logger.Warn("Failed to publish snapshot event", "uuid", id, "error", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// ActionRequest applies a known action. Offset is the sampled distance from
// the timing bar's center; the server grades it against the player's window.
// A client that skips the timing bar omits the field entirely and the engine
// falls back to its neutral grade.
type ActionRequest struct {
	ActionID string   `json:"action_id"`
	Offset   *float64 `json:"offset,omitempty"`
}

func (h *SnapshotHandler) handleAction(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if req.ActionID == "" {
		writeError(w, h.logger, http.StatusBadRequest, "action_id field is required")
		return
	}

	b, s, ok := h.load(w, r, id)
	if !ok {
		return
	}

	var grade state.TimingGrade
	if req.Offset != nil {
		grade = engine.TimingWindow(b, s).Grade(*req.Offset)
	}
	out := engine.ApplyAction(b, s, req.ActionID, grade)
	h.finish(w, r, id, b, out)
}

// ItemRequest consumes one inventory item
type ItemRequest struct {
	ItemID string `json:"item_id"`
}

func (h *SnapshotHandler) handleItem(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if req.ItemID == "" {
		writeError(w, h.logger, http.StatusBadRequest, "item_id field is required")
		return
	}

	b, s, ok := h.load(w, r, id)
	if !ok {
		return
	}
	out := engine.UseItem(b, s, req.ItemID)
	h.finish(w, r, id, b, out)
}

// FightRequest controls the encounter lifecycle
type FightRequest struct {
	Op       string `json:"op"` // spawn, retry, flee
	RegionID string `json:"region_id,omitempty"`
}

func (h *SnapshotHandler) handleFight(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req FightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	b, s, ok := h.load(w, r, id)
	if !ok {
		return
	}

	var out *state.Snapshot
	switch strings.ToLower(req.Op) {
	case "spawn":
		if req.RegionID == "" {
			writeError(w, h.logger, http.StatusBadRequest, "region_id field is required for spawn")
			return
		}
		h.mu.Lock()
		out = engine.SpawnFight(b, s, req.RegionID, h.rng)
		h.mu.Unlock()
	case "retry":
		out = engine.RetryFight(b, s)
	case "flee":
		out = engine.Flee(b, s)
	default:
		writeError(w, h.logger, http.StatusBadRequest, "op must be one of: spawn, retry, flee")
		return
	}
	h.finish(w, r, id, b, out)
}

// ContractRequest controls the contract lifecycle. RefID names the item or
// rig mod being bought during a camp phase.
type ContractRequest struct {
	Op         string `json:"op"` // start, advance, finish, buy
	ContractID string `json:"contract_id,omitempty"`
	ShopID     string `json:"shop_id,omitempty"`
	RefID      string `json:"ref_id,omitempty"`
}

func (h *SnapshotHandler) handleContract(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req ContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	b, s, ok := h.load(w, r, id)
	if !ok {
		return
	}

	var out *state.Snapshot
	switch strings.ToLower(req.Op) {
	case "start":
		if req.ContractID == "" {
			writeError(w, h.logger, http.StatusBadRequest, "contract_id field is required for start")
			return
		}
		h.mu.Lock()
		out = engine.StartContract(b, s, req.ContractID, h.rng)
		h.mu.Unlock()
	case "advance":
		out = engine.AdvanceContract(b, s)
	case "finish":
		out = engine.FinishContract(b, s)
	case "buy":
		shopID := req.ShopID
		if shopID == "" && s.Contract != nil {
			if def, ok := b.ContractByID(s.Contract.ContractID); ok {
				shopID = def.ShopID
			}
		}
		if shopID == "" || req.RefID == "" {
			writeError(w, h.logger, http.StatusBadRequest, "shop_id and ref_id fields are required for buy")
			return
		}
		out = engine.Buy(b, s, shopID, req.RefID)
	default:
		writeError(w, h.logger, http.StatusBadRequest, "op must be one of: start, advance, finish, buy")
		return
	}
	h.finish(w, r, id, b, out)
}

// PlayerRequest controls progression spending
type PlayerRequest struct {
	Op      string `json:"op"` // stat, skill, respec
	Stat    string `json:"stat,omitempty"`
	SkillID string `json:"skill_id,omitempty"`
}

func (h *SnapshotHandler) handlePlayer(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req PlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	b, s, ok := h.load(w, r, id)
	if !ok {
		return
	}

	var out *state.Snapshot
	switch strings.ToLower(req.Op) {
	case "stat":
		if req.Stat == "" {
			writeError(w, h.logger, http.StatusBadRequest, "stat field is required")
			return
		}
		out = engine.SpendStatPoint(b, s, req.Stat)
	case "skill":
		if req.SkillID == "" {
			writeError(w, h.logger, http.StatusBadRequest, "skill_id field is required")
			return
		}
		out = engine.UnlockSkill(b, s, req.SkillID)
	case "respec":
		out = engine.Respec(b, s)
	default:
		writeError(w, h.logger, http.StatusBadRequest, "op must be one of: stat, skill, respec")
		return
	}
	h.finish(w, r, id, b, out)
}

// load fetches and normalizes the snapshot plus its bundle, writing the
// error response itself on failure.
func (h *SnapshotHandler) load(w http.ResponseWriter, r *http.Request, id uuid.UUID) (*content.Bundle, *state.Snapshot, bool) {
	s, err := h.storage.LoadSnapshot(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load snapshot", "uuid", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load snapshot")
		return nil, nil, false
	}
	if s == nil {
		writeError(w, h.logger, http.StatusNotFound, "Snapshot not found")
		return nil, nil, false
	}

	b, err := h.storage.GetBundle(r.Context(), s.BundleID)
	if err != nil {
		h.logger.Error("Failed to load bundle for snapshot", "uuid", id, "bundle", s.BundleID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load bundle: "+err.Error())
		return nil, nil, false
	}

	// Older or hand-edited snapshots are brought up to the current shape
	// before any transition runs.
	return b, state.Normalize(b, s), true
}

// finish persists the transition result and responds with the new state.
func (h *SnapshotHandler) finish(w http.ResponseWriter, r *http.Request, id uuid.UUID, b *content.Bundle, out *state.Snapshot) {
	if err := h.storage.SaveSnapshot(r.Context(), id, out); err != nil {
		h.logger.Error("Failed to save snapshot", "uuid", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save snapshot")
		return
	}

	if h.events != nil {
		if err := h.events.PublishSnapshotUpdated(r.Context(), id, out.LastEvent); err != nil {
			h.logger.Warn("Failed to publish snapshot event", "uuid", id, "error", err)
		}
	}

	writeJSON(w, h.logger, http.StatusOK, h.respond(b, out))
}

func (h *SnapshotHandler) respond(b *content.Bundle, s *state.Snapshot) SnapshotResponse {
	resp := SnapshotResponse{Snapshot: s}
	if s.Combat != nil && s.Combat.Outcome == state.OutcomeNone {
		win := engine.TimingWindow(b, s)
		resp.Timing = &win
	}
	return resp
}
