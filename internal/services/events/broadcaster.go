package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/calebwren/reel-engine/pkg/state"
)

// EventType represents the type of event being broadcast
type EventType string

const (
	EventTypeSnapshotCreated EventType = "snapshot.created"
	EventTypeSnapshotUpdated EventType = "snapshot.updated"
	EventTypeSnapshotDeleted EventType = "snapshot.deleted"
	EventTypeEngineEvent     EventType = "engine.event"
)

// Event is the wire envelope published per snapshot channel
type Event struct {
	Type       EventType    `json:"type"`
	SnapshotID string       `json:"snapshot_id"`
	Engine     *state.Event `json:"engine,omitempty"`
	Data       any          `json:"data,omitempty"`
}

// Broadcaster publishes events to Redis Pub/Sub for live consumers
type Broadcaster struct {
	redisClient *redis.Client
	logger      *slog.Logger
}

// NewBroadcaster creates a new event broadcaster
func NewBroadcaster(redisClient *redis.Client, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		redisClient: redisClient,
		logger:      logger,
	}
}

// PublishSnapshotCreated announces a fresh snapshot
func (b *Broadcaster) PublishSnapshotCreated(ctx context.Context, id uuid.UUID) error {
	return b.publish(ctx, id, Event{
		Type:       EventTypeSnapshotCreated,
		SnapshotID: id.String(),
	})
}

// PublishSnapshotUpdated announces a state transition, carrying the engine
// event that produced it so clients can render without refetching
func (b *Broadcaster) PublishSnapshotUpdated(ctx context.Context, id uuid.UUID, ev *state.Event) error {
	return b.publish(ctx, id, Event{
		Type:       EventTypeSnapshotUpdated,
		SnapshotID: id.String(),
		Engine:     ev,
	})
}

// PublishSnapshotDeleted announces removal
func (b *Broadcaster) PublishSnapshotDeleted(ctx context.Context, id uuid.UUID) error {
	return b.publish(ctx, id, Event{
		Type:       EventTypeSnapshotDeleted,
		SnapshotID: id.String(),
	})
}

// ChannelFor returns the pub/sub channel name for a snapshot
func ChannelFor(id uuid.UUID) string {
	return "events:snapshot:" + id.String()
}

func (b *Broadcaster) publish(ctx context.Context, id uuid.UUID, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	channel := ChannelFor(id)
	if err := b.redisClient.Publish(ctx, channel, payload).Err(); err != nil {
		b.logger.Warn("Failed to publish event", "channel", channel, "type", event.Type, "error", err)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debug("Published event", "channel", channel, "type", event.Type)
	return nil
}
