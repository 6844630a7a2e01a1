package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventPublisher delivers lifecycle events. The queue publisher implements it.
type EventPublisher interface {
	PublishJSON(ctx context.Context, routingKey string, v any) error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishJSON(context.Context, string, any) error { return nil }

type Event struct {
	Type       string    `json:"type"`
	EntityID   uuid.UUID `json:"entity_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data,omitempty"`
}

const (
	EventCategoryCreated = "category.created"
	EventCategoryUpdated = "category.updated"
	EventCategoryDeleted = "category.deleted"
	EventProjectCreated  = "project.created"
	EventProjectUpdated  = "project.updated"
	EventProjectDeleted  = "project.deleted"
	EventTaskCreated     = "task.created"
	EventTaskUpdated     = "task.updated"
	EventTaskDeleted     = "task.deleted"
	EventTaskCompleted   = "task.completed"
)

type notifier struct {
	pub EventPublisher
	log *zap.Logger
}

// emit publishes after the write has committed. Failures are logged and dropped.
func (n notifier) emit(ctx context.Context, typ string, id, owner uuid.UUID, data any) {
	if n.pub == nil {
		return
	}
	ev := Event{Type: typ, EntityID: id, OwnerID: owner, OccurredAt: time.Now().UTC(), Data: data}
	if err := n.pub.PublishJSON(ctx, typ, ev); err != nil {
		n.log.Sugar().Warnw("publish event failed", "type", typ, "id", id, "err", err)
	}
}
