package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	CategoryCreated = "category.created"
	CategoryUpdated = "category.updated"
	CategoryDeleted = "category.deleted"
)

// NewCategoryEvent builds a lifecycle event for the given category. Consumers
// (search indexers, the storefront) key on the slug, so it rides along.
func NewCategoryEvent(eventType string, categoryId uuid.UUID, slug string) Event {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"category_id": categoryId.String(),
			"slug":        slug,
		},
		OccurredAt: time.Now(),
	}
}
