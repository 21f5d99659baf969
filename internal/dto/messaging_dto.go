package dto

import "github.com/google/uuid"

// RecountCategoryAuctionsMessage asks the consumer to recompute the
// denormalized auction count of one category.
type RecountCategoryAuctionsMessage struct {
	CategoryId uuid.UUID `json:"category_id"`
}
