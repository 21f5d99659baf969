// FILE: internal/entity/category_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category is one node of the two-level auction taxonomy.
// Level is cached: 0 for roots, 1 for subcategories. Nothing deeper exists.
type Category struct {
	Id              uuid.UUID
	Name            string
	Slug            string
	ExplicitSlug    bool // true when the slug was supplied by the admin, never regenerated on rename
	Description     string
	Icon            string
	Image           string
	ParentId        *uuid.UUID
	Level           int
	Order           int
	IsActive        bool
	InheritedFields bool
	AuctionCount    int64
	Fields          []FieldDefinition
	CreatedBy       *uuid.UUID
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
