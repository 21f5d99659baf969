package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCategoryRequest struct {
	Name            string            `json:"name" validate:"required"`
	Slug            string            `json:"slug"`
	Description     string            `json:"description"`
	Icon            string            `json:"icon"`
	Image           string            `json:"image"`
	ParentId        *uuid.UUID        `json:"parent_id"`
	Order           int               `json:"order"`
	InheritedFields *bool             `json:"inherited_fields"` // nil defaults to true
	Fields          []AddFieldRequest `json:"fields" validate:"dive"`
}

// UpdateCategoryRequest is a patch: nil means "leave untouched".
// RemoveParent promotes the category back to a root because a nil ParentId
// cannot distinguish "absent" from "set to null".
type UpdateCategoryRequest struct {
	Id              uuid.UUID
	Name            *string    `json:"name"`
	Slug            *string    `json:"slug"`
	Description     *string    `json:"description"`
	Icon            *string    `json:"icon"`
	Image           *string    `json:"image"`
	ParentId        *uuid.UUID `json:"parent_id"`
	RemoveParent    bool       `json:"remove_parent"`
	Order           *int       `json:"order"`
	IsActive        *bool      `json:"is_active"`
	InheritedFields *bool      `json:"inherited_fields"`
}

type CategoryResponse struct {
	Id              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	Description     string          `json:"description,omitempty"`
	Icon            string          `json:"icon,omitempty"`
	Image           string          `json:"image,omitempty"`
	ParentId        *uuid.UUID      `json:"parent_id"`
	Level           int             `json:"level"`
	Order           int             `json:"order"`
	IsActive        bool            `json:"is_active"`
	InheritedFields bool            `json:"inherited_fields"`
	AuctionCount    int64           `json:"auction_count"`
	Fields          []FieldResponse `json:"fields"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       *time.Time      `json:"updated_at"`
}

// CategoryTreeNode is one node of the browse forest.
type CategoryTreeNode struct {
	Id           uuid.UUID           `json:"id"`
	Name         string              `json:"name"`
	Slug         string              `json:"slug"`
	Icon         string              `json:"icon,omitempty"`
	Image        string              `json:"image,omitempty"`
	ParentId     *uuid.UUID          `json:"parent_id"`
	Level        int                 `json:"level"`
	Order        int                 `json:"order"`
	AuctionCount int64               `json:"auction_count"`
	Children     []*CategoryTreeNode `json:"children"`
}

type PublicCategoryResponse struct {
	Id           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Icon         string    `json:"icon,omitempty"`
	Image        string    `json:"image,omitempty"`
	Level        int       `json:"level"`
	Order        int       `json:"order"`
	AuctionCount int64     `json:"auction_count"`
}
