package specification

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BySlug struct {
	Slug string
}

func (s BySlug) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("slug = ?", s.Slug)
}

// ByName matches the unique category name case-insensitively.
type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(s.Name)))
}

type ByParentID struct {
	ParentID *uuid.UUID
}

func (s ByParentID) Apply(db *gorm.DB) *gorm.DB {
	if s.ParentID == nil {
		return db.Where("parent_id IS NULL")
	}
	return db.Where("parent_id = ?", s.ParentID)
}

type ByLevel struct {
	Level int
}

func (s ByLevel) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("level = ?", s.Level)
}

// ExcludeID keeps uniqueness checks from matching the record being updated.
type ExcludeID struct {
	ID uuid.UUID
}

func (s ExcludeID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id <> ?", s.ID)
}

// OrderByDisplay sorts by (display order, name), the deterministic ordering
// used for roots, children and public listings.
type OrderByDisplay struct{}

func (s OrderByDisplay) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("display_order ASC").Order("name ASC")
}
