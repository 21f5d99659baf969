package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByCategoryID struct {
	CategoryID uuid.UUID
}

func (s ByCategoryID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category_id = ?", s.CategoryID)
}

type NonDraft struct{}

func (s NonDraft) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status <> ?", "draft")
}
