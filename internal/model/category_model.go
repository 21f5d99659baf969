package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Category persists the whole taxonomy node as a single row. The field
// definition collection is embedded as a JSON column so every mutation is a
// single-row write; Version backs the optimistic-concurrency check.
type Category struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name            string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	Slug            string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	ExplicitSlug    bool           `gorm:"not null;default:false"`
	Description     string         `gorm:"type:text"`
	Icon            string         `gorm:"type:varchar(512)"`
	Image           string         `gorm:"type:varchar(512)"`
	ParentId        *uuid.UUID     `gorm:"type:uuid;index"`
	Level           int            `gorm:"not null;default:0"`
	DisplayOrder    int            `gorm:"column:display_order;not null;default:0"`
	IsActive        bool           `gorm:"not null;default:true"`
	InheritedFields bool           `gorm:"not null;default:true"`
	AuctionCount    int64          `gorm:"not null;default:0"`
	Fields          datatypes.JSON `gorm:"type:jsonb"`
	CreatedBy       *uuid.UUID     `gorm:"type:uuid"`
	Version         int64          `gorm:"not null;default:0"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Category) TableName() string {
	return "categories"
}

// FieldDefinitionDoc is the JSON document shape of one field definition inside
// the category row. This is also the wire shape clients see.
type FieldDefinitionDoc struct {
	Id           *uuid.UUID          `json:"id,omitempty"`
	Name         string              `json:"name"`
	Label        string              `json:"label,omitempty"`
	FieldType    string              `json:"fieldType"`
	Required     bool                `json:"required"`
	Placeholder  string              `json:"placeholder,omitempty"`
	DefaultValue interface{}         `json:"defaultValue,omitempty"`
	Options      []FieldOptionDoc    `json:"options,omitempty"`
	Validation   *FieldValidationDoc `json:"validation,omitempty"`
	Unit         string              `json:"unit,omitempty"`
	Order        int                 `json:"order"`
	Group        string              `json:"group,omitempty"`
	IsActive     *bool               `json:"isActive,omitempty"` // nil on legacy docs, read as true
}

type FieldOptionDoc struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type FieldValidationDoc struct {
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
	Message   string   `json:"message,omitempty"`
}
