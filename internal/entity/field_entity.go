// FILE: internal/entity/field_entity.go
package entity

import "github.com/google/uuid"

type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeSelect   FieldType = "select"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeDate     FieldType = "date"
	FieldTypeBoolean  FieldType = "boolean"
	FieldTypeFile     FieldType = "file"
)

// ValidFieldType reports whether t is one of the supported field types.
func ValidFieldType(t FieldType) bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeSelect, FieldTypeTextarea,
		FieldTypeDate, FieldTypeBoolean, FieldTypeFile:
		return true
	}
	return false
}

type FieldOption struct {
	Label string
	Value string
}

type FieldValidation struct {
	Min       *float64
	Max       *float64
	MinLength *int
	MaxLength *int
	Pattern   string
	Message   string
}

// FieldDefinition describes one typed attribute a category's listings capture.
// It is schema metadata, not a value. Id is nil for legacy records persisted
// before ids were mandatory; it is backfilled on first touch.
type FieldDefinition struct {
	Id           *uuid.UUID
	Name         string
	Label        string
	FieldType    FieldType
	Required     bool
	Placeholder  string
	DefaultValue interface{}
	Options      []FieldOption
	Validation   *FieldValidation
	Unit         string
	Order        int
	Group        string
	IsActive     bool
}

// SourceCategory identifies the category an inherited field came from.
type SourceCategory struct {
	Name string
	Slug string
}

// EffectiveField is a resolver output entry: a field definition plus its
// provenance. Inherited entries always carry a non-nil SourceCategory.
type EffectiveField struct {
	FieldDefinition
	Inherited      bool
	SourceCategory *SourceCategory
}
