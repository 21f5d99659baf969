package dto

import "github.com/google/uuid"

// Field payloads keep the camelCase wire shape the field documents are stored
// in, so the stored record and the API response stay one shape.

type FieldOptionPayload struct {
	Label string `json:"label" validate:"required"`
	Value string `json:"value" validate:"required"`
}

type FieldValidationPayload struct {
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
	Message   string   `json:"message,omitempty"`
}

type AddFieldRequest struct {
	Name         string                  `json:"name" validate:"required"`
	Label        string                  `json:"label"`
	FieldType    string                  `json:"fieldType" validate:"required,oneof=text number select textarea date boolean file"`
	Required     bool                    `json:"required"`
	Placeholder  string                  `json:"placeholder"`
	DefaultValue interface{}             `json:"defaultValue"`
	Options      []FieldOptionPayload    `json:"options" validate:"dive"`
	Validation   *FieldValidationPayload `json:"validation"`
	Unit         string                  `json:"unit"`
	Order        int                     `json:"order"`
	Group        string                  `json:"group"`
	IsActive     *bool                   `json:"isActive"` // nil defaults to true
}

// UpdateFieldRequest is a field-by-field patch; nil members are left
// untouched. There is deliberately no id member: the stored id is never
// overwritten, even when the raw body carries one.
type UpdateFieldRequest struct {
	Name         *string                 `json:"name"`
	Label        *string                 `json:"label"`
	FieldType    *string                 `json:"fieldType" validate:"omitempty,oneof=text number select textarea date boolean file"`
	Required     *bool                   `json:"required"`
	Placeholder  *string                 `json:"placeholder"`
	DefaultValue interface{}             `json:"defaultValue"`
	Options      *[]FieldOptionPayload   `json:"options"`
	Validation   *FieldValidationPayload `json:"validation"`
	Unit         *string                 `json:"unit"`
	Order        *int                    `json:"order"`
	Group        *string                 `json:"group"`
	IsActive     *bool                   `json:"isActive"`
}

type FieldResponse struct {
	Id           *uuid.UUID              `json:"id"`
	Name         string                  `json:"name"`
	Label        string                  `json:"label"`
	FieldType    string                  `json:"fieldType"`
	Required     bool                    `json:"required"`
	Placeholder  string                  `json:"placeholder"`
	DefaultValue interface{}             `json:"defaultValue,omitempty"`
	Options      []FieldOptionPayload    `json:"options,omitempty"`
	Validation   *FieldValidationPayload `json:"validation,omitempty"`
	Unit         string                  `json:"unit,omitempty"`
	Order        int                     `json:"order"`
	Group        string                  `json:"group,omitempty"`
	IsActive     bool                    `json:"isActive"`
}

type SourceCategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type EffectiveFieldResponse struct {
	FieldResponse
	Inherited      bool                    `json:"inherited"`
	SourceCategory *SourceCategoryResponse `json:"sourceCategory,omitempty"`
}

type EffectiveFieldsResponse struct {
	Fields       []EffectiveFieldResponse `json:"fields"`
	ParentFields []EffectiveFieldResponse `json:"parentFields"`
}
