package mapper

import (
	"testing"
	"time"

	"auction-marketplace-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestCategoryRoundTrip(t *testing.T) {
	m := NewCategoryMapper()

	fieldId := uuid.New()
	parentId := uuid.New()
	min := 0.5
	updated := time.Now()

	src := &entity.Category{
		Id:              uuid.New(),
		Name:            "Compact Tractors",
		Slug:            "compact-tractors",
		ExplicitSlug:    true,
		Description:     "Small farm tractors",
		ParentId:        &parentId,
		Level:           1,
		Order:           3,
		IsActive:        true,
		InheritedFields: true,
		AuctionCount:    7,
		Fields: []entity.FieldDefinition{
			{
				Id:        &fieldId,
				Name:      "capacity",
				Label:     "Lifting Capacity",
				FieldType: entity.FieldTypeNumber,
				Required:  true,
				Validation: &entity.FieldValidation{
					Min:     &min,
					Message: "capacity must be positive",
				},
				Unit:     "kg",
				Order:    2,
				IsActive: true,
			},
			{
				Name:      "condition",
				FieldType: entity.FieldTypeSelect,
				Options: []entity.FieldOption{
					{Label: "New", Value: "new"},
					{Label: "Used", Value: "used"},
				},
				IsActive: false,
			},
		},
		Version:   4,
		CreatedAt: time.Now().Add(-time.Hour),
		UpdatedAt: &updated,
	}

	got := m.ToEntity(m.ToModel(src))

	assert.Equal(t, src.Id, got.Id)
	assert.Equal(t, src.Slug, got.Slug)
	assert.True(t, got.ExplicitSlug)
	assert.Equal(t, src.ParentId, got.ParentId)
	assert.Equal(t, src.Order, got.Order)
	assert.Equal(t, src.Version, got.Version)
	assert.Equal(t, src.AuctionCount, got.AuctionCount)

	require.Len(t, got.Fields, 2)
	capacity := got.Fields[0]
	assert.Equal(t, fieldId, *capacity.Id)
	assert.Equal(t, entity.FieldTypeNumber, capacity.FieldType)
	require.NotNil(t, capacity.Validation)
	assert.Equal(t, min, *capacity.Validation.Min)
	assert.Equal(t, "kg", capacity.Unit)

	condition := got.Fields[1]
	assert.Nil(t, condition.Id)
	assert.Len(t, condition.Options, 2)
	assert.False(t, condition.IsActive)
}

func TestDocsToFieldsLegacyDocuments(t *testing.T) {
	m := NewCategoryMapper()

	// pre-id documents: no id, no isActive key
	raw := datatypes.JSON([]byte(`[{"name":"brand","fieldType":"text","required":true,"order":0}]`))
	fields := m.docsToFields(raw)

	require.Len(t, fields, 1)
	assert.Nil(t, fields[0].Id)
	assert.True(t, fields[0].IsActive, "absent isActive reads as active")
	assert.True(t, fields[0].Required)
}

func TestDocsToFieldsCorruptColumn(t *testing.T) {
	m := NewCategoryMapper()

	fields := m.docsToFields(datatypes.JSON([]byte(`{not json`)))
	assert.Empty(t, fields)

	fields = m.docsToFields(nil)
	assert.Empty(t, fields)
}
