package mapper

import (
	"encoding/json"
	"time"

	"auction-marketplace-be/internal/entity"
	"auction-marketplace-be/internal/model"

	"gorm.io/datatypes"
)

type CategoryMapper struct{}

func NewCategoryMapper() *CategoryMapper {
	return &CategoryMapper{}
}

func (m *CategoryMapper) ToEntity(c *model.Category) *entity.Category {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Category{
		Id:              c.Id,
		Name:            c.Name,
		Slug:            c.Slug,
		ExplicitSlug:    c.ExplicitSlug,
		Description:     c.Description,
		Icon:            c.Icon,
		Image:           c.Image,
		ParentId:        c.ParentId,
		Level:           c.Level,
		Order:           c.DisplayOrder,
		IsActive:        c.IsActive,
		InheritedFields: c.InheritedFields,
		AuctionCount:    c.AuctionCount,
		Fields:          m.docsToFields(c.Fields),
		CreatedBy:       c.CreatedBy,
		Version:         c.Version,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *CategoryMapper) ToModel(c *entity.Category) *model.Category {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Category{
		Id:              c.Id,
		Name:            c.Name,
		Slug:            c.Slug,
		ExplicitSlug:    c.ExplicitSlug,
		Description:     c.Description,
		Icon:            c.Icon,
		Image:           c.Image,
		ParentId:        c.ParentId,
		Level:           c.Level,
		DisplayOrder:    c.Order,
		IsActive:        c.IsActive,
		InheritedFields: c.InheritedFields,
		AuctionCount:    c.AuctionCount,
		Fields:          m.fieldsToDocs(c.Fields),
		CreatedBy:       c.CreatedBy,
		Version:         c.Version,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *CategoryMapper) ToEntities(categories []*model.Category) []*entity.Category {
	entities := make([]*entity.Category, len(categories))
	for i, c := range categories {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *CategoryMapper) docsToFields(raw datatypes.JSON) []entity.FieldDefinition {
	if len(raw) == 0 {
		return []entity.FieldDefinition{}
	}

	var docs []model.FieldDefinitionDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		// A corrupt fields column should not take the whole category down.
		return []entity.FieldDefinition{}
	}

	fields := make([]entity.FieldDefinition, 0, len(docs))
	for _, d := range docs {
		fields = append(fields, docToField(d))
	}
	return fields
}

func (m *CategoryMapper) fieldsToDocs(fields []entity.FieldDefinition) datatypes.JSON {
	docs := make([]model.FieldDefinitionDoc, 0, len(fields))
	for _, f := range fields {
		docs = append(docs, fieldToDoc(f))
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}

func docToField(d model.FieldDefinitionDoc) entity.FieldDefinition {
	options := make([]entity.FieldOption, 0, len(d.Options))
	for _, o := range d.Options {
		options = append(options, entity.FieldOption{Label: o.Label, Value: o.Value})
	}

	var validation *entity.FieldValidation
	if d.Validation != nil {
		validation = &entity.FieldValidation{
			Min:       d.Validation.Min,
			Max:       d.Validation.Max,
			MinLength: d.Validation.MinLength,
			MaxLength: d.Validation.MaxLength,
			Pattern:   d.Validation.Pattern,
			Message:   d.Validation.Message,
		}
	}

	// Legacy docs have no isActive key; absence means active.
	isActive := true
	if d.IsActive != nil {
		isActive = *d.IsActive
	}

	return entity.FieldDefinition{
		Id:           d.Id,
		Name:         d.Name,
		Label:        d.Label,
		FieldType:    entity.FieldType(d.FieldType),
		Required:     d.Required,
		Placeholder:  d.Placeholder,
		DefaultValue: d.DefaultValue,
		Options:      options,
		Validation:   validation,
		Unit:         d.Unit,
		Order:        d.Order,
		Group:        d.Group,
		IsActive:     isActive,
	}
}

func fieldToDoc(f entity.FieldDefinition) model.FieldDefinitionDoc {
	options := make([]model.FieldOptionDoc, 0, len(f.Options))
	for _, o := range f.Options {
		options = append(options, model.FieldOptionDoc{Label: o.Label, Value: o.Value})
	}

	var validation *model.FieldValidationDoc
	if f.Validation != nil {
		validation = &model.FieldValidationDoc{
			Min:       f.Validation.Min,
			Max:       f.Validation.Max,
			MinLength: f.Validation.MinLength,
			MaxLength: f.Validation.MaxLength,
			Pattern:   f.Validation.Pattern,
			Message:   f.Validation.Message,
		}
	}

	isActive := f.IsActive
	return model.FieldDefinitionDoc{
		Id:           f.Id,
		Name:         f.Name,
		Label:        f.Label,
		FieldType:    string(f.FieldType),
		Required:     f.Required,
		Placeholder:  f.Placeholder,
		DefaultValue: f.DefaultValue,
		Options:      options,
		Validation:   validation,
		Unit:         f.Unit,
		Order:        f.Order,
		Group:        f.Group,
		IsActive:     &isActive,
	}
}
