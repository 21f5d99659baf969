// FILE: internal/service/field_service.go
package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"auction-marketplace-be/internal/dto"
	"auction-marketplace-be/internal/entity"
	"auction-marketplace-be/internal/pkg/apperror"
	"auction-marketplace-be/internal/pkg/logger"
	"auction-marketplace-be/internal/repository/contract"
	"auction-marketplace-be/internal/repository/specification"
	"auction-marketplace-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IFieldService interface {
	AddField(ctx context.Context, categoryId uuid.UUID, req *dto.AddFieldRequest) (*dto.FieldResponse, error)
	UpdateField(ctx context.Context, categoryId uuid.UUID, fieldIdOrName string, req *dto.UpdateFieldRequest) (*dto.FieldResponse, error)
	DeleteField(ctx context.Context, categoryId uuid.UUID, fieldId uuid.UUID) error
	ResolveEffectiveFields(ctx context.Context, categoryId uuid.UUID) (*dto.EffectiveFieldsResponse, error)
	ResolveEffectiveFieldsBySlug(ctx context.Context, slug string) (*dto.EffectiveFieldsResponse, error)
}

type fieldService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewFieldService(uowFactory unitofwork.RepositoryFactory, sysLogger logger.ILogger) IFieldService {
	return &fieldService{
		uowFactory: uowFactory,
		logger:     sysLogger,
	}
}

func normalizeFieldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ownFieldNameTaken checks name uniqueness against the category's OWN fields
// only. Inherited fields are deliberately out of scope: a subcategory may
// shadow a parent field with its own definition.
func ownFieldNameTaken(fields []entity.FieldDefinition, name string, excludeIdx int) bool {
	for i, f := range fields {
		if i == excludeIdx {
			continue
		}
		if strings.EqualFold(f.Name, name) {
			return true
		}
	}
	return false
}

// validateFieldShape enforces the fieldType/options/validation pairing at the
// registry boundary instead of at render time.
func validateFieldShape(fieldType entity.FieldType, options []entity.FieldOption, validation *entity.FieldValidation) error {
	if !entity.ValidFieldType(fieldType) {
		return apperror.NewValidation("unsupported field type: " + string(fieldType))
	}

	if fieldType == entity.FieldTypeSelect {
		if len(options) == 0 {
			return apperror.NewValidation("select fields require at least one option")
		}
	} else if len(options) > 0 {
		return apperror.NewValidation("options are only allowed on select fields")
	}

	if validation == nil {
		return nil
	}

	switch fieldType {
	case entity.FieldTypeText, entity.FieldTypeTextarea:
		if validation.Min != nil || validation.Max != nil {
			return apperror.NewValidation("min/max constraints are not valid for text fields")
		}
	case entity.FieldTypeNumber, entity.FieldTypeDate:
		if validation.MinLength != nil || validation.MaxLength != nil || validation.Pattern != "" {
			return apperror.NewValidation("length/pattern constraints are not valid for " + string(fieldType) + " fields")
		}
	default:
		if validation.Min != nil || validation.Max != nil ||
			validation.MinLength != nil || validation.MaxLength != nil || validation.Pattern != "" {
			return apperror.NewValidation("validation constraints are not valid for " + string(fieldType) + " fields")
		}
	}
	return nil
}

func optionsFromPayload(payload []dto.FieldOptionPayload) []entity.FieldOption {
	options := make([]entity.FieldOption, 0, len(payload))
	for _, o := range payload {
		options = append(options, entity.FieldOption{Label: o.Label, Value: o.Value})
	}
	return options
}

func validationFromPayload(payload *dto.FieldValidationPayload) *entity.FieldValidation {
	if payload == nil {
		return nil
	}
	return &entity.FieldValidation{
		Min:       payload.Min,
		Max:       payload.Max,
		MinLength: payload.MinLength,
		MaxLength: payload.MaxLength,
		Pattern:   payload.Pattern,
		Message:   payload.Message,
	}
}

func fieldFromAddRequest(req *dto.AddFieldRequest) (entity.FieldDefinition, error) {
	name := normalizeFieldName(req.Name)
	if name == "" {
		return entity.FieldDefinition{}, apperror.NewValidation("field name is required")
	}

	fieldType := entity.FieldType(req.FieldType)
	options := optionsFromPayload(req.Options)
	validation := validationFromPayload(req.Validation)
	if err := validateFieldShape(fieldType, options, validation); err != nil {
		return entity.FieldDefinition{}, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	id := uuid.New()
	return entity.FieldDefinition{
		Id:           &id,
		Name:         name,
		Label:        req.Label,
		FieldType:    fieldType,
		Required:     req.Required,
		Placeholder:  req.Placeholder,
		DefaultValue: req.DefaultValue,
		Options:      options,
		Validation:   validation,
		Unit:         req.Unit,
		Order:        req.Order,
		Group:        req.Group,
		IsActive:     isActive,
	}, nil
}

func (s *fieldService) AddField(ctx context.Context, categoryId uuid.UUID, req *dto.AddFieldRequest) (*dto.FieldResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.CategoryRepository()

	category, err := repo.FindOne(ctx, specification.ByID{ID: categoryId})
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFound("category not found")
	}

	field, err := fieldFromAddRequest(req)
	if err != nil {
		return nil, err
	}

	if ownFieldNameTaken(category.Fields, field.Name, -1) {
		return nil, apperror.NewConflict("field name already in use: " + field.Name)
	}

	// Appending keeps insertion order, the tiebreak for equal order values.
	category.Fields = append(category.Fields, field)

	if err := s.saveCategory(ctx, repo, category); err != nil {
		return nil, err
	}

	res := toFieldResponse(field)
	return &res, nil
}

// resolveFieldIndex locates a field by id first, then by name. The name
// fallback supports records persisted before ids were mandatory.
func resolveFieldIndex(fields []entity.FieldDefinition, fieldIdOrName string) int {
	if id, err := uuid.Parse(fieldIdOrName); err == nil {
		for i := range fields {
			if fields[i].Id != nil && *fields[i].Id == id {
				return i
			}
		}
	}

	name := normalizeFieldName(fieldIdOrName)
	for i := range fields {
		if strings.EqualFold(fields[i].Name, name) {
			return i
		}
	}
	return -1
}

func (s *fieldService) UpdateField(ctx context.Context, categoryId uuid.UUID, fieldIdOrName string, req *dto.UpdateFieldRequest) (*dto.FieldResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.CategoryRepository()

	category, err := repo.FindOne(ctx, specification.ByID{ID: categoryId})
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFound("category not found")
	}

	idx := resolveFieldIndex(category.Fields, fieldIdOrName)
	if idx < 0 {
		return nil, apperror.NewNotFound("field not found: " + fieldIdOrName)
	}
	field := &category.Fields[idx]

	// Legacy record: assign an id before touching anything else. The patch can
	// never overwrite it, the DTO has no id member.
	if field.Id == nil {
		id := uuid.New()
		field.Id = &id
		if s.logger != nil {
			s.logger.Warn("field_service", "backfilled missing field id", map[string]interface{}{
				"category_id": category.Id.String(),
				"field_name":  field.Name,
				"field_id":    id.String(),
			})
		}
	}

	if req.Name != nil {
		name := normalizeFieldName(*req.Name)
		if name == "" {
			return nil, apperror.NewValidation("field name cannot be empty")
		}
		if ownFieldNameTaken(category.Fields, name, idx) {
			return nil, apperror.NewConflict("field name already in use: " + name)
		}
		field.Name = name
	}
	if req.Label != nil {
		field.Label = *req.Label
	}
	if req.FieldType != nil {
		field.FieldType = entity.FieldType(*req.FieldType)
	}
	if req.Required != nil {
		field.Required = *req.Required
	}
	if req.Placeholder != nil {
		field.Placeholder = *req.Placeholder
	}
	if req.DefaultValue != nil {
		field.DefaultValue = req.DefaultValue
	}
	if req.Options != nil {
		field.Options = optionsFromPayload(*req.Options)
	}
	if req.Validation != nil {
		field.Validation = validationFromPayload(req.Validation)
	}
	if req.Unit != nil {
		field.Unit = *req.Unit
	}
	if req.Order != nil {
		field.Order = *req.Order
	}
	if req.Group != nil {
		field.Group = *req.Group
	}
	if req.IsActive != nil {
		field.IsActive = *req.IsActive
	}

	// Re-check the tag/shape pairing against the patched record.
	if err := validateFieldShape(field.FieldType, field.Options, field.Validation); err != nil {
		return nil, err
	}

	if err := s.saveCategory(ctx, repo, category); err != nil {
		return nil, err
	}

	res := toFieldResponse(*field)
	return &res, nil
}

func (s *fieldService) DeleteField(ctx context.Context, categoryId uuid.UUID, fieldId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.CategoryRepository()

	category, err := repo.FindOne(ctx, specification.ByID{ID: categoryId})
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFound("category not found")
	}

	idx := -1
	for i := range category.Fields {
		if category.Fields[i].Id != nil && *category.Fields[i].Id == fieldId {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperror.NewNotFound("field not found")
	}

	category.Fields = append(category.Fields[:idx], category.Fields[idx+1:]...)

	return s.saveCategory(ctx, repo, category)
}

func (s *fieldService) ResolveEffectiveFields(ctx context.Context, categoryId uuid.UUID) (*dto.EffectiveFieldsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.CategoryRepository()

	category, err := repo.FindOne(ctx, specification.ByID{ID: categoryId})
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFound("category not found")
	}

	return s.resolve(ctx, repo, category, true)
}

func (s *fieldService) ResolveEffectiveFieldsBySlug(ctx context.Context, slug string) (*dto.EffectiveFieldsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.CategoryRepository()

	category, err := repo.FindOne(ctx, specification.BySlug{Slug: slug}, specification.ActiveOnly{})
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFound("category not found")
	}

	// Public form rendering: inactive field definitions are hidden.
	return s.resolve(ctx, repo, category, false)
}

// resolve computes the effective field list. This is a pure read: legacy ids
// and label/placeholder fallbacks are filled in on the response only, nothing
// is persisted.
func (s *fieldService) resolve(ctx context.Context, repo contract.CategoryRepository, category *entity.Category, includeInactive bool) (*dto.EffectiveFieldsResponse, error) {
	working := make([]entity.EffectiveField, 0, len(category.Fields))

	// Inherited fields come first; inheritance is exactly one level deep,
	// matching the two-level tree cap.
	if category.InheritedFields && category.ParentId != nil {
		parent, err := repo.FindOne(ctx, specification.ByID{ID: *category.ParentId})
		if err != nil {
			return nil, err
		}
		if parent != nil {
			source := &entity.SourceCategory{Name: parent.Name, Slug: parent.Slug}
			for _, f := range parent.Fields {
				if !includeInactive && !f.IsActive {
					continue
				}
				working = append(working, entity.EffectiveField{
					FieldDefinition: f,
					Inherited:       true,
					SourceCategory:  source,
				})
			}
		}
	}

	for _, f := range category.Fields {
		if !includeInactive && !f.IsActive {
			continue
		}
		working = append(working, entity.EffectiveField{
			FieldDefinition: f,
			Inherited:       false,
		})
	}

	// Stable: equal order values keep their list position, so inherited
	// entries stay ahead of own entries and each group keeps its own order.
	sort.SliceStable(working, func(i, j int) bool {
		return working[i].Order < working[j].Order
	})

	fields := make([]dto.EffectiveFieldResponse, 0, len(working))
	parentFields := make([]dto.EffectiveFieldResponse, 0)
	for _, ef := range working {
		res := toEffectiveFieldResponse(ef)
		fields = append(fields, res)
		if ef.Inherited {
			parentFields = append(parentFields, res)
		}
	}

	return &dto.EffectiveFieldsResponse{
		Fields:       fields,
		ParentFields: parentFields,
	}, nil
}

func (s *fieldService) saveCategory(ctx context.Context, repo contract.CategoryRepository, category *entity.Category) error {
	now := time.Now()
	category.UpdatedAt = &now

	if err := repo.Update(ctx, category); err != nil {
		if errors.Is(err, contract.ErrVersionConflict) {
			return apperror.NewRetryConflict("category was modified concurrently, please retry")
		}
		return err
	}
	return nil
}

func toFieldResponse(f entity.FieldDefinition) dto.FieldResponse {
	options := make([]dto.FieldOptionPayload, 0, len(f.Options))
	for _, o := range f.Options {
		options = append(options, dto.FieldOptionPayload{Label: o.Label, Value: o.Value})
	}

	var validation *dto.FieldValidationPayload
	if f.Validation != nil {
		validation = &dto.FieldValidationPayload{
			Min:       f.Validation.Min,
			Max:       f.Validation.Max,
			MinLength: f.Validation.MinLength,
			MaxLength: f.Validation.MaxLength,
			Pattern:   f.Validation.Pattern,
			Message:   f.Validation.Message,
		}
	}

	return dto.FieldResponse{
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
		IsActive:     f.IsActive,
	}
}

func toEffectiveFieldResponse(ef entity.EffectiveField) dto.EffectiveFieldResponse {
	res := dto.EffectiveFieldResponse{
		FieldResponse: toFieldResponse(ef.FieldDefinition),
		Inherited:     ef.Inherited,
	}

	// Response-only backfills: a legacy record with no id still goes out with
	// one, and label/placeholder are always present.
	if res.Id == nil {
		id := uuid.New()
		res.Id = &id
	}
	if res.Label == "" {
		res.Label = res.Name
	}
	if res.Placeholder == "" {
		res.Placeholder = "Enter " + strings.ToLower(res.Label)
	}

	if ef.SourceCategory != nil {
		res.SourceCategory = &dto.SourceCategoryResponse{
			Name: ef.SourceCategory.Name,
			Slug: ef.SourceCategory.Slug,
		}
	}
	return res
}
