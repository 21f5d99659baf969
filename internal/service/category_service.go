// FILE: internal/service/category_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"auction-marketplace-be/internal/dto"
	"auction-marketplace-be/internal/entity"
	"auction-marketplace-be/internal/pkg/apperror"
	"auction-marketplace-be/internal/pkg/logger"
	"auction-marketplace-be/internal/repository/contract"
	"auction-marketplace-be/internal/repository/specification"
	"auction-marketplace-be/internal/repository/unitofwork"
	"auction-marketplace-be/pkg/events"
	"auction-marketplace-be/pkg/slugify"

	"github.com/google/uuid"
)

// IEventPublisher is the outbound event boundary (NATS in production).
// Services tolerate a nil publisher: lifecycle events are best effort.
type IEventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type ICategoryService interface {
	Create(ctx context.Context, actorId *uuid.UUID, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error)
	Update(ctx context.Context, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetTree(ctx context.Context) ([]*dto.CategoryTreeNode, error)
	GetPublicParents(ctx context.Context) ([]*dto.PublicCategoryResponse, error)
	GetPublicChildren(ctx context.Context, slug string) ([]*dto.PublicCategoryResponse, error)
}

type categoryService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IEventPublisher
	logger     logger.ILogger
}

func NewCategoryService(
	uowFactory unitofwork.RepositoryFactory,
	publisher IEventPublisher,
	sysLogger logger.ILogger,
) ICategoryService {
	return &categoryService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     sysLogger,
	}
}

// validateParent resolves the parent and enforces the hierarchy rules: the
// parent must exist, must not be the category itself, and must be a root.
// Checking the parent's cached level instead of walking ancestry is only
// correct because depth is hard-capped at two levels.
func validateParent(ctx context.Context, repo contract.CategoryRepository, parentId uuid.UUID, selfId *uuid.UUID) (*entity.Category, error) {
	if selfId != nil && *selfId == parentId {
		return nil, apperror.NewInvalidHierarchy("category cannot be its own parent")
	}

	parent, err := repo.FindOne(ctx, specification.ByID{ID: parentId})
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, apperror.NewNotFound("parent category not found")
	}
	if parent.Level >= 1 {
		return nil, apperror.NewInvalidHierarchy("cannot create a category under a subcategory: depth is capped at two levels")
	}
	return parent, nil
}

func computeLevel(parent *entity.Category) int {
	if parent == nil {
		return 0
	}
	return 1
}

func (c *categoryService) Create(ctx context.Context, actorId *uuid.UUID, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	repo := uow.CategoryRepository()

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.NewValidation("category name is required")
	}

	explicitSlug := strings.TrimSpace(req.Slug) != ""
	var slug string
	if explicitSlug {
		slug = slugify.Make(req.Slug)
	} else {
		slug = slugify.Make(name)
	}
	if slug == "" {
		return nil, apperror.NewValidation("category name must contain at least one alphanumeric character")
	}

	existing, err := repo.FindOne(ctx, specification.ByName{Name: name})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflict("category name already in use")
	}

	existing, err = repo.FindOne(ctx, specification.BySlug{Slug: slug})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflict("category slug already in use")
	}

	var parent *entity.Category
	if req.ParentId != nil {
		parent, err = validateParent(ctx, repo, *req.ParentId, nil)
		if err != nil {
			return nil, err
		}
	}

	fields := make([]entity.FieldDefinition, 0, len(req.Fields))
	for i := range req.Fields {
		field, err := fieldFromAddRequest(&req.Fields[i])
		if err != nil {
			return nil, err
		}
		if ownFieldNameTaken(fields, field.Name, -1) {
			return nil, apperror.NewConflict("duplicate field name: " + field.Name)
		}
		fields = append(fields, field)
	}

	inheritedFields := true
	if req.InheritedFields != nil {
		inheritedFields = *req.InheritedFields
	}

	category := entity.Category{
		Id:              uuid.New(),
		Name:            name,
		Slug:            slug,
		ExplicitSlug:    explicitSlug,
		Description:     req.Description,
		Icon:            req.Icon,
		Image:           req.Image,
		ParentId:        nil,
		Level:           computeLevel(parent),
		Order:           req.Order,
		IsActive:        true,
		InheritedFields: inheritedFields,
		Fields:          fields,
		CreatedBy:       actorId,
		CreatedAt:       time.Now(),
	}
	if parent != nil {
		category.ParentId = &parent.Id
	}

	if err := repo.Create(ctx, &category); err != nil {
		return nil, err
	}

	c.publishEvent(ctx, events.CategoryCreated, &category)

	return toCategoryResponse(&category), nil
}

func (c *categoryService) Show(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	category, err := uow.CategoryRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFound("category not found")
	}

	return toCategoryResponse(category), nil
}

func (c *categoryService) Update(ctx context.Context, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	repo := uow.CategoryRepository()

	category, err := repo.FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFound("category not found")
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperror.NewValidation("category name is required")
		}
		existing, err := repo.FindOne(ctx, specification.ByName{Name: name}, specification.ExcludeID{ID: category.Id})
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflict("category name already in use")
		}
		category.Name = name

		// A rename regenerates the slug unless an explicit slug is in force.
		if req.Slug == nil && !category.ExplicitSlug {
			category.Slug = slugify.Make(name)
		}
	}

	if req.Slug != nil {
		trimmed := strings.TrimSpace(*req.Slug)
		if trimmed == "" {
			category.ExplicitSlug = false
			category.Slug = slugify.Make(category.Name)
		} else {
			category.ExplicitSlug = true
			category.Slug = slugify.Make(trimmed)
		}
	}
	if category.Slug == "" {
		return nil, apperror.NewValidation("category slug cannot be empty")
	}

	if req.Name != nil || req.Slug != nil {
		existing, err := repo.FindOne(ctx, specification.BySlug{Slug: category.Slug}, specification.ExcludeID{ID: category.Id})
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflict("category slug already in use")
		}
	}

	if req.RemoveParent {
		category.ParentId = nil
		category.Level = 0
	} else if req.ParentId != nil {
		parent, err := validateParent(ctx, repo, *req.ParentId, &category.Id)
		if err != nil {
			return nil, err
		}

		// Demoting a root that already has subcategories would push them to
		// level 2, which the model forbids.
		childCount, err := repo.Count(ctx, specification.ByParentID{ParentID: &category.Id})
		if err != nil {
			return nil, err
		}
		if childCount > 0 {
			return nil, apperror.NewInvalidHierarchy("category with subcategories cannot be moved under a parent")
		}

		category.ParentId = &parent.Id
		category.Level = computeLevel(parent)
	}

	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.Image != nil {
		category.Image = *req.Image
	}
	if req.Order != nil {
		category.Order = *req.Order
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if req.InheritedFields != nil {
		category.InheritedFields = *req.InheritedFields
	}

	now := time.Now()
	category.UpdatedAt = &now

	if err := repo.Update(ctx, category); err != nil {
		if errors.Is(err, contract.ErrVersionConflict) {
			return nil, apperror.NewRetryConflict("category was modified concurrently, please retry")
		}
		return nil, err
	}

	c.publishEvent(ctx, events.CategoryUpdated, category)

	return toCategoryResponse(category), nil
}

func (c *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	repo := uow.CategoryRepository()

	category, err := repo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFound("category not found")
	}

	// Referential guard: the auction engine owns the listings, we only count.
	auctionCount, err := uow.AuctionRepository().CountNonDraftByCategory(ctx, id)
	if err != nil {
		return err
	}
	if auctionCount > 0 {
		return apperror.NewReferentialIntegrity("category is referenced by existing auctions")
	}

	// Policy: a parent with active subcategories cannot be deleted, the admin
	// must move or delete the children first.
	childCount, err := repo.Count(ctx, specification.ByParentID{ParentID: &id}, specification.ActiveOnly{})
	if err != nil {
		return err
	}
	if childCount > 0 {
		return apperror.NewInvalidHierarchy("category has active subcategories")
	}

	if err := repo.Delete(ctx, id); err != nil {
		return err
	}

	c.publishEvent(ctx, events.CategoryDeleted, category)

	return nil
}

func (c *categoryService) GetTree(ctx context.Context) ([]*dto.CategoryTreeNode, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	categories, err := uow.CategoryRepository().FindAll(ctx,
		specification.ActiveOnly{},
		specification.OrderByDisplay{},
	)
	if err != nil {
		return nil, err
	}

	// Index first, then attach. Input is already sorted by (order, name), and
	// appends preserve that, so roots and children come out sorted.
	index := make(map[uuid.UUID]*dto.CategoryTreeNode, len(categories))
	for _, cat := range categories {
		index[cat.Id] = &dto.CategoryTreeNode{
			Id:           cat.Id,
			Name:         cat.Name,
			Slug:         cat.Slug,
			Icon:         cat.Icon,
			Image:        cat.Image,
			ParentId:     cat.ParentId,
			Level:        cat.Level,
			Order:        cat.Order,
			AuctionCount: cat.AuctionCount,
			Children:     make([]*dto.CategoryTreeNode, 0),
		}
	}

	roots := make([]*dto.CategoryTreeNode, 0)
	for _, cat := range categories {
		node := index[cat.Id]
		if cat.ParentId != nil {
			if parent, ok := index[*cat.ParentId]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
			// Parent deactivated or gone: surface as an orphaned root rather
			// than silently dropping the node.
		}
		roots = append(roots, node)
	}

	return roots, nil
}

func (c *categoryService) GetPublicParents(ctx context.Context) ([]*dto.PublicCategoryResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	categories, err := uow.CategoryRepository().FindAll(ctx,
		specification.ActiveOnly{},
		specification.ByLevel{Level: 0},
		specification.OrderByDisplay{},
	)
	if err != nil {
		return nil, err
	}

	return toPublicResponses(categories), nil
}

func (c *categoryService) GetPublicChildren(ctx context.Context, slug string) ([]*dto.PublicCategoryResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	repo := uow.CategoryRepository()

	parent, err := repo.FindOne(ctx, specification.BySlug{Slug: slug}, specification.ActiveOnly{})
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, apperror.NewNotFound("category not found")
	}

	children, err := repo.FindAll(ctx,
		specification.ByParentID{ParentID: &parent.Id},
		specification.ActiveOnly{},
		specification.OrderByDisplay{},
	)
	if err != nil {
		return nil, err
	}

	return toPublicResponses(children), nil
}

func (c *categoryService) publishEvent(ctx context.Context, eventType string, category *entity.Category) {
	if c.publisher == nil {
		return
	}
	if err := c.publisher.Publish(ctx, events.NewCategoryEvent(eventType, category.Id, category.Slug)); err != nil && c.logger != nil {
		c.logger.Warn("category_service", "failed to publish category event", map[string]interface{}{
			"event":       eventType,
			"category_id": category.Id.String(),
			"error":       err.Error(),
		})
	}
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	fields := make([]dto.FieldResponse, 0, len(c.Fields))
	for _, f := range c.Fields {
		fields = append(fields, toFieldResponse(f))
	}

	return &dto.CategoryResponse{
		Id:              c.Id,
		Name:            c.Name,
		Slug:            c.Slug,
		Description:     c.Description,
		Icon:            c.Icon,
		Image:           c.Image,
		ParentId:        c.ParentId,
		Level:           c.Level,
		Order:           c.Order,
		IsActive:        c.IsActive,
		InheritedFields: c.InheritedFields,
		AuctionCount:    c.AuctionCount,
		Fields:          fields,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func toPublicResponses(categories []*entity.Category) []*dto.PublicCategoryResponse {
	result := make([]*dto.PublicCategoryResponse, 0, len(categories))
	for _, cat := range categories {
		result = append(result, &dto.PublicCategoryResponse{
			Id:           cat.Id,
			Name:         cat.Name,
			Slug:         cat.Slug,
			Icon:         cat.Icon,
			Image:        cat.Image,
			Level:        cat.Level,
			Order:        cat.Order,
			AuctionCount: cat.AuctionCount,
		})
	}
	return result
}
