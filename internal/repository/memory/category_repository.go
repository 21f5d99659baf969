// FILE: internal/repository/memory/category_repository.go
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"auction-marketplace-be/internal/entity"
	"auction-marketplace-be/internal/repository/contract"
	"auction-marketplace-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// CategoryRepository is an in-memory implementation of the category contract
// backed by go-cache. It interprets the same specification values the GORM
// implementation applies as SQL, including the optimistic version check, so
// the services can be exercised without a database.
type CategoryRepository struct {
	store *cache.Cache
	mu    sync.Mutex
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{
		store: cache.New(cache.NoExpiration, cache.NoExpiration),
	}
}

func cloneCategory(c *entity.Category) *entity.Category {
	if c == nil {
		return nil
	}
	out := *c
	if c.ParentId != nil {
		p := *c.ParentId
		out.ParentId = &p
	}
	if c.CreatedBy != nil {
		b := *c.CreatedBy
		out.CreatedBy = &b
	}
	if c.UpdatedAt != nil {
		t := *c.UpdatedAt
		out.UpdatedAt = &t
	}
	out.Fields = make([]entity.FieldDefinition, len(c.Fields))
	for i, f := range c.Fields {
		out.Fields[i] = cloneField(f)
	}
	return &out
}

func cloneField(f entity.FieldDefinition) entity.FieldDefinition {
	out := f
	if f.Id != nil {
		id := *f.Id
		out.Id = &id
	}
	out.Options = append([]entity.FieldOption(nil), f.Options...)
	if f.Validation != nil {
		v := *f.Validation
		out.Validation = &v
	}
	return out
}

func matchCategory(c *entity.Category, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if c.Id != s.ID {
				return false
			}
		case specification.ByIDs:
			found := false
			for _, id := range s.IDs {
				if c.Id == id {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case specification.BySlug:
			if c.Slug != s.Slug {
				return false
			}
		case specification.ByName:
			if !strings.EqualFold(strings.TrimSpace(c.Name), strings.TrimSpace(s.Name)) {
				return false
			}
		case specification.ByParentID:
			if s.ParentID == nil {
				if c.ParentId != nil {
					return false
				}
			} else if c.ParentId == nil || *c.ParentId != *s.ParentID {
				return false
			}
		case specification.ByLevel:
			if c.Level != s.Level {
				return false
			}
		case specification.ActiveOnly:
			if !c.IsActive {
				return false
			}
		case specification.ExcludeID:
			if c.Id == s.ID {
				return false
			}
		case specification.OrderByDisplay:
			// ordering, handled after filtering
		}
	}
	return true
}

func wantsDisplayOrder(specs []specification.Specification) bool {
	for _, spec := range specs {
		if _, ok := spec.(specification.OrderByDisplay); ok {
			return true
		}
	}
	return false
}

func (r *CategoryRepository) all() []*entity.Category {
	items := r.store.Items()
	out := make([]*entity.Category, 0, len(items))
	for _, item := range items {
		out = append(out, item.Object.(*entity.Category))
	}
	return out
}

func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if category.Id == uuid.Nil {
		category.Id = uuid.New()
	}
	r.store.Set(category.Id.String(), cloneCategory(category), cache.NoExpiration)
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, found := r.store.Get(category.Id.String())
	if !found {
		return contract.ErrVersionConflict
	}
	if existing.(*entity.Category).Version != category.Version {
		return contract.ErrVersionConflict
	}

	category.Version++
	r.store.Set(category.Id.String(), cloneCategory(category), cache.NoExpiration)
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store.Delete(id.String())
	return nil
}

func (r *CategoryRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Category, error) {
	matches, err := r.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *CategoryRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matches := make([]*entity.Category, 0)
	for _, c := range r.all() {
		if matchCategory(c, specs) {
			matches = append(matches, cloneCategory(c))
		}
	}

	if wantsDisplayOrder(specs) {
		sort.SliceStable(matches, func(i, j int) bool {
			if matches[i].Order != matches[j].Order {
				return matches[i].Order < matches[j].Order
			}
			return matches[i].Name < matches[j].Name
		})
	} else {
		// deterministic fallback so tests are not map-order dependent
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].CreatedAt.Before(matches[j].CreatedAt)
		})
	}

	return matches, nil
}

func (r *CategoryRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	matches, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(matches)), nil
}
