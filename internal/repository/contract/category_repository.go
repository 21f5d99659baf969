package contract

import (
	"context"
	"errors"

	"auction-marketplace-be/internal/entity"
	"auction-marketplace-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ErrVersionConflict is returned by Update when the category row was modified
// since it was read (optimistic concurrency). The caller should retry the
// whole logical operation.
var ErrVersionConflict = errors.New("category version conflict")

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Category, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Category, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
