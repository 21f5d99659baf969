// FILE: internal/service/category_service_test.go
package service

import (
	"context"
	"net/http"
	"testing"

	"auction-marketplace-be/internal/dto"
	"auction-marketplace-be/internal/entity"
	"auction-marketplace-be/internal/pkg/apperror"
	"auction-marketplace-be/internal/repository/contract"
	"auction-marketplace-be/internal/repository/memory"
	"auction-marketplace-be/internal/repository/specification"
	"auction-marketplace-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStack() (ICategoryService, IFieldService, *memory.RepositoryFactory) {
	factory := memory.NewRepositoryFactory()
	return NewCategoryService(factory, nil, nil), NewFieldService(factory, nil), factory
}

func assertAppErrorKind(t *testing.T, err error, kind apperror.Kind) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, kind, appErr.Kind)
}

func mustCreate(t *testing.T, svc ICategoryService, req *dto.CreateCategoryRequest) *dto.CategoryResponse {
	t.Helper()
	res, err := svc.Create(context.Background(), nil, req)
	require.NoError(t, err)
	return res
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int { return &i }
func boolPtr(b bool) *bool { return &b }
func floatPtr(f float64) *float64 { return &f }

func TestCreateCategory(t *testing.T) {
	t.Run("derives slug from name", func(t *testing.T) {
		svc, _, _ := newTestStack()

		res := mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Heavy  Trucks!!"})

		assert.Equal(t, "Heavy  Trucks!!", res.Name)
		assert.Equal(t, "heavy-trucks", res.Slug)
		assert.Equal(t, 0, res.Level)
		assert.Nil(t, res.ParentId)
		assert.True(t, res.IsActive)
		assert.True(t, res.InheritedFields)
	})

	t.Run("explicit slug wins over derived", func(t *testing.T) {
		svc, _, _ := newTestStack()

		res := mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Tractors", Slug: "Farm Tractors"})

		assert.Equal(t, "farm-tractors", res.Slug)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		svc, _, _ := newTestStack()

		_, err := svc.Create(context.Background(), nil, &dto.CreateCategoryRequest{Name: "   "})
		assertAppErrorKind(t, err, apperror.KindValidation)
	})

	t.Run("rejects name with no slug material", func(t *testing.T) {
		svc, _, _ := newTestStack()

		_, err := svc.Create(context.Background(), nil, &dto.CreateCategoryRequest{Name: "!!!"})
		assertAppErrorKind(t, err, apperror.KindValidation)
	})

	t.Run("duplicate name conflicts case-insensitively", func(t *testing.T) {
		svc, _, _ := newTestStack()
		mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Tractors"})

		_, err := svc.Create(context.Background(), nil, &dto.CreateCategoryRequest{Name: "TRACTORS", Slug: "other"})
		assertAppErrorKind(t, err, apperror.KindConflict)

		// a uniqueness collision is deterministic, not a retry signal
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Status())
	})

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		svc, _, _ := newTestStack()
		mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Tractors"})

		_, err := svc.Create(context.Background(), nil, &dto.CreateCategoryRequest{Name: "Other", Slug: "tractors"})
		assertAppErrorKind(t, err, apperror.KindConflict)
	})

	t.Run("child of root gets level 1", func(t *testing.T) {
		svc, _, _ := newTestStack()
		parent := mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Tractors"})

		child := mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Compact Tractors", ParentId: &parent.Id})

		assert.Equal(t, 1, child.Level)
		require.NotNil(t, child.ParentId)
		assert.Equal(t, parent.Id, *child.ParentId)
	})

	t.Run("child of subcategory is rejected", func(t *testing.T) {
		svc, _, _ := newTestStack()
		parent := mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Tractors"})
		child := mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Compact Tractors", ParentId: &parent.Id})

		_, err := svc.Create(context.Background(), nil, &dto.CreateCategoryRequest{Name: "Mini Tractors", ParentId: &child.Id})
		assertAppErrorKind(t, err, apperror.KindInvalidHierarchy)
	})

	t.Run("unknown parent is not found", func(t *testing.T) {
		svc, _, _ := newTestStack()
		ghost := uuid.New()

		_, err := svc.Create(context.Background(), nil, &dto.CreateCategoryRequest{Name: "Tractors", ParentId: &ghost})
		assertAppErrorKind(t, err, apperror.KindNotFound)
	})

	t.Run("duplicate initial field names conflict", func(t *testing.T) {
		svc, _, _ := newTestStack()

		_, err := svc.Create(context.Background(), nil, &dto.CreateCategoryRequest{
			Name: "Tractors",
			Fields: []dto.AddFieldRequest{
				{Name: "brand", FieldType: "text"},
				{Name: "Brand", FieldType: "text"},
			},
		})
		assertAppErrorKind(t, err, apperror.KindConflict)
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("rename regenerates derived slug", func(t *testing.T) {
		svc, _, _ := newTestStack()
		cat := mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Tractors"})

		res, err := svc.Update(context.Background(), &dto.UpdateCategoryRequest{Id: cat.Id, Name: strPtr("Farm Machinery")})
		require.NoError(t, err)

		assert.Equal(t, "Farm Machinery", res.Name)
		assert.Equal(t, "farm-machinery", res.Slug)
	})

	t.Run("rename keeps explicit slug", func(t *testing.T) {
		svc, _, _ := newTestStack()
		cat := mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Tractors", Slug: "tractors-en"})

		res, err := svc.Update(context.Background(), &dto.UpdateCategoryRequest{Id: cat.Id, Name: strPtr("Farm Machinery")})
		require.NoError(t, err)

		assert.Equal(t, "tractors-en", res.Slug)
	})

	t.Run("blank slug patch reverts to derived", func(t *testing.T) {
		svc, _, _ := newTestStack()
		cat := mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Tractors", Slug: "tractors-en"})

		res, err := svc.Update(context.Background(), &dto.UpdateCategoryRequest{Id: cat.Id, Slug: strPtr("")})
		require.NoError(t, err)

		assert.Equal(t, "tractors", res.Slug)
	})

	t.Run("cannot be its own parent", func(t *testing.T) {
		svc, _, _ := newTestStack()
		cat := mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Tractors"})

		_, err := svc.Update(context.Background(), &dto.UpdateCategoryRequest{Id: cat.Id, ParentId: &cat.Id})
		assertAppErrorKind(t, err, apperror.KindInvalidHierarchy)
	})

	t.Run("root with children cannot be demoted", func(t *testing.T) {
		svc, _, _ := newTestStack()
		a := mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Tractors"})
		b := mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Trucks"})
		mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Compact Tractors", ParentId: &a.Id})

		_, err := svc.Update(context.Background(), &dto.UpdateCategoryRequest{Id: a.Id, ParentId: &b.Id})
		assertAppErrorKind(t, err, apperror.KindInvalidHierarchy)
	})

	t.Run("remove parent promotes to root", func(t *testing.T) {
		svc, _, _ := newTestStack()
		parent := mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Tractors"})
		child := mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Compact Tractors", ParentId: &parent.Id})

		res, err := svc.Update(context.Background(), &dto.UpdateCategoryRequest{Id: child.Id, RemoveParent: true})
		require.NoError(t, err)

		assert.Nil(t, res.ParentId)
		assert.Equal(t, 0, res.Level)
	})

	t.Run("renaming to an existing name conflicts", func(t *testing.T) {
		svc, _, _ := newTestStack()
		mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Tractors"})
		other := mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Trucks"})

		_, err := svc.Update(context.Background(), &dto.UpdateCategoryRequest{Id: other.Id, Name: strPtr("tractors")})
		assertAppErrorKind(t, err, apperror.KindConflict)
	})

	t.Run("unknown category is not found", func(t *testing.T) {
		svc, _, _ := newTestStack()

		_, err := svc.Update(context.Background(), &dto.UpdateCategoryRequest{Id: uuid.New(), Name: strPtr("X")})
		assertAppErrorKind(t, err, apperror.KindNotFound)
	})

	t.Run("losing the version race surfaces a retryable conflict", func(t *testing.T) {
		factory := memory.NewRepositoryFactory()
		setup := NewCategoryService(factory, nil, nil)
		cat := mustCreate(t, setup, &dto.CreateCategoryRequest{Name: "Tractors"})

		svc := NewCategoryService(&racingFactory{inner: factory}, nil, nil)
		_, err := svc.Update(context.Background(), &dto.UpdateCategoryRequest{Id: cat.Id, Description: strPtr("ours")})

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindConflict, appErr.Kind)
		assert.Equal(t, http.StatusConflict, appErr.Status())
	})
}

// racingFactory simulates losing the optimistic-concurrency race: another
// writer bumps the category version between our read and our write.
type racingFactory struct {
	inner unitofwork.RepositoryFactory
	raced bool
}

func (f *racingFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &racingUow{UnitOfWork: f.inner.NewUnitOfWork(ctx), raced: &f.raced}
}

type racingUow struct {
	unitofwork.UnitOfWork
	raced *bool
}

func (u *racingUow) CategoryRepository() contract.CategoryRepository {
	return &racingRepo{CategoryRepository: u.UnitOfWork.CategoryRepository(), raced: u.raced}
}

type racingRepo struct {
	contract.CategoryRepository
	raced *bool
}

func (r *racingRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Category, error) {
	cat, err := r.CategoryRepository.FindOne(ctx, specs...)
	if cat != nil && !*r.raced {
		*r.raced = true
		other := *cat
		other.Description = "other writer"
		if err := r.CategoryRepository.Update(ctx, &other); err != nil {
			return nil, err
		}
		// cat still carries the pre-race version
	}
	return cat, err
}

func TestDeleteCategory(t *testing.T) {
	t.Run("unknown category is not found", func(t *testing.T) {
		svc, _, _ := newTestStack()

		err := svc.Delete(context.Background(), uuid.New())
		assertAppErrorKind(t, err, apperror.KindNotFound)
	})

	t.Run("blocked by non-draft auctions", func(t *testing.T) {
		svc, _, factory := newTestStack()
		cat := mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Tractors"})

		ctx := context.Background()
		auctions := factory.NewUnitOfWork(ctx).AuctionRepository()
		require.NoError(t, auctions.Create(ctx, &entity.Auction{CategoryId: cat.Id, Title: "John Deere 5075E", Status: entity.AuctionStatusActive}))

		err := svc.Delete(ctx, cat.Id)
		assertAppErrorKind(t, err, apperror.KindReferentialIntegrity)
	})

	t.Run("draft auctions do not block", func(t *testing.T) {
		svc, _, factory := newTestStack()
		cat := mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Tractors"})

		ctx := context.Background()
		auctions := factory.NewUnitOfWork(ctx).AuctionRepository()
		require.NoError(t, auctions.Create(ctx, &entity.Auction{CategoryId: cat.Id, Title: "Draft listing", Status: entity.AuctionStatusDraft}))

		require.NoError(t, svc.Delete(ctx, cat.Id))

		_, err := svc.Show(ctx, cat.Id)
		assertAppErrorKind(t, err, apperror.KindNotFound)
	})

	t.Run("blocked by active subcategories", func(t *testing.T) {
		svc, _, _ := newTestStack()
		parent := mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Tractors"})
		child := mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Compact Tractors", ParentId: &parent.Id})

		err := svc.Delete(context.Background(), parent.Id)
		assertAppErrorKind(t, err, apperror.KindInvalidHierarchy)

		// deactivating the child unblocks the parent
		_, err = svc.Update(context.Background(), &dto.UpdateCategoryRequest{Id: child.Id, IsActive: boolPtr(false)})
		require.NoError(t, err)
		require.NoError(t, svc.Delete(context.Background(), parent.Id))
	})
}

func TestGetTree(t *testing.T) {
	t.Run("attaches children and sorts by order then name", func(t *testing.T) {
		svc, _, _ := newTestStack()
		mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Trucks", Order: 1})
		tractors := mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Tractors", Order: 0})
		mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Standard Tractors", ParentId: &tractors.Id, Order: 1})
		mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Compact Tractors", ParentId: &tractors.Id, Order: 0})

		tree, err := svc.GetTree(context.Background())
		require.NoError(t, err)

		require.Len(t, tree, 2)
		assert.Equal(t, "Tractors", tree[0].Name)
		assert.Equal(t, "Trucks", tree[1].Name)

		require.Len(t, tree[0].Children, 2)
		assert.Equal(t, "Compact Tractors", tree[0].Children[0].Name)
		assert.Equal(t, "Standard Tractors", tree[0].Children[1].Name)
		assert.Empty(t, tree[1].Children)
	})

	t.Run("equal order ties break on name", func(t *testing.T) {
		svc, _, _ := newTestStack()
		mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Trucks"})
		mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Excavators"})
		mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Tractors"})

		tree, err := svc.GetTree(context.Background())
		require.NoError(t, err)

		require.Len(t, tree, 3)
		assert.Equal(t, "Excavators", tree[0].Name)
		assert.Equal(t, "Tractors", tree[1].Name)
		assert.Equal(t, "Trucks", tree[2].Name)
	})

	t.Run("child of a deactivated parent surfaces as root", func(t *testing.T) {
		svc, _, _ := newTestStack()
		parent := mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Tractors"})
		child := mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Compact Tractors", ParentId: &parent.Id})

		_, err := svc.Update(context.Background(), &dto.UpdateCategoryRequest{Id: parent.Id, IsActive: boolPtr(false)})
		require.NoError(t, err)

		tree, err := svc.GetTree(context.Background())
		require.NoError(t, err)

		require.Len(t, tree, 1)
		assert.Equal(t, child.Id, tree[0].Id)
	})
}

func TestPublicListings(t *testing.T) {
	t.Run("parents lists active roots only", func(t *testing.T) {
		svc, _, _ := newTestStack()
		tractors := mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Tractors"})
		mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Compact Tractors", ParentId: &tractors.Id})
		hidden := mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Trucks"})
		_, err := svc.Update(context.Background(), &dto.UpdateCategoryRequest{Id: hidden.Id, IsActive: boolPtr(false)})
		require.NoError(t, err)

		parents, err := svc.GetPublicParents(context.Background())
		require.NoError(t, err)

		require.Len(t, parents, 1)
		assert.Equal(t, "Tractors", parents[0].Name)
	})

	t.Run("children by parent slug", func(t *testing.T) {
		svc, _, _ := newTestStack()
		tractors := mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Tractors"})
		mustCreate(t, svc, &dto.CreateCategoryRequest{Name: "Compact Tractors", ParentId: &tractors.Id})

		children, err := svc.GetPublicChildren(context.Background(), "tractors")
		require.NoError(t, err)

		require.Len(t, children, 1)
		assert.Equal(t, "compact-tractors", children[0].Slug)
	})

	t.Run("unknown parent slug is not found", func(t *testing.T) {
		svc, _, _ := newTestStack()

		_, err := svc.GetPublicChildren(context.Background(), "nope")
		assertAppErrorKind(t, err, apperror.KindNotFound)
	})
}
