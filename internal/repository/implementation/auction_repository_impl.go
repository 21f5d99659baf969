package implementation

import (
	"context"

	"auction-marketplace-be/internal/entity"
	"auction-marketplace-be/internal/mapper"
	"auction-marketplace-be/internal/model"
	"auction-marketplace-be/internal/repository/contract"
	"auction-marketplace-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuctionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AuctionMapper
}

func NewAuctionRepository(db *gorm.DB) contract.AuctionRepository {
	return &AuctionRepositoryImpl{
		db:     db,
		mapper: mapper.NewAuctionMapper(),
	}
}

func (r *AuctionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AuctionRepositoryImpl) Create(ctx context.Context, auction *entity.Auction) error {
	m := r.mapper.ToModel(auction)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*auction = *r.mapper.ToEntity(m)
	return nil
}

func (r *AuctionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Auction, error) {
	var models []*model.Auction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *AuctionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Auction{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AuctionRepositoryImpl) CountNonDraftByCategory(ctx context.Context, categoryId uuid.UUID) (int64, error) {
	return r.Count(ctx,
		specification.ByCategoryID{CategoryID: categoryId},
		specification.NonDraft{},
	)
}
