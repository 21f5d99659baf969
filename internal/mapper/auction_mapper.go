package mapper

import (
	"time"

	"auction-marketplace-be/internal/entity"
	"auction-marketplace-be/internal/model"
)

type AuctionMapper struct{}

func NewAuctionMapper() *AuctionMapper {
	return &AuctionMapper{}
}

func (m *AuctionMapper) ToEntity(a *model.Auction) *entity.Auction {
	if a == nil {
		return nil
	}

	var updatedAt *time.Time
	if !a.UpdatedAt.IsZero() {
		t := a.UpdatedAt
		updatedAt = &t
	}

	return &entity.Auction{
		Id:         a.Id,
		CategoryId: a.CategoryId,
		Title:      a.Title,
		Status:     entity.AuctionStatus(a.Status),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *AuctionMapper) ToModel(a *entity.Auction) *model.Auction {
	if a == nil {
		return nil
	}

	var updatedAt time.Time
	if a.UpdatedAt != nil {
		updatedAt = *a.UpdatedAt
	}

	return &model.Auction{
		Id:         a.Id,
		CategoryId: a.CategoryId,
		Title:      a.Title,
		Status:     string(a.Status),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *AuctionMapper) ToEntities(auctions []*model.Auction) []*entity.Auction {
	entities := make([]*entity.Auction, len(auctions))
	for i, a := range auctions {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
