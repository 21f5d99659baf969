package memory

import (
	"context"
	"sync"

	"auction-marketplace-be/internal/entity"
	"auction-marketplace-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type AuctionRepository struct {
	store *cache.Cache
	mu    sync.Mutex
}

func NewAuctionRepository() *AuctionRepository {
	return &AuctionRepository{
		store: cache.New(cache.NoExpiration, cache.NoExpiration),
	}
}

func matchAuction(a *entity.Auction, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByCategoryID:
			if a.CategoryId != s.CategoryID {
				return false
			}
		case specification.NonDraft:
			if a.Status == entity.AuctionStatusDraft {
				return false
			}
		}
	}
	return true
}

func (r *AuctionRepository) Create(ctx context.Context, auction *entity.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if auction.Id == uuid.Nil {
		auction.Id = uuid.New()
	}
	clone := *auction
	r.store.Set(auction.Id.String(), &clone, cache.NoExpiration)
	return nil
}

func (r *AuctionRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matches := make([]*entity.Auction, 0)
	for _, item := range r.store.Items() {
		a := item.Object.(*entity.Auction)
		if matchAuction(a, specs) {
			clone := *a
			matches = append(matches, &clone)
		}
	}
	return matches, nil
}

func (r *AuctionRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	matches, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(matches)), nil
}

func (r *AuctionRepository) CountNonDraftByCategory(ctx context.Context, categoryId uuid.UUID) (int64, error) {
	return r.Count(ctx,
		specification.ByCategoryID{CategoryID: categoryId},
		specification.NonDraft{},
	)
}
