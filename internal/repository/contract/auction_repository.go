package contract

import (
	"context"

	"auction-marketplace-be/internal/entity"
	"auction-marketplace-be/internal/repository/specification"

	"github.com/google/uuid"
)

// AuctionRepository is the referential-integrity collaborator boundary: the
// category core only counts auctions, the bidding engine owns everything else.
type AuctionRepository interface {
	Create(ctx context.Context, auction *entity.Auction) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Auction, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	CountNonDraftByCategory(ctx context.Context, categoryId uuid.UUID) (int64, error)
}
