package unitofwork

import (
	"context"

	"auction-marketplace-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CategoryRepository() contract.CategoryRepository
	AuctionRepository() contract.AuctionRepository
}
