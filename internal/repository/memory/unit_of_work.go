package memory

import (
	"context"

	"auction-marketplace-be/internal/repository/contract"
	"auction-marketplace-be/internal/repository/unitofwork"
)

// UnitOfWork is the in-memory counterpart of the GORM unit of work. Begin,
// Commit and Rollback are accepted but not transactional: writes apply
// immediately, which is enough for service-level tests.
type UnitOfWork struct {
	categories *CategoryRepository
	auctions   *AuctionRepository
}

func (u *UnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *UnitOfWork) Commit() error                   { return nil }
func (u *UnitOfWork) Rollback() error                 { return nil }

func (u *UnitOfWork) CategoryRepository() contract.CategoryRepository {
	return u.categories
}

func (u *UnitOfWork) AuctionRepository() contract.AuctionRepository {
	return u.auctions
}

type RepositoryFactory struct {
	uow *UnitOfWork
}

func NewRepositoryFactory() *RepositoryFactory {
	return &RepositoryFactory{
		uow: &UnitOfWork{
			categories: NewCategoryRepository(),
			auctions:   NewAuctionRepository(),
		},
	}
}

func (f *RepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}
