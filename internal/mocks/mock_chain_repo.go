package mocks

import (
	"context"

	"github.com/mertkaracam/theater-chain-system/internal/domain"
)

type MockTheaterChainRepo struct {
	domain.TheaterChainRepository
	CreateFunc  func(ctx context.Context, chain *domain.TheaterChain) error
	GetByIDFunc func(ctx context.Context, id int) (*domain.TheaterChain, error)
	UpdateFunc  func(ctx context.Context, chain *domain.TheaterChain) error
	IDsFunc     func(ctx context.Context) ([]int, error)
}

func (m *MockTheaterChainRepo) Create(ctx context.Context, chain *domain.TheaterChain) error {
	return m.CreateFunc(ctx, chain)
}

func (m *MockTheaterChainRepo) GetByID(ctx context.Context, id int) (*domain.TheaterChain, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *MockTheaterChainRepo) Update(ctx context.Context, chain *domain.TheaterChain) error {
	return m.UpdateFunc(ctx, chain)
}

func (m *MockTheaterChainRepo) IDs(ctx context.Context) ([]int, error) {
	return m.IDsFunc(ctx)
}
