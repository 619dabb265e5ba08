package domain

import "context"

// TheaterChainRepository loads and saves one chain aggregate at a time.
//
// Update performs a compare-and-swap on the chain's Version: it fails with
// ErrEditConflict when the stored version no longer matches, in which case
// the caller must reload the chain and retry the whole mutation. The
// repository never retries on its own.
type TheaterChainRepository interface {
	Create(ctx context.Context, chain *TheaterChain) error
	GetByID(ctx context.Context, id int) (*TheaterChain, error)
	Update(ctx context.Context, chain *TheaterChain) error
	IDs(ctx context.Context) ([]int, error)
}
