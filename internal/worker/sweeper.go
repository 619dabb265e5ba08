package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mertkaracam/theater-chain-system/internal/domain"
)

const maxSweepRetries = 3

// ReservationSweeper periodically removes expired provisional holds from
// every chain. Expiry is sweep-based: a lapsed hold stays in the document
// (already excluded from every "active" predicate) until a sweep deletes it.
// The sweep is idempotent and safe to run at any cadence.
type ReservationSweeper struct {
	repo     domain.TheaterChainRepository
	logger   *slog.Logger
	interval time.Duration
}

func NewReservationSweeper(repo domain.TheaterChainRepository, logger *slog.Logger, interval time.Duration) *ReservationSweeper {
	return &ReservationSweeper{
		repo:     repo,
		logger:   logger,
		interval: interval,
	}
}

// Start runs the sweep loop until the context is cancelled.
func (s *ReservationSweeper) Start(ctx context.Context) {
	s.logger.Info("starting reservation sweeper", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("stopping reservation sweeper")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one pass over all chains. Save conflicts are retried against
// freshly loaded state a bounded number of times; a chain that keeps
// conflicting is left for the next pass.
func (s *ReservationSweeper) Sweep(ctx context.Context) {
	ids, err := s.repo.IDs(ctx)
	if err != nil {
		s.logger.Error("failed to list theater chains for sweep", "error", err)
		return
	}

	for _, id := range ids {
		removed, err := s.sweepChain(ctx, id)
		if err != nil {
			s.logger.Error("failed to sweep theater chain", "chain_id", id, "error", err)
			continue
		}

		if removed > 0 {
			s.logger.Info("removed expired seat reservations", "chain_id", id, "count", removed)
		}
	}
}

func (s *ReservationSweeper) sweepChain(ctx context.Context, id int) (int, error) {
	for attempt := 0; attempt < maxSweepRetries; attempt++ {
		chain, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return 0, err
		}

		removed := chain.ClearExpiredSeatReservations()
		if removed == 0 {
			return 0, nil
		}

		err = s.repo.Update(ctx, chain)
		if err == nil {
			return removed, nil
		}

		if !errors.Is(err, domain.ErrEditConflict) {
			return 0, err
		}
	}

	return 0, domain.ErrEditConflict
}
