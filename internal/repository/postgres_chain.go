package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mertkaracam/theater-chain-system/internal/domain"
)

// PostgresTheaterChainRepository persists each chain as a single JSONB
// document row. The version column is the optimistic concurrency token:
// Update only succeeds when the stored version still matches the one the
// chain was loaded with, closing the double-booking window between two
// concurrent load-mutate-save cycles.
type PostgresTheaterChainRepository struct {
	db    *pgxpool.Pool
	clock domain.Clock
}

func NewPostgresTheaterChainRepository(db *pgxpool.Pool, clock domain.Clock) *PostgresTheaterChainRepository {
	return &PostgresTheaterChainRepository{
		db:    db,
		clock: clock,
	}
}

func (p *PostgresTheaterChainRepository) Create(ctx context.Context, chain *domain.TheaterChain) error {
	data, err := json.Marshal(toDocument(chain))
	if err != nil {
		return fmt.Errorf("failed to encode theater chain document: %w", err)
	}

	query := `
		INSERT INTO theater_chains (id, version, data)
		VALUES ($1, 1, $2)
	`

	_, err = p.db.Exec(ctx, query, chain.ID, data)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrTheaterChainExists
		}

		return err
	}

	chain.Version = 1

	return nil
}

func (p *PostgresTheaterChainRepository) GetByID(ctx context.Context, id int) (*domain.TheaterChain, error) {
	query := `
		SELECT version, data
		FROM theater_chains
		WHERE id = $1
	`

	var version int
	var data []byte

	err := p.db.QueryRow(ctx, query, id).Scan(&version, &data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTheaterChainNotFound
		}

		return nil, err
	}

	var doc chainDocument
	err = json.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode theater chain document: %w", err)
	}

	chain := fromDocument(doc)
	chain.Version = version

	err = chain.Rehydrate(p.clock)
	if err != nil {
		return nil, fmt.Errorf("failed to rehydrate theater chain[%d]: %w", id, err)
	}

	return chain, nil
}

func (p *PostgresTheaterChainRepository) Update(ctx context.Context, chain *domain.TheaterChain) error {
	data, err := json.Marshal(toDocument(chain))
	if err != nil {
		return fmt.Errorf("failed to encode theater chain document: %w", err)
	}

	query := `
		UPDATE theater_chains
		SET data = $1, version = version + 1, updated_at = now()
		WHERE id = $2 AND version = $3
	`

	tag, err := p.db.Exec(ctx, query, data, chain.ID, chain.Version)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrEditConflict
	}

	chain.Version++

	return nil
}

func (p *PostgresTheaterChainRepository) IDs(ctx context.Context) ([]int, error) {
	query := `
		SELECT id
		FROM theater_chains
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int, 0)

	for rows.Next() {
		var id int

		err = rows.Scan(&id)
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
