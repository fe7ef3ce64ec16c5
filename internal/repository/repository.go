package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository wraps the pgx pool with the queries the recommendation
// engine and handlers need.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}
