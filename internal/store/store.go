// Package store implements relational persistence for the catalog, user
// profiles and the order aggregate on top of PostgreSQL.
package store

import (
	"database/sql"
	"fmt"

	"github.com/duartesilva/plantshop/internal/database"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// StockError reports the first cart line that failed the stock check.
// errors.Is(err, database.ErrInsufficientStock) matches it.
type StockError struct {
	ArticleID   int64
	ArticleName string
	Requested   int
	Available   int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d",
		e.ArticleName, e.Requested, e.Available)
}

func (e *StockError) Is(target error) bool {
	return target == database.ErrInsufficientStock
}
