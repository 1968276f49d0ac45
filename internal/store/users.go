package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/duartesilva/plantshop/internal/database"
	"github.com/duartesilva/plantshop/internal/models"
)

func (s *Store) CreateUser(ctx context.Context, fullName string) (*models.User, error) {
	user := &models.User{}

	query := `
		INSERT INTO users (id, full_name, address, created_at, updated_at)
		VALUES ($1, $2, '', NOW(), NOW())
		RETURNING id, full_name, address, created_at, updated_at`

	err := s.db.QueryRowContext(ctx, query, uuid.NewString(), fullName).Scan(
		&user.ID,
		&user.FullName,
		&user.Address,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}

	query := `
		SELECT id, full_name, address, created_at, updated_at
		FROM users
		WHERE id = $1`

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.FullName,
		&user.Address,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}

// UpdateUserProfile is the only writer of the shipping address.
func (s *Store) UpdateUserProfile(ctx context.Context, id, fullName, address string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE users
		 SET full_name = $1, address = $2, updated_at = NOW()
		 WHERE id = $3`,
		fullName, address, id)
	if err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrUserNotFound
	}

	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, full_name, address, created_at, updated_at
		FROM users
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.FullName,
			&user.Address,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return users, nil
}
