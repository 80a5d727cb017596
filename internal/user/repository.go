package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Repository handles user data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new user repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user with the default profile image
func (r *Repository) Create(ctx context.Context, req *CreateUserRequest) (*User, error) {
	query := `
		INSERT INTO users (name, email, password, image_name)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + Columns("")

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, req.Name, req.Email, req.Password, DefaultImageName).Scan(user.ScanDest()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by their ID; it returns nil, nil when no user matches
func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `SELECT ` + Columns("") + ` FROM users WHERE id = $1`

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(user.ScanDest()...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by their email; it returns nil, nil when no user matches
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + Columns("") + ` FROM users WHERE email = $1`

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(user.ScanDest()...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// GetByEmailWithPassword retrieves a user together with the stored credential.
// It is the only read that selects the password column.
func (r *Repository) GetByEmailWithPassword(ctx context.Context, email string) (*UserWithPassword, error) {
	query := `SELECT ` + Columns("") + `, password FROM users WHERE email = $1`

	user := &UserWithPassword{}
	dest := append(user.ScanDest(), &user.Password)
	err := r.db.QueryRowContext(ctx, query, email).Scan(dest...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user credentials: %w", err)
	}

	return user, nil
}

// List retrieves all users, newest first
func (r *Repository) List(ctx context.Context) ([]*User, error) {
	query := `SELECT ` + Columns("") + ` FROM users ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		user := &User{}
		if err := rows.Scan(user.ScanDest()...); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// UpdateProfile applies the non-nil fields of req.
// A missing user surfaces as sql.ErrNoRows.
func (r *Repository) UpdateProfile(ctx context.Context, id int64, req *UpdateProfileRequest) (*User, error) {
	query := `
		UPDATE users
		SET name = COALESCE($2, name),
		    email = COALESCE($3, email),
		    image_name = COALESCE($4, image_name),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + Columns("")

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, id, req.Name, req.Email, req.ImageName).Scan(user.ScanDest()...)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// Delete removes a user and returns the deleted row.
// A missing user surfaces as sql.ErrNoRows.
func (r *Repository) Delete(ctx context.Context, id int64) (*User, error) {
	query := `DELETE FROM users WHERE id = $1 RETURNING ` + Columns("")

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(user.ScanDest()...)
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	return user, nil
}
