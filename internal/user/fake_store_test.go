package user

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/lib/pq"
)

// memStore is an in-memory Store mirroring the repository's contract.
type memStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*UserWithPassword
	now    time.Time
	err    error
}

func newMemStore() *memStore {
	return &memStore{
		nextID: 1,
		rows:   map[int64]*UserWithPassword{},
		now:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) tick() time.Time {
	m.now = m.now.Add(time.Minute)
	return m.now
}

func (m *memStore) Create(_ context.Context, req *CreateUserRequest) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, fmt.Errorf("failed to create user: %w", m.err)
	}
	for _, row := range m.rows {
		if row.Email == req.Email {
			return nil, fmt.Errorf("failed to create user: %w", &pq.Error{Code: "23505", Table: "users", Constraint: "users_email_key"})
		}
	}

	ts := m.tick()
	row := &UserWithPassword{
		User: User{
			ID:        m.nextID,
			Name:      req.Name,
			Email:     req.Email,
			ImageName: DefaultImageName,
			CreatedAt: ts,
			UpdatedAt: ts,
		},
		Password: req.Password,
	}
	m.rows[row.ID] = row
	m.nextID++

	u := row.User
	return &u, nil
}

func (m *memStore) GetByID(_ context.Context, id int64) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, fmt.Errorf("failed to get user: %w", m.err)
	}
	row, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	u := row.User
	return &u, nil
}

func (m *memStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	full, err := m.GetByEmailWithPassword(ctx, email)
	if err != nil || full == nil {
		return nil, err
	}
	u := full.User
	return &u, nil
}

func (m *memStore) GetByEmailWithPassword(_ context.Context, email string) (*UserWithPassword, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, fmt.Errorf("failed to get user credentials: %w", m.err)
	}
	for _, row := range m.rows {
		if row.Email == email {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) List(_ context.Context) ([]*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, fmt.Errorf("failed to list users: %w", m.err)
	}
	users := []*User{}
	for _, row := range m.rows {
		u := row.User
		users = append(users, &u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (m *memStore) UpdateProfile(_ context.Context, id int64, req *UpdateProfileRequest) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.rows[id]
	if !ok {
		return nil, fmt.Errorf("failed to update user: %w", sql.ErrNoRows)
	}
	if req.Name != nil {
		row.Name = *req.Name
	}
	if req.Email != nil {
		row.Email = *req.Email
	}
	if req.ImageName != nil {
		row.ImageName = *req.ImageName
	}
	row.UpdatedAt = m.tick()

	u := row.User
	return &u, nil
}

func (m *memStore) Delete(_ context.Context, id int64) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.rows[id]
	if !ok {
		return nil, fmt.Errorf("failed to delete user: %w", sql.ErrNoRows)
	}
	delete(m.rows, id)

	u := row.User
	return &u, nil
}
