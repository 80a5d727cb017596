package post

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/fkhayef/chirp/internal/user"
)

// memStore is an in-memory Store mirroring the repository's contract.
type memStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*user.User
	posts  map[int64]*Post
	now    time.Time
	err    error
}

func newMemStore(users ...*user.User) *memStore {
	m := &memStore{
		nextID: 1,
		users:  map[int64]*user.User{},
		posts:  map[int64]*Post{},
		now:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memStore) tick() time.Time {
	m.now = m.now.Add(time.Minute)
	return m.now
}

func (m *memStore) withUser(p *Post) *PostWithUser {
	u := *m.users[p.UserID]
	return &PostWithUser{Post: *p, User: &u}
}

func (m *memStore) Create(_ context.Context, req *CreatePostRequest) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, fmt.Errorf("failed to create post: %w", m.err)
	}
	if _, ok := m.users[req.UserID]; !ok {
		return nil, fmt.Errorf("failed to create post: %w", &pq.Error{Code: "23503", Table: "posts", Constraint: "posts_user_id_fkey"})
	}

	ts := m.tick()
	p := &Post{ID: m.nextID, Content: req.Content, UserID: req.UserID, CreatedAt: ts, UpdatedAt: ts}
	m.posts[p.ID] = p
	m.nextID++

	cp := *p
	return &cp, nil
}

func (m *memStore) Update(_ context.Context, id int64, content string) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.posts[id]
	if !ok {
		return nil, fmt.Errorf("failed to update post: %w", sql.ErrNoRows)
	}
	p.Content = content
	p.UpdatedAt = m.tick()

	cp := *p
	return &cp, nil
}

func (m *memStore) Delete(_ context.Context, id int64) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.posts[id]
	if !ok {
		return nil, fmt.Errorf("failed to delete post: %w", sql.ErrNoRows)
	}
	delete(m.posts, id)

	return p, nil
}

func (m *memStore) GetByID(_ context.Context, id int64) (*PostWithUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, fmt.Errorf("failed to get post: %w", m.err)
	}
	p, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	return m.withUser(p), nil
}

func (m *memStore) List(_ context.Context) ([]*PostWithUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", m.err)
	}
	posts := []*PostWithUser{}
	for _, p := range m.posts {
		posts = append(posts, m.withUser(p))
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}
