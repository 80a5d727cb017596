package post

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Repository handles post data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new post repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new post
func (r *Repository) Create(ctx context.Context, req *CreatePostRequest) (*Post, error) {
	query := `
		INSERT INTO posts (content, user_id)
		VALUES ($1, $2)
		RETURNING ` + Columns("")

	post := &Post{}
	err := r.db.QueryRowContext(ctx, query, req.Content, req.UserID).Scan(post.ScanDest()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

// Update replaces a post's content.
// A missing post surfaces as sql.ErrNoRows.
func (r *Repository) Update(ctx context.Context, id int64, content string) (*Post, error) {
	query := `
		UPDATE posts
		SET content = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + Columns("")

	post := &Post{}
	err := r.db.QueryRowContext(ctx, query, id, content).Scan(post.ScanDest()...)
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return post, nil
}

// Delete removes a post and returns the deleted row.
// A missing post surfaces as sql.ErrNoRows.
func (r *Repository) Delete(ctx context.Context, id int64) (*Post, error) {
	query := `DELETE FROM posts WHERE id = $1 RETURNING ` + Columns("")

	post := &Post{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(post.ScanDest()...)
	if err != nil {
		return nil, fmt.Errorf("failed to delete post: %w", err)
	}

	return post, nil
}

// GetByID retrieves a post with its author; it returns nil, nil when no post matches
func (r *Repository) GetByID(ctx context.Context, id int64) (*PostWithUser, error) {
	query := `
		SELECT ` + withUserColumns + `
		FROM posts p
		JOIN users u ON p.user_id = u.id
		WHERE p.id = $1`

	post, dest := newPostWithUser()
	err := r.db.QueryRowContext(ctx, query, id).Scan(dest...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

// List retrieves every post with its author, newest first
func (r *Repository) List(ctx context.Context) ([]*PostWithUser, error) {
	query := `
		SELECT ` + withUserColumns + `
		FROM posts p
		JOIN users u ON p.user_id = u.id
		ORDER BY p.created_at DESC, p.id DESC`

	return r.queryPostsWithUser(ctx, "list posts", query)
}

// ListByUser retrieves a user's posts with their author, newest first
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*PostWithUser, error) {
	query := `
		SELECT ` + withUserColumns + `
		FROM posts p
		JOIN users u ON p.user_id = u.id
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC, p.id DESC`

	return r.queryPostsWithUser(ctx, "list user posts", query, userID)
}

// ListLikedByUser retrieves the posts a user liked, each with its author,
// ordered by the post's creation time, newest first
func (r *Repository) ListLikedByUser(ctx context.Context, userID int64) ([]*PostWithUser, error) {
	query := `
		SELECT ` + withUserColumns + `
		FROM likes l
		JOIN posts p ON l.post_id = p.id
		JOIN users u ON p.user_id = u.id
		WHERE l.user_id = $1
		ORDER BY p.created_at DESC, p.id DESC`

	return r.queryPostsWithUser(ctx, "list liked posts", query, userID)
}

// ListRetweetsByUser retrieves a user's retweets, each with the original post
// and that post's author, most recent retweet first
func (r *Repository) ListRetweetsByUser(ctx context.Context, userID int64) ([]*Retweet, error) {
	query := `
		SELECT rt.id, rt.user_id, rt.post_id, rt.created_at, ` + withUserColumns + `
		FROM retweets rt
		JOIN posts p ON rt.post_id = p.id
		JOIN users u ON p.user_id = u.id
		WHERE rt.user_id = $1
		ORDER BY rt.created_at DESC, rt.id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list retweets: %w", err)
	}
	defer rows.Close()

	retweets := []*Retweet{}
	for rows.Next() {
		post, postDest := newPostWithUser()
		rt := &Retweet{Post: post}
		dest := append([]any{&rt.ID, &rt.UserID, &rt.PostID, &rt.CreatedAt}, postDest...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan retweet: %w", err)
		}
		retweets = append(retweets, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate retweets: %w", err)
	}

	return retweets, nil
}

// ListWithRetweets retrieves every post with its author and its retweets,
// newest post first. Retweets within a post are most recent first.
func (r *Repository) ListWithRetweets(ctx context.Context) ([]*PostWithRetweets, error) {
	posts, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, user_id, post_id, created_at
		FROM retweets
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list retweets: %w", err)
	}
	defer rows.Close()

	byPost := make(map[int64][]Retweet)
	for rows.Next() {
		var rt Retweet
		if err := rows.Scan(&rt.ID, &rt.UserID, &rt.PostID, &rt.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan retweet: %w", err)
		}
		byPost[rt.PostID] = append(byPost[rt.PostID], rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate retweets: %w", err)
	}

	result := make([]*PostWithRetweets, len(posts))
	for i, p := range posts {
		retweets := byPost[p.ID]
		if retweets == nil {
			retweets = []Retweet{}
		}
		result[i] = &PostWithRetweets{PostWithUser: *p, Retweets: retweets}
	}

	return result, nil
}

func (r *Repository) queryPostsWithUser(ctx context.Context, op, query string, args ...any) ([]*PostWithUser, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	defer rows.Close()

	posts := []*PostWithUser{}
	for rows.Next() {
		post, dest := newPostWithUser()
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}

	return posts, nil
}
