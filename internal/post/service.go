package post

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// ErrPostNotFound is reported by the HTTP layer when a lookup comes back empty
var ErrPostNotFound = errors.New("post not found")

// ErrNotAuthor is returned when someone other than the author edits or deletes a post
var ErrNotAuthor = errors.New("only the author can change this post")

// Store is the persistence the post service needs; *Repository implements it
type Store interface {
	Create(ctx context.Context, req *CreatePostRequest) (*Post, error)
	Update(ctx context.Context, id int64, content string) (*Post, error)
	Delete(ctx context.Context, id int64) (*Post, error)
	GetByID(ctx context.Context, id int64) (*PostWithUser, error)
	List(ctx context.Context) ([]*PostWithUser, error)
}

// Service handles post business logic
type Service struct {
	store Store
}

// NewService creates a new post service with store dependency injected
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create creates a post authored by req.UserID
func (s *Service) Create(ctx context.Context, req *CreatePostRequest) (*Post, error) {
	post, err := s.store.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Int64("post_id", post.ID).Msg("post created")
	return post, nil
}

// GetByID retrieves a post with its author
func (s *Service) GetByID(ctx context.Context, id int64) (*PostWithUser, error) {
	return s.store.GetByID(ctx, id)
}

// List retrieves every post with its author, newest first
func (s *Service) List(ctx context.Context) ([]*PostWithUser, error) {
	return s.store.List(ctx)
}

// Update replaces the content of a post owned by actorID
func (s *Service) Update(ctx context.Context, actorID, id int64, content string) (*Post, error) {
	if err := s.checkAuthor(ctx, actorID, id); err != nil {
		return nil, err
	}

	post, err := s.store.Update(ctx, id, content)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Int64("post_id", id).Msg("post updated")
	return post, nil
}

// Delete removes a post owned by actorID
func (s *Service) Delete(ctx context.Context, actorID, id int64) (*Post, error) {
	if err := s.checkAuthor(ctx, actorID, id); err != nil {
		return nil, err
	}

	post, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Int64("post_id", id).Msg("post deleted")
	return post, nil
}

// checkAuthor lets a missing post through so the store reports it.
func (s *Service) checkAuthor(ctx context.Context, actorID, id int64) error {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing != nil && existing.UserID != actorID {
		return ErrNotAuthor
	}
	return nil
}
