package timeline

import (
	"context"
	"errors"

	"github.com/fkhayef/chirp/internal/post"
	"github.com/fkhayef/chirp/internal/user"
)

// ErrUserNotFound is reported by the HTTP layer when the profile owner does not exist
var ErrUserNotFound = errors.New("user not found")

// UserReader looks users up; *user.Repository implements it
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

// PostReader is the slice of the post store the profile views read from;
// *post.Repository implements it
type PostReader interface {
	ListByUser(ctx context.Context, userID int64) ([]*post.PostWithUser, error)
	ListLikedByUser(ctx context.Context, userID int64) ([]*post.PostWithUser, error)
	ListRetweetsByUser(ctx context.Context, userID int64) ([]*post.Retweet, error)
	ListWithRetweets(ctx context.Context) ([]*post.PostWithRetweets, error)
}

// UserWithPosts is a user together with the posts they wrote
type UserWithPosts struct {
	user.User
	Posts []*post.PostWithUser `json:"posts"`
}

// LikedPost wraps a post the user liked
type LikedPost struct {
	Post *post.PostWithUser `json:"post"`
}

// UserWithLikedPosts is a user together with the posts they liked
type UserWithLikedPosts struct {
	user.User
	Likes []LikedPost `json:"likes"`
}

// UserWithRetweets is a user with their raw retweets and the merged timeline
type UserWithRetweets struct {
	user.User
	Retweets []*post.Retweet `json:"retweets"`
	Posts    []Entry         `json:"posts"`
}

// Service assembles profile views and the global feed. The reads behind a
// view run without a transaction, so a concurrent write can leave a view
// briefly inconsistent.
type Service struct {
	users UserReader
	posts PostReader
}

// NewService creates a new timeline service with its readers injected
func NewService(users UserReader, posts PostReader) *Service {
	return &Service{users: users, posts: posts}
}

// UserWithPosts returns a user and their posts, newest first; nil, nil when the user does not exist
func (s *Service) UserWithPosts(ctx context.Context, userID int64) (*UserWithPosts, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, err
	}

	posts, err := s.posts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserWithPosts{User: *u, Posts: posts}, nil
}

// UserWithLikedPosts returns a user and the posts they liked; nil, nil when the user does not exist
func (s *Service) UserWithLikedPosts(ctx context.Context, userID int64) (*UserWithLikedPosts, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, err
	}

	posts, err := s.posts.ListLikedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	likes := make([]LikedPost, len(posts))
	for i, p := range posts {
		likes[i] = LikedPost{Post: p}
	}

	return &UserWithLikedPosts{User: *u, Likes: likes}, nil
}

// UserWithRetweets returns a user, their retweets and their composed timeline;
// nil, nil when the user does not exist
func (s *Service) UserWithRetweets(ctx context.Context, userID int64) (*UserWithRetweets, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, err
	}

	retweets, err := s.posts.ListRetweetsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserWithRetweets{
		User:     *u,
		Retweets: retweets,
		Posts:    Compose(posts, retweets),
	}, nil
}

// Feed returns every post expanded with its retweets
func (s *Service) Feed(ctx context.Context) ([]FeedEntry, error) {
	posts, err := s.posts.ListWithRetweets(ctx)
	if err != nil {
		return nil, err
	}

	return ComposeFeed(posts), nil
}
