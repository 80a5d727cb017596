package post

import "github.com/fkhayef/chirp/internal/user"

// CreatePostRequest represents the request body for creating a post.
// UserID is taken from the acting user, never from the body.
type CreatePostRequest struct {
	Content string `json:"content" validate:"required,min=1,max=280"`
	UserID  int64  `json:"-"`
}

// UpdatePostRequest represents the request body for editing a post
type UpdatePostRequest struct {
	Content string `json:"content" validate:"required,min=1,max=280"`
}

// PostResponse represents the response for a single post
type PostResponse struct {
	ID        int64              `json:"id"`
	Content   string             `json:"content"`
	UserID    int64              `json:"user_id"`
	User      *user.UserResponse `json:"user,omitempty"`
	CreatedAt string             `json:"created_at"`
	UpdatedAt string             `json:"updated_at"`
}

// ToResponse converts a Post model to a PostResponse DTO
func (p *Post) ToResponse() *PostResponse {
	return &PostResponse{
		ID:        p.ID,
		Content:   p.Content,
		UserID:    p.UserID,
		CreatedAt: p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt: p.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a PostWithUser to a PostResponse carrying its author
func (p *PostWithUser) ToResponse() *PostResponse {
	resp := p.Post.ToResponse()
	if p.User != nil {
		resp.User = p.User.ToResponse()
	}
	return resp
}
