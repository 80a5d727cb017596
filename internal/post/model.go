package post

import (
	"strings"
	"time"

	"github.com/fkhayef/chirp/internal/user"
)

// Post represents a post in the system
type Post struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostWithUser is a post together with its author
type PostWithUser struct {
	Post

	// Populated via JOIN
	User *user.User `json:"user"`
}

// Retweet records that a user reposted someone's post
type Retweet struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"` // retweeter
	PostID    int64     `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	// Populated via JOIN, only by ListRetweetsByUser
	Post *PostWithUser `json:"post,omitempty"`
}

// PostWithRetweets is a post with its author and every retweet of it
type PostWithRetweets struct {
	PostWithUser
	Retweets []Retweet `json:"retweets"`
}

var columns = []string{"id", "content", "user_id", "created_at", "updated_at"}

// Columns returns the posts columns, qualified with alias when it is not empty
func Columns(alias string) string {
	if alias == "" {
		return strings.Join(columns, ", ")
	}

	qualified := make([]string, len(columns))
	for i, c := range columns {
		qualified[i] = alias + "." + c
	}
	return strings.Join(qualified, ", ")
}

// ScanDest returns Scan destinations matching Columns, in order
func (p *Post) ScanDest() []any {
	return []any{&p.ID, &p.Content, &p.UserID, &p.CreatedAt, &p.UpdatedAt}
}

// withUserColumns selects a post and its author; scan with newPostWithUser.
var withUserColumns = Columns("p") + ", " + user.Columns("u")

func newPostWithUser() (*PostWithUser, []any) {
	p := &PostWithUser{User: &user.User{}}
	return p, append(p.ScanDest(), p.User.ScanDest()...)
}
