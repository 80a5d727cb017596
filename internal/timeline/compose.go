// Package timeline merges posts and retweets into ordered profile timelines
// and the global feed.
package timeline

import (
	"sort"

	"github.com/fkhayef/chirp/internal/post"
)

// Entry is one item of a user's timeline. When Retweeted is true CreatedAt
// holds the retweet time, not the post's.
type Entry struct {
	post.PostWithUser
	Retweeted   bool   `json:"retweeted"`
	RetweetedBy string `json:"retweeted_by,omitempty"`
}

// Compose merges a user's own posts with the posts they retweeted.
//
// Retweet entries come first, then authored posts. The stable sort keeps
// that split intact: two entries of the same kind order by CreatedAt, newest
// first, while a retweet always precedes an authored post whatever their
// timestamps. A post retweeted more than once appears once per retweet.
func Compose(posts []*post.PostWithUser, retweets []*post.Retweet) []Entry {
	entries := make([]Entry, 0, len(retweets)+len(posts))

	for _, rt := range retweets {
		if rt.Post == nil {
			continue
		}
		e := Entry{PostWithUser: *rt.Post, Retweeted: true}
		e.CreatedAt = rt.CreatedAt
		if rt.Post.User != nil {
			e.RetweetedBy = rt.Post.User.Name
		}
		entries = append(entries, e)
	}

	for _, p := range posts {
		entries = append(entries, Entry{PostWithUser: *p})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Retweeted != b.Retweeted {
			return a.Retweeted
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	return entries
}

// FeedEntry is one item of the global feed. Retweet copies carry the
// retweet time, the retweeter and no retweets of their own.
type FeedEntry struct {
	post.PostWithUser
	Retweets    []post.Retweet `json:"retweets"`
	Retweeted   bool           `json:"retweeted"`
	RetweeterID int64          `json:"retweeter_id,omitempty"`
}

// ComposeFeed expands every post into one copy per retweet followed by the
// post itself, then orders the result: entries carrying retweets first,
// newest first within each group.
func ComposeFeed(posts []*post.PostWithRetweets) []FeedEntry {
	size := len(posts)
	for _, p := range posts {
		size += len(p.Retweets)
	}
	entries := make([]FeedEntry, 0, size)

	for _, p := range posts {
		for _, rt := range p.Retweets {
			e := FeedEntry{
				PostWithUser: p.PostWithUser,
				Retweets:     []post.Retweet{},
				Retweeted:    true,
				RetweeterID:  rt.UserID,
			}
			e.CreatedAt = rt.CreatedAt
			entries = append(entries, e)
		}

		retweets := p.Retweets
		if retweets == nil {
			retweets = []post.Retweet{}
		}
		entries = append(entries, FeedEntry{PostWithUser: p.PostWithUser, Retweets: retweets})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := len(entries[i].Retweets) > 0, len(entries[j].Retweets) > 0
		if a != b {
			return a
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	return entries
}
