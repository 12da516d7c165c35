package models

import "time"

// PostStatus is the publication state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Post is a generated article owned by a single user.
type Post struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Status    PostStatus `json:"status"`
	Keywords  []string   `json:"keywords"`
	CreatedAt time.Time  `json:"created_at"`
}

// PostPage describes which slice of a user's posts to return.
// Page is 1-based.
type PostPage struct {
	UserID  string
	Page    int
	PerPage int
}

// Offset returns the number of rows to skip for the page.
func (p PostPage) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

// PostList is a page of posts plus the total number of posts the user owns.
type PostList struct {
	Posts   []Post `json:"posts"`
	Total   int    `json:"total"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
}
