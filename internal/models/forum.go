package models

import "time"

type ForumPost struct {
	ID         string
	Title      string
	Content    string
	AuthorID   string
	AuthorName string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	Replies    []Reply
}

type Reply struct {
	ID         string
	PostID     string
	Content    string
	AuthorID   string
	AuthorName string
	CreatedAt  time.Time
}
