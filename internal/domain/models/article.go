package models

import "time"

// Article is a career guide post. Content is stored as HTML; Excerpt is
// plain text derived from it.
type Article struct {
	ID          int64     `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content,omitempty"`
	CoverURL    string    `json:"cover_url,omitempty"`
	Author      string    `json:"author"`
	PublishedAt time.Time `json:"published_at"`
}

type ArticleInput struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content"`
	CoverURL string `json:"cover_url"`
	Author   string `json:"author"`
}
