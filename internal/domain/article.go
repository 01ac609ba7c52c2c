package domain

import "time"

// ArticleStatus controls knowledge-base visibility.
type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusPublished ArticleStatus = "published"
)

// Article is a knowledge-base entry. Only published articles are eligible
// for retrieval and citation by the triage pipeline.
type Article struct {
	ID        string
	Title     string
	Body      string
	Tags      []string
	Status    ArticleStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
