package model

import "time"

const ArticleStatusPublished = "published"

type Article struct {
	ID          string    `bson:"_id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Slug        string    `bson:"slug" json:"slug"`
	Excerpt     string    `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	Status      string    `bson:"status" json:"status"`
	FilterIDs   []string  `bson:"filter_ids" json:"filterIds"`
	PublishedAt time.Time `bson:"published_at" json:"publishedAt"`
}

// --- Huma Structs ---

type ListArticlesInput struct {
	Filters []string `query:"filters,explode" doc:"Selected filter ids, in selection order"`
}
