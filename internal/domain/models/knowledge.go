package models

import "time"

// KnowledgeEntry is an append-only note the engine can draw on when
// generating prompts for a topic.
type KnowledgeEntry struct {
	ID             string    `json:"id"`
	Topic          string    `json:"topic"`
	Content        string    `json:"content"`
	Source         string    `json:"source,omitempty"`
	RelevanceScore float64   `json:"relevance_score"`
	CreatedAt      time.Time `json:"created_at"`
}
