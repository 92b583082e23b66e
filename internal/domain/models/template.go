package models

import "time"

// PromptTemplate is a versioned, reusable prompt with {name} placeholders.
type PromptTemplate struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Template    string    `json:"template"`
	Description string    `json:"description"`
	Variables   []string  `json:"variables"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`
	Rating      float64   `json:"rating"`
	UsageCount  int       `json:"usage_count"`
}
