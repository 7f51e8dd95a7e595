package api

import (
	"github.com/starford/vaultlink/internal/linkservice"
	"github.com/starford/vaultlink/internal/models"
)

// CompletionItem is a single ranked candidate (aliased from the domain layer).
type CompletionItem = linkservice.Item

// CompletionResponse wraps the ranked candidates for one typed link.
type CompletionResponse struct {
	Query   string           `json:"query" example:"a#Intro" validate:"required"`
	Items   []CompletionItem `json:"items" validate:"required"`
	Skipped []string         `json:"skipped" validate:"required"`
}

// ReferenceablesResponse lists raw vault nodes.
type ReferenceablesResponse struct {
	Nodes []models.Referenceable `json:"nodes" validate:"required"`
}
