package ai

import (
	"context"

	"twinmind/models"
)

// Provider is one LLM backend in the fallback chain.
type Provider interface {
	Name() string
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// AssistantService turns owner messages into replies and, for planning
// turns, into a day schedule.
type AssistantService interface {
	ProcessUserInput(ctx context.Context, req models.AssistRequest) (*models.AssistResponse, error)
}
