package service

import (
	"context"
)

// AIService is the generative backend used for answer synthesis.
type AIService interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
