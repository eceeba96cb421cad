package ai

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// StaticFallbackText is returned when every provider in the chain fails.
const StaticFallbackText = "I'm having trouble reaching my language models right now. Please try again in a moment."

// FallbackChain tries providers in order and short-circuits on the first
// success. With every provider down it still answers, with static text,
// so the assistant degrades instead of erroring.
type FallbackChain struct {
	providers []Provider
	logger    *zap.Logger
}

func NewFallbackChain(logger *zap.Logger, providers ...Provider) *FallbackChain {
	return &FallbackChain{providers: providers, logger: logger}
}

// GenerateContent returns the first successful provider's output and the
// provider's name. The error return is always nil for ordinary provider
// failures; it is reserved for context cancellation.
func (f *FallbackChain) GenerateContent(ctx context.Context, prompt string) (string, string, error) {
	for _, p := range f.providers {
		if ctx.Err() != nil {
			return "", "", ctx.Err()
		}
		text, err := p.GenerateContent(ctx, prompt)
		if err != nil {
			f.logger.Warn("LLM provider failed, falling through",
				zap.String("provider", p.Name()), zap.Error(err))
			continue
		}
		return text, p.Name(), nil
	}
	return StaticFallbackText, "static", nil
}

// Ping reports reachability of the chain: healthy when any provider with a
// liveness probe answers.
func (f *FallbackChain) Ping(ctx context.Context) error {
	var lastErr error
	for _, p := range f.providers {
		pinger, ok := p.(interface{ Ping(ctx context.Context) error })
		if !ok {
			continue
		}
		if err := pinger.Ping(ctx); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	if lastErr != nil {
		return lastErr
	}
	return fmt.Errorf("no pingable LLM provider configured")
}
