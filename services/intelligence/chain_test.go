package ai

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"
)

type fakeProvider struct {
	name  string
	text  string
	err   error
	calls int
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) GenerateContent(ctx context.Context, prompt string) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return p.text, nil
}

func TestFallbackChain_FirstSuccessShortCircuits(t *testing.T) {
	first := &fakeProvider{name: "first", text: "hello"}
	second := &fakeProvider{name: "second", text: "unused"}
	chain := NewFallbackChain(zap.NewNop(), first, second)

	text, provider, err := chain.GenerateContent(context.Background(), "hi")
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}
	if text != "hello" || provider != "first" {
		t.Errorf("got (%q, %q), want (hello, first)", text, provider)
	}
	if second.calls != 0 {
		t.Errorf("second provider called %d times, want 0", second.calls)
	}
}

func TestFallbackChain_FallsThroughFailures(t *testing.T) {
	first := &fakeProvider{name: "first", err: fmt.Errorf("connection refused")}
	second := &fakeProvider{name: "second", err: fmt.Errorf("quota exceeded")}
	third := &fakeProvider{name: "third", text: "answer"}
	chain := NewFallbackChain(zap.NewNop(), first, second, third)

	text, provider, err := chain.GenerateContent(context.Background(), "hi")
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}
	if text != "answer" || provider != "third" {
		t.Errorf("got (%q, %q), want (answer, third)", text, provider)
	}
	if first.calls != 1 || second.calls != 1 {
		t.Errorf("failed providers should each be tried exactly once")
	}
}

func TestFallbackChain_StaticTextWhenAllFail(t *testing.T) {
	first := &fakeProvider{name: "first", err: fmt.Errorf("down")}
	chain := NewFallbackChain(zap.NewNop(), first)

	text, provider, err := chain.GenerateContent(context.Background(), "hi")
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}
	if provider != "static" || text != StaticFallbackText {
		t.Errorf("got (%q, %q), want the static fallback", text, provider)
	}
}

func TestFallbackChain_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	chain := NewFallbackChain(zap.NewNop(), &fakeProvider{name: "p", text: "x"})
	if _, _, err := chain.GenerateContent(ctx, "hi"); err == nil {
		t.Error("expected context error, got nil")
	}
}
