// Package quote fetches a short motivational line for the coach header.
package quote

import (
	"context"
	"strings"

	"github.com/arjun/coachfit/internal/llm"
)

// Fallback is shown when the backend can't produce a quote. Quotes are
// decoration; a failed fetch is never surfaced as an error.
const Fallback = "go big or go home"

const systemPrompt = `You write one-line gym motivation.

Rules:
- One sentence, at most twelve words.
- No attribution, no quotation marks, no emoji.`

// Service fetches motivational quotes from the backend provider.
type Service struct {
	provider llm.Provider
}

// NewService creates a quote Service.
func NewService(provider llm.Provider) *Service {
	return &Service{provider: provider}
}

// Fetch returns a motivational one-liner, or Fallback on any failure.
// It never retries.
func (s *Service) Fetch(ctx context.Context) string {
	ctx = llm.WithPurpose(ctx, "quote")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "Give me today's line."},
		},
		MaxTokens:   60,
		Temperature: 1.0,
	})
	if err != nil {
		return Fallback
	}

	text := strings.TrimSpace(string(resp.Content))
	text = strings.TrimSpace(strings.Trim(text, `"`))
	if text == "" {
		return Fallback
	}
	return text
}
