package mock

import (
	"context"

	"github.com/fwojciec/helpdesk"
)

var _ helpdesk.Asker = (*Asker)(nil)

// Asker is a mock implementation of helpdesk.Asker.
type Asker struct {
	AskFn func(ctx context.Context, question string) (*helpdesk.Answer, error)
}

func (a *Asker) Ask(ctx context.Context, question string) (*helpdesk.Answer, error) {
	return a.AskFn(ctx, question)
}

var _ helpdesk.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of helpdesk.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
