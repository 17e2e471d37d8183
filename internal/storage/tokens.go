package storage

import (
	"context"
	"log/slog"
)

// Tokens adapts a Store to the token lookups the HTTP client performs.
type Tokens struct {
	store  Store
	logger *slog.Logger
}

func NewTokens(store Store, logger *slog.Logger) *Tokens {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tokens{store: store, logger: logger}
}

// Token returns the stored bearer token. Storage failures read as "no token".
func (t *Tokens) Token(ctx context.Context) (string, bool) {
	token, ok, err := t.store.Get(ctx, KeyAuthToken)
	if err != nil {
		t.logger.Debug("auth token unavailable", slog.String("error", err.Error()))
		return "", false
	}
	return token, ok && token != ""
}

func (t *Tokens) SetToken(ctx context.Context, token string) error {
	return t.store.Set(ctx, KeyAuthToken, token)
}

func (t *Tokens) ClearToken(ctx context.Context) error {
	return t.store.Delete(ctx, KeyAuthToken)
}
