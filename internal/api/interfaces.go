package api

import (
	"context"

	"github.com/cryptotrack/crypto-tracker/internal/model"
)

// Backend defines the interface to the dashboard backend.
type Backend interface {
	// Ping probes availability; nil means the backend answered with its
	// health sentinel.
	Ping(ctx context.Context) error

	// FetchCoins returns the tracked coin list. A non-nil slice together
	// with ErrFallbackData means the backend served degraded data.
	FetchCoins(ctx context.Context) ([]model.Coin, error)

	// Search returns raw symbol/name candidates for query.
	Search(ctx context.Context, query string) ([]model.SearchResult, error)

	// Add starts tracking symbol and returns the backend confirmation message.
	Add(ctx context.Context, symbol string) (string, error)

	// Remove stops tracking symbol and returns the backend confirmation message.
	Remove(ctx context.Context, symbol string) (string, error)
}
