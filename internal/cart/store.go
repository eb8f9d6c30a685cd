package cart

import "context"

// Store keeps per-session cart lines. Sessions are isolated from each
// other; a missing session reads as an empty cart.
type Store interface {
	// Lines returns the current cart for the session, never mutating it.
	Lines(ctx context.Context, sessionID string) ([]Line, error)
	// Save replaces the session's cart.
	Save(ctx context.Context, sessionID string, lines []Line) error
	// Take atomically returns the session's cart and clears it. Checkout
	// relies on this so two concurrent checkouts cannot both see the same
	// non-empty cart.
	Take(ctx context.Context, sessionID string) ([]Line, error)
	// Clear drops the session's cart.
	Clear(ctx context.Context, sessionID string) error
}
