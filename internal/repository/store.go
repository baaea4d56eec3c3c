package repository

import (
	"context"

	"github.com/tagihin/backend/internal/domain"
)

// ProfileStore is the document store holding subscription profiles, accessed
// by query on the userId field.
type ProfileStore interface {
	// FindByUserID returns the first profile matching userID, or nil when
	// none exists.
	FindByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	// Create inserts a new profile with all fields populated.
	Create(ctx context.Context, p *domain.Profile) error
	// Update overwrites plan, premiumUntil, and waReminderCount on the
	// profile with the given document ID. waResetDate and the user identity
	// are set at creation and never changed.
	Update(ctx context.Context, id string, p *domain.Profile) error
	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error
}
