package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/tagihin/backend/internal/domain"
	"github.com/tagihin/backend/internal/repository"
)

// SubscriptionService owns the premium activation policy.
type SubscriptionService struct {
	store repository.ProfileStore
}

func NewSubscriptionService(store repository.ProfileStore) *SubscriptionService {
	return &SubscriptionService{store: store}
}

// Activation is the outcome of a premium activation.
type Activation struct {
	Profile *domain.Profile
	Created bool
}

// ActivatePremium upserts the premium profile for userID: the first
// activation creates a full profile, renewals update plan, premiumUntil and
// waReminderCount on the existing one. The find-then-write is not atomic;
// concurrent first-time activations for the same user can double-create
// (the store is queried by userId, not keyed by it).
func (s *SubscriptionService) ActivatePremium(ctx context.Context, userID string) (*Activation, error) {
	now := time.Now()
	premiumUntil := now.Add(domain.PremiumPeriod)

	existing, err := s.store.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}

	if existing == nil {
		profile := &domain.Profile{
			ID:              uuid.NewString(),
			UserID:          userID,
			Plan:            domain.PlanPremium,
			PremiumUntil:    premiumUntil,
			WAReminderCount: 0,
			WAResetDate:     domain.NextMonthStart(now),
		}
		if err := s.store.Create(ctx, profile); err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}
		log.Printf("created premium profile for user %s (until %s)", userID, premiumUntil.Format(time.RFC3339))
		return &Activation{Profile: profile, Created: true}, nil
	}

	existing.Plan = domain.PlanPremium
	existing.PremiumUntil = premiumUntil
	existing.WAReminderCount = 0
	if err := s.store.Update(ctx, existing.ID, existing); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	log.Printf("renewed premium profile %s for user %s (until %s)", existing.ID, userID, premiumUntil.Format(time.RFC3339))
	return &Activation{Profile: existing, Created: false}, nil
}

// GetProfile returns the profile for a user, or nil when none exists.
func (s *SubscriptionService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.store.FindByUserID(ctx, userID)
}
