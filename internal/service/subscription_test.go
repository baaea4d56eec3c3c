package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tagihin/backend/internal/domain"
)

// fakeStore is an in-memory ProfileStore.
type fakeStore struct {
	profiles map[string]*domain.Profile // keyed by document ID
	findErr  error
	writeErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{profiles: make(map[string]*domain.Profile)}
}

func (f *fakeStore) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, p := range f.profiles {
		if p.UserID == userID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) Create(ctx context.Context, p *domain.Profile) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	copied := *p
	f.profiles[p.ID] = &copied
	return nil
}

func (f *fakeStore) Update(ctx context.Context, id string, p *domain.Profile) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	existing, ok := f.profiles[id]
	if !ok {
		return errors.New("document not found")
	}
	// Only the renewal fields are written, like the real stores.
	existing.Plan = p.Plan
	existing.PremiumUntil = p.PremiumUntil
	existing.WAReminderCount = p.WAReminderCount
	return nil
}

func (f *fakeStore) Ping(ctx context.Context) error { return nil }

func TestActivatePremiumCreatesProfile(t *testing.T) {
	store := newFakeStore()
	svc := NewSubscriptionService(store)

	act, err := svc.ActivatePremium(context.Background(), "u123")
	require.NoError(t, err)
	require.True(t, act.Created)

	p := act.Profile
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "u123", p.UserID)
	assert.Equal(t, domain.PlanPremium, p.Plan)
	assert.Equal(t, 0, p.WAReminderCount)
	assert.WithinDuration(t, time.Now().Add(domain.PremiumPeriod), p.PremiumUntil, 5*time.Second)

	// waResetDate is midnight on the first day of next month
	assert.Equal(t, 1, p.WAResetDate.Day())
	assert.Equal(t, 0, p.WAResetDate.Hour())
	assert.Equal(t, domain.NextMonthStart(time.Now()), p.WAResetDate)

	assert.Len(t, store.profiles, 1)
}

func TestActivatePremiumRenewsExistingProfile(t *testing.T) {
	store := newFakeStore()
	resetDate := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	store.profiles["doc-1"] = &domain.Profile{
		ID:              "doc-1",
		UserID:          "u123",
		Plan:            domain.PlanFree,
		PremiumUntil:    time.Now().Add(-time.Hour),
		WAReminderCount: 4,
		WAResetDate:     resetDate,
	}

	svc := NewSubscriptionService(store)
	act, err := svc.ActivatePremium(context.Background(), "u123")
	require.NoError(t, err)
	assert.False(t, act.Created)
	assert.Equal(t, "doc-1", act.Profile.ID)

	stored := store.profiles["doc-1"]
	assert.Equal(t, domain.PlanPremium, stored.Plan)
	assert.Equal(t, 0, stored.WAReminderCount)
	assert.WithinDuration(t, time.Now().Add(domain.PremiumPeriod), stored.PremiumUntil, 5*time.Second)

	// Renewal never recreates the document or touches waResetDate.
	assert.Len(t, store.profiles, 1)
	assert.Equal(t, resetDate, stored.WAResetDate)
	assert.Equal(t, "u123", stored.UserID)
}

func TestActivatePremiumPropagatesLookupError(t *testing.T) {
	store := newFakeStore()
	store.findErr = errors.New("store unreachable")

	svc := NewSubscriptionService(store)
	_, err := svc.ActivatePremium(context.Background(), "u123")
	require.Error(t, err)
	assert.Empty(t, store.profiles, "no mutation on lookup failure")
}

func TestActivatePremiumPropagatesWriteError(t *testing.T) {
	store := newFakeStore()
	store.writeErr = errors.New("write refused")

	svc := NewSubscriptionService(store)
	_, err := svc.ActivatePremium(context.Background(), "u123")
	require.Error(t, err)
}
