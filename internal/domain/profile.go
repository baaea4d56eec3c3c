package domain

import "time"

// Subscription plans. Only premium is ever written by this service; free is
// what a profile falls back to elsewhere when premiumUntil lapses.
const (
	PlanFree    = "free"
	PlanPremium = "premium"
)

// PremiumPeriod is how long one activation lasts.
const PremiumPeriod = 30 * 24 * time.Hour

// Profile is the per-user subscription record. At most one profile exists
// per userId; it is created on first activation and updated on renewal,
// never deleted.
type Profile struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Plan            string    `json:"plan"`
	PremiumUntil    time.Time `json:"premiumUntil"`
	WAReminderCount int       `json:"waReminderCount"`
	WAResetDate     time.Time `json:"waResetDate"`
}

// NextMonthStart returns midnight on the first day of the month following
// now, in now's location. Used for waResetDate, which is set once at profile
// creation and never touched on renewal.
func NextMonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
}
