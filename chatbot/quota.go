package chatbot

import (
	"context"
	"time"

	"github.com/mentio/mentio/store"
)

// QuotaGate decides whether a user may start a new turn this billing period.
// Paid subscribers are never limited; everyone else gets a fixed number of
// assistant replies per calendar month (server-local month boundaries).
//
// The count is read here but written later by the orchestrator, so two
// concurrent turns can both pass when one slot remains. The limit is best
// effort, not a hard cap.
type QuotaGate struct {
	store *store.Store
	limit int
	now   func() time.Time
}

// NewQuotaGate builds a gate with the given monthly limit.
func NewQuotaGate(s *store.Store, limit int) *QuotaGate {
	return &QuotaGate{store: s, limit: limit, now: time.Now}
}

// Allow reports whether a new turn may proceed for the user.
func (g *QuotaGate) Allow(ctx context.Context, userID int32, hasPaidSubscription bool) (bool, error) {
	if hasPaidSubscription {
		return true, nil
	}
	count, err := g.Usage(ctx, userID)
	if err != nil {
		return false, err
	}
	return count < g.limit, nil
}

// Usage returns the number of assistant replies generated for the user in
// the current calendar month. Recomputed on every call, never cached.
func (g *QuotaGate) Usage(ctx context.Context, userID int32) (int, error) {
	start, end := monthWindow(g.now())
	startTs, endTs := start.Unix(), end.Unix()
	kind := store.KindAssistant
	return g.store.CountMessages(ctx, &store.CountMessage{
		CreatorID:     &userID,
		Kind:          &kind,
		CreatedAfter:  &startTs,
		CreatedBefore: &endTs,
	})
}

// Limit returns the configured monthly limit for unpaid users.
func (g *QuotaGate) Limit() int {
	return g.limit
}

// monthWindow returns the half-open interval [start of month, start of next
// month) around now, in now's location.
func monthWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0)
}
