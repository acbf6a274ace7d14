package order

import (
	"errors"
	"time"
)

// HistoryEntry is one record of the order's append-only audit trail.
type HistoryEntry struct {
	at     time.Time
	status Status
	user   string
	note   string
}

// NewHistoryEntry creates an audit record. status is the order status after the action.
func NewHistoryEntry(at time.Time, status Status, user, note string) (HistoryEntry, error) {
	if err := errors.Join(
		validateTime("timestamp", at),
		status.Validate(),
		validateUser(user),
	); err != nil {
		return HistoryEntry{}, err
	}
	return HistoryEntry{at: at, status: status, user: user, note: note}, nil
}

func (h HistoryEntry) At() time.Time {
	return h.at
}

func (h HistoryEntry) Status() Status {
	return h.status
}

func (h HistoryEntry) User() string {
	return h.user
}

func (h HistoryEntry) Note() string {
	return h.note
}
