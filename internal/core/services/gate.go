package services

import (
	"sync"
	"time"

	"github.com/hoavote/ballotbot/internal/core/domain"
)

// VotingWindow is the process-wide gate over all mutating voter actions:
// an open/closed flag plus an optional absolute deadline. Once the
// deadline passes, every Allow check latches the window closed again,
// even if an admin flipped it back open in the meantime.
//
// The window is not persisted across restarts. The deadline is
// re-derived from configuration at boot; open/close state is whatever
// an admin last issued in this process.
type VotingWindow struct {
	mu       sync.Mutex
	open     bool
	deadline *time.Time
	admins   map[domain.VoterID]struct{}
	adminIDs []domain.VoterID
}

func NewVotingWindow(admins []domain.VoterID, open bool, deadline *time.Time) *VotingWindow {
	set := make(map[domain.VoterID]struct{}, len(admins))
	for _, id := range admins {
		set[id] = struct{}{}
	}
	return &VotingWindow{open: open, deadline: deadline, admins: set, adminIDs: admins}
}

// Allow reports whether mutating operations are permitted. A deadline in
// the past flips the window closed as a side effect (one-way latch).
func (w *VotingWindow) Allow() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.open && w.deadline != nil && !time.Now().Before(*w.deadline) {
		w.open = false
	}
	return w.open
}

// IsOpen reads the flag without evaluating the deadline latch.
func (w *VotingWindow) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open
}

func (w *VotingWindow) Open(actor domain.VoterID) error {
	if !w.IsAdmin(actor) {
		return domain.ErrUnauthorized
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.open = true
	return nil
}

func (w *VotingWindow) Close(actor domain.VoterID) error {
	if !w.IsAdmin(actor) {
		return domain.ErrUnauthorized
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.open = false
	return nil
}

func (w *VotingWindow) IsAdmin(id domain.VoterID) bool {
	_, ok := w.admins[id]
	return ok
}

// Admins returns the administrator set in configuration order.
func (w *VotingWindow) Admins() []domain.VoterID {
	return w.adminIDs
}
