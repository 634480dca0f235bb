package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/hoavote/ballotbot/internal/core/ports"
)

// Reminder periodically notifies every administrator about the voting
// status. The period starts at process launch and is not persisted; a
// restart resets it.
type Reminder struct {
	notifier ports.Notifier
	window   *VotingWindow
	interval time.Duration
	// remindWhenClosed keeps the scheduler firing even while the
	// window is closed, telling admins voting is closed instead.
	remindWhenClosed bool
	logger           *slog.Logger
}

func NewReminder(notifier ports.Notifier, window *VotingWindow, interval time.Duration, remindWhenClosed bool, logger *slog.Logger) *Reminder {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reminder{
		notifier:         notifier,
		window:           window,
		interval:         interval,
		remindWhenClosed: remindWhenClosed,
		logger:           logger,
	}
}

// Run blocks until ctx is cancelled, firing once per interval.
func (r *Reminder) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fire(ctx)
		}
	}
}

func (r *Reminder) fire(ctx context.Context) {
	open := r.window.Allow()
	if !open && !r.remindWhenClosed {
		return
	}

	text := "Reminder: Voting is ongoing."
	if !open {
		text = "Reminder: Voting is currently CLOSED."
	}

	for _, admin := range r.window.Admins() {
		if err := r.notifier.Notify(ctx, admin, text); err != nil {
			r.logger.Error("failed to send reminder", "admin", admin, "error", err)
		}
	}
}
