package ports

import (
	"context"

	"github.com/hoavote/ballotbot/internal/core/domain"
)

// Notifier sends a plain text message to a voter through the chat
// transport. Used by the reminder scheduler for admin notifications.
type Notifier interface {
	Notify(ctx context.Context, voterID domain.VoterID, text string) error
}
