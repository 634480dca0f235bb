package notifier

import (
	"context"
	"log/slog"

	"github.com/hoavote/ballotbot/internal/core/domain"
	"github.com/hoavote/ballotbot/internal/core/ports"
)

// Log writes outbound messages to the structured log. Used when no
// transport send endpoint is configured.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) ports.Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

func (n *Log) Notify(_ context.Context, voterID domain.VoterID, text string) error {
	n.logger.Info("outbound message", "voter_id", voterID, "text", text)
	return nil
}
