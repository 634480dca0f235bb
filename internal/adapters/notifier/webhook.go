package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hoavote/ballotbot/internal/core/domain"
	"github.com/hoavote/ballotbot/internal/core/ports"
)

// Webhook posts outbound messages to the chat transport's send
// endpoint as JSON.
type Webhook struct {
	url    string
	client *http.Client
}

func NewWebhook(url string) ports.Notifier {
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type outboundMessage struct {
	VoterID int64  `json:"voter_id"`
	Text    string `json:"text"`
}

func (n *Webhook) Notify(ctx context.Context, voterID domain.VoterID, text string) error {
	body, err := json.Marshal(outboundMessage{VoterID: int64(voterID), Text: text})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("transport rejected message: status %d", resp.StatusCode)
	}
	return nil
}
