package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoavote/ballotbot/internal/core/domain"
)

type stubDispatcher struct {
	last    domain.Interaction
	replies []domain.Reply
}

func (s *stubDispatcher) Dispatch(_ context.Context, in domain.Interaction) []domain.Reply {
	s.last = in
	return s.replies
}

func TestInteractionRoundTrip(t *testing.T) {
	stub := &stubDispatcher{replies: []domain.Reply{{
		Text:    "hello",
		Choices: []domain.Choice{{Label: "Begin", Payload: "begin"}},
	}}}
	server := httptest.NewServer(NewHandler(NewInteractionHandler(stub)))
	defer server.Close()

	body, _ := json.Marshal(map[string]interface{}{
		"voter_id":     int64(42),
		"display_name": "V42",
		"payload":      "/start",
	})
	resp, err := http.Post(server.URL+"/api/interactions", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Replies []domain.Reply `json:"replies"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Replies, 1)
	assert.Equal(t, "hello", out.Replies[0].Text)
	assert.Equal(t, "begin", out.Replies[0].Choices[0].Payload)

	assert.Equal(t, domain.VoterID(42), stub.last.VoterID)
	assert.Equal(t, "/start", stub.last.Payload)
}

func TestInteractionSilenceIsEmptyList(t *testing.T) {
	stub := &stubDispatcher{replies: nil}
	server := httptest.NewServer(NewHandler(NewInteractionHandler(stub)))
	defer server.Close()

	body, _ := json.Marshal(map[string]interface{}{"voter_id": int64(1), "payload": "/results"})
	resp, err := http.Post(server.URL+"/api/interactions", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.JSONEq(t, "[]", string(out["replies"]))
}

func TestInteractionBadRequests(t *testing.T) {
	server := httptest.NewServer(NewHandler(NewInteractionHandler(&stubDispatcher{})))
	defer server.Close()

	resp, err := http.Post(server.URL+"/api/interactions", "application/json", strings.NewReader("not json"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Post(server.URL+"/api/interactions", "application/json", strings.NewReader(`{"payload":"x"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	server := httptest.NewServer(NewHandler(NewInteractionHandler(&stubDispatcher{})))
	defer server.Close()

	resp, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
