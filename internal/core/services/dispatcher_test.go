package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoavote/ballotbot/internal/adapters/repository/memory"
	"github.com/hoavote/ballotbot/internal/core/domain"
	"github.com/hoavote/ballotbot/internal/core/ports"
)

const adminID domain.VoterID = 99

func newTestDispatcher(t *testing.T) (*Dispatcher, ports.BallotRepository) {
	t.Helper()
	ballots := memory.NewBallotRepository()
	eligibility := memory.NewEligibilityRepository()
	window := NewVotingWindow([]domain.VoterID{adminID}, true, nil)

	ballotSvc := NewBallotService(ballots, eligibility, window, BallotConfig{})
	eligibilitySvc := NewEligibilityService(eligibility, window, 0)
	tallySvc := NewTallyService(ballots)

	return NewDispatcher(ballotSvc, eligibilitySvc, tallySvc, ballots, window, nil), ballots
}

func dispatch(d *Dispatcher, voter domain.VoterID, payload string) []domain.Reply {
	return d.Dispatch(context.Background(), domain.Interaction{
		VoterID:     voter,
		DisplayName: "Voter " + payload,
		Payload:     payload,
	})
}

func voteAll(t *testing.T, d *Dispatcher, voter domain.VoterID) {
	t.Helper()
	replies := dispatch(d, voter, "begin")
	require.Len(t, replies, 1)
	for _, p := range []string{"q1|APPROVE", "q2|APPROVE", "q3|APPROVE", "q4|4a"} {
		replies = dispatch(d, voter, p)
		require.Len(t, replies, 1)
	}
	assert.Contains(t, replies[0].Text, "Your vote has been recorded")
}

func TestDispatchStartShowsMenu(t *testing.T) {
	d, _ := newTestDispatcher(t)

	replies := dispatch(d, 1, "/start")
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "Voting Portal")
	require.NotEmpty(t, replies[0].Choices)
	assert.Equal(t, "begin", replies[0].Choices[0].Payload)
}

func TestDispatchBallotFlow(t *testing.T) {
	d, _ := newTestDispatcher(t)

	replies := dispatch(d, 1, "begin")
	require.Len(t, replies, 1)
	require.Len(t, replies[0].Choices, 2)
	assert.Equal(t, "q1|APPROVE", replies[0].Choices[0].Payload)

	voteAll(t, d, 2)

	// Voting again is refused with a revote entry point.
	replies = dispatch(d, 2, "begin")
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "already voted")
	require.Len(t, replies[0].Choices, 1)
	assert.Equal(t, "revote_button", replies[0].Choices[0].Payload)
}

func TestDispatchRevoteButton(t *testing.T) {
	d, ballots := newTestDispatcher(t)
	voteAll(t, d, 1)

	replies := dispatch(d, 1, "revote_button")
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "has been cleared")

	rec, err := ballots.GetByVoter(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestDispatchGetID(t *testing.T) {
	d, _ := newTestDispatcher(t)
	replies := dispatch(d, 42, "/getid")
	require.Len(t, replies, 1)
	assert.Equal(t, "Your ID: 42", replies[0].Text)
}

func TestDispatchAdminOpenClose(t *testing.T) {
	d, _ := newTestDispatcher(t)

	replies := dispatch(d, adminID, "/close")
	require.Len(t, replies, 1)
	assert.Equal(t, "Voting is now CLOSED.", replies[0].Text)

	replies = dispatch(d, 1, "begin")
	require.Len(t, replies, 1)
	assert.Equal(t, "Voting is currently CLOSED.", replies[0].Text)

	replies = dispatch(d, adminID, "/open")
	require.Len(t, replies, 1)
	assert.Equal(t, "Voting is now OPEN.", replies[0].Text)

	replies = dispatch(d, 1, "begin")
	require.Len(t, replies, 1)
	assert.NotEqual(t, "Voting is currently CLOSED.", replies[0].Text)
}

func TestDispatchAdminCommandsDenied(t *testing.T) {
	d, _ := newTestDispatcher(t)

	for _, cmd := range []string{"/open", "/close", "/clearvotes"} {
		replies := dispatch(d, 1, cmd)
		require.Len(t, replies, 1, cmd)
		assert.Contains(t, replies[0].Text, "restricted to administrators", cmd)
	}
}

func TestDispatchResultsSilentForNonAdmin(t *testing.T) {
	d, _ := newTestDispatcher(t)
	voteAll(t, d, 1)

	replies := dispatch(d, 1, "/results")
	assert.Empty(t, replies, "unauthorized reads get no response")

	replies = dispatch(d, adminID, "/results")
	require.NotEmpty(t, replies)
	assert.Contains(t, replies[0].Text, "VOTING SUMMARY")
}

func TestDispatchResultsWorkWhileClosed(t *testing.T) {
	d, _ := newTestDispatcher(t)
	voteAll(t, d, 1)

	dispatch(d, adminID, "/close")
	replies := dispatch(d, adminID, "/results")
	require.NotEmpty(t, replies, "read-only admin tally succeeds while the gate is closed")
	assert.Contains(t, replies[0].Text, "VOTING SUMMARY")
}

func TestDispatchClearVotes(t *testing.T) {
	d, ballots := newTestDispatcher(t)
	voteAll(t, d, 1)
	voteAll(t, d, 2)

	replies := dispatch(d, adminID, "/clearvotes")
	require.Len(t, replies, 1)
	assert.Equal(t, "All votes cleared.", replies[0].Text)

	all, err := ballots.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDispatchRegistrationFlow(t *testing.T) {
	d, _ := newTestDispatcher(t)

	replies := dispatch(d, 1, "/prevote")
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "FULL NAME")

	for _, text := range []string{"Juan dela Cruz", "Block 5 Lot 12", "09171234567", "juan@example.com"} {
		replies = dispatch(d, 1, text)
		require.Len(t, replies, 1)
	}
	assert.Contains(t, replies[0].Text, "registered owner")
	assert.Equal(t, "membership_status|registered_owner", replies[0].Choices[0].Payload)

	replies = dispatch(d, 1, "membership_status|registered_owner")
	require.Len(t, replies, 1)
	replies = dispatch(d, 1, "attendance|yes")
	require.Len(t, replies, 1)
	replies = dispatch(d, 1, "nominate|no")
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "declare")

	replies = dispatch(d, 1, "declaration|agree")
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "registration has been recorded")

	// Starting again short-circuits to the terminal message.
	replies = dispatch(d, 1, "/prevote")
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "registration has been recorded")
}

func TestDispatchWrongStateMessage(t *testing.T) {
	d, _ := newTestDispatcher(t)

	dispatch(d, 1, "begin")
	dispatch(d, 1, "q1|APPROVE")

	// A late duplicate tap for q1.
	replies := dispatch(d, 1, "q1|APPROVE")
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "no longer matches")
}

func TestDispatchFreeTextWithoutConversation(t *testing.T) {
	d, _ := newTestDispatcher(t)

	replies := dispatch(d, 1, "hello there")
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "/start")
}

func TestDispatchUnknownChoiceKey(t *testing.T) {
	d, _ := newTestDispatcher(t)

	// A payload whose prefix matches no question or step key is plain
	// text, and with no conversation open it earns the menu pointer.
	replies := dispatch(d, 1, "q9|APPROVE")
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "/start")
}

func TestDispatchFreeTextWithPipe(t *testing.T) {
	d, _ := newTestDispatcher(t)

	replies := dispatch(d, 1, "/prevote")
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "FULL NAME")

	replies = dispatch(d, 1, "Juan dela Cruz")
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "ADDRESS")

	// An address containing "|" stays on the free-text path and
	// advances the conversation to the mobile prompt.
	replies = dispatch(d, 1, "Phase 2 | Block 5 Lot 12")
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "MOBILE")
}
