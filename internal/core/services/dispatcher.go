package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hoavote/ballotbot/internal/core/domain"
	"github.com/hoavote/ballotbot/internal/core/ports"
)

// Dispatcher routes an inbound interaction to the right workflow or
// admin operation and turns the outcome into (text, choices) replies.
// Every error in the workflow taxonomy maps to a user-facing message;
// unknown errors are logged and reported as a retryable failure.
type Dispatcher struct {
	ballot      ports.BallotService
	eligibility ports.EligibilityService
	tally       ports.TallyService
	ballots     ports.BallotRepository
	window      *VotingWindow
	logger      *slog.Logger
}

func NewDispatcher(ballot ports.BallotService, eligibility ports.EligibilityService, tally ports.TallyService, ballots ports.BallotRepository, window *VotingWindow, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		ballot:      ballot,
		eligibility: eligibility,
		tally:       tally,
		ballots:     ballots,
		window:      window,
		logger:      logger,
	}
}

// Dispatch handles one interaction. An empty reply slice means the
// interaction is deliberately answered with silence (for example a
// non-admin asking for results).
func (d *Dispatcher) Dispatch(ctx context.Context, in domain.Interaction) []domain.Reply {
	payload := strings.TrimSpace(in.Payload)
	token := strings.TrimPrefix(payload, "/")

	switch token {
	case "start", "menu":
		return d.welcome(in.DisplayName)
	case "getid":
		return []domain.Reply{{Text: fmt.Sprintf("Your ID: %d", in.VoterID)}}
	case "open":
		return d.adminGate(in.VoterID, d.window.Open, "Voting is now OPEN.")
	case "close":
		return d.adminGate(in.VoterID, d.window.Close, "Voting is now CLOSED.")
	case "clearvotes":
		return d.clearVotes(ctx, in.VoterID)
	case "results":
		return d.results(ctx, in.VoterID)
	case "begin":
		return d.begin(ctx, in)
	case "revote", "revote_button":
		return d.revote(ctx, in.VoterID)
	case "prevote":
		return d.startRegistration(ctx, in.VoterID)
	case "cancel":
		if err := d.eligibility.Cancel(ctx, in.VoterID); err != nil {
			return d.failure(err)
		}
		return []domain.Reply{{Text: "Registration cancelled. Nothing was saved."}}
	}

	// Only a known question or registration-step key marks a structured
	// choice; anything else with a "|" in it is ordinary text (an address
	// like "Phase 2 | Block 5" must reach the free-text step untouched).
	if key, choice, ok := strings.Cut(payload, "|"); ok && knownChoiceKey(key) {
		return d.choice(ctx, in, key, choice)
	}

	return d.freeText(ctx, in.VoterID, payload)
}

func (d *Dispatcher) welcome(displayName string) []domain.Reply {
	text := fmt.Sprintf(`Welcome %s 👋

🗳 AGHAI Official Voting Portal

Instructions:
• Tap "Begin Voting"
• You may vote only once
• You may change your vote before deadline
• Only admins can view results`, displayName)
	return []domain.Reply{{
		Text: text,
		Choices: []domain.Choice{
			{Label: "🗳 Begin Voting", Payload: "begin"},
			{Label: "📝 Pre-Vote Registration", Payload: "prevote"},
		},
	}}
}

func (d *Dispatcher) begin(ctx context.Context, in domain.Interaction) []domain.Reply {
	q, err := d.ballot.Begin(ctx, in.VoterID, in.DisplayName)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyVoted):
			return []domain.Reply{{
				Text:    "⚠️ You have already voted.",
				Choices: []domain.Choice{{Label: "🔁 Change My Vote", Payload: "revote_button"}},
			}}
		case errors.Is(err, domain.ErrNotEligible):
			return []domain.Reply{{
				Text:    "You need to complete pre-vote registration before voting.",
				Choices: []domain.Choice{{Label: "📝 Register Now", Payload: "prevote"}},
			}}
		default:
			return d.failure(err)
		}
	}
	return []domain.Reply{questionReply(q)}
}

func (d *Dispatcher) revote(ctx context.Context, voterID domain.VoterID) []domain.Reply {
	if err := d.ballot.Revote(ctx, voterID); err != nil {
		if errors.Is(err, domain.ErrBallotNotFound) {
			return []domain.Reply{{
				Text:    "You have no recorded vote to clear.",
				Choices: []domain.Choice{{Label: "🗳 Begin Voting", Payload: "begin"}},
			}}
		}
		return d.failure(err)
	}
	return []domain.Reply{{
		Text:    "Your previous vote has been cleared.\n\nClick below to vote again.",
		Choices: []domain.Choice{{Label: "🗳 Begin Voting Again", Payload: "begin"}},
	}}
}

func (d *Dispatcher) choice(ctx context.Context, in domain.Interaction, key, choice string) []domain.Reply {
	if _, ok := domain.QuestionByKey(key); ok {
		next, done, err := d.ballot.Answer(ctx, in.VoterID, key, choice)
		if err != nil {
			return d.failure(err)
		}
		if done {
			return []domain.Reply{{
				Text: "✅ Thank you. Your vote has been recorded.\n\n" +
					"If you change your mind before the deadline, click below:",
				Choices: []domain.Choice{{Label: "🔁 Change My Vote", Payload: "revote_button"}},
			}}
		}
		return []domain.Reply{questionReply(next)}
	}

	if _, ok := domain.StepByKey(key); ok {
		next, err := d.eligibility.Choose(ctx, in.VoterID, key, choice)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyRegistered) {
				return []domain.Reply{{Text: domain.StepDone.Prompt()}}
			}
			return d.failure(err)
		}
		return []domain.Reply{stepReply(next)}
	}

	return d.failure(domain.ErrInvalidChoice)
}

func (d *Dispatcher) startRegistration(ctx context.Context, voterID domain.VoterID) []domain.Reply {
	step, err := d.eligibility.Start(ctx, voterID)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			return []domain.Reply{{Text: domain.StepDone.Prompt()}}
		}
		return d.failure(err)
	}
	return []domain.Reply{stepReply(step)}
}

func (d *Dispatcher) freeText(ctx context.Context, voterID domain.VoterID, text string) []domain.Reply {
	step, err := d.eligibility.Text(ctx, voterID, text)
	if err != nil {
		if errors.Is(err, domain.ErrWrongState) {
			// No conversation in progress; point the voter at the menu.
			return []domain.Reply{{
				Text:    "Send /start to begin.",
				Choices: []domain.Choice{{Label: "Menu", Payload: "menu"}},
			}}
		}
		return d.failure(err)
	}
	return []domain.Reply{stepReply(step)}
}

func (d *Dispatcher) results(ctx context.Context, voterID domain.VoterID) []domain.Reply {
	// Fail-closed: unauthorized reads get no response at all.
	if !d.window.IsAdmin(voterID) {
		return nil
	}

	summary, err := d.tally.Summarize(ctx)
	if err != nil {
		return d.failure(err)
	}

	segments := RenderSummary(summary)
	replies := make([]domain.Reply, 0, len(segments))
	for _, seg := range segments {
		replies = append(replies, domain.Reply{Text: seg})
	}
	return replies
}

func (d *Dispatcher) clearVotes(ctx context.Context, voterID domain.VoterID) []domain.Reply {
	if !d.window.IsAdmin(voterID) {
		return []domain.Reply{{Text: "This command is restricted to administrators."}}
	}
	if err := d.ballots.DeleteAll(ctx); err != nil {
		return d.failure(err)
	}
	return []domain.Reply{{Text: "All votes cleared."}}
}

func (d *Dispatcher) adminGate(voterID domain.VoterID, op func(domain.VoterID) error, okText string) []domain.Reply {
	if err := op(voterID); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return []domain.Reply{{Text: "This command is restricted to administrators."}}
		}
		return d.failure(err)
	}
	return []domain.Reply{{Text: okText}}
}

// failure maps workflow errors to voter-facing messages. Anything
// outside the known taxonomy is treated as a transient store problem
// and invites a retry; the voter's collected answers stay intact.
func (d *Dispatcher) failure(err error) []domain.Reply {
	switch {
	case errors.Is(err, domain.ErrGateClosed):
		return []domain.Reply{{Text: "Voting is currently CLOSED."}}
	case errors.Is(err, domain.ErrWrongState):
		return []domain.Reply{{Text: "That choice no longer matches your current step. Send /start to see the menu."}}
	case errors.Is(err, domain.ErrInvalidChoice):
		return []domain.Reply{{Text: "That is not one of the available choices."}}
	case errors.Is(err, domain.ErrUnauthorized):
		return []domain.Reply{{Text: "This command is restricted to administrators."}}
	default:
		d.logger.Error("interaction failed", "error", err)
		return []domain.Reply{{Text: "Something went wrong on our side. Please try that step again."}}
	}
}

func knownChoiceKey(key string) bool {
	if _, ok := domain.QuestionByKey(key); ok {
		return true
	}
	_, ok := domain.StepByKey(key)
	return ok
}

func questionReply(q domain.Question) domain.Reply {
	choices := make([]domain.Choice, 0, len(q.Choices))
	for _, c := range q.Choices {
		choices = append(choices, domain.Choice{Label: c, Payload: q.Key + "|" + c})
	}
	return domain.Reply{Text: q.Text, Choices: choices}
}

func stepReply(step domain.RegistrationStep) domain.Reply {
	opts := step.Options()
	choices := make([]domain.Choice, 0, len(opts))
	for _, opt := range opts {
		choices = append(choices, domain.Choice{Label: opt.Label, Payload: step.Key() + "|" + opt.Value})
	}
	return domain.Reply{Text: step.Prompt(), Choices: choices}
}
