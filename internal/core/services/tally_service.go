package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/hoavote/ballotbot/internal/core/domain"
	"github.com/hoavote/ballotbot/internal/core/ports"
)

// MessageLimit is the transport's per-message size ceiling. Rendered
// summaries are split into segments no larger than this.
const MessageLimit = 4096

type tallyService struct {
	ballots ports.BallotRepository
}

func NewTallyService(ballots ports.BallotRepository) ports.TallyService {
	return &tallyService{ballots: ballots}
}

// Summarize aggregates every complete ballot into per-question counts
// plus a voter roll. Incomplete records and choices outside a question's
// fixed set contribute nothing. Admin gating is the dispatcher's job.
func (s *tallyService) Summarize(ctx context.Context) (*ports.TallySummary, error) {
	records, err := s.ballots.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &ports.TallySummary{
		Counts: make(map[string]map[string]int, len(domain.Questions)),
	}
	for _, q := range domain.Questions {
		summary.Counts[q.Key] = make(map[string]int, len(q.Choices))
		for _, c := range q.Choices {
			summary.Counts[q.Key][c] = 0
		}
	}

	for _, rec := range records {
		if !rec.Complete() {
			continue
		}
		summary.Total++
		for _, q := range domain.Questions {
			choice, _ := rec.Choice(q.Key)
			if q.ValidChoice(choice) {
				summary.Counts[q.Key][choice]++
			}
		}
		summary.Voters = append(summary.Voters, ports.VoterAnswers{
			DisplayName: rec.DisplayName,
			Answers:     rec.Answers,
		})
	}

	return summary, nil
}

// RenderSummary formats a tally summary into transport-sized text
// segments, preserving catalog order.
func RenderSummary(summary *ports.TallySummary) []string {
	var b strings.Builder
	b.WriteString("📊 VOTING SUMMARY\n\n")
	for _, q := range domain.Questions {
		fmt.Fprintf(&b, "%s:\n", strings.ToUpper(q.Key))
		for _, c := range q.Choices {
			fmt.Fprintf(&b, "%s: %d\n", c, summary.Counts[q.Key][c])
		}
		b.WriteString("\n")
	}

	b.WriteString("👥 WHO VOTED:\n\n")
	for _, v := range summary.Voters {
		b.WriteString(v.DisplayName)
		b.WriteString("\n")
		for _, a := range v.Answers {
			fmt.Fprintf(&b, "  %s: %s\n", a.Question, a.Choice)
		}
	}

	return chunkLines(b.String(), MessageLimit)
}

// chunkLines splits text into segments of at most limit bytes, breaking
// on line boundaries where possible.
func chunkLines(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var segments []string
	var cur strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		for len(line) > limit {
			// A single oversized line is split mid-line.
			if cur.Len() > 0 {
				segments = append(segments, cur.String())
				cur.Reset()
			}
			segments = append(segments, line[:limit])
			line = line[limit:]
		}
		if cur.Len()+len(line) > limit {
			segments = append(segments, cur.String())
			cur.Reset()
		}
		cur.WriteString(line)
	}
	if cur.Len() > 0 {
		segments = append(segments, cur.String())
	}
	return segments
}
