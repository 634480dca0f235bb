package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hoavote/ballotbot/internal/core/domain"
	"github.com/hoavote/ballotbot/internal/core/ports"
)

type ballotRepository struct {
	db *sql.DB
}

func NewBallotRepository(db *sql.DB) ports.BallotRepository {
	return &ballotRepository{
		db: db,
	}
}

// storeErr marks backend failures so callers can distinguish a transient
// store problem from a workflow error.
func storeErr(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, errors.Join(domain.ErrStoreUnavailable, err))
}

func (r *ballotRepository) Save(ctx context.Context, ballot *domain.BallotRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("failed to begin transaction", err)
	}
	defer tx.Rollback()

	queryBallot := `
		INSERT INTO ballots (id, voter_id, display_name, submitted_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err = tx.ExecContext(ctx, queryBallot, ballot.ID, ballot.VoterID, ballot.DisplayName, ballot.SubmittedAt)
	if err != nil {
		return storeErr("failed to insert ballot", err)
	}

	queryAnswer := `
		INSERT INTO ballot_answers (ballot_id, position, question_key, choice)
		VALUES ($1, $2, $3, $4)
	`
	stmt, err := tx.PrepareContext(ctx, queryAnswer)
	if err != nil {
		return storeErr("failed to prepare answer statement", err)
	}
	defer stmt.Close()

	for i, a := range ballot.Answers {
		_, err = stmt.ExecContext(ctx, ballot.ID, i, a.Question, a.Choice)
		if err != nil {
			return storeErr("failed to insert answer", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storeErr("failed to commit transaction", err)
	}

	return nil
}

func (r *ballotRepository) GetByVoter(ctx context.Context, voterID domain.VoterID) (*domain.BallotRecord, error) {
	queryBallot := `
		SELECT id, voter_id, display_name, submitted_at
		FROM ballots
		WHERE voter_id = $1
	`

	var ballot domain.BallotRecord
	err := r.db.QueryRowContext(ctx, queryBallot, voterID).Scan(
		&ballot.ID, &ballot.VoterID, &ballot.DisplayName, &ballot.SubmittedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("failed to get ballot", err)
	}

	queryAnswers := `
		SELECT question_key, choice
		FROM ballot_answers
		WHERE ballot_id = $1
		ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, queryAnswers, ballot.ID)
	if err != nil {
		return nil, storeErr("failed to get ballot answers", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.Answer
		if err := rows.Scan(&a.Question, &a.Choice); err != nil {
			return nil, storeErr("failed to scan answer", err)
		}
		ballot.Answers = append(ballot.Answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("failed to read answers", err)
	}

	return &ballot, nil
}

func (r *ballotRepository) DeleteByVoter(ctx context.Context, voterID domain.VoterID) error {
	query := `DELETE FROM ballots WHERE voter_id = $1`
	_, err := r.db.ExecContext(ctx, query, voterID)
	if err != nil {
		return storeErr("failed to delete ballot", err)
	}
	return nil
}

func (r *ballotRepository) List(ctx context.Context) ([]domain.BallotRecord, error) {
	queryBallots := `
		SELECT b.id, b.voter_id, b.display_name, b.submitted_at, a.question_key, a.choice
		FROM ballots b
		JOIN ballot_answers a ON a.ballot_id = b.id
		ORDER BY b.submitted_at, a.position
	`
	rows, err := r.db.QueryContext(ctx, queryBallots)
	if err != nil {
		return nil, storeErr("failed to list ballots", err)
	}
	defer rows.Close()

	var records []domain.BallotRecord
	index := make(map[domain.VoterID]int)
	for rows.Next() {
		var rec domain.BallotRecord
		var a domain.Answer
		if err := rows.Scan(&rec.ID, &rec.VoterID, &rec.DisplayName, &rec.SubmittedAt, &a.Question, &a.Choice); err != nil {
			return nil, storeErr("failed to scan ballot row", err)
		}
		if i, ok := index[rec.VoterID]; ok {
			records[i].Answers = append(records[i].Answers, a)
			continue
		}
		rec.Answers = []domain.Answer{a}
		index[rec.VoterID] = len(records)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("failed to read ballots", err)
	}

	return records, nil
}

func (r *ballotRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM ballots`)
	if err != nil {
		return storeErr("failed to clear ballots", err)
	}
	return nil
}
