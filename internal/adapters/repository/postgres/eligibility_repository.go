package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hoavote/ballotbot/internal/core/domain"
	"github.com/hoavote/ballotbot/internal/core/ports"
)

type eligibilityRepository struct {
	db *sql.DB
}

func NewEligibilityRepository(db *sql.DB) ports.EligibilityRepository {
	return &eligibilityRepository{
		db: db,
	}
}

func (r *eligibilityRepository) Save(ctx context.Context, rec *domain.EligibilityRecord) error {
	query := `
		INSERT INTO eligibility (id, voter_id, full_name, address, mobile, email,
			membership_status, attendance, wishes_to_nominate, nominee_names, declared, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.VoterID, rec.FullName, rec.Address, rec.Mobile, rec.Email,
		rec.MembershipStatus, rec.Attendance, rec.WishesToNominate, rec.NomineeNames,
		rec.Declared, rec.SubmittedAt,
	)
	if err != nil {
		return storeErr("failed to save eligibility record", err)
	}
	return nil
}

func (r *eligibilityRepository) GetByVoter(ctx context.Context, voterID domain.VoterID) (*domain.EligibilityRecord, error) {
	query := `
		SELECT id, voter_id, full_name, address, mobile, email,
			membership_status, attendance, wishes_to_nominate, nominee_names, declared, submitted_at
		FROM eligibility
		WHERE voter_id = $1
	`
	var rec domain.EligibilityRecord
	err := r.db.QueryRowContext(ctx, query, voterID).Scan(
		&rec.ID, &rec.VoterID, &rec.FullName, &rec.Address, &rec.Mobile, &rec.Email,
		&rec.MembershipStatus, &rec.Attendance, &rec.WishesToNominate, &rec.NomineeNames,
		&rec.Declared, &rec.SubmittedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("failed to get eligibility record", err)
	}
	return &rec, nil
}

func (r *eligibilityRepository) DeleteByVoter(ctx context.Context, voterID domain.VoterID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM eligibility WHERE voter_id = $1`, voterID)
	if err != nil {
		return storeErr("failed to delete eligibility record", err)
	}
	return nil
}
