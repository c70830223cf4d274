package repository

import (
	"context"
	"time"

	"github.com/Smilemka07/QuickLeap/internal/models"
)

type MatchRepository struct {
	db DBTX
}

func NewMatchRepository(db DBTX) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Create(
	ctx context.Context,
	mentorID int64,
	menteeID int64,
) (*models.Match, error) {
	query := `
		INSERT INTO matches (mentor_id, mentee_id)
		VALUES ($1, $2)
		RETURNING id, mentor_id, mentee_id, created_at
	`

	var match models.Match
	err := r.db.QueryRow(ctx, query, mentorID, menteeID).Scan(
		&match.ID,
		&match.MentorID,
		&match.MenteeID,
		&match.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &match, nil
}

// ListForUser returns every match the user participates in, on either side,
// with both participants' identity snapshots attached. No ordering guarantee.
func (r *MatchRepository) ListForUser(
	ctx context.Context,
	userID int64,
) ([]models.MatchWithParticipants, error) {
	query := `
		SELECT
			m.id,
			m.mentor_id,
			m.mentee_id,
			m.created_at,
			mentor.id,
			mentor.user_name,
			mentor.profile_photo,
			mentor.skills,
			mentee.id,
			mentee.user_name,
			mentee.profile_photo,
			mentee.skills
		FROM matches m
		JOIN users mentor ON m.mentor_id = mentor.id
		JOIN users mentee ON m.mentee_id = mentee.id
		WHERE m.mentor_id = $1 OR m.mentee_id = $1
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.MatchWithParticipants, 0)
	for rows.Next() {
		var match models.MatchWithParticipants
		if err := rows.Scan(
			&match.ID,
			&match.MentorID,
			&match.MenteeID,
			&match.CreatedAt,
			&match.Mentor.ID,
			&match.Mentor.UserName,
			&match.Mentor.ProfilePhoto,
			&match.Mentor.Skills,
			&match.Mentee.ID,
			&match.Mentee.UserName,
			&match.Mentee.ProfilePhoto,
			&match.Mentee.Skills,
		); err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return matches, nil
}

func (r *MatchRepository) GetByIDForParticipant(
	ctx context.Context,
	matchID int64,
	participantID int64,
) (*models.Match, error) {
	query := `
		SELECT id, mentor_id, mentee_id, created_at
		FROM matches
		WHERE id = $1 AND (mentor_id = $2 OR mentee_id = $2)
	`

	var match models.Match
	err := r.db.QueryRow(ctx, query, matchID, participantID).Scan(
		&match.ID,
		&match.MentorID,
		&match.MenteeID,
		&match.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &match, nil
}

func (r *MatchRepository) ExistsForPair(ctx context.Context, a int64, b int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM matches
			WHERE (mentor_id = $1 AND mentee_id = $2)
			   OR (mentor_id = $2 AND mentee_id = $1)
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, a, b).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *MatchRepository) CountForUser(ctx context.Context, userID int64) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM matches
		WHERE mentor_id = $1 OR mentee_id = $1
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *MatchRepository) CountCreatedBetween(
	ctx context.Context,
	userID int64,
	from time.Time,
	to time.Time,
) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM matches
		WHERE (mentor_id = $1 OR mentee_id = $1)
		  AND created_at >= $2
		  AND created_at <= $3
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID, from, to).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
