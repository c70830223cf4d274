package repository

import (
	"context"

	"github.com/Smilemka07/QuickLeap/internal/models"
)

type RequestRepository struct {
	db DBTX
}

func NewRequestRepository(db DBTX) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(
	ctx context.Context,
	senderID int64,
	receiverID int64,
) (*models.MatchRequest, error) {
	query := `
		INSERT INTO requests (sender_id, receiver_id, status)
		VALUES ($1, $2, 'pending')
		RETURNING id, sender_id, receiver_id, status, created_at
	`

	var request models.MatchRequest
	err := r.db.QueryRow(ctx, query, senderID, receiverID).Scan(
		&request.ID,
		&request.SenderID,
		&request.ReceiverID,
		&request.Status,
		&request.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &request, nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*models.MatchRequest, error) {
	query := `
		SELECT id, sender_id, receiver_id, status, created_at
		FROM requests
		WHERE id = $1
	`

	var request models.MatchRequest
	err := r.db.QueryRow(ctx, query, id).Scan(
		&request.ID,
		&request.SenderID,
		&request.ReceiverID,
		&request.Status,
		&request.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &request, nil
}

func (r *RequestRepository) ListIncoming(
	ctx context.Context,
	receiverID int64,
) ([]models.IncomingRequest, error) {
	query := `
		SELECT
			req.id,
			req.sender_id,
			req.receiver_id,
			req.status,
			req.created_at,
			u.user_name,
			u.profile_photo,
			u.skills
		FROM requests req
		JOIN users u ON req.sender_id = u.id
		WHERE req.receiver_id = $1 AND req.status = 'pending'
		ORDER BY req.created_at DESC, req.id DESC
	`

	rows, err := r.db.Query(ctx, query, receiverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]models.IncomingRequest, 0)
	for rows.Next() {
		var request models.IncomingRequest
		if err := rows.Scan(
			&request.ID,
			&request.SenderID,
			&request.ReceiverID,
			&request.Status,
			&request.CreatedAt,
			&request.SenderName,
			&request.SenderPhoto,
			&request.SenderSkills,
		); err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *RequestRepository) CountPending(ctx context.Context, receiverID int64) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM requests
		WHERE receiver_id = $1 AND status = 'pending'
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, receiverID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *RequestRepository) HasPendingBetween(ctx context.Context, a int64, b int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM requests
			WHERE status = 'pending'
			  AND ((sender_id = $1 AND receiver_id = $2)
			    OR (sender_id = $2 AND receiver_id = $1))
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, a, b).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *RequestRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE requests
		SET status = $2
		WHERE id = $1
	`, id, status)
	return err
}
