package repository

import (
	"context"
	"time"

	"github.com/Smilemka07/QuickLeap/internal/models"
)

type MessageRepository struct {
	db DBTX
}

func NewMessageRepository(db DBTX) *MessageRepository {
	return &MessageRepository{db: db}
}

// Append inserts a message only if the sender is a participant of the match.
// A sender outside the pair yields pgx.ErrNoRows from the empty RETURNING set.
func (r *MessageRepository) Append(
	ctx context.Context,
	matchID int64,
	senderID int64,
	content string,
) (*models.ChatMessage, error) {
	query := `
		INSERT INTO messages (match_id, sender_id, content, is_read)
		SELECT $1, $2, $3, FALSE
		WHERE EXISTS (
			SELECT 1
			FROM matches
			WHERE id = $1 AND (mentor_id = $2 OR mentee_id = $2)
		)
		RETURNING id, match_id, sender_id, content, is_read, sent_at
	`

	var message models.ChatMessage
	err := r.db.QueryRow(ctx, query, matchID, senderID, content).Scan(
		&message.ID,
		&message.MatchID,
		&message.SenderID,
		&message.Content,
		&message.IsRead,
		&message.SentAt,
	)
	if err != nil {
		return nil, err
	}

	return &message, nil
}

// ListThread returns the full message history of a match, oldest first,
// with sender identity attached for rendering.
func (r *MessageRepository) ListThread(
	ctx context.Context,
	matchID int64,
) ([]models.ThreadMessage, error) {
	query := `
		SELECT
			msg.id,
			msg.match_id,
			msg.sender_id,
			msg.content,
			msg.is_read,
			msg.sent_at,
			u.user_name,
			u.profile_photo
		FROM messages msg
		JOIN users u ON msg.sender_id = u.id
		WHERE msg.match_id = $1
		ORDER BY msg.sent_at ASC, msg.id ASC
	`

	rows, err := r.db.Query(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]models.ThreadMessage, 0)
	for rows.Next() {
		var message models.ThreadMessage
		if err := rows.Scan(
			&message.ID,
			&message.MatchID,
			&message.SenderID,
			&message.Content,
			&message.IsRead,
			&message.SentAt,
			&message.SenderName,
			&message.SenderPhoto,
		); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}

// LatestPerMatch returns the single newest message of each given match in one
// query. Latest means max sent_at, ties broken by highest id. Matches with no
// messages are simply absent from the result.
func (r *MessageRepository) LatestPerMatch(
	ctx context.Context,
	matchIDs []int64,
) (map[int64]models.ChatMessage, error) {
	latest := make(map[int64]models.ChatMessage, len(matchIDs))
	if len(matchIDs) == 0 {
		return latest, nil
	}

	query := `
		SELECT DISTINCT ON (match_id)
			id, match_id, sender_id, content, is_read, sent_at
		FROM messages
		WHERE match_id = ANY($1)
		ORDER BY match_id, sent_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, matchIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var message models.ChatMessage
		if err := rows.Scan(
			&message.ID,
			&message.MatchID,
			&message.SenderID,
			&message.Content,
			&message.IsRead,
			&message.SentAt,
		); err != nil {
			return nil, err
		}
		latest[message.MatchID] = message
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return latest, nil
}

// MarkThreadRead flips the reader's incoming unread messages. Re-running it
// against an already-read thread is a no-op.
func (r *MessageRepository) MarkThreadRead(
	ctx context.Context,
	matchID int64,
	readerID int64,
) error {
	_, err := r.db.Exec(ctx, `
		UPDATE messages
		SET is_read = TRUE
		WHERE match_id = $1
		  AND sender_id <> $2
		  AND is_read = FALSE
	`, matchID, readerID)
	return err
}

func (r *MessageRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM messages msg
		JOIN matches m ON msg.match_id = m.id
		WHERE (m.mentor_id = $1 OR m.mentee_id = $1)
		  AND msg.sender_id <> $1
		  AND msg.is_read = FALSE
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *MessageRepository) CountUnreadBetween(
	ctx context.Context,
	userID int64,
	from time.Time,
	to time.Time,
) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM messages msg
		JOIN matches m ON msg.match_id = m.id
		WHERE (m.mentor_id = $1 OR m.mentee_id = $1)
		  AND msg.sender_id <> $1
		  AND msg.is_read = FALSE
		  AND msg.sent_at >= $2
		  AND msg.sent_at <= $3
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID, from, to).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
