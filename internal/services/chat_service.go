package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Smilemka07/QuickLeap/internal/models"
	"github.com/Smilemka07/QuickLeap/internal/repository"
)

type matchReader interface {
	ListForUser(ctx context.Context, userID int64) ([]models.MatchWithParticipants, error)
	GetByIDForParticipant(ctx context.Context, matchID int64, participantID int64) (*models.Match, error)
}

type messageReader interface {
	LatestPerMatch(ctx context.Context, matchIDs []int64) (map[int64]models.ChatMessage, error)
}

type ChatService struct {
	db          *pgxpool.Pool
	matchRepo   matchReader
	messageRepo messageReader
}

// ConversationList is the assembled, display-ordered conversation view for
// one user. Active is the summary selected by an explicit match id and is nil
// when no id was requested or the id is not among the user's matches.
type ConversationList struct {
	Conversations []models.ConversationSummary
	Active        *models.ConversationSummary
}

func NewChatService(
	db *pgxpool.Pool,
	matchRepo matchReader,
	messageRepo messageReader,
) *ChatService {
	return &ChatService{
		db:          db,
		matchRepo:   matchRepo,
		messageRepo: messageRepo,
	}
}

// ListConversations resolves the user's matches into counterpart-aware
// summaries with latest-message previews, ordered for display. activeMatchID
// of 0 means no selection was requested.
func (s *ChatService) ListConversations(
	ctx context.Context,
	viewerID int64,
	activeMatchID int64,
) (*ConversationList, error) {
	matches, err := s.matchRepo.ListForUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	headers := resolveConversations(matches, viewerID)

	matchIDs := make([]int64, 0, len(headers))
	for _, header := range headers {
		matchIDs = append(matchIDs, header.MatchID)
	}

	latest, err := s.messageRepo.LatestPerMatch(ctx, matchIDs)
	if err != nil {
		return nil, err
	}

	summaries := attachLastActivity(headers, latest)
	assembleConversationList(summaries)

	return &ConversationList{
		Conversations: summaries,
		Active:        activeSummary(summaries, activeMatchID),
	}, nil
}

// ListThread returns the full message history of a match visible to the
// viewer, oldest first, and marks the viewer's incoming messages read.
func (s *ChatService) ListThread(
	ctx context.Context,
	viewerID int64,
	matchID int64,
) ([]models.ThreadMessage, error) {
	if matchID <= 0 {
		return nil, ErrInvalidInput
	}

	if _, err := s.matchRepo.GetByIDForParticipant(ctx, matchID, viewerID); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txMessageRepo := repository.NewMessageRepository(tx)

	messages, err := txMessageRepo.ListThread(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if err := txMessageRepo.MarkThreadRead(ctx, matchID, viewerID); err != nil {
		return nil, err
	}

	for i := range messages {
		if messages[i].SenderID != viewerID {
			messages[i].IsRead = true
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return messages, nil
}

// SendMessage appends a message to a match on behalf of the viewer. The
// insert itself refuses senders outside the participant pair.
func (s *ChatService) SendMessage(
	ctx context.Context,
	viewerID int64,
	matchID int64,
	content string,
) (*models.ChatMessage, error) {
	if matchID <= 0 {
		return nil, ErrInvalidInput
	}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrInvalidInput
	}

	messageRepo := repository.NewMessageRepository(s.db)
	message, err := messageRepo.Append(ctx, matchID, viewerID, trimmed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrForbidden
		}
		return nil, err
	}

	return message, nil
}

// counterpartOf projects the side of the match the viewer is NOT on. Every
// counterpart field comes from the same chosen participant.
func counterpartOf(match models.MatchWithParticipants, viewerID int64) models.ConversationHeader {
	counterpart := match.Mentor
	if viewerID == match.MentorID {
		counterpart = match.Mentee
	}

	return models.ConversationHeader{
		MatchID:           match.ID,
		MatchedAt:         match.CreatedAt,
		CounterpartID:     counterpart.ID,
		CounterpartName:   counterpart.UserName,
		CounterpartPhoto:  counterpart.ProfilePhoto,
		CounterpartSkills: counterpart.Skills,
	}
}

func resolveConversations(
	matches []models.MatchWithParticipants,
	viewerID int64,
) []models.ConversationHeader {
	headers := make([]models.ConversationHeader, 0, len(matches))
	for _, match := range matches {
		headers = append(headers, counterpartOf(match, viewerID))
	}
	return headers
}

// attachLastActivity pairs each header with its latest message, if any.
// Headers without messages keep a nil preview and are never dropped.
func attachLastActivity(
	headers []models.ConversationHeader,
	latest map[int64]models.ChatMessage,
) []models.ConversationSummary {
	summaries := make([]models.ConversationSummary, 0, len(headers))
	for _, header := range headers {
		summary := models.ConversationSummary{ConversationHeader: header}
		if message, ok := latest[header.MatchID]; ok {
			preview := message
			summary.LastMessage = &preview
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// assembleConversationList orders summaries newest activity first. Matches
// without messages sort after every match that has one, regardless of how
// recently the match itself was created. Equal keys fall back to match id
// ascending so repeated renders are identical.
func assembleConversationList(summaries []models.ConversationSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		left, right := summaries[i].LastMessage, summaries[j].LastMessage
		switch {
		case left == nil && right == nil:
			return summaries[i].MatchID < summaries[j].MatchID
		case left == nil:
			return false
		case right == nil:
			return true
		case !left.SentAt.Equal(right.SentAt):
			return left.SentAt.After(right.SentAt)
		default:
			return summaries[i].MatchID < summaries[j].MatchID
		}
	})
}

func activeSummary(
	summaries []models.ConversationSummary,
	matchID int64,
) *models.ConversationSummary {
	if matchID <= 0 {
		return nil
	}
	for i := range summaries {
		if summaries[i].MatchID == matchID {
			return &summaries[i]
		}
	}
	return nil
}
