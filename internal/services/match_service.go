package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Smilemka07/QuickLeap/internal/models"
	"github.com/Smilemka07/QuickLeap/internal/repository"
)

type userReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type requestStore interface {
	Create(ctx context.Context, senderID, receiverID int64) (*models.MatchRequest, error)
	GetByID(ctx context.Context, id int64) (*models.MatchRequest, error)
	ListIncoming(ctx context.Context, receiverID int64) ([]models.IncomingRequest, error)
	HasPendingBetween(ctx context.Context, a, b int64) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type matchPairChecker interface {
	ExistsForPair(ctx context.Context, a, b int64) (bool, error)
}

// MatchService owns the request lifecycle: sending a request, and the
// receiver's accept/decline decision. Accepting creates the match.
type MatchService struct {
	db          *pgxpool.Pool
	requestRepo requestStore
	matchRepo   matchPairChecker
	userRepo    userReader
}

func NewMatchService(
	db *pgxpool.Pool,
	requestRepo requestStore,
	matchRepo matchPairChecker,
	userRepo userReader,
) *MatchService {
	return &MatchService{
		db:          db,
		requestRepo: requestRepo,
		matchRepo:   matchRepo,
		userRepo:    userRepo,
	}
}

func (s *MatchService) SendRequest(
	ctx context.Context,
	senderID int64,
	receiverID int64,
) (*models.MatchRequest, error) {
	if receiverID <= 0 || receiverID == senderID {
		return nil, ErrInvalidInput
	}

	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	matched, err := s.matchRepo.ExistsForPair(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if matched {
		return nil, ErrAlreadyMatched
	}

	pending, err := s.requestRepo.HasPendingBetween(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrDuplicateRequest
	}

	return s.requestRepo.Create(ctx, senderID, receiverID)
}

func (s *MatchService) ListIncoming(
	ctx context.Context,
	receiverID int64,
) ([]models.IncomingRequest, error) {
	return s.requestRepo.ListIncoming(ctx, receiverID)
}

// Accept closes the request and creates the match in one transaction. Only
// the designated receiver may accept, and only while the request is pending.
func (s *MatchService) Accept(
	ctx context.Context,
	receiverID int64,
	requestID int64,
) (*models.Match, error) {
	request, err := s.loadPendingForReceiver(ctx, receiverID, requestID)
	if err != nil {
		return nil, err
	}

	sender, err := s.userRepo.GetByID(ctx, request.SenderID)
	if err != nil {
		return nil, err
	}
	receiver, err := s.userRepo.GetByID(ctx, request.ReceiverID)
	if err != nil {
		return nil, err
	}

	mentorID, menteeID := request.SenderID, request.ReceiverID
	if sender.Role == models.RoleMentee && receiver.Role == models.RoleMentor {
		mentorID, menteeID = request.ReceiverID, request.SenderID
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txRequestRepo := repository.NewRequestRepository(tx)
	txMatchRepo := repository.NewMatchRepository(tx)

	if err := txRequestRepo.UpdateStatus(ctx, request.ID, models.RequestAccepted); err != nil {
		return nil, err
	}

	match, err := txMatchRepo.Create(ctx, mentorID, menteeID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return match, nil
}

func (s *MatchService) Decline(ctx context.Context, receiverID int64, requestID int64) error {
	request, err := s.loadPendingForReceiver(ctx, receiverID, requestID)
	if err != nil {
		return err
	}

	return s.requestRepo.UpdateStatus(ctx, request.ID, models.RequestDeclined)
}

func (s *MatchService) loadPendingForReceiver(
	ctx context.Context,
	receiverID int64,
	requestID int64,
) (*models.MatchRequest, error) {
	if requestID <= 0 {
		return nil, ErrInvalidInput
	}

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.ReceiverID != receiverID {
		return nil, ErrForbidden
	}
	if request.Status != models.RequestPending {
		return nil, ErrRequestClosed
	}

	return request, nil
}
