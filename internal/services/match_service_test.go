package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/Smilemka07/QuickLeap/internal/models"
)

type stubUserReader struct {
	users map[int64]*models.User
}

func (s *stubUserReader) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

type stubRequestStore struct {
	requests   map[int64]*models.MatchRequest
	pending    bool
	created    *models.MatchRequest
	lastStatus string
	lastID     int64
}

func (s *stubRequestStore) Create(_ context.Context, senderID, receiverID int64) (*models.MatchRequest, error) {
	s.created = &models.MatchRequest{ID: 1, SenderID: senderID, ReceiverID: receiverID, Status: models.RequestPending}
	return s.created, nil
}

func (s *stubRequestStore) GetByID(_ context.Context, id int64) (*models.MatchRequest, error) {
	request, ok := s.requests[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return request, nil
}

func (s *stubRequestStore) ListIncoming(_ context.Context, _ int64) ([]models.IncomingRequest, error) {
	return nil, nil
}

func (s *stubRequestStore) HasPendingBetween(_ context.Context, _, _ int64) (bool, error) {
	return s.pending, nil
}

func (s *stubRequestStore) UpdateStatus(_ context.Context, id int64, status string) error {
	s.lastID = id
	s.lastStatus = status
	return nil
}

type stubPairChecker struct {
	matched bool
}

func (s *stubPairChecker) ExistsForPair(_ context.Context, _, _ int64) (bool, error) {
	return s.matched, nil
}

func TestSendRequestRejectsSelf(t *testing.T) {
	service := NewMatchService(nil, &stubRequestStore{}, &stubPairChecker{}, &stubUserReader{})

	if _, err := service.SendRequest(context.Background(), 42, 42); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSendRequestRejectsUnknownReceiver(t *testing.T) {
	service := NewMatchService(nil, &stubRequestStore{}, &stubPairChecker{}, &stubUserReader{users: map[int64]*models.User{}})

	if _, err := service.SendRequest(context.Background(), 42, 7); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSendRequestRejectsExistingMatch(t *testing.T) {
	users := &stubUserReader{users: map[int64]*models.User{7: {ID: 7, Role: models.RoleMentor}}}
	service := NewMatchService(nil, &stubRequestStore{}, &stubPairChecker{matched: true}, users)

	if _, err := service.SendRequest(context.Background(), 42, 7); !errors.Is(err, ErrAlreadyMatched) {
		t.Fatalf("expected ErrAlreadyMatched, got %v", err)
	}
}

func TestSendRequestRejectsDuplicatePending(t *testing.T) {
	users := &stubUserReader{users: map[int64]*models.User{7: {ID: 7, Role: models.RoleMentor}}}
	service := NewMatchService(nil, &stubRequestStore{pending: true}, &stubPairChecker{}, users)

	if _, err := service.SendRequest(context.Background(), 42, 7); !errors.Is(err, ErrDuplicateRequest) {
		t.Fatalf("expected ErrDuplicateRequest, got %v", err)
	}
}

func TestSendRequestCreatesPendingRequest(t *testing.T) {
	users := &stubUserReader{users: map[int64]*models.User{7: {ID: 7, Role: models.RoleMentor}}}
	requests := &stubRequestStore{}
	service := NewMatchService(nil, requests, &stubPairChecker{}, users)

	request, err := service.SendRequest(context.Background(), 42, 7)
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if request.SenderID != 42 || request.ReceiverID != 7 || request.Status != models.RequestPending {
		t.Fatalf("unexpected request: %+v", request)
	}
}

func TestDeclineOnlyForReceiver(t *testing.T) {
	requests := &stubRequestStore{requests: map[int64]*models.MatchRequest{
		5: {ID: 5, SenderID: 7, ReceiverID: 42, Status: models.RequestPending},
	}}
	service := NewMatchService(nil, requests, &stubPairChecker{}, &stubUserReader{})

	if err := service.Decline(context.Background(), 99, 5); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-receiver, got %v", err)
	}

	if err := service.Decline(context.Background(), 42, 5); err != nil {
		t.Fatalf("Decline: %v", err)
	}
	if requests.lastID != 5 || requests.lastStatus != models.RequestDeclined {
		t.Fatalf("expected request 5 declined, got %d %q", requests.lastID, requests.lastStatus)
	}
}

func TestDeclineRejectsHandledRequest(t *testing.T) {
	requests := &stubRequestStore{requests: map[int64]*models.MatchRequest{
		5: {ID: 5, SenderID: 7, ReceiverID: 42, Status: models.RequestAccepted},
	}}
	service := NewMatchService(nil, requests, &stubPairChecker{}, &stubUserReader{})

	if err := service.Decline(context.Background(), 42, 5); !errors.Is(err, ErrRequestClosed) {
		t.Fatalf("expected ErrRequestClosed, got %v", err)
	}
}
