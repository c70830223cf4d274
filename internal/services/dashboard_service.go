package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/Smilemka07/QuickLeap/internal/models"
)

const (
	newMatchWindow = 7 * 24 * time.Hour
	unreadWindow   = 3 * 24 * time.Hour
)

type matchCounter interface {
	ListForUser(ctx context.Context, userID int64) ([]models.MatchWithParticipants, error)
	CountForUser(ctx context.Context, userID int64) (int64, error)
	CountCreatedBetween(ctx context.Context, userID int64, from, to time.Time) (int64, error)
}

type messageCounter interface {
	CountUnread(ctx context.Context, userID int64) (int64, error)
	CountUnreadBetween(ctx context.Context, userID int64, from, to time.Time) (int64, error)
}

type requestCounter interface {
	CountPending(ctx context.Context, receiverID int64) (int64, error)
}

type watchedLister interface {
	ListWatched(ctx context.Context, watcherID int64) ([]models.WatchedTutorial, error)
}

type DashboardService struct {
	matchRepo    matchCounter
	messageRepo  messageCounter
	requestRepo  requestCounter
	tutorialRepo watchedLister
}

var quickTips = []string{
	"Add your top 3 skills to get better matches.",
	"Profiles with photos get more replies.",
	"Be specific in your bio to build trust.",
	"Replying quickly improves match quality.",
}

var didYouKnow = []string{
	"Mentors who list skills get 2x more views.",
	"Short bios perform better than long ones.",
	"Consistent activity improves recommendations.",
}

func NewDashboardService(
	matchRepo matchCounter,
	messageRepo messageCounter,
	requestRepo requestCounter,
	tutorialRepo watchedLister,
) *DashboardService {
	return &DashboardService{
		matchRepo:    matchRepo,
		messageRepo:  messageRepo,
		requestRepo:  requestRepo,
		tutorialRepo: tutorialRepo,
	}
}

// Aggregate computes the user's activity signals anchored at now. Any store
// failure aborts the whole call; there is no partial result.
func (s *DashboardService) Aggregate(
	ctx context.Context,
	userID int64,
	now time.Time,
) (models.ActivitySignals, error) {
	var signals models.ActivitySignals
	var err error

	if signals.MatchCount, err = s.matchRepo.CountForUser(ctx, userID); err != nil {
		return models.ActivitySignals{}, err
	}
	if signals.PendingRequestCount, err = s.requestRepo.CountPending(ctx, userID); err != nil {
		return models.ActivitySignals{}, err
	}
	if signals.UnreadMessageCount, err = s.messageRepo.CountUnread(ctx, userID); err != nil {
		return models.ActivitySignals{}, err
	}

	signals.NewMatchesLast7d, err = s.matchRepo.CountCreatedBetween(ctx, userID, now.Add(-newMatchWindow), now)
	if err != nil {
		return models.ActivitySignals{}, err
	}
	signals.UnreadMessagesLast3d, err = s.messageRepo.CountUnreadBetween(ctx, userID, now.Add(-unreadWindow), now)
	if err != nil {
		return models.ActivitySignals{}, err
	}

	signals.Highlight = buildHighlight(signals.NewMatchesLast7d, signals.UnreadMessagesLast3d)
	return signals, nil
}

// BuildDashboard assembles the full dashboard payload: signals, the user's
// matches seen from their side, watched tutorials, and the rotating strings.
func (s *DashboardService) BuildDashboard(
	ctx context.Context,
	userID int64,
	now time.Time,
) (*models.Dashboard, error) {
	signals, err := s.Aggregate(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	matches, err := s.matchRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	watched, err := s.tutorialRepo.ListWatched(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.Dashboard{
		Signals:    signals,
		Matches:    resolveConversations(matches, userID),
		Watched:    watched,
		QuickTip:   quickTips[rand.Intn(len(quickTips))],
		DidYouKnow: didYouKnow[rand.Intn(len(didYouKnow))],
	}, nil
}

// buildHighlight picks exactly one highlight by strict priority: recent new
// matches win over recent unread messages; otherwise the caught-up message.
func buildHighlight(newMatchesLast7d, unreadMessagesLast3d int64) string {
	switch {
	case newMatchesLast7d > 0:
		return fmt.Sprintf("You have %d new matches", newMatchesLast7d)
	case unreadMessagesLast3d > 0:
		return fmt.Sprintf("You have %d unread messages", unreadMessagesLast3d)
	default:
		return "You're all caught up 🎉"
	}
}
