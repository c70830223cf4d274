package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/Smilemka07/QuickLeap/internal/models"
	"github.com/Smilemka07/QuickLeap/internal/repository"
)

var (
	testDBOnce sync.Once
	testDBPool *pgxpool.Pool
	testDBErr  error
)

func TestChatServicePicksHighestIDOnSentAtTie(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := newIntegrationChatService(pool)

	mentorID := createChatTestUser(t, ctx, pool, models.RoleMentor)
	menteeID := createChatTestUser(t, ctx, pool, models.RoleMentee)
	t.Cleanup(func() { cleanupChatTestUsers(t, ctx, pool, mentorID, menteeID) })

	matchID := createChatTestMatch(t, ctx, pool, mentorID, menteeID)

	sentAt := time.Date(2030, 2, 1, 10, 0, 0, 0, time.UTC)
	firstID := insertChatTestMessage(t, ctx, pool, matchID, menteeID, "earlier insert", sentAt)
	secondID := insertChatTestMessage(t, ctx, pool, matchID, menteeID, "later insert", sentAt)
	if secondID <= firstID {
		t.Fatalf("expected ids to grow with insertion order, got %d then %d", firstID, secondID)
	}

	list, err := service.ListConversations(ctx, mentorID, 0)
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}
	if len(list.Conversations) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(list.Conversations))
	}

	preview := list.Conversations[0].LastMessage
	if preview == nil {
		t.Fatalf("expected a preview for match %d", matchID)
	}
	if preview.ID != secondID || preview.Content != "later insert" {
		t.Fatalf("expected message %d to win the sent_at tie, got %d (%q)", secondID, preview.ID, preview.Content)
	}
	if !preview.SentAt.Equal(sentAt) {
		t.Fatalf("expected preview sent at %v, got %v", sentAt, preview.SentAt)
	}
}

func TestChatServiceKeepsSilentMatchesWithNilPreview(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := newIntegrationChatService(pool)

	viewerID := createChatTestUser(t, ctx, pool, models.RoleMentee)
	activeID := createChatTestUser(t, ctx, pool, models.RoleMentor)
	silentID := createChatTestUser(t, ctx, pool, models.RoleMentor)
	t.Cleanup(func() { cleanupChatTestUsers(t, ctx, pool, viewerID, activeID, silentID) })

	activeMatchID := createChatTestMatch(t, ctx, pool, activeID, viewerID)
	silentMatchID := createChatTestMatch(t, ctx, pool, silentID, viewerID)

	sentAt := time.Date(2030, 2, 2, 9, 0, 0, 0, time.UTC)
	insertChatTestMessage(t, ctx, pool, activeMatchID, activeID, "hello", sentAt)

	list, err := service.ListConversations(ctx, viewerID, 0)
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}
	if len(list.Conversations) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(list.Conversations))
	}

	if list.Conversations[0].MatchID != activeMatchID {
		t.Fatalf("expected active match %d first, got %d", activeMatchID, list.Conversations[0].MatchID)
	}
	if list.Conversations[1].MatchID != silentMatchID {
		t.Fatalf("expected silent match %d last, got %d", silentMatchID, list.Conversations[1].MatchID)
	}
	if list.Conversations[1].LastMessage != nil {
		t.Fatalf("expected nil preview for silent match, got %+v", list.Conversations[1].LastMessage)
	}
}

func TestChatServiceRejectsForeignSender(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := newIntegrationChatService(pool)

	mentorID := createChatTestUser(t, ctx, pool, models.RoleMentor)
	menteeID := createChatTestUser(t, ctx, pool, models.RoleMentee)
	outsiderID := createChatTestUser(t, ctx, pool, models.RoleMentee)
	t.Cleanup(func() { cleanupChatTestUsers(t, ctx, pool, mentorID, menteeID, outsiderID) })

	matchID := createChatTestMatch(t, ctx, pool, mentorID, menteeID)

	if _, err := service.SendMessage(ctx, outsiderID, matchID, "let me in"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-participant sender, got %v", err)
	}

	message, err := service.SendMessage(ctx, menteeID, matchID, "hi there")
	if err != nil {
		t.Fatalf("SendMessage as participant: %v", err)
	}
	if message.MatchID != matchID || message.SenderID != menteeID || message.IsRead {
		t.Fatalf("unexpected stored message: %+v", message)
	}
}

func integrationTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	testDBOnce.Do(func() {
		_ = godotenv.Load(".env")
		_ = godotenv.Load(filepath.Join("..", "..", ".env"))

		dbURL := os.Getenv("DB_URL")
		if dbURL == "" {
			testDBErr = fmt.Errorf("DB_URL is not set")
			return
		}

		cfg, err := pgxpool.ParseConfig(dbURL)
		if err != nil {
			testDBErr = err
			return
		}

		testDBPool, testDBErr = pgxpool.NewWithConfig(context.Background(), cfg)
		if testDBErr != nil {
			return
		}
		testDBErr = testDBPool.Ping(context.Background())
	})

	if testDBErr != nil {
		t.Skipf("skipping integration test: %v", testDBErr)
	}
	return testDBPool
}

func newIntegrationChatService(pool *pgxpool.Pool) *ChatService {
	return NewChatService(
		pool,
		repository.NewMatchRepository(pool),
		repository.NewMessageRepository(pool),
	)
}

func createChatTestUser(t *testing.T, ctx context.Context, pool *pgxpool.Pool, role string) int64 {
	t.Helper()

	userRepo := repository.NewUserRepository(pool)
	user := &models.User{
		UserName:     fmt.Sprintf("chat-test-%s", role),
		Email:        fmt.Sprintf("chat-test-%s-%d@example.com", role, time.Now().UnixNano()),
		PasswordHash: "test-hash",
		Role:         role,
		Skills:       []string{"testing"},
	}
	if err := userRepo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser(%s): %v", role, err)
	}

	return user.ID
}

func createChatTestMatch(t *testing.T, ctx context.Context, pool *pgxpool.Pool, mentorID, menteeID int64) int64 {
	t.Helper()

	match, err := repository.NewMatchRepository(pool).Create(ctx, mentorID, menteeID)
	if err != nil {
		t.Fatalf("Create match: %v", err)
	}
	return match.ID
}

func insertChatTestMessage(
	t *testing.T,
	ctx context.Context,
	pool *pgxpool.Pool,
	matchID, senderID int64,
	content string,
	sentAt time.Time,
) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(ctx, `
		INSERT INTO messages (match_id, sender_id, content, is_read, sent_at)
		VALUES ($1, $2, $3, FALSE, $4)
		RETURNING id
	`, matchID, senderID, content, sentAt).Scan(&id)
	if err != nil {
		t.Fatalf("insert message: %v", err)
	}
	return id
}

func cleanupChatTestUsers(t *testing.T, ctx context.Context, pool *pgxpool.Pool, userIDs ...int64) {
	t.Helper()

	if len(userIDs) == 0 {
		return
	}

	if _, err := pool.Exec(ctx, "DELETE FROM messages WHERE match_id IN (SELECT id FROM matches WHERE mentor_id = ANY($1) OR mentee_id = ANY($1))", userIDs); err != nil {
		t.Fatalf("cleanup messages: %v", err)
	}
	if _, err := pool.Exec(ctx, "DELETE FROM matches WHERE mentor_id = ANY($1) OR mentee_id = ANY($1)", userIDs); err != nil {
		t.Fatalf("cleanup matches: %v", err)
	}
	if _, err := pool.Exec(ctx, "DELETE FROM requests WHERE sender_id = ANY($1) OR receiver_id = ANY($1)", userIDs); err != nil {
		t.Fatalf("cleanup requests: %v", err)
	}
	if _, err := pool.Exec(ctx, "DELETE FROM users WHERE id = ANY($1)", userIDs); err != nil {
		t.Fatalf("cleanup users: %v", err)
	}
}
