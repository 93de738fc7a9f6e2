package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/config"
	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	cfg := config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "test.db")}
	db, err := NewDB(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, InitSchema(db))
	return db
}

func seedSession(t *testing.T, repo *SessionRepository, id string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &domain.ChatSession{
		SessionID: id,
		CreatedAt: createdAt,
	}))
}

func TestInitSchemaIdempotent(t *testing.T) {
	db := newTestDB(t)

	// Running the migrations again against an up-to-date database is a no-op.
	require.NoError(t, InitSchema(db))
}

func TestSessionRepositoryCreateAndExists(t *testing.T) {
	db := newTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	seedSession(t, repo, "s1", time.Now().UTC())

	exists, err := repo.Exists(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSessionRepositoryDuplicate(t *testing.T) {
	db := newTestDB(t)
	repo := NewSessionRepository(db)

	now := time.Now().UTC()
	seedSession(t, repo, "s1", now)

	err := repo.Create(context.Background(), &domain.ChatSession{SessionID: "s1", CreatedAt: now})
	assert.ErrorIs(t, err, domain.ErrDuplicateSession)
}

func TestSessionRepositoryDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	sessions := NewSessionRepository(db)
	messages := NewMessageRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	seedSession(t, sessions, "s1", now)
	for i := 0; i < 3; i++ {
		require.NoError(t, messages.Create(ctx, &domain.Message{
			SessionID: "s1",
			Body:      "hello",
			Sender:    domain.SenderUser,
			Timestamp: now.Add(time.Duration(i) * time.Millisecond),
		}))
	}

	require.NoError(t, sessions.Delete(ctx, "s1"))

	exists, err := sessions.Exists(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, exists)

	left, err := messages.ListBySession(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestSessionRepositoryDeleteNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewSessionRepository(db)

	err := repo.Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionRepositoryList(t *testing.T) {
	db := newTestDB(t)
	sessions := NewSessionRepository(db)
	messages := NewMessageRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	seedSession(t, sessions, "older", base)
	seedSession(t, sessions, "newer", base.Add(time.Hour))

	require.NoError(t, messages.Create(ctx, &domain.Message{
		SessionID: "older", Body: "hi", Sender: domain.SenderUser, Timestamp: base,
	}))
	require.NoError(t, messages.Create(ctx, &domain.Message{
		SessionID: "older", Body: "hello", Sender: domain.SenderBot, Timestamp: base.Add(time.Second),
	}))

	summaries, err := sessions.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// newest first, message counts from the join
	assert.Equal(t, "newer", summaries[0].SessionID)
	assert.Equal(t, 0, summaries[0].MessageCount)
	assert.Equal(t, "older", summaries[1].SessionID)
	assert.Equal(t, 2, summaries[1].MessageCount)
}

func TestMessageRepositoryRoundTrip(t *testing.T) {
	db := newTestDB(t)
	sessions := NewSessionRepository(db)
	messages := NewMessageRepository(db)
	ctx := context.Background()

	now := time.Date(2026, 8, 28, 10, 0, 0, 123456000, time.UTC)
	seedSession(t, sessions, "s1", now)

	user := &domain.Message{SessionID: "s1", Body: "hi", Sender: domain.SenderUser, Timestamp: now}
	bot := &domain.Message{SessionID: "s1", Body: "hello", Sender: domain.SenderBot, Timestamp: now.Add(time.Millisecond)}
	require.NoError(t, messages.Create(ctx, user))
	require.NoError(t, messages.Create(ctx, bot))
	assert.Positive(t, user.ID)
	assert.Greater(t, bot.ID, user.ID)

	got, err := messages.ListBySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "hi", got[0].Body)
	assert.Equal(t, domain.SenderUser, got[0].Sender)
	assert.True(t, got[0].Timestamp.Equal(now), "sub-second precision survives the round trip")
	assert.Equal(t, domain.SenderBot, got[1].Sender)
}

func TestMessageRepositoryOrderingWithinSameSecond(t *testing.T) {
	db := newTestDB(t)
	sessions := NewSessionRepository(db)
	messages := NewMessageRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	seedSession(t, sessions, "s1", base)

	// fractional parts of differing width: .1s must still sort before .15s
	user := &domain.Message{SessionID: "s1", Body: "question", Sender: domain.SenderUser, Timestamp: base.Add(100 * time.Millisecond)}
	bot := &domain.Message{SessionID: "s1", Body: "answer", Sender: domain.SenderBot, Timestamp: base.Add(150 * time.Millisecond)}
	require.NoError(t, messages.Create(ctx, user))
	require.NoError(t, messages.Create(ctx, bot))

	got, err := messages.ListBySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.SenderUser, got[0].Sender)
	assert.Equal(t, domain.SenderBot, got[1].Sender)
}

func TestFormatTimeFixedWidth(t *testing.T) {
	a := formatTime(time.Date(2026, 8, 28, 10, 0, 0, 100000000, time.UTC))
	b := formatTime(time.Date(2026, 8, 28, 10, 0, 0, 150000000, time.UTC))

	// text order must agree with chronological order
	assert.Len(t, b, len(a))
	assert.Less(t, a, b)
}

func TestParseTime(t *testing.T) {
	fixed := time.Date(2026, 8, 28, 10, 0, 0, 150000000, time.UTC)
	assert.True(t, parseTime(formatTime(fixed)).Equal(fixed))

	legacy := parseTime("2026-08-28 10:00:00")
	assert.Equal(t, 2026, legacy.Year())

	assert.True(t, parseTime("garbage").IsZero())
}

func TestMessageRepositoryDeleteBySession(t *testing.T) {
	db := newTestDB(t)
	sessions := NewSessionRepository(db)
	messages := NewMessageRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	seedSession(t, sessions, "s1", now)
	for i := 0; i < 4; i++ {
		require.NoError(t, messages.Create(ctx, &domain.Message{
			SessionID: "s1", Body: "msg", Sender: domain.SenderUser, Timestamp: now,
		}))
	}

	deleted, err := messages.DeleteBySession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)

	deleted, err = messages.DeleteBySession(ctx, "s1")
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestFeedbackRepositoryCreateAndList(t *testing.T) {
	db := newTestDB(t)
	repo := NewFeedbackRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	five := 5
	three := 3

	first := &domain.Feedback{SessionID: "s1", Rating: &five, Comment: "great", CreatedAt: base}
	second := &domain.Feedback{SessionID: "s2", Rating: &three, Comment: "", CreatedAt: base.Add(24 * time.Hour)}
	third := &domain.Feedback{SessionID: "orphan", Rating: nil, Comment: "no rating", CreatedAt: base.Add(25 * time.Hour)}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, third))
	assert.Positive(t, first.ID)

	all, err := repo.List(ctx, domain.FeedbackFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// newest first
	assert.Equal(t, "orphan", all[0].SessionID)
	assert.Nil(t, all[0].Rating)
	assert.Equal(t, "s1", all[2].SessionID)
	require.NotNil(t, all[2].Rating)
	assert.Equal(t, 5, *all[2].Rating)
}

func TestFeedbackRepositoryFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewFeedbackRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	five := 5
	three := 3
	require.NoError(t, repo.Create(ctx, &domain.Feedback{SessionID: "s1", Rating: &five, CreatedAt: base}))
	require.NoError(t, repo.Create(ctx, &domain.Feedback{SessionID: "s2", Rating: &three, CreatedAt: base.Add(24 * time.Hour)}))
	require.NoError(t, repo.Create(ctx, &domain.Feedback{SessionID: "s3", Rating: &five, CreatedAt: base.Add(24 * time.Hour)}))

	byRating, err := repo.List(ctx, domain.FeedbackFilter{Rating: 5})
	require.NoError(t, err)
	require.Len(t, byRating, 2)

	byDate, err := repo.List(ctx, domain.FeedbackFilter{Date: "2026-08-28"})
	require.NoError(t, err)
	require.Len(t, byDate, 2)

	both, err := repo.List(ctx, domain.FeedbackFilter{Rating: 5, Date: "2026-08-28"})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "s3", both[0].SessionID)

	none, err := repo.List(ctx, domain.FeedbackFilter{Rating: 1})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFeedbackRepositoryStats(t *testing.T) {
	db := newTestDB(t)
	repo := NewFeedbackRepository(db)
	ctx := context.Background()

	t.Run("empty table", func(t *testing.T) {
		stats, err := repo.Stats(ctx)
		require.NoError(t, err)
		assert.Zero(t, stats.TotalCount)
		assert.Zero(t, stats.AverageRating)
		assert.Zero(t, stats.CommentCount)
		assert.Empty(t, stats.RatingDistribution)
	})

	now := time.Now().UTC()
	five := 5
	four := 4
	require.NoError(t, repo.Create(ctx, &domain.Feedback{SessionID: "s1", Rating: &five, Comment: "great", CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, &domain.Feedback{SessionID: "s2", Rating: &four, Comment: "", CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, &domain.Feedback{SessionID: "s3", Rating: &four, Comment: "ok", CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, &domain.Feedback{SessionID: "s4", Rating: nil, Comment: "unrated", CreatedAt: now}))

	t.Run("populated table", func(t *testing.T) {
		stats, err := repo.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4, stats.TotalCount)
		// nil ratings are excluded from the average: (5+4+4)/3 rounded to 2 places
		assert.Equal(t, 4.33, stats.AverageRating)
		assert.Equal(t, 3, stats.CommentCount)
		assert.Equal(t, map[int]int{4: 2, 5: 1}, stats.RatingDistribution)
	})
}
