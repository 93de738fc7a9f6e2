package service

import (
	"context"

	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockSessionRepository mocks domain.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.ChatSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) Exists(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockSessionRepository) List(ctx context.Context) ([]domain.SessionSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SessionSummary), args.Error(1)
}

// MockMessageRepository mocks domain.MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.Message, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MockMessageRepository) DeleteBySession(ctx context.Context, sessionID string) (int64, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(int64), args.Error(1)
}

// MockFeedbackRepository mocks domain.FeedbackRepository
type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}

func (m *MockFeedbackRepository) List(ctx context.Context, filter domain.FeedbackFilter) ([]domain.Feedback, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) Stats(ctx context.Context) (*domain.FeedbackStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeedbackStats), args.Error(1)
}

// MockAnswerer mocks the Answerer interface
type MockAnswerer struct {
	mock.Mock
}

func (m *MockAnswerer) Answer(query string) string {
	args := m.Called(query)
	return args.String(0)
}

// MockNotifier records notification calls
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) FeedbackReceived(sessionID string, rating *int, comment string) {
	m.Called(sessionID, rating, comment)
}
