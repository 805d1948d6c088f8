package ledger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/AbdulBotz/nagi-osint-bot/internal/domain"
	"github.com/AbdulBotz/nagi-osint-bot/internal/repository"
	"github.com/AbdulBotz/nagi-osint-bot/pkg/config"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Insert(ctx context.Context, user *domain.User) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockRepo) Credits(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo) SpendCredit(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) AddCredits(ctx context.Context, id int64, amount int64) error {
	return m.Called(ctx, id, amount).Error(0)
}

func (m *mockRepo) InsertReferral(ctx context.Context, edge *domain.ReferralEdge, bonus int64) error {
	return m.Called(ctx, edge, bonus).Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testService(repo *mockRepo) *Service {
	return NewService(repo, config.CreditsConfig{Start: 5, ReferralBonus: 1}, testLogger())
}

func TestCreateUser_SetsStartingCredits(t *testing.T) {
	repo := &mockRepo{}
	svc := testService(repo)

	repo.On("Insert", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.TelegramID == 7 && u.Credits == 5 && u.ReferredBy == nil
	})).Return(true, nil).Once()

	isNew, err := svc.CreateUser(context.Background(), 7, "alice", "Alice", nil)

	assert.NoError(t, err)
	assert.True(t, isNew)
	repo.AssertExpectations(t)
}

func TestCreateUser_ExistingUser(t *testing.T) {
	repo := &mockRepo{}
	svc := testService(repo)

	repo.On("Insert", mock.Anything, mock.Anything).Return(false, nil).Once()

	isNew, err := svc.CreateUser(context.Background(), 7, "alice", "Alice", nil)

	assert.NoError(t, err)
	assert.False(t, isNew)
}

func TestBalance_UnknownUserHasZero(t *testing.T) {
	repo := &mockRepo{}
	svc := testService(repo)

	repo.On("Credits", mock.Anything, int64(7)).Return(int64(0), repository.ErrUserNotFound).Once()

	balance, err := svc.Balance(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestSpend_InsufficientCredits(t *testing.T) {
	repo := &mockRepo{}
	svc := testService(repo)

	repo.On("SpendCredit", mock.Anything, int64(7)).Return(repository.ErrInsufficientCredits).Once()

	err := svc.Spend(context.Background(), 7)

	assert.ErrorIs(t, err, ErrInsufficientCredits)
}

func TestSpend_RepositoryError(t *testing.T) {
	repo := &mockRepo{}
	svc := testService(repo)

	boom := errors.New("connection reset")
	repo.On("SpendCredit", mock.Anything, int64(7)).Return(boom).Once()

	err := svc.Spend(context.Background(), 7)

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInsufficientCredits)
}

func TestAddReferral_CreditsConfiguredBonus(t *testing.T) {
	repo := &mockRepo{}
	svc := testService(repo)

	repo.On("InsertReferral", mock.Anything, mock.MatchedBy(func(e *domain.ReferralEdge) bool {
		return e.ReferrerID == 42 && e.ReferredID == 7
	}), int64(1)).Return(nil).Once()

	err := svc.AddReferral(context.Background(), 42, 7)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestRefund_AddsOneCredit(t *testing.T) {
	repo := &mockRepo{}
	svc := testService(repo)

	repo.On("AddCredits", mock.Anything, int64(7), int64(1)).Return(nil).Once()

	assert.NoError(t, svc.Refund(context.Background(), 7))
	repo.AssertExpectations(t)
}
