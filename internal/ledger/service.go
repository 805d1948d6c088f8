// Package ledger implements the credit ledger: per-user balances and
// referral edges.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/AbdulBotz/nagi-osint-bot/internal/domain"
	"github.com/AbdulBotz/nagi-osint-bot/internal/repository"
	"github.com/AbdulBotz/nagi-osint-bot/pkg/config"
	"github.com/AbdulBotz/nagi-osint-bot/pkg/metrics"
)

// ErrInsufficientCredits is returned by Spend when the balance is not
// positive.
var ErrInsufficientCredits = repository.ErrInsufficientCredits

// Service provides the credit ledger operations on top of the repository.
type Service struct {
	repo repository.UserRepository
	cfg  config.CreditsConfig
	log  *slog.Logger
}

// NewService constructs a ledger Service.
func NewService(repo repository.UserRepository, cfg config.CreditsConfig, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}

	return &Service{repo: repo, cfg: cfg, log: log}
}

// CreateUser inserts a new user with the configured starting balance when
// absent. Repeated calls for an existing id report isNew=false and leave the
// balance untouched.
func (s *Service) CreateUser(ctx context.Context, id int64, username, firstName string, referredBy *int64) (bool, error) {
	user := &domain.User{
		TelegramID: id,
		Username:   username,
		FirstName:  firstName,
		Credits:    s.cfg.Start,
		ReferredBy: referredBy,
		CreatedAt:  time.Now().UTC(),
	}

	isNew, err := s.repo.Insert(ctx, user)
	if err != nil {
		return false, fmt.Errorf("create user: %w", err)
	}

	if isNew {
		s.log.Info("created new user",
			slog.Int64("telegram_id", id),
			slog.Int64("starting_credits", s.cfg.Start),
		)
	}

	return isNew, nil
}

// Balance returns the current credit balance. An unknown user has no credits.
func (s *Service) Balance(ctx context.Context, id int64) (int64, error) {
	credits, err := s.repo.Credits(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("get balance: %w", err)
	}

	return credits, nil
}

// Spend consumes one credit. The decrement is atomic: when the balance is not
// positive it fails with ErrInsufficientCredits instead of going negative.
func (s *Service) Spend(ctx context.Context, id int64) error {
	if err := s.repo.SpendCredit(ctx, id); err != nil {
		if errors.Is(err, repository.ErrInsufficientCredits) {
			return ErrInsufficientCredits
		}
		return fmt.Errorf("spend credit: %w", err)
	}

	metrics.RecordCreditSpent()
	return nil
}

// Refund returns one credit to the user. Only invoked when the
// refund-on-failure policy is enabled.
func (s *Service) Refund(ctx context.Context, id int64) error {
	if err := s.repo.AddCredits(ctx, id, 1); err != nil {
		return fmt.Errorf("refund credit: %w", err)
	}

	return nil
}

// AddReferral records the referral edge and credits the configured bonus to
// the referrer. Callers must guard this with CreateUser's isNew flag: the
// ledger does not re-check, per contract.
func (s *Service) AddReferral(ctx context.Context, referrerID, referredID int64) error {
	edge := &domain.ReferralEdge{
		ReferrerID: referrerID,
		ReferredID: referredID,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.InsertReferral(ctx, edge, s.cfg.ReferralBonus); err != nil {
		return fmt.Errorf("add referral: %w", err)
	}

	metrics.RecordReferral()
	s.log.Info("referral recorded",
		slog.Int64("referrer_id", referrerID),
		slog.Int64("referred_id", referredID),
		slog.Int64("bonus", s.cfg.ReferralBonus),
	)

	return nil
}
