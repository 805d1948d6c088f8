// Package repository provides SQL persistence for users and referral edges.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AbdulBotz/nagi-osint-bot/internal/domain"
)

var (
	// ErrInsufficientCredits indicates a spend found no positive balance to
	// decrement.
	ErrInsufficientCredits = errors.New("insufficient credits")
	// ErrUserNotFound indicates no record exists for the telegram id.
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository defines persistence operations for users and referrals.
type UserRepository interface {
	// Insert creates the user record if absent. It reports whether a new
	// record was created; an existing record is left untouched.
	Insert(ctx context.Context, user *domain.User) (bool, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Credits(ctx context.Context, id int64) (int64, error)
	// SpendCredit atomically decrements the balance when it is positive.
	// Returns ErrInsufficientCredits when no row qualified, so two racing
	// spends can never drive the balance negative.
	SpendCredit(ctx context.Context, id int64) error
	AddCredits(ctx context.Context, id int64, amount int64) error
	// InsertReferral records the edge and credits the referrer's bonus in one
	// transaction. Callers must invoke it at most once per referred user.
	InsertReferral(ctx context.Context, edge *domain.ReferralEdge, bonus int64) error
}

type userRepository struct {
	db  *sql.DB
	log *slog.Logger
}

// NewUserRepository creates a new SQL-backed user repository.
func NewUserRepository(db *sql.DB, log *slog.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log,
	}
}

func (r *userRepository) Insert(ctx context.Context, user *domain.User) (bool, error) {
	const query = `
		INSERT INTO users (telegram_id, username, first_name, credits, referred_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (telegram_id) DO NOTHING
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		user.TelegramID,
		user.Username,
		user.FirstName,
		user.Credits,
		user.ReferredBy,
		user.CreatedAt,
	)
	if err != nil {
		r.logError("insert user", user.TelegramID, err)
		return false, fmt.Errorf("insert user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert user rows affected: %w", err)
	}

	return rows > 0, nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `
		SELECT telegram_id, username, first_name, credits, referred_by, created_at
		FROM users
		WHERE telegram_id = $1
	`

	row := r.db.QueryRowContext(ctx, query, id)

	var user domain.User
	if err := row.Scan(
		&user.TelegramID,
		&user.Username,
		&user.FirstName,
		&user.Credits,
		&user.ReferredBy,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}

		r.logError("select user", id, err)
		return nil, fmt.Errorf("select user by telegram id: %w", err)
	}

	return &user, nil
}

func (r *userRepository) Credits(ctx context.Context, id int64) (int64, error) {
	const query = `SELECT credits FROM users WHERE telegram_id = $1`

	var credits int64
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&credits); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUserNotFound
		}

		r.logError("select credits", id, err)
		return 0, fmt.Errorf("select credits: %w", err)
	}

	return credits, nil
}

func (r *userRepository) SpendCredit(ctx context.Context, id int64) error {
	const query = `
		UPDATE users
		SET credits = credits - 1
		WHERE telegram_id = $1 AND credits > 0
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logError("spend credit", id, err)
		return fmt.Errorf("spend credit: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("spend credit rows affected: %w", err)
	}

	if rows == 0 {
		return ErrInsufficientCredits
	}

	return nil
}

func (r *userRepository) AddCredits(ctx context.Context, id int64, amount int64) error {
	const query = `UPDATE users SET credits = credits + $2 WHERE telegram_id = $1`

	if _, err := r.db.ExecContext(ctx, query, id, amount); err != nil {
		r.logError("add credits", id, err)
		return fmt.Errorf("add credits: %w", err)
	}

	return nil
}

func (r *userRepository) InsertReferral(ctx context.Context, edge *domain.ReferralEdge, bonus int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin referral transaction: %w", err)
	}

	const insertEdge = `
		INSERT INTO referrals (referrer_id, referred_id, created_at)
		VALUES ($1, $2, $3)
	`
	if _, err := tx.ExecContext(ctx, insertEdge, edge.ReferrerID, edge.ReferredID, edge.CreatedAt); err != nil {
		rollback(tx, r.log)
		r.logError("insert referral edge", edge.ReferredID, err)
		return fmt.Errorf("insert referral edge: %w", err)
	}

	const creditBonus = `UPDATE users SET credits = credits + $2 WHERE telegram_id = $1`
	if _, err := tx.ExecContext(ctx, creditBonus, edge.ReferrerID, bonus); err != nil {
		rollback(tx, r.log)
		r.logError("credit referral bonus", edge.ReferrerID, err)
		return fmt.Errorf("credit referral bonus: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit referral transaction: %w", err)
	}

	return nil
}

func rollback(tx *sql.Tx, log *slog.Logger) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) && log != nil {
		log.Error("transaction rollback failed", slog.Any("error", err))
	}
}

func (r *userRepository) logError(operation string, telegramID int64, err error) {
	if r.log == nil || err == nil {
		return
	}

	r.log.Error("user repository operation failed",
		slog.String("operation", operation),
		slog.Int64("telegram_id", telegramID),
		slog.Any("error", err),
	)
}
