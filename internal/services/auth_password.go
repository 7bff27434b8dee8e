package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"digiroots/internal/apperr"
	"digiroots/internal/logger"
	"digiroots/internal/notify"
	"digiroots/internal/repository"
	"digiroots/internal/utils/helpers"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultResetTTL = 15 * time.Minute
	resetTokenBytes = 32

	msgResetEmailFailed = "Email could not be sent. Please try again later."
	msgInvalidReset     = "Invalid or expired reset token. Please request a new password reset."
)

type PasswordService struct {
	repo          AccountRepo
	notifier      notify.Notifier
	resetLinkBase string // e.g. https://digiroots.in/reset-password/
	tokenTTL      time.Duration
	now           func() time.Time
}

func NewPasswordService(repo AccountRepo, notifier notify.Notifier, resetLinkBase string, tokenTTL time.Duration) *PasswordService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultResetTTL
	}
	return &PasswordService{
		repo:          repo,
		notifier:      notifier,
		resetLinkBase: resetLinkBase,
		tokenTTL:      tokenTTL,
		now:           time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (s *PasswordService) WithClock(now func() time.Time) *PasswordService {
	s.now = now
	return s
}

// HashResetToken is the deterministic digest stored in place of the plaintext token.
func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func newResetToken() (string, error) {
	raw := make([]byte, resetTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// RequestReset stores a fresh token hash for the account and mails the plaintext link.
// An unknown email returns nil without touching the store. A failed send rolls the
// token back and is reported.
func (s *PasswordService) RequestReset(ctx context.Context, email string) error {
	log := logger.WithCtx(ctx)
	email = NormalizeEmail(email)
	if email == "" {
		return apperr.Validation("Please provide an email address")
	}

	account, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		log.Info("Reset requested for unknown email", zap.String("email", email))
		return nil
	}
	if err != nil {
		return apperr.Dependency(msgServerError, err)
	}

	token, err := newResetToken()
	if err != nil {
		log.Error("Reset token generation failed", zap.Error(err))
		return apperr.Dependency(msgServerError, err)
	}
	tokenHash := HashResetToken(token)
	expires := s.now().Add(s.tokenTTL)

	if err := s.repo.SetResetToken(ctx, account.ID, tokenHash, expires); err != nil {
		return apperr.Dependency(msgServerError, err)
	}

	link := s.resetLinkBase + token
	msg := notify.Message{
		To:      account.Email,
		Subject: "Reset your DigiRoots password",
		Text:    helpers.BuildPasswordResetText(link, s.tokenTTL),
		HTML:    helpers.BuildPasswordResetHTML(link, s.tokenTTL),
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		log.Error("Reset email failed, rolling back token",
			zap.String("account_id", account.ID), zap.Error(err))
		if cerr := s.repo.ClearResetToken(context.WithoutCancel(ctx), account.ID, tokenHash); cerr != nil {
			log.Error("Reset token rollback failed", zap.String("account_id", account.ID), zap.Error(cerr))
		}
		return apperr.Dependency(msgResetEmailFailed, err)
	}

	log.Info("Reset email sent",
		zap.String("account_id", account.ID),
		zap.Time("expires_at", expires),
	)
	return nil
}

// ResetPassword exchanges a plaintext token for a password change. Wrong and expired
// tokens are indistinguishable to the caller. The token is single-use.
func (s *PasswordService) ResetPassword(ctx context.Context, token, newPassword string) error {
	log := logger.WithCtx(ctx)

	if newPassword == "" {
		return apperr.Validation("Please provide a new password")
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return apperr.Validation(msgInvalidReset)
	}

	tokenHash := HashResetToken(token)
	now := s.now()

	account, err := s.repo.FindByResetToken(ctx, tokenHash, now)
	if errors.Is(err, repository.ErrNotFound) {
		log.Warn("Reset attempted with invalid or expired token")
		return apperr.Validation(msgInvalidReset)
	}
	if err != nil {
		return apperr.Dependency(msgServerError, err)
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	err = s.repo.ResetPassword(ctx, account.ID, tokenHash, hash, now)
	if errors.Is(err, repository.ErrNotFound) {
		log.Warn("Reset token consumed concurrently", zap.String("account_id", account.ID))
		return apperr.Validation(msgInvalidReset)
	}
	if err != nil {
		return apperr.Dependency(msgServerError, err)
	}

	log.Info("Password reset", zap.String("account_id", account.ID))
	return nil
}
