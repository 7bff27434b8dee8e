package services

import (
	"context"
	"digiroots/internal/apperr"
	"digiroots/internal/logger"
	"digiroots/internal/models"
	"digiroots/internal/repository"
	"digiroots/internal/utils"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type AccountRepo interface {
	Create(ctx context.Context, account *models.Account) error
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	SetResetToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, id, tokenHash string) error
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.Account, error)
	ResetPassword(ctx context.Context, id, tokenHash, passwordHash string, now time.Time) error
}

type TokenIssuer interface {
	Issue(accountID, role string) (string, error)
}

type AuthService struct {
	repo   AccountRepo
	tokens TokenIssuer
}

func NewAuthService(repo AccountRepo, tokens TokenIssuer) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Signup validates and stores a new account. It does not log the user in.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*models.Account, error) {
	log := logger.WithCtx(ctx)
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	if name == "" || email == "" || password == "" {
		return nil, apperr.Validation("Please provide name, email, and password")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if !ValidEmail(email) {
		return nil, apperr.Validation("Please enter a valid email")
	}

	log.Info("Signup (service)", zap.String("email", email))

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		log.Warn("Signup rejected, email taken (service)", zap.String("email", email))
		return nil, apperr.Conflict(msgDuplicateEmail)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Dependency(msgServerError, err)
	}

	hash, err := hashPassword(password)
	if err != nil {
		log.Error("Password hashing failed (service)", zap.Error(err))
		return nil, err
	}

	account := &models.Account{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		// lost a race against a concurrent signup with the same email
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperr.Conflict(msgDuplicateEmail)
		}
		return nil, apperr.Dependency(msgServerError, err)
	}

	log.Info("Account created (service)", zap.String("account_id", account.ID))
	return account, nil
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// equalizeTiming burns one bcrypt comparison so an unknown email costs as much as a wrong password.
func equalizeTiming(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = utils.HashPassword("digiroots-timing-equalizer")
	})
	utils.CheckPasswordHash(password, dummyHash)
}

// Login returns a session token. Unknown email and wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.Account, error) {
	log := logger.WithCtx(ctx)
	email = NormalizeEmail(email)

	if email == "" || password == "" {
		return "", nil, apperr.Validation("Please provide email and password")
	}

	log.Info("Login attempt (service)", zap.String("email", email))

	account, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		equalizeTiming(password)
		log.Warn("Login failed: unknown email (service)", zap.String("email", email))
		return "", nil, apperr.Auth(msgBadCredentials)
	}
	if err != nil {
		return "", nil, apperr.Dependency(msgServerError, err)
	}

	if !utils.CheckPasswordHash(password, account.PasswordHash) {
		log.Warn("Login failed: wrong password (service)", zap.String("account_id", account.ID))
		return "", nil, apperr.Auth(msgBadCredentials)
	}

	token, err := s.tokens.Issue(account.ID, account.Role)
	if err != nil {
		log.Error("Token signing failed (service)", zap.Error(err))
		return "", nil, apperr.Dependency(msgServerError, err)
	}

	log.Info("Login succeeded (service)", zap.String("account_id", account.ID))
	return token, account, nil
}

func (s *AuthService) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	account, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		logger.WithCtx(ctx).Warn("Account from token no longer exists (service)", zap.String("account_id", id))
		return nil, apperr.NotFound(msgAccountNotFound)
	}
	if err != nil {
		return nil, apperr.Dependency(msgServerError, err)
	}
	return account, nil
}
