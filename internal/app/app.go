package app

import (
	"context"
	"digiroots/internal/config"
	"digiroots/internal/db"
	"digiroots/internal/handlers"
	"digiroots/internal/logger"
	"digiroots/internal/notify"
	"digiroots/internal/repository"
	"digiroots/internal/repository/memstore"
	"digiroots/internal/routes"
	"digiroots/internal/services"
	"digiroots/internal/utils"
	"fmt"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type stores struct {
	accounts services.AccountRepo
	leads    services.LeadRepo
	close    func()
}

// InitApp wires storage, mail, services and routes. The returned cleanup
// releases the connection pool.
func InitApp(ctx context.Context, cfg *config.Config) (*mux.Router, func(), error) {
	st, err := openStores(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	notifier, err := notify.New(cfg)
	if err != nil {
		st.close()
		return nil, nil, fmt.Errorf("mail provider: %w", err)
	}
	logger.Log.Info("Mail provider ready", zap.String("provider", cfg.MailProvider))

	router := NewRouter(cfg, st.accounts, st.leads, notifier)
	return router, st.close, nil
}

// NewRouter builds the HTTP surface over already constructed dependencies.
func NewRouter(cfg *config.Config, accounts services.AccountRepo, leads services.LeadRepo, notifier notify.Notifier) *mux.Router {
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.TokenDuration())

	authService := services.NewAuthService(accounts, tokens)
	passwordService := services.NewPasswordService(accounts, notifier, cfg.ResetLinkBase(), cfg.PasswordResetTTL())
	leadService := services.NewLeadService(leads, notifier, cfg.AdminEmail)

	router := mux.NewRouter()
	routes.InitRoutes(router, tokens,
		handlers.NewAuthHandler(authService),
		handlers.NewPasswordHandler(passwordService),
		handlers.NewLeadHandler(leadService),
		handlers.NewAdminLogsHandler(logger.Dir),
	)
	return router
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.Storage == "memory" {
		logger.Log.Warn("Using in-memory storage, data is lost on restart")
		return &stores{
			accounts: memstore.NewAccountStore(),
			leads:    memstore.NewLeadStore(),
			close:    func() {},
		}, nil
	}

	pool, err := db.NewPostgresConnection(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	logger.Log.Info("Connected to Postgres", zap.String("dsn", cfg.GetDSNSafe()))

	return &stores{
		accounts: repository.NewAccountRepository(pool),
		leads:    repository.NewLeadRepository(pool),
		close:    pool.Close,
	}, nil
}
