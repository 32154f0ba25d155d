// Package edushield собирает приложение платформы учебного контента:
// хранилище, миграции, сессии, аудит, бизнес-логику и HTTP-сервер.
package edushield

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/edushield/edushield/internal/audit"
	"github.com/edushield/edushield/internal/config"
	"github.com/edushield/edushield/internal/lib/sl"
	"github.com/edushield/edushield/internal/lib/token"
	"github.com/edushield/edushield/internal/migrations"
	"github.com/edushield/edushield/internal/services/access"
	authservice "github.com/edushield/edushield/internal/services/auth"
	contentservice "github.com/edushield/edushield/internal/services/content"
	grantservice "github.com/edushield/edushield/internal/services/grants"
	usersservice "github.com/edushield/edushield/internal/services/users"
	"github.com/edushield/edushield/internal/session"
	"github.com/edushield/edushield/internal/storage/repository"
)

// App агрегирует HTTP-сервер и ресурсы, требующие закрытия при остановке.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage
	sessions *session.Store
}

// New инициализирует все зависимости приложения и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	sessions, err := session.InitServer(ctx, cfg.RedisConnection, cfg.SessionTTL)
	if err != nil {
		return nil, err
	}

	// Пустой URL брокера оставляет аудит выключенным: nil-издатель
	// безопасен для всех вызовов Publish.
	var auditPub *audit.Publisher
	if cfg.RabbitMQ.URL != "" {
		conn, err := audit.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.ConnectRetries, cfg.RabbitMQ.ConnectDelay)
		if err != nil {
			return nil, err
		}
		auditPub, err = audit.New(conn, logger)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Warn("audit publisher disabled: rabbitmq url is empty")
	}

	tokenMaker := token.NewMaker(cfg.DownloadToken.TokenSecretKey, cfg.DownloadToken.TokenTTL)
	evaluator := access.NewEvaluator(db)

	authSvc := authservice.NewAuthService(db, sessions)
	contentSvc := contentservice.NewContentService(db, db, evaluator, tokenMaker)
	grantSvc := grantservice.NewGrantService(db, auditPub)
	usersSvc := usersservice.NewUsersService(db, auditPub)

	secureCookies := cfg.Env != "dev"

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &RouteDeps{
		Auth:          authSvc,
		Content:       contentSvc,
		Grants:        grantSvc,
		Users:         usersSvc,
		Sessions:      sessions,
		Audit:         auditPub,
		Storage:       db,
		SessionTTL:    cfg.SessionTTL,
		SecureCookies: secureCookies,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		sessions: sessions,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.db.DB.Close(); cerr != nil {
			a.logger.Error("failed to close database", sl.Err(cerr))
		}
		if cerr := a.sessions.Db.Close(); cerr != nil {
			a.logger.Error("failed to close session store", sl.Err(cerr))
		}
		return err
	}
}
