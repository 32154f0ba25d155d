// Package edushield предоставляет маршруты для основного приложения.
package edushield

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/edushield/edushield/internal/audit"
	"github.com/edushield/edushield/internal/http/handlers/access/grantaccess"
	"github.com/edushield/edushield/internal/http/handlers/access/listaccess"
	"github.com/edushield/edushield/internal/http/handlers/access/revokeaccess"
	"github.com/edushield/edushield/internal/http/handlers/auth/login"
	"github.com/edushield/edushield/internal/http/handlers/auth/logout"
	"github.com/edushield/edushield/internal/http/handlers/auth/me"
	"github.com/edushield/edushield/internal/http/handlers/auth/register"
	"github.com/edushield/edushield/internal/http/handlers/course/create"
	"github.com/edushield/edushield/internal/http/handlers/course/download"
	coursesList "github.com/edushield/edushield/internal/http/handlers/course/list"
	"github.com/edushield/edushield/internal/http/handlers/course/protect"
	"github.com/edushield/edushield/internal/http/handlers/course/view"
	"github.com/edushield/edushield/internal/http/handlers/health"
	"github.com/edushield/edushield/internal/http/handlers/users/subscription"
	"github.com/edushield/edushield/internal/http/middlewarectx"
	"github.com/edushield/edushield/internal/models"
	authservice "github.com/edushield/edushield/internal/services/auth"
	contentservice "github.com/edushield/edushield/internal/services/content"
	grantservice "github.com/edushield/edushield/internal/services/grants"
	usersservice "github.com/edushield/edushield/internal/services/users"
	"github.com/edushield/edushield/internal/session"
	"github.com/edushield/edushield/internal/storage/repository"
)

// RouteDeps — зависимости, необходимые для сборки маршрутов.
type RouteDeps struct {
	Auth          *authservice.AuthService
	Content       *contentservice.ContentService
	Grants        *grantservice.GrantService
	Users         *usersservice.UsersService
	Sessions      *session.Store
	Audit         *audit.Publisher
	Storage       *repository.Storage
	SessionTTL    time.Duration
	SecureCookies bool
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, deps *RouteDeps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Сессия загружается на всех маршрутах: витрина и просмотр
		// курсов работают и для анонимов.
		r.Use(middlewarectx.SessionMiddleware(deps.Sessions, logger))

		// Открытые конечные точки
		r.Post("/register", register.New(logger, deps.Auth, deps.SessionTTL, deps.SecureCookies).ServeHTTP)
		r.Post("/login", login.New(logger, deps.Auth, deps.Audit, deps.SessionTTL, deps.SecureCookies).ServeHTTP)
		r.Post("/logout", logout.New(logger, deps.Auth, deps.SecureCookies).ServeHTTP)
		r.Get("/courses", coursesList.New(logger, deps.Content).ServeHTTP)
		r.Get("/courses/{id}", view.New(logger, deps.Content).ServeHTTP)

		// Группа для вошедших пользователей
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireAuth(logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/auth/user", me.New(logger).ServeHTTP)
			r.Get("/courses/{id}/download", download.New(logger, deps.Content, deps.Audit).ServeHTTP)
		})

		// Администраторская группа
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireRole(models.RoleAdmin, deps.Storage, logger))
			r.Post("/courses", create.New(logger, deps.Content).ServeHTTP)
			r.Put("/courses/{id}/protection", protect.New(logger, deps.Content).ServeHTTP)
			r.Get("/users/{userUID}/course-access", listaccess.New(logger, deps.Grants).ServeHTTP)
			r.Post("/users/{userUID}/grant-course-access", grantaccess.New(logger, deps.Grants).ServeHTTP)
			r.Delete("/users/{userUID}/revoke-course-access/{courseID}", revokeaccess.New(logger, deps.Grants).ServeHTTP)
			r.Put("/users/{userUID}/subscription", subscription.New(logger, deps.Users).ServeHTTP)
		})

		r.Get("/health", health.New(logger, deps.Storage).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
