package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/edushield/edushield/internal/http/response"
	"github.com/edushield/edushield/internal/lib/sl"
	"github.com/edushield/edushield/internal/models"
	"github.com/edushield/edushield/internal/storage/repository"
)

// UserSource описывает чтение актуальной записи пользователя.
type UserSource interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// RequireAuth возвращает HTTP middleware, который пропускает только
// запросы с загруженной сессией. Анонимный запрос получает 401.
func RequireAuth(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireAuth"

			if IdentityFromContext(r.Context()) == nil {
				log.Error("authentication required",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole возвращает HTTP middleware, который пропускает только
// пользователей с указанной ролью. Роль читается из живой строки базы,
// а не из снимка сессии: снятая роль закрывает доступ со следующего
// запроса, не дожидаясь истечения сессии. Анонимный запрос получает 401,
// пользователь с другой ролью — 403.
func RequireRole(role string, users UserSource, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireRole"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			identity := IdentityFromContext(r.Context())
			if identity == nil {
				log.Error("authentication required")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}

			user, err := users.GetUser(r.Context(), identity.UID)
			if errors.Is(err, repository.ErrNotFound) {
				// Сессия пережила запись пользователя
				log.Error("user from session no longer exists", slog.String("uid", identity.UID))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}
			if err != nil {
				log.Error("failed to load user", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal error"))
				return
			}

			if user.Role != role {
				log.Error("insufficient role", slog.String("role", user.Role))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("insufficient permissions"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
