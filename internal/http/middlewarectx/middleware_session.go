// Package middlewarectx содержит HTTP middleware для загрузки сессии
// и проверки прав доступа.
//
// SessionMiddleware извлекает токен сессии из cookie, загружает снимок
// пользователя из хранилища сессий и кладёт его в контекст запроса.
// Отсутствующая или истекшая сессия не является ошибкой: запрос
// продолжается как анонимный.
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
	"github.com/edushield/edushield/internal/session"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// IdentityKey — ключ снимка пользователя в контексте.
	IdentityKey Key = "identity"
	// TokenKey — ключ токена сессии в контексте.
	TokenKey Key = "session_token"
)

// SessionSource описывает интерфейс хранилища сессий.
type SessionSource interface {
	Get(ctx context.Context, token string) (*models.Identity, error)
}

// IdentityFromContext возвращает снимок пользователя из контекста запроса.
// nil означает анонимного зрителя.
func IdentityFromContext(ctx context.Context) *models.Identity {
	identity, _ := ctx.Value(IdentityKey).(*models.Identity)
	return identity
}

// TokenFromContext возвращает токен сессии из контекста запроса.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(TokenKey).(string)
	return token
}

// SessionMiddleware возвращает HTTP middleware, который загружает сессию
// по cookie и кладёт снимок пользователя в контекст.
//
// Анонимный запрос проходит дальше без снимка. Сбой хранилища сессий
// возвращает HTTP 500, чтобы не путать сбой с отсутствием входа.
func SessionMiddleware(sessions SessionSource, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			token := session.TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			identity, err := sessions.Get(r.Context(), token)
			if errors.Is(err, session.ErrNoSession) {
				next.ServeHTTP(w, r)
				return
			}
			if err != nil {
				log.Error("failed to load session", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal error"))
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			ctx = context.WithValue(ctx, TokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
