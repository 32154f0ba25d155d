// Package me реализует HTTP-обработчик чтения текущего пользователя.
//
// Обработчик возвращает снимок пользователя из сессии. Маршрут закрыт
// RequireAuth, поэтому снимок в контексте всегда есть; проверка на nil
// оставлена на случай неправильной сборки маршрутов.
package me

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/edushield/edushield/internal/http/middlewarectx"
	"github.com/edushield/edushield/internal/http/response"
)

// Handler обрабатывает HTTP-запросы на чтение текущего пользователя.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

// ServeHTTP godoc
// @Summary Текущий пользователь
// @Description Возвращает снимок пользователя из активной сессии.
// @Tags Auth
// @Produce  json
// @Success 200 {object} map[string]any "Снимок пользователя"
// @Failure 401 {object} response.ErrorResponse "Сессия отсутствует"
// @Router /auth/user [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	identity := middlewarectx.IdentityFromContext(r.Context())
	if identity == nil {
		log.Error("identity missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authentication required"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": identity,
	}))
}
