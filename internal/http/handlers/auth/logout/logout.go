// Package logout реализует HTTP-обработчик выхода пользователя.
//
// Обработчик уничтожает серверную сессию и сбрасывает cookie.
// Выход без сессии или с уже истекшей сессией отвечает так же, как
// успешный: операция идемпотентна.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/edushield/edushield/internal/http/response"
	"github.com/edushield/edushield/internal/lib/sl"
	"github.com/edushield/edushield/internal/session"
)

// Service описывает интерфейс бизнес-логики выхода.
type Service interface {
	Logout(ctx context.Context, token string) error
}

// Handler обрабатывает HTTP-запросы на выход.
type Handler struct {
	log     *slog.Logger
	service Service
	secure  bool
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, secure bool) *Handler {
	return &Handler{
		log:     log,
		service: service,
		secure:  secure,
	}
}

// ServeHTTP godoc
// @Summary Выход пользователя
// @Description Уничтожает сессию и сбрасывает cookie. Идемпотентен.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "Сессия закрыта"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := session.TokenFromRequest(r)
	if err := h.service.Logout(r.Context(), token); err != nil {
		log.Error("logout failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	session.ClearCookie(w, h.secure)
	log.Info("logout success")
	render.JSON(w, r, response.OK())
}
