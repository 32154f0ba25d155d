// Package listaccess реализует HTTP-обработчик чтения журнала доступов
// пользователя.
//
// Администраторская операция: маршрут закрыт RequireRole(admin).
// Возвращаются все записи, включая отозванные и истекшие — журнал
// отражает историю, а не только действующие права.
package listaccess

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/edushield/edushield/internal/http/response"
	"github.com/edushield/edushield/internal/lib/sl"
	"github.com/edushield/edushield/internal/models"
)

// Service описывает интерфейс бизнес-логики чтения журнала доступов.
type Service interface {
	ListByUser(ctx context.Context, userUID string) ([]models.Grant, error)
}

// Handler обрабатывает HTTP-запросы на чтение журнала доступов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Журнал доступов пользователя
// @Description Возвращает все записи ручного доступа пользователя к курсам, включая отозванные. Только для администраторов.
// @Tags Access
// @Produce  json
// @Param userUID path string true "UID пользователя"
// @Success 200 {object} map[string]any "Журнал доступов"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры URL"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/{userUID}/course-access [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.access.listaccess"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID := chi.URLParam(r, "userUID")
	if userUID == "" {
		log.Error("missing userUID in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing userUID in url"))
		return
	}

	grants, err := h.service.ListByUser(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list access records", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list access records"))
		return
	}

	log.Info("success to list access records",
		slog.String("user_uid", userUID),
		slog.Int("count", len(grants)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"grants": grants,
	}))
}
