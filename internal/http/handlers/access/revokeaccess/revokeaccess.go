// Package revokeaccess реализует HTTP-обработчик отзыва доступа к курсу.
//
// Администраторская операция: маршрут закрыт RequireRole(admin).
// Отзыв снимает флаг активности со всех записей пары пользователь-курс,
// не удаляя их: история выдач сохраняется.
package revokeaccess

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/edushield/edushield/internal/http/middlewarectx"
	"github.com/edushield/edushield/internal/http/response"
	"github.com/edushield/edushield/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики отзыва доступа.
type Service interface {
	Revoke(ctx context.Context, actorUID, userUID string, courseID int) (bool, error)
}

// Handler обрабатывает HTTP-запросы на отзыв доступа.
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
// @Summary Отзыв доступа к курсу
// @Description Деактивирует все записи доступа пользователя к курсу. Только для администраторов.
// @Tags Access
// @Produce  json
// @Param userUID path string true "UID пользователя"
// @Param courseID path int true "ID курса"
// @Success 200 {object} response.Response "Доступ отозван"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры URL"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Активных доступов не найдено"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/{userUID}/revoke-course-access/{courseID} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.access.revokeaccess"

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

	courseID, err := strconv.Atoi(chi.URLParam(r, "courseID"))
	if err != nil {
		log.Error("failed to decode courseID from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode courseID from url"))
		return
	}

	actor := middlewarectx.IdentityFromContext(r.Context())
	var actorUID string
	if actor != nil {
		actorUID = actor.UID
	}

	revoked, err := h.service.Revoke(r.Context(), actorUID, userUID, courseID)
	if err != nil {
		log.Error("failed to revoke access", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not revoke access"))
		return
	}
	if !revoked {
		log.Error("no active access found",
			slog.String("user_uid", userUID),
			slog.Int("course_id", courseID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("no active access found"))
		return
	}

	log.Info("access revoked",
		slog.String("user_uid", userUID),
		slog.Int("course_id", courseID))
	render.JSON(w, r, response.OK())
}
