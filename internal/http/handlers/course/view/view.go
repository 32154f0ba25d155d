// Package view реализует HTTP-обработчик просмотра курса.
//
// Обработчик извлекает ID из URL, передает текущего зрителя (или nil для
// анонима) бизнес-логике и возвращает построенное ею представление.
// Для зрителя без права доступа представление заблокировано и не содержит
// тела курса; HTTP-статус при этом 200 — отказ выражен полем locked.
package view

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/edushield/edushield/internal/http/middlewarectx"
	"github.com/edushield/edushield/internal/http/response"
	"github.com/edushield/edushield/internal/lib/sl"
	"github.com/edushield/edushield/internal/models"
	"github.com/edushield/edushield/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики просмотра курса.
type Service interface {
	View(ctx context.Context, viewer *models.Identity, courseID int) (*models.CourseView, error)
}

// Handler обрабатывает HTTP-запросы на просмотр курса.
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
// @Summary Просмотр курса
// @Description Возвращает представление курса для текущего зрителя: полное с директивами защиты или заблокированное с причиной.
// @Tags Courses
// @Produce  json
// @Param id path int true "ID курса"
// @Success 200 {object} map[string]any "Представление курса"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Курс не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /courses/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.view"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	viewer := middlewarectx.IdentityFromContext(r.Context())

	view, err := h.service.View(r.Context(), viewer, id)
	if errors.Is(err, repository.ErrNotFound) {
		log.Error("course not found", slog.Int("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("course not found"))
		return
	}
	if err != nil {
		log.Error("failed to view course", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not view course"))
		return
	}

	log.Info("success to view course", slog.Int("id", id), slog.Bool("locked", view.Locked))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"course": view,
	}))
}
