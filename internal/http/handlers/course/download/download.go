// Package download реализует HTTP-обработчик выпуска токена скачивания.
//
// Обработчик требует вошедшего зрителя (маршрут закрыт RequireAuth)
// и делегирует проверку прав бизнес-логике: скачивание должно быть
// разрешено и уровнем зрителя, и политикой курса. При успехе возвращает
// короткоживущий токен, который клиент предъявляет службе раздачи файлов.
package download

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/edushield/edushield/internal/audit"
	"github.com/edushield/edushield/internal/http/middlewarectx"
	"github.com/edushield/edushield/internal/http/response"
	"github.com/edushield/edushield/internal/lib/sl"
	"github.com/edushield/edushield/internal/models"
	"github.com/edushield/edushield/internal/services/content"
	"github.com/edushield/edushield/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики выпуска токена скачивания.
type Service interface {
	IssueDownloadToken(ctx context.Context, viewer *models.Identity, courseID int) (string, error)
}

// Handler обрабатывает HTTP-запросы на выпуск токена скачивания.
type Handler struct {
	log      *slog.Logger
	service  Service
	auditPub *audit.Publisher
}

// New создает новый Handler. auditPub может быть nil — аудит отключен.
func New(log *slog.Logger, service Service, auditPub *audit.Publisher) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		auditPub: auditPub,
	}
}

// ServeHTTP godoc
// @Summary Токен на скачивание курса
// @Description Выпускает короткоживущий токен скачивания, если зритель вправе скачивать курс и политика курса это разрешает.
// @Tags Courses
// @Produce  json
// @Param id path int true "ID курса"
// @Success 200 {object} map[string]any "Токен скачивания"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 403 {object} response.ErrorResponse "Скачивание запрещено"
// @Failure 404 {object} response.ErrorResponse "Курс не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /courses/{id}/download [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.download"

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

	token, err := h.service.IssueDownloadToken(r.Context(), viewer, id)
	if errors.Is(err, content.ErrForbidden) {
		log.Error("download forbidden", slog.Int("id", id))
		if viewer != nil {
			h.auditPub.Publish(audit.Event{
				Type:     audit.EventAccessDenied,
				UserUID:  viewer.UID,
				CourseID: id,
			})
		}
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("download not allowed"))
		return
	}
	if errors.Is(err, repository.ErrNotFound) {
		log.Error("course not found", slog.Int("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("course not found"))
		return
	}
	if err != nil {
		log.Error("failed to issue download token", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not issue download token"))
		return
	}

	log.Info("download token issued", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"download_token": token,
	}))
}
