// Package protect реализует HTTP-обработчик обновления политики курса.
//
// Администраторская операция: маршрут закрыт RequireRole(admin).
// Политика — статические атрибуты курса: уровень доступа, флаги
// разрешений, водяной знак и уровень защиты.
package protect

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/edushield/edushield/internal/http/response"
	"github.com/edushield/edushield/internal/lib/sl"
	"github.com/edushield/edushield/internal/models"
	"github.com/edushield/edushield/internal/storage/repository"
)

// Request — входные данные для обновления политики курса.
type Request struct {
	AccessLevel     string  `json:"access_level" validate:"required,oneof=free premium vip"`
	AllowDownload   bool    `json:"allow_download"`
	AllowScreenshot bool    `json:"allow_screenshot"`
	AllowCopy       bool    `json:"allow_copy"`
	AllowPrint      bool    `json:"allow_print"`
	WatermarkText   *string `json:"watermark_text,omitempty"`
	ProtectionLevel string  `json:"protection_level" validate:"required,oneof=none basic strict"`
}

// Service описывает интерфейс бизнес-логики обновления политики.
type Service interface {
	UpdatePolicy(ctx context.Context, id int, course models.Course) error
}

// Handler обрабатывает HTTP-запросы на обновление политики курса.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновление политики курса
// @Description Обновляет уровень доступа, флаги разрешений и уровень защиты курса. Только для администраторов.
// @Tags Courses
// @Accept  json
// @Produce  json
// @Param id path int true "ID курса"
// @Param request body Request true "Новая политика курса"
// @Success 200 {object} response.Response "Политика обновлена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Курс не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /courses/{id}/protection [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.protect"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	err = h.service.UpdatePolicy(r.Context(), id, models.Course{
		AccessLevel:     req.AccessLevel,
		AllowDownload:   req.AllowDownload,
		AllowScreenshot: req.AllowScreenshot,
		AllowCopy:       req.AllowCopy,
		AllowPrint:      req.AllowPrint,
		WatermarkText:   req.WatermarkText,
		ProtectionLevel: req.ProtectionLevel,
	})
	if errors.Is(err, repository.ErrNotFound) {
		log.Error("course not found", slog.Int("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("course not found"))
		return
	}
	if err != nil {
		log.Error("failed to update course policy", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update course policy"))
		return
	}

	log.Info("course policy updated", slog.Int("id", id))
	render.JSON(w, r, response.OK())
}
