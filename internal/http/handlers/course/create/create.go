// Package create реализует HTTP-обработчик добавления курса.
//
// Администраторская операция: маршрут закрыт RequireRole(admin).
// Обработчик декодирует и валидирует политику курса и делегирует
// создание бизнес-логике.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/edushield/edushield/internal/http/response"
	"github.com/edushield/edushield/internal/lib/sl"
	"github.com/edushield/edushield/internal/models"
)

// Request — входные данные для создания курса вместе с политикой доступа.
type Request struct {
	Title           string  `json:"title" validate:"required,max=200"`
	Description     string  `json:"description"`
	Body            string  `json:"body"`
	AccessLevel     string  `json:"access_level" validate:"required,oneof=free premium vip"`
	AllowDownload   bool    `json:"allow_download"`
	AllowScreenshot bool    `json:"allow_screenshot"`
	AllowCopy       bool    `json:"allow_copy"`
	AllowPrint      bool    `json:"allow_print"`
	WatermarkText   *string `json:"watermark_text,omitempty"`
	ProtectionLevel string  `json:"protection_level" validate:"required,oneof=none basic strict"`
}

// Service описывает интерфейс бизнес-логики создания курса.
type Service interface {
	Create(ctx context.Context, course models.Course) (int, error)
}

// Handler обрабатывает HTTP-запросы на создание курса.
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
// @Summary Создание курса
// @Description Добавляет курс с политикой доступа и защиты. Только для администраторов.
// @Tags Courses
// @Accept  json
// @Produce  json
// @Param request body Request true "Курс и его политика"
// @Success 201 {object} map[string]any "Курс создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /courses [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("title", req.Title))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, err := h.service.Create(r.Context(), models.Course{
		Title:           req.Title,
		Description:     req.Description,
		Body:            req.Body,
		AccessLevel:     req.AccessLevel,
		AllowDownload:   req.AllowDownload,
		AllowScreenshot: req.AllowScreenshot,
		AllowCopy:       req.AllowCopy,
		AllowPrint:      req.AllowPrint,
		WatermarkText:   req.WatermarkText,
		ProtectionLevel: req.ProtectionLevel,
	})
	if err != nil {
		log.Error("failed to create course", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create course"))
		return
	}

	log.Info("course created", slog.Int("id", id))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}
