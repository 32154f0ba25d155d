// Package grantaccess реализует HTTP-обработчик выдачи доступа к курсу.
//
// Администраторская операция: маршрут закрыт RequireRole(admin).
// Выдача создает новую запись в журнале доступов; повторная выдача
// той же пары пользователь-курс допустима и создает еще одну запись.
package grantaccess

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/edushield/edushield/internal/http/middlewarectx"
	"github.com/edushield/edushield/internal/http/response"
	"github.com/edushield/edushield/internal/lib/sl"
	"github.com/edushield/edushield/internal/models"
)

// Request — входные данные для выдачи доступа.
// ExpiryDate в формате RFC3339; отсутствие означает бессрочный доступ.
type Request struct {
	CourseID   int        `json:"course_id" validate:"required,min=1"`
	AccessType string     `json:"access_type" validate:"required,oneof=granted purchased trial"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
}

// Service описывает интерфейс бизнес-логики выдачи доступа.
type Service interface {
	Grant(ctx context.Context, actorUID, userUID string, courseID int, accessType string, expiry *time.Time) (*models.Grant, error)
}

// Handler обрабатывает HTTP-запросы на выдачу доступа.
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
// @Summary Выдача доступа к курсу
// @Description Создает запись о ручном доступе пользователя к курсу. Только для администраторов.
// @Tags Access
// @Accept  json
// @Produce  json
// @Param userUID path string true "UID пользователя"
// @Param request body Request true "Параметры доступа"
// @Success 201 {object} map[string]any "Доступ выдан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/{userUID}/grant-course-access [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.access.grantaccess"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Int("course_id", req.CourseID))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	actor := middlewarectx.IdentityFromContext(r.Context())
	var actorUID string
	if actor != nil {
		actorUID = actor.UID
	}

	grant, err := h.service.Grant(r.Context(), actorUID, userUID, req.CourseID, req.AccessType, req.ExpiryDate)
	if err != nil {
		log.Error("failed to grant access", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not grant access"))
		return
	}

	log.Info("access granted",
		slog.String("user_uid", userUID),
		slog.Int("course_id", req.CourseID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"grant": grant,
	}))
}
