// Package subscription реализует HTTP-обработчик смены уровня подписки
// пользователя. Администраторская операция: маршрут закрыт RequireRole(admin).
package subscription

import (
	"context"
	"encoding/json"
	"errors"
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
	"github.com/edushield/edushield/internal/storage/repository"
)

// Request — входные данные для смены подписки.
// ExpiryDate в формате RFC3339; отсутствие означает бессрочную подписку.
type Request struct {
	Status     string     `json:"status" validate:"required,oneof=free premium vip"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
}

// Service описывает интерфейс бизнес-логики управления подписками.
type Service interface {
	UpdateSubscription(ctx context.Context, actorUID, userUID, status string, expiry *time.Time) error
}

// Handler обрабатывает HTTP-запросы на смену подписки.
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
// @Summary Смена уровня подписки пользователя
// @Description Переводит пользователя на указанный уровень подписки. Только для администраторов.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param userUID path string true "UID пользователя"
// @Param request body Request true "Новый уровень подписки"
// @Success 200 {object} response.Response "Подписка обновлена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/{userUID}/subscription [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.subscription"

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

	err := h.service.UpdateSubscription(r.Context(), actorUID, userUID, req.Status, req.ExpiryDate)
	if errors.Is(err, repository.ErrNotFound) {
		log.Error("user not found", slog.String("user_uid", userUID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	}
	if err != nil {
		log.Error("failed to update subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update subscription"))
		return
	}

	log.Info("subscription updated",
		slog.String("user_uid", userUID),
		slog.String("status", req.Status))
	render.JSON(w, r, response.OK())
}
