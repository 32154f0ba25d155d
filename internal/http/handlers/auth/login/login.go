// Package login реализует HTTP-обработчик входа пользователей.
//
// Обработчик декодирует и валидирует учетные данные, делегирует проверку
// бизнес-логике и при успехе выставляет cookie с токеном сессии.
// Неизвестное имя и неверный пароль дают одинаковый ответ 401.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/edushield/edushield/internal/audit"
	"github.com/edushield/edushield/internal/http/response"
	"github.com/edushield/edushield/internal/lib/sl"
	"github.com/edushield/edushield/internal/metrics"
	"github.com/edushield/edushield/internal/models"
	"github.com/edushield/edushield/internal/services/auth"
	"github.com/edushield/edushield/internal/session"
)

// Request — структура входных данных для входа.
type Request struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(ctx context.Context, username, rawPassword string) (*models.User, string, error)
}

// Handler обрабатывает HTTP-запросы на вход.
type Handler struct {
	log        *slog.Logger
	service    Service
	auditPub   *audit.Publisher
	validate   *validator.Validate
	sessionTTL time.Duration
	secure     bool
}

// New создает новый Handler. auditPub может быть nil — аудит отключен.
func New(log *slog.Logger, service Service, auditPub *audit.Publisher, sessionTTL time.Duration, secure bool) *Handler {
	return &Handler{
		log:        log,
		service:    service,
		auditPub:   auditPub,
		validate:   validator.New(),
		sessionTTL: sessionTTL,
		secure:     secure,
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Проверяет имя и пароль, открывает сессию и выставляет cookie.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} map[string]any "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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
	log.Info("request body decoded", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		log.Error("login failed", sl.Err(err))
		metrics.LoginAttempts.WithLabelValues("failed").Inc()
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid credentials"))
		return
	}
	if err != nil {
		log.Error("login failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	metrics.LoginAttempts.WithLabelValues("ok").Inc()
	h.auditPub.Publish(audit.Event{Type: audit.EventLogin, UserUID: user.UID})
	session.SetCookie(w, token, h.sessionTTL, h.secure)

	log.Info("login success", slog.String("username", user.Username))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": user,
	}))
}
