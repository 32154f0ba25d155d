// Package register реализует HTTP-обработчик регистрации пользователей.
//
// Обработчик декодирует и валидирует входные данные, делегирует создание
// пользователя бизнес-логике и при успехе сразу открывает сессию:
// выставляет cookie с токеном и возвращает данные нового пользователя.
package register

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

	"github.com/edushield/edushield/internal/http/response"
	"github.com/edushield/edushield/internal/lib/sl"
	"github.com/edushield/edushield/internal/models"
	"github.com/edushield/edushield/internal/services/auth"
	"github.com/edushield/edushield/internal/session"
)

// Request — входные данные для регистрации.
type Request struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, username, rawPassword, name, email string) (*models.User, string, error)
}

// Handler обрабатывает HTTP-запросы на регистрацию.
type Handler struct {
	log        *slog.Logger
	service    Service
	validate   *validator.Validate
	sessionTTL time.Duration
	secure     bool
}

// New создает новый Handler. secure управляет флагом Secure у cookie сессии.
func New(log *slog.Logger, service Service, sessionTTL time.Duration, secure bool) *Handler {
	return &Handler{
		log:        log,
		service:    service,
		validate:   validator.New(),
		sessionTTL: sessionTTL,
		secure:     secure,
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создает пользователя с ролью user и подпиской free, открывает сессию и выставляет cookie.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового пользователя"
// @Success 200 {object} map[string]any "Пользователь зарегистрирован"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 409 {object} response.ErrorResponse "Имя пользователя или email заняты"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

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

	user, token, err := h.service.Register(r.Context(), req.Username, req.Password, req.Name, req.Email)
	if errors.Is(err, auth.ErrAlreadyExists) {
		log.Error("registration conflict", sl.Err(err))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("username or email already taken"))
		return
	}
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	session.SetCookie(w, token, h.sessionTTL, h.secure)
	log.Info("user registered", slog.String("uid", user.UID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": user,
	}))
}
