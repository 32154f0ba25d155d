package view

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/edushield/edushield/internal/http/middlewarectx"
	"github.com/edushield/edushield/internal/models"
	"github.com/edushield/edushield/internal/storage/repository"
)

// MockService реализует интерфейс view.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) View(ctx context.Context, viewer *models.Identity, courseID int) (*models.CourseView, error) {
	args := m.Called(ctx, viewer, courseID)
	view, _ := args.Get(0).(*models.CourseView)
	return view, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestViewHandler(t *testing.T) {
	premiumViewer := &models.Identity{UID: "uid-1", Username: "testuser", Role: models.RoleUser}

	tests := []struct {
		name           string
		urlID          string
		viewer         *models.Identity
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "полное представление для зрителя с доступом",
			urlID:  "42",
			viewer: premiumViewer,
			setupMock: func(m *MockService) {
				view := &models.CourseView{
					ID:          42,
					Title:       "Advanced Go",
					AccessLevel: models.TierPremium,
					Body:        "course content",
				}
				m.On("View", mock.Anything, premiumViewer, 42).Return(view, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"body":"course content"`,
		},
		{
			name:   "заблокированное представление для анонима",
			urlID:  "42",
			viewer: nil,
			setupMock: func(m *MockService) {
				view := &models.CourseView{
					ID:          42,
					Title:       "Advanced Go",
					AccessLevel: models.TierPremium,
					Locked:      true,
					Reason:      models.ReasonLoginRequired,
				}
				m.On("View", mock.Anything, (*models.Identity)(nil), 42).Return(view, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"reason":"login_required"`,
		},
		{
			name:           "некорректный id в URL",
			urlID:          "abc",
			viewer:         nil,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `failed to decode id from url`,
		},
		{
			name:   "курс не найден",
			urlID:  "777",
			viewer: nil,
			setupMock: func(m *MockService) {
				m.On("View", mock.Anything, (*models.Identity)(nil), 777).
					Return(nil, repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `course not found`,
		},
		{
			name:   "ошибка сервиса",
			urlID:  "42",
			viewer: nil,
			setupMock: func(m *MockService) {
				m.On("View", mock.Anything, (*models.Identity)(nil), 42).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `could not view course`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(newNoopLogger(), mockService)

			req := httptest.NewRequest(http.MethodGet, "/courses/"+tt.urlID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.urlID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.viewer != nil {
				ctx = context.WithValue(ctx, middlewarectx.IdentityKey, tt.viewer)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
