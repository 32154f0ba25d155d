package download

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
	"github.com/edushield/edushield/internal/services/content"
	"github.com/edushield/edushield/internal/storage/repository"
)

// MockService реализует интерфейс download.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) IssueDownloadToken(ctx context.Context, viewer *models.Identity, courseID int) (string, error) {
	args := m.Called(ctx, viewer, courseID)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestDownloadHandler(t *testing.T) {
	viewer := &models.Identity{UID: "uid-1", Username: "testuser", Role: models.RoleUser}

	tests := []struct {
		name           string
		urlID          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "успешный выпуск токена",
			urlID: "42",
			setupMock: func(m *MockService) {
				m.On("IssueDownloadToken", mock.Anything, viewer, 42).
					Return("signed-token", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"download_token":"signed-token"`,
		},
		{
			name:           "некорректный id в URL",
			urlID:          "abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `failed to decode id from url`,
		},
		{
			name:  "скачивание запрещено",
			urlID: "42",
			setupMock: func(m *MockService) {
				m.On("IssueDownloadToken", mock.Anything, viewer, 42).
					Return("", content.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `download not allowed`,
		},
		{
			name:  "курс не найден",
			urlID: "777",
			setupMock: func(m *MockService) {
				m.On("IssueDownloadToken", mock.Anything, viewer, 777).
					Return("", repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `course not found`,
		},
		{
			name:  "ошибка сервиса",
			urlID: "42",
			setupMock: func(m *MockService) {
				m.On("IssueDownloadToken", mock.Anything, viewer, 42).
					Return("", errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `could not issue download token`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(newNoopLogger(), mockService, nil)

			req := httptest.NewRequest(http.MethodGet, "/courses/"+tt.urlID+"/download", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.urlID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middlewarectx.IdentityKey, viewer)
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
