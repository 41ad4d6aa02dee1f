package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Sanyam-Ahuja/study-manager/internal/models"
)

// mockAuthService is a mock implementation of AuthService
type mockAuthService struct {
	user        *models.User
	registerErr error
	token       string
	loginErr    error
}

func (m *mockAuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if m.registerErr != nil {
		return nil, m.registerErr
	}
	return m.user, nil
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (string, error) {
	if m.loginErr != nil {
		return "", m.loginErr
	}
	return m.token, nil
}

// newAuthTestRouter mounts the auth handler the way the server does
func newAuthTestRouter(svc AuthService) *chi.Mux {
	r := chi.NewRouter()
	handler := NewAuthHandler(svc, zap.NewNop())
	r.Route("/api", func(r chi.Router) {
		handler.RegisterRoutes(r)
	})
	return r
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		service        *mockAuthService
		expectedStatus int
		expectedBody   map[string]any
	}{
		{
			name: "success",
			body: `{"username":"newuser","password":"password123"}`,
			service: &mockAuthService{
				user: &models.User{ID: 1, Username: "newuser", PasswordHash: "hash"},
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   map[string]any{"id": float64(1), "username": "newuser"},
		},
		{
			name:           "invalid body",
			body:           `{not json`,
			service:        &mockAuthService{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]any{"error": "invalid request body"},
		},
		{
			name: "missing credentials",
			body: `{"username":"","password":""}`,
			service: &mockAuthService{
				registerErr: models.ErrMissingCredentials,
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]any{"error": models.ErrMissingCredentials.Error()},
		},
		{
			name: "duplicate username",
			body: `{"username":"taken","password":"password123"}`,
			service: &mockAuthService{
				registerErr: fmt.Errorf("failed to create user: %w", models.ErrDuplicateUser),
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]any{"error": models.ErrDuplicateUser.Error()},
		},
		{
			name: "backend failure stays generic",
			body: `{"username":"newuser","password":"password123"}`,
			service: &mockAuthService{
				registerErr: fmt.Errorf("pq: connection refused"),
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   map[string]any{"error": "internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthTestRouter(tt.service)

			req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedBody, body)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		service        *mockAuthService
		expectedStatus int
		expectedBody   map[string]any
	}{
		{
			name:           "success",
			body:           `{"username":"testuser","password":"password123"}`,
			service:        &mockAuthService{token: "signed.jwt.token"},
			expectedStatus: http.StatusOK,
			expectedBody:   map[string]any{"token": "signed.jwt.token"},
		},
		{
			name: "invalid credentials",
			body: `{"username":"testuser","password":"wrong"}`,
			service: &mockAuthService{
				loginErr: fmt.Errorf("login failed: %w", models.ErrInvalidCredentials),
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]any{"error": models.ErrInvalidCredentials.Error()},
		},
		{
			name: "lookup failure stays generic",
			body: `{"username":"testuser","password":"password123"}`,
			service: &mockAuthService{
				loginErr: fmt.Errorf("failed to look up user: %w", fmt.Errorf("pq: connection refused")),
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   map[string]any{"error": "internal server error"},
		},
		{
			name:           "invalid body",
			body:           ``,
			service:        &mockAuthService{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]any{"error": "invalid request body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthTestRouter(tt.service)

			req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedBody, body)
		})
	}
}
