package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"booklog/internal/dto"
	"booklog/internal/handler"
	"booklog/internal/models"
	"booklog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, string, *models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(2) == nil {
		return "", "", nil, args.Error(3)
	}
	return args.String(0), args.String(1), args.Get(2).(*models.User), args.Error(3)
}

func (m *MockAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) RevokeToken(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.TokenClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenClaims), args.Error(1)
}

func (m *MockAuthService) Profile(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) UpdateGoals(ctx context.Context, userID string, req dto.UpdateGoalsRequest) (*models.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func setupAuthRouter(mockService *MockAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewAuthHandler(mockService)

	public := r.Group("/api/auth")
	h.RegisterPublicRoutes(public)

	protected := r.Group("/api/auth")
	protected.Use(mockAuthMiddleware("test-user-id"))
	h.RegisterProtectedRoutes(protected)
	return r
}

func TestAuthHandler_Register(t *testing.T) {
	mockService := new(MockAuthService)
	r := setupAuthRouter(mockService)

	t.Run("Success", func(t *testing.T) {
		mockService.On("Register", mock.Anything, "reader", "reader@example.com", "hunter2hunter2").
			Return(&models.User{ID: "user-1", Username: "reader", Email: "reader@example.com"}, nil).Once()

		body, _ := json.Marshal(gin.H{"username": "reader", "email": "reader@example.com", "password": "hunter2hunter2"})
		req, _ := http.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "reader", data["username"])
	})

	t.Run("DuplicateIsOpaqueConflict", func(t *testing.T) {
		mockService.On("Register", mock.Anything, "reader", "reader@example.com", "hunter2hunter2").
			Return(nil, service.ErrEmailInUse).Once()

		body, _ := json.Marshal(gin.H{"username": "reader", "email": "reader@example.com", "password": "hunter2hunter2"})
		req, _ := http.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		// The error body must not reveal which field collided.
		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, "account creation failed", response["error"])
	})

	t.Run("ShortPassword", func(t *testing.T) {
		body, _ := json.Marshal(gin.H{"username": "reader", "email": "reader@example.com", "password": "short"})
		req, _ := http.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	mockService := new(MockAuthService)
	r := setupAuthRouter(mockService)

	t.Run("Success", func(t *testing.T) {
		mockService.On("Login", mock.Anything, "reader@example.com", "hunter2hunter2").
			Return("access-token", "refresh-token", &models.User{ID: "user-1", Username: "reader"}, nil).Once()

		body, _ := json.Marshal(gin.H{"email": "reader@example.com", "password": "hunter2hunter2"})
		req, _ := http.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "access-token", data["access_token"])
		assert.Equal(t, "refresh-token", data["refresh_token"])
		assert.Equal(t, float64(900), data["expires_in"])
	})

	t.Run("BadCredentials", func(t *testing.T) {
		mockService.On("Login", mock.Anything, "reader@example.com", "wrong").
			Return("", "", nil, service.ErrInvalidCredentials).Once()

		body, _ := json.Marshal(gin.H{"email": "reader@example.com", "password": "wrong"})
		req, _ := http.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, "invalid credentials", response["error"])
	})
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	mockService := new(MockAuthService)
	r := setupAuthRouter(mockService)

	t.Run("Success", func(t *testing.T) {
		mockService.On("RefreshAccessToken", mock.Anything, "refresh-token").
			Return("new-access-token", nil).Once()

		body, _ := json.Marshal(gin.H{"refresh_token": "refresh-token"})
		req, _ := http.NewRequest(http.MethodPost, "/api/auth/refresh", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "new-access-token", data["access_token"])
		assert.Equal(t, "Bearer", data["token_type"])
	})

	t.Run("RejectedToken", func(t *testing.T) {
		mockService.On("RefreshAccessToken", mock.Anything, "stale").
			Return("", errors.New("refresh token revoked")).Once()

		body, _ := json.Marshal(gin.H{"refresh_token": "stale"})
		req, _ := http.NewRequest(http.MethodPost, "/api/auth/refresh", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_Logout_AlwaysSucceeds(t *testing.T) {
	mockService := new(MockAuthService)
	r := setupAuthRouter(mockService)

	mockService.On("RevokeToken", mock.Anything, "unknown-token").
		Return(errors.New("invalid refresh token")).Once()

	body, _ := json.Marshal(gin.H{"refresh_token": "unknown-token"})
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/logout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, true, response["success"])
}

func TestAuthHandler_Me(t *testing.T) {
	mockService := new(MockAuthService)
	r := setupAuthRouter(mockService)

	mockService.On("Profile", mock.Anything, "test-user-id").
		Return(&models.User{ID: "test-user-id", Username: "reader", Email: "reader@example.com", BooksGoal: 3, PagesGoal: 500}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "reader", data["username"])
	assert.Equal(t, float64(3), data["books_goal"])
	assert.Equal(t, float64(500), data["pages_goal"])
}

func TestAuthHandler_UpdateGoals(t *testing.T) {
	mockService := new(MockAuthService)
	r := setupAuthRouter(mockService)

	t.Run("Success", func(t *testing.T) {
		mockService.On("UpdateGoals", mock.Anything, "test-user-id", mock.Anything).
			Return(&models.User{ID: "test-user-id", Username: "reader", Email: "reader@example.com", BooksGoal: 5, PagesGoal: 500}, nil).Once()

		body, _ := json.Marshal(gin.H{"books_goal": 5})
		req, _ := http.NewRequest(http.MethodPut, "/api/auth/goals", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, float64(5), data["books_goal"])
	})

	t.Run("UnknownFieldRejected", func(t *testing.T) {
		body, _ := json.Marshal(gin.H{"streak_goal": 7})
		req, _ := http.NewRequest(http.MethodPut, "/api/auth/goals", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "UpdateGoals", mock.Anything, mock.Anything, mock.Anything)
	})
}
