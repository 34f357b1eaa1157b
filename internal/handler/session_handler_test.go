package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"booklog/internal/dto"
	"booklog/internal/handler"
	"booklog/internal/models"
	"booklog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) List(ctx context.Context, userID string) ([]models.Session, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Session), args.Error(1)
}

func (m *MockSessionService) ListByBook(ctx context.Context, userID, bookID string) ([]models.Session, error) {
	args := m.Called(ctx, userID, bookID)
	return args.Get(0).([]models.Session), args.Error(1)
}

func (m *MockSessionService) Create(ctx context.Context, userID string, req dto.CreateSessionRequest) (*models.Session, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionService) Update(ctx context.Context, userID, sessionID string, patch dto.UpdateSessionRequest) (*models.Session, error) {
	args := m.Called(ctx, userID, sessionID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionService) Delete(ctx context.Context, userID, sessionID string) error {
	args := m.Called(ctx, userID, sessionID)
	return args.Error(0)
}

func setupSessionRouter(mockService *MockSessionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewSessionHandler(mockService)

	rg := r.Group("/api/sessions")
	rg.Use(mockAuthMiddleware("test-user-id"))
	h.RegisterRoutes(rg)
	return r
}

const testBookID = "2f0c8a4e-5b1d-4c3a-9e6f-7a8b9c0d1e2f"

func TestSessionHandler_List(t *testing.T) {
	mockService := new(MockSessionService)
	r := setupSessionRouter(mockService)

	book := &models.Book{ID: testBookID, Title: "Dune", Author: "Frank Herbert"}
	sessions := []models.Session{
		{ID: "s1", BookID: testBookID, Book: book, Date: time.Now(), StartPage: 10, EndPage: 40, PagesRead: 30},
	}
	mockService.On("List", mock.Anything, "test-user-id").Return(sessions, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/sessions", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	assert.Equal(t, true, response["success"])
	assert.Equal(t, float64(1), response["count"])

	data := response["data"].([]interface{})
	first := data[0].(map[string]interface{})
	assert.Equal(t, float64(30), first["pages_read"])
	embedded := first["book"].(map[string]interface{})
	assert.Equal(t, "Dune", embedded["title"])
}

func TestSessionHandler_ListByBook(t *testing.T) {
	mockService := new(MockSessionService)
	r := setupSessionRouter(mockService)

	mockService.On("ListByBook", mock.Anything, "test-user-id", testBookID).
		Return([]models.Session{}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/sessions/book/"+testBookID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(0), response["count"])
	mockService.AssertExpectations(t)
}

func TestSessionHandler_Create(t *testing.T) {
	mockService := new(MockSessionService)
	r := setupSessionRouter(mockService)

	t.Run("Success", func(t *testing.T) {
		mockService.On("Create", mock.Anything, "test-user-id", mock.Anything).
			Return(&models.Session{ID: "s1", BookID: testBookID, StartPage: 0, EndPage: 30, PagesRead: 30}, nil).Once()

		body, _ := json.Marshal(gin.H{"book_id": testBookID, "start_page": 0, "end_page": 30})
		req, _ := http.NewRequest(http.MethodPost, "/api/sessions", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("PageZeroBinds", func(t *testing.T) {
		mockService.On("Create", mock.Anything, "test-user-id",
			mock.MatchedBy(func(req dto.CreateSessionRequest) bool {
				return req.StartPage != nil && *req.StartPage == 0
			})).
			Return(&models.Session{ID: "s2", BookID: testBookID}, nil).Once()

		body, _ := json.Marshal(gin.H{"book_id": testBookID, "start_page": 0, "end_page": 0})
		req, _ := http.NewRequest(http.MethodPost, "/api/sessions", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("InvalidRange", func(t *testing.T) {
		mockService.On("Create", mock.Anything, "test-user-id", mock.Anything).
			Return(nil, service.ErrInvalidPageRange).Once()

		body, _ := json.Marshal(gin.H{"book_id": testBookID, "start_page": 100, "end_page": 50})
		req, _ := http.NewRequest(http.MethodPost, "/api/sessions", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ForeignBook", func(t *testing.T) {
		mockService.On("Create", mock.Anything, "test-user-id", mock.Anything).
			Return(nil, service.ErrNotOwner).Once()

		body, _ := json.Marshal(gin.H{"book_id": testBookID, "start_page": 0, "end_page": 10})
		req, _ := http.NewRequest(http.MethodPost, "/api/sessions", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("MissingBookID", func(t *testing.T) {
		body, _ := json.Marshal(gin.H{"start_page": 0, "end_page": 10})
		req, _ := http.NewRequest(http.MethodPost, "/api/sessions", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSessionHandler_Update(t *testing.T) {
	mockService := new(MockSessionService)
	r := setupSessionRouter(mockService)

	t.Run("Success", func(t *testing.T) {
		mockService.On("Update", mock.Anything, "test-user-id", "s1", mock.Anything).
			Return(&models.Session{ID: "s1", BookID: testBookID, StartPage: 10, EndPage: 60, PagesRead: 50}, nil).Once()

		body, _ := json.Marshal(gin.H{"end_page": 60})
		req, _ := http.NewRequest(http.MethodPut, "/api/sessions/s1", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("BookNotReassignable", func(t *testing.T) {
		body, _ := json.Marshal(gin.H{"book_id": testBookID})
		req, _ := http.NewRequest(http.MethodPut, "/api/sessions/s1", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService.On("Update", mock.Anything, "test-user-id", "missing", mock.Anything).
			Return(nil, service.ErrSessionNotFound).Once()

		body, _ := json.Marshal(gin.H{"notes": "revised"})
		req, _ := http.NewRequest(http.MethodPut, "/api/sessions/missing", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSessionHandler_Delete(t *testing.T) {
	mockService := new(MockSessionService)
	r := setupSessionRouter(mockService)

	mockService.On("Delete", mock.Anything, "test-user-id", "s1").Return(nil).Once()

	req, _ := http.NewRequest(http.MethodDelete, "/api/sessions/s1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}
