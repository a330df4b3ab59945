package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	usecase "user-crud-service/internal/usecase/user"
	pkgerrors "user-crud-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// MockUserUsecase is a mock implementation of user.Usecase
type MockUserUsecase struct {
	mock.Mock
}

func (m *MockUserUsecase) CreateUser(ctx context.Context, req usecase.CreateUserRequest) (*usecase.CreateUserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CreateUserResponse), args.Error(1)
}

func (m *MockUserUsecase) GetUser(ctx context.Context, req usecase.GetUserRequest) (*usecase.GetUserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.GetUserResponse), args.Error(1)
}

func (m *MockUserUsecase) UpdateUser(ctx context.Context, req usecase.UpdateUserRequest) (*usecase.UpdateUserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.UpdateUserResponse), args.Error(1)
}

func (m *MockUserUsecase) DeleteUser(ctx context.Context, req usecase.DeleteUserRequest) (*usecase.DeleteUserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.DeleteUserResponse), args.Error(1)
}

func (m *MockUserUsecase) ListUsers(ctx context.Context, req usecase.ListUsersRequest) (*usecase.ListUsersResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ListUsersResponse), args.Error(1)
}

func setupTest(t *testing.T) (*gin.Engine, *UserHandler, *MockUserUsecase) {
	gin.SetMode(gin.TestMode)
	mockUsecase := new(MockUserUsecase)
	logger := zaptest.NewLogger(t)
	handler := NewUserHandler(mockUsecase, logger)

	r := gin.New()
	return r, handler, mockUsecase
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Message
}

func TestCreateUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.POST("/user", handler.CreateUser)

		mockUsecase.On("CreateUser", mock.Anything, usecase.CreateUserRequest{
			Name: "Ana", Lastname: "Diaz", Email: "a@x.com",
		}).Return(&usecase.CreateUserResponse{ID: 1, Name: "Ana", Lastname: "Diaz", Email: "a@x.com"}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/user", bytes.NewBufferString(`{"name":"Ana","lastname":"Diaz","email":"a@x.com"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "/user/1", w.Header().Get("Location"))
		assert.JSONEq(t, `{"name":"Ana","lastname":"Diaz","email":"a@x.com"}`, w.Body.String())
	})

	t.Run("Missing Property", func(t *testing.T) {
		for _, body := range []string{
			`{"lastname":"Diaz","email":"a@x.com"}`,
			`{"name":"Ana","email":"a@x.com"}`,
			`{"name":"Ana","lastname":"Diaz"}`,
			`{"name":null,"lastname":"Diaz","email":"a@x.com"}`,
		} {
			r, handler, mockUsecase := setupTest(t)
			r.POST("/user", handler.CreateUser)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/user", bytes.NewBufferString(body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code, body)
			assert.Equal(t, "wrong property", decodeMessage(t, w))
			mockUsecase.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
		}
	})

	t.Run("Invalid Request Body", func(t *testing.T) {
		r, handler, _ := setupTest(t)
		r.POST("/user", handler.CreateUser)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/user", bytes.NewBufferString("invalid json"))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "wrong property", decodeMessage(t, w))
	})

	t.Run("User Exists", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.POST("/user", handler.CreateUser)

		mockUsecase.On("CreateUser", mock.Anything, mock.Anything).
			Return(nil, pkgerrors.NewConflictError("user", pkgerrors.MsgUserExist))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/user", bytes.NewBufferString(`{"name":"B","lastname":"C","email":"a@x.com"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "user exist", decodeMessage(t, w))
	})

	t.Run("Usecase Error", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.POST("/user", handler.CreateUser)

		mockUsecase.On("CreateUser", mock.Anything, mock.Anything).
			Return(nil, pkgerrors.NewPersistenceError(errors.New("commit failed")))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/user", bytes.NewBufferString(`{"name":"Ana","lastname":"Diaz","email":"a@x.com"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "error commit failed", decodeMessage(t, w))
	})
}

func TestGetUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.GET("/user/:id", handler.GetUser)

		mockUsecase.On("GetUser", mock.Anything, usecase.GetUserRequest{ID: 1}).Return(&usecase.GetUserResponse{
			User: usecase.User{ID: 1, Name: "Ana", Lastname: "Diaz", Email: "a@x.com"},
		}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/user/1", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":1,"name":"Ana","lastname":"Diaz","email":"a@x.com"}`, w.Body.String())
	})

	t.Run("Non Numeric ID", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.GET("/user/:id", handler.GetUser)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/user/abc", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Not found", decodeMessage(t, w))
		mockUsecase.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
	})

	t.Run("Not Found", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.GET("/user/:id", handler.GetUser)

		mockUsecase.On("GetUser", mock.Anything, usecase.GetUserRequest{ID: 1}).
			Return(nil, pkgerrors.NewNotFoundError("user", pkgerrors.MsgNotFound))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/user/1", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Not found", decodeMessage(t, w))
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.PUT("/user/:id", handler.UpdateUser)

		mockUsecase.On("UpdateUser", mock.Anything, usecase.UpdateUserRequest{ID: 1, Name: "Ana ", Lastname: "Diaz"}).
			Return(&usecase.UpdateUserResponse{ID: 1, Name: "Ana", Lastname: "Diaz"}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/user/1", bytes.NewBufferString(`{"name":"Ana ","lastname":"Diaz"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"name":"Ana","lastname":"Diaz"}`, w.Body.String())
	})

	t.Run("Invalid ID", func(t *testing.T) {
		for _, path := range []string{"/user/abc", "/user/0", "/user/-1"} {
			r, handler, mockUsecase := setupTest(t)
			r.PUT("/user/:id", handler.UpdateUser)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, path, bytes.NewBufferString(`{"name":"Ana","lastname":"Diaz"}`))
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code, path)
			assert.Equal(t, "invalid id", decodeMessage(t, w))
			mockUsecase.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
		}
	})

	t.Run("Missing Property", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.PUT("/user/:id", handler.UpdateUser)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/user/1", bytes.NewBufferString(`{"name":"Ana"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "wrong property", decodeMessage(t, w))
		mockUsecase.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
	})

	t.Run("Not Found", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.PUT("/user/:id", handler.UpdateUser)

		mockUsecase.On("UpdateUser", mock.Anything, mock.Anything).
			Return(nil, pkgerrors.NewNotFoundError("user", pkgerrors.MsgNotFound))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/user/9", bytes.NewBufferString(`{"name":"Ana","lastname":"Diaz"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.DELETE("/user/:id", handler.DeleteUser)

		mockUsecase.On("DeleteUser", mock.Anything, usecase.DeleteUserRequest{ID: 1}).Return(&usecase.DeleteUserResponse{ID: 1}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/user/1", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("Missing ID", func(t *testing.T) {
		r, handler, _ := setupTest(t)
		r.DELETE("/user", handler.MissingID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/user", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid id", decodeMessage(t, w))
	})

	t.Run("Not Found", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.DELETE("/user/:id", handler.DeleteUser)

		mockUsecase.On("DeleteUser", mock.Anything, usecase.DeleteUserRequest{ID: 3}).
			Return(nil, pkgerrors.NewNotFoundError("user", pkgerrors.MsgNotFound))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/user/3", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListUsers(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.GET("/user", handler.ListUsers)

		mockUsecase.On("ListUsers", mock.Anything, usecase.ListUsersRequest{}).Return(&usecase.ListUsersResponse{
			Users: []usecase.User{
				{ID: 1, Name: "User 1"},
				{ID: 2, Name: "User 2"},
			},
		}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/user", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp []UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp, 2)
	})

	t.Run("Empty", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.GET("/user", handler.ListUsers)

		mockUsecase.On("ListUsers", mock.Anything, usecase.ListUsersRequest{}).Return(&usecase.ListUsersResponse{}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/user", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})
}
