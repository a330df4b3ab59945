package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"user-crud-service/internal/usecase/user"
	pkgerrors "user-crud-service/pkg/errors"
	"user-crud-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user.
// Pointer fields distinguish an absent property from an empty one.
type CreateUserRequest struct {
	Name     *string `json:"name" binding:"required"`
	Lastname *string `json:"lastname" binding:"required"`
	Email    *string `json:"email" binding:"required"`
}

// UpdateUserRequest represents the HTTP request body for updating a user
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"required"`
	Lastname *string `json:"lastname" binding:"required"`
}

// CreateUserResponse echoes the accepted create payload
type CreateUserResponse struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Email    string `json:"email"`
}

// UpdateUserResponse echoes the accepted update payload
type UpdateUserResponse struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
}

// UserResponse is the serialized form of a stored user
type UserResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Email    string `json:"email"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string `json:"message"`
}

// CreateUser handles POST /user
func (h *UserHandler) CreateUser(c *gin.Context) {
	log := logger.WithContext(c.Request.Context(), h.log)

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create user request", zap.Error(err))
		h.handleError(c, pkgerrors.NewValidationError("", pkgerrors.MsgWrongProperty))
		return
	}

	resp, err := h.uc.CreateUser(c.Request.Context(), user.CreateUserRequest{
		Name:     *req.Name,
		Lastname: *req.Lastname,
		Email:    *req.Email,
	})
	if err != nil {
		log.Warn("CreateUser failed", zap.Error(err))
		h.handleError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/user/%d", resp.ID))
	c.JSON(http.StatusCreated, CreateUserResponse{
		Name:     resp.Name,
		Lastname: resp.Lastname,
		Email:    resp.Email,
	})
}

// GetUser handles GET /user/:id
// An id that does not parse can never name a stored user, so it is reported as not found.
func (h *UserHandler) GetUser(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.handleError(c, pkgerrors.NewNotFoundError("user", pkgerrors.MsgNotFound))
		return
	}

	resp, err := h.uc.GetUser(c.Request.Context(), user.GetUserRequest{ID: id})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(resp.User))
}

// ListUsers handles GET /user
func (h *UserHandler) ListUsers(c *gin.Context) {
	resp, err := h.uc.ListUsers(c.Request.Context(), user.ListUsersRequest{})
	if err != nil {
		logger.WithContext(c.Request.Context(), h.log).Error("ListUsers failed", zap.Error(err))
		h.handleError(c, err)
		return
	}

	users := make([]UserResponse, len(resp.Users))
	for i, u := range resp.Users {
		users[i] = toUserResponse(u)
	}

	c.JSON(http.StatusOK, users)
}

// UpdateUser handles PUT /user/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	log := logger.WithContext(c.Request.Context(), h.log)

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update user request", zap.Int64("id", id), zap.Error(err))
		h.handleError(c, pkgerrors.NewValidationError("", pkgerrors.MsgWrongProperty))
		return
	}

	resp, err := h.uc.UpdateUser(c.Request.Context(), user.UpdateUserRequest{
		ID:       id,
		Name:     *req.Name,
		Lastname: *req.Lastname,
	})
	if err != nil {
		log.Warn("UpdateUser failed", zap.Int64("id", id), zap.Error(err))
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, UpdateUserResponse{
		Name:     resp.Name,
		Lastname: resp.Lastname,
	})
}

// DeleteUser handles DELETE /user/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if _, err := h.uc.DeleteUser(c.Request.Context(), user.DeleteUserRequest{ID: id}); err != nil {
		logger.WithContext(c.Request.Context(), h.log).Warn("DeleteUser failed", zap.Int64("id", id), zap.Error(err))
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// MissingID handles PUT /user and DELETE /user, which need an id in the path.
func (h *UserHandler) MissingID(c *gin.Context) {
	h.handleError(c, pkgerrors.NewValidationError("id", pkgerrors.MsgInvalidID))
}

// parseID reads a positive integer id from the path and writes a 400 when it is not one.
func (h *UserHandler) parseID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		h.log.Warn("Invalid user ID", zap.String("id", idStr))
		h.handleError(c, pkgerrors.NewValidationError("id", pkgerrors.MsgInvalidID))
		return 0, false
	}
	return id, true
}

// handleError converts usecase errors to {"message": ...} responses with the error's status
func (h *UserHandler) handleError(c *gin.Context, err error) {
	c.JSON(pkgerrors.HTTPStatus(err), ErrorResponse{
		Message: pkgerrors.Message(err),
	})
}

func toUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Lastname: u.Lastname,
		Email:    u.Email,
	}
}
