// User store HTTP handlers.
//
// This file exposes the REST endpoints owned by the user service:
//   - POST   /users/     (create)
//   - GET    /users/     (list)
//   - GET    /users/:id  (fetch by id)
//   - DELETE /users/:id  (delete by id)
//
// Handlers are transport-thin: they validate input, call the user service,
// and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/telvoice/go-callcenter-backend/internal/domain"
	"github.com/telvoice/go-callcenter-backend/internal/services"
)

// UserService defines the user lifecycle operations consumed by HTTP
// handlers. Implementations must be safe for concurrent use and honor the
// provided context for cancellation.
type UserService interface {
	// Create inserts a new user with a unique name and phone.
	Create(ctx context.Context, name, phone string) (*domain.User, error)
	// List returns all users.
	List(ctx context.Context) ([]domain.User, error)
	// Get returns the user with the given id.
	Get(ctx context.Context, id uint) (*domain.User, error)
	// Delete removes the user with the given id.
	Delete(ctx context.Context, id uint) error
}

// UserHandlers groups the HTTP endpoints of the user store.
type UserHandlers struct {
	svc UserService
}

// NewUserHandlers constructs UserHandlers bound to the given service.
func NewUserHandlers(svc UserService) *UserHandlers {
	return &UserHandlers{svc: svc}
}

// CreateUserRequest is the JSON payload for creating a user.
type CreateUserRequest struct {
	// Name is the unique username.
	Name string `json:"name" binding:"required" example:"alice"`
	// Phone is the unique phone number.
	Phone string `json:"phone" binding:"required" example:"+44 20 7946 0123"`
}

// Home godoc
// @ID          userServiceHome
// @Summary     User service welcome page
// @Produce     plain
// @Success     200 {string} string
// @Router      / [get]
func (h *UserHandlers) Home(c *gin.Context) {
	c.String(http.StatusOK, "Welcome by user_service!")
}

// CreateUser godoc
// @ID          createUser
// @Summary     Create a new user
// @Description Creates a user with a unique name and phone and returns the stored record.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body body handlers.CreateUserRequest true "Create user payload"
// @Success     201 {object} domain.User
// @Failure     400 {object} handlers.ErrorResponse "Missing name or phone"
// @Failure     409 {object} handlers.ErrorResponse "Name or phone already taken"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /users/ [post]
func (h *UserHandlers) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Name and phone are required!")
		return
	}

	u, err := h.svc.Create(c.Request.Context(), req.Name, req.Phone)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateUser) {
			fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, u)
}

// ListUsers godoc
// @ID          listUsers
// @Summary     List all users
// @Tags        Users
// @Produce     json
// @Success     200 {array} domain.User
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /users/ [get]
func (h *UserHandlers) ListUsers(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	ok(c, http.StatusOK, users)
}

// GetUser godoc
// @ID          getUser
// @Summary     Fetch a user by id
// @Tags        Users
// @Produce     json
// @Param       id path int true "User ID"
// @Success     200 {object} domain.User
// @Failure     400 {object} handlers.ErrorResponse "Bad id"
// @Failure     404 {object} handlers.ErrorResponse "User not found"
// @Router      /users/{id} [get]
func (h *UserHandlers) GetUser(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user id must be an integer")
		return
	}

	u, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "User not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, u)
}

// DeleteUser godoc
// @ID          deleteUser
// @Summary     Delete a user by id
// @Tags        Users
// @Produce     json
// @Param       id path int true "User ID"
// @Success     200 {object} map[string]string
// @Failure     400 {object} handlers.ErrorResponse "Bad id"
// @Failure     404 {object} handlers.ErrorResponse "User not found"
// @Router      /users/{id} [delete]
func (h *UserHandlers) DeleteUser(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user id must be an integer")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "User not found!")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeDeleteFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "User deleted successfully."})
}

// parseID parses a decimal path parameter into a uint id.
func parseID(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse id %q: %w", s, err)
	}
	return uint(n), nil
}
