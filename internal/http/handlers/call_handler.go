// Call store HTTP handlers.
//
// This file exposes the REST endpoints owned by the call service:
//   - POST /call/               (record a call)
//   - GET  /call/history/       (full history)
//   - GET  /call/history/last/  (most recent call)
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/telvoice/go-callcenter-backend/internal/domain"
	"github.com/telvoice/go-callcenter-backend/internal/services"
)

// CallService defines the call recording operations consumed by HTTP
// handlers.
type CallService interface {
	// Create records a call; status is free text, date optional ISO 8601.
	Create(ctx context.Context, username, status, date string) (*domain.Call, error)
	// History returns all recorded calls.
	History(ctx context.Context) ([]domain.Call, error)
	// Last returns the most recent call by date.
	Last(ctx context.Context) (*domain.Call, error)
}

// CallHandlers groups the HTTP endpoints of the call store.
type CallHandlers struct {
	svc CallService
}

// NewCallHandlers constructs CallHandlers bound to the given service.
func NewCallHandlers(svc CallService) *CallHandlers {
	return &CallHandlers{svc: svc}
}

// CreateCallRequest is the JSON payload for recording a call. Status is
// free text; it is reduced to a boolean server-side ("true", "completed"
// and "yes" map to true, case-insensitively).
type CreateCallRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Status   string `json:"status"   binding:"required" example:"completed"`
	// Date is an optional ISO 8601 timestamp; defaults to the current time.
	Date string `json:"date" example:"2025-06-01T12:30:00"`
}

// Home godoc
// @ID          callServiceHome
// @Summary     Call service welcome page
// @Produce     plain
// @Success     200 {string} string
// @Router      / [get]
func (h *CallHandlers) Home(c *gin.Context) {
	c.String(http.StatusOK, "Welcome by call_service!")
}

// CreateCall godoc
// @ID          createCall
// @Summary     Record a call
// @Description Stores a call attempt; the free-text status is normalized to a boolean.
// @Tags        Calls
// @Accept      json
// @Produce     json
// @Param       body body handlers.CreateCallRequest true "Call payload"
// @Success     201 {object} domain.Call
// @Failure     400 {object} handlers.ErrorResponse "Missing fields or bad date"
// @Failure     409 {object} handlers.ErrorResponse "Unique username index enabled and username already present"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /call/ [post]
func (h *CallHandlers) CreateCall(c *gin.Context) {
	var req CreateCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Username and status are required!")
		return
	}

	call, err := h.svc.Create(c.Request.Context(), req.Username, req.Status, req.Date)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDate):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Invalid date format. Use ISO 8601.")
		case errors.Is(err, services.ErrDuplicateCall):
			fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, call)
}

// CallHistory godoc
// @ID          callHistory
// @Summary     Full call history
// @Tags        Calls
// @Produce     json
// @Success     200 {array} domain.Call
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /call/history/ [get]
func (h *CallHandlers) CallHistory(c *gin.Context) {
	calls, err := h.svc.History(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if calls == nil {
		calls = []domain.Call{}
	}
	ok(c, http.StatusOK, calls)
}

// LastCall godoc
// @ID          lastCall
// @Summary     Most recent call
// @Tags        Calls
// @Produce     json
// @Success     200 {object} domain.Call
// @Failure     404 {object} handlers.ErrorResponse "No calls recorded"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /call/history/last/ [get]
func (h *CallHandlers) LastCall(c *gin.Context) {
	call, err := h.svc.Last(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrNoCalls) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "No calls found.")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, call)
}
