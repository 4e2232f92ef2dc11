// Log store HTTP handlers.
//
// This file exposes the REST endpoints owned by the logging service:
//   - POST /log/user    (append a user-action audit row)
//   - POST /log/call    (append a call audit row)
//   - GET  /log/users/  (user logs in a time range)
//   - GET  /log/calls/  (call logs in a time range)
//
// Range endpoints require start_date and end_date in the fixed
// YYYY-MM-DDTHH:MM:SS layout; results re-serialize timestamps in the same
// layout so clients can feed responses back into queries.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/telvoice/go-callcenter-backend/internal/domain"
	"github.com/telvoice/go-callcenter-backend/internal/services"
)

// LogService defines the audit log operations consumed by HTTP handlers.
type LogService interface {
	// AppendUser records a user-action audit row.
	AppendUser(ctx context.Context, username, action string) (*domain.UserLog, error)
	// AppendCall records a call audit row.
	AppendCall(ctx context.Context, username string, callDuration int, status string) (*domain.CallLog, error)
	// UserLogs returns user logs between the textual bounds (inclusive).
	UserLogs(ctx context.Context, startDate, endDate string) ([]domain.UserLog, error)
	// CallLogs returns call logs between the textual bounds (inclusive).
	CallLogs(ctx context.Context, startDate, endDate string) ([]domain.CallLog, error)
}

// LogHandlers groups the HTTP endpoints of the logging store.
type LogHandlers struct {
	svc LogService
}

// NewLogHandlers constructs LogHandlers bound to the given service.
func NewLogHandlers(svc LogService) *LogHandlers {
	return &LogHandlers{svc: svc}
}

// AppendUserLogRequest is the JSON payload for a user-action audit row.
type AppendUserLogRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Action   string `json:"action"   binding:"required" example:"User created"`
}

// CallStatus is the status field of a call audit payload. Direct clients
// send it as a string, while the gateway pipeline forwards the call
// store's derived boolean; both decode to the textual form stored in the
// row.
type CallStatus string

// UnmarshalJSON accepts a JSON string, boolean, or number.
func (s *CallStatus) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case string:
		*s = CallStatus(t)
	case bool:
		*s = CallStatus(strconv.FormatBool(t))
	case float64:
		*s = CallStatus(strconv.FormatFloat(t, 'f', -1, 64))
	default:
		return fmt.Errorf("status must be a string, boolean, or number")
	}
	return nil
}

// AppendCallLogRequest is the JSON payload for a call audit row.
// CallDuration is a pointer so that an explicit 0 (the gateway's
// placeholder duration) is distinguishable from a missing field.
type AppendCallLogRequest struct {
	Username     string     `json:"username"      binding:"required" example:"alice"`
	CallDuration *int       `json:"call_duration" binding:"required" example:"0"`
	Status       CallStatus `json:"status"        binding:"required" example:"true"`
}

// UserLogEntry is a user log row with its timestamp rendered in the range
// query layout.
type UserLogEntry struct {
	Username  string `json:"username"`
	Action    string `json:"action"`
	Timestamp string `json:"timestamp" example:"2025-06-01T12:30:00"`
}

// CallLogEntry is a call log row with its timestamp rendered in the range
// query layout.
type CallLogEntry struct {
	Username     string `json:"username"`
	CallDuration int    `json:"call_duration"`
	Status       string `json:"status"`
	Timestamp    string `json:"timestamp" example:"2025-06-01T12:30:00"`
}

// Home godoc
// @ID          logServiceHome
// @Summary     Logging service welcome page
// @Produce     plain
// @Success     200 {string} string
// @Router      / [get]
func (h *LogHandlers) Home(c *gin.Context) {
	c.String(http.StatusOK, "Welcome by logging_service!")
}

// AppendUserLog godoc
// @ID          appendUserLog
// @Summary     Append a user-action audit row
// @Tags        Logs
// @Accept      json
// @Produce     json
// @Param       body body handlers.AppendUserLogRequest true "User log payload"
// @Success     201 {object} map[string]string
// @Failure     400 {object} handlers.ErrorResponse "Missing username or action"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /log/user [post]
func (h *LogHandlers) AppendUserLog(c *gin.Context) {
	var req AppendUserLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Username and action are required!")
		return
	}

	if _, err := h.svc.AppendUser(c.Request.Context(), req.Username, req.Action); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, gin.H{"message": fmt.Sprintf("User log for %s recorded!", req.Username)})
}

// AppendCallLog godoc
// @ID          appendCallLog
// @Summary     Append a call audit row
// @Tags        Logs
// @Accept      json
// @Produce     json
// @Param       body body handlers.AppendCallLogRequest true "Call log payload"
// @Success     201 {object} map[string]string
// @Failure     400 {object} handlers.ErrorResponse "Missing username, call_duration, or status"
// @Failure     500 {object} handlers.ErrorResponse "Internal error"
// @Router      /log/call [post]
func (h *LogHandlers) AppendCallLog(c *gin.Context) {
	var req AppendCallLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Username, call_duration, and status are required!")
		return
	}

	if _, err := h.svc.AppendCall(c.Request.Context(), req.Username, *req.CallDuration, string(req.Status)); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, gin.H{"message": fmt.Sprintf("Call log for %s recorded!", req.Username)})
}

// UserLogs godoc
// @ID          userLogsRange
// @Summary     User logs in a time range
// @Tags        Logs
// @Produce     json
// @Param       start_date query string true "Range start (YYYY-MM-DDTHH:MM:SS)"
// @Param       end_date   query string true "Range end (YYYY-MM-DDTHH:MM:SS)"
// @Success     200 {array} handlers.UserLogEntry
// @Failure     400 {object} handlers.ErrorResponse "Missing or malformed dates"
// @Failure     404 {object} handlers.ErrorResponse "No logs in range"
// @Router      /log/users/ [get]
func (h *LogHandlers) UserLogs(c *gin.Context) {
	startDate, endDate, okRange := rangeParams(c)
	if !okRange {
		return
	}

	logs, err := h.svc.UserLogs(c.Request.Context(), startDate, endDate)
	if err != nil {
		failRange(c, err)
		return
	}

	out := make([]UserLogEntry, 0, len(logs))
	for _, l := range logs {
		out = append(out, UserLogEntry{
			Username:  l.Username,
			Action:    l.Action,
			Timestamp: l.Timestamp.Format(services.RangeLayout),
		})
	}
	ok(c, http.StatusOK, out)
}

// CallLogs godoc
// @ID          callLogsRange
// @Summary     Call logs in a time range
// @Tags        Logs
// @Produce     json
// @Param       start_date query string true "Range start (YYYY-MM-DDTHH:MM:SS)"
// @Param       end_date   query string true "Range end (YYYY-MM-DDTHH:MM:SS)"
// @Success     200 {array} handlers.CallLogEntry
// @Failure     400 {object} handlers.ErrorResponse "Missing or malformed dates"
// @Failure     404 {object} handlers.ErrorResponse "No logs in range"
// @Router      /log/calls/ [get]
func (h *LogHandlers) CallLogs(c *gin.Context) {
	startDate, endDate, okRange := rangeParams(c)
	if !okRange {
		return
	}

	logs, err := h.svc.CallLogs(c.Request.Context(), startDate, endDate)
	if err != nil {
		failRange(c, err)
		return
	}

	out := make([]CallLogEntry, 0, len(logs))
	for _, l := range logs {
		out = append(out, CallLogEntry{
			Username:     l.Username,
			CallDuration: l.CallDuration,
			Status:       l.Status,
			Timestamp:    l.Timestamp.Format(services.RangeLayout),
		})
	}
	ok(c, http.StatusOK, out)
}

// rangeParams extracts the mandatory start_date/end_date query parameters,
// answering 400 itself when either is absent.
func rangeParams(c *gin.Context) (startDate, endDate string, valid bool) {
	startDate = c.Query("start_date")
	endDate = c.Query("end_date")
	if startDate == "" || endDate == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Start date and end date are required!")
		return "", "", false
	}
	return startDate, endDate, true
}

// failRange maps service errors from a range query to HTTP responses.
func failRange(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidRange):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Invalid date format! Use YYYY-MM-DDTHH:MM:SS.")
	case errors.Is(err, services.ErrNoLogs):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "No logs found for the given period.")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
	}
}
