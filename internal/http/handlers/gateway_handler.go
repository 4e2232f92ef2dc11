// API gateway HTTP handlers.
//
// The gateway re-exposes the store endpoints to external clients. Two
// endpoints are compound (user creation and call submission run the
// two-phase write-then-log pipeline in internal/gateway); everything else
// is a single-hop pass-through that forwards the request to exactly one
// store, translates its status code 1:1, and returns its body unchanged.
//
// The cache mirror is deliberately not reachable through the gateway:
// snapshot writes and reads are client-driven against the cache service
// directly.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/telvoice/go-callcenter-backend/internal/gateway"
)

// Orchestrator is the two-phase pipeline consumed by the compound
// endpoints. Implemented by *gateway.Orchestrator.
type Orchestrator interface {
	// SubmitCall forwards the raw payload to the call store, then logs it.
	SubmitCall(ctx context.Context, payload []byte) (json.RawMessage, error)
	// CreateUser creates a user, then logs a "User created" action.
	CreateUser(ctx context.Context, name, phone string) (json.RawMessage, error)
}

// Upstream is the read-side downstream contract used by pass-through
// endpoints. Implemented by *gateway.Client.
type Upstream interface {
	Get(ctx context.Context, path string, query url.Values) (*gateway.Response, error)
	Delete(ctx context.Context, path string) (*gateway.Response, error)
}

// GatewayHandlers groups the gateway's public endpoints.
type GatewayHandlers struct {
	orch  Orchestrator
	users Upstream
	calls Upstream
	logs  Upstream
}

// NewGatewayHandlers constructs GatewayHandlers bound to the orchestrator
// and the three store clients.
func NewGatewayHandlers(orch Orchestrator, users, calls, logs Upstream) *GatewayHandlers {
	return &GatewayHandlers{orch: orch, users: users, calls: calls, logs: logs}
}

// GatewayCreateUserRequest is the JSON payload for orchestrated user
// creation. The shape matches the user store's own create contract.
type GatewayCreateUserRequest struct {
	Name  string `json:"name"  binding:"required" example:"alice"`
	Phone string `json:"phone" binding:"required" example:"+44 20 7946 0123"`
}

// Home godoc
// @ID          gatewayHome
// @Summary     User service welcome page, proxied
// @Produce     plain
// @Success     200 {string} string
// @Router      / [get]
func (h *GatewayHandlers) Home(c *gin.Context) {
	resp, err := h.users.Get(c.Request.Context(), "/", nil)
	if err != nil {
		fail(c, http.StatusBadGateway, ErrCodeUpstreamUnavailable, err.Error())
		return
	}
	c.Data(resp.Status, "text/plain; charset=utf-8", resp.Body)
}

// CreateUser godoc
// @ID          gatewayCreateUser
// @Summary     Create a user and record an audit log
// @Description Creates the user via the user store, then appends a "User created" action to the logging store. A failed log write is reported as an error even though the user record persists.
// @Tags        Gateway
// @Accept      json
// @Produce     json
// @Param       body body handlers.GatewayCreateUserRequest true "User payload"
// @Success     201 {object} map[string]any
// @Failure     400 {object} handlers.ErrorResponse "Missing name or phone"
// @Failure     502 {object} handlers.ErrorResponse "A store was unreachable"
// @Router      /users/ [post]
func (h *GatewayHandlers) CreateUser(c *gin.Context) {
	var req GatewayCreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Name and phone are required!")
		return
	}

	user, err := h.orch.CreateUser(c.Request.Context(), req.Name, req.Phone)
	if err != nil {
		h.failOrchestration(c, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{
		"message": "User created and logged successfully",
		"user":    user,
	})
}

// SubmitCall godoc
// @ID          gatewaySubmitCall
// @Summary     Record a call and append a call log
// @Description Forwards the payload verbatim to the call store, then logs the call with the configured placeholder duration. A failed log write is reported as an error even though the call record persists.
// @Tags        Gateway
// @Accept      json
// @Produce     json
// @Success     201 {object} map[string]any
// @Failure     400 {object} handlers.ErrorResponse "Rejected by the call store"
// @Failure     502 {object} handlers.ErrorResponse "A store was unreachable"
// @Router      /calls/ [post]
func (h *GatewayHandlers) SubmitCall(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unreadable request body")
		return
	}

	call, err := h.orch.SubmitCall(c.Request.Context(), payload)
	if err != nil {
		h.failOrchestration(c, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{
		"message": "Call created and logged successfully",
		"call":    call,
	})
}

// ListUsers proxies GET /users/ to the user store.
func (h *GatewayHandlers) ListUsers(c *gin.Context) {
	h.proxy(c, h.users, "/users/")
}

// GetUser proxies GET /users/:id to the user store.
func (h *GatewayHandlers) GetUser(c *gin.Context) {
	h.proxy(c, h.users, "/users/"+c.Param("id"))
}

// DeleteUser proxies DELETE /users/:id to the user store.
func (h *GatewayHandlers) DeleteUser(c *gin.Context) {
	resp, err := h.users.Delete(c.Request.Context(), "/users/"+c.Param("id"))
	h.relay(c, resp, err)
}

// CallHistory proxies GET /calls/history/ to the call store.
func (h *GatewayHandlers) CallHistory(c *gin.Context) {
	h.proxy(c, h.calls, "/call/history/")
}

// LastCall proxies GET /calls/history/last/ to the call store.
func (h *GatewayHandlers) LastCall(c *gin.Context) {
	h.proxy(c, h.calls, "/call/history/last/")
}

// CallLogs proxies GET /logs/calls/ to the logging store, forwarding the
// date range query parameters untouched.
func (h *GatewayHandlers) CallLogs(c *gin.Context) {
	h.proxyQuery(c, h.logs, "/log/calls/")
}

// UserLogs proxies GET /logs/users/ to the logging store.
func (h *GatewayHandlers) UserLogs(c *gin.Context) {
	h.proxyQuery(c, h.logs, "/log/users/")
}

// proxy forwards a GET without query parameters.
func (h *GatewayHandlers) proxy(c *gin.Context, up Upstream, path string) {
	resp, err := up.Get(c.Request.Context(), path, nil)
	h.relay(c, resp, err)
}

// proxyQuery forwards a GET including the caller's query string.
func (h *GatewayHandlers) proxyQuery(c *gin.Context, up Upstream, path string) {
	resp, err := up.Get(c.Request.Context(), path, c.Request.URL.Query())
	h.relay(c, resp, err)
}

// relay writes a downstream response through 1:1, or a 502 envelope when
// the store could not be reached at all.
func (h *GatewayHandlers) relay(c *gin.Context, resp *gateway.Response, err error) {
	if err != nil {
		fail(c, http.StatusBadGateway, ErrCodeUpstreamUnavailable, err.Error())
		return
	}
	c.Data(resp.Status, "application/json", resp.Body)
}

// failOrchestration maps orchestrator errors to client responses:
// a primary-store rejection propagates its status and body verbatim,
// a failed audit write keeps the log store's status with a stable message,
// and transport failures become 502.
func (h *GatewayHandlers) failOrchestration(c *gin.Context, err error) {
	var ue *gateway.UpstreamError
	var pf *gateway.PartialFailure
	switch {
	case errors.As(err, &ue):
		c.Data(ue.Status, "application/json", ue.Body)
		c.Abort()
	case errors.As(err, &pf):
		fail(c, pf.Status, ErrCodeLogFailed, pf.Message)
	default:
		fail(c, http.StatusBadGateway, ErrCodeUpstreamUnavailable, err.Error())
	}
}
