// Package httpapi wires the HTTP transport (Gin) to the application
// services and middleware of each binary. Every service shares the same
// base chain — tracing, correlation IDs, structured logging, panic
// recovery, body limits, metrics, CORS, and security headers — and then
// mounts only its own routes.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured request logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. CORS and security headers
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/telvoice/go-callcenter-backend/internal/cache"
	"github.com/telvoice/go-callcenter-backend/internal/config"
	"github.com/telvoice/go-callcenter-backend/internal/domain"
	"github.com/telvoice/go-callcenter-backend/internal/gateway"
	"github.com/telvoice/go-callcenter-backend/internal/http/handlers"
	"github.com/telvoice/go-callcenter-backend/internal/http/middleware"
	"github.com/telvoice/go-callcenter-backend/internal/repo"
	"github.com/telvoice/go-callcenter-backend/internal/services"
)

// The repo shims adapt the repository free functions to the interfaces the
// services expect. This keeps services decoupled from the concrete repo
// package while reusing the existing functions.

type userRepo struct{}

// CreateUser proxies repo.CreateUser.
func (userRepo) CreateUser(ctx context.Context, db *gorm.DB, username, phone string) (*domain.User, error) {
	return repo.CreateUser(ctx, db, username, phone)
}

// ListUsers proxies repo.ListUsers.
func (userRepo) ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	return repo.ListUsers(ctx, db)
}

// GetUser proxies repo.GetUser.
func (userRepo) GetUser(ctx context.Context, db *gorm.DB, id uint) (*domain.User, error) {
	return repo.GetUser(ctx, db, id)
}

// DeleteUser proxies repo.DeleteUser.
func (userRepo) DeleteUser(ctx context.Context, db *gorm.DB, id uint) error {
	return repo.DeleteUser(ctx, db, id)
}

type callRepo struct{}

// CreateCall proxies repo.CreateCall.
func (callRepo) CreateCall(ctx context.Context, db *gorm.DB, username string, date time.Time, status bool) (*domain.Call, error) {
	return repo.CreateCall(ctx, db, username, date, status)
}

// ListCalls proxies repo.ListCalls.
func (callRepo) ListCalls(ctx context.Context, db *gorm.DB) ([]domain.Call, error) {
	return repo.ListCalls(ctx, db)
}

// LastCall proxies repo.LastCall.
func (callRepo) LastCall(ctx context.Context, db *gorm.DB) (*domain.Call, error) {
	return repo.LastCall(ctx, db)
}

type logRepo struct{}

// AppendUserLog proxies repo.AppendUserLog.
func (logRepo) AppendUserLog(ctx context.Context, db *gorm.DB, username, action string) (*domain.UserLog, error) {
	return repo.AppendUserLog(ctx, db, username, action)
}

// AppendCallLog proxies repo.AppendCallLog.
func (logRepo) AppendCallLog(ctx context.Context, db *gorm.DB, username string, callDuration int, status string) (*domain.CallLog, error) {
	return repo.AppendCallLog(ctx, db, username, callDuration, status)
}

// UserLogsInRange proxies repo.UserLogsInRange.
func (logRepo) UserLogsInRange(ctx context.Context, db *gorm.DB, start, end time.Time) ([]domain.UserLog, error) {
	return repo.UserLogsInRange(ctx, db, start, end)
}

// CallLogsInRange proxies repo.CallLogsInRange.
func (logRepo) CallLogsInRange(ctx context.Context, db *gorm.DB, start, end time.Time) ([]domain.CallLog, error) {
	return repo.CallLogsInRange(ctx, db, start, end)
}

// RegisterBase attaches the shared middleware chain, fallbacks, and the
// health and metrics endpoints. service names the binary for metric labels
// and trace attribution.
func RegisterBase(r *gin.Engine, service string, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics(service))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
}

// RegisterUserRoutes mounts the user store endpoints.
func RegisterUserRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	RegisterBase(r, "user-service", cfg)

	svc := &services.UserService{DB: db, Repo: userRepo{}}
	h := handlers.NewUserHandlers(svc)

	r.GET("/", h.Home)
	r.POST("/users/", h.CreateUser)
	r.GET("/users/", h.ListUsers)
	r.GET("/users/:id", h.GetUser)
	r.DELETE("/users/:id", h.DeleteUser)
}

// RegisterCallRoutes mounts the call store endpoints.
func RegisterCallRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	RegisterBase(r, "call-service", cfg)

	svc := &services.CallService{DB: db, Repo: callRepo{}}
	h := handlers.NewCallHandlers(svc)

	r.GET("/", h.Home)
	r.POST("/call/", h.CreateCall)
	r.GET("/call/history/", h.CallHistory)
	r.GET("/call/history/last/", h.LastCall)
}

// RegisterLogRoutes mounts the logging store endpoints.
func RegisterLogRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	RegisterBase(r, "logging-service", cfg)

	svc := &services.LogService{DB: db, Repo: logRepo{}}
	h := handlers.NewLogHandlers(svc)

	r.GET("/", h.Home)
	r.POST("/log/user", h.AppendUserLog)
	r.POST("/log/call", h.AppendCallLog)
	r.GET("/log/users/", h.UserLogs)
	r.GET("/log/calls/", h.CallLogs)
}

// RegisterCacheRoutes mounts the cache mirror endpoints.
func RegisterCacheRoutes(r *gin.Engine, store cache.Store, cfg config.Config) {
	RegisterBase(r, "cache-service", cfg)

	h := handlers.NewCacheHandlers(store)

	r.GET("/", h.Home)
	r.POST("/cache/user", h.CacheUser)
	r.GET("/cache/user", h.UserFromCache)
	r.POST("/cache/call", h.CacheCall)
	r.GET("/cache/call", h.CallFromCache)
}

// RegisterGatewayRoutes mounts the gateway's public surface: the two
// orchestration endpoints plus the pass-throughs. The cache mirror is
// intentionally absent.
func RegisterGatewayRoutes(r *gin.Engine, cfg config.Config) {
	RegisterBase(r, "gateway", cfg)

	users := gateway.NewClient(cfg.Gateway.UserServiceURL, cfg.Gateway.UpstreamTimeout)
	calls := gateway.NewClient(cfg.Gateway.CallServiceURL, cfg.Gateway.UpstreamTimeout)
	logs := gateway.NewClient(cfg.Gateway.LoggingServiceURL, cfg.Gateway.UpstreamTimeout)
	orch := &gateway.Orchestrator{
		Users:           users,
		Calls:           calls,
		Logs:            logs,
		CallLogDuration: cfg.Gateway.CallLogDuration,
	}
	h := handlers.NewGatewayHandlers(orch, users, calls, logs)

	r.GET("/", h.Home)

	// Users (creation is orchestrated, the rest pass through)
	r.POST("/users/", h.CreateUser)
	r.GET("/users/", h.ListUsers)
	r.GET("/users/:id", h.GetUser)
	r.DELETE("/users/:id", h.DeleteUser)

	// Calls (submission is orchestrated, the rest pass through)
	r.POST("/calls/", h.SubmitCall)
	r.GET("/calls/history/", h.CallHistory)
	r.GET("/calls/history/last/", h.LastCall)

	// Log range queries
	r.GET("/logs/calls/", h.CallLogs)
	r.GET("/logs/users/", h.UserLogs)
}

// limitBody returns a Gin middleware that caps the request body size for
// all endpoints to maxBytes using http.MaxBytesReader.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
