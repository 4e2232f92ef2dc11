// Command cache-service runs the Redis-backed snapshot mirror for user
// and call data. Entries never expire and are written last-write-wins.
package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/telvoice/go-callcenter-backend/internal/cache"
	"github.com/telvoice/go-callcenter-backend/internal/config"
	httpapi "github.com/telvoice/go-callcenter-backend/internal/http"
	"github.com/telvoice/go-callcenter-backend/internal/observability"
	"github.com/telvoice/go-callcenter-backend/internal/server"
	"github.com/telvoice/go-callcenter-backend/internal/sysutil"
)

const serviceName = "cache-service"

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	_ = godotenv.Load()
	cfg := config.MustLoad(serviceName)
	sysutil.InitLogger(serviceName, cfg.LogLevel, cfg.LogPretty)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup")
	}
	defer func() { _ = shutdownOTel(ctx) }()

	store, err := cache.NewRedisStore(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("connect redis")
	}
	defer func() { _ = store.Close() }()

	r := gin.New()
	httpapi.RegisterCacheRoutes(r, store, cfg)

	if err := server.Run(ctx, cfg, r); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
