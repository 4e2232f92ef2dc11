// Command gateway runs the public API gateway. It proxies the user, call,
// and logging stores and orchestrates the two compound write-then-log
// endpoints. The cache mirror is not routed through the gateway.
package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/telvoice/go-callcenter-backend/internal/config"
	httpapi "github.com/telvoice/go-callcenter-backend/internal/http"
	"github.com/telvoice/go-callcenter-backend/internal/observability"
	"github.com/telvoice/go-callcenter-backend/internal/server"
	"github.com/telvoice/go-callcenter-backend/internal/sysutil"
)

const serviceName = "gateway"

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	_ = godotenv.Load()
	cfg := config.MustLoad(serviceName)
	if err := cfg.ValidateGateway(); err != nil {
		panic(err)
	}
	sysutil.InitLogger(serviceName, cfg.LogLevel, cfg.LogPretty)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup")
	}
	defer func() { _ = shutdownOTel(ctx) }()

	r := gin.New()
	httpapi.RegisterGatewayRoutes(r, cfg)

	if err := server.Run(ctx, cfg, r); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
