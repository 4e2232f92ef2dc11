// Command call-service runs the call store: a REST interface over the
// calls table with create, history, and last-call operations.
package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/telvoice/go-callcenter-backend/internal/config"
	httpapi "github.com/telvoice/go-callcenter-backend/internal/http"
	"github.com/telvoice/go-callcenter-backend/internal/observability"
	"github.com/telvoice/go-callcenter-backend/internal/repo"
	"github.com/telvoice/go-callcenter-backend/internal/server"
	"github.com/telvoice/go-callcenter-backend/internal/sysutil"
)

const serviceName = "call-service"

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

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	if err := repo.MigrateCallDB(db, cfg.CallUniqueUsername); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	r := gin.New()
	httpapi.RegisterCallRoutes(r, db, cfg)

	if err := server.Run(ctx, cfg, r); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
