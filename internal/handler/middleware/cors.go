package middleware

import (
	"log/slog"
	"slices"

	"fleet-rental/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	// cors.New panics on a wildcard origin combined with credentials.
	if cfg.AllowCredentials && slices.Contains(cfg.AllowOrigins, "*") {
		corsCfg.AllowCredentials = false
		slog.Warn("CORS credentials disabled: wildcard origin configured")
	}
	slog.Info("CORS middleware initialized", "AllowOrigins", cfg.AllowOrigins)
	return cors.New(corsCfg)
}
