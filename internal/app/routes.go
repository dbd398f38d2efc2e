package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prompt-styler/core/internal/middleware"
	"github.com/prompt-styler/core/internal/modules/ads"
	"github.com/prompt-styler/core/internal/modules/billing"
	"github.com/prompt-styler/core/internal/modules/entitlement"
	"github.com/prompt-styler/core/internal/modules/export"
	"github.com/prompt-styler/core/internal/modules/export/raster"
	"github.com/prompt-styler/core/internal/modules/markup"
	"github.com/prompt-styler/core/internal/modules/preview"
	"github.com/prompt-styler/core/internal/modules/workspace"
	"github.com/prompt-styler/core/internal/pkg/fontkit"
	pkgredis "github.com/prompt-styler/core/internal/pkg/redis"
	"github.com/prompt-styler/core/internal/pkg/response"
)

const apiPrefix = "/api/v1"

var processStart = time.Now()

func (a *App) registerRoutes(rc *pkgredis.Client, kit *fontkit.Kit) error {
	r := a.router
	db := a.db

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "not found")
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	// Rate limiting and idempotence run on every route (requires Redis).
	r.Use(middleware.RateLimit(rc.Raw(), a.logger))
	idempotenceMW := middleware.Idempotence(rc.Raw())

	backend := raster.NewFreetype(kit)
	entSvc := entitlement.NewService(rc, a.logger)
	exportSvc, err := export.NewService(db, backend, a.cfg.Paths.Scratch, a.logger)
	if err != nil {
		return err
	}

	api := r.Group(apiPrefix)

	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })
	api.GET("/uptime", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"timestamp": time.Since(processStart).Milliseconds()})
	})

	// Core pipeline
	markup.NewHandler().RegisterRoutes(api)
	preview.NewHandler(preview.NewService(backend)).RegisterRoutes(api)
	export.NewHandler(exportSvc).RegisterRoutes(api, idempotenceMW)

	// Persistence
	workspace.NewHandler(workspace.NewService(db, a.logger)).RegisterRoutes(api)

	// Premium flow
	entHandler := entitlement.NewHandler(entSvc, a.cfg.AppURL)
	entHandler.RegisterRoutes(api)
	entHandler.RegisterRoot(r)
	billing.NewHandler(a.cfg.Stripe, a.cfg.AppURL, entSvc, a.logger).RegisterRoutes(api)
	ads.NewHandler(a.cfg.AdSense, entSvc).RegisterRoutes(api)

	return nil
}
