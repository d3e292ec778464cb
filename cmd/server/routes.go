package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/study-planner/internal/config"
	"github.com/Nixie-Tech-LLC/study-planner/internal/http/api"
	"github.com/Nixie-Tech-LLC/study-planner/internal/http/api/planner/endpoints"
	"github.com/Nixie-Tech-LLC/study-planner/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/study-planner/internal/notify"
	"github.com/Nixie-Tech-LLC/study-planner/internal/planner"
	"github.com/Nixie-Tech-LLC/study-planner/internal/render"
	"github.com/Nixie-Tech-LLC/study-planner/internal/store"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, st store.Store, fetcher planner.Fetcher, publisher notify.Publisher) {
	r.SetHTMLTemplate(render.Templates())
	r.Use(middleware.RequestLogger())

	// CORS
	corsCfg := cors.Config{
		AllowMethods: []string{
			"GET",
			"POST",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Disposition",
		},
		AllowCredentials: false,
	}
	if len(cfg.AllowOrigins) == 0 || (len(cfg.AllowOrigins) == 1 && cfg.AllowOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	ctl := endpoints.NewPlannerController(st, fetcher, publisher)

	api.MountGroup(r, api.GroupConfig{
		Prefix:     "/",
		Session:    true,
		SessionTTL: cfg.SessionTTL,
		Secure:     cfg.Production(),
	},
		endpoints.PagesModule(ctl),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:     "/api",
		Session:    true,
		SessionTTL: cfg.SessionTTL,
		Secure:     cfg.Production(),
	},
		endpoints.APIModule(ctl),
	)
}
