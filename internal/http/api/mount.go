package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/study-planner/internal/http/middleware"
)

// Module is a pluggable feature that attaches its endpoints to a Controller (a gin group).
type Module interface {
	Mount(c *Controller)
}

// ModuleFunc lets you define a Module with a simple function.
type ModuleFunc func(c *Controller)

func (f ModuleFunc) Mount(c *Controller) { f(c) }

// Controller is the gin group a Module registers its routes on.
type Controller struct {
	Group *gin.RouterGroup
}

// GroupConfig tells the api package how to mount a group.
type GroupConfig struct {
	Prefix     string
	Session    bool
	SessionTTL time.Duration // required if Session == true
	Secure     bool          // mark the session cookie Secure
}

// MountGroup mounts one or more Modules under a prefix with an optional
// workspace session.
func MountGroup(parent gin.IRoutes, cfg GroupConfig, modules ...Module) {
	var grp *gin.RouterGroup

	switch v := parent.(type) {
	case *gin.Engine:
		grp = v.Group(cfg.Prefix)
	case *gin.RouterGroup:
		if cfg.Prefix != "" {
			grp = v.Group(cfg.Prefix)
		} else {
			grp = v
		}
	default:
		log.Fatal().Str("type", fmt.Sprintf("%T", parent)).Msg("api.MountGroup: unsupported router type")
	}

	if cfg.Session {
		if cfg.SessionTTL <= 0 {
			log.Fatal().Msg("api.MountGroup: Session enabled but SessionTTL is not set")
		}
		grp.Use(middleware.Session(cfg.SessionTTL, cfg.Secure))
	}

	controller := &Controller{Group: grp}

	for _, m := range modules {
		m.Mount(controller)
	}
}
