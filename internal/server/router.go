package server

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SetupRouter configures and returns a Gin engine serving the API.
func SetupRouter(h *Handler, log *logrus.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(log), CORS())

	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.POST("/extract", h.Extract)
		// GET on the extract path answers with the API description,
		// matching clients that probe before posting.
		api.GET("/extract", h.Info)
		api.GET("/info", h.Info)
	}

	return r
}
