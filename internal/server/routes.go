package server

import "github.com/gin-gonic/gin"

// NewRouter wires the control-plane routes.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/harvest_run", h.OpenRun)
	router.PUT("/harvest_run", h.CloseRun)
	router.GET("/harvest_run", h.LatestRun)
	router.POST("/harvest_event", h.RecordEvent)
	router.GET("/index", h.EnqueueRun)
	router.GET("/config", h.Endpoints)
	router.GET("/health", h.Health)

	return router
}
