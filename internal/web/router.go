package web

import (
	"github.com/gin-gonic/gin"
)

type Config struct {
	AlertHandler *AlertHandler
}

func NewRouter(cfg *Config) *gin.Engine {
	router := gin.Default()

	api := router.Group("/v1/")
	registerAlertRoutes(api, cfg.AlertHandler)

	return router
}

func registerAlertRoutes(rg *gin.RouterGroup, h *AlertHandler) {
	rg.POST("/alerts", h.CreateAlert)
	rg.GET("/alerts", h.ListAlerts)
	rg.DELETE("/alerts", h.ClearAlerts)

	rg.GET("/alerts/log", h.ListLog)
	rg.DELETE("/alerts/log", h.ClearLog)

	rg.GET("/prices", h.Prices)
	rg.GET("/prices/:id/history", h.History)
}
