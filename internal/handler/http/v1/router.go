package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers every API v1 route
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	bearer := BearerAuthMiddleware(h.cfg.JWTSecret, h.logger)

	officials := api.Group("/officials", bearer, h.officialAuth())
	{
		officials.POST("/reports/:id/dispatch", h.dispatchReport)
		officials.POST("/reports/dispatch-pending", h.dispatchPending)
		officials.GET("/reports/recent", h.recentReports)
		officials.GET("/reports", h.listReports)
		officials.GET("/incidents/map", h.incidentMap)
		officials.GET("/dashboard", h.dashboard)
		officials.GET("/services", h.listServices)
	}

	services := api.Group("/services", bearer, h.serviceAuth())
	{
		services.GET("/dispatches", h.listDispatches)
		services.GET("/dispatches/export", h.exportDispatches)
		services.POST("/dispatches/:id/complete", h.completeDispatch)
	}

	admin := api.Group("/admin", APIKeyAuthMiddleware(h.cfg, h.logger))
	{
		admin.GET("/reports/:id/notifications", h.reportNotifications)
	}

	api.GET("/system/health", h.healthCheck)
}
