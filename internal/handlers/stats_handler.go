package handlers

import (
	"log"
	"net/http"

	"agriscan/internal/services"
	"agriscan/utils"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService services.IStatsService
	middleware   *Middleware
}

func NewStatsHandler(statsService services.IStatsService, middleware *Middleware) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		middleware:   middleware,
	}
}

func (h *StatsHandler) RegisterRoutes(router *gin.Engine) {
	stats := router.Group("/stats", h.middleware.RequireAuth())
	stats.GET("/overview", h.GetOverview)
	stats.GET("/geographical", h.GetGeographical)
}

func (h *StatsHandler) GetOverview(c *gin.Context) {
	overview, err := h.statsService.GetOverview()
	if err != nil {
		log.Printf("Failed to compute overview stats: %v", err)
		c.JSON(http.StatusInternalServerError, utils.CreateErrorResponse(
			"INTERNAL_ERROR", "Failed to compute overview stats"))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(overview))
}

func (h *StatsHandler) GetGeographical(c *gin.Context) {
	geo, err := h.statsService.GetGeographical()
	if err != nil {
		log.Printf("Failed to compute geographical stats: %v", err)
		c.JSON(http.StatusInternalServerError, utils.CreateErrorResponse(
			"INTERNAL_ERROR", "Failed to compute geographical stats"))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(geo))
}
