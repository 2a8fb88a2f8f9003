package handlers

import (
	"log"
	"net/http"

	"agriscan/internal/dashboard/client"
	"agriscan/internal/dashboard/session"
	"agriscan/internal/dashboard/store"
	"agriscan/utils"

	"github.com/gin-gonic/gin"
)

// HomeHandler serves the dashboard landing page: overview aggregates,
// recent reports and reference diseases.
type HomeHandler struct {
	sessions *session.Manager
	overview *store.OverviewStore
	reports  *store.ReportsStore
	diseases *store.DiseasesStore
	api      *client.Client
}

func NewHomeHandler(sessions *session.Manager, overview *store.OverviewStore, reports *store.ReportsStore, diseases *store.DiseasesStore, api *client.Client) *HomeHandler {
	return &HomeHandler{
		sessions: sessions,
		overview: overview,
		reports:  reports,
		diseases: diseases,
		api:      api,
	}
}

func (h *HomeHandler) RegisterRoutes(router *gin.Engine, guard *Guard) {
	dashboard := router.Group("/dashboard", guard.RequireSession())
	dashboard.GET("", h.HomePage)
	dashboard.GET("/diseases", h.DiseasesPage)
	dashboard.GET("/stats/geographical", h.GeographicalPage)
}

func (h *HomeHandler) HomePage(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.overview.Refetch(ctx); err != nil {
		log.Printf("Failed to fetch overview stats: %v", err)
		c.JSON(http.StatusBadGateway, utils.CreateErrorResponse(
			"UPSTREAM_ERROR", "Failed to load dashboard overview"))
		return
	}
	if err := h.reports.Refetch(ctx, client.ReportParams{Page: 1, PageSize: 5}); err != nil {
		log.Printf("Failed to fetch recent reports: %v", err)
	}

	recent, _ := h.reports.Reports()
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"user":          h.sessions.CurrentUser(),
		"stats":         h.overview.Stats(),
		"recentReports": recent,
	}))
}

func (h *HomeHandler) DiseasesPage(c *gin.Context) {
	if err := h.diseases.Refetch(c.Request.Context(), c.Query("plantTypeId")); err != nil {
		log.Printf("Failed to fetch diseases: %v", err)
		c.JSON(http.StatusBadGateway, utils.CreateErrorResponse(
			"UPSTREAM_ERROR", "Failed to load diseases"))
		return
	}

	diseases, count := h.diseases.Diseases()
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"diseases":   diseases,
		"totalCount": count,
	}))
}

func (h *HomeHandler) GeographicalPage(c *gin.Context) {
	stats, err := h.api.GetGeographicalStats(c.Request.Context())
	if err != nil {
		log.Printf("Failed to fetch geographical stats: %v", err)
		c.JSON(http.StatusBadGateway, utils.CreateErrorResponse(
			"UPSTREAM_ERROR", "Failed to load geographical stats"))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(stats))
}
