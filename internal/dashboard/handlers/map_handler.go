package handlers

import (
	"log"
	"net/http"
	"time"

	"agriscan/internal/dashboard/client"
	"agriscan/internal/dashboard/mapview"
	"agriscan/internal/dashboard/store"
	"agriscan/utils"

	"github.com/gin-gonic/gin"
)

// mapPageSize is how many reports the map fetches in one page; the map
// renders a single page, matching the rest of the dashboard.
const mapPageSize = 100

type MapHandler struct {
	reports *store.ReportsStore
}

func NewMapHandler(reports *store.ReportsStore) *MapHandler {
	return &MapHandler{reports: reports}
}

func (h *MapHandler) RegisterRoutes(router *gin.Engine, guard *Guard) {
	router.GET("/dashboard/map", guard.RequireSession(), h.MapPage)
}

func filtersFromQuery(c *gin.Context) mapview.Filters {
	return mapview.Filters{
		Region:        c.DefaultQuery("region", mapview.FilterAll),
		Severity:      c.DefaultQuery("severity", mapview.FilterAll),
		PlantType:     c.DefaultQuery("plant_type", mapview.FilterAll),
		DetectionType: c.DefaultQuery("detection_type", mapview.FilterAll),
		DateRange:     c.DefaultQuery("date_range", mapview.FilterAll),
		ActivePreset:  c.DefaultQuery("preset", mapview.FilterAll),
		ViewMode:      c.DefaultQuery("view_mode", mapview.FilterAll),
	}
}

func (h *MapHandler) MapPage(c *gin.Context) {
	if err := h.reports.Refetch(c.Request.Context(), client.ReportParams{Page: 1, PageSize: mapPageSize}); err != nil {
		log.Printf("Failed to fetch reports for map: %v", err)
		c.JSON(http.StatusBadGateway, utils.CreateErrorResponse(
			"UPSTREAM_ERROR", "Failed to load map reports"))
		return
	}

	reports, _ := h.reports.Reports()
	filters := filtersFromQuery(c)
	filtered := mapview.Apply(reports, filters, time.Now())
	present := mapview.PresentTypes(filtered)

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"markers":       mapview.Markers(filtered, filters),
		"legend":        mapview.Legend(present),
		"activeFilters": filters.ActiveCount(),
		"showing":       len(filtered),
		"total":         len(reports),
		"regions":       mapview.Regions(reports),
		"plantTypes":    mapview.PlantTypes(reports),
	}))
}
