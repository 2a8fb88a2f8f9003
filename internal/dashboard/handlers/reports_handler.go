package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"agriscan/internal/dashboard/client"
	"agriscan/internal/dashboard/pagination"
	"agriscan/internal/dashboard/store"
	"agriscan/internal/models"
	"agriscan/utils"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 10

type ReportsHandler struct {
	reports *store.ReportsStore
	details *store.ReportDetailsStore
}

func NewReportsHandler(reports *store.ReportsStore, details *store.ReportDetailsStore) *ReportsHandler {
	return &ReportsHandler{reports: reports, details: details}
}

func (h *ReportsHandler) RegisterRoutes(router *gin.Engine, guard *Guard) {
	reports := router.Group("/dashboard/reports", guard.RequireSession())
	reports.GET("", h.ListPage)
	reports.GET("/:id", h.DetailPage)
	reports.PUT("/:id/status", guard.RequireRole(models.RoleInspector), h.UpdateStatus)

	router.GET("/dashboard/farmers", guard.RequireSession(), h.FarmersPage)
}

func reportParamsFromQuery(c *gin.Context) client.ReportParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	return client.ReportParams{
		Page:          page,
		PageSize:      pageSize,
		State:         c.Query("state"),
		Status:        c.Query("status"),
		DetectionType: c.Query("detection_type"),
	}
}

func paginationView(page, pageSize, totalCount int) gin.H {
	totalPages := pagination.TotalPages(totalCount, pageSize)
	return gin.H{
		"page":        page,
		"pageSize":    pageSize,
		"totalPages":  totalPages,
		"pageNumbers": pagination.PageNumbers(page, totalPages),
		"showing":     pagination.Showing(page, pageSize, totalCount),
	}
}

func (h *ReportsHandler) ListPage(c *gin.Context) {
	params := reportParamsFromQuery(c)
	if err := h.reports.Refetch(c.Request.Context(), params); err != nil {
		log.Printf("Failed to fetch reports: %v", err)
		c.JSON(http.StatusBadGateway, utils.CreateErrorResponse(
			"UPSTREAM_ERROR", "Failed to load reports"))
		return
	}

	reports, count := h.reports.Reports()
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"reports":    reports,
		"totalCount": count,
		"pagination": paginationView(params.Page, params.PageSize, count),
	}))
}

func (h *ReportsHandler) DetailPage(c *gin.Context) {
	reportID := c.Param("id")
	if err := h.details.Refetch(c.Request.Context(), reportID); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			// Missing reports render as an empty-state card, not an error.
			c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
				"report": nil,
				"found":  false,
			}))
			return
		}
		log.Printf("Failed to fetch report %s: %v", reportID, err)
		c.JSON(http.StatusBadGateway, utils.CreateErrorResponse(
			"UPSTREAM_ERROR", "Failed to load report"))
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"report": h.details.Report(),
		"found":  true,
	}))
}

func (h *ReportsHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateReportStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(
			"INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	report, err := h.details.UpdateStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			c.JSON(http.StatusBadGateway, utils.CreateErrorResponse(apiErr.Code, apiErr.Message))
			return
		}
		log.Printf("Failed to review report %s: %v", c.Param("id"), err)
		c.JSON(http.StatusBadGateway, utils.CreateErrorResponse(
			"UPSTREAM_ERROR", "Failed to update report status"))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(report))
}

// farmerRow is a reports-derived listing entry; the dashboard has no
// dedicated farmers endpoint.
type farmerRow struct {
	UserID      string    `json:"userId"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	ReportCount int       `json:"reportCount"`
	LastReport  time.Time `json:"lastReport"`
}

func (h *ReportsHandler) FarmersPage(c *gin.Context) {
	params := client.ReportParams{Page: 1, PageSize: 100, State: c.Query("state")}
	if err := h.reports.Refetch(c.Request.Context(), params); err != nil {
		log.Printf("Failed to fetch reports for farmers page: %v", err)
		c.JSON(http.StatusBadGateway, utils.CreateErrorResponse(
			"UPSTREAM_ERROR", "Failed to load farmers"))
		return
	}

	reports, _ := h.reports.Reports()
	byUser := make(map[string]*farmerRow)
	order := make([]string, 0)
	for i := range reports {
		r := &reports[i]
		if r.UserID == "" {
			continue
		}
		row, ok := byUser[r.UserID]
		if !ok {
			row = &farmerRow{UserID: r.UserID, City: r.City, State: r.State}
			byUser[r.UserID] = row
			order = append(order, r.UserID)
		}
		row.ReportCount++
		if r.Timestamp.After(row.LastReport) {
			row.LastReport = r.Timestamp
		}
	}

	farmers := make([]farmerRow, 0, len(order))
	for _, id := range order {
		farmers = append(farmers, *byUser[id])
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"farmers": farmers,
		"count":   len(farmers),
	}))
}
