package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"agriscan/internal/models"
	"agriscan/internal/services"
	"agriscan/utils"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService services.IReportService
	middleware    *Middleware
}

func NewReportHandler(reportService services.IReportService, middleware *Middleware) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		middleware:    middleware,
	}
}

func (h *ReportHandler) RegisterRoutes(router *gin.Engine) {
	reports := router.Group("/reports", h.middleware.RequireAuth())
	reports.GET("/", h.GetReports)
	reports.GET("/:id", h.GetReportByID)
	reports.PUT("/:id/status", h.middleware.RequireRole(models.RoleInspector), h.UpdateReportStatus)
}

func (h *ReportHandler) GetReports(c *gin.Context) {
	var q models.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(
			"INVALID_QUERY", "Invalid query parameters"))
		return
	}

	reports, count, err := h.reportService.GetReports(c.Request.Context(), &q)
	if err != nil {
		log.Printf("Failed to fetch reports: %v", err)
		c.JSON(http.StatusInternalServerError, utils.CreateErrorResponse(
			"INTERNAL_ERROR", "Failed to fetch reports"))
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"reports": reports,
		"count":   count,
	}))
}

func (h *ReportHandler) GetReportByID(c *gin.Context) {
	reportID := c.Param("id")
	report, err := h.reportService.GetReportByID(c.Request.Context(), reportID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, utils.CreateErrorResponse(
				"REPORT_NOT_FOUND", "report not found"))
			return
		}
		log.Printf("Failed to fetch report %s: %v", reportID, err)
		c.JSON(http.StatusInternalServerError, utils.CreateErrorResponse(
			"INTERNAL_ERROR", "Failed to fetch report"))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(report))
}

func (h *ReportHandler) UpdateReportStatus(c *gin.Context) {
	var req models.UpdateReportStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(
			"INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	reportID := c.Param("id")
	reviewedBy := c.GetString(ContextUserID)
	if err := h.reportService.ReviewReport(reportID, reviewedBy, &req); err != nil {
		log.Printf("Failed to review report %s: %v", reportID, err)
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(
			"REVIEW_FAILED", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"reportId": reportID,
		"status":   req.Status,
	}))
}
