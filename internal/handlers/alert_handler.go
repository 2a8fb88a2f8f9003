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

type AlertHandler struct {
	alertService services.IAlertService
	middleware   *Middleware
}

func NewAlertHandler(alertService services.IAlertService, middleware *Middleware) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
		middleware:   middleware,
	}
}

func (h *AlertHandler) RegisterRoutes(router *gin.Engine) {
	alerts := router.Group("/alerts", h.middleware.RequireAuth())
	alerts.GET("", h.GetAlerts)
	alerts.POST("", h.middleware.RequireRole(models.RoleInspector), h.CreateAlert)
	alerts.PUT("/:id", h.middleware.RequireRole(models.RoleInspector), h.UpdateAlert)
	alerts.DELETE("/:id", h.middleware.RequireRole(models.RoleInspector), h.DeleteAlert)
}

func (h *AlertHandler) GetAlerts(c *gin.Context) {
	var q models.AlertQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(
			"INVALID_QUERY", "Invalid query parameters"))
		return
	}

	alerts, count, err := h.alertService.GetAlerts(&q)
	if err != nil {
		log.Printf("Failed to fetch alerts: %v", err)
		c.JSON(http.StatusInternalServerError, utils.CreateErrorResponse(
			"INTERNAL_ERROR", "Failed to fetch alerts"))
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"results": alerts,
		"count":   count,
	}))
}

func (h *AlertHandler) CreateAlert(c *gin.Context) {
	var req models.CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(
			"INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	alert, err := h.alertService.CreateAlert(c.Request.Context(), &req)
	if err != nil {
		log.Printf("Failed to create alert: %v", err)
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(
			"VALIDATION_ERROR", err.Error()))
		return
	}

	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(alert))
}

func (h *AlertHandler) UpdateAlert(c *gin.Context) {
	var req models.UpdateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(
			"INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	alertID := c.Param("id")
	alert, err := h.alertService.UpdateAlert(c.Request.Context(), alertID, &req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, utils.CreateErrorResponse(
				"ALERT_NOT_FOUND", "alert not found"))
			return
		}
		log.Printf("Failed to update alert %s: %v", alertID, err)
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(
			"VALIDATION_ERROR", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(alert))
}

func (h *AlertHandler) DeleteAlert(c *gin.Context) {
	alertID := c.Param("id")
	if err := h.alertService.DeleteAlert(alertID); err != nil {
		log.Printf("Failed to delete alert %s: %v", alertID, err)
		c.JSON(http.StatusInternalServerError, utils.CreateErrorResponse(
			"INTERNAL_ERROR", "Failed to delete alert"))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"id": alertID}))
}
