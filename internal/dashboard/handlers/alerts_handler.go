package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"agriscan/internal/dashboard/client"
	"agriscan/internal/dashboard/store"
	"agriscan/internal/models"
	"agriscan/utils"

	"github.com/gin-gonic/gin"
)

type AlertsHandler struct {
	alerts *store.AlertsStore
}

func NewAlertsHandler(alerts *store.AlertsStore) *AlertsHandler {
	return &AlertsHandler{alerts: alerts}
}

func (h *AlertsHandler) RegisterRoutes(router *gin.Engine, guard *Guard) {
	alerts := router.Group("/dashboard/alerts", guard.RequireSession())
	alerts.GET("", h.ListPage)
	alerts.POST("", guard.RequireRole(models.RoleInspector), h.Create)
	alerts.PUT("/:id", guard.RequireRole(models.RoleInspector), h.Update)
	alerts.DELETE("/:id", guard.RequireRole(models.RoleInspector), h.Delete)
}

func alertParamsFromQuery(c *gin.Context) client.AlertParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return client.AlertParams{
		Page:     page,
		Limit:    limit,
		Severity: c.Query("severity"),
		State:    c.Query("state"),
	}
}

func (h *AlertsHandler) ListPage(c *gin.Context) {
	params := alertParamsFromQuery(c)
	if err := h.alerts.Refetch(c.Request.Context(), params); err != nil {
		log.Printf("Failed to fetch alerts: %v", err)
		c.JSON(http.StatusBadGateway, utils.CreateErrorResponse(
			"UPSTREAM_ERROR", "Failed to load alerts"))
		return
	}

	alerts, count := h.alerts.Alerts()
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"alerts":     alerts,
		"totalCount": count,
		"pagination": paginationView(params.Page, params.Limit, count),
	}))
}

func (h *AlertsHandler) Create(c *gin.Context) {
	var req models.CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(
			"INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	if err := h.alerts.Create(c.Request.Context(), &req); err != nil {
		h.renderAlertError(c, "Failed to create alert", err)
		return
	}
	alerts, count := h.alerts.Alerts()
	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(gin.H{
		"alerts":     alerts,
		"totalCount": count,
	}))
}

func (h *AlertsHandler) Update(c *gin.Context) {
	var req models.UpdateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(
			"INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	if err := h.alerts.Update(c.Request.Context(), c.Param("id"), &req); err != nil {
		h.renderAlertError(c, "Failed to update alert", err)
		return
	}
	alerts, count := h.alerts.Alerts()
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"alerts":     alerts,
		"totalCount": count,
	}))
}

func (h *AlertsHandler) Delete(c *gin.Context) {
	alertID := c.Param("id")
	if err := h.alerts.Delete(c.Request.Context(), alertID); err != nil {
		h.renderAlertError(c, "Failed to delete alert", err)
		return
	}
	alerts, count := h.alerts.Alerts()
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"deleted":    alertID,
		"alerts":     alerts,
		"totalCount": count,
	}))
}

func (h *AlertsHandler) renderAlertError(c *gin.Context, msg string, err error) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		c.JSON(http.StatusBadGateway, utils.CreateErrorResponse(apiErr.Code, apiErr.Message))
		return
	}
	log.Printf("%s: %v", msg, err)
	c.JSON(http.StatusBadGateway, utils.CreateErrorResponse("UPSTREAM_ERROR", msg))
}
