package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"agriscan/internal/dashboard/annotation"
	"agriscan/internal/dashboard/droughtdata"
	"agriscan/utils"

	"github.com/gin-gonic/gin"
)

type DroughtHandler struct {
	board *annotation.Board
}

func NewDroughtHandler(board *annotation.Board) *DroughtHandler {
	return &DroughtHandler{board: board}
}

func (h *DroughtHandler) RegisterRoutes(router *gin.Engine, guard *Guard) {
	router.GET("/dashboard/drought", guard.RequireSession(), h.DroughtPage)

	annotations := router.Group("/dashboard/annotation", guard.RequireSession())
	annotations.GET("", h.ListAnnotations)
	annotations.POST("", h.AddAnnotation)
	annotations.DELETE("/:id", h.RemoveAnnotation)
	annotations.DELETE("", h.ClearAnnotations)
	annotations.GET("/export", h.ExportAnnotations)
	annotations.POST("/import", h.ImportAnnotations)
}

func (h *DroughtHandler) DroughtPage(c *gin.Context) {
	regions, err := droughtdata.RegionsGeoJSON()
	if err != nil {
		log.Printf("Failed to render drought regions: %v", err)
		c.JSON(http.StatusInternalServerError, utils.CreateErrorResponse(
			"INTERNAL_ERROR", "Failed to render drought regions"))
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"landUse": droughtdata.LandUseSample(),
		"regions": json.RawMessage(regions),
		"points":  droughtdata.Points(),
		"summary": droughtdata.Summary(),
	}))
}

func (h *DroughtHandler) ListAnnotations(c *gin.Context) {
	views := h.board.List()
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"annotations": views,
		"count":       len(views),
	}))
}

type addAnnotationRequest struct {
	Label    string      `json:"label"`
	Category string      `json:"category"`
	Ring     [][]float64 `json:"ring"`
}

func (h *DroughtHandler) AddAnnotation(c *gin.Context) {
	var req addAnnotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(
			"INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	view, err := h.board.Add(req.Label, annotation.Category(req.Category), req.Ring)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(
			"VALIDATION_ERROR", err.Error()))
		return
	}
	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(view))
}

func (h *DroughtHandler) RemoveAnnotation(c *gin.Context) {
	id := c.Param("id")
	if !h.board.Remove(id) {
		c.JSON(http.StatusNotFound, utils.CreateErrorResponse(
			"ANNOTATION_NOT_FOUND", "annotation not found"))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"id": id}))
}

func (h *DroughtHandler) ClearAnnotations(c *gin.Context) {
	h.board.Clear()
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{"cleared": true}))
}

func (h *DroughtHandler) ExportAnnotations(c *gin.Context) {
	data, err := h.board.ExportGeoJSON()
	if err != nil {
		log.Printf("Failed to export annotations: %v", err)
		c.JSON(http.StatusInternalServerError, utils.CreateErrorResponse(
			"INTERNAL_ERROR", "Failed to export annotations"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="annotations.geojson"`)
	c.Data(http.StatusOK, "application/geo+json", data)
}

func (h *DroughtHandler) ImportAnnotations(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(
			"INVALID_REQUEST_FORMAT", "Failed to read request body"))
		return
	}

	imported, err := h.board.ImportGeoJSON(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(
			"VALIDATION_ERROR", err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"imported": imported,
		"count":    len(h.board.List()),
	}))
}
