package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"agriscan/internal/repository"
	"agriscan/utils"

	"github.com/gin-gonic/gin"
)

type DiseaseHandler struct {
	diseaseRepo repository.IDiseaseRepository
	plantRepo   repository.IPlantRepository
	middleware  *Middleware
}

func NewDiseaseHandler(diseaseRepo repository.IDiseaseRepository, plantRepo repository.IPlantRepository, middleware *Middleware) *DiseaseHandler {
	return &DiseaseHandler{
		diseaseRepo: diseaseRepo,
		plantRepo:   plantRepo,
		middleware:  middleware,
	}
}

func (h *DiseaseHandler) RegisterRoutes(router *gin.Engine) {
	diseases := router.Group("/diseases", h.middleware.RequireAuth())
	diseases.GET("", h.GetDiseases)
	diseases.GET("/:id", h.GetDiseaseByID)

	plants := router.Group("/plants", h.middleware.RequireAuth())
	plants.GET("", h.GetPlants)
	plants.GET("/:id", h.GetPlantByID)
}

func (h *DiseaseHandler) GetDiseases(c *gin.Context) {
	plantTypeID := c.Query("plantTypeId")

	diseases, count, err := h.diseaseRepo.GetDiseases(plantTypeID)
	if err != nil {
		log.Printf("Failed to fetch diseases: %v", err)
		c.JSON(http.StatusInternalServerError, utils.CreateErrorResponse(
			"INTERNAL_ERROR", "Failed to fetch diseases"))
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"results": diseases,
		"count":   count,
	}))
}

func (h *DiseaseHandler) GetDiseaseByID(c *gin.Context) {
	diseaseID := c.Param("id")
	disease, err := h.diseaseRepo.GetDiseaseByID(diseaseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, utils.CreateErrorResponse(
				"DISEASE_NOT_FOUND", "disease not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.CreateErrorResponse(
			"INTERNAL_ERROR", "Failed to fetch disease"))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(disease))
}

func (h *DiseaseHandler) GetPlants(c *gin.Context) {
	plants, err := h.plantRepo.GetPlants()
	if err != nil {
		log.Printf("Failed to fetch plants: %v", err)
		c.JSON(http.StatusInternalServerError, utils.CreateErrorResponse(
			"INTERNAL_ERROR", "Failed to fetch plants"))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"results": plants,
		"count":   len(plants),
	}))
}

func (h *DiseaseHandler) GetPlantByID(c *gin.Context) {
	plantID := c.Param("id")
	plant, err := h.plantRepo.GetPlantByID(plantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, utils.CreateErrorResponse(
				"PLANT_NOT_FOUND", "plant not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.CreateErrorResponse(
			"INTERNAL_ERROR", "Failed to fetch plant"))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(plant))
}
