package repository

import (
	"fmt"
	"log"

	"agriscan/internal/models"

	"github.com/jmoiron/sqlx"
)

type IPlantRepository interface {
	GetPlants() ([]models.Plant, error)
	GetPlantByID(plantID string) (*models.Plant, error)
}

type PlantRepository struct {
	db *sqlx.DB
}

func NewPlantRepository(db *sqlx.DB) IPlantRepository {
	return &PlantRepository{db: db}
}

func (r *PlantRepository) GetPlants() ([]models.Plant, error) {
	plants := []models.Plant{}
	if err := r.db.Select(&plants, "SELECT * FROM plants ORDER BY name"); err != nil {
		log.Printf("Error fetching plants: %v", err)
		return nil, fmt.Errorf("failed to fetch plants: %w", err)
	}
	return plants, nil
}

func (r *PlantRepository) GetPlantByID(plantID string) (*models.Plant, error) {
	var plant models.Plant
	err := r.db.Get(&plant, "SELECT * FROM plants WHERE id = $1", plantID)
	if err != nil {
		log.Printf("Error fetching plant %s: %v", plantID, err)
		return nil, err
	}
	return &plant, nil
}
