package repository

import (
	"fmt"
	"log"

	"agriscan/internal/models"

	"github.com/jmoiron/sqlx"
)

type IDiseaseRepository interface {
	GetDiseases(plantTypeID string) ([]models.Disease, int, error)
	GetDiseaseByID(diseaseID string) (*models.Disease, error)
}

type DiseaseRepository struct {
	db *sqlx.DB
}

func NewDiseaseRepository(db *sqlx.DB) IDiseaseRepository {
	return &DiseaseRepository{db: db}
}

func (r *DiseaseRepository) GetDiseases(plantTypeID string) ([]models.Disease, int, error) {
	diseases := []models.Disease{}
	var err error
	if plantTypeID != "" {
		err = r.db.Select(&diseases, "SELECT * FROM diseases WHERE plant_type_id = $1 ORDER BY name", plantTypeID)
	} else {
		err = r.db.Select(&diseases, "SELECT * FROM diseases ORDER BY name")
	}
	if err != nil {
		log.Printf("Error fetching diseases: %v", err)
		return nil, 0, fmt.Errorf("failed to fetch diseases: %w", err)
	}
	return diseases, len(diseases), nil
}

func (r *DiseaseRepository) GetDiseaseByID(diseaseID string) (*models.Disease, error) {
	var disease models.Disease
	err := r.db.Get(&disease, "SELECT * FROM diseases WHERE id = $1", diseaseID)
	if err != nil {
		log.Printf("Error fetching disease %s: %v", diseaseID, err)
		return nil, err
	}
	return &disease, nil
}
