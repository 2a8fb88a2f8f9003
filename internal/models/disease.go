package models

import "github.com/lib/pq"

// Disease is read-only reference data. The wire shape is snake_case, the
// dashboard normalizes it on its side.
type Disease struct {
	ID          string  `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description string  `json:"description" db:"description"`
	Symptoms    *string `json:"symptoms,omitempty" db:"symptoms"`
	Treatment   string  `json:"treatment" db:"treatment"`
	Severity    string  `json:"severity" db:"severity"`
	PlantTypeID string  `json:"plant_type_id" db:"plant_type_id"`
	PlantType   string  `json:"plant_type" db:"plant_type"`
	ImageURL    *string `json:"image_url,omitempty" db:"image_url"`
}

type Plant struct {
	ID             string         `json:"id" db:"id"`
	Name           string         `json:"name" db:"name"`
	ScientificName string         `json:"scientificName" db:"scientific_name"`
	CommonDiseases pq.StringArray `json:"commonDiseases" db:"common_diseases"`
}
