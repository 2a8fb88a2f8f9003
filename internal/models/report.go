package models

import (
	"database/sql"
	"time"
)

type ReportStatus string

const (
	ReportStatusSubmitted ReportStatus = "submitted"
	ReportStatusReviewed  ReportStatus = "reviewed"
)

// Detection field names stay snake_case on the wire while the rest of the
// report is camelCase. The dashboard reads them that way.
type PlantDetection struct {
	PlantID    string  `json:"plantId"`
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

type DiseaseDetection struct {
	DiseaseID  string  `json:"diseaseId"`
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

type PestDetection struct {
	PestID     string  `json:"pestId"`
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

type DroughtDetection struct {
	Confidence   float64 `json:"confidence"`
	Description  string  `json:"description"`
	DroughtLevel int     `json:"droughtLevel"`
}

type Report struct {
	ReportID         string            `json:"reportId"`
	UserID           string            `json:"userId,omitempty"`
	Status           ReportStatus      `json:"status"`
	GpsLat           float64           `json:"gpsLat"`
	GpsLng           float64           `json:"gpsLng"`
	City             string            `json:"city"`
	State            string            `json:"state"`
	ImageURL         string            `json:"imageUrl,omitempty"`
	PlantDetection   *PlantDetection   `json:"plant_detection,omitempty"`
	DiseaseDetection *DiseaseDetection `json:"disease_detection,omitempty"`
	PestDetection    *PestDetection    `json:"pest_detection,omitempty"`
	DroughtDetection *DroughtDetection `json:"drought_detection,omitempty"`
	ReviewedBy       *string           `json:"reviewedBy"`
	ReviewedAt       *time.Time        `json:"reviewedAt"`
	ReviewNotes      string            `json:"reviewNotes"`
	Timestamp        time.Time         `json:"timestamp"`
}

// ReportRow is the flattened database shape. Detections are nullable column
// groups assembled into sub-objects before leaving the repository.
type ReportRow struct {
	ReportID           string          `db:"report_id"`
	UserID             string          `db:"user_id"`
	Status             ReportStatus    `db:"status"`
	GpsLat             float64         `db:"gps_lat"`
	GpsLng             float64         `db:"gps_lng"`
	City               string          `db:"city"`
	State              string          `db:"state"`
	ImagePath          sql.NullString  `db:"image_path"`
	PlantID            sql.NullString  `db:"plant_id"`
	PlantName          sql.NullString  `db:"plant_name"`
	PlantConfidence    sql.NullFloat64 `db:"plant_confidence"`
	DiseaseID          sql.NullString  `db:"disease_id"`
	DiseaseName        sql.NullString  `db:"disease_name"`
	DiseaseConfidence  sql.NullFloat64 `db:"disease_confidence"`
	PestID             sql.NullString  `db:"pest_id"`
	PestName           sql.NullString  `db:"pest_name"`
	PestConfidence     sql.NullFloat64 `db:"pest_confidence"`
	DroughtConfidence  sql.NullFloat64 `db:"drought_confidence"`
	DroughtDescription sql.NullString  `db:"drought_description"`
	DroughtLevel       sql.NullInt64   `db:"drought_level"`
	ReviewedBy         sql.NullString  `db:"reviewed_by"`
	ReviewedAt         sql.NullTime    `db:"reviewed_at"`
	ReviewNotes        sql.NullString  `db:"review_notes"`
	Timestamp          time.Time       `db:"timestamp"`
}

func (r *ReportRow) ToReport() Report {
	report := Report{
		ReportID:    r.ReportID,
		UserID:      r.UserID,
		Status:      r.Status,
		GpsLat:      r.GpsLat,
		GpsLng:      r.GpsLng,
		City:        r.City,
		State:       r.State,
		ReviewNotes: r.ReviewNotes.String,
		Timestamp:   r.Timestamp,
	}
	if r.PlantID.Valid {
		report.PlantDetection = &PlantDetection{
			PlantID:    r.PlantID.String,
			Name:       r.PlantName.String,
			Confidence: r.PlantConfidence.Float64,
		}
	}
	if r.DiseaseID.Valid {
		report.DiseaseDetection = &DiseaseDetection{
			DiseaseID:  r.DiseaseID.String,
			Name:       r.DiseaseName.String,
			Confidence: r.DiseaseConfidence.Float64,
		}
	}
	if r.PestID.Valid {
		report.PestDetection = &PestDetection{
			PestID:     r.PestID.String,
			Name:       r.PestName.String,
			Confidence: r.PestConfidence.Float64,
		}
	}
	if r.DroughtConfidence.Valid {
		report.DroughtDetection = &DroughtDetection{
			Confidence:   r.DroughtConfidence.Float64,
			Description:  r.DroughtDescription.String,
			DroughtLevel: int(r.DroughtLevel.Int64),
		}
	}
	if r.ReviewedBy.Valid {
		reviewedBy := r.ReviewedBy.String
		report.ReviewedBy = &reviewedBy
	}
	if r.ReviewedAt.Valid {
		reviewedAt := r.ReviewedAt.Time
		report.ReviewedAt = &reviewedAt
	}
	return report
}
