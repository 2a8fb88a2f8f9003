package repository

import (
	"fmt"
	"log"
	"strings"

	"agriscan/internal/models"
	"agriscan/utils"

	"github.com/jmoiron/sqlx"
)

type IReportRepository interface {
	CreateReport(row *models.ReportRow) error
	GetReports(q *models.ReportQuery) ([]models.ReportRow, int, error)
	GetReportByID(reportID string) (*models.ReportRow, error)
	UpdateReportStatus(reportID, reviewedBy string, req *models.UpdateReportStatusRequest) error
}

type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) IReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) CreateReport(row *models.ReportRow) error {
	query := `
        INSERT INTO reports (
            report_id, user_id, status, gps_lat, gps_lng, city, state, image_path,
            plant_id, plant_name, plant_confidence,
            disease_id, disease_name, disease_confidence,
            pest_id, pest_name, pest_confidence,
            drought_confidence, drought_description, drought_level,
            review_notes, timestamp
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
            $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
            $21, $22
        )
    `
	err := utils.ExecWithCheck(r.db, query, utils.ExecInsert,
		row.ReportID, row.UserID, row.Status, row.GpsLat, row.GpsLng, row.City, row.State, row.ImagePath,
		row.PlantID, row.PlantName, row.PlantConfidence,
		row.DiseaseID, row.DiseaseName, row.DiseaseConfidence,
		row.PestID, row.PestName, row.PestConfidence,
		row.DroughtConfidence, row.DroughtDescription, row.DroughtLevel,
		row.ReviewNotes, row.Timestamp,
	)
	if err != nil {
		log.Printf("Error creating report: %s", err.Error())
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// GetReports pages through reports newest-first. The count is taken from the
// same WHERE clause so the server total matches the filtered set.
func (r *ReportRepository) GetReports(q *models.ReportQuery) ([]models.ReportRow, int, error) {
	where := []string{}
	args := []interface{}{}
	argPos := 1

	if q.State != "" {
		where = append(where, fmt.Sprintf("state = $%d", argPos))
		args = append(args, q.State)
		argPos++
	}
	if q.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", argPos))
		args = append(args, q.Status)
		argPos++
	}
	switch q.DetectionType {
	case "disease":
		where = append(where, "disease_id IS NOT NULL")
	case "pest":
		where = append(where, "pest_id IS NOT NULL")
	case "drought":
		where = append(where, "drought_confidence IS NOT NULL")
	case "normal":
		where = append(where, "disease_id IS NULL AND pest_id IS NULL AND drought_confidence IS NULL")
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	var count int
	if err := r.db.Get(&count, "SELECT COUNT(*) FROM reports"+whereClause, args...); err != nil {
		log.Printf("Error counting reports: %v", err)
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT * FROM reports%s ORDER BY timestamp DESC LIMIT $%d OFFSET $%d",
		whereClause, argPos, argPos+1,
	)
	args = append(args, q.PageSize, (q.Page-1)*q.PageSize)

	rows := []models.ReportRow{}
	if err := r.db.Select(&rows, query, args...); err != nil {
		log.Printf("Error fetching reports: %v", err)
		return nil, 0, fmt.Errorf("failed to fetch reports: %w", err)
	}

	return rows, count, nil
}

func (r *ReportRepository) GetReportByID(reportID string) (*models.ReportRow, error) {
	var row models.ReportRow
	err := r.db.Get(&row, "SELECT * FROM reports WHERE report_id = $1", reportID)
	if err != nil {
		log.Printf("Error fetching report %s: %v", reportID, err)
		return nil, err
	}
	return &row, nil
}

func (r *ReportRepository) UpdateReportStatus(reportID, reviewedBy string, req *models.UpdateReportStatusRequest) error {
	query := `
        UPDATE reports SET
            status = $1,
            review_notes = $2,
            reviewed_by = $3,
            reviewed_at = now()
        WHERE report_id = $4
    `
	if err := utils.ExecWithCheck(r.db, query, utils.ExecUpdate,
		req.Status, req.ReviewNotes, reviewedBy, reportID); err != nil {
		return fmt.Errorf("failed to update report status: %w", err)
	}
	return nil
}
