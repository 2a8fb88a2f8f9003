package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"agriscan/internal/database/minio"
	"agriscan/internal/models"
	"agriscan/internal/repository"
)

const imageURLExpiry = time.Hour

type IReportService interface {
	GetReports(ctx context.Context, q *models.ReportQuery) ([]models.Report, int, error)
	GetReportByID(ctx context.Context, reportID string) (*models.Report, error)
	ReviewReport(reportID, reviewedBy string, req *models.UpdateReportStatusRequest) error
}

type ReportService struct {
	reportRepo  repository.IReportRepository
	minioClient *minio.MinioClient
}

func NewReportService(reportRepo repository.IReportRepository, minioClient *minio.MinioClient) IReportService {
	return &ReportService{
		reportRepo:  reportRepo,
		minioClient: minioClient,
	}
}

func (s *ReportService) GetReports(ctx context.Context, q *models.ReportQuery) ([]models.Report, int, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 10
	}

	rows, count, err := s.reportRepo.GetReports(q)
	if err != nil {
		return nil, 0, err
	}

	reports := make([]models.Report, 0, len(rows))
	for i := range rows {
		reports = append(reports, s.toReportWithImage(ctx, &rows[i]))
	}
	return reports, count, nil
}

func (s *ReportService) GetReportByID(ctx context.Context, reportID string) (*models.Report, error) {
	row, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		return nil, err
	}
	report := s.toReportWithImage(ctx, row)
	return &report, nil
}

func (s *ReportService) ReviewReport(reportID, reviewedBy string, req *models.UpdateReportStatusRequest) error {
	if req.Status != models.ReportStatusReviewed {
		return fmt.Errorf("invalid status transition: %s", req.Status)
	}
	return s.reportRepo.UpdateReportStatus(reportID, reviewedBy, req)
}

func (s *ReportService) toReportWithImage(ctx context.Context, row *models.ReportRow) models.Report {
	report := row.ToReport()
	if row.ImagePath.Valid && s.minioClient != nil {
		url, err := s.minioClient.PresignedImageURL(ctx, row.ImagePath.String, imageURLExpiry)
		if err != nil {
			log.Printf("failed to presign image for report %s: %v", row.ReportID, err)
		} else {
			report.ImageURL = url
		}
	}
	return report
}
