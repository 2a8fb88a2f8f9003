package minio

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"strconv"
	"time"

	"agriscan/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const ReportImageBucket = "report-images"

type MinioClient struct {
	client *minio.Client
}

func NewMinioClient(cfg config.MinioConfig) (*MinioClient, error) {
	isSecure, err := strconv.ParseBool(cfg.MinioSecure)
	if err != nil {
		log.Printf("Invalid value for MinIO secure flag: %v. Defaulting to false.", err)
		isSecure = false
	}
	minioClient, err := minio.New(cfg.MinioUrl, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: isSecure,
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to MinIO: %w", err)
	}

	if err := ensureBucket(minioClient, ReportImageBucket, cfg.MinioLocation); err != nil {
		return nil, err
	}

	return &MinioClient{client: minioClient}, nil
}

func ensureBucket(client *minio.Client, bucketName, location string) error {
	ctx := context.Background()
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucketName, err)
	}
	if !exists {
		err = client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location})
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucketName, err)
		}
		log.Printf("Bucket %s created", bucketName)
	}
	return nil
}

func (m *MinioClient) UploadReportImage(ctx context.Context, objectName, contentType string, reader io.Reader, size int64) error {
	_, err := m.client.PutObject(ctx, ReportImageBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload report image %s: %w", objectName, err)
	}
	return nil
}

// PresignedImageURL returns a time-limited GET URL for a stored report image.
func (m *MinioClient) PresignedImageURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	reqParams := make(url.Values)
	presigned, err := m.client.PresignedGetObject(ctx, ReportImageBucket, objectName, expiry, reqParams)
	if err != nil {
		return "", fmt.Errorf("failed to presign image URL for %s: %w", objectName, err)
	}
	return presigned.String(), nil
}
