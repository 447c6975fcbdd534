package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ArchiveService stores generated reports in S3 so they survive the
// local reports directory. It is optional; the reporter works without
// one.
type ArchiveService struct {
	s3Client *s3.Client
	bucket   string
	region   string
}

// NewArchiveService creates an archive service instance.
// For LocalStack: endpoint should be "http://localhost:4566".
// For production AWS: endpoint should be "".
func NewArchiveService(bucket, region, endpoint string) (*ArchiveService, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket cannot be empty")
	}
	if region == "" {
		return nil, fmt.Errorf("region cannot be empty")
	}

	ctx := context.Background()

	if endpoint != "" {
		// LocalStack accepts any credentials
		cfg, err := config.LoadDefaultConfig(ctx,
			config.WithRegion(region),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				"test", "test", "",
			)),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		client := s3.NewFromConfig(cfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true // Required for LocalStack
		})

		return &ArchiveService{s3Client: client, bucket: bucket, region: region}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &ArchiveService{s3Client: s3.NewFromConfig(cfg), bucket: bucket, region: region}, nil
}

// GenerateReportKey creates a unique S3 key for a report.
// Format: reports/{reportType}/{timestamp}-{uniqueID}.json
func (s *ArchiveService) GenerateReportKey(reportType string) (string, error) {
	if reportType == "" {
		return "", fmt.Errorf("reportType cannot be empty")
	}

	timestamp := time.Now().UTC().Unix()
	uniqueID := uuid.New().String()[:8]

	return fmt.Sprintf("reports/%s/%d-%s.json", reportType, timestamp, uniqueID), nil
}

// UploadReport stores a rendered report body under key
func (s *ArchiveService) UploadReport(ctx context.Context, key string, body []byte) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	if s.s3Client == nil {
		return fmt.Errorf("s3 client is not initialized")
	}

	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload report to S3: %w", err)
	}

	return nil
}

// DownloadReport fetches an archived report and returns a reader
func (s *ArchiveService) DownloadReport(ctx context.Context, key string) (io.ReadCloser, error) {
	if key == "" {
		return nil, fmt.Errorf("key cannot be empty")
	}
	if s.s3Client == nil {
		return nil, fmt.Errorf("s3 client is not initialized")
	}

	result, err := s.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download report from S3: %w", err)
	}

	return result.Body, nil
}

// DeleteReport removes an archived report
func (s *ArchiveService) DeleteReport(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	if s.s3Client == nil {
		return fmt.Errorf("s3 client is not initialized")
	}

	_, err := s.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete report from S3: %w", err)
	}

	return nil
}
