package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewArchiveService tests the constructor
func TestNewArchiveService(t *testing.T) {
	tests := []struct {
		name     string
		bucket   string
		region   string
		endpoint string
		wantErr  bool
	}{
		{
			name:     "valid configuration with endpoint",
			bucket:   "ledgerview-reports",
			region:   "us-east-1",
			endpoint: "http://localhost:4566",
			wantErr:  false,
		},
		{
			name:     "valid configuration without endpoint",
			bucket:   "ledgerview-reports",
			region:   "eu-central-1",
			endpoint: "",
			wantErr:  false,
		},
		{
			name:     "empty bucket",
			bucket:   "",
			region:   "us-east-1",
			endpoint: "http://localhost:4566",
			wantErr:  true,
		},
		{
			name:     "empty region",
			bucket:   "ledgerview-reports",
			region:   "",
			endpoint: "http://localhost:4566",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, err := NewArchiveService(tt.bucket, tt.region, tt.endpoint)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, service)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, service)
				assert.NotNil(t, service.s3Client)
				assert.Equal(t, tt.bucket, service.bucket)
				assert.Equal(t, tt.region, service.region)
			}
		})
	}
}

// TestGenerateReportKey tests the archive key format
func TestGenerateReportKey(t *testing.T) {
	service := &ArchiveService{}

	tests := []struct {
		name       string
		reportType string
		wantErr    bool
	}{
		{name: "dashboard report", reportType: "dashboard"},
		{name: "category report", reportType: "category"},
		{name: "empty report type", reportType: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := service.GenerateReportKey(tt.reportType)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, key)
				return
			}

			require.NoError(t, err)

			// Format: reports/{reportType}/{timestamp}-{uniqueID}.json
			parts := strings.Split(key, "/")
			require.Equal(t, 3, len(parts), "key should have 3 parts separated by /")
			assert.Equal(t, "reports", parts[0])
			assert.Equal(t, tt.reportType, parts[1])
			assert.True(t, strings.HasSuffix(parts[2], ".json"))
			assert.Contains(t, parts[2], "-")
		})
	}
}

// TestGenerateReportKey_Unique tests that successive keys never collide
func TestGenerateReportKey_Unique(t *testing.T) {
	service := &ArchiveService{}

	first, err := service.GenerateReportKey("dashboard")
	require.NoError(t, err)
	second, err := service.GenerateReportKey("dashboard")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

// TestUploadReport_Validation tests input validation before any S3 call
func TestUploadReport_Validation(t *testing.T) {
	service := &ArchiveService{bucket: "ledgerview-reports"}
	ctx := context.Background()

	err := service.UploadReport(ctx, "", []byte(`{}`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "key cannot be empty")

	err = service.UploadReport(ctx, "reports/dashboard/1-abcd.json", []byte(`{}`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")
}

// TestDownloadReport_Validation tests input validation before any S3 call
func TestDownloadReport_Validation(t *testing.T) {
	service := &ArchiveService{bucket: "ledgerview-reports"}
	ctx := context.Background()

	reader, err := service.DownloadReport(ctx, "")
	assert.Error(t, err)
	assert.Nil(t, reader)

	reader, err = service.DownloadReport(ctx, "reports/dashboard/1-abcd.json")
	assert.Error(t, err)
	assert.Nil(t, reader)
	assert.Contains(t, err.Error(), "not initialized")
}

// TestDeleteReport_Validation tests input validation before any S3 call
func TestDeleteReport_Validation(t *testing.T) {
	service := &ArchiveService{bucket: "ledgerview-reports"}
	ctx := context.Background()

	err := service.DeleteReport(ctx, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "key cannot be empty")

	err = service.DeleteReport(ctx, "reports/dashboard/1-abcd.json")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")
}
