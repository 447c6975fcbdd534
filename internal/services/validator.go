package services

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidationResult contains the results of operations-file validation
type ValidationResult struct {
	Valid        bool
	DetectedType string // "CSV" or "XLSX"
	Size         int64
	Errors       []string
	Warnings     []string
}

// FileValidator checks an operations spreadsheet before parsing: it
// must exist, stay under the size cap, carry a supported extension and
// match its magic bytes.
type FileValidator struct {
	maxSizeBytes int64
}

// xlsxMagicBytes is the ZIP signature; an XLSX file is a ZIP archive
var xlsxMagicBytes = []byte{0x50, 0x4B, 0x03, 0x04}

var supportedExtensions = map[string]string{
	".csv":  "CSV",
	".xlsx": "XLSX",
	".xls":  "XLSX",
}

// NewFileValidator creates a validator with the specified maximum file size
func NewFileValidator(maxSizeBytes int64) *FileValidator {
	return &FileValidator{maxSizeBytes: maxSizeBytes}
}

// ValidateFile inspects the operations file at path
func (v *FileValidator) ValidateFile(path string) (ValidationResult, error) {
	result := ValidationResult{}

	info, err := os.Stat(path)
	if err != nil {
		return result, fmt.Errorf("operations file not readable: %w", err)
	}
	result.Size = info.Size()

	if result.Size == 0 {
		result.Errors = append(result.Errors, "file is empty")
	}
	if v.maxSizeBytes > 0 && result.Size > v.maxSizeBytes {
		result.Errors = append(result.Errors,
			fmt.Sprintf("file size %d exceeds limit %d", result.Size, v.maxSizeBytes))
	}

	ext := strings.ToLower(filepath.Ext(path))
	detected, ok := supportedExtensions[ext]
	if !ok {
		result.Errors = append(result.Errors, fmt.Sprintf("unsupported extension %q", ext))
		return result, nil
	}
	result.DetectedType = detected

	if detected == "XLSX" {
		header := make([]byte, len(xlsxMagicBytes))
		f, err := os.Open(path)
		if err != nil {
			return result, fmt.Errorf("operations file not readable: %w", err)
		}
		defer f.Close()

		n, _ := f.Read(header)
		if n < len(xlsxMagicBytes) || !bytes.Equal(header[:len(xlsxMagicBytes)], xlsxMagicBytes) {
			result.Errors = append(result.Errors, "file does not look like a workbook")
		}
	} else if detected == "CSV" && result.Size > 0 {
		// CSV has no magic bytes; flag obviously binary content
		f, err := os.Open(path)
		if err != nil {
			return result, fmt.Errorf("operations file not readable: %w", err)
		}
		defer f.Close()

		head := make([]byte, 512)
		n, _ := f.Read(head)
		if bytes.ContainsRune(head[:n], 0x00) {
			result.Warnings = append(result.Warnings, "file contains binary data, may not be CSV")
		}
	}

	result.Valid = len(result.Errors) == 0
	return result, nil
}
