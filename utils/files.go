// utils/files.go - Upload helpers
package utils

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxUploadSize is the largest accepted document, in bytes
const MaxUploadSize = 10 << 20

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".odt":  true,
	".txt":  true,
}

// IsAllowedDocument checks the file extension against the accepted formats
func IsAllowedDocument(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return allowedExtensions[ext]
}

// GenerateStoredFilename returns a unique on-disk name keeping the original extension
func GenerateStoredFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s%s", uuid.New().String(), ext)
}
