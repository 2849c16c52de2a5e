package constants

import (
	"path/filepath"
	"strings"
)

const (
	DocumentImage   = "image"
	DocumentPDF     = "pdf"
	DocumentUnknown = ""
)

// DetectDocumentKind menentukan jenis dokumen dari ekstensi atau content-type.
func DetectDocumentKind(filename, contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case strings.HasPrefix(ct, "image/jpeg"), strings.HasPrefix(ct, "image/png"), strings.HasPrefix(ct, "image/webp"):
		return DocumentImage
	case strings.HasPrefix(ct, "application/pdf"):
		return DocumentPDF
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpg", ".jpeg", ".webp":
		return DocumentImage
	case ".pdf":
		return DocumentPDF
	default:
		return DocumentUnknown
	}
}
