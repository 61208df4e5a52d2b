package extractor

import (
	"errors"
	"path/filepath"
	"strings"
)

var ErrUnsupportedUpload = errors.New("unsupported file type")

// acceptedExtensions mirrors the upload picker: pdf, docx, jpg, jpeg, png, txt.
var acceptedExtensions = map[string]struct{}{
	".pdf":  {},
	".docx": {},
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".txt":  {},
}

// Accepts reports whether the upload picker would offer fileName.
func Accepts(fileName string) bool {
	_, ok := acceptedExtensions[strings.ToLower(filepath.Ext(fileName))]
	return ok
}

// FailurePrefix is the user-facing lead-in for an extraction error.
func FailurePrefix(f Format) string {
	if f == FormatPDF {
		return "Error processing PDF"
	}
	return "Error processing file"
}
