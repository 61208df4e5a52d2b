package dto

import "career-assistant-be/pkg/extractor"

type UploadResponse struct {
	FileName string           `json:"file_name"`
	Format   extractor.Format `json:"format"`
	Text     string           `json:"text"`
	// Superseded is set when a newer upload started before this one finished;
	// the text was returned but not stored.
	Superseded bool `json:"superseded"`
}
