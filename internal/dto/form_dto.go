package dto

import (
	"time"

	"career-assistant-be/pkg/career"
)

type FieldResponse struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder,omitempty"`
	Required    bool   `json:"required"`
}

type FormResponse struct {
	Intent      career.Intent   `json:"intent"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Fields      []FieldResponse `json:"fields"`
}

type SubmitFormRequest struct {
	Values map[string]string `json:"values" validate:"required"`
}

type SubmitFormResponse struct {
	Intent      career.Intent `json:"intent"`
	Markup      string        `json:"markup"`
	CompletedAt time.Time     `json:"completed_at"`
}
