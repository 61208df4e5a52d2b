package dto

import "career-assistant-be/internal/session"

type EnterNameRequest struct {
	DisplayName string `json:"display_name" validate:"required,max=100"`
}

type PreferencesRequest struct {
	DarkMode *bool `json:"dark_mode" validate:"required"`
}

type ActivateRequest struct {
	Intent string `json:"intent" validate:"required"`
}

// SessionResponse is returned on restore and on name entry. Known is false
// when the caller has to be asked for a display name.
type SessionResponse struct {
	Known bool             `json:"known"`
	Token string           `json:"token,omitempty"`
	State session.Snapshot `json:"state"`
}
