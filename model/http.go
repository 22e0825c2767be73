package model

import "time"

type ChatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

type ChatResponse struct {
	SessionID string `json:"session_id"`
	Content   string `json:"content"`
	SheetPath string `json:"sheet_path,omitempty"`
}

type CleanRequest struct {
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	RawText string `json:"raw_text"`
}

type SheetInfo struct {
	Name      string    `json:"name"`
	SheetPath string    `json:"sheet_path"`
	StripPath string    `json:"strip_path,omitempty"`
	DataPath  string    `json:"data_path"`
	SavedAt   time.Time `json:"saved_at"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
