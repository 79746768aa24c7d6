// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/financy/backend/internal/domain/entity"
)

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ParseOptionalDate parses a dd/MM/yyyy date, returning nil for an empty string.
func ParseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := entity.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func optionalDate(date time.Time) *string {
	if date.IsZero() {
		return nil
	}
	formatted := entity.FormatDate(date)
	return &formatted
}
