// Package dto defines data transfer objects for API requests and responses.
package dto

import "github.com/financy/backend/internal/application/session"

// SessionResponse represents a session in API responses.
type SessionResponse struct {
	ID                string  `json:"id"`
	UserID            *uint32 `json:"userId"`
	SelectedAccountID *uint32 `json:"selectedAccountId"`
}

// ToSessionResponse converts a session to a SessionResponse DTO.
func ToSessionResponse(s *session.Session) SessionResponse {
	return SessionResponse{
		ID:                s.ID,
		UserID:            s.UserID,
		SelectedAccountID: s.SelectedAccountID,
	}
}
