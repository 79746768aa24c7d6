// Package session holds the per-client context of the ledger: the logged in
// user and the account selected for detailed viewing.
package session

// Session is the explicit replacement for a process-wide "current user".
// Every use case that acts on behalf of a user receives one.
type Session struct {
	ID                string  `json:"id"`
	UserID            *uint32 `json:"userId,omitempty"`
	SelectedAccountID *uint32 `json:"selectedAccountId,omitempty"`
}

// New creates an empty session.
func New(id string) *Session {
	return &Session{ID: id}
}

// IsLoggedIn reports whether a user is active.
func (s *Session) IsLoggedIn() bool {
	return s.UserID != nil
}

// ActiveUser returns the logged in user id.
func (s *Session) ActiveUser() (uint32, bool) {
	if s.UserID == nil {
		return 0, false
	}
	return *s.UserID, true
}

// SelectedAccount returns the selected account id.
func (s *Session) SelectedAccount() (uint32, bool) {
	if s.SelectedAccountID == nil {
		return 0, false
	}
	return *s.SelectedAccountID, true
}

// Login makes userID the active user. Any selection belongs to the previous
// user and is dropped; the previously selected account id is returned so its
// history can be released.
func (s *Session) Login(userID uint32) (uint32, bool) {
	previous, hadSelection := s.SelectedAccount()
	s.UserID = &userID
	s.SelectedAccountID = nil
	return previous, hadSelection
}

// Logout clears the active user and the selection, returning the previously
// selected account id when there was one.
func (s *Session) Logout() (uint32, bool) {
	previous, hadSelection := s.SelectedAccount()
	s.UserID = nil
	s.SelectedAccountID = nil
	return previous, hadSelection
}

// Select marks accountID as selected. At most one account is selected at a
// time: the previously selected id, if any and different, is returned so the
// caller can deselect it first.
func (s *Session) Select(accountID uint32) (uint32, bool) {
	previous, hadSelection := s.SelectedAccount()
	s.SelectedAccountID = &accountID
	if hadSelection && previous == accountID {
		return 0, false
	}
	return previous, hadSelection
}

// Deselect clears the selection, returning the previously selected id.
func (s *Session) Deselect() (uint32, bool) {
	previous, hadSelection := s.SelectedAccount()
	s.SelectedAccountID = nil
	return previous, hadSelection
}
