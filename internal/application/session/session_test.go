package session

import "testing"

func TestSession_SelectionStateMachine(t *testing.T) {
	s := New("abc")

	if s.IsLoggedIn() {
		t.Fatal("expected new session to be logged out")
	}

	if _, had := s.Login(1); had {
		t.Error("expected no previous selection on login")
	}
	if userID, ok := s.ActiveUser(); !ok || userID != 1 {
		t.Errorf("expected active user 1, got %d (%v)", userID, ok)
	}

	t.Run("select from unselected", func(t *testing.T) {
		if _, had := s.Select(10); had {
			t.Error("expected nothing to deselect")
		}
		if id, ok := s.SelectedAccount(); !ok || id != 10 {
			t.Errorf("expected selected account 10, got %d (%v)", id, ok)
		}
	})

	t.Run("reselect same account", func(t *testing.T) {
		if _, had := s.Select(10); had {
			t.Error("expected reselecting the same account not to deselect it")
		}
	})

	t.Run("select another account deselects previous", func(t *testing.T) {
		previous, had := s.Select(20)
		if !had || previous != 10 {
			t.Errorf("expected previous selection 10, got %d (%v)", previous, had)
		}
	})

	t.Run("deselect", func(t *testing.T) {
		previous, had := s.Deselect()
		if !had || previous != 20 {
			t.Errorf("expected previous selection 20, got %d (%v)", previous, had)
		}
		if _, ok := s.SelectedAccount(); ok {
			t.Error("expected no selection")
		}
	})

	t.Run("logout clears everything", func(t *testing.T) {
		s.Select(30)
		previous, had := s.Logout()
		if !had || previous != 30 {
			t.Errorf("expected previous selection 30, got %d (%v)", previous, had)
		}
		if s.IsLoggedIn() || s.SelectedAccountID != nil {
			t.Error("expected session to be cleared")
		}
	})

	t.Run("login replaces user and drops selection", func(t *testing.T) {
		s.Login(1)
		s.Select(40)
		previous, had := s.Login(2)
		if !had || previous != 40 {
			t.Errorf("expected previous selection 40, got %d (%v)", previous, had)
		}
		if userID, _ := s.ActiveUser(); userID != 2 {
			t.Errorf("expected active user 2, got %d", userID)
		}
	})
}
