// Package shared contains guards and helpers used by every use case package.
package shared

import (
	"context"
	"log/slog"

	"github.com/financy/backend/internal/application/adapter"
	"github.com/financy/backend/internal/application/ledger"
	"github.com/financy/backend/internal/application/session"
	"github.com/financy/backend/internal/domain/entity"
	domainerror "github.com/financy/backend/internal/domain/error"
)

// ActiveUser resolves the logged in user of the session.
// A session whose user has since been deleted counts as logged out.
func ActiveUser(l *ledger.Ledger, sess *session.Session) (*entity.User, error) {
	if sess == nil {
		return nil, domainerror.NewUserError(
			domainerror.ErrCodeSessionNotFound,
			"session not found",
			domainerror.ErrSessionNotFound,
		)
	}

	userID, ok := sess.ActiveUser()
	if !ok {
		return nil, domainerror.NewUserError(
			domainerror.ErrCodeNotLoggedIn,
			"no user logged in",
			domainerror.ErrNotLoggedIn,
		)
	}

	user, ok := l.User(userID)
	if !ok {
		return nil, domainerror.NewUserError(
			domainerror.ErrCodeNotLoggedIn,
			"logged in user no longer exists",
			domainerror.ErrNotLoggedIn,
		)
	}
	return user, nil
}

// FindUser looks up a user, returning a coded not-found error.
func FindUser(l *ledger.Ledger, userID uint32) (*entity.User, error) {
	user, ok := l.User(userID)
	if !ok {
		return nil, domainerror.NewUserError(
			domainerror.ErrCodeUserNotFound,
			"user not found",
			domainerror.ErrUserNotFound,
		)
	}
	return user, nil
}

// AccessibleAccount returns the account if userID owns or shares it.
func AccessibleAccount(l *ledger.Ledger, userID, accountID uint32) (*entity.Account, error) {
	account, ok := l.Account(accountID)
	if !ok {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeAccountNotFound,
			"account not found",
			domainerror.ErrAccountNotFound,
		)
	}

	if !account.HasAccess(userID) {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeAccountAccessDenied,
			"account is not shared with user",
			domainerror.ErrAccountAccessDenied,
		)
	}
	return account, nil
}

// OwnedAccount returns the account if userID owns it.
func OwnedAccount(l *ledger.Ledger, userID, accountID uint32) (*entity.Account, error) {
	account, err := AccessibleAccount(l, userID, accountID)
	if err != nil {
		return nil, err
	}

	if !account.IsOwnedBy(userID) {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeNotAccountOwner,
			"only the account owner can perform this operation",
			domainerror.ErrNotAccountOwner,
		)
	}
	return account, nil
}

// Publish sends a change event. Failures are logged and never returned: the
// change is already persisted and consumers can resynchronize from storage.
func Publish(ctx context.Context, publisher adapter.ChangePublisher, l *ledger.Ledger, event adapter.ChangeEvent) {
	if publisher == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = l.Now()
	}

	if err := publisher.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish change event",
			"kind", event.Kind,
			"action", event.Action,
			"id", event.ID,
			"error", err,
		)
	}
}
