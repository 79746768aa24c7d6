// Package user contains user and session use cases.
package user

import (
	"context"
	"fmt"

	"github.com/financy/backend/internal/application/adapter"
	"github.com/financy/backend/internal/application/ledger"
	"github.com/financy/backend/internal/application/session"
	"github.com/financy/backend/internal/application/usecase/account"
	"github.com/financy/backend/internal/application/usecase/shared"
)

// DeleteUserInput represents the input for user deletion.
type DeleteUserInput struct {
	UserID uint32
	// Session is optional. When its active user is the deleted one it is
	// logged out.
	Session *session.Session
}

// DeleteUserOutput represents the output of user deletion.
type DeleteUserOutput struct {
	DeletedAccounts  int
	LeftAccounts     int
	RemovedPurchases int
}

// DeleteUserUseCase removes a user together with the accounts they own. The
// user leaves every account shared with them, taking their purchases along.
type DeleteUserUseCase struct {
	ledger       *ledger.Ledger
	userRepo     adapter.UserRepository
	remover      *account.Remover
	sessionStore adapter.SessionStore
	publisher    adapter.ChangePublisher
}

// NewDeleteUserUseCase creates a new DeleteUserUseCase instance.
func NewDeleteUserUseCase(
	l *ledger.Ledger,
	userRepo adapter.UserRepository,
	accountRepo adapter.AccountRepository,
	purchaseRepo adapter.PurchaseRepository,
	sessionStore adapter.SessionStore,
	publisher adapter.ChangePublisher,
) *DeleteUserUseCase {
	return &DeleteUserUseCase{
		ledger:       l,
		userRepo:     userRepo,
		remover:      account.NewRemover(l, accountRepo, purchaseRepo),
		sessionStore: sessionStore,
		publisher:    publisher,
	}
}

// Execute performs the user deletion.
func (uc *DeleteUserUseCase) Execute(ctx context.Context, input DeleteUserInput) (*DeleteUserOutput, error) {
	user, err := shared.FindUser(uc.ledger, input.UserID)
	if err != nil {
		return nil, err
	}

	output := &DeleteUserOutput{}
	for _, owned := range uc.ledger.OwnedBy(user.ID) {
		removed, err := uc.remover.Delete(ctx, owned)
		if err != nil {
			return nil, err
		}
		output.DeletedAccounts++
		output.RemovedPurchases += removed
	}

	for _, sharedAccount := range uc.ledger.SharedWith(user.ID) {
		removed, err := uc.remover.Withhold(ctx, sharedAccount, user.ID)
		if err != nil {
			return nil, err
		}
		output.LeftAccounts++
		output.RemovedPurchases += removed
	}

	if err := uc.userRepo.Delete(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	uc.ledger.RemoveUser(user.ID)

	if input.Session != nil {
		if active, ok := input.Session.ActiveUser(); ok && active == user.ID {
			if previousID, ok := input.Session.Logout(); ok {
				release(uc.ledger, previousID)
			}
			if err := uc.sessionStore.Save(ctx, input.Session); err != nil {
				return nil, fmt.Errorf("failed to save session: %w", err)
			}
		}
	}

	shared.Publish(ctx, uc.publisher, uc.ledger, adapter.ChangeEvent{
		Kind:   adapter.EntityUser,
		Action: adapter.ActionDeleted,
		ID:     user.ID,
		UserID: user.ID,
	})

	return output, nil
}
