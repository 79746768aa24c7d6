package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/financy/backend/internal/application/adapter"
	"github.com/financy/backend/internal/application/adapter/adaptertest"
	"github.com/financy/backend/internal/application/ledger"
	"github.com/financy/backend/internal/domain/entity"
	domainerror "github.com/financy/backend/internal/domain/error"
)

type fixture struct {
	ledger    *ledger.Ledger
	users     *adaptertest.Store[*entity.User]
	accounts  *adaptertest.Store[*entity.Account]
	purchases *adaptertest.Store[*entity.Purchase]
	sessions  *adaptertest.SessionStore
	publisher *adaptertest.Publisher
}

// newFixture seeds user 0 owning account 0 (shared with user 1) and user 1
// owning account 1. Each user has one purchase on each account.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	users := adaptertest.NewUserStore()
	accounts := adaptertest.NewAccountStore()
	purchases := adaptertest.NewPurchaseStore()

	_ = users.Save(ctx, entity.NewUser(0, entity.UserParams{FirstName: "Ana"}))
	_ = users.Save(ctx, entity.NewUser(1, entity.UserParams{FirstName: "Bruno"}))

	first := entity.NewAccount(0, 0, entity.AccountParams{Name: "Ana card", ClosingDay: 20})
	first.SetSharedUserIDs([]uint32{1})
	_ = accounts.Save(ctx, first)
	second := entity.NewAccount(1, 1, entity.AccountParams{Name: "Bruno card", ClosingDay: 20})
	second.SetSharedUserIDs([]uint32{0})
	_ = accounts.Save(ctx, second)

	food := entity.PurchaseParams{Name: "Market", Date: entity.Day(2024, time.January, 15), Type: entity.PurchaseTypeFood, Value: decimal.NewFromInt(300), Installments: 3}
	_ = purchases.Save(ctx, entity.NewPurchase(0, 0, 0, food))
	_ = purchases.Save(ctx, entity.NewPurchase(1, 1, 0, food))
	_ = purchases.Save(ctx, entity.NewPurchase(2, 0, 1, food))
	_ = purchases.Save(ctx, entity.NewPurchase(3, 1, 1, food))

	clock := adapter.FixedClock{Time: time.Date(2024, time.January, 25, 12, 0, 0, 0, time.UTC)}
	l := ledger.New(users, accounts, purchases, clock, entity.DefaultPolicies())
	if _, err := l.Load(ctx); err != nil {
		t.Fatalf("failed to load ledger: %v", err)
	}

	return &fixture{
		ledger:    l,
		users:     users,
		accounts:  accounts,
		purchases: purchases,
		sessions:  adaptertest.NewSessionStore(),
		publisher: &adaptertest.Publisher{},
	}
}

func userCode(err error) domainerror.UserErrorCode {
	var userErr *domainerror.UserError
	if errors.As(err, &userErr) {
		return userErr.Code
	}
	return ""
}

func TestCreateUserUseCase(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateUserUseCase(f.ledger, f.users, f.publisher)

	tests := []struct {
		name       string
		input      CreateUserInput
		expectedID uint32
		code       domainerror.UserErrorCode
	}{
		{name: "missing first name", input: CreateUserInput{FirstName: "  ", LastName: "Souza"}, code: domainerror.ErrCodeMissingFirstName},
		{name: "first user after seed", input: CreateUserInput{FirstName: "Carla"}, expectedID: 2},
		{name: "ids keep growing", input: CreateUserInput{FirstName: "Davi", PrimaryColor: "#112233"}, expectedID: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := uc.Execute(context.Background(), tt.input)
			if tt.code != "" {
				if userCode(err) != tt.code {
					t.Errorf("expected %s, got %v", tt.code, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if output.User.ID != tt.expectedID {
				t.Errorf("expected id %d, got %d", tt.expectedID, output.User.ID)
			}
			if _, ok := f.ledger.User(tt.expectedID); !ok {
				t.Error("expected user registered in ledger")
			}
		})
	}

	created, _ := f.users.Get(3)
	if created.PrimaryColor != "#112233" || created.SecondaryColor != entity.DefaultSecondaryColor {
		t.Errorf("expected custom primary and default secondary colors, got %s and %s", created.PrimaryColor, created.SecondaryColor)
	}
	if event, ok := f.publisher.Last(); !ok || event.Kind != adapter.EntityUser || event.Action != adapter.ActionCreated {
		t.Errorf("expected user created event, got %+v", event)
	}
}

func TestEditUserUseCase(t *testing.T) {
	f := newFixture(t)
	uc := NewEditUserUseCase(f.ledger, f.users, f.publisher)

	output, err := uc.Execute(context.Background(), EditUserInput{
		UserID:          0,
		CreateUserInput: CreateUserInput{FirstName: "Ana", LastName: "Lima"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.User.FullName() != "Ana Lima" {
		t.Errorf("expected Ana Lima, got %s", output.User.FullName())
	}

	t.Run("rolls back on write failure", func(t *testing.T) {
		f.users.WriteErr = errors.New("disk full")
		defer func() { f.users.WriteErr = nil }()

		_, err := uc.Execute(context.Background(), EditUserInput{
			UserID:          0,
			CreateUserInput: CreateUserInput{FirstName: "Other"},
		})
		if err == nil {
			t.Fatal("expected error")
		}
		user, _ := f.ledger.User(0)
		if user.FirstName != "Ana" {
			t.Errorf("expected first name restored, got %s", user.FirstName)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), EditUserInput{UserID: 9, CreateUserInput: CreateUserInput{FirstName: "X"}})
		if !errors.Is(err, domainerror.ErrUserNotFound) {
			t.Errorf("expected user not found, got %v", err)
		}
	})
}

func TestDeleteUserUseCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess, _ := f.sessions.Create(ctx)
	sess.Login(0)
	sess.Select(0)

	uc := NewDeleteUserUseCase(f.ledger, f.users, f.accounts, f.purchases, f.sessions, f.publisher)
	output, err := uc.Execute(ctx, DeleteUserInput{UserID: 0, Session: sess})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.DeletedAccounts != 1 || output.LeftAccounts != 1 {
		t.Errorf("expected 1 deleted and 1 left account, got %+v", output)
	}
	if output.RemovedPurchases != 3 {
		t.Errorf("expected 3 removed purchases, got %d", output.RemovedPurchases)
	}

	if _, ok := f.ledger.User(0); ok {
		t.Error("expected user removed from ledger")
	}
	if _, ok := f.ledger.Account(0); ok {
		t.Error("expected owned account removed")
	}
	remaining, ok := f.ledger.Account(1)
	if !ok || remaining.IsSharingWith(0) {
		t.Error("expected shared account kept without the deleted user")
	}
	if f.purchases.Len() != 1 {
		t.Errorf("expected 1 stored purchase, got %d", f.purchases.Len())
	}
	if sess.IsLoggedIn() {
		t.Error("expected session to be logged out")
	}
}

func TestSessionUseCases(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := NewCreateSessionUseCase(f.sessions).Execute(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sess := created.Session

	t.Run("logout requires login", func(t *testing.T) {
		_, err := NewLogoutUserUseCase(f.ledger, f.sessions).Execute(ctx, LogoutUserInput{Session: sess})
		if userCode(err) != domainerror.ErrCodeNotLoggedIn {
			t.Errorf("expected not logged in, got %v", err)
		}
	})

	t.Run("login unknown user", func(t *testing.T) {
		_, err := NewLoginUserUseCase(f.ledger, f.sessions).Execute(ctx, LoginUserInput{Session: sess, UserID: 7})
		if userCode(err) != domainerror.ErrCodeUserNotFound {
			t.Errorf("expected user not found, got %v", err)
		}
	})

	t.Run("login switches user and releases selection", func(t *testing.T) {
		login := NewLoginUserUseCase(f.ledger, f.sessions)
		if _, err := login.Execute(ctx, LoginUserInput{Session: sess, UserID: 0}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		account, _ := f.ledger.Account(0)
		sess.Select(0)
		account.RefreshHistory(f.ledger.Today())

		output, err := login.Execute(ctx, LoginUserInput{Session: sess, UserID: 1})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.User.ID != 1 {
			t.Errorf("expected user 1, got %d", output.User.ID)
		}
		if _, ok := sess.SelectedAccount(); ok {
			t.Error("expected selection to be cleared")
		}
		if account.HasHistory() {
			t.Error("expected history to be released")
		}

		stored, _ := f.sessions.Get(ctx, sess.ID)
		if id, ok := stored.ActiveUser(); !ok || id != 1 {
			t.Errorf("expected stored active user 1, got %d (%v)", id, ok)
		}
	})

	t.Run("logout then end", func(t *testing.T) {
		if _, err := NewLogoutUserUseCase(f.ledger, f.sessions).Execute(ctx, LogoutUserInput{Session: sess}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sess.IsLoggedIn() {
			t.Error("expected logged out session")
		}

		if err := NewEndSessionUseCase(f.ledger, f.sessions).Execute(ctx, EndSessionInput{Session: sess}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := f.sessions.Get(ctx, sess.ID); !errors.Is(err, domainerror.ErrSessionNotFound) {
			t.Errorf("expected session removed, got %v", err)
		}
	})
}

func TestListUsersUseCase(t *testing.T) {
	f := newFixture(t)

	output, err := NewListUsersUseCase(f.ledger).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Users) != 2 || output.Users[0].ID != 0 || output.Users[1].ID != 1 {
		t.Errorf("expected users 0 and 1 in order, got %d users", len(output.Users))
	}
}

func TestGetOverviewUseCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess, _ := f.sessions.Create(ctx)
	sess.Login(0)

	asOf := entity.Day(2024, time.February, 21)
	output, err := NewGetOverviewUseCase(f.ledger).Execute(ctx, GetOverviewInput{Session: sess, AsOf: &asOf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Four active food purchases of 100 per cycle across both accounts.
	if !output.DueAmount.Equal(decimal.NewFromInt(400)) {
		t.Errorf("expected due amount 400, got %s", output.DueAmount)
	}
	if !output.ExpenseMap["Food"].Equal(decimal.NewFromInt(400)) {
		t.Errorf("expected Food 400, got %s", output.ExpenseMap["Food"])
	}
	if len(output.Owned) != 1 || len(output.Shared) != 1 {
		t.Errorf("expected 1 owned and 1 shared account, got %d and %d", len(output.Owned), len(output.Shared))
	}
}
