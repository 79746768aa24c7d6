package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/financy/backend/internal/application/adapter"
	"github.com/financy/backend/internal/application/adapter/adaptertest"
	"github.com/financy/backend/internal/application/ledger"
	"github.com/financy/backend/internal/application/session"
	"github.com/financy/backend/internal/domain/entity"
	domainerror "github.com/financy/backend/internal/domain/error"
)

type fixture struct {
	ledger    *ledger.Ledger
	accounts  *adaptertest.Store[*entity.Account]
	purchases *adaptertest.Store[*entity.Purchase]
	sessions  *adaptertest.SessionStore
	publisher *adaptertest.Publisher
	owner     *session.Session
	sharer    *session.Session
}

// newFixture seeds user 0 owning account 0 (shared with user 1) and account 1,
// user 2 owning account 2. Account 0 holds one purchase from each of users 0
// and 1; account 1 holds one purchase from user 0.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	users := adaptertest.NewUserStore()
	accounts := adaptertest.NewAccountStore()
	purchases := adaptertest.NewPurchaseStore()

	for id := uint32(0); id < 3; id++ {
		_ = users.Save(ctx, entity.NewUser(id, entity.UserParams{FirstName: "User"}))
	}

	primary := entity.NewAccount(0, 0, entity.AccountParams{Name: "Main", ClosingDay: 20, Limit: decimal.NewFromInt(5000)})
	primary.SetSharedUserIDs([]uint32{1})
	_ = accounts.Save(ctx, primary)
	_ = accounts.Save(ctx, entity.NewAccount(1, 0, entity.AccountParams{Name: "Spare", ClosingDay: 10}))
	_ = accounts.Save(ctx, entity.NewAccount(2, 2, entity.AccountParams{Name: "Other", ClosingDay: 10}))

	params := entity.PurchaseParams{Name: "Market", Date: entity.Day(2024, time.January, 15), Value: decimal.NewFromInt(1200), Installments: 12}
	_ = purchases.Save(ctx, entity.NewPurchase(0, 0, 0, params))
	_ = purchases.Save(ctx, entity.NewPurchase(1, 1, 0, params))
	_ = purchases.Save(ctx, entity.NewPurchase(2, 0, 1, params))

	clock := adapter.FixedClock{Time: time.Date(2024, time.January, 25, 12, 0, 0, 0, time.UTC)}
	l := ledger.New(users, accounts, purchases, clock, entity.DefaultPolicies())
	if _, err := l.Load(ctx); err != nil {
		t.Fatalf("failed to load ledger: %v", err)
	}
	for _, account := range l.Accounts() {
		account.ClearHistory()
	}

	sessions := adaptertest.NewSessionStore()
	login := func(userID uint32) *session.Session {
		s, _ := sessions.Create(ctx)
		s.Login(userID)
		_ = sessions.Save(ctx, s)
		return s
	}

	return &fixture{
		ledger:    l,
		accounts:  accounts,
		purchases: purchases,
		sessions:  sessions,
		publisher: &adaptertest.Publisher{},
		owner:     login(0),
		sharer:    login(1),
	}
}

func accountCode(err error) domainerror.AccountErrorCode {
	var accountErr *domainerror.AccountError
	if errors.As(err, &accountErr) {
		return accountErr.Code
	}
	return ""
}

func TestCreateAccountUseCase(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateAccountUseCase(f.ledger, f.accounts, f.publisher)

	output, err := uc.Execute(context.Background(), CreateAccountInput{
		Session:    f.sharer,
		Name:       "New card",
		ClosingDay: 45,
		Limit:      decimal.NewFromInt(800),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	account := output.Account
	if account.ID != 3 || account.UserID != 1 {
		t.Errorf("expected account 3 owned by 1, got %d owned by %d", account.ID, account.UserID)
	}
	if account.ClosingDay() != 30 {
		t.Errorf("expected clamped closing day 30, got %d", account.ClosingDay())
	}
	if _, ok := f.ledger.Account(3); !ok {
		t.Error("expected account registered in ledger")
	}
	if _, ok := f.accounts.Get(3); !ok {
		t.Error("expected account persisted")
	}

	_, err = uc.Execute(context.Background(), CreateAccountInput{Session: f.owner, Name: " "})
	if accountCode(err) != domainerror.ErrCodeMissingAccountName {
		t.Errorf("expected missing name, got %v", err)
	}
}

func TestEditAccountUseCase(t *testing.T) {
	f := newFixture(t)
	uc := NewEditAccountUseCase(f.ledger, f.accounts, f.publisher)

	t.Run("sharer cannot edit", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), EditAccountInput{Session: f.sharer, AccountID: 0, Name: "Mine"})
		if !errors.Is(err, domainerror.ErrNotAccountOwner) {
			t.Errorf("expected not owner, got %v", err)
		}
	})

	t.Run("owner edit rebuilds history", func(t *testing.T) {
		account, _ := f.ledger.Account(0)
		account.RefreshHistory(f.ledger.Today())

		_, err := uc.Execute(context.Background(), EditAccountInput{
			Session: f.owner, AccountID: 0, Name: "Main", ClosingDay: 10, Limit: decimal.NewFromInt(100),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first := account.History()[0].Date; !first.Equal(entity.Day(2024, time.February, 10)) {
			t.Errorf("expected first statement 10/02/2024, got %s", entity.FormatDate(first))
		}
		if !account.Limit.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected limit 100, got %s", account.Limit)
		}
	})
}

func TestDeleteAccountUseCase(t *testing.T) {
	t.Run("owner deletes account and purchases", func(t *testing.T) {
		f := newFixture(t)
		f.owner.Select(0)

		uc := NewDeleteAccountUseCase(f.ledger, f.accounts, f.purchases, f.sessions, f.publisher)
		output, err := uc.Execute(context.Background(), DeleteAccountInput{Session: f.owner, AccountID: 0})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Left || output.RemovedPurchases != 2 {
			t.Errorf("expected deletion of 2 purchases, got %+v", output)
		}
		if _, ok := f.ledger.Account(0); ok {
			t.Error("expected account removed from ledger")
		}
		if f.purchases.Len() != 1 || f.accounts.Len() != 2 {
			t.Errorf("expected 1 purchase and 2 accounts stored, got %d and %d", f.purchases.Len(), f.accounts.Len())
		}
		if _, ok := f.owner.SelectedAccount(); ok {
			t.Error("expected deleted account to be deselected")
		}
	})

	t.Run("sharer leaves account", func(t *testing.T) {
		f := newFixture(t)

		uc := NewDeleteAccountUseCase(f.ledger, f.accounts, f.purchases, f.sessions, f.publisher)
		output, err := uc.Execute(context.Background(), DeleteAccountInput{Session: f.sharer, AccountID: 0})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !output.Left || output.RemovedPurchases != 1 {
			t.Errorf("expected to leave with 1 purchase, got %+v", output)
		}
		account, ok := f.ledger.Account(0)
		if !ok || account.IsSharingWith(1) {
			t.Error("expected account kept without the sharer")
		}
		if _, ok := f.purchases.Get(1); ok {
			t.Error("expected the sharer's purchase to be deleted")
		}
	})
}

func TestMergeAccountsUseCase(t *testing.T) {
	f := newFixture(t)
	uc := NewMergeAccountsUseCase(f.ledger, f.accounts, f.purchases, f.sessions, f.publisher)

	t.Run("same account", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), MergeAccountsInput{Session: f.owner, SourceID: 1, TargetID: 1})
		if accountCode(err) != domainerror.ErrCodeMergeSameAccount {
			t.Errorf("expected merge same account, got %v", err)
		}
	})

	t.Run("source must be owned", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), MergeAccountsInput{Session: f.sharer, SourceID: 0, TargetID: 1})
		if err == nil {
			t.Error("expected error")
		}
	})

	t.Run("moves purchases and deletes source", func(t *testing.T) {
		output, err := uc.Execute(context.Background(), MergeAccountsInput{Session: f.owner, SourceID: 1, TargetID: 0})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.MovedPurchases != 1 || len(output.Target.Purchases()) != 3 {
			t.Errorf("expected 3 purchases on target, got %d", len(output.Target.Purchases()))
		}
		stored, _ := f.purchases.Get(2)
		if stored.AccountID != 0 {
			t.Errorf("expected moved purchase stored on account 0, got %d", stored.AccountID)
		}
		if _, ok := f.ledger.Account(1); ok {
			t.Error("expected source removed")
		}
	})
}

func TestShareAndWithholdAccountUseCases(t *testing.T) {
	f := newFixture(t)
	share := NewShareAccountUseCase(f.ledger, f.accounts, f.publisher)
	withhold := NewWithholdAccountUseCase(f.ledger, f.accounts, f.purchases, f.publisher)

	tests := []struct {
		name     string
		input    ShareAccountInput
		expected domainerror.AccountErrorCode
	}{
		{name: "already sharing", input: ShareAccountInput{Session: f.owner, AccountID: 0, UserID: 1}, expected: domainerror.ErrCodeAlreadySharing},
		{name: "owner", input: ShareAccountInput{Session: f.owner, AccountID: 0, UserID: 0}, expected: domainerror.ErrCodeCannotShareWithOwner},
		{name: "unknown user", input: ShareAccountInput{Session: f.owner, AccountID: 0, UserID: 42}, expected: domainerror.ErrCodeShareUserNotFound},
		{name: "not owner", input: ShareAccountInput{Session: f.sharer, AccountID: 0, UserID: 2}, expected: domainerror.ErrCodeNotAccountOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := share.Execute(context.Background(), tt.input)
			if accountCode(err) != tt.expected {
				t.Errorf("expected %s, got %v", tt.expected, err)
			}
		})
	}

	t.Run("share then withhold", func(t *testing.T) {
		if _, err := share.Execute(context.Background(), ShareAccountInput{Session: f.owner, AccountID: 1, UserID: 2}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		stored, _ := f.accounts.Get(1)
		if !stored.IsSharingWith(2) {
			t.Error("expected share persisted")
		}

		output, err := withhold.Execute(context.Background(), WithholdAccountInput{Session: f.owner, AccountID: 0, UserID: 1})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.RemovedPurchases != 1 {
			t.Errorf("expected 1 removed purchase, got %d", output.RemovedPurchases)
		}

		_, err = withhold.Execute(context.Background(), WithholdAccountInput{Session: f.owner, AccountID: 0, UserID: 1})
		if accountCode(err) != domainerror.ErrCodeNotSharing {
			t.Errorf("expected not sharing, got %v", err)
		}
	})
}

func TestWithholdAccountUseCase_RollsBack(t *testing.T) {
	tests := []struct {
		name string
		fail func(f *fixture)
	}{
		{name: "purchase delete fails", fail: func(f *fixture) { f.purchases.WriteErr = errors.New("disk full") }},
		{name: "account save fails", fail: func(f *fixture) { f.accounts.WriteErr = errors.New("disk full") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			withhold := NewWithholdAccountUseCase(f.ledger, f.accounts, f.purchases, f.publisher)
			tt.fail(f)

			_, err := withhold.Execute(context.Background(), WithholdAccountInput{Session: f.owner, AccountID: 0, UserID: 1})
			if err == nil {
				t.Fatal("expected error")
			}

			account, _ := f.ledger.Account(0)
			if !account.IsSharingWith(1) {
				t.Error("expected sharer to be restored")
			}
			if got := len(account.PurchasesBy(1)); got != 1 {
				t.Errorf("expected the sharer's purchase back in memory, got %d", got)
			}
			if _, stored := f.purchases.Get(1); !stored {
				t.Error("expected the sharer's purchase to remain in storage")
			}
			if got := len(account.Purchases()); got != 2 {
				t.Errorf("expected 2 purchases, got %d", got)
			}
		})
	}
}

func TestSelectAndDeselectAccountUseCases(t *testing.T) {
	f := newFixture(t)
	sel := NewSelectAccountUseCase(f.ledger, f.sessions)
	deselect := NewDeselectAccountUseCase(f.ledger, f.sessions)

	first, _ := f.ledger.Account(0)
	second, _ := f.ledger.Account(1)

	output, err := sel.Execute(context.Background(), SelectAccountInput{Session: f.owner, AccountID: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.HasHistory() || len(output.History) != 12 {
		t.Errorf("expected 12 statements, got %d", len(output.History))
	}

	if _, err := sel.Execute(context.Background(), SelectAccountInput{Session: f.owner, AccountID: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.HasHistory() {
		t.Error("expected previous selection to be released")
	}
	if !second.HasHistory() {
		t.Error("expected new selection to have history")
	}

	stored, _ := f.sessions.Get(context.Background(), f.owner.ID)
	if id, ok := stored.SelectedAccount(); !ok || id != 1 {
		t.Errorf("expected stored selection 1, got %d (%v)", id, ok)
	}

	if _, err := deselect.Execute(context.Background(), DeselectAccountInput{Session: f.owner}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.HasHistory() {
		t.Error("expected history released on deselect")
	}

	_, err = deselect.Execute(context.Background(), DeselectAccountInput{Session: f.owner})
	if accountCode(err) != domainerror.ErrCodeNoAccountSelected {
		t.Errorf("expected no account selected, got %v", err)
	}

	_, err = sel.Execute(context.Background(), SelectAccountInput{Session: f.owner, AccountID: 2})
	if !errors.Is(err, domainerror.ErrAccountAccessDenied) {
		t.Errorf("expected access denied, got %v", err)
	}
}

func TestSelectAccountUseCase_SharedSelection(t *testing.T) {
	f := newFixture(t)
	sel := NewSelectAccountUseCase(f.ledger, f.sessions)
	deselect := NewDeselectAccountUseCase(f.ledger, f.sessions)
	account, _ := f.ledger.Account(0)

	for _, sess := range []*session.Session{f.owner, f.sharer} {
		if _, err := sel.Execute(context.Background(), SelectAccountInput{Session: sess, AccountID: 0}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := sel.Execute(context.Background(), SelectAccountInput{Session: f.owner, AccountID: 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := deselect.Execute(context.Background(), DeselectAccountInput{Session: f.sharer}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !account.HasHistory() {
		t.Error("expected history kept while another session has the account selected")
	}

	if _, err := deselect.Execute(context.Background(), DeselectAccountInput{Session: f.owner}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.HasHistory() {
		t.Error("expected history released once no session has the account selected")
	}
}

func TestGetHistoryAndSummaryUseCases(t *testing.T) {
	f := newFixture(t)

	history, err := NewGetHistoryUseCase(f.ledger).Execute(context.Background(), GetHistoryInput{Session: f.sharer, AccountID: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history.Statements) != 12 {
		t.Errorf("expected 12 statements, got %d", len(history.Statements))
	}
	if history.Current == nil || !history.Current.Date.Equal(entity.Day(2024, time.January, 20)) {
		t.Error("expected current statement closing on 20/01/2024")
	}

	asOf := entity.Day(2024, time.February, 21)
	summary, err := NewGetSummaryUseCase(f.ledger).Execute(context.Background(), GetSummaryInput{Session: f.owner, AccountID: 0, AsOf: &asOf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !summary.DueAmount.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected due amount 200, got %s", summary.DueAmount)
	}
	if !summary.UsedLimit.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("expected used limit 2000, got %s", summary.UsedLimit)
	}
	if !summary.RemainingLimit.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("expected remaining limit 3000, got %s", summary.RemainingLimit)
	}
	if !summary.StatementDate.Equal(entity.Day(2024, time.March, 20)) {
		t.Errorf("expected statement date 20/03/2024, got %s", entity.FormatDate(summary.StatementDate))
	}
}

func TestListAccountsUseCase(t *testing.T) {
	f := newFixture(t)

	output, err := NewListAccountsUseCase(f.ledger).Execute(context.Background(), ListAccountsInput{Session: f.sharer})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Owned) != 0 || len(output.Shared) != 1 {
		t.Errorf("expected 0 owned and 1 shared, got %d and %d", len(output.Owned), len(output.Shared))
	}
}
