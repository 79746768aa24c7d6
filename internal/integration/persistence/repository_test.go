package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/financy/backend/internal/domain/entity"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbSQL, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	dbSQL.SetMaxOpenConns(1)
	t.Cleanup(func() { dbSQL.Close() })

	db, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	id, err := repo.NextID(ctx)
	if err != nil || id != 0 {
		t.Fatalf("expected id 0 on empty table, got %d (%v)", id, err)
	}

	user := entity.NewUser(0, entity.UserParams{FirstName: "Ana", LastName: "Lima"})
	if err := repo.Save(ctx, user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Save(ctx, entity.NewUser(4, entity.UserParams{FirstName: "Bruno"})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user.Edit(entity.UserParams{FirstName: "Ana", LastName: "Souza"})
	if err := repo.Save(ctx, user); err != nil {
		t.Fatalf("expected upsert to replace the row, got %v", err)
	}

	users, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 || users[0].LastName != "Souza" || users[1].ID != 4 {
		t.Errorf("expected updated Ana and Bruno, got %d users", len(users))
	}

	id, _ = repo.NextID(ctx)
	if id != 5 {
		t.Errorf("expected next id 5, got %d", id)
	}

	if err := repo.Delete(ctx, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	users, _ = repo.FindAll(ctx)
	if len(users) != 1 {
		t.Errorf("expected 1 user, got %d", len(users))
	}
}

func TestAccountRepository(t *testing.T) {
	repo := NewAccountRepository(newTestDB(t))
	ctx := context.Background()

	account := entity.NewAccount(0, 1, entity.AccountParams{
		Name: "Card", ClosingDay: 20, Type: entity.AccountTypeExpense, Limit: decimal.RequireFromString("5000.50"),
	})
	account.SetSharedUserIDs([]uint32{3, 2})

	if err := repo.Save(ctx, account); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	accounts, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 1 {
		t.Fatalf("expected 1 account, got %d", len(accounts))
	}

	stored := accounts[0]
	if stored.ClosingDay() != 20 || !stored.Limit.Equal(account.Limit) {
		t.Errorf("expected closing day 20 and limit 5000.50, got %d and %s", stored.ClosingDay(), stored.Limit)
	}
	if shared := stored.SharedUserIDs(); len(shared) != 2 || shared[0] != 2 || shared[1] != 3 {
		t.Errorf("expected sharers [2 3], got %v", shared)
	}
}

func TestPurchaseRepository(t *testing.T) {
	repo := NewPurchaseRepository(newTestDB(t))
	ctx := context.Background()

	installment := entity.NewPurchase(0, 1, 0, entity.PurchaseParams{
		Name: "Tv", Date: entity.Day(2024, time.January, 15), Type: entity.PurchaseTypeUtility,
		Value: decimal.NewFromInt(1200), Installments: 12,
	})
	recurring := entity.NewPurchase(1, 1, 0, entity.PurchaseParams{
		Name: "Streaming", Date: entity.Day(2024, time.January, 1), Type: entity.PurchaseTypeSubscription,
		Value: decimal.RequireFromString("39.90"), Installments: 1, EndDate: entity.Day(2024, time.June, 1),
	})
	unassigned := entity.NewPurchase(2, entity.UnassignedUserID, 0, entity.PurchaseParams{
		Name: "Legacy", Date: entity.Day(2023, time.May, 5), Value: decimal.NewFromInt(10), Installments: 1,
	})

	if err := repo.SaveAll(ctx, []*entity.Purchase{installment, recurring, unassigned}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	purchases, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(purchases) != 3 {
		t.Fatalf("expected 3 purchases, got %d", len(purchases))
	}

	if purchases[0].Type() != entity.PurchaseTypeUtility || !purchases[0].Date.Equal(installment.Date) {
		t.Errorf("expected utility on 15/01/2024, got %v on %s", purchases[0].Type(), entity.FormatDate(purchases[0].Date))
	}
	if !purchases[1].EndDate().Equal(entity.Day(2024, time.June, 1)) {
		t.Errorf("expected end date 01/06/2024, got %s", entity.FormatDate(purchases[1].EndDate()))
	}
	if !purchases[1].Value().Equal(decimal.RequireFromString("39.90")) {
		t.Errorf("expected 39.90, got %s", purchases[1].Value())
	}
	if purchases[2].UserID != entity.UnassignedUserID {
		t.Errorf("expected unassigned contributor, got %d", purchases[2].UserID)
	}

	if err := repo.DeleteMany(ctx, []uint32{0, 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id, _ := repo.NextID(ctx)
	if id != 2 {
		t.Errorf("expected next id 2, got %d", id)
	}
}

func TestSettingsRepository(t *testing.T) {
	repo := NewSettingsRepository(newTestDB(t))
	ctx := context.Background()

	settings, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.ColorTheme != entity.ColorThemeLight {
		t.Errorf("expected light default, got %s", settings.ColorTheme.Name())
	}

	for _, theme := range []entity.ColorTheme{entity.ColorThemeDark, entity.ColorThemeLight, entity.ColorThemeDark} {
		if err := repo.Save(ctx, &entity.Settings{ColorTheme: theme}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	settings, _ = repo.Load(ctx)
	if settings.ColorTheme != entity.ColorThemeDark {
		t.Errorf("expected dark, got %s", settings.ColorTheme.Name())
	}
}
