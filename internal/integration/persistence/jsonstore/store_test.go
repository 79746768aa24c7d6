package jsonstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/financy/backend/internal/application/adapter"
	"github.com/financy/backend/internal/domain/entity"
	domainerror "github.com/financy/backend/internal/domain/error"
)

var clock = adapter.FixedClock{Time: time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)}

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func writeFile(t *testing.T, store *Store, file, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(store.Dir(), file), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", file, err)
	}
}

func readFile(t *testing.T, store *Store, file string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(store.Dir(), file))
	if err != nil {
		t.Fatalf("failed to read %s: %v", file, err)
	}
	return string(data)
}

func TestCollection_MissingFileIsEmpty(t *testing.T) {
	store := newStore(t)
	repo := NewUserRepository(store)

	users, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("expected no users, got %d", len(users))
	}

	id, err := repo.NextID(context.Background())
	if err != nil || id != 0 {
		t.Errorf("expected id 0, got %d (%v)", id, err)
	}
}

func TestCollection_UnreadableFile(t *testing.T) {
	store := newStore(t)
	writeFile(t, store, AccountsFile, `{"not": "an array"}`)

	_, err := NewAccountRepository(store).FindAll(context.Background())

	var storageErr *domainerror.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if storageErr.Code != domainerror.ErrCodeStorageUnreadable || storageErr.Resource != AccountsFile {
		t.Errorf("expected unreadable %s, got %s on %s", AccountsFile, storageErr.Code, storageErr.Resource)
	}
}

func TestCollection_SaveAndDelete(t *testing.T) {
	store := newStore(t)
	repo := NewPurchaseRepository(store, clock)
	ctx := context.Background()

	params := entity.PurchaseParams{Name: "Tv", Date: entity.Day(2024, time.February, 5), Value: decimal.NewFromInt(300), Installments: 3}
	first := entity.NewPurchase(0, 0, 0, params)
	second := entity.NewPurchase(5, 1, 0, params)

	if err := repo.SaveAll(ctx, []*entity.Purchase{first, second}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first.Name = "Television"
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	purchases, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(purchases) != 2 || purchases[0].Name != "Television" || purchases[1].ID != 5 {
		t.Fatalf("expected updated record kept in place, got %d records", len(purchases))
	}

	id, _ := repo.NextID(ctx)
	if id != 6 {
		t.Errorf("expected next id 6, got %d", id)
	}

	if err := repo.DeleteMany(ctx, []uint32{5, 42}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	purchases, _ = repo.FindAll(ctx)
	if len(purchases) != 1 || purchases[0].ID != 0 {
		t.Errorf("expected only purchase 0 left, got %d records", len(purchases))
	}

	if err := repo.Delete(ctx, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content := strings.TrimSpace(readFile(t, store, PurchasesFile)); content != "[]" {
		t.Errorf("expected empty array, got %s", content)
	}
}

func TestCollection_FileLayout(t *testing.T) {
	store := newStore(t)
	user := entity.NewUser(0, entity.UserParams{FirstName: "Ana"})

	if err := NewUserRepository(store).Save(context.Background(), user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "[\n" +
		"    {\n" +
		"        \"id\": 0,\n" +
		"        \"firstName\": \"Ana\",\n" +
		"        \"lastName\": \"\",\n" +
		"        \"picture\": \"\",\n" +
		"        \"primaryColor\": \"#FFFFFF\",\n" +
		"        \"secondaryColor\": \"#000000\"\n" +
		"    }\n" +
		"]\n"
	if content := readFile(t, store, UsersFile); content != expected {
		t.Errorf("expected %q, got %q", expected, content)
	}

	entries, _ := os.ReadDir(store.Dir())
	if len(entries) != 1 {
		t.Errorf("expected no temp files left behind, got %d entries", len(entries))
	}
}

func TestCollection_LenientRecords(t *testing.T) {
	store := newStore(t)
	writeFile(t, store, PurchasesFile, `[
    {"id": 3, "accountId": 1, "name": "Old", "date": "01/01/2024", "value": 10},
    "garbage",
    {"id": 1, "userId": 2, "accountId": 1, "type": 1}
]`)

	repo := NewPurchaseRepository(store, clock)
	purchases, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(purchases) != 2 {
		t.Fatalf("expected 2 purchases, got %d", len(purchases))
	}
	if purchases[0].UserID != entity.UnassignedUserID {
		t.Errorf("expected unassigned contributor, got %d", purchases[0].UserID)
	}
	if !purchases[1].Date.Equal(entity.Day(2024, time.March, 10)) {
		t.Errorf("expected missing date to default to today, got %s", entity.FormatDate(purchases[1].Date))
	}

	id, _ := repo.NextID(context.Background())
	if id != 4 {
		t.Errorf("expected next id 4, got %d", id)
	}
}

func TestSettingsRepository(t *testing.T) {
	store := newStore(t)
	repo := NewSettingsRepository(store)
	ctx := context.Background()

	settings, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.ColorTheme != entity.ColorThemeLight {
		t.Errorf("expected light default, got %s", settings.ColorTheme.Name())
	}

	if err := repo.Save(ctx, &entity.Settings{ColorTheme: entity.ColorThemeDark}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content := readFile(t, store, SettingsFile); content != "{\n    \"colorTheme\": 1\n}\n" {
		t.Errorf("expected indented settings object, got %q", content)
	}

	settings, _ = repo.Load(ctx)
	if settings.ColorTheme != entity.ColorThemeDark {
		t.Errorf("expected dark, got %s", settings.ColorTheme.Name())
	}
}

func TestStore_Healthy(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	store, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.Healthy() {
		t.Error("expected healthy store")
	}

	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Healthy() {
		t.Error("expected unhealthy store after its directory is removed")
	}
}
