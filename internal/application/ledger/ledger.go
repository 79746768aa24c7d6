// Package ledger holds the in-memory graph of users, accounts and purchases
// that every use case reads and mutates. Storage is the source of truth at
// startup only; afterwards the graph is authoritative and use cases write
// through to storage after each mutation.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/financy/backend/internal/application/adapter"
	"github.com/financy/backend/internal/domain/entity"
)

// Ledger is the in-memory account graph.
type Ledger struct {
	userRepo     adapter.UserRepository
	accountRepo  adapter.AccountRepository
	purchaseRepo adapter.PurchaseRepository
	clock        adapter.Clock
	policies     entity.Policies

	mu       sync.RWMutex
	users    map[uint32]*entity.User
	accounts map[uint32]*entity.Account
}

// New creates an empty ledger. Call Load to hydrate it from storage.
func New(
	userRepo adapter.UserRepository,
	accountRepo adapter.AccountRepository,
	purchaseRepo adapter.PurchaseRepository,
	clock adapter.Clock,
	policies entity.Policies,
) *Ledger {
	return &Ledger{
		userRepo:     userRepo,
		accountRepo:  accountRepo,
		purchaseRepo: purchaseRepo,
		clock:        clock,
		policies:     policies,
		users:        make(map[uint32]*entity.User),
		accounts:     make(map[uint32]*entity.Account),
	}
}

// Now returns the current instant.
func (l *Ledger) Now() time.Time {
	return l.clock.Now()
}

// Today returns the current calendar date.
func (l *Ledger) Today() time.Time {
	return entity.TruncateDay(l.clock.Now())
}

// Policies returns the policies every account is computed with.
func (l *Ledger) Policies() entity.Policies {
	return l.policies
}

// LoadSummary reports what Load kept and dropped.
type LoadSummary struct {
	Users            int
	Accounts         int
	Purchases        int
	DroppedAccounts  int
	DroppedPurchases int
	BackfilledBuyers int
}

// Load replaces the graph with the stored data. The three kinds are read
// concurrently. Accounts whose owner is missing and purchases whose account or
// contributor is missing are dropped. Purchases stored without a contributor
// are attributed to the account owner and written back.
func (l *Ledger) Load(ctx context.Context) (*LoadSummary, error) {
	var (
		users     []*entity.User
		accounts  []*entity.Account
		purchases []*entity.Purchase
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = l.userRepo.FindAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to load users: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		accounts, err = l.accountRepo.FindAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to load accounts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		purchases, err = l.purchaseRepo.FindAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to load purchases: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &LoadSummary{}

	userIndex := make(map[uint32]*entity.User, len(users))
	for _, user := range users {
		userIndex[user.ID] = user
	}

	accountIndex := make(map[uint32]*entity.Account, len(accounts))
	for _, account := range accounts {
		if _, ok := userIndex[account.UserID]; !ok {
			slog.Debug("Dropping account without owner", "account_id", account.ID, "user_id", account.UserID)
			summary.DroppedAccounts++
			continue
		}

		var sharers []uint32
		for _, userID := range account.SharedUserIDs() {
			if _, ok := userIndex[userID]; ok {
				sharers = append(sharers, userID)
			}
		}
		account.SetSharedUserIDs(sharers)
		account.Policies = l.policies
		accountIndex[account.ID] = account
	}

	grouped := make(map[uint32][]*entity.Purchase, len(accountIndex))
	var backfilled []*entity.Purchase
	for _, purchase := range purchases {
		account, ok := accountIndex[purchase.AccountID]
		if !ok {
			slog.Debug("Dropping purchase without account", "purchase_id", purchase.ID, "account_id", purchase.AccountID)
			summary.DroppedPurchases++
			continue
		}

		if purchase.UserID == entity.UnassignedUserID {
			purchase.UserID = account.UserID
			backfilled = append(backfilled, purchase)
		} else if _, ok := userIndex[purchase.UserID]; !ok {
			slog.Debug("Dropping purchase without contributor", "purchase_id", purchase.ID, "user_id", purchase.UserID)
			summary.DroppedPurchases++
			continue
		}

		grouped[account.ID] = append(grouped[account.ID], purchase)
	}

	if len(backfilled) > 0 {
		if err := l.purchaseRepo.SaveAll(ctx, backfilled); err != nil {
			return nil, fmt.Errorf("failed to persist normalized purchases: %w", err)
		}
		summary.BackfilledBuyers = len(backfilled)
	}

	today := l.Today()
	for id, account := range accountIndex {
		account.LoadPurchases(grouped[id])
		account.RefreshHistory(today)
		summary.Purchases += len(grouped[id])
	}

	l.mu.Lock()
	l.users = userIndex
	l.accounts = accountIndex
	l.mu.Unlock()

	summary.Users = len(userIndex)
	summary.Accounts = len(accountIndex)
	return summary, nil
}

// User looks up a user by id.
func (l *Ledger) User(id uint32) (*entity.User, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	user, ok := l.users[id]
	return user, ok
}

// Users returns every user sorted by id.
func (l *Ledger) Users() []*entity.User {
	l.mu.RLock()
	defer l.mu.RUnlock()

	users := make([]*entity.User, 0, len(l.users))
	for _, user := range l.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

// AddUser registers a user.
func (l *Ledger) AddUser(user *entity.User) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.users[user.ID] = user
}

// RemoveUser unregisters a user. Accounts are left untouched.
func (l *Ledger) RemoveUser(id uint32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.users, id)
}

// Account looks up an account by id.
func (l *Ledger) Account(id uint32) (*entity.Account, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	account, ok := l.accounts[id]
	return account, ok
}

// Accounts returns every account sorted by id.
func (l *Ledger) Accounts() []*entity.Account {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sortedAccounts(func(*entity.Account) bool { return true })
}

// AccountsFor returns the accounts userID owns or shares, sorted by id.
func (l *Ledger) AccountsFor(userID uint32) []*entity.Account {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sortedAccounts(func(a *entity.Account) bool { return a.HasAccess(userID) })
}

// OwnedBy returns the accounts userID owns, sorted by id.
func (l *Ledger) OwnedBy(userID uint32) []*entity.Account {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sortedAccounts(func(a *entity.Account) bool { return a.IsOwnedBy(userID) })
}

// SharedWith returns the accounts shared with userID, sorted by id.
func (l *Ledger) SharedWith(userID uint32) []*entity.Account {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sortedAccounts(func(a *entity.Account) bool { return a.IsSharingWith(userID) })
}

func (l *Ledger) sortedAccounts(keep func(*entity.Account) bool) []*entity.Account {
	accounts := make([]*entity.Account, 0, len(l.accounts))
	for _, account := range l.accounts {
		if keep(account) {
			accounts = append(accounts, account)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts
}

// AddAccount registers an account and applies the ledger policies to it.
func (l *Ledger) AddAccount(account *entity.Account) {
	account.Policies = l.policies

	l.mu.Lock()
	defer l.mu.Unlock()
	l.accounts[account.ID] = account
}

// RemoveAccount unregisters an account.
func (l *Ledger) RemoveAccount(id uint32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.accounts, id)
}
