// Package entity defines the core business entities for the domain layer.
package entity

import (
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType represents the kind of account. Persisted as an ordinal.
type AccountType int

const (
	AccountTypeExpense AccountType = 0
	// AccountTypeSaving is reserved; no computation treats it specially.
	AccountTypeSaving AccountType = 1
)

var accountTypeNames = map[AccountType]string{
	AccountTypeExpense: "Expense",
	AccountTypeSaving:  "Saving",
}

// AccountTypes returns every account type in ordinal order.
func AccountTypes() []AccountType {
	return []AccountType{AccountTypeExpense, AccountTypeSaving}
}

// IsValid reports whether t is a known account type.
func (t AccountType) IsValid() bool {
	_, ok := accountTypeNames[t]
	return ok
}

// Name returns the display name of the type.
func (t AccountType) Name() string {
	if name, ok := accountTypeNames[t]; ok {
		return name
	}
	return accountTypeNames[AccountTypeExpense]
}

// ParseAccountType resolves a display name, falling back to Expense.
func ParseAccountType(name string) AccountType {
	for accountType, typeName := range accountTypeNames {
		if strings.EqualFold(typeName, strings.TrimSpace(name)) {
			return accountType
		}
	}
	return AccountTypeExpense
}

const (
	// DefaultPrimaryColor is used when an account or user has no primary color.
	DefaultPrimaryColor = "#FFFFFF"
	// DefaultSecondaryColor is used when an account or user has no secondary color.
	DefaultSecondaryColor = "#000000"
)

// Account is a credit-card-like account. It owns its purchases and a derived
// statement history that is rebuilt wholesale whenever the purchases change.
//
// Mutations of the purchase set, the profile and the history rebuild are
// serialized by the account's lock. Stored purchases are never changed in
// place: edits swap in a modified copy, and accessors hand out copies, so a
// purchase obtained from an account can be read without holding its lock.
// Once an account is registered, read the profile through Details rather
// than the exported fields; Edit rewrites them under the lock.
type Account struct {
	ID             uint32
	UserID         uint32
	Name           string
	Type           AccountType
	Limit          decimal.Decimal
	PrimaryColor   string
	SecondaryColor string
	Policies       Policies

	mu            sync.RWMutex
	closingDay    uint32
	sharedUserIDs []uint32
	purchases     []*Purchase
	history       []*Statement
	hasHistory    bool
	holds         int // Sessions that have the account selected
}

// AccountParams holds the editable fields of an account.
type AccountParams struct {
	Name           string
	ClosingDay     uint32
	Type           AccountType
	Limit          decimal.Decimal
	PrimaryColor   string
	SecondaryColor string
}

// NewAccount creates an account without purchases.
func NewAccount(id, userID uint32, params AccountParams) *Account {
	a := &Account{
		ID:       id,
		UserID:   userID,
		Policies: DefaultPolicies(),
	}
	a.apply(params)
	return a
}

func (a *Account) apply(params AccountParams) {
	if !params.Type.IsValid() {
		params.Type = AccountTypeExpense
	}
	if params.PrimaryColor == "" {
		params.PrimaryColor = DefaultPrimaryColor
	}
	if params.SecondaryColor == "" {
		params.SecondaryColor = DefaultSecondaryColor
	}

	a.Name = strings.TrimSpace(params.Name)
	a.closingDay = ClampClosingDay(params.ClosingDay)
	a.Type = params.Type
	a.Limit = params.Limit
	a.PrimaryColor = params.PrimaryColor
	a.SecondaryColor = params.SecondaryColor
}

// Edit replaces the editable fields. The history is rebuilt if it was
// populated, since the closing day shapes every statement.
func (a *Account) Edit(params AccountParams, today time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.apply(params)
	if a.hasHistory {
		a.refreshHistory(today)
	}
}

// Details returns a consistent snapshot of the editable fields.
func (a *Account) Details() AccountParams {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return AccountParams{
		Name:           a.Name,
		ClosingDay:     a.closingDay,
		Type:           a.Type,
		Limit:          a.Limit,
		PrimaryColor:   a.PrimaryColor,
		SecondaryColor: a.SecondaryColor,
	}
}

// IsExpense reports whether the account is an Expense account.
func (a *Account) IsExpense() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.Type == AccountTypeExpense
}

// ClosingDay returns the nominal statement closing day.
func (a *Account) ClosingDay() uint32 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.closingDay
}

// SharedUserIDs returns the ids of the users the account is shared with, sorted.
func (a *Account) SharedUserIDs() []uint32 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.sharedUserIDs)
}

// SetSharedUserIDs replaces the sharers, dropping duplicates and the owner.
func (a *Account) SetSharedUserIDs(userIDs []uint32) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.sharedUserIDs = nil
	for _, userID := range userIDs {
		a.addSharer(userID)
	}
}

// IsOwnedBy reports whether userID owns the account.
func (a *Account) IsOwnedBy(userID uint32) bool {
	return a.UserID == userID
}

// IsSharingWith reports whether the account is shared with userID.
func (a *Account) IsSharingWith(userID uint32) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, found := slices.BinarySearch(a.sharedUserIDs, userID)
	return found
}

// HasAccess reports whether userID owns or shares the account.
func (a *Account) HasAccess(userID uint32) bool {
	return a.IsOwnedBy(userID) || a.IsSharingWith(userID)
}

// ShareWith adds a co-sharer. It reports false for the owner or an existing sharer.
func (a *Account) ShareWith(userID uint32) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.addSharer(userID)
}

func (a *Account) addSharer(userID uint32) bool {
	if userID == a.UserID {
		return false
	}
	index, found := slices.BinarySearch(a.sharedUserIDs, userID)
	if found {
		return false
	}
	a.sharedUserIDs = slices.Insert(a.sharedUserIDs, index, userID)
	return true
}

// WithholdFrom removes a co-sharer together with every purchase that sharer
// contributed. The removed purchases are returned so storage can drop them.
func (a *Account) WithholdFrom(userID uint32, today time.Time) ([]*Purchase, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	index, found := slices.BinarySearch(a.sharedUserIDs, userID)
	if !found {
		return nil, false
	}
	a.sharedUserIDs = slices.Delete(a.sharedUserIDs, index, index+1)

	var removed []*Purchase
	kept := a.purchases[:0]
	for _, purchase := range a.purchases {
		if purchase.IsOwnedBy(userID) {
			removed = append(removed, purchase)
			continue
		}
		kept = append(kept, purchase)
	}
	a.purchases = kept

	a.refreshHistory(today)
	return clonePurchases(removed), true
}

// RestoreSharer undoes WithholdFrom: the sharer is added back together with
// the purchases it contributed.
func (a *Account) RestoreSharer(userID uint32, purchases []*Purchase, today time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.addSharer(userID)
	a.insert(purchases)
	a.refreshHistory(today)
}

// Purchases returns the purchases sorted by date.
func (a *Account) Purchases() []*Purchase {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return clonePurchases(a.purchases)
}

// PurchasesBy returns the purchases contributed by userID.
func (a *Account) PurchasesBy(userID uint32) []*Purchase {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var result []*Purchase
	for _, purchase := range a.purchases {
		if purchase.IsOwnedBy(userID) {
			result = append(result, purchase.Clone())
		}
	}
	return result
}

// ActivePurchases returns the purchases contributed by userID that are billed on
// the statement covering asOf.
func (a *Account) ActivePurchases(asOf time.Time, userID uint32) []*Purchase {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var result []*Purchase
	for _, purchase := range a.purchases {
		if purchase.IsOwnedBy(userID) && purchase.IsActive(asOf, a.closingDay) {
			result = append(result, purchase.Clone())
		}
	}
	return result
}

// Purchase looks up a purchase by id.
func (a *Account) Purchase(id uint32) (*Purchase, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if purchase := a.find(id); purchase != nil {
		return purchase.Clone(), true
	}
	return nil, false
}

// LoadPurchases replaces the purchase set without rebuilding history.
// Used when hydrating an account from storage.
func (a *Account) LoadPurchases(purchases []*Purchase) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.purchases = nil
	a.insert(purchases)
	a.history = nil
	a.hasHistory = false
}

// AddPurchase adds a purchase and rebuilds the history.
func (a *Account) AddPurchase(purchase *Purchase, today time.Time) {
	a.AddPurchases([]*Purchase{purchase}, today)
}

// AddPurchases adds several purchases, moving them to this account. The
// account stores copies; the given purchases get their AccountID updated.
func (a *Account) AddPurchases(purchases []*Purchase, today time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, purchase := range purchases {
		purchase.AccountID = a.ID
	}
	a.insert(purchases)
	a.refreshHistory(today)
}

// EditPurchase applies params to the purchase with the given id and returns
// the edited purchase.
func (a *Account) EditPurchase(id uint32, params PurchaseParams, today time.Time) (*Purchase, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	index := a.indexOf(id)
	if index < 0 {
		return nil, false
	}
	edited := a.purchases[index].Clone()
	edited.Edit(params)
	a.purchases[index] = edited

	a.sortPurchases()
	a.refreshHistory(today)
	return edited.Clone(), true
}

// RemovePurchase drops the purchase with the given id.
func (a *Account) RemovePurchase(id uint32, today time.Time) (*Purchase, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	index := a.indexOf(id)
	if index < 0 {
		return nil, false
	}
	removed := a.purchases[index]
	a.purchases = slices.Delete(a.purchases, index, index+1)

	a.refreshHistory(today)
	return removed.Clone(), true
}

// EndPurchase stops a recurring purchase at endDate. A purchase that already
// ended earlier keeps its end date, so past statements never gain charges.
// It reports false if the purchase is missing or is not recurring; callers
// remove a purchase that has not started by endDate instead.
func (a *Account) EndPurchase(id uint32, endDate time.Time, today time.Time) (*Purchase, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	index := a.indexOf(id)
	if index < 0 {
		return nil, false
	}
	ended := a.purchases[index].Clone()
	if !ended.SetEndDate(endDate) {
		return nil, false
	}
	a.purchases[index] = ended

	a.refreshHistory(today)
	return ended.Clone(), true
}

// RestorePurchase puts back a stored copy of purchase, replacing the purchase
// with the same id if present. Used to roll back a failed write.
func (a *Account) RestorePurchase(purchase *Purchase, today time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if index := a.indexOf(purchase.ID); index >= 0 {
		a.purchases = slices.Delete(a.purchases, index, index+1)
	}
	a.insert([]*Purchase{purchase})
	a.refreshHistory(today)
}

// TakePurchases removes and returns every purchase. Used when merging accounts.
func (a *Account) TakePurchases() []*Purchase {
	a.mu.Lock()
	defer a.mu.Unlock()

	taken := a.purchases
	a.purchases = nil
	a.history = nil
	a.hasHistory = false
	return taken
}

func (a *Account) find(id uint32) *Purchase {
	if index := a.indexOf(id); index >= 0 {
		return a.purchases[index]
	}
	return nil
}

func (a *Account) indexOf(id uint32) int {
	return slices.IndexFunc(a.purchases, func(p *Purchase) bool { return p.ID == id })
}

// insert stores copies of purchases, owned by this account, in date order.
func (a *Account) insert(purchases []*Purchase) {
	for _, purchase := range purchases {
		stored := purchase.Clone()
		stored.AccountID = a.ID
		a.purchases = append(a.purchases, stored)
	}
	a.sortPurchases()
}

func clonePurchases(purchases []*Purchase) []*Purchase {
	if purchases == nil {
		return nil
	}
	result := make([]*Purchase, len(purchases))
	for i, purchase := range purchases {
		result[i] = purchase.Clone()
	}
	return result
}

func (a *Account) sortPurchases() {
	sort.SliceStable(a.purchases, func(i, j int) bool {
		if a.purchases[i].Date.Equal(a.purchases[j].Date) {
			return a.purchases[i].ID < a.purchases[j].ID
		}
		return a.purchases[i].Date.Before(a.purchases[j].Date)
	})
}

// PaidInstallments returns the purchase's billed installments as of asOf.
func (a *Account) PaidInstallments(purchase *Purchase, asOf time.Time) uint32 {
	return purchase.PaidInstallments(asOf, a.ClosingDay())
}

// RemainingInstallments returns the purchase's installments left as of asOf.
func (a *Account) RemainingInstallments(purchase *Purchase, asOf time.Time) uint32 {
	return purchase.RemainingInstallments(asOf, a.ClosingDay())
}

// RemainingValue returns the purchase's outstanding value as of asOf.
func (a *Account) RemainingValue(purchase *Purchase, asOf time.Time) decimal.Decimal {
	return purchase.RemainingValue(asOf, a.ClosingDay(), a.Policies.RemainingValue)
}

// IsFullyPaid reports whether the purchase stopped billing as of asOf.
func (a *Account) IsFullyPaid(purchase *Purchase, asOf time.Time) bool {
	return purchase.IsFullyPaid(asOf, a.ClosingDay())
}

// DueAmount sums the installment value of every purchase billed on the
// statement covering asOf.
func (a *Account) DueAmount(asOf time.Time) decimal.Decimal {
	a.mu.RLock()
	defer a.mu.RUnlock()

	total := decimal.Zero
	for _, purchase := range a.purchases {
		if purchase.IsActive(asOf, a.closingDay) {
			total = total.Add(purchase.InstallmentValue())
		}
	}
	return total
}

// ExpenseMap buckets the installment value of every purchase billed on the
// statement covering asOf, and not yet fully paid, by purchase type name.
func (a *Account) ExpenseMap(asOf time.Time) map[string]decimal.Decimal {
	a.mu.RLock()
	defer a.mu.RUnlock()

	expenses := make(map[string]decimal.Decimal)
	for _, purchase := range a.purchases {
		if !purchase.IsActive(asOf, a.closingDay) || purchase.IsFullyPaid(asOf, a.closingDay) {
			continue
		}

		name := purchase.TypeName()
		current, ok := expenses[name]
		if !ok {
			current = decimal.Zero
		}
		expenses[name] = current.Add(purchase.InstallmentValue())
	}
	return expenses
}

// UsedLimit is the outstanding exposure as of asOf: the full value of
// recurring purchases that have not ended, plus the remaining value of
// installment purchases that are not fully paid.
func (a *Account) UsedLimit(asOf time.Time) decimal.Decimal {
	a.mu.RLock()
	defer a.mu.RUnlock()

	total := decimal.Zero
	for _, purchase := range a.purchases {
		if purchase.IsFullyPaid(asOf, a.closingDay) {
			continue
		}

		switch purchase.Charge().(type) {
		case RecurringCharge:
			total = total.Add(purchase.Value())
		case InstallmentCharge:
			total = total.Add(purchase.RemainingValue(asOf, a.closingDay, a.Policies.RemainingValue))
		}
	}
	return total
}

// RemainingLimit is the limit minus the used limit.
func (a *Account) RemainingLimit(asOf time.Time) decimal.Decimal {
	used := a.UsedLimit(asOf)

	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.Limit.Sub(used)
}

// RefreshHistory rebuilds the statement history. today bounds how far
// recurring purchases that are still running are projected.
func (a *Account) RefreshHistory(today time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.refreshHistory(today)
}

// Hold marks the account as selected by one more session and rebuilds its
// history.
func (a *Account) Hold(today time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.holds++
	a.refreshHistory(today)
}

// Release undoes one Hold. The cached history is dropped once no session
// holds the account. Sessions that expire without deselecting keep their
// hold; the history then stays cached until the process restarts.
func (a *Account) Release() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.holds > 0 {
		a.holds--
	}
	if a.holds == 0 {
		a.history = nil
		a.hasHistory = false
	}
}

// ClearHistory drops the cached history.
func (a *Account) ClearHistory() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history = nil
	a.hasHistory = false
}

// HasHistory reports whether the history is populated.
func (a *Account) HasHistory() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.hasHistory
}

// History returns the cached statements in ascending date order.
func (a *Account) History() []*Statement {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return cloneStatements(a.history)
}

// StatementAt returns the cached statement whose cycle contains date.
func (a *Account) StatementAt(date time.Time) (*Statement, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	for _, statement := range a.history {
		if statement.IsCurrentStatement(date) {
			return statement.clone(), true
		}
	}
	return nil, false
}

func (a *Account) refreshHistory(today time.Time) {
	a.history = nil
	a.hasHistory = true

	if len(a.purchases) == 0 {
		return
	}

	closingDay := a.closingDay
	current := ClosingDateOf(TruncateDay(today), closingDay)

	var earliest, latest time.Time
	for i, purchase := range a.purchases {
		first := CoveringClosingDate(purchase.Date, closingDay)
		last := lastStatementDate(purchase, closingDay, current)

		if i == 0 || first.Before(earliest) {
			earliest = first
		}
		if i == 0 || last.After(latest) {
			latest = last
		}
	}
	if latest.Before(earliest) {
		latest = earliest
	}

	var history []*Statement
	for date := earliest; !date.After(latest); date = ShiftClosingDate(date, 1, closingDay) {
		history = append(history, a.buildStatement(date))
	}

	for len(history) > 0 && history[0].IsEmpty() {
		history = history[1:]
	}
	for len(history) > 0 && history[len(history)-1].IsEmpty() {
		history = history[:len(history)-1]
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date.Before(history[j].Date)
	})

	a.history = history
}

func (a *Account) buildStatement(date time.Time) *Statement {
	statement := &Statement{
		Date:      date,
		DueAmount: decimal.Zero,
	}

	for _, purchase := range a.purchases {
		if !purchase.IsActive(date, a.closingDay) {
			continue
		}

		if purchase.IsRecurring() {
			statement.Subscriptions = append(statement.Subscriptions, purchase)
		} else {
			statement.Purchases = append(statement.Purchases, purchase)
		}
		statement.DueAmount = statement.DueAmount.Add(purchase.InstallmentValue())
	}

	return statement
}

// lastStatementDate projects the last cycle a purchase can appear on.
// Installment purchases project date + installments months; recurring ones
// run to their end date's cycle but never past the current month.
func lastStatementDate(purchase *Purchase, closingDay uint32, current time.Time) time.Time {
	switch c := purchase.Charge().(type) {
	case RecurringCharge:
		end := ClosingDateOf(c.EndDate, closingDay)
		if end.After(current) {
			return current
		}
		return end
	case InstallmentCharge:
		return CoveringClosingDate(AddMonths(purchase.Date, int(c.Installments)), closingDay)
	}
	return CoveringClosingDate(purchase.Date, closingDay)
}
