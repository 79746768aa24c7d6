package record

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/financy/backend/internal/domain/entity"
)

// DefaultLimit is the limit of an account record without one.
var DefaultLimit = decimal.NewFromInt(1)

type accountRecord struct {
	ID             uint32      `json:"id"`
	UserID         uint32      `json:"userId"`
	SharedUserIDs  []uint32    `json:"sharedUserIds"`
	Name           string      `json:"name"`
	ClosingDay     uint32      `json:"closingDay"`
	Type           int         `json:"type"`
	Limit          json.Number `json:"limit"`
	PrimaryColor   string      `json:"primaryColor"`
	SecondaryColor string      `json:"secondaryColor"`
}

// DecodeAccount reads an account record. Purchases are stored separately and
// attached by the ledger.
func DecodeAccount(data []byte) (*entity.Account, error) {
	f, err := decodeFields(data)
	if err != nil {
		return nil, err
	}

	account := entity.NewAccount(f.unsigned("id", 0), f.unsigned("userId", 0), entity.AccountParams{
		Name:           f.text("name", ""),
		ClosingDay:     f.unsigned("closingDay", 1),
		Type:           entity.AccountType(f.unsigned("type", uint32(entity.AccountTypeExpense))),
		Limit:          f.number("limit", DefaultLimit),
		PrimaryColor:   f.text("primaryColor", entity.DefaultPrimaryColor),
		SecondaryColor: f.text("secondaryColor", entity.DefaultSecondaryColor),
	})
	account.SetSharedUserIDs(f.unsignedList("sharedUserIds"))
	return account, nil
}

// EncodeAccount writes an account record.
func EncodeAccount(a *entity.Account) ([]byte, error) {
	return json.Marshal(accountRecordOf(a))
}

func accountRecordOf(a *entity.Account) accountRecord {
	shared := a.SharedUserIDs()
	if shared == nil {
		shared = []uint32{}
	}
	details := a.Details()
	return accountRecord{
		ID:             a.ID,
		UserID:         a.UserID,
		SharedUserIDs:  shared,
		Name:           details.Name,
		ClosingDay:     details.ClosingDay,
		Type:           int(details.Type),
		Limit:          number(details.Limit),
		PrimaryColor:   details.PrimaryColor,
		SecondaryColor: details.SecondaryColor,
	}
}
