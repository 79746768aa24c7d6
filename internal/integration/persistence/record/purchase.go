package record

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/financy/backend/internal/domain/entity"
)

// purchaseRecord fixes the key order of a written purchase.
type purchaseRecord struct {
	ID           uint32      `json:"id"`
	UserID       *uint32     `json:"userId,omitempty"`
	AccountID    uint32      `json:"accountId"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Date         string      `json:"date"`
	Type         int         `json:"type"`
	Value        json.Number `json:"value"`
	Installments uint32      `json:"installments"`
	EndDate      string      `json:"endDate,omitempty"`
}

// DecodePurchase reads a purchase record. A missing date or end date falls
// back to today, a missing userId leaves the purchase unassigned so the
// ledger can attribute it to the account owner.
func DecodePurchase(data []byte, today time.Time) (*entity.Purchase, error) {
	f, err := decodeFields(data)
	if err != nil {
		return nil, err
	}

	userID := entity.UnassignedUserID
	if f.has("userId") {
		userID = f.unsigned("userId", 0)
	}

	params := entity.PurchaseParams{
		Name:         f.text("name", ""),
		Description:  f.text("description", ""),
		Date:         f.date("date", today),
		Type:         entity.PurchaseType(f.unsigned("type", uint32(entity.PurchaseTypeOther))),
		Value:        f.number("value", decimal.Zero),
		Installments: f.unsigned("installments", 1),
	}
	if params.Type.IsRecurring() {
		params.EndDate = f.date("endDate", today)
	}

	return entity.NewPurchase(f.unsigned("id", 0), userID, f.unsigned("accountId", 0), params), nil
}

// EncodePurchase writes a purchase record. endDate is written for recurring
// purchases only.
func EncodePurchase(p *entity.Purchase) ([]byte, error) {
	return json.Marshal(purchaseRecordOf(p))
}

func purchaseRecordOf(p *entity.Purchase) purchaseRecord {
	r := purchaseRecord{
		ID:           p.ID,
		AccountID:    p.AccountID,
		Name:         p.Name,
		Description:  p.Description,
		Date:         entity.FormatDate(p.Date),
		Type:         int(p.Type()),
		Value:        number(p.Value()),
		Installments: p.Installments(),
	}
	if p.UserID != entity.UnassignedUserID {
		userID := p.UserID
		r.UserID = &userID
	}
	if p.IsRecurring() {
		r.EndDate = entity.FormatDate(p.EndDate())
	}
	return r
}
