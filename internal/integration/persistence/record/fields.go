// Package record converts entities to and from their persisted JSON records.
// Decoding is lenient: a missing or wrong-typed field takes its default and
// never fails the record.
package record

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/financy/backend/internal/domain/entity"
)

// fields is a decoded JSON object whose values are parsed on access.
type fields map[string]json.RawMessage

func decodeFields(data []byte) (fields, error) {
	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f == nil {
		f = fields{}
	}
	return f, nil
}

func (f fields) has(key string) bool {
	_, ok := f[key]
	return ok
}

// unsigned accepts non-negative integers only. Floats, negatives and
// strings take the default.
func (f fields) unsigned(key string, def uint32) uint32 {
	raw, ok := f[key]
	if !ok {
		return def
	}
	value, err := strconv.ParseUint(string(raw), 10, 32)
	if err != nil {
		return def
	}
	return uint32(value)
}

func (f fields) text(key, def string) string {
	raw, ok := f[key]
	if !ok {
		return def
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return def
	}
	return value
}

// number accepts any JSON number, string-encoded numbers take the default.
func (f fields) number(key string, def decimal.Decimal) decimal.Decimal {
	raw, ok := f[key]
	if !ok {
		return def
	}
	var value json.Number
	if err := json.Unmarshal(raw, &value); err != nil || len(raw) == 0 || raw[0] == '"' {
		return def
	}
	parsed, err := decimal.NewFromString(value.String())
	if err != nil {
		return def
	}
	return parsed
}

func (f fields) date(key string, def time.Time) time.Time {
	raw, ok := f[key]
	if !ok {
		return def
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return def
	}
	parsed, err := entity.ParseDate(value)
	if err != nil {
		return def
	}
	return parsed
}

// unsignedList keeps the unsigned entries of an array and skips the rest.
func (f fields) unsignedList(key string) []uint32 {
	raw, ok := f[key]
	if !ok {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	values := make([]uint32, 0, len(items))
	for _, item := range items {
		value, err := strconv.ParseUint(string(item), 10, 32)
		if err != nil {
			continue
		}
		values = append(values, uint32(value))
	}
	return values
}

func number(value decimal.Decimal) json.Number {
	return json.Number(value.String())
}
