package stockbook

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/etnz/stockbook/date"
	"github.com/shopspring/decimal"
)

// Normalize returns a schema complete Snapshot from raw persisted data.
//
// raw is usually the result of decoding JSON into an `any`, but JSON text
// ([]byte, json.RawMessage, string) and Snapshot values are accepted too, so
// that Normalize(Normalize(x)) is well defined. Normalize never fails: any
// malformed part is replaced by its default.
//
// Defaults only replace absent or null values. An explicit 0 is kept. A value
// that is present but not numeric where a number is expected counts as absent.
// Keys written by the first version of the tracker (fx, qty, costQ, ...) are
// migrated to their current name, the current name winning when both exist.
//
// Missing identifiers are generated and missing dates are set to today, so
// the result should be saved right away to keep them stable.
func Normalize(raw any) *Snapshot {
	s := NewSnapshot()
	obj, ok := asObject(raw)
	if !ok {
		return s
	}
	s.Config = normalizeConfig(obj["config"])
	today := date.Today().String()

	for _, v := range asArray(obj["lots"]) {
		if m, ok := v.(map[string]any); ok {
			s.Lots = append(s.Lots, normalizeLot(m, s.Config, today))
		}
	}
	for _, v := range asArray(obj["items"]) {
		if m, ok := v.(map[string]any); ok {
			s.Items = append(s.Items, normalizeItem(m))
		}
	}
	for _, v := range asArray(obj["expenses"]) {
		if m, ok := v.(map[string]any); ok {
			s.Expenses = append(s.Expenses, normalizeExpense(m, today))
		}
	}
	return s
}

func normalizeConfig(v any) Config {
	m, _ := v.(map[string]any)
	return Config{
		ExchangeRate:        amountOr(m, DefaultExchangeRate, "exchangeRate", "fx"),
		NoShowFixedPenalty:  amountOr(m, defaultNoShowFixedPenalty, "noShowFixedPenalty", "noRetFixed"),
		NoShowCustomPenalty: amountOr(m, defaultNoShowCustomPenalty, "noShowCustomPenalty", "noRetCustom"),
		HelperFixedFee:      amountOr(m, Amount{}, "helperFixedFee", "mariitaFixed"),
		SaleCurrency:        nonEmptyOr(m, DefaultSaleCurrency, "saleCurrency"),
		SourceCurrency:      nonEmptyOr(m, DefaultSourceCurrency, "sourceCurrency"),
	}
}

func normalizeLot(m map[string]any, cfg Config, today string) Lot {
	return Lot{
		ID:                          nonEmptyOr(m, newID(lotPrefix), "id"),
		Name:                        textOr(m, "", "name"),
		Date:                        nonEmptyOr(m, today, "date"),
		PurchaseTotalSourceCurrency: amountOr(m, Amount{}, "purchaseTotalSourceCurrency", "purchaseTotalQ"),
		CustomsTotal:                amountOr(m, Amount{}, "customsTotal"),
		Quantity:                    amountOr(m, A(1), "quantity", "qty"),
		ExchangeRate:                amountOr(m, cfg.ExchangeRate, "exchangeRate", "fx"),
		Note:                        textOr(m, "", "note"),
	}
}

func normalizeItem(m map[string]any) Item {
	it := Item{
		ID:                 nonEmptyOr(m, newID(itemPrefix), "id"),
		LotID:              textOr(m, "", "lotId"),
		Name:               textOr(m, "", "name"),
		Channel:            textOr(m, "", "channel"),
		CostSourceCurrency: amountOr(m, Amount{}, "costSourceCurrency", "costQ"),
		ExchangeRate:       amountOr(m, Amount{}, "exchangeRate", "fx"),
		Status:             InStock,
		NoShowType:         FixedDestination,
		HelperCost:         amountOr(m, Amount{}, "helperCost", "mariitaCost"),
		SalePrice:          amountOr(m, Amount{}, "salePrice"),
	}
	if str := nonEmptyOr(m, "", "status"); str != "" {
		if st, err := ParseStatus(str); err == nil {
			it.Status = st
		} else {
			it.Status = Status(str)
		}
	}
	if str := nonEmptyOr(m, "", "noShowType", "noRetType"); str != "" {
		if nt, err := ParseNoShowType(str); err == nil {
			it.NoShowType = nt
		} else {
			it.NoShowType = NoShowType(str)
		}
	}

	meta, _ := m["saleMeta"].(map[string]any)
	it.SaleMeta = SaleMeta{
		CustomerName:  textOr(meta, "", "customerName"),
		Destination:   textOr(meta, "", "destination"),
		PickupDueDate: textOr(meta, "", "pickupDueDate"),
		CourierName:   textOr(meta, "", "courierName", "courier"),
	}

	dates, _ := m["dates"].(map[string]any)
	it.Dates = Dates{
		InStock:      textOr(dates, "", "inStock", "in"),
		Reserved:     textOr(dates, "", "reserved"),
		NotCollected: textOr(dates, "", "notCollected", "noRetirado"),
		Reshipped:    textOr(dates, "", "reshipped", "reenvio"),
		Collected:    textOr(dates, "", "collected", "retirado"),
		Deposited:    textOr(dates, "", "deposited", "depositado"),
	}
	return it
}

func normalizeExpense(m map[string]any, today string) Expense {
	return Expense{
		ID:       nonEmptyOr(m, newID(expensePrefix), "id"),
		Date:     nonEmptyOr(m, today, "date"),
		Amount:   amountOr(m, Amount{}, "amount"),
		Category: textOr(m, DefaultCategory, "category"),
		Note:     textOr(m, "", "note"),
	}
}

// asObject returns raw as a JSON object, decoding it first if needed.
func asObject(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return v, true
	case []byte:
		return decodeObject(v)
	case json.RawMessage:
		return decodeObject(v)
	case string:
		return decodeObject([]byte(v))
	case *Snapshot:
		if v == nil {
			return nil, false
		}
		return asObject(*v)
	case Snapshot:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, false
		}
		return decodeObject(b)
	}
	return nil, false
}

func decodeObject(b []byte) (map[string]any, bool) {
	v, err := decodeJSON(b)
	if err != nil {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// decodeJSON decodes a single JSON value, keeping numbers as json.Number.
func decodeJSON(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func asArray(v any) []any {
	a, _ := v.([]any)
	return a
}

// lookup returns the first non null value among keys.
func lookup(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// amountOr returns the first numeric value among keys, or def.
func amountOr(m map[string]any, def Amount, keys ...string) Amount {
	v, ok := lookup(m, keys...)
	if !ok {
		return def
	}
	d, ok := toDecimal(v)
	if !ok {
		return def
	}
	return Amount{value: d}
}

// textOr returns the first textual value among keys, or def.
func textOr(m map[string]any, def string, keys ...string) string {
	v, ok := lookup(m, keys...)
	if !ok {
		return def
	}
	str, ok := toText(v)
	if !ok {
		return def
	}
	return str
}

// nonEmptyOr is like textOr but an empty string also gives def.
func nonEmptyOr(m map[string]any, def string, keys ...string) string {
	if str := textOr(m, "", keys...); str != "" {
		return str
	}
	return def
}

// toDecimal converts a decoded JSON value to a number the way a spreadsheet
// user would expect: numbers and numeric strings convert, an empty string is
// 0, true is 1 and false is 0.
func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case string:
		str := strings.TrimSpace(n)
		if str == "" {
			return decimal.Zero, true
		}
		d, err := decimal.NewFromString(str)
		return d, err == nil
	case bool:
		if n {
			return decimal.NewFromInt(1), true
		}
		return decimal.Zero, true
	}
	return decimal.Zero, false
}

// toText converts a decoded JSON scalar to a string.
func toText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}
