package stockbook

import (
	"fmt"

	"github.com/etnz/stockbook/date"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// check validates in and wraps any failure in ErrInvalid.
func check(in any) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// on returns d, or today for a zero date.
func on(d date.Date) string {
	if d.IsZero() {
		return date.Today().String()
	}
	return d.String()
}

// LotInput is the data entered for a new lot.
type LotInput struct {
	Name          string
	Date          date.Date // today when zero
	PurchaseTotal float64   `validate:"gte=0"` // in source currency
	CustomsTotal  float64   `validate:"gte=0"` // in sale currency
	Quantity      int       `validate:"min=1"`
	ExchangeRate  float64   `validate:"gte=0"` // configuration rate when zero
	Note          string
}

// AddLot appends a new lot. The lot keeps a copy of the exchange rate in use,
// later configuration changes do not affect it.
func (s *Snapshot) AddLot(in LotInput) (Lot, error) {
	if err := check(in); err != nil {
		return Lot{}, err
	}
	rate := A(in.ExchangeRate)
	if !rate.IsPositive() {
		rate = firstPositive(s.Config.ExchangeRate)
	}
	l := Lot{
		ID:                          newID(lotPrefix),
		Name:                        in.Name,
		Date:                        on(in.Date),
		PurchaseTotalSourceCurrency: A(in.PurchaseTotal),
		CustomsTotal:                A(in.CustomsTotal),
		Quantity:                    A(in.Quantity),
		ExchangeRate:                rate,
		Note:                        in.Note,
	}
	s.Lots = append(s.Lots, l)
	return l, nil
}

// ItemInput is the data entered for a new item.
type ItemInput struct {
	LotID        string // optional
	Name         string
	Channel      string
	Date         date.Date // today when zero
	Cost         float64   `validate:"gte=0"` // in source currency
	ExchangeRate float64   `validate:"gte=0"` // lot or configuration rate when zero
}

// AddItem appends a new item in stock.
func (s *Snapshot) AddItem(in ItemInput) (Item, error) {
	if err := check(in); err != nil {
		return Item{}, err
	}
	if in.LotID != "" {
		if _, ok := s.Lot(in.LotID); !ok {
			return Item{}, fmt.Errorf("lot %q: %w", in.LotID, ErrNotFound)
		}
	}
	it := Item{
		ID:                 newID(itemPrefix),
		LotID:              in.LotID,
		Name:               in.Name,
		Channel:            in.Channel,
		CostSourceCurrency: A(in.Cost),
		ExchangeRate:       A(in.ExchangeRate),
		Status:             InStock,
		NoShowType:         FixedDestination,
	}
	it.Dates.Set(InStock, on(in.Date))
	s.Items = append(s.Items, it)
	return it, nil
}

// ExpenseInput is the data entered for a new expense.
type ExpenseInput struct {
	Date     date.Date // today when zero
	Amount   float64   `validate:"gt=0"`
	Category string    // DefaultCategory when empty
	Note     string
}

// AddExpense appends a new expense.
func (s *Snapshot) AddExpense(in ExpenseInput) (Expense, error) {
	if err := check(in); err != nil {
		return Expense{}, err
	}
	e := Expense{
		ID:       newID(expensePrefix),
		Date:     on(in.Date),
		Amount:   A(in.Amount),
		Category: in.Category,
		Note:     in.Note,
	}
	if e.Category == "" {
		e.Category = DefaultCategory
	}
	s.Expenses = append(s.Expenses, e)
	return e, nil
}

// SaleInput is the data entered when an item is reserved by a customer.
// Empty fields and a nil Price leave the current value unchanged.
type SaleInput struct {
	Price         *float64 `validate:"omitempty,gte=0"` // in sale currency
	CustomerName  string
	Destination   string
	PickupDueDate string `validate:"omitempty,datetime=2006-01-02"`
	CourierName   string
	NoShowType    NoShowType `validate:"omitempty,oneof=fixed_destination custom"`
	Date          date.Date  // today when zero
}

// Reserve records a sale agreement on an item. An item still in stock moves
// to Reserved. The sale only counts once the item is collected.
func (s *Snapshot) Reserve(id string, in SaleInput) (Item, error) {
	if err := check(in); err != nil {
		return Item{}, err
	}
	i := s.itemIndex(id)
	if i < 0 {
		return Item{}, fmt.Errorf("item %q: %w", id, ErrNotFound)
	}
	it := &s.Items[i]
	setAmount(&it.SalePrice, in.Price)
	setIfNotEmpty(&it.SaleMeta.CustomerName, in.CustomerName)
	setIfNotEmpty(&it.SaleMeta.Destination, in.Destination)
	setIfNotEmpty(&it.SaleMeta.PickupDueDate, in.PickupDueDate)
	setIfNotEmpty(&it.SaleMeta.CourierName, in.CourierName)
	if in.NoShowType != "" {
		it.NoShowType = in.NoShowType
	}
	if it.Status == InStock {
		it.Status = Reserved
		it.Dates.Set(Reserved, on(in.Date))
	}
	return *it, nil
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// SetStatus moves an item to status st and records the date of the transition.
//
// When the item becomes a real sale with no helper cost yet, the configured
// HelperFixedFee is charged to it. This is the only place the fixed fee is
// used: the valuation always reads the item's own HelperCost.
func (s *Snapshot) SetStatus(id string, st Status, d date.Date) (Item, error) {
	if !st.IsKnown() {
		return Item{}, fmt.Errorf("%w: unknown status %q", ErrInvalid, st)
	}
	i := s.itemIndex(id)
	if i < 0 {
		return Item{}, fmt.Errorf("item %q: %w", id, ErrNotFound)
	}
	it := &s.Items[i]
	it.Status = st
	it.Dates.Set(st, on(d))
	if st.IsSale() && it.HelperCost.IsZero() {
		it.HelperCost = s.Config.HelperFixedFee
	}
	return *it, nil
}

// ConfigInput holds configuration changes, nil fields are left unchanged.
type ConfigInput struct {
	ExchangeRate        *float64 `validate:"omitempty,gt=0"`
	NoShowFixedPenalty  *float64 `validate:"omitempty,gte=0"`
	NoShowCustomPenalty *float64 `validate:"omitempty,gte=0"`
	HelperFixedFee      *float64 `validate:"omitempty,gte=0"`
	SaleCurrency        *string  `validate:"omitempty,iso4217"`
	SourceCurrency      *string  `validate:"omitempty,iso4217"`
}

// SetConfig applies configuration changes. Lots keep the rate they were
// created with.
func (s *Snapshot) SetConfig(in ConfigInput) (Config, error) {
	if err := check(in); err != nil {
		return s.Config, err
	}
	c := &s.Config
	setAmount(&c.ExchangeRate, in.ExchangeRate)
	setAmount(&c.NoShowFixedPenalty, in.NoShowFixedPenalty)
	setAmount(&c.NoShowCustomPenalty, in.NoShowCustomPenalty)
	setAmount(&c.HelperFixedFee, in.HelperFixedFee)
	if in.SaleCurrency != nil {
		c.SaleCurrency = *in.SaleCurrency
	}
	if in.SourceCurrency != nil {
		c.SourceCurrency = *in.SourceCurrency
	}
	return *c, nil
}

func setAmount(dst *Amount, v *float64) {
	if v != nil {
		*dst = A(*v)
	}
}
