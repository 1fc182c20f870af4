package stockbook

import (
	"iter"
)

// Configuration defaults.
const (
	DefaultSaleCurrency   = "USD"
	DefaultSourceCurrency = "GTQ"
	DefaultCategory       = "General"
)

var (
	// DefaultExchangeRate is the rate used when no positive rate is known anywhere.
	DefaultExchangeRate        = A(7.5)
	defaultNoShowFixedPenalty  = A(1)
	defaultNoShowCustomPenalty = A(3)
)

// Config is the singleton configuration of a Snapshot.
type Config struct {
	// ExchangeRate is in source currency per unit of sale currency.
	ExchangeRate        Amount `json:"exchangeRate"`
	NoShowFixedPenalty  Amount `json:"noShowFixedPenalty"`
	NoShowCustomPenalty Amount `json:"noShowCustomPenalty"`
	HelperFixedFee      Amount `json:"helperFixedFee"`
	SaleCurrency        string `json:"saleCurrency"`
	SourceCurrency      string `json:"sourceCurrency"`
}

// DefaultConfig returns the configuration of an empty tracker.
func DefaultConfig() Config {
	return Config{
		ExchangeRate:        DefaultExchangeRate,
		NoShowFixedPenalty:  defaultNoShowFixedPenalty,
		NoShowCustomPenalty: defaultNoShowCustomPenalty,
		SaleCurrency:        DefaultSaleCurrency,
		SourceCurrency:      DefaultSourceCurrency,
	}
}

// Lot is a purchase batch, later divided into Items.
type Lot struct {
	ID                          string `json:"id"`
	Name                        string `json:"name"`
	Date                        string `json:"date"`
	PurchaseTotalSourceCurrency Amount `json:"purchaseTotalSourceCurrency"`
	// CustomsTotal is in sale currency.
	CustomsTotal Amount `json:"customsTotal"`
	// Quantity is the number of items the lot is divided into. It is kept as
	// entered, units() gives the divisor actually used.
	Quantity     Amount `json:"quantity"`
	ExchangeRate Amount `json:"exchangeRate"`
	Note         string `json:"note"`
}

// units returns the quantity floored and clamped to at least 1.
func (l Lot) units() Amount {
	q := l.Quantity.Floor()
	if q.LessThan(A(1)) {
		return A(1)
	}
	return q
}

// SaleMeta holds who bought an item and how it is delivered.
type SaleMeta struct {
	CustomerName  string `json:"customerName"`
	Destination   string `json:"destination"`
	PickupDueDate string `json:"pickupDueDate"`
	CourierName   string `json:"courierName"`
}

// Dates records when an item entered each lifecycle state.
type Dates struct {
	InStock      string `json:"inStock"`
	Reserved     string `json:"reserved"`
	NotCollected string `json:"notCollected"`
	Reshipped    string `json:"reshipped"`
	Collected    string `json:"collected"`
	Deposited    string `json:"deposited"`
}

// field returns the pointer to the date recorded for s, nil for an unknown status.
func (d *Dates) field(s Status) *string {
	switch s {
	case InStock:
		return &d.InStock
	case Reserved:
		return &d.Reserved
	case NotCollected:
		return &d.NotCollected
	case Reshipped:
		return &d.Reshipped
	case Collected:
		return &d.Collected
	case Deposited:
		return &d.Deposited
	}
	return nil
}

// Get returns the date recorded for s.
func (d Dates) Get(s Status) string {
	if p := d.field(s); p != nil {
		return *p
	}
	return ""
}

// Set records on as the date s was entered.
func (d *Dates) Set(s Status, on string) {
	if p := d.field(s); p != nil {
		*p = on
	}
}

// Item is one sellable unit.
type Item struct {
	ID                 string `json:"id"`
	LotID              string `json:"lotId"`
	Name               string `json:"name"`
	Channel            string `json:"channel"`
	CostSourceCurrency Amount `json:"costSourceCurrency"`
	// ExchangeRate overrides the lot and configuration rates when positive.
	ExchangeRate Amount     `json:"exchangeRate,omitzero"`
	Status       Status     `json:"status"`
	NoShowType   NoShowType `json:"noShowType"`
	HelperCost   Amount     `json:"helperCost"`
	SalePrice    Amount     `json:"salePrice"`
	SaleMeta     SaleMeta   `json:"saleMeta"`
	Dates        Dates      `json:"dates"`
}

// Expense is a ledger line not tied to lots or items.
type Expense struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Amount   Amount `json:"amount"`
	Category string `json:"category"`
	Note     string `json:"note"`
}

// Snapshot is the whole persisted state of the tracker.
//
// All valuation methods are read-only and can be called any number of times on
// the same Snapshot.
type Snapshot struct {
	Config   Config    `json:"config"`
	Lots     []Lot     `json:"lots"`
	Items    []Item    `json:"items"`
	Expenses []Expense `json:"expenses"`
}

// NewSnapshot returns an empty snapshot with the default configuration.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Config:   DefaultConfig(),
		Lots:     make([]Lot, 0),
		Items:    make([]Item, 0),
		Expenses: make([]Expense, 0),
	}
}

// Lot returns the lot with this id.
func (s *Snapshot) Lot(id string) (Lot, bool) {
	if i := s.lotIndex(id); i >= 0 {
		return s.Lots[i], true
	}
	return Lot{}, false
}

// Item returns the item with this id.
func (s *Snapshot) Item(id string) (Item, bool) {
	if i := s.itemIndex(id); i >= 0 {
		return s.Items[i], true
	}
	return Item{}, false
}

func (s *Snapshot) lotIndex(id string) int {
	if id == "" {
		return -1
	}
	for i, l := range s.Lots {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (s *Snapshot) itemIndex(id string) int {
	if id == "" {
		return -1
	}
	for i, it := range s.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// sales returns an iterator over the items that are a real sale.
func (s *Snapshot) sales() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for _, it := range s.Items {
			if !it.Status.IsSale() {
				continue
			}
			if !yield(it) {
				return
			}
		}
	}
}

// currency returns the sale currency every valuation is expressed in.
func (s *Snapshot) currency() string { return s.Config.SaleCurrency }
