package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockbook"
	"github.com/google/subcommands"
)

// edit opens the stockbook, applies change and saves the stockbook back.
func edit(change func(s *stockbook.Snapshot) error) subcommands.ExitStatus {
	s, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := change(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, stockbook.ErrInvalid) {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}
	if err := saveBook(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving stockbook %q: %v\n", bookStore().Path(), err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// --- Add Lot Command ---

type addLotCmd struct {
	name     string
	date     string
	purchase float64
	customs  float64
	quantity int
	rate     float64
	note     string
}

func (*addLotCmd) Name() string     { return "add-lot" }
func (*addLotCmd) Synopsis() string { return "record a purchase of several items" }
func (*addLotCmd) Usage() string {
	return `sbk add-lot -p <purchase> -q <quantity> [-c <customs>] [-name <name>] [-d <date>] [-r <rate>] [-m <note>]

  Records a lot: a purchase paid in the source currency, of a number of items,
  with customs paid in the sale currency. The customs are shared equally by
  the items of the lot. The lot keeps the current exchange rate unless -r is given.
`
}

func (c *addLotCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name of the lot")
	f.StringVar(&c.date, "d", "", "Purchase date (YYYY-MM-DD), defaults to today")
	f.Float64Var(&c.purchase, "p", 0, "Purchase total, in source currency")
	f.Float64Var(&c.customs, "c", 0, "Customs total, in sale currency")
	f.IntVar(&c.quantity, "q", 1, "Number of items in the lot")
	f.Float64Var(&c.rate, "r", 0, "Exchange rate, source currency units per sale currency unit")
	f.StringVar(&c.note, "m", "", "An optional note")
}

func (c *addLotCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return edit(func(s *stockbook.Snapshot) error {
		lot, err := s.AddLot(stockbook.LotInput{
			Name:          c.name,
			Date:          day,
			PurchaseTotal: c.purchase,
			CustomsTotal:  c.customs,
			Quantity:      c.quantity,
			ExchangeRate:  c.rate,
			Note:          c.note,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(out, lot.ID)
		return nil
	})
}

// --- Add Item Command ---

type addItemCmd struct {
	lot     string
	name    string
	channel string
	date    string
	cost    float64
	rate    float64
	count   int
}

func (*addItemCmd) Name() string     { return "add-item" }
func (*addItemCmd) Synopsis() string { return "put items in stock" }
func (*addItemCmd) Usage() string {
	return `sbk add-item -name <name> -cost <cost> [-l <lot>] [-ch <channel>] [-d <date>] [-r <rate>] [-n <count>]

  Puts new items in stock, and prints their ids. The cost is in the source
  currency. Items of a lot share the lot customs and use the lot exchange rate
  unless -r is given.
`
}

func (c *addItemCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.lot, "l", "", "Lot the item belongs to")
	f.StringVar(&c.name, "name", "", "Name of the item")
	f.StringVar(&c.channel, "ch", "", "Sales channel")
	f.StringVar(&c.date, "d", "", "Date the item is in stock (YYYY-MM-DD), defaults to today")
	f.Float64Var(&c.cost, "cost", 0, "Cost of the item, in source currency")
	f.Float64Var(&c.rate, "r", 0, "Exchange rate, source currency units per sale currency unit")
	f.IntVar(&c.count, "n", 1, "Number of identical items to add")
}

func (c *addItemCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.count < 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return edit(func(s *stockbook.Snapshot) error {
		for range c.count {
			it, err := s.AddItem(stockbook.ItemInput{
				LotID:        c.lot,
				Name:         c.name,
				Channel:      c.channel,
				Date:         day,
				Cost:         c.cost,
				ExchangeRate: c.rate,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(out, it.ID)
		}
		return nil
	})
}

// --- Add Expense Command ---

type addExpenseCmd struct {
	date     string
	amount   float64
	category string
	note     string
}

func (*addExpenseCmd) Name() string     { return "add-expense" }
func (*addExpenseCmd) Synopsis() string { return "record an operating expense" }
func (*addExpenseCmd) Usage() string {
	return `sbk add-expense -a <amount> [-c <category>] [-d <date>] [-m <note>]

  Records an expense in the sale currency. Expenses are deducted from the
  profit of sales in the summary.
`
}

func (c *addExpenseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Expense date (YYYY-MM-DD), defaults to today")
	f.Float64Var(&c.amount, "a", 0, "Amount, in sale currency")
	f.StringVar(&c.category, "c", stockbook.DefaultCategory, "Category")
	f.StringVar(&c.note, "m", "", "An optional note")
}

func (c *addExpenseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return edit(func(s *stockbook.Snapshot) error {
		e, err := s.AddExpense(stockbook.ExpenseInput{Date: day, Amount: c.amount, Category: c.category, Note: c.note})
		if err != nil {
			return err
		}
		fmt.Fprintln(out, e.ID)
		return nil
	})
}

// --- Sell Command ---

type sellCmd struct {
	date     string
	price    float64
	customer string
	dest     string
	pickup   string
	courier  string
	noShow   string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "reserve an item for a customer at a price" }
func (*sellCmd) Usage() string {
	return `sbk sell [-p <price>] [-customer <name>] [-dest <destination>] [-pickup <date>] [-courier <name>] [-noshow <type>] <item-id>

  Records the sale agreement of an item. An item in stock becomes reserved,
  the sale counts once the item is collected (see 'sbk status').
  Flags not given leave the recorded values unchanged, so sell also updates
  the delivery details of a reserved item.
  -noshow selects the penalty if the customer never collects: fixed_destination or custom.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Reservation date (YYYY-MM-DD), defaults to today")
	f.Float64Var(&c.price, "p", 0, "Sale price, in sale currency")
	f.StringVar(&c.customer, "customer", "", "Customer name")
	f.StringVar(&c.dest, "dest", "", "Destination")
	f.StringVar(&c.pickup, "pickup", "", "Pickup due date (YYYY-MM-DD)")
	f.StringVar(&c.courier, "courier", "", "Courier name")
	f.StringVar(&c.noShow, "noshow", "", "No-show penalty type: fixed_destination or custom")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	var price *float64
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == "p" {
			price = &c.price
		}
	})
	var noShow stockbook.NoShowType
	if c.noShow != "" {
		if noShow, err = stockbook.ParseNoShowType(c.noShow); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}
	return edit(func(s *stockbook.Snapshot) error {
		it, err := s.Reserve(f.Arg(0), stockbook.SaleInput{
			Price:         price,
			CustomerName:  c.customer,
			Destination:   c.dest,
			PickupDueDate: c.pickup,
			CourierName:   c.courier,
			NoShowType:    noShow,
			Date:          day,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s is %s\n", it.ID, it.Status.Label())
		return nil
	})
}

// --- Status Command ---

type statusCmd struct {
	date string
}

func (*statusCmd) Name() string     { return "status" }
func (*statusCmd) Synopsis() string { return "move an item to another status" }
func (*statusCmd) Usage() string {
	return `sbk status [-d <date>] <item-id> <status>

  Moves an item to a status and records the date of the change. Statuses are
  in_stock, reserved, not_collected, reshipped, collected and deposited.
  A collected or deposited item is a sale: when it has no helper cost yet,
  the configured helper fixed fee is charged to it.
`
}

func (c *statusCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the change (YYYY-MM-DD), defaults to today")
}

func (c *statusCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	st, err := stockbook.ParseStatus(f.Arg(1))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	day, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return edit(func(s *stockbook.Snapshot) error {
		it, err := s.SetStatus(f.Arg(0), st, day)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s is %s\n", it.ID, it.Status.Label())
		return nil
	})
}
