package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/stockbook"
	"github.com/google/subcommands"
	"github.com/xuri/excelize/v2"
)

// useTempBook points the global flags to a fresh stockbook in a temporary
// folder, and captures the printed reports.
func useTempBook(t *testing.T) *bytes.Buffer {
	t.Helper()
	dir, slot, wasPlain, wasOut := storeDir, storeSlot, plain, out

	tmp, name, yes := t.TempDir(), "test", true
	storeDir, storeSlot, plain = &tmp, &name, &yes
	var b bytes.Buffer
	out = &b

	t.Cleanup(func() { storeDir, storeSlot, plain, out = dir, slot, wasPlain, wasOut })
	return &b
}

// run executes a fresh subcommand with args and returns its status and what it printed.
func run(t *testing.T, out *bytes.Buffer, cmd subcommands.Command, args ...string) (subcommands.ExitStatus, string) {
	t.Helper()
	f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("%s %v: %v", cmd.Name(), args, err)
	}
	out.Reset()
	status := cmd.Execute(context.Background(), f)
	return status, out.String()
}

// mustRun is like run but fails the test if the command does not succeed.
func mustRun(t *testing.T, out *bytes.Buffer, cmd subcommands.Command, args ...string) string {
	t.Helper()
	status, printed := run(t, out, cmd, args...)
	if status != subcommands.ExitSuccess {
		t.Fatalf("%s %v = %v, want ExitSuccess", cmd.Name(), args, status)
	}
	return printed
}

// load reads back the stockbook the commands wrote.
func load(t *testing.T) *stockbook.Snapshot {
	t.Helper()
	s, err := stockbook.Open(bookStore())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// seed records a lot of 5 items, two jackets, and sells the first one.
func seed(t *testing.T, out *bytes.Buffer) (lot string, items []string) {
	t.Helper()
	lot = strings.TrimSpace(mustRun(t, out, &addLotCmd{}, "-name", "Spring", "-d", "2025-03-01", "-p", "750", "-c", "20", "-q", "5"))
	items = strings.Fields(mustRun(t, out, &addItemCmd{}, "-l", lot, "-name", "jacket", "-cost", "75", "-n", "2"))
	mustRun(t, out, &sellCmd{}, "-p", "30", "-customer", "Ana", items[0])
	mustRun(t, out, &statusCmd{}, "-d", "2025-03-10", items[0], "collected")
	return lot, items
}

func TestEntryCommands(t *testing.T) {
	out := useTempBook(t)
	lot, items := seed(t, out)
	mustRun(t, out, &addExpenseCmd{}, "-a", "5", "-m", "bags")

	s := load(t)
	if len(s.Lots) != 1 || s.Lots[0].ID != lot || s.Lots[0].Date != "2025-03-01" {
		t.Errorf("lots = %+v, want one lot %s of 2025-03-01", s.Lots, lot)
	}
	if len(items) != 2 || len(s.Items) != 2 {
		t.Fatalf("items = %v, stored %d, want 2", items, len(s.Items))
	}
	sold := s.Items[0]
	if sold.Status != stockbook.Collected || sold.Dates.Collected != "2025-03-10" || sold.SaleMeta.CustomerName != "Ana" {
		t.Errorf("sold item = %+v, want collected on 2025-03-10 by Ana", sold)
	}
	if s.Items[1].Status != stockbook.InStock {
		t.Errorf("second item status = %q, want %q", s.Items[1].Status, stockbook.InStock)
	}
	if len(s.Expenses) != 1 || s.Expenses[0].Category != stockbook.DefaultCategory {
		t.Errorf("expenses = %+v, want one General expense", s.Expenses)
	}
}

func TestSellKeepsPrice(t *testing.T) {
	out := useTempBook(t)
	_, items := seed(t, out)

	mustRun(t, out, &sellCmd{}, "-courier", "Cargo", items[0])
	it, ok := load(t).Item(items[0])
	if !ok {
		t.Fatalf("item %s not found", items[0])
	}
	if it.SalePrice.String() != "30" || it.SaleMeta.CourierName != "Cargo" || it.SaleMeta.CustomerName != "Ana" {
		t.Errorf("item = %+v, want price 30 and customer Ana kept, courier Cargo", it)
	}
}

func TestEntryCommandErrors(t *testing.T) {
	out := useTempBook(t)
	_, items := seed(t, out)

	tests := []struct {
		name string
		cmd  subcommands.Command
		args []string
		want subcommands.ExitStatus
	}{
		{"unknown status", &statusCmd{}, []string{items[1], "lost"}, subcommands.ExitUsageError},
		{"unknown item", &statusCmd{}, []string{"ITM_nope", "collected"}, subcommands.ExitFailure},
		{"missing args", &statusCmd{}, []string{items[1]}, subcommands.ExitUsageError},
		{"bad date", &addLotCmd{}, []string{"-d", "March", "-p", "1"}, subcommands.ExitUsageError},
		{"zero quantity", &addLotCmd{}, []string{"-q", "0"}, subcommands.ExitUsageError},
		{"unknown lot", &addItemCmd{}, []string{"-l", "LOT_nope"}, subcommands.ExitFailure},
		{"zero expense", &addExpenseCmd{}, []string{"-a", "0"}, subcommands.ExitUsageError},
		{"bad pickup", &sellCmd{}, []string{"-pickup", "soon", items[1]}, subcommands.ExitUsageError},
		{"bad no-show", &sellCmd{}, []string{"-noshow", "never", items[1]}, subcommands.ExitUsageError},
		{"bad currency", &configCmd{}, []string{"-sale", "DOLLAR"}, subcommands.ExitUsageError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got, _ := run(t, out, tc.cmd, tc.args...); got != tc.want {
				t.Errorf("%s %v = %v, want %v", tc.cmd.Name(), tc.args, got, tc.want)
			}
		})
	}

	if s := load(t); len(s.Lots) != 1 || len(s.Items) != 2 || len(s.Expenses) != 0 {
		t.Errorf("failed commands changed the stockbook: %d lots, %d items, %d expenses", len(s.Lots), len(s.Items), len(s.Expenses))
	}
}

func TestReportCommands(t *testing.T) {
	out := useTempBook(t)
	lot, _ := seed(t, out)

	tests := []struct {
		name string
		cmd  subcommands.Command
		args []string
		want []string
	}{
		{"summary", &summaryCmd{}, nil, []string{"| Investment | $120.00 |", "| Net | -$90.00 |", "| Collected | 1 |"}},
		{"lots", &lotsCmd{}, nil, []string{"| Spring | 2025-03-01 | 5 | 2 | 1 | $120.00 | $30.00 | -$90.00 |"}},
		{"items", &itemsCmd{}, nil, []string{"| jacket | " + lot + " | Collected |", "| jacket | " + lot + " | In stock |"}},
		{"items by status", &itemsCmd{}, []string{"-s", "in stock"}, []string{"| In stock |"}},
		{"config", &configCmd{}, nil, []string{"| Exchange rate (GTQ per USD) | 7.5 |"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := mustRun(t, out, tc.cmd, tc.args...)
			for _, want := range tc.want {
				if !strings.Contains(got, want) {
					t.Errorf("%s %v does not contain %q:\n%s", tc.cmd.Name(), tc.args, want, got)
				}
			}
		})
	}

	if got := mustRun(t, out, &itemsCmd{}, "-s", "reserved"); !strings.Contains(got, "No items match.") {
		t.Errorf("items -s reserved = %q, want no items", got)
	}
}

func TestConfigCommand(t *testing.T) {
	out := useTempBook(t)
	mustRun(t, out, &configCmd{}, "-rate", "7.8", "-helper-fee", "2")

	c := load(t).Config
	if c.ExchangeRate.String() != "7.8" || c.HelperFixedFee.String() != "2" {
		t.Errorf("config = %+v, want rate 7.8 and helper fee 2", c)
	}
	if c.NoShowCustomPenalty.String() != "3" || c.SaleCurrency != "USD" {
		t.Errorf("config = %+v, unset settings changed", c)
	}
}

func TestExportCommand(t *testing.T) {
	out := useTempBook(t)
	seed(t, out)

	got := mustRun(t, out, &exportCmd{}, "-r", "lots")
	if !strings.HasPrefix(got, "[\n  {") || !strings.Contains(got, `"name": "Spring"`) || !strings.Contains(got, `"investment": {`) {
		t.Errorf("export -r lots = %s", got)
	}

	xlsx := filepath.Join(t.TempDir(), "book.xlsx")
	mustRun(t, out, &exportCmd{}, "-o", xlsx)
	f, err := excelize.OpenFile(xlsx)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if got, want := f.GetSheetList(), []string{"Summary", "Lots", "Items", "Expenses"}; !slices.Equal(got, want) {
		t.Errorf("sheets = %v, want %v", got, want)
	}

	if status, _ := run(t, out, &exportCmd{}, "-format", "csv"); status != subcommands.ExitUsageError {
		t.Errorf("export -format csv = %v, want ExitUsageError", status)
	}
}

func TestQueryCommand(t *testing.T) {
	out := useTempBook(t)
	seed(t, out)

	got := mustRun(t, out, &queryCmd{}, `$.items[?(@.status=="collected")].saleMeta.customerName`)
	if want := "[\n  \"Ana\"\n]\n"; got != want {
		t.Errorf("query = %q, want %q", got, want)
	}
	if status, _ := run(t, out, &queryCmd{}, "$.items[?("); status != subcommands.ExitUsageError {
		t.Errorf("query with a bad path = %v, want ExitUsageError", status)
	}
}

func TestFmtCommand(t *testing.T) {
	out := useTempBook(t)
	legacy := `{"config":{"fx":8},"items":[{"name":"scarf","costQ":16,"status":"Retirado"}]}`
	if err := os.WriteFile(bookStore().Path(), []byte(legacy), 0644); err != nil {
		t.Fatal(err)
	}
	mustRun(t, out, &fmtCmd{}, nil...)

	b, err := os.ReadFile(bookStore().Path())
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"exchangeRate": 8`, `"costSourceCurrency": 16`, `"id": "ITM_`} {
		if !strings.Contains(string(b), want) {
			t.Errorf("formatted stockbook does not contain %q:\n%s", want, b)
		}
	}
}
