package stockbook

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExportJSON writes payload as indented JSON.
func ExportJSON(w io.Writer, payload any) error {
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode export: %w", err)
	}
	_, err = w.Write(b)
	return err
}

// ExportWorkbook writes the snapshot and its valuation as an XLSX workbook
// with one sheet for the summary, the lots, the items and the expenses.
func ExportWorkbook(w io.Writer, s *Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return err
	}
	for _, name := range []string{"Lots", "Items", "Expenses"} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	in := s.Insights()
	summary := [][]any{
		{"Metric", "Value"},
		{"Currency", s.Config.SaleCurrency},
		{"Investment", in.Investment.InexactFloat64()},
		{"Recovery", in.Recovery.InexactFloat64()},
		{"Net", in.Net.InexactFloat64()},
		{"Revenue", in.Revenue.InexactFloat64()},
		{"Profit", in.Profit.InexactFloat64()},
		{"Expenses", in.Expenses.InexactFloat64()},
		{"Net profit", in.NetProfit.InexactFloat64()},
	}
	for _, c := range in.Counts {
		summary = append(summary, []any{c.Status.Label(), c.Count})
	}
	if err := writeRows(f, "Summary", summary); err != nil {
		return err
	}

	lots := [][]any{{"ID", "Name", "Date", "Quantity", "Rate", "Purchase", "Customs", "Items", "Sold", "Investment", "Recovery", "Net"}}
	for _, l := range s.LotLines() {
		lots = append(lots, []any{
			l.Lot.ID, l.Lot.Name, l.Lot.Date,
			l.Lot.Quantity.InexactFloat64(), l.Lot.ExchangeRate.InexactFloat64(),
			l.Lot.PurchaseTotalSourceCurrency.InexactFloat64(), l.Lot.CustomsTotal.InexactFloat64(),
			l.Items, l.Sold,
			l.Investment.InexactFloat64(), l.Recovery.InexactFloat64(), l.Net.InexactFloat64(),
		})
	}
	if err := writeRows(f, "Lots", lots); err != nil {
		return err
	}

	items := [][]any{{"ID", "Lot", "Name", "Status", "Customer", "Rate", "Base cost", "Helper", "Penalty", "Total cost", "Revenue", "Profit"}}
	for _, l := range s.ItemLines() {
		items = append(items, []any{
			l.Item.ID, l.Item.LotID, l.Item.Name, l.Item.Status.Label(), l.Item.SaleMeta.CustomerName,
			l.Cost.Rate.InexactFloat64(), l.Cost.BaseCost.InexactFloat64(),
			l.HelperFee.InexactFloat64(), l.NoShowPenalty.InexactFloat64(), l.TotalCost.InexactFloat64(),
			l.Revenue.InexactFloat64(), l.Profit.InexactFloat64(),
		})
	}
	if err := writeRows(f, "Items", items); err != nil {
		return err
	}

	expenses := [][]any{{"ID", "Date", "Category", "Amount", "Note"}}
	for _, e := range s.Expenses {
		expenses = append(expenses, []any{e.ID, e.Date, e.Category, e.Amount.InexactFloat64(), e.Note})
	}
	if err := writeRows(f, "Expenses", expenses); err != nil {
		return err
	}

	return f.Write(w)
}

// writeRows writes rows in sheet, starting at A1.
func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("cannot write %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
