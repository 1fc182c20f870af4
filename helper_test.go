package stockbook

// USD is a helper for test to create sale currency money from const.
func USD(v float64) Money { return M(v, "USD") }

// example returns the snapshot of the reference example: one lot of 5 items
// bought 750 GTQ at 7.5 with 20 USD of customs, and one collected item.
func example() *Snapshot {
	s := NewSnapshot()
	s.Lots = append(s.Lots, Lot{
		ID:                          "L1",
		PurchaseTotalSourceCurrency: A(750),
		CustomsTotal:                A(20),
		Quantity:                    A(5),
		ExchangeRate:                A(7.5),
	})
	s.Items = append(s.Items, Item{
		ID:                 "I1",
		LotID:              "L1",
		CostSourceCurrency: A(75),
		Status:             Collected,
		NoShowType:         FixedDestination,
		SalePrice:          A(30),
		HelperCost:         A(2),
	})
	return s
}
