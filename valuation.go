package stockbook

// ItemCost is the landed cost of one item, in sale currency.
type ItemCost struct {
	// Rate is the exchange rate actually used, in source currency per sale currency unit.
	Rate          Amount `json:"rate"`
	ConvertedCost Money  `json:"convertedCost"` // purchase cost converted to sale currency
	CustomsShare  Money  `json:"customsShare"`  // the item's share of its lot customs
	BaseCost      Money  `json:"baseCost"`      // ConvertedCost + CustomsShare
}

// ItemProfit is the profit of one item, in sale currency.
type ItemProfit struct {
	Revenue       Money `json:"revenue"`
	HelperFee     Money `json:"helperFee"`
	NoShowPenalty Money `json:"noShowPenalty"`
	TotalCost     Money `json:"totalCost"` // BaseCost + HelperFee + NoShowPenalty
	// Profit is Revenue - TotalCost for a real sale, and zero otherwise.
	Profit Money `json:"profit"`
}

// firstPositive returns the first positive rate, or DefaultExchangeRate.
func firstPositive(rates ...Amount) Amount {
	for _, r := range rates {
		if r.IsPositive() {
			return r
		}
	}
	return DefaultExchangeRate
}

// UnitCost computes the landed cost of an item.
//
// The rate is the item's own rate, then its lot's, then the configuration's,
// then DefaultExchangeRate, the first positive one winning. The customs share
// is zero for an item without a lot (or with an unknown lot).
func (s *Snapshot) UnitCost(it Item) ItemCost {
	cur := s.currency()
	lot, hasLot := s.Lot(it.LotID)

	var lotRate Amount
	if hasLot {
		lotRate = lot.ExchangeRate
	}
	rate := firstPositive(it.ExchangeRate, lotRate, s.Config.ExchangeRate)

	converted := M(it.CostSourceCurrency.Div(rate), cur)
	share := M(0, cur)
	if hasLot {
		share = M(lot.CustomsTotal.Div(lot.units()), cur)
	}
	return ItemCost{
		Rate:          rate,
		ConvertedCost: converted,
		CustomsShare:  share,
		BaseCost:      converted.Add(share),
	}
}

// NoShowPenalty returns the penalty charged for an item. Only a not collected
// item is charged.
func (s *Snapshot) NoShowPenalty(it Item) Money {
	cur := s.currency()
	if it.Status != NotCollected {
		return M(0, cur)
	}
	if it.NoShowType == Custom {
		return M(s.Config.NoShowCustomPenalty, cur)
	}
	return M(s.Config.NoShowFixedPenalty, cur)
}

// Profit computes the profit of an item.
//
// The helper fee is the item's own HelperCost: the configured HelperFixedFee
// is applied when the item is marked collected (see SetStatus), never here.
// An item that is not a real sale has a zero Profit whatever its sale price,
// so that a price entered ahead of the sale never shows in any total.
func (s *Snapshot) Profit(it Item) ItemProfit {
	cur := s.currency()
	base := s.UnitCost(it).BaseCost
	helper := M(it.HelperCost, cur)
	penalty := s.NoShowPenalty(it)
	revenue := M(it.SalePrice, cur)
	total := base.Add(helper).Add(penalty)

	profit := M(0, cur)
	if it.Status.IsSale() {
		profit = revenue.Sub(total)
	}
	return ItemProfit{
		Revenue:       revenue,
		HelperFee:     helper,
		NoShowPenalty: penalty,
		TotalCost:     total,
		Profit:        profit,
	}
}

// LotInvestment returns the sunk cost of a lot: its purchase converted at the
// lot rate plus its customs.
func (s *Snapshot) LotInvestment(l Lot) Money {
	cur := s.currency()
	rate := firstPositive(l.ExchangeRate, s.Config.ExchangeRate)
	purchase := M(l.PurchaseTotalSourceCurrency.Div(rate), cur)
	return purchase.Add(M(l.CustomsTotal, cur))
}

// LotRecovery returns the sale price of the lot's items that are real sales.
func (s *Snapshot) LotRecovery(lotID string) Money {
	total := M(0, s.currency())
	if lotID == "" {
		return total
	}
	for it := range s.sales() {
		if it.LotID == lotID {
			total = total.Add(M(it.SalePrice, s.currency()))
		}
	}
	return total
}

// TotalInvestment returns the investment of all lots.
func (s *Snapshot) TotalInvestment() Money {
	total := M(0, s.currency())
	for _, l := range s.Lots {
		total = total.Add(s.LotInvestment(l))
	}
	return total
}

// TotalRecovery returns the sale price of all real sales, with or without a lot.
func (s *Snapshot) TotalRecovery() Money {
	total := M(0, s.currency())
	for it := range s.sales() {
		total = total.Add(M(it.SalePrice, s.currency()))
	}
	return total
}

// Net returns TotalRecovery - TotalInvestment: positive once the sales paid
// back every lot.
func (s *Snapshot) Net() Money {
	return s.TotalRecovery().Sub(s.TotalInvestment())
}
