package stockbook

// LotLine is the valuation of a lot.
type LotLine struct {
	Lot        Lot   `json:"lot"`
	Items      int   `json:"items"` // items allocated to the lot
	Sold       int   `json:"sold"`  // of which real sales
	Investment Money `json:"investment"`
	Recovery   Money `json:"recovery"`
	Net        Money `json:"net"` // Recovery - Investment
}

// LotLines returns one line per lot, in snapshot order.
func (s *Snapshot) LotLines() []LotLine {
	lines := make([]LotLine, 0, len(s.Lots))
	for _, l := range s.Lots {
		line := LotLine{
			Lot:        l,
			Investment: s.LotInvestment(l),
			Recovery:   s.LotRecovery(l.ID),
		}
		line.Net = line.Recovery.Sub(line.Investment)
		for _, it := range s.Items {
			if it.LotID != l.ID {
				continue
			}
			line.Items++
			if it.Status.IsSale() {
				line.Sold++
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// ItemLine is the valuation of an item.
type ItemLine struct {
	Item Item     `json:"item"`
	Cost ItemCost `json:"cost"`
	ItemProfit
}

// ItemFilter selects items. A nil filter selects all items.
type ItemFilter func(Item) bool

// ByStatus selects the items in status st.
func ByStatus(st Status) ItemFilter { return func(it Item) bool { return it.Status == st } }

// ByLot selects the items of a lot.
func ByLot(lotID string) ItemFilter { return func(it Item) bool { return it.LotID == lotID } }

// ItemLines returns one line per item selected by all filters, in snapshot order.
func (s *Snapshot) ItemLines(filters ...ItemFilter) []ItemLine {
	var lines []ItemLine
next:
	for _, it := range s.Items {
		for _, f := range filters {
			if f != nil && !f(it) {
				continue next
			}
		}
		lines = append(lines, ItemLine{
			Item:       it,
			Cost:       s.UnitCost(it),
			ItemProfit: s.Profit(it),
		})
	}
	return lines
}
