package stockbook

import "fmt"

// Advice thresholds.
const (
	notCollectedAlert = 5
	reshippedAlert    = 5
	inStockAlert      = 30
)

// TidyAdvice is the only advice given when no rule fires.
const TidyAdvice = "Everything looks tidy. Keep lots and expenses up to date for an accurate picture."

// StatusCount is the number of items in a status.
type StatusCount struct {
	Status Status `json:"status"`
	Count  int    `json:"count"`
}

// Insights gathers the key figures of a snapshot and a few pieces of advice.
type Insights struct {
	Counts    []StatusCount `json:"counts"`  // canonical statuses first, unknown ones after
	Sold      int           `json:"sold"`    // number of real sales
	Losses    int           `json:"losses"`  // real sales with a negative profit
	Revenue   Money         `json:"revenue"` // sale price of real sales
	Profit    Money         `json:"profit"`  // profit of real sales
	Expenses  Money         `json:"expenses"`
	NetProfit Money         `json:"netProfit"` // Profit - Expenses

	Investment Money   `json:"investment"`
	Recovery   Money   `json:"recovery"`
	Net        Money   `json:"net"`
	Recovered  Percent `json:"recovered"` // Recovery / Investment

	Advice []string `json:"advice"`
}

// Count returns the number of items in status st.
func (in Insights) Count(st Status) int {
	for _, c := range in.Counts {
		if c.Status == st {
			return c.Count
		}
	}
	return 0
}

// Insights computes the key figures of the snapshot.
func (s *Snapshot) Insights() Insights {
	cur := s.currency()
	in := Insights{
		Revenue:    M(0, cur),
		Profit:     M(0, cur),
		Expenses:   M(0, cur),
		Investment: s.TotalInvestment(),
		Recovery:   s.TotalRecovery(),
		Net:        s.Net(),
	}
	in.Recovered = in.Recovery.Ratio(in.Investment)

	counts := make(map[Status]int)
	var unknown []Status
	for _, it := range s.Items {
		if !it.Status.IsKnown() && counts[it.Status] == 0 {
			unknown = append(unknown, it.Status)
		}
		counts[it.Status]++
	}
	for _, st := range append(append([]Status{}, Statuses...), unknown...) {
		in.Counts = append(in.Counts, StatusCount{Status: st, Count: counts[st]})
	}

	for it := range s.sales() {
		p := s.Profit(it)
		in.Sold++
		in.Revenue = in.Revenue.Add(p.Revenue)
		in.Profit = in.Profit.Add(p.Profit)
		if p.Profit.IsNegative() {
			in.Losses++
		}
	}
	for _, e := range s.Expenses {
		in.Expenses = in.Expenses.Add(M(e.Amount, cur))
	}
	in.NetProfit = in.Profit.Sub(in.Expenses)
	in.Advice = advise(in)
	return in
}

// advise returns the advice messages, in rule order.
func advise(in Insights) []string {
	var advice []string
	if n := in.Count(NotCollected); n >= notCollectedAlert {
		advice = append(advice, fmt.Sprintf("%d items were not collected: confirm pickups before reserving more to limit no-show penalties.", n))
	}
	if n := in.Count(Reshipped); n >= reshippedAlert {
		advice = append(advice, fmt.Sprintf("%d items are being reshipped: check destinations and courier costs.", n))
	}
	if n := in.Count(InStock); n >= inStockAlert {
		advice = append(advice, fmt.Sprintf("%d items are in stock: consider a promotion to turn inventory into cash.", n))
	}
	if in.Losses > 0 {
		advice = append(advice, fmt.Sprintf("%d sales closed at a loss: review prices against the landed cost.", in.Losses))
	}
	if in.Expenses.IsPositive() && in.Expenses.GreaterThan(in.Profit) {
		advice = append(advice, fmt.Sprintf("Expenses (%s) exceed the profit of sales (%s).", in.Expenses, in.Profit))
	}
	if in.Net.IsNegative() && in.Recovery.IsPositive() {
		advice = append(advice, fmt.Sprintf("%s of the investment recovered so far, %s still to recover.", in.Recovered, in.Net.Neg()))
	}
	if len(advice) == 0 {
		advice = append(advice, TidyAdvice)
	}
	return advice
}
