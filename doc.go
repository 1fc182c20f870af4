// Package stockbook tracks the inventory and the profitability of a reseller
// who buys lots in one currency and sells items in another.
//
// The state is a single Snapshot: a configuration, the purchase lots, the
// items they are divided into, and standalone expenses. It is persisted whole
// by a Store and always goes through Normalize after loading:
//
//	s, err := stockbook.Open(stockbook.NewFileStore(dir, ""))
//
// The valuation methods of Snapshot are pure: they convert item costs to the
// sale currency, allocate lot customs to items, apply no-show penalties and
// compute the profit of real sales (collected or deposited items), as well as
// the investment and recovery of lots and of the whole portfolio.
//
// This package is the foundation of the `sbk` command-line tool.
package stockbook
