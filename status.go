package stockbook

import (
	"fmt"
	"strings"
)

// Status is the lifecycle state of an Item.
//
// The engine does not enforce a transition graph, it only interprets the
// current value.
type Status string

const (
	InStock      Status = "in_stock"
	Reserved     Status = "reserved"
	NotCollected Status = "not_collected"
	Reshipped    Status = "reshipped"
	Collected    Status = "collected"
	Deposited    Status = "deposited"
)

// Statuses lists the lifecycle states in their canonical order.
var Statuses = []Status{InStock, Reserved, NotCollected, Reshipped, Collected, Deposited}

// IsSale reports whether s is a real sale: only those count for revenue and profit.
func (s Status) IsSale() bool { return s == Collected || s == Deposited }

// IsKnown reports whether s is one of the canonical states.
func (s Status) IsKnown() bool {
	for _, k := range Statuses {
		if s == k {
			return true
		}
	}
	return false
}

// Label returns the human readable name of the status.
func (s Status) Label() string {
	switch s {
	case InStock:
		return "In stock"
	case Reserved:
		return "Reserved/Sold"
	case NotCollected:
		return "Not collected"
	case Reshipped:
		return "Reshipped"
	case Collected:
		return "Collected"
	case Deposited:
		return "Deposited"
	default:
		return string(s)
	}
}

// legacyStatus maps the labels written by the first version of the tracker.
var legacyStatus = map[string]Status{
	"en stock":          InStock,
	"reservado/vendido": Reserved,
	"no retirado":       NotCollected,
	"reenvío":           Reshipped,
	"reenvio":           Reshipped,
	"retirado":          Collected,
	"depositado":        Deposited,
}

// ParseStatus parses a status from its code, its label or a legacy label,
// case insensitive.
func ParseStatus(str string) (Status, error) {
	key := strings.ToLower(strings.TrimSpace(str))
	for _, s := range Statuses {
		if key == string(s) || key == strings.ToLower(s.Label()) {
			return s, nil
		}
	}
	if s, ok := legacyStatus[key]; ok {
		return s, nil
	}
	return "", fmt.Errorf("unknown status %q", str)
}

// NoShowType selects which penalty applies to a not collected item.
type NoShowType string

const (
	FixedDestination NoShowType = "fixed_destination"
	Custom           NoShowType = "custom"
)

// ParseNoShowType parses a no-show type from its code or a legacy label.
func ParseNoShowType(str string) (NoShowType, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case string(FixedDestination), "fixed", "destino fijo":
		return FixedDestination, nil
	case string(Custom), "personalizado":
		return Custom, nil
	}
	return "", fmt.Errorf("unknown no-show type %q", str)
}
