package stockbook

import "github.com/google/uuid"

// Identifier prefixes, one per kind of record.
const (
	lotPrefix     = "LOT"
	itemPrefix    = "ITM"
	expensePrefix = "EXP"
)

// newID returns a new unique identifier like "ITM_6f1c...".
func newID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}
