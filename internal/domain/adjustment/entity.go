package adjustment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is a reward or a disciplinary deduction booked for a date.
type Entry struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Kind       Kind
	Amount     decimal.Decimal
	Reason     *string
}

type Kind string

const (
	KindBonus   Kind = "bonus"
	KindPenalty Kind = "penalty"
)

// Totals holds the per-kind sums of a set of entries.
type Totals struct {
	Bonus   decimal.Decimal
	Penalty decimal.Decimal
}

// Sum aggregates entries by kind.
func Sum(entries []Entry) Totals {
	totals := Totals{Bonus: decimal.Zero, Penalty: decimal.Zero}
	for _, e := range entries {
		switch e.Kind {
		case KindBonus:
			totals.Bonus = totals.Bonus.Add(e.Amount)
		case KindPenalty:
			totals.Penalty = totals.Penalty.Add(e.Amount)
		}
	}
	return totals
}
