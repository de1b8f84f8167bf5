package adjustment

import "errors"

var (
	ErrUnknownKind       = errors.New("unknown adjustment kind")
	ErrNonPositiveAmount = errors.New("adjustment amount must be positive")
)

// Validate checks the invariants of a single ledger row.
func (e Entry) Validate() error {
	if e.Kind != KindBonus && e.Kind != KindPenalty {
		return ErrUnknownKind
	}
	if !e.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	return nil
}
