package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidExpense is returned when an expense cannot take part in a
	// balance computation (non-positive amount, no participants, ...).
	ErrInvalidExpense = errors.New("invalid expense")

	// ErrUnknownMember is returned when a member present in a balance map
	// cannot be resolved to a display name.
	ErrUnknownMember = errors.New("unknown member")

	// ErrDivisionRemainder marks an expense whose amount did not divide evenly
	// among its participants. It is informational and never aborts a computation.
	ErrDivisionRemainder = errors.New("division remainder")
)

// DivisionRemainder describes an expense whose equal split left minor units
// over. The remainder was charged to AssignedTo on top of its regular share.
type DivisionRemainder struct {
	ExpenseID    string
	Amount       decimal.Decimal
	Participants int
	Remainder    decimal.Decimal
	AssignedTo   string
}

func (r DivisionRemainder) Error() string {
	return fmt.Sprintf("%s: expense %s of %s split %d ways leaves %s, charged to %s",
		ErrDivisionRemainder, r.ExpenseID, r.Amount, r.Participants, r.Remainder, r.AssignedTo)
}

// Is lets errors.Is(r, ErrDivisionRemainder) match.
func (r DivisionRemainder) Is(target error) bool {
	return target == ErrDivisionRemainder
}

func invalidExpense(id, format string, args ...any) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidExpense, id, fmt.Sprintf(format, args...))
}
