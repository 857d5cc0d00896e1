package ledger

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Scale is the number of minor-unit digits amounts are held to (cents).
const Scale = 2

var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// CheckAmount reports whether amount is usable as an expense amount:
// strictly positive, at most Scale decimal places, and small enough to be
// counted in int64 minor units.
func CheckAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", amount)
	}
	minor := amount.Shift(Scale)
	if !minor.IsInteger() {
		return fmt.Errorf("amount %s has more than %d decimal places", amount, Scale)
	}
	if minor.GreaterThan(maxMinorUnits) {
		return fmt.Errorf("amount %s is too large", amount)
	}
	return nil
}

// Split divides amount into n equal shares of whole minor units.
//
// Every share is floor(amount / n) truncated to Scale digits. Whatever is left
// (amount - share*n, always fewer than n minor units) is added to the first
// share, so the shares always add back up to amount exactly. The returned
// remainder is that leftover, zero when the split is exact.
func Split(amount decimal.Decimal, n int) (shares []decimal.Decimal, remainder decimal.Decimal, err error) {
	if n <= 0 {
		return nil, decimal.Zero, fmt.Errorf("cannot split across %d participants", n)
	}
	if err := CheckAmount(amount); err != nil {
		return nil, decimal.Zero, err
	}

	minor := amount.Shift(Scale).IntPart()
	base := minor / int64(n)
	left := minor - base*int64(n)

	share := decimal.New(base, -Scale)
	shares = make([]decimal.Decimal, n)
	for i := range shares {
		shares[i] = share
	}
	remainder = decimal.New(left, -Scale)
	shares[0] = share.Add(remainder)

	return shares, remainder, nil
}
