package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name          string
		amount        string
		n             int
		wantShares    []string
		wantRemainder string
		wantErr       bool
	}{
		{name: "even split", amount: "90", n: 3, wantShares: []string{"30", "30", "30"}, wantRemainder: "0"},
		{name: "one cent left", amount: "100", n: 3, wantShares: []string{"33.34", "33.33", "33.33"}, wantRemainder: "0.01"},
		{name: "several cents left go to first", amount: "10", n: 7, wantShares: []string{"1.48", "1.42", "1.42", "1.42", "1.42", "1.42", "1.42"}, wantRemainder: "0.06"},
		{name: "smaller than participants", amount: "0.02", n: 3, wantShares: []string{"0.02", "0", "0"}, wantRemainder: "0.02"},
		{name: "single participant", amount: "19.99", n: 1, wantShares: []string{"19.99"}, wantRemainder: "0"},
		{name: "no participants", amount: "10", n: 0, wantErr: true},
		{name: "zero amount", amount: "0", n: 2, wantErr: true},
		{name: "too many decimals", amount: "0.001", n: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, remainder, err := Split(d(tt.amount), tt.n)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, shares, len(tt.wantShares))

			sum := decimal.Zero
			for i, want := range tt.wantShares {
				assert.True(t, d(want).Equal(shares[i]), "share %d: got %s, want %s", i, shares[i], want)
				sum = sum.Add(shares[i])
			}
			assert.True(t, d(tt.amount).Equal(sum), "shares sum to %s", sum)
			assert.True(t, d(tt.wantRemainder).Equal(remainder), "remainder: got %s", remainder)
		})
	}
}

func TestCheckAmount(t *testing.T) {
	assert.NoError(t, CheckAmount(d("0.01")))
	assert.NoError(t, CheckAmount(d("1000000.50")))
	assert.Error(t, CheckAmount(d("-0.01")))
	assert.Error(t, CheckAmount(d("2.345")))
	assert.Error(t, CheckAmount(d("1e30")))
}
