package risk

import (
	"testing"

	"crossmargin/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var d = number.Decimal

func TestCollateralValue(t *testing.T) {
	// 120 shares at rate 1, price 1, 0 decimals
	assert.True(t, d("120").Equal(CollateralValue(d("120"), d("1"), d("1"), 0)))
	// base-unit balances are shifted down by decimals
	assert.True(t, d("120").Equal(CollateralValue(d("12000000000"), d("1"), d("1"), 8)))
	// exchange rate marks shares up to assets
	assert.True(t, d("126").Equal(CollateralValue(d("120"), d("1.05"), d("1"), 0)))
}

func TestLFactorBoundary(t *testing.T) {
	// one collateral asset worth 120, soft 1.20, hard 1.05:
	// softSum = 100, hardSum = 114.28571428...
	softSum := d("120").Div(d("1.20"))
	hardSum := d("120").Div(d("1.05"))

	require.True(t, d("100").Equal(softSum.Truncate(MaxPrecision)))

	assert.True(t, LFactor(d("100"), softSum, hardSum).IsZero())
	assert.True(t, LFactor(d("90"), softSum, hardSum).IsZero())

	mid := LFactor(d("110"), softSum, hardSum)
	assert.True(t, mid.GreaterThan(d("0.69")) && mid.LessThan(d("0.71")), "got %s", mid)

	assert.True(t, One.Equal(LFactor(d("114.29"), softSum, hardSum)))
	assert.True(t, One.Equal(LFactor(d("200"), softSum, hardSum)))
}

func TestLFactorNeverRoundsToZero(t *testing.T) {
	softSum := d("100")
	hardSum := d("1000000000000")

	// interpolation truncates to zero, the smallest unit is forced instead
	f := LFactor(d("100.0000000001"), softSum, hardSum)
	assert.True(t, f.Equal(SmallestUnit), "got %s", f)
	assert.True(t, f.IsPositive())
}

func TestLFactorMonotone(t *testing.T) {
	softSum := d("100")
	hardSum := d("114.28571428")

	prev := decimal.Zero
	for _, debt := range []string{"80", "100", "100.5", "104", "108", "112", "114.28571428", "120"} {
		f := LFactor(d(debt), softSum, hardSum)
		assert.True(t, f.GreaterThanOrEqual(prev), "severity decreased at debt %s", debt)
		assert.True(t, f.LessThanOrEqual(One))
		prev = f
	}
}

func TestLFactorDegenerateThresholds(t *testing.T) {
	// hardSum <= softSum only happens past configuration validation;
	// past the soft threshold the account must still be liquidatable
	assert.True(t, One.Equal(LFactor(d("101"), d("100"), d("100"))))
	assert.True(t, One.Equal(LFactor(d("101"), d("100"), d("90"))))
	assert.True(t, LFactor(d("99"), d("100"), d("90")).IsZero())
}

func TestDebtRepayable(t *testing.T) {
	// collateral worth 90 at incentive 1.05 repays ~85.71 of debt
	repayable := DebtRepayable(d("90"), d("1.05"))
	assert.True(t, d("85.71428571").Equal(repayable), "got %s", repayable)

	shortfall := d("100").Sub(repayable)
	assert.True(t, shortfall.GreaterThan(d("14.28")) && shortfall.LessThan(d("14.29")))

	assert.True(t, DebtRepayable(d("90"), decimal.Zero).IsZero())
}

func TestSeizeMath(t *testing.T) {
	assert.True(t, d("50").Equal(MaxRepay(d("100"), d("0.5"))))

	// repaying 100 of debt seizes 105 worth of collateral at price 2
	seized := SeizeAmount(d("100"), d("2"), d("1.05"))
	assert.True(t, d("52.5").Equal(seized), "got %s", seized)

	assert.True(t, SeizeAmount(d("100"), decimal.Zero, d("1.05")).IsZero())
}
