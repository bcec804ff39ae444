package risk

import (
	"github.com/shopspring/decimal"
)

const (
	// MaxPrecision max precision of valuation results
	MaxPrecision = 8
)

var (
	// One 1.0
	One = decimal.New(1, 0)
	// SmallestUnit smallest representable positive severity
	SmallestUnit = decimal.New(1, -MaxPrecision)
)

// CollateralValue usd value of posted collateral shares
//
// value = shares * exchangeRate * price / 10^decimals
func CollateralValue(shares, exchangeRate, price decimal.Decimal, decimals uint8) decimal.Decimal {
	return shares.Mul(exchangeRate).Mul(price).Shift(-int32(decimals)).Truncate(MaxPrecision)
}

// DebtValue usd value of an outstanding debt balance
func DebtValue(balance, price decimal.Decimal, decimals uint8) decimal.Decimal {
	return balance.Mul(price).Shift(-int32(decimals)).Truncate(MaxPrecision)
}

// LFactor liquidation severity of an account whose undiscounted collateral
// values sum to softSum and hardSum after division by each asset's soft and
// hard liquidation ratios.
//
// Any account strictly past the soft threshold is liquidatable by at least
// SmallestUnit, so fixed-point truncation can never round an unhealthy
// account back to zero. hardSum <= softSum can only happen when a market was
// configured past validation; the account is past its soft threshold then, so
// full severity is returned instead of dividing by a non-positive span.
func LFactor(debtValue, softSum, hardSum decimal.Decimal) decimal.Decimal {
	if debtValue.LessThanOrEqual(softSum) {
		return decimal.Zero
	}

	if hardSum.LessThanOrEqual(softSum) {
		return One
	}

	if debtValue.GreaterThanOrEqual(hardSum) {
		return One
	}

	f := debtValue.Sub(softSum).
		Div(hardSum.Sub(softSum)).
		Truncate(MaxPrecision)
	if f.IsZero() {
		return SmallestUnit
	}
	if f.GreaterThan(One) {
		return One
	}

	return f
}

// DebtRepayable debt repayable from fully seizing collateral worth
// collateralValue at the given liquidation incentive (stored as 1+fraction)
func DebtRepayable(collateralValue, incentive decimal.Decimal) decimal.Decimal {
	if !incentive.IsPositive() {
		return decimal.Zero
	}
	return collateralValue.Div(incentive).Truncate(MaxPrecision)
}

// MaxRepay upper bound of debt repayable in one liquidation call
func MaxRepay(debtBalance, closeFactor decimal.Decimal) decimal.Decimal {
	return debtBalance.Mul(closeFactor).Truncate(MaxPrecision)
}

// SeizeAmount collateral base units seized for repaying repayValue of debt,
// marked up by the liquidation incentive
func SeizeAmount(repayValue, collateralPrice, incentive decimal.Decimal) decimal.Decimal {
	if !collateralPrice.IsPositive() {
		return decimal.Zero
	}
	return repayValue.Mul(incentive).Div(collateralPrice).Truncate(MaxPrecision)
}
