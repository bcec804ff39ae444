package views

import (
	"crossmargin/core"

	"github.com/shopspring/decimal"
)

// Market market view
type Market struct {
	core.Market
	CurrentIncentive   decimal.Decimal `json:"current_incentive"`
	CurrentCloseFactor decimal.Decimal `json:"current_close_factor"`
}

// Liquidity account solvency view
type Liquidity struct {
	Account         string          `json:"account"`
	ExcessLiquidity decimal.Decimal `json:"excess_liquidity"`
	Shortfall       decimal.Decimal `json:"shortfall"`
}

// Severity account liquidation severity view
type Severity struct {
	Account         string          `json:"account"`
	LFactor         decimal.Decimal `json:"lfactor"`
	DebtPrice       decimal.Decimal `json:"debt_price"`
	CollateralPrice decimal.Decimal `json:"collateral_price"`
}

// BadDebt whole-account seizure view
type BadDebt struct {
	Account         string          `json:"account"`
	CollateralValue decimal.Decimal `json:"collateral_value"`
	DebtRepayable   decimal.Decimal `json:"debt_repayable"`
	DebtValue       decimal.Decimal `json:"debt_value"`
	Shortfall       decimal.Decimal `json:"shortfall"`
}
