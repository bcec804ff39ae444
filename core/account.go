package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Account per-account state shared across markets
type Account struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Address string `sql:"size:36;unique_index:account_idx" json:"address"`
	// state-changing actions within this window are rejected to blunt
	// flash-loan style manipulation
	CooldownUntil time.Time `json:"cooldown_until"`
	Version       int64     `sql:"default:0" json:"version"`
	CreatedAt     time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// LiquidityData solvency result; exactly one of the two is nonzero
type LiquidityData struct {
	ExcessLiquidity decimal.Decimal `json:"excess_liquidity"`
	Shortfall       decimal.Decimal `json:"shortfall"`
}

// SeverityData dynamic liquidation result
type SeverityData struct {
	// LFactor is the liquidation severity in [0, 1]
	LFactor         decimal.Decimal `json:"lfactor"`
	DebtPrice       decimal.Decimal `json:"debt_price"`
	CollateralPrice decimal.Decimal `json:"collateral_price"`
}

// BadDebtData whole-account seizure assessment
type BadDebtData struct {
	CollateralValue decimal.Decimal `json:"collateral_value"`
	// debt repayable from seizing all collateral at its liquidation incentive
	DebtRepayable decimal.Decimal `json:"debt_repayable"`
	DebtValue     decimal.Decimal `json:"debt_value"`
}

// IAccountStore account store interface
type IAccountStore interface {
	Save(ctx context.Context, tx *db.DB, account *Account) error
	Find(ctx context.Context, address string) (*Account, bool, error)
	Update(ctx context.Context, tx *db.DB, account *Account) error
}

// IAccountService account risk calculators; all read-only
type IAccountService interface {
	// CalculateLiquidity aggregates collateral and debt value across the
	// account's enrolled assets
	CalculateLiquidity(ctx context.Context, account string, tolerance PriceError) (*LiquidityData, error)
	// HypotheticalLiquidity evaluates liquidity as if redeemShares and
	// borrowAmount of the target asset were applied
	HypotheticalLiquidity(ctx context.Context, account, assetID string, redeemShares, borrowAmount decimal.Decimal, tolerance PriceError) (*LiquidityData, error)
	// LiquidationSeverity converts the collateral/debt relationship into a
	// continuous severity factor, reporting the two named asset prices back
	// for repay/seize math
	LiquidationSeverity(ctx context.Context, account, debtAssetID, collateralAssetID string) (*SeverityData, error)
	// AssessBadDebt values the account for whole-account seizure
	AssessBadDebt(ctx context.Context, account string) (*BadDebtData, error)
}
