package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// MarketStatus market status
type MarketStatus int

const (
	// MarketStatusListed market is open for valuation
	MarketStatusListed MarketStatus = iota + 1
	// MarketStatusClosed market is delisted
	MarketStatusClosed
)

// MarketSide whether the token counts as collateral or as debt
type MarketSide int

const (
	// MarketSideCollateral collateral-type token
	MarketSideCollateral MarketSide = iota + 1
	// MarketSideDebt debt-type token
	MarketSideDebt
)

// Market per-asset risk configuration
type Market struct {
	ID      uint64       `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID string       `sql:"size:36;unique_index:asset_idx" json:"asset_id"`
	Symbol  string       `sql:"size:20;unique_index:symbol_idx" json:"symbol"`
	Side    MarketSide   `sql:"default:1" json:"side"`
	Status  MarketStatus `sql:"default:1" json:"status"`
	// base-unit decimals of the underlying asset
	Decimals uint8 `sql:"default:8" json:"decimals"`
	// 抵押因子, fraction of collateral value counted toward borrowing power, [0, 1]
	CollateralFactor decimal.Decimal `sql:"type:decimal(20,8)" json:"collateral_factor"`
	// collateral/debt ratio below which soft liquidation begins, e.g. 1.20
	SoftLiquidationRatio decimal.Decimal `sql:"type:decimal(20,8)" json:"soft_liquidation_ratio"`
	// collateral/debt ratio below which liquidation is maximal, hard <= soft
	HardLiquidationRatio decimal.Decimal `sql:"type:decimal(20,8)" json:"hard_liquidation_ratio"`
	// 清算激励, stored as 1 + incentive fraction, e.g. 1.05
	LiquidationIncentive decimal.Decimal `sql:"type:decimal(20,8)" json:"liquidation_incentive"`
	// extra incentive added linearly as severity rises from 0 to 1
	IncentiveCurve decimal.Decimal `sql:"type:decimal(20,8)" json:"incentive_curve"`
	// protocol share of the seized collateral, [0, 1]
	ProtocolSeizeShare decimal.Decimal `sql:"type:decimal(20,8)" json:"protocol_seize_share"`
	// 触发清算因子, base fraction of debt repayable in one liquidation call
	CloseFactor decimal.Decimal `sql:"type:decimal(20,8)" json:"close_factor"`
	// extra close factor added linearly with severity
	CloseFactorCurve decimal.Decimal `sql:"type:decimal(20,8)" json:"close_factor_curve"`
	// share/asset exchange rate reported by the token collaborator
	ExchangeRate decimal.Decimal `sql:"type:decimal(20,16);default:1" json:"exchange_rate"`
	// last oracle price accepted at listing or by the price sync worker
	Price          decimal.Decimal `sql:"type:decimal(20,8)" json:"price"`
	PriceUpdatedAt time.Time       `json:"price_updated_at"`
	Version        int64           `sql:"default:0" json:"version"`
	CreatedAt      time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IsListed check if market is listed
func (m *Market) IsListed() bool {
	return m.Status == MarketStatusListed
}

// IsCollateral check if the token counts as collateral
func (m *Market) IsCollateral() bool {
	return m.Side == MarketSideCollateral
}

// CurLiquidationIncentive incentive paid to the liquidator at the given severity
//
// incentive = base + lfactor * curve
func (m *Market) CurLiquidationIncentive(lfactor decimal.Decimal) decimal.Decimal {
	return m.LiquidationIncentive.Add(m.IncentiveCurve.Mul(lfactor))
}

// CurCloseFactor fraction of debt repayable in one call at the given severity,
// capped at 1
func (m *Market) CurCloseFactor(lfactor decimal.Decimal) decimal.Decimal {
	f := m.CloseFactor.Add(m.CloseFactorCurve.Mul(lfactor))
	if one := decimal.New(1, 0); f.GreaterThan(one) {
		return one
	}
	return f
}

// IMarketStore market store interface
type IMarketStore interface {
	Save(ctx context.Context, tx *db.DB, market *Market) error
	Find(ctx context.Context, assetID string) (*Market, bool, error)
	FindBySymbol(ctx context.Context, symbol string) (*Market, bool, error)
	All(ctx context.Context) ([]*Market, error)
	AllAsMap(ctx context.Context) (map[string]*Market, error)
	Update(ctx context.Context, tx *db.DB, market *Market) error
}

// IMarketService market registry interface
type IMarketService interface {
	// Configure validates and lists a new market; configuration changes
	// take effect for all subsequent evaluations
	Configure(ctx context.Context, market *Market) error
	// Lookup returns the market for the asset, ErrNotListed if absent
	Lookup(ctx context.Context, assetID string) (*Market, error)
	ListAll(ctx context.Context) ([]*Market, error)
}
