package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// PriceError per-asset price error severity
type PriceError uint8

const (
	// PriceOK usable price
	PriceOK PriceError = iota
	// PriceCaution recoverable degradation, e.g. a stale but plausible feed
	PriceCaution
	// PriceBadSource fatal, the price must not be used
	PriceBadSource
)

// AssetPrice price with its error severity
type AssetPrice struct {
	AssetID string          `json:"asset_id"`
	Price   decimal.Decimal `json:"price"`
	Error   PriceError      `json:"error"`
}

// Snapshot ephemeral per-asset account view produced by the token collaborators
type Snapshot struct {
	AssetID      string          `json:"asset_id"`
	IsCollateral bool            `json:"is_collateral"`
	PostedShares decimal.Decimal `json:"posted_shares"`
	DebtBalance  decimal.Decimal `json:"debt_balance"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	Decimals     uint8           `json:"decimals"`
}

// Price persisted feed price
type Price struct {
	ID        int64           `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	AssetID   string          `sql:"size:36;unique_index:idx_prices" json:"asset_id,omitempty"`
	Price     decimal.Decimal `sql:"type:decimal(20,8)" json:"price,omitempty"`
	Provider  string          `sql:"size:64" json:"provider,omitempty"`
	Version   int64           `sql:"default:0" json:"version,omitempty"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at,omitempty"`
}

// PriceTicker price ticker
type PriceTicker struct {
	Provider string          `json:"provider,omitempty"`
	AssetID  string          `json:"asset_id,omitempty"`
	Symbol   string          `json:"symbol,omitempty"`
	Price    decimal.Decimal `json:"price,omitempty"`
}

// IPriceStore price store interface
type IPriceStore interface {
	Save(ctx context.Context, tx *db.DB, price *Price) error
	Find(ctx context.Context, assetID string) (*Price, bool, error)
	All(ctx context.Context) ([]*Price, error)
}

// IMarketToken asset collaborator, the cToken/dToken equivalent; never mutated
// through this interface
type IMarketToken interface {
	AssetID() string
	IsCollateral() bool
	Decimals() uint8
	GetAccountSnapshot(ctx context.Context, account string) (*Snapshot, error)
}

// ITokenRegistry resolves an asset id to its token collaborator
type ITokenRegistry interface {
	Token(ctx context.Context, assetID string) (IMarketToken, error)
}

// IPriceOracleService price oracle gateway interface
type IPriceOracleService interface {
	// GetSnapshotsAndPrices returns parallel snapshot and price batches for
	// the assets; any price whose error severity exceeds the tolerance aborts
	// with ErrPriceUnavailable, an asset without feed or collaborator with
	// ErrAssetNotSupported. Never returns a partial batch.
	GetSnapshotsAndPrices(ctx context.Context, account string, assetIDs []string, tolerance PriceError) ([]*Snapshot, []*AssetPrice, error)
	// GetCurrentPrice returns the latest graded price for one asset
	GetCurrentPrice(ctx context.Context, assetID string) (*AssetPrice, error)
	PullPriceTicker(ctx context.Context, assetID string, t time.Time) (*PriceTicker, error)
	PullAllPriceTickers(ctx context.Context, t time.Time) ([]*PriceTicker, error)
}
