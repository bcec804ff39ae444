package token

import (
	"context"

	"crossmargin/core"

	"github.com/shopspring/decimal"
)

// tokenRegistry resolves market tokens backed by the market and position
// stores. The calculators only ever see the IMarketToken capability; tests
// substitute a deterministic mock.
type tokenRegistry struct {
	marketStore   core.IMarketStore
	positionStore core.IPositionStore
}

// NewRegistry new store-backed token registry
func NewRegistry(marketStore core.IMarketStore, positionStore core.IPositionStore) core.ITokenRegistry {
	return &tokenRegistry{
		marketStore:   marketStore,
		positionStore: positionStore,
	}
}

func (r *tokenRegistry) Token(ctx context.Context, assetID string) (core.IMarketToken, error) {
	market, isRecordNotFound, err := r.marketStore.Find(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if isRecordNotFound {
		return nil, core.ErrAssetNotSupported
	}

	return &marketToken{
		market:        market,
		positionStore: r.positionStore,
	}, nil
}

type marketToken struct {
	market        *core.Market
	positionStore core.IPositionStore
}

func (t *marketToken) AssetID() string {
	return t.market.AssetID
}

func (t *marketToken) IsCollateral() bool {
	return t.market.IsCollateral()
}

func (t *marketToken) Decimals() uint8 {
	return t.market.Decimals
}

func (t *marketToken) GetAccountSnapshot(ctx context.Context, account string) (*core.Snapshot, error) {
	snapshot := &core.Snapshot{
		AssetID:      t.market.AssetID,
		IsCollateral: t.market.IsCollateral(),
		PostedShares: decimal.Zero,
		DebtBalance:  decimal.Zero,
		ExchangeRate: t.market.ExchangeRate,
		Decimals:     t.market.Decimals,
	}

	position, isRecordNotFound, err := t.positionStore.Find(ctx, account, t.market.AssetID)
	if err != nil {
		return nil, err
	}
	if isRecordNotFound || position.Status == core.PositionStatusInactive {
		return snapshot, nil
	}

	snapshot.PostedShares = position.CollateralPosted
	snapshot.DebtBalance = position.DebtPrincipal
	return snapshot, nil
}
