package market

import (
	"context"
	"time"

	"crossmargin/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type marketService struct {
	db           *db.DB
	marketStore  core.IMarketStore
	priceService core.IPriceOracleService
}

// New new market service
func New(db *db.DB, marketStore core.IMarketStore, priceSrv core.IPriceOracleService) core.IMarketService {
	return &marketService{
		db:           db,
		marketStore:  marketStore,
		priceService: priceSrv,
	}
}

func (s *marketService) Configure(ctx context.Context, market *core.Market) error {
	if err := validate(market); err != nil {
		return err
	}

	existing, isRecordNotFound, err := s.marketStore.Find(ctx, market.AssetID)
	if err != nil {
		return err
	}
	if !isRecordNotFound && existing.IsListed() {
		return core.ErrAlreadyListed
	}

	// a market must never be listed without a live price
	price, err := s.priceService.GetCurrentPrice(ctx, market.AssetID)
	if err != nil {
		return core.ErrPriceUnavailable
	}
	if price.Error == core.PriceBadSource || !price.Price.IsPositive() {
		return core.ErrPriceUnavailable
	}

	market.Status = core.MarketStatusListed
	market.Price = price.Price
	market.PriceUpdatedAt = time.Now()
	if !market.ExchangeRate.IsPositive() {
		market.ExchangeRate = decimal.New(1, 0)
	}

	if !isRecordNotFound {
		market.ID = existing.ID
		market.Version = existing.Version
		return s.marketStore.Update(ctx, s.db, market)
	}

	return s.marketStore.Save(ctx, s.db, market)
}

func (s *marketService) Lookup(ctx context.Context, assetID string) (*core.Market, error) {
	market, isRecordNotFound, err := s.marketStore.Find(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if isRecordNotFound {
		return nil, core.ErrNotListed
	}

	return market, nil
}

func (s *marketService) ListAll(ctx context.Context) ([]*core.Market, error) {
	return s.marketStore.All(ctx)
}

func validate(market *core.Market) error {
	one := decimal.New(1, 0)

	if market.AssetID == "" || market.Symbol == "" {
		return core.ErrInvalidConfiguration
	}

	if market.Side != core.MarketSideCollateral && market.Side != core.MarketSideDebt {
		return core.ErrInvalidConfiguration
	}

	if market.CollateralFactor.IsNegative() || market.CollateralFactor.GreaterThan(one) {
		return core.ErrInvalidConfiguration
	}

	if market.IsCollateral() {
		if !market.HardLiquidationRatio.IsPositive() {
			return core.ErrInvalidConfiguration
		}
		// hard <= soft, validated here and never re-checked at evaluation time
		if market.HardLiquidationRatio.GreaterThan(market.SoftLiquidationRatio) {
			return core.ErrInvalidConfiguration
		}
	}

	if market.LiquidationIncentive.LessThan(one) {
		return core.ErrInvalidConfiguration
	}

	if market.IncentiveCurve.IsNegative() || market.CloseFactorCurve.IsNegative() {
		return core.ErrInvalidConfiguration
	}

	if market.CloseFactor.IsNegative() || market.CloseFactor.GreaterThan(one) {
		return core.ErrInvalidConfiguration
	}

	if market.ProtocolSeizeShare.IsNegative() || market.ProtocolSeizeShare.GreaterThan(one) {
		return core.ErrInvalidConfiguration
	}

	return nil
}
