package market

import (
	"context"
	"testing"
	"time"

	"crossmargin/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockMarketStore struct {
	markets map[string]*core.Market
	saves   int
	updates int
}

func newMockMarketStore() *mockMarketStore {
	return &mockMarketStore{markets: make(map[string]*core.Market)}
}

func (s *mockMarketStore) Save(ctx context.Context, tx *db.DB, market *core.Market) error {
	s.saves++
	s.markets[market.AssetID] = market
	return nil
}

func (s *mockMarketStore) Find(ctx context.Context, assetID string) (*core.Market, bool, error) {
	if m, ok := s.markets[assetID]; ok {
		return m, false, nil
	}
	return &core.Market{}, true, nil
}

func (s *mockMarketStore) FindBySymbol(ctx context.Context, symbol string) (*core.Market, bool, error) {
	for _, m := range s.markets {
		if m.Symbol == symbol {
			return m, false, nil
		}
	}
	return &core.Market{}, true, nil
}

func (s *mockMarketStore) All(ctx context.Context) ([]*core.Market, error) {
	markets := make([]*core.Market, 0, len(s.markets))
	for _, m := range s.markets {
		markets = append(markets, m)
	}
	return markets, nil
}

func (s *mockMarketStore) AllAsMap(ctx context.Context) (map[string]*core.Market, error) {
	return s.markets, nil
}

func (s *mockMarketStore) Update(ctx context.Context, tx *db.DB, market *core.Market) error {
	s.updates++
	s.markets[market.AssetID] = market
	return nil
}

type mockOracle struct {
	prices map[string]*core.AssetPrice
}

func (o *mockOracle) GetSnapshotsAndPrices(ctx context.Context, account string, assetIDs []string, tolerance core.PriceError) ([]*core.Snapshot, []*core.AssetPrice, error) {
	return nil, nil, core.ErrPriceUnavailable
}

func (o *mockOracle) GetCurrentPrice(ctx context.Context, assetID string) (*core.AssetPrice, error) {
	if p, ok := o.prices[assetID]; ok {
		return p, nil
	}
	return nil, core.ErrPriceUnavailable
}

func (o *mockOracle) PullPriceTicker(ctx context.Context, assetID string, t time.Time) (*core.PriceTicker, error) {
	return nil, core.ErrPriceUnavailable
}

func (o *mockOracle) PullAllPriceTickers(ctx context.Context, t time.Time) ([]*core.PriceTicker, error) {
	return nil, nil
}

func goodMarket() *core.Market {
	return &core.Market{
		AssetID:              "cbtc",
		Symbol:               "CBTC",
		Side:                 core.MarketSideCollateral,
		Decimals:             8,
		CollateralFactor:     decimal.RequireFromString("0.75"),
		SoftLiquidationRatio: decimal.RequireFromString("1.2"),
		HardLiquidationRatio: decimal.RequireFromString("1.05"),
		LiquidationIncentive: decimal.RequireFromString("1.08"),
		IncentiveCurve:       decimal.RequireFromString("0.05"),
		ProtocolSeizeShare:   decimal.RequireFromString("0.028"),
		CloseFactor:          decimal.RequireFromString("0.5"),
		CloseFactorCurve:     decimal.RequireFromString("0.5"),
	}
}

func newTestService() (core.IMarketService, *mockMarketStore, *mockOracle) {
	store := newMockMarketStore()
	oracle := &mockOracle{
		prices: map[string]*core.AssetPrice{
			"cbtc": {AssetID: "cbtc", Price: decimal.RequireFromString("42000"), Error: core.PriceOK},
		},
	}
	return New(nil, store, oracle), store, oracle
}

func TestConfigure(t *testing.T) {
	srv, store, _ := newTestService()
	ctx := context.Background()

	require.Nil(t, srv.Configure(ctx, goodMarket()))
	assert.Equal(t, 1, store.saves)

	listed := store.markets["cbtc"]
	assert.Equal(t, core.MarketStatusListed, listed.Status)
	assert.Equal(t, "42000", listed.Price.String())
	assert.Equal(t, "1", listed.ExchangeRate.String())
}

func TestConfigureRejectsInvalid(t *testing.T) {
	srv, _, _ := newTestService()
	ctx := context.Background()

	cases := map[string]func(m *core.Market){
		"missing symbol":       func(m *core.Market) { m.Symbol = "" },
		"bad side":             func(m *core.Market) { m.Side = 0 },
		"factor above one":     func(m *core.Market) { m.CollateralFactor = decimal.RequireFromString("1.01") },
		"zero hard ratio":      func(m *core.Market) { m.HardLiquidationRatio = decimal.Zero },
		"hard above soft":      func(m *core.Market) { m.HardLiquidationRatio = decimal.RequireFromString("1.3") },
		"incentive below one":  func(m *core.Market) { m.LiquidationIncentive = decimal.RequireFromString("0.99") },
		"negative curve":       func(m *core.Market) { m.IncentiveCurve = decimal.RequireFromString("-0.1") },
		"close factor too big": func(m *core.Market) { m.CloseFactor = decimal.RequireFromString("1.5") },
	}

	for name, mutate := range cases {
		market := goodMarket()
		mutate(market)
		assert.Equal(t, core.ErrInvalidConfiguration, srv.Configure(ctx, market), name)
	}
}

func TestConfigureAlreadyListed(t *testing.T) {
	srv, _, _ := newTestService()
	ctx := context.Background()

	require.Nil(t, srv.Configure(ctx, goodMarket()))
	assert.Equal(t, core.ErrAlreadyListed, srv.Configure(ctx, goodMarket()))
}

func TestConfigurePriceUnavailable(t *testing.T) {
	srv, store, oracle := newTestService()
	ctx := context.Background()

	oracle.prices["cbtc"].Error = core.PriceBadSource
	assert.Equal(t, core.ErrPriceUnavailable, srv.Configure(ctx, goodMarket()))

	delete(oracle.prices, "cbtc")
	assert.Equal(t, core.ErrPriceUnavailable, srv.Configure(ctx, goodMarket()))

	assert.Equal(t, 0, store.saves)
}

func TestLookup(t *testing.T) {
	srv, _, _ := newTestService()
	ctx := context.Background()

	_, err := srv.Lookup(ctx, "cbtc")
	assert.Equal(t, core.ErrNotListed, err)

	require.Nil(t, srv.Configure(ctx, goodMarket()))

	market, err := srv.Lookup(ctx, "cbtc")
	require.Nil(t, err)
	assert.Equal(t, "CBTC", market.Symbol)

	markets, err := srv.ListAll(ctx)
	require.Nil(t, err)
	assert.Len(t, markets, 1)
}
