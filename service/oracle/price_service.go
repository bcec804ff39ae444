package oracle

import (
	"context"
	"fmt"
	"time"

	"crossmargin/core"
	"crossmargin/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
)

// PriceService the price oracle gateway: snapshot batches from the token
// collaborators, prices from the price store graded by staleness
type PriceService struct {
	config     *core.Config
	priceStore core.IPriceStore
	tokens     core.ITokenRegistry
}

// New new oracle price service
func New(config *core.Config, priceStore core.IPriceStore, tokens core.ITokenRegistry) core.IPriceOracleService {
	return &PriceService{
		config:     config,
		priceStore: priceStore,
		tokens:     tokens,
	}
}

func (s *PriceService) GetSnapshotsAndPrices(ctx context.Context, account string, assetIDs []string, tolerance core.PriceError) ([]*core.Snapshot, []*core.AssetPrice, error) {
	snapshots := make([]*core.Snapshot, 0, len(assetIDs))
	prices := make([]*core.AssetPrice, 0, len(assetIDs))

	for _, assetID := range assetIDs {
		token, err := s.tokens.Token(ctx, assetID)
		if err != nil {
			return nil, nil, err
		}

		snapshot, err := token.GetAccountSnapshot(ctx, account)
		if err != nil {
			return nil, nil, err
		}

		price, err := s.GetCurrentPrice(ctx, assetID)
		if err != nil {
			return nil, nil, err
		}

		if price.Error > tolerance {
			return nil, nil, core.ErrPriceUnavailable
		}

		snapshots = append(snapshots, snapshot)
		prices = append(prices, price)
	}

	return snapshots, prices, nil
}

func (s *PriceService) GetCurrentPrice(ctx context.Context, assetID string) (*core.AssetPrice, error) {
	price, isRecordNotFound, err := s.priceStore.Find(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if isRecordNotFound {
		return nil, core.ErrAssetNotSupported
	}

	return &core.AssetPrice{
		AssetID: assetID,
		Price:   price.Price,
		Error:   s.grade(price),
	}, nil
}

// grade map feed state to the error severity the calculators compare against
// their tolerance
func (s *PriceService) grade(price *core.Price) core.PriceError {
	if !price.Price.IsPositive() {
		return core.PriceBadSource
	}

	age := time.Since(price.UpdatedAt)
	if age > s.config.PriceOracle.BadAfter() {
		return core.PriceBadSource
	}
	if age > s.config.PriceOracle.CautionAfter() {
		return core.PriceCaution
	}

	return core.PriceOK
}

// PullPriceTicker pull price ticker from the feed endpoint
func (s *PriceService) PullPriceTicker(ctx context.Context, assetID string, t time.Time) (*core.PriceTicker, error) {
	url := fmt.Sprintf("%s/api/v2/tickers/%s?ts=%d", s.config.PriceOracle.EndPoint, assetID, t.UTC().Unix())
	logger.FromContext(ctx).Debugln("pull price:", url)
	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		return nil, err
	}

	var ticker core.PriceTicker
	if err := resthttp.ParseResponse(resp, &ticker); err != nil {
		return nil, err
	}

	return &ticker, nil
}

// PullAllPriceTickers pull all price tickers
func (s *PriceService) PullAllPriceTickers(ctx context.Context, t time.Time) ([]*core.PriceTicker, error) {
	url := fmt.Sprintf("%s/api/tickers?ts=%d", s.config.PriceOracle.EndPoint, t.UTC().Unix())
	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		return nil, err
	}

	var tickers []*core.PriceTicker
	if err := resthttp.ParseResponse(resp, &tickers); err != nil {
		return nil, err
	}

	return tickers, nil
}
