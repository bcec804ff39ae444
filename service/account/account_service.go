package account

import (
	"context"

	"crossmargin/core"
	"crossmargin/pkg/risk"

	"github.com/shopspring/decimal"
)

type accountService struct {
	marketStore   core.IMarketStore
	positionStore core.IPositionStore
	priceService  core.IPriceOracleService
}

// New new account service
func New(
	marketStore core.IMarketStore,
	positionStore core.IPositionStore,
	priceSrv core.IPriceOracleService,
) core.IAccountService {
	return &accountService{
		marketStore:   marketStore,
		positionStore: positionStore,
		priceService:  priceSrv,
	}
}

// assetEntry one enrolled asset with everything a walk needs
type assetEntry struct {
	market   *core.Market
	snapshot *core.Snapshot
	price    decimal.Decimal
}

// walk fetches snapshots, prices and risk configs for the account's enrolled
// assets in one batch; extraAssets are included even if not enrolled
func (s *accountService) walk(ctx context.Context, account string, tolerance core.PriceError, extraAssets ...string) ([]*assetEntry, error) {
	positions, err := s.positionStore.FindByAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	assetIDs := make([]string, 0, len(positions)+len(extraAssets))
	seen := make(map[string]bool, len(positions)+len(extraAssets))
	for _, p := range positions {
		if p.Status == core.PositionStatusInactive {
			continue
		}
		assetIDs = append(assetIDs, p.AssetID)
		seen[p.AssetID] = true
	}
	for _, asset := range extraAssets {
		if asset != "" && !seen[asset] {
			assetIDs = append(assetIDs, asset)
			seen[asset] = true
		}
	}

	snapshots, prices, err := s.priceService.GetSnapshotsAndPrices(ctx, account, assetIDs, tolerance)
	if err != nil {
		return nil, err
	}

	entries := make([]*assetEntry, 0, len(assetIDs))
	for i, snapshot := range snapshots {
		market, isRecordNotFound, err := s.marketStore.Find(ctx, snapshot.AssetID)
		if err != nil {
			return nil, err
		}
		if isRecordNotFound {
			return nil, core.ErrNotListed
		}

		entries = append(entries, &assetEntry{
			market:   market,
			snapshot: snapshot,
			price:    prices[i].Price,
		})
	}

	return entries, nil
}

func (s *accountService) CalculateLiquidity(ctx context.Context, account string, tolerance core.PriceError) (*core.LiquidityData, error) {
	return s.HypotheticalLiquidity(ctx, account, "", decimal.Zero, decimal.Zero, tolerance)
}

func (s *accountService) HypotheticalLiquidity(ctx context.Context, account, assetID string, redeemShares, borrowAmount decimal.Decimal, tolerance core.PriceError) (*core.LiquidityData, error) {
	entries, err := s.walk(ctx, account, tolerance, assetID)
	if err != nil {
		return nil, err
	}

	maxDebt := decimal.Zero
	debtValue := decimal.Zero

	for _, e := range entries {
		if e.snapshot.IsCollateral && e.market.CollateralFactor.IsPositive() {
			value := risk.CollateralValue(e.snapshot.PostedShares, e.snapshot.ExchangeRate, e.price, e.snapshot.Decimals)
			maxDebt = maxDebt.Add(value.Mul(e.market.CollateralFactor))
		}

		if !e.snapshot.IsCollateral && e.snapshot.DebtBalance.IsPositive() {
			debtValue = debtValue.Add(risk.DebtValue(e.snapshot.DebtBalance, e.price, e.snapshot.Decimals))
		}

		if e.snapshot.AssetID != assetID {
			continue
		}

		// hypothetical redeem withdraws borrowing power, counted as debt pressure
		if redeemShares.IsPositive() {
			value := risk.CollateralValue(redeemShares, e.snapshot.ExchangeRate, e.price, e.snapshot.Decimals)
			debtValue = debtValue.Add(value.Mul(e.market.CollateralFactor))
		}

		if borrowAmount.IsPositive() {
			debtValue = debtValue.Add(risk.DebtValue(borrowAmount, e.price, e.snapshot.Decimals))
		}
	}

	result := &core.LiquidityData{
		ExcessLiquidity: decimal.Zero,
		Shortfall:       decimal.Zero,
	}
	if maxDebt.GreaterThanOrEqual(debtValue) {
		result.ExcessLiquidity = maxDebt.Sub(debtValue)
	} else {
		result.Shortfall = debtValue.Sub(maxDebt)
	}

	return result, nil
}

func (s *accountService) LiquidationSeverity(ctx context.Context, account, debtAssetID, collateralAssetID string) (*core.SeverityData, error) {
	// liquidation has to proceed under degraded feeds, caution is tolerated
	entries, err := s.walk(ctx, account, core.PriceCaution, debtAssetID, collateralAssetID)
	if err != nil {
		return nil, err
	}

	softSum := decimal.Zero
	hardSum := decimal.Zero
	debtValue := decimal.Zero
	data := &core.SeverityData{}

	for _, e := range entries {
		if e.snapshot.IsCollateral && e.market.CollateralFactor.IsPositive() {
			value := risk.CollateralValue(e.snapshot.PostedShares, e.snapshot.ExchangeRate, e.price, e.snapshot.Decimals)
			softSum = softSum.Add(value.Div(e.market.SoftLiquidationRatio))
			hardSum = hardSum.Add(value.Div(e.market.HardLiquidationRatio))
		}

		if !e.snapshot.IsCollateral && e.snapshot.DebtBalance.IsPositive() {
			debtValue = debtValue.Add(risk.DebtValue(e.snapshot.DebtBalance, e.price, e.snapshot.Decimals))
		}

		if e.snapshot.AssetID == debtAssetID {
			data.DebtPrice = e.price
		}
		if e.snapshot.AssetID == collateralAssetID {
			data.CollateralPrice = e.price
		}
	}

	data.LFactor = risk.LFactor(debtValue, softSum, hardSum)
	return data, nil
}

func (s *accountService) AssessBadDebt(ctx context.Context, account string) (*core.BadDebtData, error) {
	entries, err := s.walk(ctx, account, core.PriceCaution)
	if err != nil {
		return nil, err
	}

	data := &core.BadDebtData{
		CollateralValue: decimal.Zero,
		DebtRepayable:   decimal.Zero,
		DebtValue:       decimal.Zero,
	}

	for _, e := range entries {
		if e.snapshot.IsCollateral && e.market.CollateralFactor.IsPositive() {
			value := risk.CollateralValue(e.snapshot.PostedShares, e.snapshot.ExchangeRate, e.price, e.snapshot.Decimals)
			data.CollateralValue = data.CollateralValue.Add(value)
			data.DebtRepayable = data.DebtRepayable.Add(risk.DebtRepayable(value, e.market.LiquidationIncentive))
		}

		if !e.snapshot.IsCollateral && e.snapshot.DebtBalance.IsPositive() {
			data.DebtValue = data.DebtValue.Add(risk.DebtValue(e.snapshot.DebtBalance, e.price, e.snapshot.Decimals))
		}
	}

	return data, nil
}
