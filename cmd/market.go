package cmd

import (
	"strings"

	"crossmargin/core"
	"crossmargin/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

func flagString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(err)
	}

	return v
}

func flagDecimalValue(cmd *cobra.Command, name string) decimal.Decimal {
	return number.Decimal(flagString(cmd, name))
}

var addMarketCmd = &cobra.Command{
	Use:     "add-market",
	Aliases: []string{"am"},
	Short:   "list a market with its risk configuration",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		marketStore := provideMarketStore(database)
		positionStore := providePositionStore(database)
		priceStore := providePriceStore(database)
		tokens := provideTokenRegistry(marketStore, positionStore)
		priceService := providePriceService(priceStore, tokens)
		marketService := provideMarketService(database, marketStore, priceService)

		symbol, _ := cmd.Flags().GetString("symbol")
		assetID, _ := cmd.Flags().GetString("asset")
		if symbol == "" || assetID == "" {
			cmd.PrintErrln("symbol and asset are required")
			return
		}

		side := core.MarketSideCollateral
		if v, _ := cmd.Flags().GetString("side"); v == "debt" {
			side = core.MarketSideDebt
		}

		market := &core.Market{
			AssetID:              assetID,
			Symbol:               strings.ToUpper(symbol),
			Side:                 side,
			Decimals:             cast.ToUint8(flagString(cmd, "decimals")),
			CollateralFactor:     flagDecimalValue(cmd, "collateral-factor"),
			SoftLiquidationRatio: flagDecimalValue(cmd, "soft-ratio"),
			HardLiquidationRatio: flagDecimalValue(cmd, "hard-ratio"),
			LiquidationIncentive: flagDecimalValue(cmd, "incentive"),
			IncentiveCurve:       flagDecimalValue(cmd, "incentive-curve"),
			ProtocolSeizeShare:   flagDecimalValue(cmd, "protocol-seize"),
			CloseFactor:          flagDecimalValue(cmd, "close-factor"),
			CloseFactorCurve:     flagDecimalValue(cmd, "close-factor-curve"),
		}

		if err := marketService.Configure(ctx, market); err != nil {
			cmd.PrintErrln("configure market error:", err)
			return
		}

		cmd.Println("market listed:", market.Symbol)
	},
}

func init() {
	rootCmd.AddCommand(addMarketCmd)

	addMarketCmd.Flags().String("symbol", "", "market symbol")
	addMarketCmd.Flags().String("asset", "", "asset id")
	addMarketCmd.Flags().String("side", "collateral", "collateral or debt")
	addMarketCmd.Flags().String("decimals", "8", "asset base-unit decimals")
	addMarketCmd.Flags().String("collateral-factor", "0", "collateral factor [0, 1]")
	addMarketCmd.Flags().String("soft-ratio", "1.2", "soft liquidation ratio")
	addMarketCmd.Flags().String("hard-ratio", "1.05", "hard liquidation ratio")
	addMarketCmd.Flags().String("incentive", "1.05", "base liquidation incentive, 1 + fraction")
	addMarketCmd.Flags().String("incentive-curve", "0", "incentive curve length")
	addMarketCmd.Flags().String("protocol-seize", "0", "protocol seize share")
	addMarketCmd.Flags().String("close-factor", "0.5", "base close factor")
	addMarketCmd.Flags().String("close-factor-curve", "0", "close factor curve length")
}
