package cmd

import (
	"crossmargin/core"
	"crossmargin/pkg/number"

	"github.com/spf13/cobra"
)

var ledgerCmd = &cobra.Command{
	Use:     "ledger",
	Aliases: []string{"lg"},
	Short:   "manage account positions",
}

var enrollCmd = &cobra.Command{
	Use:   "enroll <account> <asset>",
	Args:  cobra.ExactArgs(2),
	Short: "activate a position for an account",
	Run: func(cmd *cobra.Command, args []string) {
		ledgerSrv, closeDB := ledgerServiceFromConfig()
		defer closeDB()

		if err := ledgerSrv.Enroll(cmd.Context(), args[0], args[1]); err != nil {
			cmd.PrintErrln("enroll error:", err)
			return
		}

		cmd.Println("position activated")
	},
}

var exitCmd = &cobra.Command{
	Use:   "exit <account> <asset>",
	Args:  cobra.ExactArgs(2),
	Short: "request or confirm removal of a position",
	Run: func(cmd *cobra.Command, args []string) {
		ledgerSrv, closeDB := ledgerServiceFromConfig()
		defer closeDB()

		if err := ledgerSrv.Exit(cmd.Context(), args[0], args[1]); err != nil {
			cmd.PrintErrln("exit error:", err)
			return
		}

		cmd.Println("exit accepted")
	},
}

var postCmd = &cobra.Command{
	Use:   "post <account> <asset> <delta>",
	Args:  cobra.ExactArgs(3),
	Short: "adjust posted collateral by a signed delta of shares",
	Run: func(cmd *cobra.Command, args []string) {
		ledgerSrv, closeDB := ledgerServiceFromConfig()
		defer closeDB()

		delta := number.Decimal(args[2])
		if err := ledgerSrv.RecordCollateralPosted(cmd.Context(), args[0], args[1], delta); err != nil {
			cmd.PrintErrln("post error:", err)
			return
		}

		cmd.Println("collateral updated")
	},
}

var debtCmd = &cobra.Command{
	Use:   "debt <account> <asset> <delta>",
	Args:  cobra.ExactArgs(3),
	Short: "adjust debt principal by a signed delta",
	Run: func(cmd *cobra.Command, args []string) {
		ledgerSrv, closeDB := ledgerServiceFromConfig()
		defer closeDB()

		delta := number.Decimal(args[2])
		if err := ledgerSrv.RecordDebt(cmd.Context(), args[0], args[1], delta); err != nil {
			cmd.PrintErrln("debt error:", err)
			return
		}

		cmd.Println("debt updated")
	},
}

func ledgerServiceFromConfig() (core.ILedgerService, func()) {
	database := provideDatabase()

	marketStore := provideMarketStore(database)
	positionStore := providePositionStore(database)
	accountStore := provideAccountStore(database)
	priceStore := providePriceStore(database)
	tokens := provideTokenRegistry(marketStore, positionStore)
	priceService := providePriceService(priceStore, tokens)
	accountService := provideAccountService(marketStore, positionStore, priceService)

	return provideLedgerService(database, accountStore, positionStore, accountService), func() {
		_ = database.Close()
	}
}

func init() {
	rootCmd.AddCommand(ledgerCmd)
	ledgerCmd.AddCommand(enrollCmd)
	ledgerCmd.AddCommand(exitCmd)
	ledgerCmd.AddCommand(postCmd)
	ledgerCmd.AddCommand(debtCmd)
}
