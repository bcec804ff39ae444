package cmd

import (
	"crossmargin/worker"
	"crossmargin/worker/pricesync"
	"crossmargin/worker/scanner"

	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "crossmargin job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		propertyStore := providePropertyStore(database)
		marketStore := provideMarketStore(database)
		positionStore := providePositionStore(database)
		priceStore := providePriceStore(database)
		flagStore := provideFlagStore(database)

		tokens := provideTokenRegistry(marketStore, positionStore)
		priceService := providePriceService(priceStore, tokens)
		accountService := provideAccountService(marketStore, positionStore, priceService)

		workers := []worker.IJob{
			pricesync.New(database, &cfg, marketStore, priceStore, priceService, propertyStore),
			scanner.New(&cfg, positionStore, marketStore, flagStore, accountService),
		}

		for _, w := range workers {
			if err := w.Start(); err != nil {
				log.WithError(err).Fatalln("start worker failed")
			}
		}

		<-ctx.Done()

		for _, w := range workers {
			w.Stop()
		}
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
