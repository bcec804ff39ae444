package pricesync

import (
	"context"
	"time"

	"crossmargin/core"
	"crossmargin/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	"github.com/robfig/cron/v3"
)

const checkpointKey = "price_sync_checkpoint"

// Worker pulls feed tickers into the price store
type Worker struct {
	worker.BaseJob
	DB           *db.DB
	Config       *core.Config
	MarketStore  core.IMarketStore
	PriceStore   core.IPriceStore
	PriceService core.IPriceOracleService
	Property     property.Store
}

// New new price sync worker
func New(
	database *db.DB,
	cfg *core.Config,
	marketStore core.IMarketStore,
	priceStore core.IPriceStore,
	priceSrv core.IPriceOracleService,
	property property.Store,
) *Worker {
	job := Worker{
		DB:           database,
		Config:       cfg,
		MarketStore:  marketStore,
		PriceStore:   priceStore,
		PriceService: priceSrv,
		Property:     property,
	}

	l, _ := time.LoadLocation(job.Config.App.Location)
	job.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 15s"
	job.Cron.AddFunc(spec, job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "pricesync")

	now := time.Now()
	tickers, err := w.PriceService.PullAllPriceTickers(ctx, now)
	if err != nil {
		log.WithError(err).Errorln("PullAllPriceTickers")
		return err
	}

	markets, err := w.MarketStore.AllAsMap(ctx)
	if err != nil {
		log.WithError(err).Errorln("markets.AllAsMap")
		return err
	}

	for _, ticker := range tickers {
		if !ticker.Price.IsPositive() {
			log.Infoln("skip non-positive ticker:", ticker.AssetID)
			continue
		}

		price := &core.Price{
			AssetID:  ticker.AssetID,
			Price:    ticker.Price,
			Provider: ticker.Provider,
		}
		if err := w.PriceStore.Save(ctx, w.DB, price); err != nil {
			log.WithError(err).Errorln("prices.Save", ticker.AssetID)
			return err
		}

		if market, ok := markets[ticker.AssetID]; ok {
			market.Price = ticker.Price
			market.PriceUpdatedAt = now
			if err := w.MarketStore.Update(ctx, w.DB, market); err != nil {
				log.WithError(err).Errorln("markets.Update", ticker.AssetID)
				return err
			}
		}
	}

	if err := w.Property.Save(ctx, checkpointKey, now.Unix()); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	return nil
}
