package scanner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"crossmargin/core"
	"crossmargin/pkg/concurrency"
	"crossmargin/pkg/id"
	"crossmargin/pkg/risk"
	"crossmargin/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Worker scans debt-carrying accounts and flags the liquidatable ones for
// liquidation executors
type Worker struct {
	worker.BaseJob
	Config         *core.Config
	PositionStore  core.IPositionStore
	MarketStore    core.IMarketStore
	FlagStore      core.IFlagStore
	AccountService core.IAccountService
}

type flagAsset struct {
	AssetID   string `json:"asset_id"`
	Side      string `json:"side"`
	MaxRepay  string `json:"max_repay,omitempty"`
	Incentive string `json:"incentive,omitempty"`
}

// New new scanner worker
func New(
	cfg *core.Config,
	positionStore core.IPositionStore,
	marketStore core.IMarketStore,
	flagStore core.IFlagStore,
	accountSrv core.IAccountService,
) *Worker {
	job := Worker{
		Config:         cfg,
		PositionStore:  positionStore,
		MarketStore:    marketStore,
		FlagStore:      flagStore,
		AccountService: accountSrv,
	}

	l, _ := time.LoadLocation(job.Config.App.Location)
	job.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 10s"
	job.Cron.AddFunc(spec, job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "scanner")

	accounts, err := w.PositionStore.Debtors(ctx)
	if err != nil {
		log.WithError(err).Errorln("positions.Debtors")
		return err
	}

	golimit := concurrency.NewGoLimit(32)
	wg := sync.WaitGroup{}
	for _, account := range accounts {
		wg.Add(1)
		golimit.Add()
		go func(account string) {
			defer wg.Done()
			defer golimit.Done()
			if err := w.scanAccount(ctx, account); err != nil {
				log.WithError(err).Errorln("scan", account)
			}
		}(account)
	}

	golimit.Close()
	wg.Wait()

	return nil
}

func (w *Worker) scanAccount(ctx context.Context, account string) error {
	severity, err := w.AccountService.LiquidationSeverity(ctx, account, "", "")
	if err != nil {
		return err
	}

	if !severity.LFactor.IsPositive() {
		// drop a stale flag once the account is healthy again
		return w.FlagStore.Delete(ctx, account)
	}

	positions, err := w.PositionStore.FindByAccount(ctx, account)
	if err != nil {
		return err
	}

	assets := make([]*flagAsset, 0, len(positions))
	for _, p := range positions {
		if p.Status == core.PositionStatusInactive {
			continue
		}

		market, isRecordNotFound, err := w.MarketStore.Find(ctx, p.AssetID)
		if err != nil {
			return err
		}
		if isRecordNotFound {
			continue
		}

		a := &flagAsset{AssetID: p.AssetID}
		if market.IsCollateral() {
			a.Side = "collateral"
			a.Incentive = market.CurLiquidationIncentive(severity.LFactor).String()
		} else {
			a.Side = "debt"
			a.MaxRepay = risk.MaxRepay(p.DebtPrincipal, market.CurCloseFactor(severity.LFactor)).String()
		}
		assets = append(assets, a)
	}

	flag := &core.LiquidationFlag{
		Account: account,
		TraceID: id.UUIDFromString(fmt.Sprintf("liquidation-flag-%s", account)),
		LFactor: severity.LFactor,
	}
	if err := flag.PutContent(assets); err != nil {
		return err
	}

	return w.FlagStore.Save(ctx, flag)
}
