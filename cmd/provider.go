package cmd

import (
	"time"

	"crossmargin/core"
	accountservice "crossmargin/service/account"
	ledgerservice "crossmargin/service/ledger"
	marketservice "crossmargin/service/market"
	oracleservice "crossmargin/service/oracle"
	tokenservice "crossmargin/service/token"
	accountstore "crossmargin/store/account"
	flagstore "crossmargin/store/flag"
	marketstore "crossmargin/store/market"
	positionstore "crossmargin/store/position"
	pricestore "crossmargin/store/price"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func provideMarketStore(db *db.DB) core.IMarketStore {
	return marketstore.Cache(marketstore.New(db), time.Minute)
}

func providePositionStore(db *db.DB) core.IPositionStore {
	return positionstore.New(db)
}

func provideAccountStore(db *db.DB) core.IAccountStore {
	return accountstore.New(db)
}

func providePriceStore(db *db.DB) core.IPriceStore {
	return pricestore.New(db)
}

func provideFlagStore(db *db.DB) core.IFlagStore {
	return flagstore.New(db)
}

func provideTokenRegistry(marketStore core.IMarketStore, positionStore core.IPositionStore) core.ITokenRegistry {
	return tokenservice.NewRegistry(marketStore, positionStore)
}

func providePriceService(priceStore core.IPriceStore, tokens core.ITokenRegistry) core.IPriceOracleService {
	return oracleservice.New(&cfg, priceStore, tokens)
}

func provideMarketService(db *db.DB, marketStore core.IMarketStore, priceSrv core.IPriceOracleService) core.IMarketService {
	return marketservice.New(db, marketStore, priceSrv)
}

func provideAccountService(marketStore core.IMarketStore, positionStore core.IPositionStore, priceSrv core.IPriceOracleService) core.IAccountService {
	return accountservice.New(marketStore, positionStore, priceSrv)
}

func provideLedgerService(db *db.DB, accountStore core.IAccountStore, positionStore core.IPositionStore, accountSrv core.IAccountService) core.ILedgerService {
	return ledgerservice.New(db, &cfg, accountStore, positionStore, accountSrv)
}
