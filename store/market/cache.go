package market

import (
	"context"
	"fmt"
	"time"

	"crossmargin/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/singleflight"
)

// Cache wrap the store with a read-through lru cache; risk parameters change
// rarely but are read on every valuation
func Cache(store core.IMarketStore, exp time.Duration) core.IMarketStore {
	return &cacheMarketStore{
		IMarketStore: store,
		cache:        gcache.New(512).LRU().Expiration(exp).Build(),
		sf:           &singleflight.Group{},
	}
}

type cacheMarketStore struct {
	core.IMarketStore
	cache gcache.Cache
	sf    *singleflight.Group
}

type cachedMarket struct {
	market   *core.Market
	notFound bool
}

func (s *cacheMarketStore) Save(ctx context.Context, tx *db.DB, market *core.Market) error {
	if err := s.IMarketStore.Save(ctx, tx, market); err != nil {
		return err
	}
	s.cache.Remove(s.assetKey(market.AssetID))
	return nil
}

func (s *cacheMarketStore) Update(ctx context.Context, tx *db.DB, market *core.Market) error {
	if err := s.IMarketStore.Update(ctx, tx, market); err != nil {
		return err
	}
	s.cache.Remove(s.assetKey(market.AssetID))
	return nil
}

func (s *cacheMarketStore) Find(ctx context.Context, assetID string) (*core.Market, bool, error) {
	key := s.assetKey(assetID)
	if v, err := s.cache.Get(key); err == nil {
		if c, ok := v.(*cachedMarket); ok {
			return c.market, c.notFound, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		market, notFound, err := s.IMarketStore.Find(ctx, assetID)
		if err != nil {
			return nil, err
		}

		c := &cachedMarket{market: market, notFound: notFound}
		s.cache.Set(key, c)
		return c, nil
	})
	if err != nil {
		return nil, false, err
	}

	c := v.(*cachedMarket)
	return c.market, c.notFound, nil
}

func (s *cacheMarketStore) assetKey(assetID string) string {
	return fmt.Sprintf("market:asset:%s", assetID)
}
