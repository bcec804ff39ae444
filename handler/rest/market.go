package rest

import (
	"net/http"

	"crossmargin/core"
	"crossmargin/handler/render"
	"crossmargin/handler/views"

	"github.com/shopspring/decimal"
)

func allMarketsHandler(marketStore core.IMarketStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		markets, err := marketStore.All(r.Context())
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		marketViews := make([]*views.Market, 0, len(markets))
		for _, m := range markets {
			marketViews = append(marketViews, &views.Market{
				Market:             *m,
				CurrentIncentive:   m.CurLiquidationIncentive(decimal.Zero),
				CurrentCloseFactor: m.CurCloseFactor(decimal.Zero),
			})
		}

		render.JSON(w, marketViews)
	}
}
