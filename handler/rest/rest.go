package rest

import (
	"errors"
	"net/http"

	"crossmargin/core"
	"crossmargin/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	marketStore core.IMarketStore,
	flagStore core.IFlagStore,
	accountService core.IAccountService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/markets", allMarketsHandler(marketStore))
	router.Get("/accounts/liquidity", liquidityHandler(accountService))
	router.Get("/accounts/severity", severityHandler(accountService))
	router.Get("/accounts/bad-debt", badDebtHandler(accountService))
	router.Get("/flags", flagsHandler(flagStore))

	return router
}
