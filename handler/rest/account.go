package rest

import (
	"net/http"

	"crossmargin/core"
	"crossmargin/handler/param"
	"crossmargin/handler/render"
	"crossmargin/handler/views"
)

func liquidityHandler(accountSrv core.IAccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Account string `json:"account"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		liquidity, err := accountSrv.CalculateLiquidity(r.Context(), params.Account, core.PriceCaution)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, &views.Liquidity{
			Account:         params.Account,
			ExcessLiquidity: liquidity.ExcessLiquidity,
			Shortfall:       liquidity.Shortfall,
		})
	}
}

func severityHandler(accountSrv core.IAccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Account         string `json:"account"`
			DebtAsset       string `json:"debt_asset"`
			CollateralAsset string `json:"collateral_asset"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		severity, err := accountSrv.LiquidationSeverity(r.Context(), params.Account, params.DebtAsset, params.CollateralAsset)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, &views.Severity{
			Account:         params.Account,
			LFactor:         severity.LFactor,
			DebtPrice:       severity.DebtPrice,
			CollateralPrice: severity.CollateralPrice,
		})
	}
}

func badDebtHandler(accountSrv core.IAccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Account string `json:"account"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		data, err := accountSrv.AssessBadDebt(r.Context(), params.Account)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		view := views.BadDebt{
			Account:         params.Account,
			CollateralValue: data.CollateralValue,
			DebtRepayable:   data.DebtRepayable,
			DebtValue:       data.DebtValue,
		}
		if data.DebtValue.GreaterThan(data.DebtRepayable) {
			view.Shortfall = data.DebtValue.Sub(data.DebtRepayable)
		}

		render.JSON(w, &view)
	}
}
