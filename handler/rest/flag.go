package rest

import (
	"net/http"

	"crossmargin/core"
	"crossmargin/handler/param"
	"crossmargin/handler/render"

	"github.com/spf13/cast"
)

func flagsHandler(flagStore core.IFlagStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Limit string `json:"limit"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		limit := cast.ToInt(params.Limit)
		if limit <= 0 || limit > 500 {
			limit = 100
		}

		flags, err := flagStore.List(r.Context(), limit)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, flags)
	}
}
