package handler

import (
	"net/http"

	"crossmargin/core"
	"crossmargin/handler/hc"
	"crossmargin/handler/rest"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/cors"
)

// Server server
type Server struct {
	cfg            *core.Config
	version        string
	marketStore    core.IMarketStore
	flagStore      core.IFlagStore
	accountService core.IAccountService
}

// New new server
func New(
	cfg *core.Config,
	version string,
	marketStore core.IMarketStore,
	flagStore core.IFlagStore,
	accountService core.IAccountService,
) Server {
	return Server{
		cfg:            cfg,
		version:        version,
		marketStore:    marketStore,
		flagStore:      flagStore,
		accountService: accountService,
	}
}

// Handler assemble the http surface
func (s Server) Handler() http.Handler {
	mux := chi.NewMux()
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(cors.AllowAll().Handler)
	mux.Use(middleware.Logger)
	mux.Use(middleware.NewCompressor(5).Handler)

	mux.Mount("/hc", hc.Handle(s.version))
	mux.Mount("/api", rest.Handle(s.marketStore, s.flagStore, s.accountService))

	return mux
}
