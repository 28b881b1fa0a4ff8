package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/quotaflow/quotaflow/internal/common/httpx"
	"github.com/quotaflow/quotaflow/internal/common/logtrace"
	commonmiddleware "github.com/quotaflow/quotaflow/internal/common/middleware"
	"github.com/quotaflow/quotaflow/internal/crmsrv/auth"
	"github.com/quotaflow/quotaflow/internal/crmsrv/config"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db"
	"github.com/quotaflow/quotaflow/internal/crmsrv/deals"
	"github.com/quotaflow/quotaflow/internal/crmsrv/leads"
	"github.com/quotaflow/quotaflow/internal/crmsrv/masterdata"
	"github.com/quotaflow/quotaflow/internal/crmsrv/users"
)

type CRMServer struct {
	Router *chi.Mux
	store  db.Store
	issuer *auth.TokenIssuer
}

func CreateNewServer(store db.Store, issuer *auth.TokenIssuer) (*CRMServer, error) {
	s := &CRMServer{
		Router: chi.NewRouter(),
		store:  store,
		issuer: issuer,
	}
	return s, nil
}

func (s *CRMServer) MountHandlers() {
	s.Router.Use(commonmiddleware.RequestLogger)
	s.Router.Use(commonmiddleware.PanicHandler)
	if config.Config().HandleCORS {
		s.Router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{config.Config().CORSAllowedOrigin},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	s.Router.Route("/api", s.mountResourceHandlers)
	s.Router.Get("/version", s.getVersion)

	if logtrace.IsTraceEnabled() {
		walkFunc := func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
			fmt.Printf("%s %s\n", method, route)
			return nil
		}
		if err := chi.Walk(s.Router, walkFunc); err != nil {
			fmt.Printf("Logging err: %s\n", err.Error())
		}
	}
}

func (s *CRMServer) mountResourceHandlers(r chi.Router) {
	// the auth endpoint is the only route reachable without a session
	r.Mount("/auth", auth.NewHandler(s.store, s.issuer).Router())

	r.Group(func(pr chi.Router) {
		pr.Use(auth.SessionMiddleware(s.issuer))
		pr.Mount("/leads", leads.NewHandler(s.store).Router())
		pr.Mount("/deals", deals.NewHandler(s.store).Router())
		pr.Mount("/users", users.NewHandler(s.store).Router())
		pr.Mount("/masterdata", masterdata.NewHandler(s.store).Router())
	})
}

type GetVersionRsp struct {
	ServerVersion string `json:"serverVersion"`
	ApiVersion    string `json:"apiVersion"`
}

func (s *CRMServer) getVersion(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Debug().Msg("GetVersion")
	rsp := &GetVersionRsp{
		ServerVersion: "Quotaflow CRM Server: 0.1.0",
		ApiVersion:    "v1",
	}
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, rsp)
}
