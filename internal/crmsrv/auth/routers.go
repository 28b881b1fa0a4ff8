package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/quotaflow/quotaflow/internal/common/httpx"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db"
)

var validate = validator.New()

// Handler serves the action-discriminated auth endpoint: registration of a
// new tenant and login of an existing user.
type Handler struct {
	store  db.Store
	issuer *TokenIssuer
}

func NewHandler(store db.Store, issuer *TokenIssuer) *Handler {
	return &Handler{
		store:  store,
		issuer: issuer,
	}
}

// Router creates the router for the auth endpoint. A single POST route; the
// request body's action field selects the operation.
func (h *Handler) Router() chi.Router {
	router := chi.NewRouter()
	router.Method(http.MethodPost, "/", httpx.WrapHttpRsp(h.dispatch))
	return router
}

// authRequest is the superset of both operations' fields; the action
// discriminator decides which subset is validated.
type authRequest struct {
	Action      string `json:"action"`
	CompanyName string `json:"companyName"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

func (h *Handler) dispatch(r *http.Request) (*httpx.Response, error) {
	req := &authRequest{}
	if err := httpx.GetRequestData(r, req); err != nil {
		return nil, err
	}

	action, aerr := ParseAction(req.Action)
	if aerr != nil {
		return nil, aerr
	}

	switch action {
	case ActionRegister:
		return h.register(r.Context(), &registerRequest{
			CompanyName: req.CompanyName,
			Name:        req.Name,
			Email:       req.Email,
			Password:    req.Password,
		})
	case ActionLogin:
		return h.login(r.Context(), &loginRequest{
			Email:    req.Email,
			Password: req.Password,
		})
	}
	// unreachable: ParseAction is exhaustive
	return nil, ErrInvalidAction
}
