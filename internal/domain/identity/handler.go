package identity

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinicore/clinic/internal/platform/auth"
	"github.com/clinicore/clinic/internal/platform/httpx"
)

type Handler struct {
	svc    *Service
	issuer *auth.TokenIssuer
	log    zerolog.Logger
}

func NewHandler(svc *Service, issuer *auth.TokenIssuer, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, issuer: issuer, log: log}
}

// RegisterRoutes mounts the public auth endpoints. These sit outside the
// session middleware: they are how a session is obtained.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/auth/register", h.Register)
	g.POST("/auth/login", h.Login)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	user, err := h.svc.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.log.Warn().Err(err).Str("email", req.Email).Msg("registration failed")
		return httpx.Error(c, err, "Registration failed.")
	}
	return httpx.OK(c, http.StatusCreated, user)
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	user, err := h.svc.Login(c.Request().Context(), req.Email, req.Password, req.Role)
	if err != nil {
		return httpx.Error(c, err, "Something went wrong.")
	}

	token, err := h.issuer.Issue(Principal(user))
	if err != nil {
		h.log.Error().Err(err).Msg("token issue failed")
		return httpx.Fail(c, http.StatusInternalServerError, "Something went wrong.")
	}

	return httpx.OK(c, http.StatusOK, loginResponse{Token: token, User: user})
}
