package patient

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinicore/clinic/internal/platform/auth"
	"github.com/clinicore/clinic/internal/platform/httpx"
	"github.com/clinicore/clinic/pkg/pagination"
)

type Handler struct {
	svc *Service
	log zerolog.Logger
}

func NewHandler(svc *Service, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// RegisterRoutes mounts the patient endpoints on an authenticated group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/patients", h.List)
	g.POST("/patients", h.Create)
	g.GET("/patients/:id", h.Get)
	g.PUT("/patients/:id", h.Update)
	g.DELETE("/patients/:id", h.Delete)
}

type patientRequest struct {
	NIC        string  `json:"nic"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Age        int     `json:"age"`
	Gender     string  `json:"gender"`
	Address    *string `json:"address"`
	Occupation *string `json:"occupation"`
}

func (req *patientRequest) toModel() *Patient {
	return &Patient{
		NIC:        req.NIC,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Age:        req.Age,
		Gender:     req.Gender,
		Address:    req.Address,
		Occupation: req.Occupation,
	}
}

func (h *Handler) Create(c echo.Context) error {
	principal, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return httpx.Error(c, httpx.ErrNotAuthenticated, "Not authenticated.")
	}
	var req patientRequest
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "Invalid request body.")
	}

	p := req.toModel()
	if err := h.svc.Create(c.Request().Context(), principal.UserID, p); err != nil {
		h.log.Error().Err(err).Str("nic", req.NIC).Msg("create patient failed")
		return httpx.Error(c, err, "Failed to register patient.")
	}
	return httpx.OK(c, http.StatusCreated, p)
}

func (h *Handler) List(c echo.Context) error {
	principal, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return httpx.Error(c, httpx.ErrNotAuthenticated, "Not authenticated.")
	}
	params := pagination.FromContext(c)

	patients, total, err := h.svc.List(c.Request().Context(), principal.UserID, params.Limit, params.Offset)
	if err != nil {
		h.log.Error().Err(err).Msg("list patients failed")
		return httpx.Error(c, err, "Failed to load patients.")
	}
	if patients == nil {
		patients = []*Patient{}
	}
	return httpx.OK(c, http.StatusOK, pagination.NewResponse(patients, total, params.Limit, params.Offset))
}

func (h *Handler) Get(c echo.Context) error {
	principal, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return httpx.Error(c, httpx.ErrNotAuthenticated, "Not authenticated.")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "Invalid patient id.")
	}

	p, err := h.svc.Get(c.Request().Context(), principal.UserID, id)
	if err != nil {
		return httpx.Error(c, err, "Failed to load patient.")
	}
	return httpx.OK(c, http.StatusOK, p)
}

func (h *Handler) Update(c echo.Context) error {
	principal, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return httpx.Error(c, httpx.ErrNotAuthenticated, "Not authenticated.")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "Invalid patient id.")
	}
	var req patientRequest
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "Invalid request body.")
	}

	p := req.toModel()
	p.ID = id
	updated, err := h.svc.Update(c.Request().Context(), principal.UserID, p)
	if err != nil {
		h.log.Warn().Err(err).Str("patient_id", id.String()).Msg("update patient failed")
		return httpx.Error(c, err, "Failed to update patient.")
	}
	return httpx.OK(c, http.StatusOK, updated)
}

func (h *Handler) Delete(c echo.Context) error {
	principal, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return httpx.Error(c, httpx.ErrNotAuthenticated, "Not authenticated.")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "Invalid patient id.")
	}

	if err := h.svc.Delete(c.Request().Context(), principal.UserID, id); err != nil {
		h.log.Warn().Err(err).Str("patient_id", id.String()).Msg("delete patient failed")
		return httpx.Error(c, err, "Failed to delete patient.")
	}
	return httpx.OK(c, http.StatusOK, map[string]string{"message": "Patient deleted."})
}
