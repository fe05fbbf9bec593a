package vitals

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

// RegisterRoutes mounts the vital-signs endpoints as a patient sub-resource
// on an authenticated group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/patients/:id/vitals", h.Record)
	g.GET("/patients/:id/vitals/latest", h.Latest)
	g.GET("/patients/:id/vitals", h.History)
}

type readingRequest struct {
	SystolicBP       *int     `json:"systolicBP"`
	DiastolicBP      *int     `json:"diastolicBP"`
	HeartRate        *int     `json:"heartRate"`
	RespiratoryRate  *int     `json:"respiratoryRate"`
	Temperature      *float64 `json:"temperature"`
	OxygenSaturation *int     `json:"oxygenSaturation"`
}

func (h *Handler) Record(c echo.Context) error {
	principal, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return httpx.Error(c, httpx.ErrNotAuthenticated, "Not authenticated.")
	}
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "Invalid patient id.")
	}
	var req readingRequest
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "Invalid request body.")
	}

	v := &VitalSigns{
		PatientID:        patientID,
		SystolicBP:       req.SystolicBP,
		DiastolicBP:      req.DiastolicBP,
		HeartRate:        req.HeartRate,
		RespiratoryRate:  req.RespiratoryRate,
		Temperature:      req.Temperature,
		OxygenSaturation: req.OxygenSaturation,
	}
	if err := h.svc.Record(c.Request().Context(), principal.UserID, v); err != nil {
		h.log.Warn().Err(err).Str("patient_id", patientID.String()).Msg("record vitals failed")
		return httpx.Error(c, err, "Failed to record vital signs.")
	}
	return httpx.OK(c, http.StatusCreated, v)
}

func (h *Handler) Latest(c echo.Context) error {
	principal, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return httpx.Error(c, httpx.ErrNotAuthenticated, "Not authenticated.")
	}
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "Invalid patient id.")
	}

	v, err := h.svc.Latest(c.Request().Context(), principal.UserID, patientID)
	if err != nil {
		return httpx.Error(c, err, "Failed to load vital signs.")
	}
	// v is nil when the patient has no readings; the envelope still succeeds.
	return httpx.OK(c, http.StatusOK, v)
}

func (h *Handler) History(c echo.Context) error {
	principal, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return httpx.Error(c, httpx.ErrNotAuthenticated, "Not authenticated.")
	}
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "Invalid patient id.")
	}
	params := pagination.FromContext(c)

	readings, total, err := h.svc.History(c.Request().Context(), principal.UserID, patientID, params.Limit, params.Offset)
	if err != nil {
		return httpx.Error(c, err, "Failed to load vital signs.")
	}
	if readings == nil {
		readings = []*VitalSigns{}
	}
	return httpx.OK(c, http.StatusOK, pagination.NewResponse(readings, total, params.Limit, params.Offset))
}
