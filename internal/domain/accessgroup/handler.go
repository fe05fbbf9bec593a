package accessgroup

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

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

// RegisterRoutes mounts the admin console endpoints. The caller is expected
// to gate the group with the ADMIN role middleware.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/access-groups", h.List)
	g.POST("/access-groups", h.Create)
	g.GET("/access-groups/:id", h.Get)
	g.PUT("/access-groups/:id", h.Update)
	g.DELETE("/access-groups/:id", h.Delete)
	g.POST("/access-groups/:id/members", h.AssignMember)
	g.DELETE("/access-groups/members/:userId", h.RemoveMember)
	g.GET("/users", h.ListUsers)
	g.GET("/users/unassigned", h.UnassignedUsers)
}

type groupRequest struct {
	GroupID     string  `json:"groupId"`
	GroupName   string  `json:"groupName"`
	Description *string `json:"description"`
}

func (h *Handler) Create(c echo.Context) error {
	var req groupRequest
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "Invalid request body.")
	}

	group := &AccessGroup{
		GroupID:     req.GroupID,
		GroupName:   req.GroupName,
		Description: req.Description,
	}
	if err := h.svc.Create(c.Request().Context(), group); err != nil {
		h.log.Error().Err(err).Str("group_id", req.GroupID).Msg("create access group failed")
		return httpx.Error(c, err, "Failed to create access group.")
	}
	return httpx.OK(c, http.StatusCreated, group)
}

func (h *Handler) List(c echo.Context) error {
	groups, err := h.svc.List(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list access groups failed")
		return httpx.Error(c, err, "Failed to load access groups.")
	}
	return httpx.OK(c, http.StatusOK, groups)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "Invalid access group id.")
	}
	group, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return httpx.Error(c, err, "Failed to load access group.")
	}
	return httpx.OK(c, http.StatusOK, group)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "Invalid access group id.")
	}
	var req groupRequest
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "Invalid request body.")
	}

	group := &AccessGroup{
		ID:          id,
		GroupID:     req.GroupID,
		GroupName:   req.GroupName,
		Description: req.Description,
	}
	if err := h.svc.Update(c.Request().Context(), group); err != nil {
		h.log.Error().Err(err).Str("id", id.String()).Msg("update access group failed")
		return httpx.Error(c, err, "Failed to update access group.")
	}
	return httpx.OK(c, http.StatusOK, group)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "Invalid access group id.")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		h.log.Error().Err(err).Str("id", id.String()).Msg("delete access group failed")
		return httpx.Error(c, err, "Failed to delete access group.")
	}
	return httpx.OK(c, http.StatusOK, map[string]string{"message": "Access group deleted."})
}

type assignRequest struct {
	UserID string `json:"userId"`
}

func (h *Handler) AssignMember(c echo.Context) error {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "Invalid access group id.")
	}
	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "Invalid request body.")
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "Invalid user id.")
	}

	if err := h.svc.AssignUser(c.Request().Context(), userID, groupID); err != nil {
		h.log.Error().Err(err).Str("user_id", userID.String()).Str("group_id", groupID.String()).Msg("assign member failed")
		return httpx.Error(c, err, "Failed to assign user to access group.")
	}
	return httpx.OK(c, http.StatusOK, map[string]string{"message": "User assigned to access group."})
}

func (h *Handler) RemoveMember(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return httpx.Fail(c, http.StatusBadRequest, "Invalid user id.")
	}
	if err := h.svc.RemoveUser(c.Request().Context(), userID); err != nil {
		h.log.Error().Err(err).Str("user_id", userID.String()).Msg("remove member failed")
		return httpx.Error(c, err, "Failed to remove user from access group.")
	}
	return httpx.OK(c, http.StatusOK, map[string]string{"message": "User removed from access group."})
}

func (h *Handler) ListUsers(c echo.Context) error {
	params := pagination.FromContext(c)
	users, total, err := h.svc.ListUsers(c.Request().Context(), params.Limit, params.Offset)
	if err != nil {
		h.log.Error().Err(err).Msg("list users failed")
		return httpx.Error(c, err, "Failed to load users.")
	}
	return httpx.OK(c, http.StatusOK, pagination.NewResponse(users, total, params.Limit, params.Offset))
}

func (h *Handler) UnassignedUsers(c echo.Context) error {
	users, err := h.svc.UnassignedUsers(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list unassigned users failed")
		return httpx.Error(c, err, "Failed to load users.")
	}
	return httpx.OK(c, http.StatusOK, users)
}
