package team

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/careloop/careloop/internal/platform/apperr"
	"github.com/careloop/careloop/internal/platform/auth"
	"github.com/careloop/careloop/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	admin := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RoleSuperadmin))
	admin.GET("/teams", h.ListTeams)
	admin.POST("/teams", h.CreateTeam)
	admin.GET("/teams/:id", h.GetTeam)
	admin.DELETE("/teams/:id", h.DeleteTeam)
	admin.POST("/teams/:id/members", h.AddMember)
	admin.DELETE("/teams/:id/members/:doctorId", h.RemoveMember)
}

func (h *Handler) ListTeams(c echo.Context) error {
	ctx := c.Request().Context()
	scope := auth.ScopeFromContext(ctx)
	pg := pagination.FromContext(c)

	hospitalID := scope.Tenant
	if scope.Superadmin {
		id, err := uuid.Parse(c.QueryParam("hospital_id"))
		if err != nil {
			return apperr.HTTP(apperr.InvalidInput("hospital_id is required"))
		}
		hospitalID = id
	}

	teams, total, err := h.svc.List(ctx, scope, hospitalID, pg.Limit, pg.Offset)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(teams, total, pg.Limit, pg.Offset))
}

type teamRequest struct {
	HospitalID uuid.UUID `json:"hospital_id,omitempty"`
	Name       string    `json:"name"`
}

func (h *Handler) CreateTeam(c echo.Context) error {
	var req teamRequest
	if err := c.Bind(&req); err != nil {
		return apperr.HTTP(apperr.InvalidInput(err.Error()))
	}
	ctx := c.Request().Context()
	t := &Team{HospitalID: req.HospitalID, Name: req.Name}
	if err := h.svc.Create(ctx, auth.ScopeFromContext(ctx), t); err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *Handler) GetTeam(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.HTTP(apperr.InvalidInput("invalid team id"))
	}
	ctx := c.Request().Context()
	t, err := h.svc.Get(ctx, auth.ScopeFromContext(ctx), id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) DeleteTeam(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.HTTP(apperr.InvalidInput("invalid team id"))
	}
	ctx := c.Request().Context()
	if err := h.svc.Delete(ctx, auth.ScopeFromContext(ctx), id); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type memberRequest struct {
	DoctorID  uuid.UUID `json:"doctor_id"`
	RoleLabel string    `json:"role_label,omitempty"`
}

func (h *Handler) AddMember(c echo.Context) error {
	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.HTTP(apperr.InvalidInput("invalid team id"))
	}
	var req memberRequest
	if err := c.Bind(&req); err != nil {
		return apperr.HTTP(apperr.InvalidInput(err.Error()))
	}
	if req.DoctorID == uuid.Nil {
		return apperr.HTTP(apperr.InvalidInput("doctor_id is required"))
	}
	ctx := c.Request().Context()
	if err := h.svc.AddMember(ctx, auth.ScopeFromContext(ctx), teamID, req.DoctorID, req.RoleLabel); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusCreated)
}

func (h *Handler) RemoveMember(c echo.Context) error {
	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.HTTP(apperr.InvalidInput("invalid team id"))
	}
	doctorID, err := uuid.Parse(c.Param("doctorId"))
	if err != nil {
		return apperr.HTTP(apperr.InvalidInput("invalid doctor id"))
	}
	ctx := c.Request().Context()
	if err := h.svc.RemoveMember(ctx, auth.ScopeFromContext(ctx), teamID, doctorID); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}
