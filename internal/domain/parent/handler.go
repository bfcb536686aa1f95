package parent

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
	admin.GET("/parents", h.ListParents)
	admin.POST("/parents", h.CreateParent)
	admin.DELETE("/parents/:id", h.DeleteParent)
	admin.POST("/parents/:id/doctor", h.AssignDoctor)
	admin.POST("/parents/:id/team", h.AssignTeam)

	// Doctors resolve parents through the assignment rule, so the read
	// endpoint admits both staff roles and doctors.
	read := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RoleSuperadmin, auth.RoleDoctor))
	read.GET("/parents/:id", h.GetParent)
}

func (h *Handler) ListParents(c echo.Context) error {
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

	parents, total, err := h.svc.List(ctx, scope, hospitalID, pg.Limit, pg.Offset)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(parents, total, pg.Limit, pg.Offset))
}

type parentRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handler) CreateParent(c echo.Context) error {
	var req parentRequest
	if err := c.Bind(&req); err != nil {
		return apperr.HTTP(apperr.InvalidInput(err.Error()))
	}
	ctx := c.Request().Context()
	p := &Parent{Name: req.Name, Email: req.Email}
	if err := h.svc.Create(ctx, auth.ScopeFromContext(ctx), p); err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetParent(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.HTTP(apperr.InvalidInput("invalid parent id"))
	}
	ctx := c.Request().Context()
	claims := auth.ClaimsFromContext(ctx)

	if claims != nil && claims.Role == auth.RoleDoctor {
		doctorID, err := uuid.Parse(claims.Subject)
		if err != nil {
			return apperr.HTTP(apperr.MalformedCredential("subject is not a UUID"))
		}
		p, err := h.svc.GetForDoctor(ctx, doctorID, id)
		if err != nil {
			return apperr.HTTP(err)
		}
		return c.JSON(http.StatusOK, p)
	}

	p, err := h.svc.Get(ctx, auth.ScopeFromContext(ctx), id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeleteParent(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.HTTP(apperr.InvalidInput("invalid parent id"))
	}
	ctx := c.Request().Context()
	if err := h.svc.Delete(ctx, auth.ScopeFromContext(ctx), id); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type assignDoctorRequest struct {
	DoctorID uuid.UUID `json:"doctor_id"`
}

func (h *Handler) AssignDoctor(c echo.Context) error {
	parentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.HTTP(apperr.InvalidInput("invalid parent id"))
	}
	var req assignDoctorRequest
	if err := c.Bind(&req); err != nil {
		return apperr.HTTP(apperr.InvalidInput(err.Error()))
	}
	if req.DoctorID == uuid.Nil {
		return apperr.HTTP(apperr.InvalidInput("doctor_id is required"))
	}
	ctx := c.Request().Context()
	if err := h.svc.AssignDoctor(ctx, auth.ScopeFromContext(ctx), parentID, req.DoctorID); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type assignTeamRequest struct {
	TeamID uuid.UUID `json:"team_id"`
}

func (h *Handler) AssignTeam(c echo.Context) error {
	parentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.HTTP(apperr.InvalidInput("invalid parent id"))
	}
	var req assignTeamRequest
	if err := c.Bind(&req); err != nil {
		return apperr.HTTP(apperr.InvalidInput(err.Error()))
	}
	if req.TeamID == uuid.Nil {
		return apperr.HTTP(apperr.InvalidInput("team_id is required"))
	}
	ctx := c.Request().Context()
	if err := h.svc.AssignTeam(ctx, auth.ScopeFromContext(ctx), parentID, req.TeamID); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}
