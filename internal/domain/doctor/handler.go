package doctor

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
	admin.GET("/doctors", h.ListDoctors)
	admin.POST("/doctors", h.CreateDoctor)
	admin.GET("/doctors/:id", h.GetDoctor)
	admin.PUT("/doctors/:id", h.UpdateDoctor)
	admin.DELETE("/doctors/:id", h.DeleteDoctor)
	admin.POST("/doctors/:id/status", h.TransitionStatus)
}

func (h *Handler) ListDoctors(c echo.Context) error {
	ctx := c.Request().Context()
	scope := auth.ScopeFromContext(ctx)
	pg := pagination.FromContext(c)

	// Admins list their own hospital; superadmin passes hospital_id.
	hospitalID := scope.Tenant
	if scope.Superadmin {
		id, err := uuid.Parse(c.QueryParam("hospital_id"))
		if err != nil {
			return apperr.HTTP(apperr.InvalidInput("hospital_id is required"))
		}
		hospitalID = id
	}

	doctors, total, err := h.svc.List(ctx, scope, hospitalID, pg.Limit, pg.Offset)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(doctors, total, pg.Limit, pg.Offset))
}

type doctorRequest struct {
	HospitalID uuid.UUID `json:"hospital_id,omitempty"`
	Name       string    `json:"name"`
	Specialty  string    `json:"specialty"`
}

func (h *Handler) CreateDoctor(c echo.Context) error {
	var req doctorRequest
	if err := c.Bind(&req); err != nil {
		return apperr.HTTP(apperr.InvalidInput(err.Error()))
	}
	ctx := c.Request().Context()
	d := &Doctor{HospitalID: req.HospitalID, Name: req.Name, Specialty: req.Specialty}
	if err := h.svc.Create(ctx, auth.ScopeFromContext(ctx), d); err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) GetDoctor(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.HTTP(apperr.InvalidInput("invalid doctor id"))
	}
	ctx := c.Request().Context()
	d, err := h.svc.Get(ctx, auth.ScopeFromContext(ctx), id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) UpdateDoctor(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.HTTP(apperr.InvalidInput("invalid doctor id"))
	}
	var req doctorRequest
	if err := c.Bind(&req); err != nil {
		return apperr.HTTP(apperr.InvalidInput(err.Error()))
	}
	ctx := c.Request().Context()
	d, err := h.svc.Update(ctx, auth.ScopeFromContext(ctx), id, req.Name, req.Specialty)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) DeleteDoctor(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.HTTP(apperr.InvalidInput("invalid doctor id"))
	}
	ctx := c.Request().Context()
	if err := h.svc.Delete(ctx, auth.ScopeFromContext(ctx), id); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type statusRequest struct {
	Status auth.AccountStatus `json:"status"`
}

func (h *Handler) TransitionStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.HTTP(apperr.InvalidInput("invalid doctor id"))
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return apperr.HTTP(apperr.InvalidInput(err.Error()))
	}
	ctx := c.Request().Context()
	d, err := h.svc.Transition(ctx, auth.ScopeFromContext(ctx), id, req.Status)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, d)
}
