package hospital

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

// RegisterPublic mounts the unauthenticated routes: hospital registration
// and code lookup (both used before a credential exists).
func (h *Handler) RegisterPublic(g *echo.Group) {
	g.POST("/hospitals", h.Register)
	g.GET("/hospital-code/:code", h.LookupCode)
}

// RegisterRoutes mounts the authenticated, superadmin-only routes.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	super := api.Group("", auth.RequireRole(auth.RoleSuperadmin))
	super.GET("/hospitals", h.ListHospitals)
	super.GET("/hospitals/:id", h.GetHospital)
	super.POST("/hospitals/:id/status", h.TransitionStatus)
}

type registerRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return apperr.HTTP(apperr.InvalidInput(err.Error()))
	}
	hospital := &Hospital{Code: req.Code, Name: req.Name}
	if err := h.svc.Register(c.Request().Context(), hospital); err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusCreated, hospital)
}

func (h *Handler) LookupCode(c echo.Context) error {
	hospital, err := h.svc.GetByCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, hospital)
}

func (h *Handler) ListHospitals(c echo.Context) error {
	pg := pagination.FromContext(c)
	hospitals, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(hospitals, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetHospital(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.HTTP(apperr.InvalidInput("invalid hospital id"))
	}
	hospital, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, hospital)
}

type transitionRequest struct {
	Status auth.AccountStatus `json:"status"`
}

func (h *Handler) TransitionStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.HTTP(apperr.InvalidInput("invalid hospital id"))
	}
	var req transitionRequest
	if err := c.Bind(&req); err != nil {
		return apperr.HTTP(apperr.InvalidInput(err.Error()))
	}
	hospital, err := h.svc.Transition(c.Request().Context(), id, req.Status)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, hospital)
}
