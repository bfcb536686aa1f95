package plan

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/careloop/careloop/internal/platform/apperr"
	"github.com/careloop/careloop/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	admin := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RoleSuperadmin))
	admin.GET("/plan", h.GetPlan)
	admin.PUT("/plan", h.UpsertPlan)
}

func (h *Handler) GetPlan(c echo.Context) error {
	ctx := c.Request().Context()
	scope := auth.ScopeFromContext(ctx)

	hospitalID := scope.Tenant
	if scope.Superadmin {
		id, err := uuid.Parse(c.QueryParam("hospital_id"))
		if err != nil {
			return apperr.HTTP(apperr.InvalidInput("hospital_id is required"))
		}
		hospitalID = id
	}

	p, err := h.svc.Get(ctx, scope, hospitalID)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, p)
}

type planRequest struct {
	HospitalID uuid.UUID `json:"hospital_id,omitempty"`
	Tier       string    `json:"tier"`
	SeatLimit  int       `json:"seat_limit"`
	RenewsAt   time.Time `json:"renews_at"`
}

func (h *Handler) UpsertPlan(c echo.Context) error {
	var req planRequest
	if err := c.Bind(&req); err != nil {
		return apperr.HTTP(apperr.InvalidInput(err.Error()))
	}
	ctx := c.Request().Context()
	p := &Plan{HospitalID: req.HospitalID, Tier: req.Tier, SeatLimit: req.SeatLimit, RenewsAt: req.RenewsAt}
	if err := h.svc.Upsert(ctx, auth.ScopeFromContext(ctx), p); err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, p)
}
