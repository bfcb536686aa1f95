package analytics

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careloop/careloop/internal/platform/apperr"
	"github.com/careloop/careloop/internal/platform/auth"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	sa := api.Group("", auth.RequireRole(auth.RoleSuperadmin))
	sa.GET("/analytics/overview", h.GetOverview)
}

func (h *Handler) GetOverview(c echo.Context) error {
	o, err := h.repo.Overview(c.Request().Context())
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, o)
}
