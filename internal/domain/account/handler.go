package account

import (
	"net/http"

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
	api.GET("/account/status", h.GetStatus)
}

// GetStatus reports the caller's effective account status, including the
// hospital cascade for doctors.
func (h *Handler) GetStatus(c echo.Context) error {
	ctx := c.Request().Context()
	claims := auth.ClaimsFromContext(ctx)
	if claims == nil {
		return apperr.HTTP(apperr.MissingCredential(""))
	}
	status, err := h.svc.Probe(ctx, claims)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"role":   string(claims.Role),
		"status": string(status),
	})
}
