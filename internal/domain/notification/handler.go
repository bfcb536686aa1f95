package notification

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
	api.GET("/notifications", h.ListNotifications)
	api.POST("/notifications/:id/read", h.MarkRead)
	api.POST("/notifications/read-all", h.MarkAllRead)

	admin := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RoleSuperadmin))
	admin.POST("/notifications", h.CreateNotification)
}

func callerID(c echo.Context) (uuid.UUID, error) {
	claims := auth.ClaimsFromContext(c.Request().Context())
	if claims == nil {
		return uuid.Nil, apperr.MissingCredential("authentication required")
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, apperr.MalformedCredential("subject is not a UUID")
	}
	return id, nil
}

func (h *Handler) ListNotifications(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return apperr.HTTP(err)
	}
	pg := pagination.FromContext(c)
	list, total, err := h.svc.List(c.Request().Context(), userID, pg.Limit, pg.Offset)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(list, total, pg.Limit, pg.Offset))
}

func (h *Handler) MarkRead(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return apperr.HTTP(err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.HTTP(apperr.InvalidInput("invalid notification id"))
	}
	if err := h.svc.MarkRead(c.Request().Context(), userID, id); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) MarkAllRead(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return apperr.HTTP(err)
	}
	updated, err := h.svc.MarkAllRead(c.Request().Context(), userID)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"updated": updated})
}

type createRequest struct {
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Href        string    `json:"href,omitempty"`
}

func (h *Handler) CreateNotification(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return apperr.HTTP(apperr.InvalidInput(err.Error()))
	}
	n := &Notification{UserID: req.UserID, Title: req.Title, Description: req.Description, Href: req.Href}
	if err := h.svc.Create(c.Request().Context(), n); err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusCreated, n)
}
