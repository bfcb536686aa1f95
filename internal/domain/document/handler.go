package document

import (
	"net/http"

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
	admin.GET("/documents", h.ListDocuments)
	admin.POST("/documents/:id/upload", h.UploadDocument)

	reviewer := api.Group("", auth.RequireRole(auth.RoleSuperadmin))
	reviewer.POST("/documents/:id/verify", h.VerifyDocument)
	reviewer.POST("/documents/:id/reject", h.RejectDocument)
}

func (h *Handler) ListDocuments(c echo.Context) error {
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

	docs, err := h.svc.List(ctx, scope, hospitalID)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, docs)
}

type uploadRequest struct {
	FileURL string `json:"file_url"`
}

func (h *Handler) UploadDocument(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.HTTP(apperr.InvalidInput("invalid document id"))
	}
	var req uploadRequest
	if err := c.Bind(&req); err != nil {
		return apperr.HTTP(apperr.InvalidInput(err.Error()))
	}
	ctx := c.Request().Context()
	d, err := h.svc.Upload(ctx, auth.ScopeFromContext(ctx), id, req.FileURL)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) VerifyDocument(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.HTTP(apperr.InvalidInput("invalid document id"))
	}
	ctx := c.Request().Context()
	d, err := h.svc.Verify(ctx, auth.ScopeFromContext(ctx), id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, d)
}

type rejectRequest struct {
	Note string `json:"note"`
}

func (h *Handler) RejectDocument(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.HTTP(apperr.InvalidInput("invalid document id"))
	}
	var req rejectRequest
	if err := c.Bind(&req); err != nil {
		return apperr.HTTP(apperr.InvalidInput(err.Error()))
	}
	ctx := c.Request().Context()
	d, err := h.svc.Reject(ctx, auth.ScopeFromContext(ctx), id, req.Note)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, d)
}
