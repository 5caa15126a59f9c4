package handover

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/guardia/guardia/internal/platform/auth"
	"github.com/guardia/guardia/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	role := auth.RequireRole("admin", "physician", "nurse")

	g := api.Group("", role)
	g.POST("/handovers", h.CreateHandover)
	g.GET("/handovers", h.ListHandovers)
	g.GET("/handovers/critical-patients", h.DetectCriticalPatients)
	g.GET("/handovers/:id", h.GetHandover)
	g.PATCH("/handovers/:id", h.UpdateHandover)
	g.POST("/handovers/:id/finalize", h.FinalizeHandover)
}

// errorResponse is the wire shape for core failures: a stable code plus a
// human-readable message.
type errorResponse struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func coreError(c echo.Context, err error) error {
	e, ok := err.(*Error)
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	status := http.StatusInternalServerError
	switch e.Code {
	case CodeValidation:
		status = http.StatusBadRequest
	case CodeNotFound:
		status = http.StatusNotFound
	case CodeScopeMismatch:
		status = http.StatusForbidden
	case CodeDuplicate, CodeInvalidState:
		status = http.StatusConflict
	}
	return c.JSON(status, errorResponse{Code: e.Code, Message: e.Message})
}

func (h *Handler) CreateHandover(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	creator := auth.UserIDFromContext(c.Request().Context())
	hv, err := h.svc.Create(c.Request().Context(), in, creator)
	if err != nil {
		return coreError(c, err)
	}
	return c.JSON(http.StatusCreated, hv)
}

func (h *Handler) GetHandover(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	hv, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return coreError(c, err)
	}
	return c.JSON(http.StatusOK, hv)
}

func (h *Handler) ListHandovers(c echo.Context) error {
	hospital := c.QueryParam("hospital")
	if hospital == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "hospital is required")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByHospital(c.Request().Context(), hospital, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateHandover(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var patch UpdatePatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	hv, err := h.svc.Update(c.Request().Context(), id, patch)
	if err != nil {
		return coreError(c, err)
	}
	return c.JSON(http.StatusOK, hv)
}

func (h *Handler) FinalizeHandover(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	hv, err := h.svc.Finalize(c.Request().Context(), id)
	if err != nil {
		return coreError(c, err)
	}
	return c.JSON(http.StatusOK, hv)
}

// DetectCriticalPatients previews the detector for a comma-separated list
// of patient ids, without touching any handover.
func (h *Handler) DetectCriticalPatients(c echo.Context) error {
	raw := c.QueryParam("patient_ids")
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "patient_ids is required")
	}
	var ids []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id: "+part)
		}
		ids = append(ids, id)
	}
	det := h.svc.DetectCriticalPatients(c.Request().Context(), ids)
	return c.JSON(http.StatusOK, det)
}
