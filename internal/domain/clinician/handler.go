package clinician

import (
	"net/http"

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
	admin := auth.RequireRole("admin")
	any := auth.RequireRole("admin", "physician", "nurse")

	api.GET("/clinicians", h.ListClinicians, any)
	api.GET("/clinicians/me", h.GetMe, any)
	api.GET("/clinicians/:id", h.GetClinician, any)
	api.POST("/clinicians", h.CreateClinician, admin)
	api.PUT("/clinicians/:id", h.UpdateClinician, admin)
}

func (h *Handler) CreateClinician(c echo.Context) error {
	var cl Clinician
	if err := c.Bind(&cl); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateClinician(c.Request().Context(), &cl); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, cl)
}

func (h *Handler) GetClinician(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	cl, err := h.svc.GetClinician(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if cl == nil {
		return echo.NewHTTPError(http.StatusNotFound, "clinician not found")
	}
	return c.JSON(http.StatusOK, cl)
}

// GetMe resolves the authenticated user's clinician record.
func (h *Handler) GetMe(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "no authenticated user")
	}
	cl, err := h.svc.GetClinicianByUserID(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if cl == nil {
		return echo.NewHTTPError(http.StatusNotFound, "clinician not found")
	}
	return c.JSON(http.StatusOK, cl)
}

func (h *Handler) ListClinicians(c echo.Context) error {
	hospital := c.QueryParam("hospital")
	if hospital == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "hospital is required")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListCliniciansByHospital(c.Request().Context(), hospital, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateClinician(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var cl Clinician
	if err := c.Bind(&cl); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cl.ID = id
	if err := h.svc.UpdateClinician(c.Request().Context(), &cl); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, cl)
}
