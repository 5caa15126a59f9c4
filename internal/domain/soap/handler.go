package soap

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
	role := auth.RequireRole("admin", "physician", "nurse")

	g := api.Group("", role)
	g.POST("/patients/:patientId/notes", h.CreateNote)
	g.GET("/patients/:patientId/notes", h.ListNotes)
	g.GET("/notes/:id", h.GetNote)
}

func (h *Handler) CreateNote(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	var n Note
	if err := c.Bind(&n); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	n.PatientID = patientID
	if err := h.svc.CreateNote(c.Request().Context(), &n); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, n)
}

func (h *Handler) ListNotes(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListNotesByPatient(c.Request().Context(), patientID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetNote(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	n, err := h.svc.GetNote(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if n == nil {
		return echo.NewHTTPError(http.StatusNotFound, "note not found")
	}
	return c.JSON(http.StatusOK, n)
}
