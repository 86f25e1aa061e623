package note

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients/:id/notes", h.ListByPatient)
	api.POST("/patients/:id/notes", h.Create)
}

type createRequest struct {
	Text   string `json:"text"`
	Domain string `json:"domain"`
}

func (h *Handler) ListByPatient(c echo.Context) error {
	notes, err := h.svc.ListByPatient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch notes")
	}
	return c.JSON(http.StatusOK, notes)
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "note text is required")
	}
	n := &Note{PatientID: c.Param("id"), Text: req.Text, Domain: req.Domain}
	if err := h.svc.Create(c.Request().Context(), n); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, n)
}
