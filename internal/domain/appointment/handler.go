package appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// dateTimeLayout parses the combined date and time fields sent by the
// booking form ("2024-05-01" + "09:00").
const dateTimeLayout = "2006-01-02T15:04"

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/appointments", h.List)
	api.POST("/appointments", h.Create)
	api.PUT("/appointments/:id", h.Update)
	api.DELETE("/appointments/:id", h.Delete)
}

type createRequest struct {
	PatientID string `json:"patientId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Reason    string `json:"reason"`
}

type updateRequest struct {
	PatientID *string `json:"patientId"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Reason    *string `json:"reason"`
}

func (h *Handler) List(c echo.Context) error {
	appts, err := h.svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch appointments")
	}
	return c.JSON(http.StatusOK, appts)
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.PatientID == "" || req.Date == "" || req.Time == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "patientId, date, and time are required")
	}
	when, err := time.ParseInLocation(dateTimeLayout, req.Date+"T"+req.Time, time.Local)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date or time")
	}

	a := &Appointment{PatientID: req.PatientID, Date: when, Reason: req.Reason}
	if err := h.svc.Create(c.Request().Context(), a); err != nil {
		if errors.Is(err, ErrConflict) {
			return echo.NewHTTPError(http.StatusConflict, "appointment conflict at this time")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) Update(c echo.Context) error {
	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	params := UpdateParams{PatientID: req.PatientID, Reason: req.Reason}
	if req.Date != "" && req.Time != "" {
		when, err := time.ParseInLocation(dateTimeLayout, req.Date+"T"+req.Time, time.Local)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date or time")
		}
		params.Date = &when
	}

	a, err := h.svc.Update(c.Request().Context(), c.Param("id"), params)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		case errors.Is(err, ErrConflict):
			return echo.NewHTTPError(http.StatusConflict, "appointment conflict at this time")
		default:
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete appointment")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "appointment deleted"})
}
