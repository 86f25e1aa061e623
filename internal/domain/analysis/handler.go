// Package analysis exposes the symptom-analysis endpoint. The response is a
// placeholder: no AI provider is wired in, and integrating one means
// replacing the body of Analyze with a real model call.
package analysis

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/analysis/symptoms", h.Analyze)
}

type request struct {
	PatientID string `json:"patientId"`
	Symptoms  string `json:"symptoms"`
}

// Result is the shape of an analysis response.
type Result struct {
	PatientID       string    `json:"patientId"`
	Analysis        string    `json:"analysis"`
	Confidence      float64   `json:"confidence"`
	Recommendations []string  `json:"recommendations"`
	GeneratedAt     time.Time `json:"generatedAt"`
}

func (h *Handler) Analyze(c echo.Context) error {
	var req request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, Result{
		PatientID: req.PatientID,
		Analysis: "This is a placeholder analysis. To enable real AI-powered symptom " +
			"analysis, configure an AI provider in the backend and replace this endpoint.",
		Confidence: 0,
		Recommendations: []string{
			"Further medical evaluation recommended",
			"Consult with a specialist",
		},
		GeneratedAt: time.Now().UTC(),
	})
}
