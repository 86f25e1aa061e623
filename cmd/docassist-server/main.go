package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/docassist/docassist/internal/config"
	"github.com/docassist/docassist/internal/domain/analysis"
	"github.com/docassist/docassist/internal/domain/appointment"
	"github.com/docassist/docassist/internal/domain/note"
	"github.com/docassist/docassist/internal/domain/patient"
	"github.com/docassist/docassist/internal/platform/docstore"
	"github.com/docassist/docassist/internal/platform/export"
	"github.com/docassist/docassist/internal/platform/middleware"
	"github.com/docassist/docassist/internal/platform/seed"
)

// noteExportAdapter adapts the note service to the patient handler's
// NoteSource interface, avoiding an import between the two domains.
type noteExportAdapter struct {
	svc *note.Service
}

func (a *noteExportAdapter) PatientNotes(ctx context.Context, patientID string) ([]export.NoteInfo, error) {
	notes, err := a.svc.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	infos := make([]export.NoteInfo, 0, len(notes))
	for _, n := range notes {
		infos = append(infos, export.NoteInfo{Domain: n.Domain, Text: n.Text, CreatedAt: n.CreatedAt})
	}
	return infos, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "docassist-server",
		Short: "Doc Assist patient management API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write demo patients, appointments, and notes to the data file",
		RunE: func(cmd *cobra.Command, args []string) error {
			patients, _ := cmd.Flags().GetInt("patients")
			appts, _ := cmd.Flags().GetInt("appointments")
			notes, _ := cmd.Flags().GetInt("notes")
			seedVal, _ := cmd.Flags().GetInt64("seed")

			logger := newLogger()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			store := docstore.Open(cfg.DataFile, logger)
			patientSvc := patient.NewService(patient.NewRepo(store))
			apptSvc := appointment.NewService(appointment.NewRepo(store))
			noteSvc := note.NewService(note.NewRepo(store))

			seeder := seed.NewSeeder(patientSvc, apptSvc, noteSvc, logger)
			_, err = seeder.Run(context.Background(), seed.Config{
				PatientCount:           patients,
				AppointmentsPerPatient: appts,
				NotesPerPatient:        notes,
				Seed:                   seedVal,
			})
			return err
		},
	}
	cmd.Flags().Int("patients", 10, "Number of patients to generate")
	cmd.Flags().Int("appointments", 2, "Appointments per patient")
	cmd.Flags().Int("notes", 3, "Notes per patient")
	cmd.Flags().Int64("seed", 0, "Random seed for reproducible data")
	return cmd
}

func newLogger() zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "" || os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger
}

func runServer() error {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Document store
	store := docstore.Open(cfg.DataFile, logger)
	logger.Info().Str("path", store.Path()).Msg("using JSON document store")

	// Domain services
	patientSvc := patient.NewService(patient.NewRepo(store))
	apptSvc := appointment.NewService(appointment.NewRepo(store))
	noteSvc := note.NewService(note.NewRepo(store))

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	api := e.Group("/api")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	api.Use(middleware.RateLimit(rateLimitCfg))

	// Health check
	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Domain routes
	patient.NewHandler(patientSvc, &noteExportAdapter{svc: noteSvc}).RegisterRoutes(api)
	appointment.NewHandler(apptSvc).RegisterRoutes(api)
	note.NewHandler(noteSvc).RegisterRoutes(api)
	analysis.NewHandler().RegisterRoutes(api)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
