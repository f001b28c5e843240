package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/mockmate/mockmate-backend/internal/config"
	"github.com/mockmate/mockmate-backend/internal/database"
	"github.com/mockmate/mockmate-backend/internal/handler"
	"github.com/mockmate/mockmate-backend/internal/llm"
	"github.com/mockmate/mockmate-backend/internal/logger"
	"github.com/mockmate/mockmate-backend/internal/repository"
	"github.com/mockmate/mockmate-backend/internal/router"
	"github.com/mockmate/mockmate-backend/internal/service"
	"github.com/mockmate/mockmate-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting MockMate Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	answerRepo := repository.NewAnswerRepository(pool)
	templateRepo := repository.NewTemplateRepository(pool)
	planRepo := repository.NewPlanRepository(pool)

	// ─── Optional LLM Question Strategy ────────────────────────────────
	var strategy service.QuestionStrategy
	if cfg.UseLLMQuestions && cfg.LLMAPIKey != "" {
		strategy = llm.New(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, log)
		log.Info().Str("model", cfg.LLMModel).Msg("LLM question generation enabled")
	}

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, userRepo)
	userService := service.NewUserService(userRepo)
	roleService := service.NewRoleService(roleRepo)
	profileService := service.NewProfileService(profileRepo)
	suggestService := service.NewSuggestService(roleRepo, profileRepo, log)
	reportService := service.NewReportService(sessionRepo, questionRepo, answerRepo, rdb, log)
	interviewService := service.NewInterviewService(sessionRepo, questionRepo, answerRepo, roleRepo, profileRepo, reportService, strategy, log)
	analyticsService := service.NewAnalyticsService(sessionRepo, questionRepo, answerRepo, reportService, log)
	planService := service.NewPlanService(sessionRepo, answerRepo, roleRepo, profileRepo, templateRepo, planRepo, reportService, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:      handler.NewAuthHandler(authService, userService),
		Profile:   handler.NewProfileHandler(profileService, suggestService),
		Role:      handler.NewRoleHandler(roleService),
		Interview: handler.NewInterviewHandler(interviewService),
		Analytics: handler.NewAnalyticsHandler(analyticsService),
		Plan:      handler.NewPlanHandler(planService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
