package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/roksva123/go-projecthub-backend/internal/api/handlers"
	"github.com/roksva123/go-projecthub-backend/internal/api/middleware"
	"github.com/roksva123/go-projecthub-backend/internal/auth"
	"github.com/roksva123/go-projecthub-backend/internal/config"
	"github.com/roksva123/go-projecthub-backend/internal/repository"
	"github.com/roksva123/go-projecthub-backend/internal/storage"
	"github.com/roksva123/go-projecthub-backend/internal/store"
)

func main() {

	// LOAD ENV
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("failed load config")
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.AppEnv != "production" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	// PERSISTENCE
	var kv storage.KV
	sqliteKV, err := storage.NewSQLiteKV(cfg.DataPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", cfg.DataPath).Msg("sqlite unavailable, falling back to in-memory store")
		kv = storage.NewMemoryKV()
	} else {
		defer sqliteKV.Close()
		kv = sqliteKV
	}
	codec := storage.NewCodec(kv, cfg.StoreKey, logger)

	// DOMAIN STORE
	st := store.New(codec, logger)

	// AUTH SERVICES
	supabase := auth.NewSupabaseClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, logger)

	var profiles auth.ProfileStore = supabase
	repo, err := repository.NewPostgresRepo(&repository.DBConfig{
		Host: cfg.DBHost,
		Port: cfg.DBPort,
		User: cfg.DBUser,
		Pass: cfg.DBPass,
		Name: cfg.DBName,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("postgres unavailable, profiles served from supabase")
		repo = nil
	} else {
		if err := repo.RunMigrations(context.Background()); err != nil {
			logger.Fatal().Err(err).Msg("migration error")
		}
		profiles = repo

		// ADMIN SEED
		if cfg.AdminPassword != "" {
			hashed, _ := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
			if err := repo.UpsertAdmin(context.Background(), cfg.AdminUsername, string(hashed)); err != nil {
				logger.Error().Err(err).Msg("failed seeding admin")
			} else {
				logger.Info().Str("username", cfg.AdminUsername).Msg("admin seeded")
			}
		}
	}

	reconciler := auth.NewReconciler(supabase, profiles, logger,
		auth.WithRedirectURL(cfg.OAuthRedirectURL),
		auth.WithRedirectDelay(cfg.LoginRedirectDelay),
	)
	defer reconciler.Close()
	reconciler.Initialize(context.Background(), "")

	// HANDLERS
	authHandler := handlers.NewAuthHandler(reconciler, supabase, repo, cfg.JWTSecret, logger)
	projectHandler := handlers.NewProjectHandler(st, logger)
	taskHandler := handlers.NewTaskHandler(st, logger)
	teamHandler := handlers.NewTeamHandler(st, logger)
	notificationHandler := handlers.NewNotificationHandler(st, logger)
	attendanceHandler := handlers.NewAttendanceHandler(st, logger)
	reportHandler := handlers.NewReportHandler(st, logger)
	optionsHandler := handlers.NewOptionsHandler(st, logger)

	// ROUTER
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	api := r.Group("/api/v1")

	// AUTH ROUTES
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/oauth/:provider", authHandler.OAuthURL)
		authGroup.GET("/callback", authHandler.Callback)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.GET("/session", authHandler.Session)
	}

	protected := api.Group("")
	protected.Use(middleware.JWTAuth(cfg.JWTSecret))

	// PROJECT ROUTES
	projects := protected.Group("/projects")
	{
		projects.GET("", projectHandler.List)
		projects.POST("", projectHandler.Create)
		projects.GET("/:id", projectHandler.Get)
		projects.PUT("/:id", projectHandler.Update)
		projects.DELETE("/:id", projectHandler.Delete)
		projects.POST("/:id/assign", projectHandler.AssignUser)
		projects.GET("/:id/progress", projectHandler.Progress)
		projects.GET("/:id/tasks", projectHandler.Tasks)
		projects.POST("/:id/deadline-reminder", projectHandler.DeadlineReminder)
		projects.GET("/:id/attendance", projectHandler.Attendance)
	}

	// TASK ROUTES
	tasks := protected.Group("/tasks")
	{
		tasks.POST("", taskHandler.Create)
		tasks.GET("/overdue", taskHandler.Overdue)
		tasks.GET("/upcoming", taskHandler.Upcoming)
		tasks.GET("/:id", taskHandler.Get)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)
		tasks.PUT("/:id/status", taskHandler.ChangeStatus)
		tasks.POST("/:id/labels", taskHandler.AddLabel)
		tasks.PUT("/:id/deadline", taskHandler.SetDeadline)
		tasks.POST("/:id/files", taskHandler.AttachFile)
		tasks.GET("/:id/comments", taskHandler.ListComments)
		tasks.POST("/:id/comments", taskHandler.AddComment)
		tasks.DELETE("/:id/comments/:commentId", taskHandler.DeleteComment)
	}

	// TEAM ROUTES
	team := protected.Group("/team")
	{
		team.GET("", teamHandler.List)
		team.POST("", teamHandler.Create)
		team.GET("/:id", teamHandler.Get)
		team.PUT("/:id", teamHandler.Update)
		team.DELETE("/:id", teamHandler.Delete)
		team.PUT("/:id/role", teamHandler.AssignRole)
		team.GET("/:id/notifications", teamHandler.Notifications)
		team.GET("/:id/attendance", teamHandler.Attendance)
	}

	// NOTIFICATION ROUTES
	notifications := protected.Group("/notifications")
	{
		notifications.POST("", notificationHandler.Send)
		notifications.PUT("/:id/read", notificationHandler.MarkRead)
	}

	// ATTENDANCE ROUTES
	attendance := protected.Group("/attendance")
	{
		attendance.POST("/check-in", attendanceHandler.CheckIn)
		attendance.POST("/check-out", attendanceHandler.CheckOut)
	}

	// REPORT ROUTES
	reports := protected.Group("/reports")
	{
		reports.GET("", reportHandler.List)
		reports.POST("", reportHandler.Create)
		reports.POST("/custom", reportHandler.CreateCustom)
		reports.POST("/daily", reportHandler.SubmitDaily)
		reports.GET("/weekly-summary", reportHandler.WeeklySummary)
		reports.GET("/performance", reportHandler.Performance)
		reports.GET("/:id", reportHandler.Get)
		reports.PUT("/:id", reportHandler.Update)
		reports.DELETE("/:id", reportHandler.Delete)
	}

	// CUSTOM OPTION ROUTES
	options := protected.Group("/options")
	{
		options.GET("/:kind", optionsHandler.List)
		options.POST("/statuses", optionsHandler.CreateStatus)
		options.POST("/labels", optionsHandler.CreateLabel)
		options.POST("/report-categories", optionsHandler.CreateReportCategory)
	}

	// START SERVER
	logger.Info().Str("port", cfg.Port).Msg("server running")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
