package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"tasktracker/internal/config"
	"tasktracker/internal/features/invitations"
	projects_controllers "tasktracker/internal/features/projects/controllers"
	projects_models "tasktracker/internal/features/projects/models"
	"tasktracker/internal/features/system/healthcheck"
	tasks_cleanup "tasktracker/internal/features/tasks/cleanup"
	tasks_controllers "tasktracker/internal/features/tasks/controllers"
	tasks_digest "tasktracker/internal/features/tasks/digest"
	tasks_models "tasktracker/internal/features/tasks/models"
	tasks_services "tasktracker/internal/features/tasks/services"
	users_controllers "tasktracker/internal/features/users/controllers"
	users_middleware "tasktracker/internal/features/users/middleware"
	users_models "tasktracker/internal/features/users/models"
	users_services "tasktracker/internal/features/users/services"
	"tasktracker/internal/storage"
	cache_utils "tasktracker/internal/util/cache"
	env_utils "tasktracker/internal/util/env"
	"tasktracker/internal/util/logger"
	_ "tasktracker/swagger" // swagger docs

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Task Tracker Backend API
// @version 1.0
// @description API for Task Tracker
// @termsOfService http://swagger.io/terms/

// @host localhost:5000
// @BasePath /api/v1
// @schemes http
func main() {
	log := logger.GetLogger()
	config.StartListeningForShutdownSignal()

	cache_utils.TestCacheConnection()

	runMigrations(log)

	setUpDependencies()

	go generateSwaggerDocs(log)

	gin.SetMode(gin.ReleaseMode)
	ginApp := gin.Default()

	// Add GZIP compression middleware
	ginApp.Use(gzip.Gzip(
		gzip.DefaultCompression,
		// Don't compress already compressed files
		gzip.WithExcludedExtensions(
			[]string{".png", ".gif", ".jpeg", ".jpg", ".ico", ".svg", ".pdf", ".mp4"},
		),
	))

	enableCors(ginApp)
	setUpRoutes(ginApp)
	runBackgroundTasks(log)

	startServerWithGracefulShutdown(log, ginApp)
}

func startServerWithGracefulShutdown(log *slog.Logger, app *gin.Engine) {
	host := ""
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		// for dev we use localhost to avoid firewall
		// requests on each run for Windows
		host = "127.0.0.1"
	}

	srv := &http.Server{
		Addr:    host + ":5000",
		Handler: app,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen:", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received")

	tasks_digest.GetDigestService().StopScheduler()

	// The context is used to inform the server it has 10 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown:", "error", err)
	}

	log.Info("Server gracefully stopped")
}

func setUpRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	// Mount Swagger UI
	v1.GET("/docs/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes (only auth and health should be public)
	authController := users_controllers.GetAuthController()
	authController.RegisterRoutes(v1)
	healthcheck.GetHealthController().RegisterRoutes(v1)

	// Setup auth middleware
	userService := users_services.GetUserService()
	authMiddleware := users_middleware.AuthMiddleware(userService)

	// Protected routes
	protected := v1.Group("")
	protected.Use(authMiddleware)

	authController.RegisterProtectedRoutes(protected)
	projects_controllers.GetProjectController().RegisterRoutes(protected)
	projects_controllers.GetMembershipController().RegisterRoutes(protected)
	invitations.GetInvitationController().RegisterRoutes(protected)
	tasks_controllers.GetTaskController().RegisterRoutes(protected)
	tasks_controllers.GetAttachmentController().RegisterRoutes(protected)
}

func setUpDependencies() {
	tasks_cleanup.SetupDependencies()
	tasks_services.SetupDependencies()
	invitations.SetupDependencies()
	tasks_digest.SetupDependencies()
}

func runBackgroundTasks(log *slog.Logger) {
	log.Info("Preparing to run background tasks...")

	tasks_cleanup.GetAttachmentCleanupService().StartWorkers()
	tasks_digest.GetDigestService().StartScheduler()

	log.Info("Background tasks started successfully")
}

// Keep in mind: docs appear after second launch, because Swagger
// is generated into Go files. So if we changed files, we generate
// new docs, but still need to restart the server to see them.
func generateSwaggerDocs(log *slog.Logger) {
	if config.GetEnv().EnvMode == env_utils.EnvModeProduction {
		return
	}

	currentDir, err := os.Getwd()
	if err != nil {
		log.Error("Failed to get current directory", "error", err)
		return
	}

	cmd := exec.Command("swag", "init", "-d", currentDir, "-g", "cmd/main.go", "-o", "swagger")

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Error("Failed to generate Swagger docs", "error", err, "output", string(output))
		return
	}

	log.Info("Swagger documentation generated successfully")
}

func runMigrations(log *slog.Logger) {
	log.Info("Running database migrations...")

	err := storage.GetDb().AutoMigrate(
		&users_models.User{},
		&projects_models.Project{},
		&projects_models.ProjectMembership{},
		&invitations.Invitation{},
		&tasks_models.Task{},
		&tasks_models.Attachment{},
	)
	if err != nil {
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	log.Info("Database migrations completed successfully")
}

func enableCors(ginApp *gin.Engine) {
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		// Setup CORS
		ginApp.Use(cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
			AllowHeaders: []string{
				"Origin",
				"Content-Length",
				"Content-Type",
				"Authorization",
				"Accept",
				"Accept-Language",
				"Accept-Encoding",
				"Access-Control-Request-Method",
				"Access-Control-Request-Headers",
				"Access-Control-Allow-Methods",
				"Access-Control-Allow-Headers",
				"Access-Control-Allow-Origin",
			},
			AllowCredentials: true,
		}))
	}
}
