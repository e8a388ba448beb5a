package server

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/coachdesk/coachdesk/internal/config"
	"github.com/coachdesk/coachdesk/internal/handler"
	"github.com/coachdesk/coachdesk/internal/middleware"
	"github.com/coachdesk/coachdesk/internal/repository"
	"github.com/coachdesk/coachdesk/internal/service"
	"github.com/coachdesk/coachdesk/internal/telemetry"
)

// AppDependencies holds the dependencies required to start the application
type AppDependencies struct {
	Config      *config.Config
	MongoDB     *mongo.Database
	RedisClient *redis.Client
}

// NewApp creates and configures the Fiber application with the given dependencies
func NewApp(deps AppDependencies) *fiber.App {
	// Repositories
	clientRepo := repository.NewMongoClientRepository(deps.MongoDB)
	exerciseRepo := repository.NewMongoExerciseRepository(deps.MongoDB)
	mongoTemplateRepo := repository.NewMongoTemplateRepository(deps.MongoDB)
	instanceRepo := repository.NewMongoInstanceRepository(deps.MongoDB)
	sessionRepo := repository.NewMongoSessionRepository(deps.MongoDB)

	cacheRepo := repository.NewRedisCacheRepository(deps.RedisClient)
	templateRepo := repository.NewCachedTemplateRepository(mongoTemplateRepo, cacheRepo)

	// Services
	clientService := service.NewClientService(clientRepo, instanceRepo, sessionRepo)
	exerciseService := service.NewExerciseService(exerciseRepo)
	programService := service.NewProgramService(templateRepo, exerciseRepo)
	assignmentService := service.NewAssignmentService(templateRepo, clientRepo, instanceRepo, sessionRepo)
	sessionService := service.NewSessionService(sessionRepo, clientRepo)
	dashboardService := service.NewDashboardService(clientRepo, instanceRepo, sessionRepo)

	// Handlers
	clientHandler := handler.NewClientHandler(clientService)
	exerciseHandler := handler.NewExerciseHandler(exerciseService)
	programHandler := handler.NewProgramHandler(programService)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService, instanceRepo)
	sessionHandler := handler.NewSessionHandler(sessionService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	app := fiber.New(fiber.Config{
		AppName:      "CoachDesk API",
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(telemetry.FiberMiddleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, X-Correlation-ID",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "coachdesk",
		})
	})

	v1 := app.Group("/v1")

	// Clients
	clients := v1.Group("/clients")
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.Get)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)
	clients.Get("/:id/instances", assignmentHandler.ListClientInstances)

	// Exercise catalog
	exercises := v1.Group("/exercises")
	exercises.Post("/", exerciseHandler.Create)
	exercises.Get("/", exerciseHandler.List)
	exercises.Get("/:id", exerciseHandler.Get)
	exercises.Put("/:id", exerciseHandler.Update)
	exercises.Delete("/:id", exerciseHandler.Delete)

	// Program templates and the structural editor
	templates := v1.Group("/templates")
	templates.Post("/", programHandler.Create)
	templates.Get("/", programHandler.List)
	templates.Get("/:id", programHandler.Get)
	templates.Put("/:id", programHandler.Update)
	templates.Delete("/:id", programHandler.Delete)
	templates.Post("/:id/clone", programHandler.Clone)

	templates.Post("/:id/weeks", programHandler.AddWeek)
	templates.Delete("/:id/weeks/last", programHandler.DeleteLastWeek)
	templates.Patch("/:id/weeks/:week/frequency", programHandler.SetWeekFrequency)
	templates.Patch("/:id/weeks/:week/rest-pattern", programHandler.SetRestPattern)
	templates.Post("/:id/days", programHandler.AddDay)
	templates.Delete("/:id/days/:position", programHandler.RemoveDay)
	templates.Patch("/:id/days/:day/rest", programHandler.ToggleRestDay)
	templates.Post("/:id/days/:day/sections", programHandler.AddSection)
	templates.Delete("/:id/days/:day/sections/:section_id", programHandler.DeleteSection)
	templates.Post("/:id/days/:day/sections/:section_id/exercises", programHandler.AddExercise)
	templates.Delete("/:id/days/:day/sections/:section_id/exercises/:exercise_id", programHandler.DeleteExercise)
	templates.Get("/:id/days/:day/exercises", programHandler.CopyDayExercises)
	templates.Post("/:id/days/:day/exercises/paste", programHandler.PasteDayExercises)

	// Assignment: idempotent so a retried batch cannot run twice
	templates.Post("/:id/assign",
		middleware.Idempotency(deps.RedisClient, deps.Config.Server.IdempotencyTTL),
		assignmentHandler.Assign)
	v1.Post("/assignments/conflicts", assignmentHandler.DetectConflicts)

	// Program instances
	instances := v1.Group("/instances")
	instances.Get("/:id", assignmentHandler.GetInstance)
	instances.Post("/:id/complete-day", assignmentHandler.CompleteDay)
	instances.Delete("/:id", assignmentHandler.DeleteInstance)

	// Sessions
	sessions := v1.Group("/sessions")
	sessions.Post("/", sessionHandler.Create)
	sessions.Get("/", sessionHandler.List)
	sessions.Get("/:id", sessionHandler.Get)
	sessions.Patch("/:id/status", sessionHandler.UpdateStatus)
	sessions.Patch("/:id/exercises/:exercise_id/sets", sessionHandler.LogSets)
	sessions.Delete("/:id", sessionHandler.Delete)

	// Dashboard
	v1.Get("/dashboard/summary", dashboardHandler.Summary)

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	log.Printf("Error: %v", err)
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
