package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/dkhromov/stafftests/config"
	"github.com/dkhromov/stafftests/database"
	_ "github.com/dkhromov/stafftests/docs" // Swagger docs - auto-generated
	adminctrl "github.com/dkhromov/stafftests/internal/controller/admin"
	publicctrl "github.com/dkhromov/stafftests/internal/controller/public"
	staffctrl "github.com/dkhromov/stafftests/internal/controller/staff"
	userctrl "github.com/dkhromov/stafftests/internal/controller/user"
	"github.com/dkhromov/stafftests/internal/logger"
	"github.com/dkhromov/stafftests/internal/middleware"
	"github.com/dkhromov/stafftests/internal/model"
	"github.com/dkhromov/stafftests/internal/repository"
	"github.com/dkhromov/stafftests/internal/service"
)

// @title Staff Testing API
// @version 1.0
// @description Role-gated staff and online-test management API: users, employees, tests, scored attempts and approval workflows.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewEmployeeRepository,
			repository.NewTestRepository,
			repository.NewQuestionRepository,
			repository.NewAnswerRepository,
			repository.NewResultRepository,
			repository.NewDeletionRequestRepository,
			repository.NewSessionRepository,
		),

		fx.Provide(
			service.NewUserService,
			service.NewEmployeeService,
			service.NewTestService,
			service.NewSubmissionService,
			service.NewApprovalService,
			service.NewAuthService,
		),

		fx.Provide(
			adminctrl.NewAdminController,
			staffctrl.NewStaffController,
			userctrl.NewUserController,
			publicctrl.NewPublicController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer wires the route groups behind their role
// gates and manages the HTTP server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authSvc service.AuthService,
	adminCtrl *adminctrl.AdminController,
	staffCtrl *staffctrl.StaffController,
	userCtrl *userctrl.UserController,
	publicCtrl *publicctrl.PublicController,
) {
	router.Use(middleware.ResolveActor(authSvc, cfg.Session.CookieName))

	api := router.Group("/api/v1")

	// Ungated: login selection and the read-only projections.
	api.POST("/session", publicCtrl.Login)
	api.DELETE("/session", publicCtrl.Logout)
	api.GET("/users", publicCtrl.ListUsers)
	api.GET("/users/:id", publicCtrl.GetUser)
	api.GET("/employees", publicCtrl.ListEmployees)
	api.GET("/employees/:id", publicCtrl.GetEmployee)

	adminGroup := api.Group("/admin", middleware.RequireRole(model.RoleAdmin))
	{
		adminGroup.POST("/users", adminCtrl.CreateUser)
		adminGroup.GET("/users", adminCtrl.ListUsers)
		adminGroup.GET("/users/:id", adminCtrl.GetUser)
		adminGroup.PUT("/users/:id", adminCtrl.UpdateUser)
		adminGroup.DELETE("/users/:id", adminCtrl.DeleteUser)

		adminGroup.POST("/employees", adminCtrl.CreateEmployee)
		adminGroup.GET("/employees", adminCtrl.ListEmployees)
		adminGroup.GET("/employees/:id", adminCtrl.GetEmployee)
		adminGroup.PUT("/employees/:id", adminCtrl.UpdateEmployee)
		adminGroup.POST("/employees/:id/fire", adminCtrl.FireEmployee)
		adminGroup.DELETE("/employees/:id", adminCtrl.HardDeleteEmployee)

		adminGroup.GET("/deletion-requests", adminCtrl.PendingDeletions)
		adminGroup.POST("/deletion-requests/:id/approve", adminCtrl.ApproveDeletion)
		adminGroup.POST("/deletion-requests/:id/decline", adminCtrl.DeclineDeletion)
	}

	staffGroup := api.Group("/staff", middleware.RequireRole(model.RoleEmployee, model.RoleAdmin))
	{
		staffGroup.POST("/tests", staffCtrl.CreateTest)
		staffGroup.PUT("/tests/:id", staffCtrl.UpdateTest)
		staffGroup.GET("/tests/:id", staffCtrl.GetTest)
		staffGroup.POST("/tests/:id/questions", staffCtrl.AddQuestion)
		staffGroup.PUT("/questions/:id", staffCtrl.UpdateQuestion)
		staffGroup.POST("/questions/:id/answers", staffCtrl.AddAnswer)
		staffGroup.PUT("/answers/:id", staffCtrl.UpdateAnswer)
		staffGroup.POST("/tests/:id/deletion-request", staffCtrl.RequestDeletion)

		staffGroup.GET("/results", staffCtrl.PendingResults)
		staffGroup.POST("/results/:id/approve", staffCtrl.ApproveResult)
		staffGroup.POST("/results/:id/decline", staffCtrl.DeclineResult)
	}

	userGroup := api.Group("", middleware.RequireRole(model.RoleUser, model.RoleEmployee, model.RoleAdmin))
	{
		userGroup.GET("/tests", userCtrl.ListTests)
		userGroup.GET("/tests/:id", userCtrl.GetTest)
		userGroup.POST("/tests/:id/attempts", userCtrl.SubmitAttempt)
		userGroup.GET("/my/results", userCtrl.MyResults)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Staff testing API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.AppUser{},
		&model.Employee{},
		&model.Test{},
		&model.Question{},
		&model.Answer{},
		&model.TestResult{},
		&model.TestDeletionRequest{},
		&model.Session{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
