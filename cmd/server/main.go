package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Charlesbasis/portfolio-app-sub000/adapters/event"
	httpAdapter "github.com/Charlesbasis/portfolio-app-sub000/adapters/http"
	"github.com/Charlesbasis/portfolio-app-sub000/adapters/media_storage"
	"github.com/Charlesbasis/portfolio-app-sub000/adapters/persistence"
	authUC "github.com/Charlesbasis/portfolio-app-sub000/internal/application/usecase/auth"
	mediaUC "github.com/Charlesbasis/portfolio-app-sub000/internal/application/usecase/media"
	onboardingUC "github.com/Charlesbasis/portfolio-app-sub000/internal/application/usecase/onboarding"
	portfolioUC "github.com/Charlesbasis/portfolio-app-sub000/internal/application/usecase/portfolio"
	profileUC "github.com/Charlesbasis/portfolio-app-sub000/internal/application/usecase/profile"
	projectUC "github.com/Charlesbasis/portfolio-app-sub000/internal/application/usecase/project"
	skillUC "github.com/Charlesbasis/portfolio-app-sub000/internal/application/usecase/skill"
	"github.com/Charlesbasis/portfolio-app-sub000/internal/config"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/auth"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/logger"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/tracing"
)

func main() {
	fmt.Println("Starting Portfolio API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	// Tracing
	tracerProvider, err := tracing.NewTracerProvider(cfg, appLogger, "portfolio-api")
	if err != nil {
		log.Fatalf("FATAL: cannot init tracing: %v", err)
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Printf("ERROR: tracer shutdown failed: %v", err)
		}
	}()

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Postgres: %v", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Redis: %v", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		log.Fatalf("FATAL: cannot init Kafka: %v", err)
	}
	defer kafkaClient.Close()

	// Repositories and stores
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	projectRepo := persistence.NewPostgresProjectRepo(dbPool, appLogger)
	skillRepo := persistence.NewPostgresSkillRepo(dbPool, appLogger)
	userTypeRegistry := persistence.NewPostgresUserTypeRegistry(dbPool, appLogger)
	completionRepo := persistence.NewPostgresCompletionRepo(dbPool, appLogger)
	draftStore := persistence.NewRedisDraftStore(redisClient)
	availabilityCache := persistence.NewRedisAvailabilityCache(redisClient)
	portfolioCache := persistence.NewRedisPortfolioCache(redisClient)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize uploader: %v", err)
	}

	// Use Cases
	registerUseCase := authUC.NewRegisterUseCase(userRepo, jwtSvc, appLogger)
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	sessionUseCase := onboardingUC.NewSessionUseCase(draftStore, userTypeRegistry, appLogger)
	completeUseCase := onboardingUC.NewCompleteOnboardingUseCase(completionRepo, userTypeRegistry, draftStore, kafkaClient, appLogger)
	statusUseCase := onboardingUC.NewStatusUseCase(userRepo, profileRepo, projectRepo, skillRepo)
	checkUsernameUseCase := onboardingUC.NewCheckUsernameUseCase(profileRepo, availabilityCache, appLogger)
	profileUseCase := profileUC.NewProfileUseCase(profileRepo)
	uploadAvatarUseCase := mediaUC.NewUploadAvatarUseCase(uploader, profileRepo)
	createProjectUseCase := projectUC.NewCreateProjectUseCase(projectRepo)
	listProjectsUseCase := projectUC.NewListProjectsUseCase(projectRepo)
	getProjectUseCase := projectUC.NewGetProjectUseCase(projectRepo)
	updateProjectUseCase := projectUC.NewUpdateProjectUseCase(projectRepo)
	deleteProjectUseCase := projectUC.NewDeleteProjectUseCase(projectRepo)
	skillUseCase := skillUC.NewSkillUseCase(skillRepo)
	getPortfolioUseCase := portfolioUC.NewGetPortfolioUseCase(profileRepo, projectRepo, skillRepo, portfolioCache, appLogger)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(registerUseCase, loginUseCase)
	onboardingHandler := httpAdapter.NewOnboardingHandler(
		sessionUseCase,
		completeUseCase,
		statusUseCase,
		checkUsernameUseCase,
		appLogger,
	)
	profileHandler := httpAdapter.NewProfileHandler(profileUseCase, uploadAvatarUseCase, appLogger)
	projectHandler := httpAdapter.NewProjectHandler(
		createProjectUseCase,
		listProjectsUseCase,
		getProjectUseCase,
		updateProjectUseCase,
		deleteProjectUseCase,
		appLogger,
	)
	skillHandler := httpAdapter.NewSkillHandler(skillUseCase)
	portfolioHandler := httpAdapter.NewPortfolioHandler(getPortfolioUseCase, appLogger)
	userTypeHandler := httpAdapter.NewUserTypeHandler(userTypeRegistry)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)

	// Setup Gin router
	router := gin.Default()
	router.Use(httpAdapter.ErrorMiddleware(appLogger, cfg.IsProduction()))

	api := router.Group("/api")
	{
		public := api.Group("/")
		{
			public.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

			public.POST("/auth/register", authHandler.Register)
			public.POST("/auth/login", authHandler.Login)

			public.GET("/user-types", userTypeHandler.ListUserTypes)
			public.GET("/user-types/:slug", userTypeHandler.GetUserType)

			public.GET("/portfolio/:username", portfolioHandler.GetPortfolio)
		}

		private := api.Group("/")
		private.Use(authMiddleware)
		{
			onboarding := private.Group("/onboarding")
			{
				onboarding.POST("/session", onboardingHandler.StartSession)
				onboarding.GET("/session", onboardingHandler.GetSession)
				onboarding.PATCH("/session", onboardingHandler.PatchSession)
				onboarding.POST("/session/advance", onboardingHandler.AdvanceSession)
				onboarding.POST("/complete", onboardingHandler.Complete)
				onboarding.GET("/status", onboardingHandler.GetStatus)
				onboarding.GET("/username", onboardingHandler.CheckUsername)
			}

			private.GET("/profile", profileHandler.GetProfile)
			private.PUT("/profile", profileHandler.UpdateProfile)
			private.POST("/profile/avatar", profileHandler.UploadAvatar)

			projects := private.Group("/projects")
			{
				projects.POST("", projectHandler.CreateProject)
				projects.GET("", projectHandler.ListProjects)
				projects.GET("/:id", projectHandler.GetProject)
				projects.PUT("/:id", projectHandler.UpdateProject)
				projects.DELETE("/:id", projectHandler.DeleteProject)
			}

			skills := private.Group("/skills")
			{
				skills.POST("", skillHandler.CreateSkill)
				skills.GET("", skillHandler.ListSkills)
				skills.PUT("/:id", skillHandler.UpdateSkill)
				skills.DELETE("/:id", skillHandler.DeleteSkill)
			}
		}
	}

	log.Printf("Server running on port %s", cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Cannot run server: %v", err)
	}
}
