package main

import (
	"context"
	"net/http"

	_ "time/tzdata" // Load timezone data

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/sendgrid/sendgrid-go"
	"github.com/twilio/twilio-go"

	"github.com/juanqui-art/inmo-app-sub002/internal/app"
	"github.com/juanqui-art/inmo-app-sub002/internal/config"
	"github.com/juanqui-art/inmo-app-sub002/internal/controllers"
	"github.com/juanqui-art/inmo-app-sub002/internal/middleware"
	"github.com/juanqui-art/inmo-app-sub002/internal/models"
	"github.com/juanqui-art/inmo-app-sub002/internal/repositories"
	"github.com/juanqui-art/inmo-app-sub002/internal/routes"
	"github.com/juanqui-art/inmo-app-sub002/internal/services"
	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize the application:", err)
	}
	defer application.Close()

	// Repositories
	userRepo := repositories.NewUserRepository(application.DB, cfg.DBEncryptionKey)
	propRepo := repositories.NewPropertyRepository(application.DB)
	imageRepo := repositories.NewPropertyImageRepository(application.DB)
	favRepo := repositories.NewFavoriteRepository(application.DB)
	apptRepo := repositories.NewAppointmentRepository(application.DB)
	tokenRepo := repositories.NewTokenRepository(application.DB)
	rateLimitRepo := repositories.NewRateLimitRepository(application.DB)

	// Conditionally seed demo data if the feature flag is enabled.
	if cfg.LDFlag_SeedDbWithTestData {
		if err := app.SeedTestData(context.Background(), userRepo, propRepo, imageRepo); err != nil {
			utils.Logger.Fatal("Failed to seed demo data:", err)
		}
	}

	// External clients
	var sgClient *sendgrid.Client
	if cfg.SendgridAPIKey != "" {
		sgClient = sendgrid.NewSendClient(cfg.SendgridAPIKey)
	}
	var twClient *twilio.RestClient
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		twClient = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		})
	}

	// Services
	jwtService := services.NewJWTService(cfg, tokenRepo)
	rateLimiter := services.NewRateLimiterService(rateLimitRepo, cfg)
	authService := services.NewAuthService(userRepo, jwtService, rateLimiter, cfg)
	notificationService := services.NewNotificationService(userRepo, sgClient, twClient, cfg)
	propertyService := services.NewPropertyService(propRepo, imageRepo, favRepo, apptRepo, cfg)
	searchService := services.NewSearchService(propRepo)
	aiSearchService := services.NewAISearchService(cfg.OpenAIAPIKey, searchService)
	favoriteService := services.NewFavoriteService(favRepo, propRepo)
	appointmentService := services.NewAppointmentService(apptRepo, propRepo, notificationService)
	adminService := services.NewAdminService(userRepo, propRepo, tokenRepo)
	cleanupService := services.NewCleanupService(tokenRepo, rateLimitRepo, apptRepo)
	reminderService := services.NewReminderService(apptRepo, propRepo, notificationService)

	// Controllers
	healthController := controllers.NewHealthController(application)
	authController := controllers.NewAuthController(authService, cfg)
	propertyController := controllers.NewPropertyController(searchService, propertyService, appointmentService)
	aiSearchController := controllers.NewAISearchController(aiSearchService, searchService, rateLimiter, cfg)
	favoriteController := controllers.NewFavoriteController(favoriteService)
	appointmentController := controllers.NewAppointmentController(appointmentService)
	agentController := controllers.NewAgentPropertyController(propertyService, appointmentService)
	adminController := controllers.NewAdminController(adminService)

	// Background jobs
	c := cron.New()
	schedule := func(spec, name string, job func(context.Context) error) {
		_, schErr := c.AddFunc(spec, func() {
			if err := job(context.Background()); err != nil {
				utils.Logger.WithError(err).Errorf("Scheduled %s failed", name)
			}
		})
		if schErr != nil {
			utils.Logger.WithError(schErr).Fatalf("Failed to schedule %s job", name)
		}
	}
	schedule("@every 10m", "token cleanup", cleanupService.CleanupExpiredTokens)
	schedule("@every 30m", "rate limit cleanup", cleanupService.CleanupRateLimits)
	schedule("@hourly", "appointment sweep", cleanupService.SweepPastAppointments)
	schedule("*/15 * * * *", "reminder dispatch", reminderService.DispatchDue)
	c.Start()

	// Router
	router := mux.NewRouter()

	// Health
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	// Public catalog. Static paths are registered before {id} so mux
	// does not swallow them as UUIDs.
	router.HandleFunc(routes.PropertiesMap, propertyController.MapHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.PropertiesNearby, propertyController.NearbyHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Properties, propertyController.SearchHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.PropertySlots, propertyController.SlotsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.AISearch, aiSearchController.SearchHandler).Methods(http.MethodPost)

	// Listing detail takes an optional token so owning agents and admins
	// can preview unpublished listings.
	detail := router.NewRoute().Subrouter()
	detail.Use(middleware.OptionalAuthMiddleware(cfg.RSAPublicKey))
	detail.HandleFunc(routes.PropertyByID, propertyController.GetHandler).Methods(http.MethodGet)

	// Auth
	router.HandleFunc(routes.AuthRegister, authController.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthLogin, authController.LoginHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthRefresh, authController.RefreshHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthLogout, authController.LogoutHandler).Methods(http.MethodPost)

	// Authenticated routes (JWT middleware)
	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))

	secured.HandleFunc(routes.AuthMe, authController.MeHandler).Methods(http.MethodGet)

	secured.HandleFunc(routes.Favorites, favoriteController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.FavoriteByID, favoriteController.SaveHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.FavoriteByID, favoriteController.RemoveHandler).Methods(http.MethodDelete)

	secured.HandleFunc(routes.Appointments, appointmentController.BookHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Appointments, appointmentController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.AppointmentByID, appointmentController.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.AppointmentCancel, appointmentController.CancelHandler).Methods(http.MethodPost)

	// Agent dashboard
	agent := router.NewRoute().Subrouter()
	agent.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))
	agent.Use(middleware.RequireRole(models.UserRoleAgent))

	agent.HandleFunc(routes.AgentProperties, agentController.CreateHandler).Methods(http.MethodPost)
	agent.HandleFunc(routes.AgentProperties, agentController.InventoryHandler).Methods(http.MethodGet)
	agent.HandleFunc(routes.AgentPropertyByID, agentController.GetHandler).Methods(http.MethodGet)
	agent.HandleFunc(routes.AgentPropertyByID, agentController.UpdateHandler).Methods(http.MethodPatch)
	agent.HandleFunc(routes.AgentPropertyByID, agentController.DeleteHandler).Methods(http.MethodDelete)
	agent.HandleFunc(routes.AgentPropertyStatus, agentController.ChangeStatusHandler).Methods(http.MethodPatch)
	agent.HandleFunc(routes.AgentPropertyImages, agentController.AddImageHandler).Methods(http.MethodPost)
	agent.HandleFunc(routes.AgentPropertyImage, agentController.RemoveImageHandler).Methods(http.MethodDelete)
	agent.HandleFunc(routes.AgentPropertyCover, agentController.SetCoverHandler).Methods(http.MethodPut)
	agent.HandleFunc(routes.AgentAppointments, agentController.AppointmentsHandler).Methods(http.MethodGet)
	agent.HandleFunc(routes.AppointmentConfirm, appointmentController.ConfirmHandler).Methods(http.MethodPost)

	// Admin panel
	admin := router.NewRoute().Subrouter()
	admin.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))
	admin.Use(middleware.RequireRole(models.UserRoleAdmin))

	admin.HandleFunc(routes.AdminUsers, adminController.ListUsersHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminUserBan, adminController.BanUserHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminUserUnban, adminController.UnbanUserHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminProperties, adminController.ListPropertiesHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminPropertyState, adminController.ForceStatusHandler).Methods(http.MethodPatch)
	admin.HandleFunc(routes.AdminStats, adminController.StatsHandler).Methods(http.MethodGet)

	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, utils.CORSLowSecurityAllowedOriginLocalhost)
	}

	// CORS config
	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Platform", "X-Device-ID", "ngrok-skip-browser-warning"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("Failed to start server:", err)
	}
}
