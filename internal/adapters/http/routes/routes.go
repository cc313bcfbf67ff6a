package routes

import (
	"ssfowa-portal/internal/adapters/http/handlers"
	"ssfowa-portal/internal/adapters/http/middleware"
	"ssfowa-portal/internal/adapters/persistence/repositories"
	"ssfowa-portal/internal/config"
	"ssfowa-portal/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	dueRepo := repositories.NewDueRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	requestRepo := repositories.NewRequestRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	// Directory repositories
	amenityRepo := repositories.NewAmenityRepository(db)
	announcementRepo := repositories.NewAnnouncementRepository(db)
	guidelineRepo := repositories.NewGuidelineRepository(db)
	vendorRepo := repositories.NewVendorRepository(db)
	contactRepo := repositories.NewContactRepository(db)

	// Initialize services
	notifyService := services.NewNotificationService(notificationRepo, userRepo)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo)
	paymentService := services.NewPaymentService(paymentRepo, dueRepo, userRepo, notifyService)
	requestService := services.NewRequestService(requestRepo, amenityRepo, userRepo, notifyService)
	dashboardService := services.NewDashboardService(paymentRepo, dueRepo, requestRepo, notificationRepo, userRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, cfg)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, cfg)
	requestHandler := handlers.NewRequestHandler(requestService)
	notificationHandler := handlers.NewNotificationHandler(notifyService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	directoryHandler := handlers.NewDirectoryHandler(
		amenityRepo,
		announcementRepo,
		guidelineRepo,
		vendorRepo,
		contactRepo,
		notifyService,
	)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes (public)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Profile routes (authenticated users)
	profileRoutes := apiV1.Group("/users")
	profileRoutes.Use(middleware.AuthMiddleware(cfg))
	setupProfileRoutes(profileRoutes, userHandler)

	// Payment & dues routes (all authenticated users)
	paymentRoutes := apiV1.Group("/payments")
	paymentRoutes.Use(middleware.AuthMiddleware(cfg))
	setupPaymentRoutes(paymentRoutes, paymentHandler)

	// Request routes (all authenticated users)
	requestRoutes := apiV1.Group("/requests")
	requestRoutes.Use(middleware.AuthMiddleware(cfg))
	setupRequestRoutes(requestRoutes, requestHandler)

	// Notification routes
	notificationRoutes := apiV1.Group("/notifications")
	notificationRoutes.Use(middleware.AuthMiddleware(cfg))
	setupNotificationRoutes(notificationRoutes, notificationHandler)

	// Directory routes (read side, all authenticated users)
	directoryRoutes := apiV1.Group("")
	directoryRoutes.Use(middleware.AuthMiddleware(cfg))
	setupDirectoryRoutes(directoryRoutes, directoryHandler)

	// Dashboard routes
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	dashboardRoutes.Get("/", dashboardHandler.ResidentOverview)

	// Admin routes
	adminRoutes := apiV1.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(cfg))
	adminRoutes.Use(middleware.AdminOnly())
	setupAdminRoutes(adminRoutes, userHandler, paymentHandler, requestHandler, dashboardHandler, directoryHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (rate limited against brute force)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupProfileRoutes configures profile routes (authenticated)
func setupProfileRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/profile", handler.GetProfile)
	router.Put("/profile", handler.UpdateProfile)
	router.Put("/password", handler.ChangePassword)
}

// setupPaymentRoutes configures payment routes for residents
func setupPaymentRoutes(router fiber.Router, handler *handlers.PaymentHandler) {
	router.Post("/initiate", handler.Initiate)
	router.Get("/", handler.ListMine)
	// Registered before /:id so the literal path wins
	router.Get("/dues", handler.ListMyDues)
	router.Get("/:id", handler.Get)
	router.Post("/:id/confirm", handler.Confirm)
}

// setupRequestRoutes configures maintenance request and booking routes
func setupRequestRoutes(router fiber.Router, handler *handlers.RequestHandler) {
	router.Post("/", handler.Create)
	router.Get("/", handler.ListMine)
	router.Get("/:id", handler.Get)
}

// setupNotificationRoutes configures notification inbox routes
func setupNotificationRoutes(router fiber.Router, handler *handlers.NotificationHandler) {
	router.Get("/", handler.List)
	router.Patch("/read-all", handler.MarkAllRead)
	router.Patch("/:id/read", handler.MarkRead)
}

// setupDirectoryRoutes configures community directory read routes
func setupDirectoryRoutes(router fiber.Router, handler *handlers.DirectoryHandler) {
	router.Get("/amenities", handler.ListAmenities)
	router.Get("/amenities/:id", handler.GetAmenity)
	router.Get("/announcements", handler.ListAnnouncements)
	router.Get("/announcements/:id", handler.GetAnnouncement)
	router.Get("/guidelines", handler.ListGuidelines)
	router.Get("/vendors", handler.ListVendors)
	router.Get("/contacts", handler.ListContacts)
}

// setupAdminRoutes configures admin-only routes
func setupAdminRoutes(
	router fiber.Router,
	userHandler *handlers.UserHandler,
	paymentHandler *handlers.PaymentHandler,
	requestHandler *handlers.RequestHandler,
	dashboardHandler *handlers.DashboardHandler,
	directoryHandler *handlers.DirectoryHandler,
) {
	// Dashboard
	router.Get("/dashboard", dashboardHandler.AdminOverview)

	// User management
	router.Get("/users", userHandler.List)
	router.Get("/users/:id", userHandler.Get)
	router.Put("/users/:id", userHandler.Update)
	router.Delete("/users/:id", userHandler.Delete)

	// Payments & dues
	router.Get("/payments", paymentHandler.ListAll)
	router.Get("/payments/:id", paymentHandler.Get)
	router.Post("/dues/generate", paymentHandler.GenerateDues)
	router.Get("/dues", paymentHandler.ListDuesByPeriod)

	// Requests
	router.Get("/requests", requestHandler.ListAll)
	router.Get("/requests/:id", requestHandler.Get)
	router.Patch("/requests/:id/status", requestHandler.SetStatus)

	// Amenities
	router.Post("/amenities", directoryHandler.CreateAmenity)
	router.Put("/amenities/:id", directoryHandler.UpdateAmenity)
	router.Delete("/amenities/:id", directoryHandler.DeleteAmenity)

	// Announcements
	router.Post("/announcements", directoryHandler.CreateAnnouncement)
	router.Put("/announcements/:id", directoryHandler.UpdateAnnouncement)
	router.Delete("/announcements/:id", directoryHandler.DeleteAnnouncement)

	// Guidelines
	router.Post("/guidelines", directoryHandler.CreateGuideline)
	router.Put("/guidelines/:id", directoryHandler.UpdateGuideline)
	router.Delete("/guidelines/:id", directoryHandler.DeleteGuideline)

	// Vendors
	router.Post("/vendors", directoryHandler.CreateVendor)
	router.Put("/vendors/:id", directoryHandler.UpdateVendor)
	router.Delete("/vendors/:id", directoryHandler.DeleteVendor)

	// Emergency contacts
	router.Post("/contacts", directoryHandler.CreateContact)
	router.Put("/contacts/:id", directoryHandler.UpdateContact)
	router.Delete("/contacts/:id", directoryHandler.DeleteContact)
}
