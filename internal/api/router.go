package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/buildlink/directory-system/docs"
	"github.com/buildlink/directory-system/internal/api/handler"
	"github.com/buildlink/directory-system/internal/api/middleware"
	"github.com/buildlink/directory-system/internal/core/domain"
	"github.com/buildlink/directory-system/internal/core/ports"
	"github.com/buildlink/directory-system/internal/core/service"
)

// Deps carries the wired services and optional infrastructure clients.
// DB and RDB are nil in mock mode; the readiness probe then reduces to
// liveness.
type Deps struct {
	Auth       ports.AuthService
	Dealer     ports.DealerService
	Business   ports.BusinessService
	Navigation *service.NavigationService

	DB  *mongo.Database
	RDB *redis.Client

	JWTSecret string
	// EchoOTP exposes the registration OTP in responses (mock mode only).
	EchoOTP bool
	Logger  zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("directory"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.EchoOTP)
	navigationHandler := handler.NewNavigationHandler(d.Navigation)
	productHandler := handler.NewProductHandler(d.Dealer)
	enquiryHandler := handler.NewEnquiryHandler(d.Dealer)
	feedbackHandler := handler.NewFeedbackHandler(d.Dealer)
	offerHandler := handler.NewOfferHandler(d.Dealer)
	statsHandler := handler.NewStatsHandler(d.Dealer)
	businessHandler := handler.NewBusinessHandler(d.Business)

	auth := middleware.Auth(d.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/verify-otp", authHandler.VerifyOTP)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.DB, d.RDB)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Navigation serves every session kind, so auth is optional here.
	e.GET("/v1/navigation", navigationHandler.Routes, middleware.OptionalAuth(d.JWTSecret))

	v1 := e.Group("/v1", auth)
	v1.GET("/permissions", navigationHandler.Permissions)

	products := v1.Group("/products")
	products.GET("", productHandler.List, middleware.RequirePermission(domain.ResourceProducts, domain.ActionView))
	products.GET("/:id", productHandler.Get, middleware.RequirePermission(domain.ResourceProducts, domain.ActionView))
	products.POST("", productHandler.Create, middleware.RequirePermission(domain.ResourceProducts, domain.ActionCreate))
	products.PUT("/:id", productHandler.Update, middleware.RequirePermission(domain.ResourceProducts, domain.ActionUpdate))
	products.DELETE("/:id", productHandler.Delete, middleware.RequirePermission(domain.ResourceProducts, domain.ActionDelete))

	enquiries := v1.Group("/enquiries")
	enquiries.GET("", enquiryHandler.List, middleware.RequirePermission(domain.ResourceEnquiries, domain.ActionView))
	enquiries.GET("/:id", enquiryHandler.Get, middleware.RequirePermission(domain.ResourceEnquiries, domain.ActionView))
	enquiries.POST("", enquiryHandler.Create, middleware.RequirePermission(domain.ResourceEnquiries, domain.ActionCreate))
	enquiries.POST("/:id/respond", enquiryHandler.Respond, middleware.RequirePermission(domain.ResourceEnquiries, domain.ActionRespond))
	enquiries.POST("/:id/escalate", enquiryHandler.Escalate, middleware.RBAC(domain.RoleDealer, domain.RoleAdmin))

	feedbacks := v1.Group("/feedbacks")
	feedbacks.GET("", feedbackHandler.List, middleware.RequirePermission(domain.ResourceFeedbacks, domain.ActionView))
	feedbacks.POST("/:id/report", feedbackHandler.Report, middleware.RequirePermission(domain.ResourceFeedbacks, domain.ActionReport))

	offers := v1.Group("/offers")
	offers.GET("", offerHandler.List, middleware.RequirePermission(domain.ResourceOffers, domain.ActionView))
	offers.POST("", offerHandler.Create, middleware.RequirePermission(domain.ResourceOffers, domain.ActionCreate))
	offers.PUT("/:id", offerHandler.Update, middleware.RequirePermission(domain.ResourceOffers, domain.ActionUpdate))
	offers.DELETE("/:id", offerHandler.Delete, middleware.RequirePermission(domain.ResourceOffers, domain.ActionDelete))
	offers.POST("/:id/like", offerHandler.Like, middleware.RequirePermission(domain.ResourceOffers, domain.ActionLike))

	v1.GET("/dealer/stats", statsHandler.Dealer,
		middleware.RBAC(domain.RoleDealer, domain.RoleAdmin),
		middleware.RequirePermission(domain.ResourceDashboard, domain.ActionView))

	// Business profile area. Route membership is role-based; the
	// permission registry stays a separate authority.
	business := v1.Group("/business", middleware.RBAC(
		domain.RolePartner, domain.RoleDealer, domain.RoleAdmin))
	business.GET("/works", businessHandler.ListWorks)
	business.POST("/works", businessHandler.AddWork)
	business.GET("/events", businessHandler.ListEvents)
	business.POST("/events", businessHandler.AddEvent)
	business.GET("/gallery", businessHandler.ListGallery)
	business.POST("/gallery", businessHandler.AddGalleryItem)
	business.DELETE("/gallery/:id", businessHandler.DeleteGalleryItem)
	business.GET("/offers", businessHandler.ListOffers)
	business.POST("/offers", businessHandler.AddOffer)
	business.GET("/notes", businessHandler.ListNotes)
	business.POST("/notes", businessHandler.AddNote)
	business.PUT("/notes/:id", businessHandler.UpdateNote)
	business.DELETE("/notes/:id", businessHandler.DeleteNote)
	business.GET("/loyalty", businessHandler.Loyalty)
	business.POST("/loyalty", businessHandler.AddLoyaltyEntry)
	business.GET("/stats", businessHandler.Stats)

	return e
}
