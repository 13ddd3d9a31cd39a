package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/collabhub/marketplace-api/internal/api/handler"
	"github.com/collabhub/marketplace-api/internal/api/middleware"
	"github.com/collabhub/marketplace-api/internal/core/domain"
	"github.com/collabhub/marketplace-api/internal/core/ports"
	"github.com/collabhub/marketplace-api/internal/infrastructure/http/handlers"
	"github.com/collabhub/marketplace-api/internal/infrastructure/queue"
)

// Deps bundles everything the router needs. Services are constructed in
// main so the dispatcher and its sink share one chat service instance.
type Deps struct {
	Mongo      *mongo.Database
	Redis      *redis.Client
	Users      ports.UserRepository
	Gateway    ports.IdentityGateway
	Sessions   ports.SessionService
	Onboarding ports.OnboardingService
	Campaigns  ports.CampaignService
	Offers     ports.OfferService
	Chats      ports.ChatService
	Dispatcher *queue.Dispatcher
	JWTSecret  string
	Logger     zerolog.Logger
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
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Gateway, d.Sessions)
	sessionHandler := handler.NewSessionHandler(d.Sessions)
	onboardingHandler := handler.NewOnboardingHandler(d.Onboarding)
	profileHandler := handler.NewProfileHandler(d.Sessions, d.Users)
	campaignHandler := handler.NewCampaignHandler(d.Campaigns)
	offerHandler := handler.NewOfferHandler(d.Offers)
	chatHandler := handler.NewChatHandler(d.Chats, d.Dispatcher)

	auth := middleware.Auth(d.JWTSecret)
	brandOnly := middleware.RequireRole(domain.RoleBrand)
	creatorOnly := middleware.RequireRole(domain.RoleCreator)

	// --- Auth routes (no token yet) ---
	e.POST("/auth/otp/request", authHandler.RequestOTP)
	e.POST("/auth/otp/verify", authHandler.VerifyOTP)
	e.POST("/auth/signup", authHandler.CompleteSignup)

	// --- Session routes (device-scoped, token optional) ---
	e.POST("/session/restore", sessionHandler.Restore)
	e.GET("/session", sessionHandler.Current)
	e.POST("/session/logout", sessionHandler.Logout)
	e.PUT("/session/role", sessionHandler.SetRole)

	// --- Onboarding ---
	ob := e.Group("/onboarding", auth)
	ob.GET("/steps", onboardingHandler.Steps)
	ob.PUT("/steps/:step", onboardingHandler.RecordStep)
	ob.POST("/complete", onboardingHandler.Complete)

	// --- Profile ---
	e.GET("/profile", profileHandler.Get, auth)
	e.PUT("/profile", profileHandler.Update, auth)
	e.GET("/creators", profileHandler.ListCreators, auth, brandOnly)

	// --- Campaigns ---
	cg := e.Group("/campaigns", auth)
	cg.GET("", campaignHandler.List)
	cg.GET("/:id", campaignHandler.Get)
	cg.POST("", campaignHandler.Create, brandOnly)
	cg.PUT("/:id", campaignHandler.Update, brandOnly)
	cg.DELETE("/:id", campaignHandler.Delete, brandOnly)
	cg.POST("/:id/publish", campaignHandler.Publish, brandOnly)
	cg.POST("/:id/complete", campaignHandler.Complete, brandOnly)
	cg.POST("/:id/cancel", campaignHandler.Cancel, brandOnly)

	// --- Offers ---
	og := e.Group("/offers", auth)
	og.GET("", offerHandler.List)
	og.GET("/:id", offerHandler.Get)
	og.POST("", offerHandler.Send, brandOnly)
	og.POST("/:id/accept", offerHandler.Accept, creatorOnly)
	og.POST("/:id/reject", offerHandler.Reject, creatorOnly)
	og.POST("/:id/withdraw", offerHandler.Withdraw, brandOnly)

	// --- Chats ---
	ch := e.Group("/chats", auth)
	ch.GET("", chatHandler.List)
	ch.GET("/:id/messages", chatHandler.Messages)
	ch.POST("/:id/messages", chatHandler.Send)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
