// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"dezapego/internal/delivery/http/middleware"
	"dezapego/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler       *handler.UserHandler
	ListingHandler    *handler.ListingHandler
	FeedHandler       *handler.FeedHandler
	EngagementHandler *handler.EngagementHandler
	ReportHandler     *handler.ReportHandler
	CEPHandler        *handler.CEPHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler       *handler.UserHandler
	listingHandler    *handler.ListingHandler
	feedHandler       *handler.FeedHandler
	engagementHandler *handler.EngagementHandler
	reportHandler     *handler.ReportHandler
	cepHandler        *handler.CEPHandler
	authMiddleware    *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:       params.UserHandler,
		listingHandler:    params.ListingHandler,
		feedHandler:       params.FeedHandler,
		engagementHandler: params.EngagementHandler,
		reportHandler:     params.ReportHandler,
		cepHandler:        params.CEPHandler,
		authMiddleware:    params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	authenticate := r.authMiddleware.Authenticate
	optionalAuth := r.authMiddleware.OptionalAuth

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.RegisterUser)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/refresh", r.userHandler.RefreshToken)
		authGroup.POST("/logout", r.userHandler.Logout)
		authGroup.POST("/logout-all", r.userHandler.LogoutAllDevices, authenticate)
	}

	api := e.Group("/api")

	// Public browse routes. OptionalAuth attributes logged-in viewers so the
	// feed can carry their liked flags.
	{
		e.GET("/feed", r.feedHandler.GetFeed, optionalAuth)
		api.GET("/listings", r.feedHandler.GetFeed, optionalAuth)
		api.GET("/listings/:id", r.feedHandler.GetListing, optionalAuth)
		api.POST("/analytics", r.engagementHandler.TrackEvent, optionalAuth)
		api.GET("/users/:username", r.userHandler.GetPublicProfile)
		api.GET("/cep/:cep", r.cepHandler.Lookup)
	}

	// Current-user routes
	meGroup := api.Group("/me")
	meGroup.Use(authenticate)
	{
		meGroup.GET("/profile", r.userHandler.GetProfile)
		meGroup.PATCH("/profile", r.userHandler.UpdateProfile)
		meGroup.GET("/listings", r.listingHandler.GetMyListings)
		meGroup.GET("/reports", r.reportHandler.GetMyReports)
	}

	// Seller and engagement routes that require authentication
	{
		api.POST("/listings", r.listingHandler.CreateListing, authenticate)
		api.PATCH("/listings/:id", r.listingHandler.UpdateListing, authenticate)
		api.DELETE("/listings/:id", r.listingHandler.RemoveListing, authenticate)
		api.POST("/listings/:id/sold", r.listingHandler.ToggleSold, authenticate)
		api.POST("/listings/:id/renew", r.listingHandler.RenewListing, authenticate)
		api.POST("/listings/:id/like", r.engagementHandler.ToggleLike, authenticate)
		api.GET("/listings/:id/stats", r.engagementHandler.GetListingStats, authenticate)
		api.POST("/reports", r.reportHandler.CreateReport, authenticate)
	}
}
