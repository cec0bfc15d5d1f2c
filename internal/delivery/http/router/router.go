// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"samity/internal/delivery/http/middleware"
	"samity/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	ProfileHandler *handler.ProfileHandler
	AdminHandler   *handler.AdminHandler
	ContentHandler *handler.ContentHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	profileHandler *handler.ProfileHandler
	adminHandler   *handler.AdminHandler
	contentHandler *handler.ContentHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		profileHandler: params.ProfileHandler,
		adminHandler:   params.AdminHandler,
		contentHandler: params.ContentHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Public surface
	e.GET("/health", handler.HealthCheck)
	e.GET("/", r.contentHandler.Home)
	e.POST("/register/", r.accountHandler.Register)
	e.POST("/login/", r.accountHandler.Login)
	e.GET("/activate/:ref/:token/", r.accountHandler.Activate)

	// Member surface, session required
	profileGroup := e.Group("/profile")
	profileGroup.Use(r.authMiddleware.Authenticate)
	{
		profileGroup.GET("/", r.profileHandler.GetProfile)
		profileGroup.POST("/edit/", r.profileHandler.EditProfile)
		profileGroup.GET("/card/", r.profileHandler.MemberCard)
		profileGroup.GET("/fields/", r.profileHandler.GetFieldValues)
		profileGroup.POST("/fields/", r.profileHandler.SubmitFieldValues)
	}

	sessionGroup := e.Group("")
	sessionGroup.Use(r.authMiddleware.Authenticate)
	{
		sessionGroup.GET("/notifications/", r.contentHandler.ListNotifications)
		sessionGroup.POST("/logout/", r.accountHandler.Logout)
	}

	// Token refresh authenticates by the refresh token itself.
	e.POST("/token/refresh/", r.accountHandler.RefreshToken)

	// Moderation surface; non-admins are bounced to the landing page.
	adminGroup := e.Group("")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireAdmin)
	{
		adminGroup.GET("/admin_panel/", r.adminHandler.ListAccounts)
		adminGroup.GET("/user_detail/:account_id/", r.adminHandler.AccountDetail)
		adminGroup.POST("/user_detail/:account_id/", r.adminHandler.TransitionStatus)

		adminGroup.GET("/admin_panel/fields/", r.adminHandler.ListFieldDefinitions)
		adminGroup.POST("/admin_panel/fields/", r.adminHandler.CreateFieldDefinition)
		adminGroup.POST("/admin_panel/fields/:id/", r.adminHandler.UpdateFieldDefinition)
		adminGroup.DELETE("/admin_panel/fields/:id/", r.adminHandler.DeactivateFieldDefinition)

		adminGroup.POST("/admin_panel/articles/", r.adminHandler.CreateArticle)
		adminGroup.POST("/admin_panel/notifications/", r.adminHandler.CreateNotification)
	}
}
