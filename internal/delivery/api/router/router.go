// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"lumera/internal/delivery/api/middleware"
	"lumera/internal/delivery/api/router/handler"
	"lumera/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	CatalogHandler  *handler.CatalogHandler
	MediaHandler    *handler.MediaHandler
	CartHandler     *handler.CartHandler
	CheckoutHandler *handler.CheckoutHandler
	PaymentHandler  *handler.PaymentHandler
	OrderHandler    *handler.OrderHandler
	CouponHandler   *handler.CouponHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	catalogHandler  *handler.CatalogHandler
	mediaHandler    *handler.MediaHandler
	cartHandler     *handler.CartHandler
	checkoutHandler *handler.CheckoutHandler
	paymentHandler  *handler.PaymentHandler
	orderHandler    *handler.OrderHandler
	couponHandler   *handler.CouponHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		catalogHandler:  params.CatalogHandler,
		mediaHandler:    params.MediaHandler,
		cartHandler:     params.CartHandler,
		checkoutHandler: params.CheckoutHandler,
		paymentHandler:  params.PaymentHandler,
		orderHandler:    params.OrderHandler,
		couponHandler:   params.CouponHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	authenticated := r.authMiddleware.Authenticate
	admin := []echo.MiddlewareFunc{authenticated, r.authMiddleware.RequireRole(entity.RoleAdmin)}

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", r.authHandler.Signup)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/google", r.authHandler.GoogleLogin)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.POST("/forgot-password", r.authHandler.ForgotPassword)
		authGroup.POST("/verify-otp", r.authHandler.VerifyOTP)
		authGroup.POST("/reset-password", r.authHandler.ResetPassword)
		authGroup.GET("/me", r.authHandler.Me, authenticated)
		authGroup.DELETE("/delete-account", r.authHandler.DeleteAccount, authenticated)
	}

	productsGroup := api.Group("/products")
	{
		productsGroup.GET("", r.catalogHandler.ListProducts)
		productsGroup.GET("/:id", r.catalogHandler.GetProduct)
		productsGroup.POST("", r.catalogHandler.CreateProduct, admin...)
		productsGroup.PATCH("/:id", r.catalogHandler.UpdateProduct, admin...)
		productsGroup.DELETE("/:id", r.catalogHandler.DeleteProduct, admin...)
	}

	collectionsGroup := api.Group("/collections")
	{
		collectionsGroup.GET("", r.catalogHandler.ListCollections)
		collectionsGroup.GET("/:id", r.catalogHandler.GetCollection)
		collectionsGroup.POST("", r.catalogHandler.CreateCollection, admin...)
		collectionsGroup.PATCH("/:id", r.catalogHandler.UpdateCollection, admin...)
		collectionsGroup.DELETE("/:id", r.catalogHandler.DeleteCollection, admin...)
	}

	mediaGroup := api.Group("/media")
	{
		mediaGroup.GET("/:id/view", r.mediaHandler.View)
		mediaGroup.POST("", r.mediaHandler.Upload, admin...)
		mediaGroup.DELETE("/:id", r.mediaHandler.Delete, admin...)
	}

	cartGroup := api.Group("/cart")
	{
		cartGroup.POST("", r.cartHandler.Create)
		cartGroup.GET("/:id", r.cartHandler.Get)
		cartGroup.DELETE("/:id", r.cartHandler.Delete)
		cartGroup.POST("/:id/items", r.cartHandler.AddItem)
		cartGroup.PATCH("/:id/items/:itemId", r.cartHandler.UpdateItem)
		cartGroup.DELETE("/:id/items/:itemId", r.cartHandler.RemoveItem)
		cartGroup.POST("/:id/custom", r.cartHandler.AddCustom)
	}

	configuratorGroup := api.Group("/configurator")
	{
		configuratorGroup.GET("/options", r.cartHandler.ConfiguratorOptions)
		configuratorGroup.POST("/quote", r.cartHandler.ConfiguratorQuote)
	}

	checkoutGroup := api.Group("/checkout")
	{
		checkoutGroup.POST("/quote", r.checkoutHandler.Quote)
		checkoutGroup.POST("/payment-order", r.checkoutHandler.PaymentOrder)
	}

	// Guests may pay; a signed-in customer gets the order linked to the account.
	api.POST("/verify-payment", r.paymentHandler.VerifyPayment, r.authMiddleware.Identify)

	couponsGroup := api.Group("/coupons")
	{
		couponsGroup.POST("/validate", r.couponHandler.Validate)
		couponsGroup.GET("", r.couponHandler.List, admin...)
		couponsGroup.POST("", r.couponHandler.Create, admin...)
		couponsGroup.GET("/:id", r.couponHandler.Get, admin...)
		couponsGroup.PATCH("/:id", r.couponHandler.Update, admin...)
		couponsGroup.DELETE("/:id", r.couponHandler.Delete, admin...)
	}

	ordersGroup := api.Group("/orders")
	{
		ordersGroup.GET("", r.orderHandler.List, admin...)
		ordersGroup.GET("/:number", r.orderHandler.Get, authenticated)
		ordersGroup.GET("/:number/qrcode", r.orderHandler.QRCode, authenticated)
		ordersGroup.PATCH("/:number/status", r.orderHandler.UpdateStatus, admin...)
		ordersGroup.POST("/:number/refund", r.orderHandler.Refund, admin...)
	}

	accountGroup := api.Group("/account")
	accountGroup.Use(authenticated)
	{
		accountGroup.GET("/orders", r.orderHandler.MyOrders)
	}
}
