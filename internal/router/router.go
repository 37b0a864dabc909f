package router

import (
	"github.com/gin-gonic/gin"
	"github.com/hjyoon/storefront-backend/config"
	"github.com/hjyoon/storefront-backend/internal/app/controller"
	"github.com/hjyoon/storefront-backend/internal/middleware"
)

type Router struct {
	productController *controller.ProductController
	cartController    *controller.CartController
	landingController *controller.LandingController
	sessionMiddleware *middleware.SessionMiddleware
	config            *config.Config
}

func NewRouter(
	productController *controller.ProductController,
	cartController *controller.CartController,
	landingController *controller.LandingController,
	sessionMiddleware *middleware.SessionMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		productController: productController,
		cartController:    cartController,
		landingController: landingController,
		sessionMiddleware: sessionMiddleware,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Storefront API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", r.productController.GetProducts)
			products.GET("/filters", r.productController.GetFilters)
			products.GET("/:id", r.productController.GetProductByID)
		}

		cart := v1.Group("/cart")
		cart.Use(r.sessionMiddleware.Attach())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.PUT("/:product_id", r.cartController.UpdateCartItem)
			cart.DELETE("/:product_id", r.cartController.RemoveFromCart)
			cart.DELETE("", r.cartController.ClearCart)
			cart.GET("/ws", r.cartController.Watch)
		}

		v1.GET("/landing", r.landingController.GetLanding)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
