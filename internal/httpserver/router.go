package httpserver

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tienda-storefront/internal/auth"
	"tienda-storefront/internal/logger"
	"tienda-storefront/internal/metrics"
	"tienda-storefront/internal/middleware"
)

func buildRouter(deps Deps) *gin.Engine {
	if deps.Config.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestIDMiddleware())
	router.Use(logger.LoggingMiddleware())
	router.Use(corsMiddleware(deps.Config.AllowedOrigins))
	router.Use(middleware.RateLimit())
	router.Use(middleware.Session(deps.Tokens))

	h := &handlers{deps: deps}

	router.GET("/healthz", healthHandler)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Catalog browsing is open to anonymous shoppers.
	router.GET("/productos", h.listProducts)
	router.GET("/productos/buscar", h.searchProducts)
	router.GET("/productos/:id", h.getProduct)
	router.GET("/categorias", h.listCategories)
	router.GET("/categorias/:id/productos", h.productsByCategory)
	router.GET("/categorias/agrupado", h.productsGrouped)

	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.POST("/logout", h.logout)
	router.GET("/usuarios/exists", h.userExists)
	router.POST("/recover", h.recoverPassword)

	shopper := router.Group("/", middleware.RequireSession())
	{
		shopper.GET("/profile", h.profile)
		shopper.PUT("/profile", h.updateProfile)

		shopper.GET("/cart", h.viewCart)
		shopper.POST("/cart/lines", h.addCartLine)
		shopper.DELETE("/cart/lines/:index", h.removeCartLine)
		shopper.DELETE("/cart", h.clearCart)
		shopper.POST("/checkout", h.checkout)
	}

	// Staff manage the product catalog; administrators manage accounts.
	staff := router.Group("/", middleware.RequireSession(), middleware.RequireRole(auth.RoleStaff))
	{
		staff.POST("/productos", h.createProduct)
		staff.PUT("/productos/:id", h.updateProduct)
		staff.DELETE("/productos/:id", h.deleteProduct)
	}

	admin := router.Group("/", middleware.RequireSession(), middleware.RequireRole(auth.RoleAdmin))
	{
		admin.GET("/usuarios", h.listUsers)
		admin.POST("/usuarios", h.createUser)
		admin.GET("/usuarios/:id", h.getUser)
		admin.PUT("/usuarios/:id", h.updateUser)
		admin.DELETE("/usuarios/:id", h.deleteUser)
	}

	return router
}

func corsMiddleware(allowedOrigins string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if allowedOrigins == "" {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = strings.Split(allowedOrigins, ",")
	}
	return cors.New(cfg)
}
