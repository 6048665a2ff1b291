package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/storefront/internal/adapters/config"
	"github.com/rafaelleal24/storefront/internal/adapters/http/controllers"
	"github.com/rafaelleal24/storefront/internal/adapters/http/middleware"
)

type Router struct {
	healthController   *controllers.HealthController
	productController  *controllers.ProductController
	authController     *controllers.AuthController
	checkoutController *controllers.CheckoutController
	docsController     *controllers.DocsController
	rateLimiter        middleware.RateLimiter
	rateLimits         config.RateLimitConfig
}

func NewRouter(
	healthController *controllers.HealthController,
	productController *controllers.ProductController,
	authController *controllers.AuthController,
	checkoutController *controllers.CheckoutController,
	docsController *controllers.DocsController,
	rateLimiter middleware.RateLimiter,
	rateLimits config.RateLimitConfig,
) *Router {
	return &Router{
		healthController:   healthController,
		productController:  productController,
		authController:     authController,
		checkoutController: checkoutController,
		docsController:     docsController,
		rateLimiter:        rateLimiter,
		rateLimits:         rateLimits,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	rl := r.rateLimiter
	limits := r.rateLimits

	router.GET("/swagger/doc.json", r.docsController.OpenAPI)

	apiGroup := router.Group("/api")
	v1Group := apiGroup.Group("/v1")
	{
		v1Group.Use(middleware.LogRequest())
		v1Group.GET("/health", r.healthController.Health)

		v1Group.GET("/products", r.productController.GetCatalog)

		v1Group.POST("/checkout/quote", r.checkoutController.Quote)
		v1Group.POST("/checkout", middleware.RateLimit(rl, limits.CheckoutLimit, limits.Window), r.checkoutController.Checkout)

		adminGroup := v1Group.Group("/admin")
		adminGroup.POST("/login", middleware.RateLimit(rl, limits.LoginLimit, limits.Window), r.authController.Login)
		adminGroup.POST("/logout", r.authController.Logout)
		adminGroup.POST("/products", r.productController.CreateProduct)
		adminGroup.GET("/products/:id", r.productController.GetProduct)
		adminGroup.PATCH("/products/:id/stock", r.productController.UpdateStock)
	}
}

func (r *Router) ListenAndServe(ctx context.Context, config config.HTTPConfig) error {
	engine := gin.New()
	engine.Use(gin.Recovery())
	r.SetupRoutes(engine)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", config.BindInterface, config.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
