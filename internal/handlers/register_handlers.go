package handlers

import (
	"fmt"
	"time"

	"github.com/cafehnd/cafehnd_backend/cmd/docs"
	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	portssvc "github.com/cafehnd/cafehnd_backend/internal/core/ports/services"
	"github.com/cafehnd/cafehnd_backend/internal/middleware"
	"github.com/cafehnd/cafehnd_backend/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	if err := RegisterValidators(); err != nil {
		return err
	}

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/", getHome)
	r.GET("/health", getHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes, each with its own per-IP budget
	loginLimiter, err := middleware.NewRateLimiter(cfg.LoginRateLimit, "login")
	if err != nil {
		return fmt.Errorf("login rate limit: %w", err)
	}
	accessLimiter, err := middleware.NewRateLimiter(cfg.AccessRequestRateLimit, "access_request")
	if err != nil {
		return fmt.Errorf("access request rate limit: %w", err)
	}
	registerAuthRoutes(r, services.User, middleware.RateLimit(loginLimiter))
	registerAccessRequestSubmitRoutes(r, services.AccessRequest, middleware.RateLimit(accessLimiter))

	setupAuthenticatedRoutes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAuthenticatedRoutes configures every route that needs a bearer token
func setupAuthenticatedRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	authed := r.Group("/", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	registerUserRoutes(authed, services.User)
	registerPurchaseRoutes(authed, services.Purchase)
	registerMarketCloseRoutes(authed, services.MarketClose)

	admin := authed.Group("/admin", middleware.RequireRoles(domain.RoleAdmin))
	registerAccessRequestAdminRoutes(admin, services.AccessRequest)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
