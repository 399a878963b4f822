package handlers

import (
	"github.com/loteriaimperatriz/caixa_backend/cmd/docs"
	portssvc "github.com/loteriaimperatriz/caixa_backend/internal/core/ports/services"
	"github.com/loteriaimperatriz/caixa_backend/internal/dto"
	"github.com/loteriaimperatriz/caixa_backend/internal/middleware"
	"github.com/loteriaimperatriz/caixa_backend/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	db Pinger,
) {
	dto.RegisterValidations()

	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	}))

	// Health check route
	health := &healthHandler{db: db}
	r.GET("/health", health.getHealth)

	// API routes
	setupAPIRoutes(r, cfg, services)

	// Swagger routes (not available in production)
	setupSwaggerRoutes(r, cfg)

	// Static assets + SPA fallback for everything else
	registerStaticRoutes(r, cfg.StaticDir)
}

// setupAPIRoutes configures the /api group and delegates to the entity route registrations
func setupAPIRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	api := r.Group("/api")

	writeLimiter := newWriteLimiter(cfg)
	RegisterTillRoutes(api, services.Till, writeLimiter)
	RegisterReportingRoutes(api, services.Reporting)
}

// newWriteLimiter builds the rate-limit middleware guarding mutation endpoints.
func newWriteLimiter(cfg *config.Config) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(cfg.WriteRateLimit)
	if err != nil {
		// Misconfigured rate strings fall back to the default rather than
		// leaving writes unguarded.
		rate, _ = limiter.NewRateFromFormatted(config.DefaultWriteRateLimit)
	}
	return middleware.RateLimit(limiter.New(memory.NewStore(), rate))
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
