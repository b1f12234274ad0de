package routes

import (
	"context"
	"time"

	"github.com/DaUnderlord/monday-sippin-sub000/cache"
	"github.com/DaUnderlord/monday-sippin-sub000/client"
	"github.com/DaUnderlord/monday-sippin-sub000/config"
	"github.com/DaUnderlord/monday-sippin-sub000/controller"
	"github.com/DaUnderlord/monday-sippin-sub000/database"
	"github.com/DaUnderlord/monday-sippin-sub000/middleware"
	"github.com/DaUnderlord/monday-sippin-sub000/repository"
	"github.com/DaUnderlord/monday-sippin-sub000/service"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humagin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

const playSpecTTL = 24 * time.Hour

// SetupRouter wires every layer. db may be nil, in which case the filter and
// article endpoints are not mounted.
func SetupRouter(db *mongo.Database, cfg *config.ConfigManager) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RecoveryMiddleware,
		middleware.ZerologMiddleware(),
		middleware.CORS(cfg),
		middleware.RateLimiter(cfg),
	)

	humaConfig := huma.DefaultConfig("Monday Sippin' API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
	}
	api := humagin.New(r, humaConfig)

	isProduction := cfg.GetConfig().IsProduction()
	checks := map[string]controller.HealthCheck{}

	// --- 1. Clients & Stores ---
	visualizeClient := client.NewVisualizeClient(cfg)

	var store cache.PlaySpecStore = cache.NewMemoryPlaySpecStore(cache.PlaySpecCache)
	if database.RedisHelper != nil {
		store = cache.NewRedisPlaySpecStore(database.RedisHelper, playSpecTTL)
		checks["redis"] = database.RedisHelper.Ping
	}

	// --- 2. Services ---
	visualizeSvc := service.NewVisualizeService(visualizeClient, cfg, store, service.DefaultResolvers(cfg)...)
	configSvc := service.NewConfigService(cfg)

	// --- 3. Routes & Controllers ---
	controller.NewVisualizeController(visualizeSvc).RegisterRoutes(api)
	controller.NewConfigController(configSvc, isProduction).RegisterRoutes(api)

	if db != nil {
		filterRepo := repository.NewFilterRepository(db)
		articleRepo := repository.NewArticleRepository(db)

		filterSvc := service.NewFilterService(filterRepo, cache.FilterTreeCache)
		articleSvc := service.NewArticleService(articleRepo, filterSvc)

		controller.NewFilterController(filterSvc, isProduction).RegisterRoutes(api)
		controller.NewArticleController(articleSvc).RegisterRoutes(api)

		checks["mongo"] = func(ctx context.Context) error {
			return db.Client().Ping(ctx, nil)
		}
	} else {
		log.Warn().Msg("MongoDB not configured, filter and article endpoints disabled")
	}

	controller.NewHealthController(checks).RegisterRoutes(r.Group("/api"))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
