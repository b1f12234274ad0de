package middleware

import (
	"time"

	"github.com/DaUnderlord/monday-sippin-sub000/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var defaultOrigins = []string{"http://localhost:3000"}

func CORS(cfg *config.ConfigManager) gin.HandlerFunc {
	origins := cfg.GetConfig().FrontendUrls
	if len(origins) == 0 {
		origins = defaultOrigins
	}

	return cors.New(cors.Config{
		// exact origins only, credentials are allowed
		AllowOrigins: origins,

		AllowMethods: []string{"GET", "POST", "PATCH", "HEAD", "OPTIONS"},

		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			"X-Requested-With",
		},

		ExposeHeaders: []string{"Content-Length", "Retry-After"},

		// session cookie rides along on visualize and admin calls
		AllowCredentials: true,

		MaxAge: 12 * time.Hour,
	})
}
