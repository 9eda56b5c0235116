package web

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/Psy1ALise/travel-planner-public/db/db"
)

func CorsConfig() cors.Config {
	corsConf := cors.DefaultConfig()
	corsConf.AllowAllOrigins = true
	corsConf.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConf.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Requested-With", "X-User-ID"}
	corsConf.AllowCredentials = true
	corsConf.MaxAge = 1 * 3600 // 1 hour
	return corsConf
}

func limiterMiddleWare() gin.HandlerFunc {
	rate := limiter.Rate{
		Period: 1 * time.Hour,
		Limit:  1000, // 1000 requests per hour
	}
	store := memory.NewStore()
	instance := limiter.New(store, rate)
	return mgin.NewMiddleware(instance)
}

// PlannerDataLoaderInjectionMiddleware hangs a fresh per-request loader on the
// gin context so listing handlers batch their POI and trip lookups.
func PlannerDataLoaderInjectionMiddleware(wrapper db.PlannerDBWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		loader := db.NewPlannerDataLoader(wrapper)
		c.Set(string(db.DataLoaderKeyPlanner), loader)
		c.Next()
	}
}

func setupMiddlewares(r *gin.Engine, store db.PlannerDBWrapper) {
	r.Use(limiterMiddleWare())
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(cors.New(CorsConfig()))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(secure.New(secure.Config{
		STSSeconds:           31536000, // 1 year
		STSIncludeSubdomains: true,
		FrameDeny:            true,
		ContentTypeNosniff:   true,
		BrowserXssFilter:     true,
		ReferrerPolicy:       "strict-origin-when-cross-origin",
	}))
	r.Use(PlannerDataLoaderInjectionMiddleware(store))
}
