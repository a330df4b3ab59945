package router

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"user-crud-service/api/swagger"
	"user-crud-service/internal/adapter/gin/handler"
	"user-crud-service/internal/adapter/gin/middleware"
	pkgerrors "user-crud-service/pkg/errors"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

// Options carries the router settings that come from configuration
type Options struct {
	AllowOrigins []string             // CORS origins, "*" allows any
	Registry     *prometheus.Registry // Metrics registry served at /metrics
}

// SetupRouter configures the Gin engine with all routes and middleware and returns
// it wrapped so that a trailing slash never changes which route matches.
func SetupRouter(
	userHandler *handler.UserHandler,
	healthHandler *handler.HealthHandler,
	opts Options,
	log *zap.Logger,
) http.Handler {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.RedirectTrailingSlash = false

	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(ginzap.Ginzap(log, time.RFC3339, true))
	router.Use(ginzap.CustomRecoveryWithZap(log, true, func(c *gin.Context, recovered any) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, handler.ErrorResponse{
			Message: pkgerrors.NewPersistenceError(fmt.Errorf("%v", recovered)).Error(),
		})
	}))
	router.Use(middleware.NewMetrics(opts.Registry).Handler())
	router.Use(cors.New(corsConfig(opts.AllowOrigins)))

	router.GET("/", handler.Sitemap(router.Routes))
	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	router.GET("/openapi.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", swagger.Doc)
	})
	router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/openapi.json"))))

	users := router.Group("/user")
	{
		users.POST("", userHandler.CreateUser)
		users.GET("", userHandler.ListUsers)
		users.PUT("", userHandler.MissingID)
		users.DELETE("", userHandler.MissingID)
		users.GET("/:id", userHandler.GetUser)
		users.PUT("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeleteUser)
	}

	return stripTrailingSlash(router)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Location", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// stripTrailingSlash drops trailing slashes before routing, so "/user/" and "/user" are the same route.
// The swagger UI keeps its paths since its catch-all route depends on them.
func stripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path
		if len(p) > 1 && strings.HasSuffix(p, "/") && !strings.HasPrefix(p, "/swagger/") {
			p = strings.TrimRight(p, "/")
			if p == "" {
				p = "/"
			}
			r.URL.Path = p
			r.URL.RawPath = ""
		}
		next.ServeHTTP(w, r)
	})
}
