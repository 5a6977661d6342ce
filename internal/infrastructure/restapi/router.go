package restapi

import (
	"net/http"

	"balance_ranker/internal/infrastructure/configloader"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const swaggerSpecRoute = "/docs/swagger.yaml"

// SetupRouter wires the API routes, CORS, request logging, /metrics and the optional Swagger UI.
func SetupRouter(
	portfolioHandler *PortfolioHandler,
	swapHandler *SwapHandler,
	swagger configloader.SwaggerConfig,
	zapLogger *zap.Logger,
) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))
	router.Use(ZapLoggerMiddleware(zapLogger))
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/balances", portfolioHandler.GetBalancesHandler)
		v1.GET("/prices", swapHandler.GetPricesHandler)
		v1.POST("/swap", swapHandler.PostSwapHandler)
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if swagger.Enabled {
		router.StaticFile(swaggerSpecRoute, swagger.SpecFile)
		router.GET(swagger.Path+"/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL(swaggerSpecRoute)))
		zapLogger.Info("Swagger UI enabled", zap.String("path", swagger.Path+"/index.html"))
	}

	return router
}
