package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CORSConfig allows the given origins; a single "*" allows any origin without credentials
func CORSConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", SessionHeader}
	cfg.ExposeHeaders = []string{SessionHeader}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}

func SetupRoutes(router *gin.Engine, handler *Handler, origins []string) {
	router.Use(cors.New(CORSConfig(origins)))

	router.GET("/healthz", handler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api", handler.SessionMiddleware)
	{
		api.GET("/dashboard", handler.GetDashboard)
		api.GET("/properties", handler.GetProperties)
		api.GET("/properties/:id", handler.GetProperty)
		api.GET("/properties/:id/recommendations", handler.GetPropertyRecommendations)
		api.GET("/financials", handler.GetFinancials)
		api.GET("/market", handler.GetMarketData)
		api.GET("/market/analysis", handler.GetMarketAnalysis)
		api.GET("/competitors", handler.GetCompetitors)
		api.GET("/competitors/analysis", handler.GetCompetitorAnalysis)
		api.GET("/chat", handler.GetChat)
		api.POST("/chat", handler.PostChat)
	}
}
