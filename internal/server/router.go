// Package server assembles the gin engine: middleware, operational
// endpoints and the /api/v1 routes.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "opportunityrisks/internal/docs" // Import swagger docs
	"opportunityrisks/internal/handlers"
	"opportunityrisks/internal/metrics"
	"opportunityrisks/internal/middleware"
	"opportunityrisks/internal/services"
)

// Deps is everything the router needs from the service layer.
type Deps struct {
	Opportunities services.OpportunityServicer
	Resolver      services.RiskResolver
	Risks         services.RiskServicer
	ValueHelp     services.ValueHelpServicer
	Audit         services.AuditServicer
	Metrics       *metrics.Registry

	// APIKey guards mutating routes. Empty disables the check.
	APIKey string
}

// NewRouter builds the HTTP surface of the service.
func NewRouter(deps Deps) *gin.Engine {
	opportunityHandler := handlers.NewOpportunityHandler(deps.Opportunities, deps.Resolver, deps.Audit)
	riskHandler := handlers.NewRiskHandler(deps.Risks, deps.Audit)
	valueHelpHandler := handlers.NewValueHelpHandler(deps.ValueHelp)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	writes := middleware.APIKeyAuth(deps.APIKey)

	// Opportunity routes
	opportunities := v1.Group("/opportunities")
	opportunities.GET("", opportunityHandler.GetOpportunities)
	opportunities.POST("/refresh", writes, opportunityHandler.RefreshOpportunities)
	opportunities.GET("/:id", opportunityHandler.GetOpportunity)
	opportunities.GET("/:id/risks", opportunityHandler.GetOpportunityRisks)
	opportunities.POST("/:id/risks", writes, riskHandler.CreateOpportunityRisk)

	// Risk routes
	risks := v1.Group("/risks")
	risks.GET("", riskHandler.GetRisks)
	risks.POST("", writes, riskHandler.CreateRisk)
	risks.GET("/:id", riskHandler.GetRisk)
	risks.PATCH("/:id", writes, riskHandler.UpdateRisk)
	risks.DELETE("/:id", writes, riskHandler.DeleteRisk)
	risks.POST("/:id/mitigate", writes, riskHandler.MitigateRisk)
	risks.POST("/:id/close", writes, riskHandler.CloseRisk)

	// Value help routes
	valueHelp := v1.Group("/value-help")
	valueHelp.GET("", valueHelpHandler.GetValueHelpNames)
	valueHelp.GET("/:name", valueHelpHandler.GetValueHelp)

	return router
}
