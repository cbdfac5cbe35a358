package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"opportunityrisks/internal/models"
	"opportunityrisks/internal/services"
)

// OpportunityHandler handles opportunity-related requests.
type OpportunityHandler struct {
	opportunityService services.OpportunityServicer
	riskResolver       services.RiskResolver
	auditService       services.AuditServicer
}

// NewOpportunityHandler creates a new OpportunityHandler.
func NewOpportunityHandler(
	opportunityService services.OpportunityServicer,
	riskResolver services.RiskResolver,
	auditService services.AuditServicer,
) *OpportunityHandler {
	return &OpportunityHandler{
		opportunityService: opportunityService,
		riskResolver:       riskResolver,
		auditService:       auditService,
	}
}

// OpportunityRisksResponse is the body of GET /opportunities/{id}/risks.
type OpportunityRisksResponse struct {
	Risks []models.Risk          `json:"risks"`
	Trace *services.ResolveTrace `json:"trace,omitempty"`
}

// GetOpportunities lists the opportunities known to SAP CRM.
// @Summary     List opportunities
// @Description Fetch and normalize the opportunity collection from SAP CRM
// @Tags        opportunities
// @Produce     json
// @Success     200 {object} map[string][]models.Opportunity "Opportunities"
// @Failure     502 {object} ErrorResponse "SAP CRM unavailable or empty"
// @Router      /opportunities [get]
func (h *OpportunityHandler) GetOpportunities(c *gin.Context) {
	opps, err := h.opportunityService.ListOpportunities(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"opportunities": opps})
}

// GetOpportunity returns a single opportunity.
// @Summary     Get an opportunity
// @Description Fetch one opportunity, falling back to the collection when the single endpoint fails
// @Tags        opportunities
// @Produce     json
// @Param       id path string true "Opportunity ID, ObjectID or display number"
// @Success     200 {object} map[string]models.Opportunity "Opportunity"
// @Failure     404 {object} ErrorResponse "Opportunity not found"
// @Failure     502 {object} ErrorResponse "SAP CRM unavailable"
// @Router      /opportunities/{id} [get]
func (h *OpportunityHandler) GetOpportunity(c *gin.Context) {
	id, err := parseOpportunityID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	opp, err := h.opportunityService.GetOpportunity(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"opportunity": opp})
}

// GetOpportunityRisks lists the risks recorded against an opportunity.
// @Summary     List risks of an opportunity
// @Description Resolve risks via navigation, filter or full scan. Pass trace=true to see which strategies ran.
// @Tags        opportunities
// @Produce     json
// @Param       id    path  string true  "Opportunity ID"
// @Param       trace query bool   false "Include the lookup trace"
// @Success     200 {object} OpportunityRisksResponse "Risks"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /opportunities/{id}/risks [get]
func (h *OpportunityHandler) GetOpportunityRisks(c *gin.Context) {
	id, err := parseOpportunityID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	risks, trace := h.riskResolver.Resolve(c.Request.Context(), id)

	resp := OpportunityRisksResponse{Risks: risks}
	if c.Query("trace") == "true" {
		resp.Trace = &trace
	}
	c.JSON(http.StatusOK, resp)
}

// RefreshOpportunities drops cached CRM data and reloads it.
// @Summary     Refresh opportunities
// @Description Invalidate the opportunity cache and refetch from SAP CRM
// @Tags        opportunities
// @Produce     json
// @Security    ApiKeyAuth
// @Success     200 {object} map[string]int "Number of opportunities loaded"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     502 {object} ErrorResponse "SAP CRM unavailable or empty"
// @Router      /opportunities/refresh [post]
func (h *OpportunityHandler) RefreshOpportunities(c *gin.Context) {
	count, err := h.opportunityService.RefreshOpportunities(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("REFRESH_OPPORTUNITIES", "opportunity", "", c.ClientIP(),
		map[string]any{"count": count})

	c.JSON(http.StatusOK, gin.H{"count": count})
}
