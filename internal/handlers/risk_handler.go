package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "opportunityrisks/internal/errors"
	"opportunityrisks/internal/models"
	"opportunityrisks/internal/pagination"
	"opportunityrisks/internal/services"
)

// RiskHandler handles risk-related requests.
type RiskHandler struct {
	riskService  services.RiskServicer
	auditService services.AuditServicer
}

// NewRiskHandler creates a new RiskHandler.
func NewRiskHandler(riskService services.RiskServicer, auditService services.AuditServicer) *RiskHandler {
	return &RiskHandler{riskService: riskService, auditService: auditService}
}

// CreateRiskRequest represents the request payload for creating a risk.
type CreateRiskRequest struct {
	OpportunityID string            `json:"opportunity_id" binding:"required,max=100"`
	Title         string            `json:"title" binding:"required,min=1,max=200"`
	Description   string            `json:"description" binding:"max=5000"`
	Impact        models.Level      `json:"impact" binding:"required,risk_level"`
	Probability   models.Level      `json:"probability" binding:"required,risk_level"`
	Status        models.RiskStatus `json:"status" binding:"omitempty,risk_status"`
	Owner         *string           `json:"owner" binding:"omitempty,max=200"`
	Mitigation    *string           `json:"mitigation" binding:"omitempty,max=5000"`
	DueDate       *time.Time        `json:"due_date"`
}

// CreateOpportunityRiskRequest is CreateRiskRequest without the opportunity,
// which comes from the path.
type CreateOpportunityRiskRequest struct {
	Title       string            `json:"title" binding:"required,min=1,max=200"`
	Description string            `json:"description" binding:"max=5000"`
	Impact      models.Level      `json:"impact" binding:"required,risk_level"`
	Probability models.Level      `json:"probability" binding:"required,risk_level"`
	Status      models.RiskStatus `json:"status" binding:"omitempty,risk_status"`
	Owner       *string           `json:"owner" binding:"omitempty,max=200"`
	Mitigation  *string           `json:"mitigation" binding:"omitempty,max=5000"`
	DueDate     *time.Time        `json:"due_date"`
}

// UpdateRiskRequest represents the request payload for a partial risk update.
type UpdateRiskRequest struct {
	OpportunityID *string            `json:"opportunity_id"`
	Title         *string            `json:"title" binding:"omitempty,min=1,max=200"`
	Description   *string            `json:"description" binding:"omitempty,max=5000"`
	Impact        *models.Level      `json:"impact" binding:"omitempty,risk_level"`
	Probability   *models.Level      `json:"probability" binding:"omitempty,risk_level"`
	Status        *models.RiskStatus `json:"status" binding:"omitempty,risk_status"`
	Owner         *string            `json:"owner" binding:"omitempty,max=200"`
	Mitigation    *string            `json:"mitigation" binding:"omitempty,max=5000"`
	DueDate       *time.Time         `json:"due_date"`
}

// CreateRisk handles the creation of a new risk.
// @Summary     Create a risk
// @Description Record a risk against an opportunity that exists in SAP CRM
// @Tags        risks
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body CreateRiskRequest true "Risk details"
// @Success     201 {object} map[string]models.Risk "Risk created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     404 {object} ErrorResponse "Opportunity not found"
// @Failure     502 {object} ErrorResponse "SAP CRM unavailable"
// @Router      /risks [post]
func (h *RiskHandler) CreateRisk(c *gin.Context) {
	var req CreateRiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	h.create(c, services.CreateRiskInput{
		OpportunityID: req.OpportunityID,
		Title:         req.Title,
		Description:   req.Description,
		Impact:        req.Impact,
		Probability:   req.Probability,
		Status:        req.Status,
		Owner:         req.Owner,
		Mitigation:    req.Mitigation,
		DueDate:       req.DueDate,
	})
}

// CreateOpportunityRisk handles the creation of a risk under an opportunity path.
// @Summary     Create a risk for an opportunity
// @Description Record a risk against the opportunity named in the path
// @Tags        opportunities
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id      path string                       true "Opportunity ID"
// @Param       request body CreateOpportunityRiskRequest true "Risk details"
// @Success     201 {object} map[string]models.Risk "Risk created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     404 {object} ErrorResponse "Opportunity not found"
// @Failure     502 {object} ErrorResponse "SAP CRM unavailable"
// @Router      /opportunities/{id}/risks [post]
func (h *RiskHandler) CreateOpportunityRisk(c *gin.Context) {
	oppID, err := parseOpportunityID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateOpportunityRiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	h.create(c, services.CreateRiskInput{
		OpportunityID: oppID,
		Title:         req.Title,
		Description:   req.Description,
		Impact:        req.Impact,
		Probability:   req.Probability,
		Status:        req.Status,
		Owner:         req.Owner,
		Mitigation:    req.Mitigation,
		DueDate:       req.DueDate,
	})
}

func (h *RiskHandler) create(c *gin.Context, input services.CreateRiskInput) {
	risk, err := h.riskService.CreateRisk(c.Request.Context(), input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_RISK", "risk", risk.ID, c.ClientIP(),
		map[string]any{"title": risk.Title, "opportunity_id": risk.OpportunityID, "status": risk.Status})

	c.JSON(http.StatusCreated, gin.H{"risk": risk})
}

// GetRisks handles listing risks.
// @Summary     List risks
// @Description Get a paginated list of risks with optional filters
// @Tags        risks
// @Produce     json
// @Param       opportunity_id query string false "Filter by opportunity"
// @Param       status         query string false "Filter by status (Open/Mitigated/Closed)"
// @Param       impact         query string false "Filter by impact (High/Medium/Low)"
// @Param       page           query int    false "Page number (default 1)"
// @Param       page_size      query int    false "Items per page (default 20, max 100)"
// @Param       sort           query string false "Sort column, prefix with - for descending (e.g. -due_date)"
// @Success     200 {object} pagination.PageResponse[models.Risk] "Paginated risks"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /risks [get]
func (h *RiskHandler) GetRisks(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.RiskFilter
	if v := c.Query("opportunity_id"); v != "" {
		filter.OpportunityID = &v
	}
	if v := c.Query("status"); v != "" {
		s := models.RiskStatus(v)
		if !s.Valid() {
			respondWithError(c, apperrors.ErrInvalidStatus)
			return
		}
		filter.Status = &s
	}
	if v := c.Query("impact"); v != "" {
		l := models.Level(v)
		if !l.Valid() {
			respondWithError(c, apperrors.ErrInvalidLevel)
			return
		}
		filter.Impact = &l
	}

	result, err := h.riskService.ListRisks(c.Request.Context(), page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetRisk handles fetching a single risk.
// @Summary     Get a risk
// @Tags        risks
// @Produce     json
// @Param       id path string true "Risk ID"
// @Success     200 {object} map[string]models.Risk "Risk"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Risk not found"
// @Router      /risks/{id} [get]
func (h *RiskHandler) GetRisk(c *gin.Context) {
	id, err := parseRiskID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	risk, err := h.riskService.GetRisk(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"risk": risk})
}

// UpdateRisk handles a partial risk update.
// @Summary     Update a risk
// @Description Update any subset of a risk's editable fields. The opportunity cannot change.
// @Tags        risks
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id      path string            true "Risk ID"
// @Param       request body UpdateRiskRequest true "Fields to change"
// @Success     200 {object} map[string]models.Risk "Risk updated"
// @Failure     400 {object} ErrorResponse "Invalid input or immutable field"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     404 {object} ErrorResponse "Risk not found"
// @Router      /risks/{id} [patch]
func (h *RiskHandler) UpdateRisk(c *gin.Context) {
	id, err := parseRiskID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateRiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	risk, err := h.riskService.UpdateRisk(c.Request.Context(), id, services.UpdateRiskInput{
		OpportunityID: req.OpportunityID,
		Title:         req.Title,
		Description:   req.Description,
		Impact:        req.Impact,
		Probability:   req.Probability,
		Status:        req.Status,
		Owner:         req.Owner,
		Mitigation:    req.Mitigation,
		DueDate:       req.DueDate,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_RISK", "risk", id, c.ClientIP(), changedFields(req))

	c.JSON(http.StatusOK, gin.H{"risk": risk})
}

// MitigateRisk marks a risk as mitigated.
// @Summary     Mark a risk mitigated
// @Tags        risks
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Risk ID"
// @Success     200 {object} map[string]models.Risk "Risk updated"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     404 {object} ErrorResponse "Risk not found"
// @Router      /risks/{id}/mitigate [post]
func (h *RiskHandler) MitigateRisk(c *gin.Context) {
	h.transition(c, "MITIGATE_RISK", h.riskService.MarkMitigated)
}

// CloseRisk marks a risk as closed.
// @Summary     Mark a risk closed
// @Tags        risks
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Risk ID"
// @Success     200 {object} map[string]models.Risk "Risk updated"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     404 {object} ErrorResponse "Risk not found"
// @Router      /risks/{id}/close [post]
func (h *RiskHandler) CloseRisk(c *gin.Context) {
	h.transition(c, "CLOSE_RISK", h.riskService.MarkClosed)
}

func (h *RiskHandler) transition(c *gin.Context, action string, mark func(ctx context.Context, id string) (*models.Risk, error)) {
	id, err := parseRiskID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	risk, err := mark(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(action, "risk", id, c.ClientIP(), map[string]any{"status": risk.Status})

	c.JSON(http.StatusOK, gin.H{"risk": risk})
}

// DeleteRisk handles deleting a risk.
// @Summary     Delete a risk
// @Tags        risks
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Risk ID"
// @Success     200 {object} map[string]string "Risk deleted"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     404 {object} ErrorResponse "Risk not found"
// @Router      /risks/{id} [delete]
func (h *RiskHandler) DeleteRisk(c *gin.Context) {
	id, err := parseRiskID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.riskService.DeleteRisk(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_RISK", "risk", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Risk deleted successfully"})
}

// changedFields lists the fields present in an update request for the audit log.
func changedFields(req UpdateRiskRequest) map[string]any {
	changes := map[string]any{}
	if req.Title != nil {
		changes["title"] = *req.Title
	}
	if req.Description != nil {
		changes["description"] = *req.Description
	}
	if req.Impact != nil {
		changes["impact"] = *req.Impact
	}
	if req.Probability != nil {
		changes["probability"] = *req.Probability
	}
	if req.Status != nil {
		changes["status"] = *req.Status
	}
	if req.Owner != nil {
		changes["owner"] = *req.Owner
	}
	if req.Mitigation != nil {
		changes["mitigation"] = *req.Mitigation
	}
	if req.DueDate != nil {
		changes["due_date"] = *req.DueDate
	}
	return changes
}
