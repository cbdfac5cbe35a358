package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "opportunityrisks/internal/errors"
	"opportunityrisks/internal/models"
	"opportunityrisks/internal/pagination"
)

// riskService handles risk-related business logic.
type riskService struct {
	db            *gorm.DB
	opportunities OpportunityServicer
}

// NewRiskService creates a new RiskServicer. Opportunity references are
// checked against opportunities before a risk is inserted.
func NewRiskService(db *gorm.DB, opportunities OpportunityServicer) RiskServicer {
	return &riskService{db: db, opportunities: opportunities}
}

// CreateRisk validates input, confirms the opportunity exists upstream and
// inserts the risk.
func (s *riskService) CreateRisk(ctx context.Context, input CreateRiskInput) (*models.Risk, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title is required")
	}
	if input.OpportunityID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "opportunity_id is required")
	}
	if !input.Impact.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidLevel, "impact must be High, Medium or Low")
	}
	if !input.Probability.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidLevel, "probability must be High, Medium or Low")
	}
	if input.Status == "" {
		input.Status = models.RiskStatusOpen
	}
	if !input.Status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}

	opp, err := s.opportunities.GetOpportunity(ctx, input.OpportunityID)
	if err != nil {
		return nil, err
	}

	risk := &models.Risk{
		Title:           input.Title,
		Description:     input.Description,
		Impact:          input.Impact,
		Probability:     input.Probability,
		Status:          input.Status,
		Owner:           input.Owner,
		Mitigation:      input.Mitigation,
		DueDate:         input.DueDate,
		OpportunityID:   input.OpportunityID,
		OpportunityName: opp.Name,
	}

	if err := s.db.WithContext(ctx).Create(risk).Error; err != nil {
		return nil, apperrors.Passthrough(apperrors.ErrInternalServer, err)
	}

	return risk, nil
}

// GetRisk retrieves a risk by ID.
func (s *riskService) GetRisk(ctx context.Context, id string) (*models.Risk, error) {
	var risk models.Risk
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&risk).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRiskNotFound
		}
		return nil, apperrors.Passthrough(apperrors.ErrInternalServer, err)
	}
	return &risk, nil
}

// riskSortColumns are the columns a risk list may be ordered by.
var riskSortColumns = []string{"created_at", "updated_at", "due_date", "title", "impact", "probability", "status"}

// ListRisks retrieves a paginated, optionally filtered list of risks.
func (s *riskService) ListRisks(ctx context.Context, page pagination.PageRequest, filter RiskFilter) (*pagination.PageResponse[models.Risk], error) {
	page.Defaults()
	order, err := page.OrderClause(riskSortColumns, "created_at DESC")
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}

	base := s.db.WithContext(ctx).Model(&models.Risk{})
	if filter.OpportunityID != nil {
		base = base.Where("opportunity_id = ?", *filter.OpportunityID)
	}
	if filter.Status != nil {
		base = base.Where("status = ?", *filter.Status)
	}
	if filter.Impact != nil {
		base = base.Where("impact = ?", *filter.Impact)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Passthrough(apperrors.ErrInternalServer, err)
	}

	var risks []models.Risk
	if err := base.Order(order).Scopes(pagination.Paginate(page)).Find(&risks).Error; err != nil {
		return nil, apperrors.Passthrough(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(risks, page, totalItems)
	return &result, nil
}

// UpdateRisk applies a partial update. The opportunity reference cannot change.
func (s *riskService) UpdateRisk(ctx context.Context, id string, input UpdateRiskInput) (*models.Risk, error) {
	risk, err := s.GetRisk(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.OpportunityID != nil && *input.OpportunityID != risk.OpportunityID {
		return nil, apperrors.ErrImmutableField
	}

	updates := map[string]any{}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title cannot be empty")
		}
		updates["title"] = title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Impact != nil {
		if !input.Impact.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidLevel, "impact must be High, Medium or Low")
		}
		updates["impact"] = *input.Impact
	}
	if input.Probability != nil {
		if !input.Probability.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidLevel, "probability must be High, Medium or Low")
		}
		updates["probability"] = *input.Probability
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, apperrors.ErrInvalidStatus
		}
		updates["status"] = *input.Status
	}
	if input.Owner != nil {
		updates["owner"] = *input.Owner
	}
	if input.Mitigation != nil {
		updates["mitigation"] = *input.Mitigation
	}
	if input.DueDate != nil {
		updates["due_date"] = *input.DueDate
	}

	if len(updates) == 0 {
		return risk, nil
	}

	// Updates with a map stamps updated_at.
	if err := s.db.WithContext(ctx).Model(risk).Updates(updates).Error; err != nil {
		return nil, apperrors.Passthrough(apperrors.ErrInternalServer, err)
	}

	return s.GetRisk(ctx, id)
}

// MarkMitigated sets status to Mitigated and nothing else.
func (s *riskService) MarkMitigated(ctx context.Context, id string) (*models.Risk, error) {
	return s.setStatus(ctx, id, models.RiskStatusMitigated)
}

// MarkClosed sets status to Closed and nothing else.
func (s *riskService) MarkClosed(ctx context.Context, id string) (*models.Risk, error) {
	return s.setStatus(ctx, id, models.RiskStatusClosed)
}

// setStatus writes the single status column, leaving updated_at untouched,
// then re-reads the row.
func (s *riskService) setStatus(ctx context.Context, id string, status models.RiskStatus) (*models.Risk, error) {
	result := s.db.WithContext(ctx).
		Model(&models.Risk{}).
		Where("id = ?", id).
		UpdateColumn("status", status)
	if result.Error != nil {
		return nil, apperrors.Passthrough(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrRiskNotFound
	}
	return s.GetRisk(ctx, id)
}

// DeleteRisk soft-deletes a risk.
func (s *riskService) DeleteRisk(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Risk{})
	if result.Error != nil {
		return apperrors.Passthrough(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrRiskNotFound
	}
	return nil
}
