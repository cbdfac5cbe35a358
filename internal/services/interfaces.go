package services

import (
	"context"
	"time"

	"opportunityrisks/internal/models"
	"opportunityrisks/internal/pagination"
)

// OpportunityFetcher is the upstream CRM as seen by the opportunity service.
// *crm.Client satisfies it.
type OpportunityFetcher interface {
	FetchAll(ctx context.Context) (any, error)
	FetchOne(ctx context.Context, id string) (map[string]any, error)
}

// OpportunityServicer defines the contract for reading opportunities from SAP CRM.
type OpportunityServicer interface {
	ListOpportunities(ctx context.Context) ([]models.Opportunity, error)
	GetOpportunity(ctx context.Context, id string) (*models.Opportunity, error)
	RefreshOpportunities(ctx context.Context) (int, error)
}

// StrategyAttempt describes one risk lookup strategy run by the resolver.
type StrategyAttempt struct {
	Strategy string        `json:"strategy"`
	Count    int           `json:"count"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// ResolveTrace records which lookup strategies ran for an opportunity and
// why each one did or did not produce the result.
type ResolveTrace struct {
	OpportunityID string            `json:"opportunity_id"`
	Attempts      []StrategyAttempt `json:"attempts"`
	Winner        string            `json:"winner,omitempty"`
}

// AllFailed reports whether every attempted strategy returned an error.
func (t ResolveTrace) AllFailed() bool {
	if len(t.Attempts) == 0 {
		return false
	}
	for _, a := range t.Attempts {
		if a.Error == "" {
			return false
		}
	}
	return true
}

// RiskResolver finds the risks of an opportunity. It never fails; the trace
// explains an empty result.
type RiskResolver interface {
	Resolve(ctx context.Context, opportunityID string) ([]models.Risk, ResolveTrace)
}

// RiskFilter holds optional filter parameters for listing risks.
type RiskFilter struct {
	OpportunityID *string
	Status        *models.RiskStatus
	Impact        *models.Level
}

// CreateRiskInput carries the fields accepted when creating a risk.
type CreateRiskInput struct {
	OpportunityID string
	Title         string
	Description   string
	Impact        models.Level
	Probability   models.Level
	Status        models.RiskStatus
	Owner         *string
	Mitigation    *string
	DueDate       *time.Time
}

// UpdateRiskInput carries a partial update; nil fields are left untouched.
type UpdateRiskInput struct {
	OpportunityID *string
	Title         *string
	Description   *string
	Impact        *models.Level
	Probability   *models.Level
	Status        *models.RiskStatus
	Owner         *string
	Mitigation    *string
	DueDate       *time.Time
}

// RiskServicer defines the contract for risk-related business logic.
type RiskServicer interface {
	CreateRisk(ctx context.Context, input CreateRiskInput) (*models.Risk, error)
	GetRisk(ctx context.Context, id string) (*models.Risk, error)
	ListRisks(ctx context.Context, page pagination.PageRequest, filter RiskFilter) (*pagination.PageResponse[models.Risk], error)
	UpdateRisk(ctx context.Context, id string, input UpdateRiskInput) (*models.Risk, error)
	MarkMitigated(ctx context.Context, id string) (*models.Risk, error)
	MarkClosed(ctx context.Context, id string) (*models.Risk, error)
	DeleteRisk(ctx context.Context, id string) error
}

// ValueHelpServicer defines the contract for the static code lists.
type ValueHelpServicer interface {
	List(name string) ([]models.CodeText, error)
	Names() []string
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
