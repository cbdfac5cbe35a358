package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"opportunityrisks/internal/logger"
	"opportunityrisks/internal/metrics"
	"opportunityrisks/internal/models"
)

// Strategy names, in the order the default resolver tries them.
const (
	StrategyNavigation = "navigation"
	StrategyFilter     = "filter"
	StrategyScan       = "scan"
)

// LookupStrategy is one way of finding the risks of an opportunity.
type LookupStrategy struct {
	Name  string
	Fetch func(ctx context.Context, opportunityID string) ([]models.Risk, error)
}

// riskResolver runs its strategies strictly in order and stops at the first
// one that yields at least one risk. Strategy errors count as zero results.
type riskResolver struct {
	strategies []LookupStrategy
	metrics    *metrics.Registry
	log        *zap.SugaredLogger
}

// NewRiskResolver creates a RiskResolver using the navigation, filter and
// scan strategies against db. reg may be nil.
func NewRiskResolver(db *gorm.DB, reg *metrics.Registry) RiskResolver {
	return NewRiskResolverWithStrategies(reg,
		LookupStrategy{Name: StrategyNavigation, Fetch: navigationLookup(db)},
		LookupStrategy{Name: StrategyFilter, Fetch: filterLookup(db)},
		LookupStrategy{Name: StrategyScan, Fetch: scanLookup(db)},
	)
}

// NewRiskResolverWithStrategies creates a RiskResolver over arbitrary strategies.
func NewRiskResolverWithStrategies(reg *metrics.Registry, strategies ...LookupStrategy) RiskResolver {
	return &riskResolver{
		strategies: strategies,
		metrics:    reg,
		log:        logger.Named("risk-resolver"),
	}
}

// Resolve returns the risks of opportunityID, or an empty slice when every
// strategy came up empty or failed.
func (r *riskResolver) Resolve(ctx context.Context, opportunityID string) ([]models.Risk, ResolveTrace) {
	trace := ResolveTrace{OpportunityID: opportunityID, Attempts: make([]StrategyAttempt, 0, len(r.strategies))}

	for _, s := range r.strategies {
		if ctx.Err() != nil {
			break
		}

		start := time.Now()
		risks, err := s.Fetch(ctx, opportunityID)
		attempt := StrategyAttempt{Strategy: s.Name, Count: len(risks), Duration: time.Since(start)}

		outcome := "empty"
		switch {
		case err != nil:
			attempt.Count = 0
			attempt.Error = err.Error()
			outcome = "error"
		case len(risks) > 0:
			outcome = "hit"
		}
		trace.Attempts = append(trace.Attempts, attempt)
		r.observe(s.Name, outcome)

		r.log.Debugw("fallback strategy attempted",
			"opportunity_id", opportunityID,
			"strategy", s.Name,
			"outcome", outcome,
			"count", attempt.Count,
			"error", attempt.Error,
		)

		if err == nil && len(risks) > 0 {
			trace.Winner = s.Name
			return risks, trace
		}
	}

	if trace.AllFailed() {
		r.log.Warnw("every risk lookup strategy failed", "opportunity_id", opportunityID)
	}
	return []models.Risk{}, trace
}

func (r *riskResolver) observe(strategy, outcome string) {
	if r.metrics != nil {
		r.metrics.ResolverAttempts.WithLabelValues(strategy, outcome).Inc()
	}
}

// navigationLookup follows the Opportunity.Risks association.
func navigationLookup(db *gorm.DB) func(context.Context, string) ([]models.Risk, error) {
	return func(ctx context.Context, opportunityID string) ([]models.Risk, error) {
		var risks []models.Risk
		opp := &models.Opportunity{ID: opportunityID}
		err := db.WithContext(ctx).Model(opp).Order("created_at").Association("Risks").Find(&risks)
		return risks, err
	}
}

// filterLookup asks the store for risks with a matching opportunity reference.
func filterLookup(db *gorm.DB) func(context.Context, string) ([]models.Risk, error) {
	return func(ctx context.Context, opportunityID string) ([]models.Risk, error) {
		var risks []models.Risk
		err := db.WithContext(ctx).
			Where("opportunity_id = ?", opportunityID).
			Order("created_at").
			Find(&risks).Error
		return risks, err
	}
}

// scanLookup loads every risk and filters in memory.
func scanLookup(db *gorm.DB) func(context.Context, string) ([]models.Risk, error) {
	return func(ctx context.Context, opportunityID string) ([]models.Risk, error) {
		var all []models.Risk
		if err := db.WithContext(ctx).Order("created_at").Find(&all).Error; err != nil {
			return nil, err
		}
		matched := make([]models.Risk, 0, len(all))
		for _, risk := range all {
			if risk.OpportunityID == opportunityID {
				matched = append(matched, risk)
			}
		}
		return matched, nil
	}
}
