package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"opportunityrisks/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestRisk creates an open Medium/Medium risk for the given opportunity.
func CreateTestRisk(t *testing.T, db *gorm.DB, opportunityID string) *models.Risk {
	t.Helper()
	return CreateTestRiskWithLevels(t, db, opportunityID, models.LevelMedium, models.LevelMedium)
}

// CreateTestRiskWithLevels creates an open risk with the given impact and probability.
func CreateTestRiskWithLevels(t *testing.T, db *gorm.DB, opportunityID string, impact, probability models.Level) *models.Risk {
	t.Helper()

	owner := "owner@example.com"
	risk := &models.Risk{
		Title:           fmt.Sprintf("Test Risk %d", nextID()),
		Description:     "created by fixture",
		Impact:          impact,
		Probability:     probability,
		Status:          models.RiskStatusOpen,
		Owner:           &owner,
		OpportunityID:   opportunityID,
		OpportunityName: "Opportunity " + opportunityID,
	}
	if err := db.Create(risk).Error; err != nil {
		t.Fatalf("failed to create test risk: %v", err)
	}
	return risk
}

// TestOpportunity returns a fully populated opportunity with the given identifier.
func TestOpportunity(id, name string) models.Opportunity {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return models.Opportunity{
		ID:                    id,
		ObjectID:              id,
		OpportunityID:         fmt.Sprintf("OPP-%d", nextID()),
		Name:                  name,
		AccountID:             "ACC001",
		SalesStage:            "Qualification",
		ExpectedRevenueAmount: decimal.NewFromInt(150000),
		Currency:              "USD",
		CreatedOn:             now,
		LastChangedOn:         now,
	}
}
