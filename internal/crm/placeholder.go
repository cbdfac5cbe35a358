package crm

import (
	"time"

	"github.com/shopspring/decimal"

	"opportunityrisks/internal/models"
)

// Placeholders returns the fixed development data set served under
// PolicyPlaceholder. IDs are stable so risks can be attached to them.
func Placeholders(now time.Time) []models.Opportunity {
	seed := []struct {
		id, number, name, account, stage, closeDate string
		revenue                                     int64
	}{
		{"OBJ001", "OPP-2025-001", "Enterprise Software Implementation", "ACC001", "Qualification", "2025-09-15", 150000},
		{"OBJ002", "OPP-2025-002", "Cloud Migration Project", "ACC002", "Proposal", "2025-10-30", 250000},
		{"OBJ003", "OPP-2025-003", "Digital Transformation Initiative", "ACC003", "Negotiation", "2025-12-15", 500000},
	}

	opps := make([]models.Opportunity, 0, len(seed))
	for _, s := range seed {
		closeDate, _ := time.Parse("2006-01-02", s.closeDate)
		opps = append(opps, models.Opportunity{
			ID:                    s.id,
			ObjectID:              s.id,
			OpportunityID:         s.number,
			Name:                  s.name,
			AccountID:             s.account,
			SalesStage:            s.stage,
			ExpectedRevenueAmount: decimal.NewFromInt(s.revenue),
			Currency:              defaultCurrency,
			CloseDate:             &closeDate,
			CreatedOn:             now,
			LastChangedOn:         now,
		})
	}
	return opps
}
