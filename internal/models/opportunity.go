package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Opportunity is a sales deal materialized from SAP CRM for the duration of
// one request. It is never written to the local database; the gorm tags only
// describe the Risks association used for navigation lookups.
type Opportunity struct {
	ID                    string          `gorm:"primaryKey" json:"id"`
	ObjectID              string          `json:"object_id,omitempty"`
	OpportunityID         string          `json:"opportunity_id,omitempty"`
	Name                  string          `json:"name"`
	AccountID             string          `json:"account_id,omitempty"`
	SalesStage            string          `json:"sales_stage,omitempty"`
	ExpectedRevenueAmount decimal.Decimal `json:"expected_revenue_amount"`
	Currency              string          `json:"currency"`
	CloseDate             *time.Time      `json:"close_date,omitempty"`
	CreatedOn             time.Time       `json:"created_on"`
	LastChangedOn         time.Time       `json:"last_changed_on"`

	// RawData keeps the upstream payload of a single-record fetch.
	RawData datatypes.JSON `gorm:"-" json:"raw_data,omitempty"`

	Risks []Risk `gorm:"foreignKey:OpportunityID" json:"risks,omitempty"`
}

// Matches reports whether id names this opportunity under any of its identifiers.
func (o *Opportunity) Matches(id string) bool {
	return id != "" && (o.ID == id || o.ObjectID == id || o.OpportunityID == id)
}
