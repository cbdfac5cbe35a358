package models

import (
	"time"

	"gorm.io/gorm"
)

// Level is the shared High/Medium/Low scale used for impact and probability.
type Level string

const (
	LevelHigh   Level = "High"
	LevelMedium Level = "Medium"
	LevelLow    Level = "Low"
)

// Valid reports whether l is one of the three known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelHigh, LevelMedium, LevelLow:
		return true
	}
	return false
}

// Score maps a level onto 3/2/1. Unknown levels score as Low.
func (l Level) Score() int {
	switch l {
	case LevelHigh:
		return 3
	case LevelMedium:
		return 2
	default:
		return 1
	}
}

// RiskStatus is the lifecycle state of a risk.
type RiskStatus string

const (
	RiskStatusOpen      RiskStatus = "Open"
	RiskStatusMitigated RiskStatus = "Mitigated"
	RiskStatusClosed    RiskStatus = "Closed"
)

// Valid reports whether s is a known status.
func (s RiskStatus) Valid() bool {
	switch s {
	case RiskStatusOpen, RiskStatusMitigated, RiskStatusClosed:
		return true
	}
	return false
}

// Risk is a locally owned record describing a threat to an opportunity.
// OpportunityID is immutable once the risk exists; OpportunityName is a
// copy of the opportunity's name taken at creation.
type Risk struct {
	Base
	Title           string     `gorm:"not null" json:"title"`
	Description     string     `json:"description"`
	Impact          Level      `gorm:"not null" json:"impact"`
	Probability     Level      `gorm:"not null" json:"probability"`
	Status          RiskStatus `gorm:"not null;default:Open" json:"status"`
	Owner           *string    `json:"owner,omitempty"`
	Mitigation      *string    `json:"mitigation,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	OpportunityID   string     `gorm:"not null;index" json:"opportunity_id"`
	OpportunityName string     `json:"opportunity_name"`

	// Derived on load, never stored.
	RiskScore int    `gorm:"-" json:"risk_score"`
	RiskLevel string `gorm:"-" json:"risk_level"`
}

// Assess fills RiskScore and RiskLevel from impact and probability.
func (r *Risk) Assess() {
	r.RiskScore = r.Impact.Score() * r.Probability.Score()
	switch {
	case r.RiskScore >= 6:
		r.RiskLevel = "Critical"
	case r.RiskScore >= 4:
		r.RiskLevel = "High"
	case r.RiskScore >= 2:
		r.RiskLevel = "Medium"
	default:
		r.RiskLevel = "Low"
	}
}

// AfterFind derives the score for every loaded risk.
func (r *Risk) AfterFind(tx *gorm.DB) error {
	r.Assess()
	return nil
}

// AfterCreate derives the score for a freshly inserted risk.
func (r *Risk) AfterCreate(tx *gorm.DB) error {
	r.Assess()
	return nil
}
