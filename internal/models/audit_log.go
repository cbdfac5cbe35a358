package models

import "gorm.io/datatypes"

// AuditLog records one mutation of a risk register resource. Changes holds
// the submitted fields as a JSON object, empty for field-less actions such
// as delete.
type AuditLog struct {
	Base
	Action       string         `gorm:"not null" json:"action"`
	ResourceType string         `gorm:"not null" json:"resource_type"`
	ResourceID   string         `gorm:"index" json:"resource_id"`
	IPAddress    string         `json:"ip_address"`
	Changes      datatypes.JSON `gorm:"not null" json:"changes"`
}
