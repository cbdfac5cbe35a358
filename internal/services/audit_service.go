package services

import (
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"opportunityrisks/internal/logger"
	"opportunityrisks/internal/models"
)

type auditService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewAuditService creates an AuditServicer writing to the audit_logs table.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db, log: logger.Named("audit")}
}

// Log records a risk register mutation. A failed write is logged and
// swallowed; the mutation it describes has already happened.
func (s *auditService) Log(action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	entry := &models.AuditLog{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      datatypes.JSON("{}"),
	}
	if len(changes) > 0 {
		data, err := json.Marshal(changes)
		if err != nil {
			s.log.Warnw("Dropping unencodable audit changes", "action", action, "error", err)
		} else {
			entry.Changes = datatypes.JSON(data)
		}
	}

	if err := s.db.Create(entry).Error; err != nil {
		s.log.Errorw("Audit write failed",
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
			"error", err,
		)
		return
	}
	s.log.Debugw("Audit recorded", "action", action, "resource_id", resourceID)
}
