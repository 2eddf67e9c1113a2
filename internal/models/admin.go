// internal/models/admin.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records every mutating request for moderation forensics.
type AuditLog struct {
	BaseModel
	UserID       *uuid.UUID `json:"user_id" gorm:"type:uuid;index"`
	Action       string     `json:"action" gorm:"size:255;not null"`
	ResourceType string     `json:"resource_type" gorm:"size:50;index"`
	ResourceID   *uuid.UUID `json:"resource_id" gorm:"type:uuid"`
	IPAddress    string     `json:"ip_address" gorm:"size:45"`
	UserAgent    string     `json:"user_agent" gorm:"size:512"`
	NewValues    JSONB      `json:"new_values,omitempty" gorm:"type:jsonb"`
}

// Report is a user complaint about another user or a product.
type Report struct {
	BaseModel
	ReporterID      uuid.UUID    `json:"reporter_id" gorm:"type:uuid;not null;index"`
	ReportedUserID  *uuid.UUID   `json:"reported_user_id" gorm:"type:uuid;index"`
	ReportedProduct *uuid.UUID   `json:"reported_product_id" gorm:"type:uuid;column:reported_product_id;index"`
	ReportType      ReportType   `json:"report_type" gorm:"type:varchar(20);not null"`
	Description     string       `json:"description" gorm:"type:text;not null"`
	Status          ReportStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	ResolvedByID    *uuid.UUID   `json:"resolved_by_id" gorm:"type:uuid"`
	ResolvedAt      *time.Time   `json:"resolved_at"`
	ResolutionNotes string       `json:"resolution_notes" gorm:"type:text"`

	// Relationships
	Reporter   User  `json:"reporter,omitempty" gorm:"foreignKey:ReporterID"`
	ResolvedBy *User `json:"resolved_by,omitempty" gorm:"foreignKey:ResolvedByID"`
}
