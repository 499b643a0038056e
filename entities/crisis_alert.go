package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	AlertSeverityLow      = "low"
	AlertSeverityMedium   = "medium"
	AlertSeverityHigh     = "high"
	AlertSeverityCritical = "critical"
)

type CrisisAlert struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Title             string         `gorm:"not null;index" json:"title"`
	Message           string         `gorm:"not null" json:"message"`
	AlertType         string         `gorm:"default:other" json:"alert_type"` // natural_disaster, weather_alert, health_crisis, emergency, other
	Severity          string         `gorm:"default:medium" json:"severity"`  // low, medium, high, critical
	Location          datatypes.JSON `json:"location,omitempty"`
	SourceURL         string         `json:"source_url,omitempty"`
	IsActive          bool           `gorm:"default:true" json:"is_active"`
	IsSystemGenerated bool           `gorm:"default:false" json:"is_system_generated"`
	ExpiresAt         time.Time      `json:"expires_at"`

	Dismissals []*UserAlertDismiss `gorm:"foreignKey:AlertID;constraint:OnDelete:CASCADE"`
	Timestamp
}

// UserAlertDismiss records a per-user suppression, not a global deletion.
type UserAlertDismiss struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID  uuid.UUID `gorm:"not null;uniqueIndex:idx_dismiss_user_alert" json:"user_id"`
	AlertID uuid.UUID `gorm:"not null;uniqueIndex:idx_dismiss_user_alert" json:"alert_id"`

	User  *User        `gorm:"foreignKey:UserID"`
	Alert *CrisisAlert `gorm:"foreignKey:AlertID"`
	Timestamp
}
