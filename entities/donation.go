package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	DonationStatusAvailable = "available"
	DonationStatusClaimed   = "claimed"
	DonationStatusExpired   = "expired"
	DonationStatusCancelled = "cancelled"

	ClaimStatusPending   = "pending"
	ClaimStatusCollected = "collected"
	ClaimStatusCancelled = "cancelled"
)

type Donation struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DonorID       uuid.UUID      `gorm:"not null;index" json:"donor_id"`
	Title         string         `gorm:"not null" json:"title"`
	Description   string         `json:"description"`
	Quantity      int            `gorm:"not null" json:"quantity"`
	QuantityTaken int            `gorm:"default:0" json:"quantity_taken"`
	ExpiryDate    time.Time      `gorm:"not null" json:"expiry_date"`
	Category      string         `gorm:"default:other" json:"category"` // cooked, packaged, raw, other
	Location      datatypes.JSON `json:"location"`
	ImageURL      string         `json:"image_url,omitempty"`
	Status        string         `gorm:"default:available;index" json:"status"` // available, claimed, expired, cancelled

	Donor     *User               `gorm:"foreignKey:DonorID"`
	Claims    []*DonationClaim    `gorm:"foreignKey:DonationID;constraint:OnDelete:CASCADE"`
	Feedbacks []*DonationFeedback `gorm:"foreignKey:DonationID;constraint:OnDelete:CASCADE"`
	Timestamp
}

// RemainingQuantity never goes negative even if quantity_taken drifts.
func (d *Donation) RemainingQuantity() int {
	remaining := d.Quantity - d.QuantityTaken
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsAvailable is recomputed on every read, never cached.
func (d *Donation) IsAvailable(now time.Time) bool {
	return d.Status == DonationStatusAvailable &&
		d.RemainingQuantity() > 0 &&
		d.ExpiryDate.After(now)
}

type DonationClaim struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DonationID  uuid.UUID `gorm:"not null;index" json:"donation_id"`
	RecipientID uuid.UUID `gorm:"not null;index" json:"recipient_id"`
	Quantity    int       `gorm:"not null;default:1" json:"quantity"`
	Status      string    `gorm:"default:pending" json:"status"` // pending, collected, cancelled

	Donation  *Donation `gorm:"foreignKey:DonationID"`
	Recipient *User     `gorm:"foreignKey:RecipientID"`
	Timestamp
}

type DonationFeedback struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DonationID  uuid.UUID `gorm:"not null;uniqueIndex:idx_feedback_donation_recipient" json:"donation_id"`
	RecipientID uuid.UUID `gorm:"not null;uniqueIndex:idx_feedback_donation_recipient" json:"recipient_id"`
	Rating      int       `gorm:"not null" json:"rating"` // 1-5
	Comment     string    `json:"comment"`

	Donation  *Donation `gorm:"foreignKey:DonationID"`
	Recipient *User     `gorm:"foreignKey:RecipientID"`
	Timestamp
}
