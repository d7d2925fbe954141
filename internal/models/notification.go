// internal/models/notification.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a one-way message recorded for a user. WIN notifications are
// written exactly once, inside the settlement transaction.
type Notification struct {
	BaseModel
	UserID    uuid.UUID        `json:"user_id" gorm:"type:uuid;not null;index"`
	Type      NotificationType `json:"type" gorm:"type:varchar(20);not null;index"`
	Message   string           `json:"message" gorm:"type:text;not null"`
	ListingID *uuid.UUID       `json:"listing_id" gorm:"type:uuid;index"`
	ReadAt    *time.Time       `json:"read_at"`

	// Relationships
	User    User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Listing *Listing `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
}
