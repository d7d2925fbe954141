// internal/models/bid.go
package models

import (
	"github.com/google/uuid"
)

// Bid is an immutable dealer offer against a listing. Rows are append-only;
// nothing in the codebase updates or deletes them.
type Bid struct {
	BaseModel
	Amount    float64   `json:"amount" gorm:"type:decimal(12,2);not null"`
	ListingID uuid.UUID `json:"listing_id" gorm:"type:uuid;not null;index"`
	DealerID  uuid.UUID `json:"dealer_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Listing Listing `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
	Dealer  User    `json:"dealer,omitempty" gorm:"foreignKey:DealerID"`
}
