// internal/models/listing.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Listing is an auctionable crop lot posted by a farmer. Its lifecycle is
// ACTIVE -> SOLD | EXPIRED | REMOVED; ACTIVE is the only state that accepts
// bids, edits, settlement or deletion.
type Listing struct {
	BaseModel
	FarmerID        uuid.UUID     `json:"farmer_id" gorm:"type:uuid;not null;index"`
	CropName        string        `json:"crop_name" gorm:"size:100;not null"`
	Quantity        float64       `json:"quantity" gorm:"type:decimal(12,2);not null"`
	Unit            string        `json:"unit" gorm:"size:20;not null"`
	StartingPrice   float64       `json:"starting_price" gorm:"type:decimal(12,2);not null"`
	CurrentBid      *float64      `json:"current_bid" gorm:"type:decimal(12,2)"`
	HighestBidderID *uuid.UUID    `json:"highest_bidder_id" gorm:"type:uuid;index"`
	FinalPrice      *float64      `json:"final_price" gorm:"type:decimal(12,2)"`
	Status          ListingStatus `json:"status" gorm:"type:varchar(20);default:'ACTIVE';index"`
	EndTime         time.Time     `json:"end_time" gorm:"not null;index"`
	Description     string        `json:"description" gorm:"type:text"`

	// Relationships
	Farmer        User  `json:"farmer,omitempty" gorm:"foreignKey:FarmerID"`
	HighestBidder *User `json:"highest_bidder,omitempty" gorm:"foreignKey:HighestBidderID"`
	Bids          []Bid `json:"bids,omitempty" gorm:"foreignKey:ListingID"`
}

// CurrentPrice is the price a new bid has to beat: the current bid when one
// exists, the starting price otherwise.
func (l *Listing) CurrentPrice() float64 {
	if l.CurrentBid != nil {
		return *l.CurrentBid
	}
	return l.StartingPrice
}

// CanAcceptBid checks the bid acceptance rule against the listing state the
// caller holds. Amount must strictly beat the current price and the auction
// must still be running.
func (l *Listing) CanAcceptBid(amount float64) bool {
	if l.Status != ListingStatusActive {
		return false
	}
	return amount > l.CurrentPrice()
}

// CanSettle reports whether the farmer may close the auction: the listing is
// still ACTIVE and at least one bid has been accepted.
func (l *Listing) CanSettle() bool {
	return l.Status == ListingStatusActive && l.HighestBidderID != nil
}

// IsTerminal reports whether the listing has left ACTIVE. Terminal listings
// never return to ACTIVE.
func (l *Listing) IsTerminal() bool {
	return l.Status != ListingStatusActive
}

// HasBids reports whether any bid has been accepted against this listing.
func (l *Listing) HasBids() bool {
	return l.HighestBidderID != nil
}

// SettlementPrice is the final price recorded at sale time.
func (l *Listing) SettlementPrice() float64 {
	return l.CurrentPrice()
}

// IsOwnedBy reports whether the given user posted this listing.
func (l *Listing) IsOwnedBy(userID uuid.UUID) bool {
	return l.FarmerID == userID
}
