// internal/models/listing_test.go
package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func activeListing(startingPrice float64) *Listing {
	return &Listing{
		StartingPrice: startingPrice,
		CurrentBid:    &startingPrice,
		Status:        ListingStatusActive,
	}
}

func TestCurrentPrice(t *testing.T) {
	l := &Listing{StartingPrice: 100}
	assert.Equal(t, 100.0, l.CurrentPrice(), "falls back to starting price without bids")

	bid := 150.0
	l.CurrentBid = &bid
	assert.Equal(t, 150.0, l.CurrentPrice())
}

func TestCanAcceptBid(t *testing.T) {
	tests := []struct {
		name     string
		status   ListingStatus
		current  float64
		amount   float64
		accepted bool
	}{
		{"higher bid on active listing", ListingStatusActive, 100, 150, true},
		{"equal bid rejected", ListingStatusActive, 100, 100, false},
		{"lower bid rejected", ListingStatusActive, 150, 120, false},
		{"bid on sold listing rejected", ListingStatusSold, 100, 200, false},
		{"bid on expired listing rejected", ListingStatusExpired, 100, 200, false},
		{"bid on removed listing rejected", ListingStatusRemoved, 100, 200, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := activeListing(tt.current)
			l.Status = tt.status
			assert.Equal(t, tt.accepted, l.CanAcceptBid(tt.amount))
		})
	}
}

func TestCanSettle(t *testing.T) {
	l := activeListing(100)
	assert.False(t, l.CanSettle(), "no bids yet")

	bidder := uuid.New()
	l.HighestBidderID = &bidder
	assert.True(t, l.CanSettle())

	l.Status = ListingStatusSold
	assert.False(t, l.CanSettle(), "terminal listings never settle again")
}

func TestTerminalStates(t *testing.T) {
	l := activeListing(100)
	assert.False(t, l.IsTerminal())

	for _, status := range []ListingStatus{ListingStatusSold, ListingStatusExpired, ListingStatusRemoved} {
		l.Status = status
		assert.True(t, l.IsTerminal(), string(status))
	}
}

func TestIsOwnedBy(t *testing.T) {
	owner := uuid.New()
	l := activeListing(100)
	l.FarmerID = owner

	assert.True(t, l.IsOwnedBy(owner))
	assert.False(t, l.IsOwnedBy(uuid.New()))
}

// Walks a full auction: list at 100, accept 150, reject 120, accept 200,
// settle at 200.
func TestAuctionLifecycle(t *testing.T) {
	l := activeListing(100)

	// First bid beats the starting price.
	assert.True(t, l.CanAcceptBid(150))
	firstBidder := uuid.New()
	bid := 150.0
	l.CurrentBid = &bid
	l.HighestBidderID = &firstBidder

	// A lower bid is rejected and leaves state untouched.
	assert.False(t, l.CanAcceptBid(120))
	assert.Equal(t, 150.0, l.CurrentPrice())
	assert.Equal(t, firstBidder, *l.HighestBidderID)

	// A higher bid replaces the leader.
	assert.True(t, l.CanAcceptBid(200))
	secondBidder := uuid.New()
	higher := 200.0
	l.CurrentBid = &higher
	l.HighestBidderID = &secondBidder

	// Settlement records the current price as final.
	assert.True(t, l.CanSettle())
	assert.Equal(t, 200.0, l.SettlementPrice())

	final := l.SettlementPrice()
	l.Status = ListingStatusSold
	l.FinalPrice = &final

	assert.True(t, l.IsTerminal())
	assert.False(t, l.CanAcceptBid(300), "sold listings accept no bids")
	assert.Equal(t, 200.0, *l.FinalPrice)
	assert.Equal(t, secondBidder, *l.HighestBidderID)
}

func TestValidRegistrationRole(t *testing.T) {
	assert.True(t, ValidRegistrationRole(UserRoleFarmer))
	assert.True(t, ValidRegistrationRole(UserRoleDealer))
	assert.False(t, ValidRegistrationRole(UserRoleAdmin))
	assert.False(t, ValidRegistrationRole(UserRole("SUPERVISOR")))
}
