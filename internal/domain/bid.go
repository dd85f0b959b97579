package domain

import "time"

// BidStatus enumerates decision states for bids.
type BidStatus string

const (
	BidStatusPending  BidStatus = "pending"
	BidStatusAccepted BidStatus = "accepted"
	BidStatusRejected BidStatus = "rejected"
)

// Bid is an offer placed by a carrier on a cargo post. Only the listing
// owner decides on pending bids.
type Bid struct {
	ID          string
	CargoPostID string
	BidderID    string
	Amount      float64
	Message     *string
	Status      BidStatus
	DecidedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
