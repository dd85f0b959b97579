package events

import (
	"time"

	"github.com/spec-kit/freight-board/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventListingCreated EventType = "listing_created"
	EventBidPlaced      EventType = "bid_placed"
	EventBidDecided     EventType = "bid_decided"
	EventUserRegistered EventType = "user_registered"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ListingCreatedPayload payload.
type ListingCreatedPayload struct {
	Kind        domain.ListingKind `json:"kind"`
	ListingID   string             `json:"listing_id"`
	Reference   string             `json:"reference"`
	Origin      string             `json:"origin"`
	Destination string             `json:"destination"`
}

// BidPlacedPayload payload.
type BidPlacedPayload struct {
	BidID       string  `json:"bid_id"`
	CargoPostID string  `json:"cargo_post_id"`
	OwnerID     string  `json:"owner_id"`
	Amount      float64 `json:"amount"`
}

// BidDecidedPayload payload.
type BidDecidedPayload struct {
	BidID       string           `json:"bid_id"`
	CargoPostID string           `json:"cargo_post_id"`
	BidderID    string           `json:"bidder_id"`
	Status      domain.BidStatus `json:"status"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
