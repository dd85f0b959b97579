package dto

import (
	"time"

	"github.com/spec-kit/freight-board/internal/domain"
)

// PlaceBidRequest payload; amount is a raw string parsed by the service.
type PlaceBidRequest struct {
	Amount  string  `json:"amount"`
	Message *string `json:"message"`
}

// BidResponse serializes one bid.
type BidResponse struct {
	ID          string           `json:"id"`
	CargoPostID string           `json:"cargo_post_id"`
	BidderID    string           `json:"bidder_id"`
	Amount      float64          `json:"amount"`
	Message     *string          `json:"message,omitempty"`
	Status      domain.BidStatus `json:"status"`
	DecidedAt   *time.Time       `json:"decided_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// NewBidResponse maps a domain bid.
func NewBidResponse(bid *domain.Bid) BidResponse {
	return BidResponse{
		ID:          bid.ID,
		CargoPostID: bid.CargoPostID,
		BidderID:    bid.BidderID,
		Amount:      bid.Amount,
		Message:     bid.Message,
		Status:      bid.Status,
		DecidedAt:   bid.DecidedAt,
		CreatedAt:   bid.CreatedAt,
	}
}
