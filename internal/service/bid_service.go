package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/freight-board/internal/domain"
	"github.com/spec-kit/freight-board/internal/events"
	"github.com/spec-kit/freight-board/internal/repository"
	apperrors "github.com/spec-kit/freight-board/pkg/util"
)

// BidInput describes a bid placement payload.
type BidInput struct {
	Amount  string
	Message *string
}

// BidService coordinates bids placed on cargo posts.
type BidService struct {
	bids       repository.BidRepository
	cargo      repository.CargoPostRepository
	activities *ActivityService
	dispatcher events.Dispatcher
}

// NewBidService constructs the service.
func NewBidService(bids repository.BidRepository, cargo repository.CargoPostRepository, activities *ActivityService, dispatcher events.Dispatcher) *BidService {
	return &BidService{bids: bids, cargo: cargo, activities: activities, dispatcher: dispatcher}
}

// PlaceBid creates a pending bid on someone else's active cargo post.
func (s *BidService) PlaceBid(ctx context.Context, bidder *domain.User, cargoPostID string, input BidInput) (*domain.Bid, error) {
	if err := validateID(cargoPostID); err != nil {
		return nil, err
	}

	details := map[string]any{}
	amount := parseRequiredFloat(details, "amount", input.Amount)
	if amount <= 0 && len(details) == 0 {
		details["amount"] = "must be positive"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid bid", details)
	}

	post, err := s.cargo.GetByID(ctx, cargoPostID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("cargo post", nil)
		}
		return nil, err
	}
	if post.CreatedBy == bidder.ID {
		return nil, apperrors.NewForbidden("cannot bid on your own listing")
	}
	if post.Status != domain.CargoStatusActive {
		return nil, apperrors.NewValidationError("listing is not active", map[string]any{"status": string(post.Status)})
	}

	bid := &domain.Bid{
		CargoPostID: post.ID,
		BidderID:    bidder.ID,
		Amount:      amount,
		Message:     input.Message,
		Status:      domain.BidStatusPending,
	}
	if err := s.bids.Create(ctx, bid); err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:    events.EventBidPlaced,
		ActorID: bidder.ID,
		Payload: events.BidPlacedPayload{
			BidID:       bid.ID,
			CargoPostID: post.ID,
			OwnerID:     post.CreatedBy,
			Amount:      bid.Amount,
		},
	})
	return bid, nil
}

// ListForListing returns all bids on a listing; owner only (admins see all).
func (s *BidService) ListForListing(ctx context.Context, caller *domain.User, cargoPostID string) ([]domain.Bid, error) {
	if err := validateID(cargoPostID); err != nil {
		return nil, err
	}
	post, err := s.cargo.GetByID(ctx, cargoPostID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("cargo post", nil)
		}
		return nil, err
	}
	if post.CreatedBy != caller.ID && caller.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("only the owner may view bids on this listing")
	}
	return s.bids.ListByCargoPost(ctx, post.ID)
}

// ListOwn returns the caller's bids, newest first.
func (s *BidService) ListOwn(ctx context.Context, caller *domain.User) ([]domain.Bid, error) {
	return s.bids.ListByBidder(ctx, caller.ID)
}

// Decide accepts or rejects a pending bid. Only the listing owner decides;
// the decision is recorded as an approval activity.
func (s *BidService) Decide(ctx context.Context, caller *domain.User, bidID string, accept bool) (*domain.Bid, error) {
	if err := validateID(bidID); err != nil {
		return nil, err
	}
	bid, err := s.bids.GetByID(ctx, bidID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("bid", nil)
		}
		return nil, err
	}
	post, err := s.cargo.GetByID(ctx, bid.CargoPostID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("cargo post", nil)
		}
		return nil, err
	}
	if post.CreatedBy != caller.ID {
		return nil, apperrors.NewForbidden("only the listing owner may decide on bids")
	}
	if bid.Status != domain.BidStatusPending {
		return nil, apperrors.NewConflict("bid already decided", map[string]any{"status": string(bid.Status)})
	}

	status := domain.BidStatusRejected
	action := "bid rejected"
	if accept {
		status = domain.BidStatusAccepted
		action = "bid accepted"
	}
	decidedAt := time.Now()
	if err := s.bids.UpdateStatus(ctx, bid.ID, status, decidedAt); err != nil {
		return nil, err
	}
	bid.Status = status
	bid.DecidedAt = &decidedAt

	s.activities.RecordQuiet(ctx, caller, action, domain.ActivityTypeApproval,
		map[string]any{"bid_id": bid.ID, "reference": post.ReferenceKey})
	publish(ctx, s.dispatcher, events.Event{
		Type:    events.EventBidDecided,
		ActorID: caller.ID,
		Payload: events.BidDecidedPayload{
			BidID:       bid.ID,
			CargoPostID: post.ID,
			BidderID:    bid.BidderID,
			Status:      status,
		},
	})
	return bid, nil
}
