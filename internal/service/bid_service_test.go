package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/freight-board/internal/domain"
)

func newBidFixture(t *testing.T) (*BidService, *ListingService, *fakeActivityRepo) {
	t.Helper()
	cargo := newFakeCargoRepo()
	trucks := newFakeTruckRepo()
	users := newFakeUserRepo()
	activityRepo := newFakeActivityRepo()
	activities := NewActivityService(activityRepo, zap.NewNop())
	dispatcher := &fakeDispatcher{}
	listings := NewListingService(cargo, trucks, users, activities, dispatcher)
	bids := NewBidService(newFakeBidRepo(), cargo, activities, dispatcher)
	return bids, listings, activityRepo
}

func TestPlaceBidOnOwnListingForbidden(t *testing.T) {
	bids, listings, _ := newBidFixture(t)
	owner := testUser(uuid.NewString())
	post, err := listings.CreateCargoPost(context.Background(), owner, validCargoInput())
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	_, err = bids.PlaceBid(context.Background(), owner, post.ID, BidInput{Amount: "1500"})
	if code := domainCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("code = %q, want FORBIDDEN", code)
	}
}

func TestPlaceBidOnInactiveListing(t *testing.T) {
	bids, listings, _ := newBidFixture(t)
	owner := testUser(uuid.NewString())
	post, err := listings.CreateCargoPost(context.Background(), owner, validCargoInput())
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	status := "completed"
	if _, err := listings.UpdateCargoPost(context.Background(), owner, post.ID, CargoPostPatch{Status: &status}); err != nil {
		t.Fatalf("complete post: %v", err)
	}

	_, err = bids.PlaceBid(context.Background(), testUser(uuid.NewString()), post.ID, BidInput{Amount: "1500"})
	if code := domainCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("code = %q, want VALIDATION_FAILED", code)
	}
}

func TestPlaceBidRejectsBadAmount(t *testing.T) {
	bids, listings, _ := newBidFixture(t)
	post, err := listings.CreateCargoPost(context.Background(), testUser(uuid.NewString()), validCargoInput())
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	for _, amount := range []string{"", "free", "-10"} {
		_, err := bids.PlaceBid(context.Background(), testUser(uuid.NewString()), post.ID, BidInput{Amount: amount})
		if code := domainCode(t, err); code != "VALIDATION_FAILED" {
			t.Errorf("amount %q: code = %q, want VALIDATION_FAILED", amount, code)
		}
	}
}

func TestDecideBidRecordsApproval(t *testing.T) {
	bids, listings, activityRepo := newBidFixture(t)
	owner := testUser(uuid.NewString())
	post, err := listings.CreateCargoPost(context.Background(), owner, validCargoInput())
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	bid, err := bids.PlaceBid(context.Background(), testUser(uuid.NewString()), post.ID, BidInput{Amount: "1500"})
	if err != nil {
		t.Fatalf("place bid: %v", err)
	}

	decided, err := bids.Decide(context.Background(), owner, bid.ID, true)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if decided.Status != domain.BidStatusAccepted {
		t.Errorf("status = %q, want accepted", decided.Status)
	}
	if decided.DecidedAt == nil {
		t.Error("decidedAt should be set")
	}

	var approval *domain.Activity
	for i := range activityRepo.entries {
		if activityRepo.entries[i].Type == domain.ActivityTypeApproval {
			approval = &activityRepo.entries[i]
		}
	}
	if approval == nil {
		t.Fatal("expected an approval activity entry")
	}
	if approval.Action != "bid accepted" {
		t.Errorf("action = %q, want bid accepted", approval.Action)
	}
}

func TestDecideBidTwiceConflicts(t *testing.T) {
	bids, listings, _ := newBidFixture(t)
	owner := testUser(uuid.NewString())
	post, err := listings.CreateCargoPost(context.Background(), owner, validCargoInput())
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	bid, err := bids.PlaceBid(context.Background(), testUser(uuid.NewString()), post.ID, BidInput{Amount: "1500"})
	if err != nil {
		t.Fatalf("place bid: %v", err)
	}

	if _, err := bids.Decide(context.Background(), owner, bid.ID, false); err != nil {
		t.Fatalf("first decide: %v", err)
	}
	_, err = bids.Decide(context.Background(), owner, bid.ID, true)
	if code := domainCode(t, err); code != "CONFLICT" {
		t.Fatalf("code = %q, want CONFLICT", code)
	}
}

func TestDecideBidNonOwnerForbidden(t *testing.T) {
	bids, listings, _ := newBidFixture(t)
	owner := testUser(uuid.NewString())
	post, err := listings.CreateCargoPost(context.Background(), owner, validCargoInput())
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	bidder := testUser(uuid.NewString())
	bid, err := bids.PlaceBid(context.Background(), bidder, post.ID, BidInput{Amount: "1500"})
	if err != nil {
		t.Fatalf("place bid: %v", err)
	}

	_, err = bids.Decide(context.Background(), bidder, bid.ID, true)
	if code := domainCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("code = %q, want FORBIDDEN", code)
	}
}
