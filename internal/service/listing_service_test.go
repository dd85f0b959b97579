package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/freight-board/internal/domain"
	apperrors "github.com/spec-kit/freight-board/pkg/util"
)

func newListingFixture() (*ListingService, *fakeCargoRepo, *fakeTruckRepo, *fakeActivityRepo, *fakeDispatcher) {
	cargo := newFakeCargoRepo()
	trucks := newFakeTruckRepo()
	users := newFakeUserRepo()
	activityRepo := newFakeActivityRepo()
	activities := NewActivityService(activityRepo, zap.NewNop())
	dispatcher := &fakeDispatcher{}
	svc := NewListingService(cargo, trucks, users, activities, dispatcher)
	return svc, cargo, trucks, activityRepo, dispatcher
}

func testUser(id string) *domain.User {
	return &domain.User{ID: id, Name: "Test User", Email: "test@example.com", Role: domain.RoleUser}
}

func validCargoInput() CargoPostInput {
	return CargoPostInput{
		LoadingCity:   "Istanbul",
		UnloadingCity: "Ankara",
		LoadingDate:   time.Now(),
		UnloadingDate: time.Now().Add(48 * time.Hour),
		VehicleType:   "tir",
		Weight:        "1200.5",
	}
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	return de.Code
}

func TestCreateCargoPostForcesStatusAndOwner(t *testing.T) {
	svc, _, _, _, dispatcher := newListingFixture()
	owner := testUser(uuid.NewString())

	post, err := svc.CreateCargoPost(context.Background(), owner, validCargoInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if post.Status != domain.CargoStatusActive {
		t.Errorf("status = %q, want active", post.Status)
	}
	if post.CreatedBy != owner.ID {
		t.Errorf("createdBy = %q, want %q", post.CreatedBy, owner.ID)
	}
	if !strings.HasPrefix(post.ReferenceKey, "CRG-") {
		t.Errorf("reference key = %q, want CRG- prefix", post.ReferenceKey)
	}
	if len(dispatcher.events) != 1 {
		t.Errorf("published events = %d, want 1", len(dispatcher.events))
	}
}

func TestCreateCargoPostDefaultsAddressesToCity(t *testing.T) {
	svc, _, _, _, _ := newListingFixture()
	input := validCargoInput()
	input.LoadingAddress = ""
	input.UnloadingAddress = "  "

	post, err := svc.CreateCargoPost(context.Background(), testUser(uuid.NewString()), input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if post.LoadingAddress != "Istanbul" {
		t.Errorf("loading address = %q, want Istanbul", post.LoadingAddress)
	}
	if post.UnloadingAddress != "Ankara" {
		t.Errorf("unloading address = %q, want Ankara", post.UnloadingAddress)
	}
}

func TestCreateCargoPostRejectsMalformedNumbers(t *testing.T) {
	svc, _, _, _, _ := newListingFixture()
	input := validCargoInput()
	input.Weight = "heavy"
	input.PalletCount = "many"

	_, err := svc.CreateCargoPost(context.Background(), testUser(uuid.NewString()), input)
	if code := domainCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("code = %q, want VALIDATION_FAILED", code)
	}
	var de *apperrors.DomainError
	errors.As(err, &de)
	if _, ok := de.Details["weight"]; !ok {
		t.Errorf("details missing weight: %v", de.Details)
	}
	if _, ok := de.Details["palletCount"]; !ok {
		t.Errorf("details missing palletCount: %v", de.Details)
	}
}

func TestCreateCargoPostRequiresCoreFields(t *testing.T) {
	svc, _, _, _, _ := newListingFixture()
	_, err := svc.CreateCargoPost(context.Background(), testUser(uuid.NewString()), CargoPostInput{})
	if code := domainCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("code = %q, want VALIDATION_FAILED", code)
	}
	var de *apperrors.DomainError
	errors.As(err, &de)
	for _, field := range []string{"loadingCity", "unloadingCity", "vehicleType", "loadingDate", "unloadingDate"} {
		if _, ok := de.Details[field]; !ok {
			t.Errorf("details missing %s: %v", field, de.Details)
		}
	}
}

func TestUpdateCargoPostNonOwnerForbidden(t *testing.T) {
	svc, _, _, _, _ := newListingFixture()
	owner := testUser(uuid.NewString())
	post, err := svc.CreateCargoPost(context.Background(), owner, validCargoInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	city := "Izmir"
	_, err = svc.UpdateCargoPost(context.Background(), testUser(uuid.NewString()), post.ID, CargoPostPatch{LoadingCity: &city})
	if code := domainCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("code = %q, want FORBIDDEN", code)
	}
}

func TestUpdateCargoPostMissingIsNotFound(t *testing.T) {
	// existence is checked before ownership, so a stranger probing a random
	// id gets NotFound, never Forbidden
	svc, _, _, _, _ := newListingFixture()
	city := "Izmir"
	_, err := svc.UpdateCargoPost(context.Background(), testUser(uuid.NewString()), uuid.NewString(), CargoPostPatch{LoadingCity: &city})
	if code := domainCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("code = %q, want NOT_FOUND", code)
	}
}

func TestUpdateCargoPostStatusTransitionsUnrestricted(t *testing.T) {
	svc, _, _, _, _ := newListingFixture()
	owner := testUser(uuid.NewString())
	post, err := svc.CreateCargoPost(context.Background(), owner, validCargoInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, status := range []string{"completed", "active", "cancelled", "inactive"} {
		updated, err := svc.UpdateCargoPost(context.Background(), owner, post.ID, CargoPostPatch{Status: &status})
		if err != nil {
			t.Fatalf("set status %q: %v", status, err)
		}
		if string(updated.Status) != status {
			t.Errorf("status = %q, want %q", updated.Status, status)
		}
	}

	bogus := "archived"
	_, err = svc.UpdateCargoPost(context.Background(), owner, post.ID, CargoPostPatch{Status: &bogus})
	if code := domainCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("code = %q, want VALIDATION_FAILED", code)
	}
}

func TestDeleteCargoPostMissingIsNotFound(t *testing.T) {
	svc, _, _, _, _ := newListingFixture()
	err := svc.DeleteCargoPost(context.Background(), testUser(uuid.NewString()), uuid.NewString())
	if code := domainCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("code = %q, want NOT_FOUND", code)
	}
}

func TestDeleteCargoPostNonOwnerForbidden(t *testing.T) {
	svc, cargo, _, _, _ := newListingFixture()
	owner := testUser(uuid.NewString())
	post, err := svc.CreateCargoPost(context.Background(), owner, validCargoInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = svc.DeleteCargoPost(context.Background(), testUser(uuid.NewString()), post.ID)
	if code := domainCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("code = %q, want FORBIDDEN", code)
	}
	if _, err := cargo.GetByID(context.Background(), post.ID); err != nil {
		t.Errorf("listing should survive a forbidden delete: %v", err)
	}
}

func TestGetCargoPostMalformedID(t *testing.T) {
	svc, _, _, _, _ := newListingFixture()
	_, _, err := svc.GetCargoPost(context.Background(), "not-a-uuid")
	if code := domainCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("code = %q, want VALIDATION_FAILED", code)
	}
}

func TestSearchSentinelsAreEquivalent(t *testing.T) {
	svc, cargo, _, _, _ := newListingFixture()

	if _, err := svc.SearchCargoPosts(context.Background(), SearchCriteria{}); err != nil {
		t.Fatalf("empty search: %v", err)
	}
	empty := *cargo.lastFilter

	criteria := SearchCriteria{Search: "all", VehicleType: "all", Status: "all", DateRange: "all"}
	if _, err := svc.SearchCargoPosts(context.Background(), criteria); err != nil {
		t.Fatalf("all-sentinel search: %v", err)
	}
	sentinel := *cargo.lastFilter

	if empty.SearchTerm != sentinel.SearchTerm || empty.VehicleType != sentinel.VehicleType ||
		empty.Status != sentinel.Status || (empty.CreatedFrom == nil) != (sentinel.CreatedFrom == nil) {
		t.Errorf("empty criteria %+v and all sentinels %+v should build the same filter", empty, sentinel)
	}
}

func TestSearchDateRanges(t *testing.T) {
	svc, cargo, _, _, _ := newListingFixture()

	if _, err := svc.SearchCargoPosts(context.Background(), SearchCriteria{DateRange: "today"}); err != nil {
		t.Fatalf("today search: %v", err)
	}
	from := cargo.lastFilter.CreatedFrom
	if from == nil {
		t.Fatal("today range should set a lower bound")
	}
	if from.Hour() != 0 || from.Minute() != 0 || from.Second() != 0 {
		t.Errorf("today bound = %v, want midnight", from)
	}

	_, err := svc.SearchCargoPosts(context.Background(), SearchCriteria{DateRange: "fortnight"})
	if code := domainCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("code = %q, want VALIDATION_FAILED", code)
	}
}

func TestSearchUnknownStatusRejected(t *testing.T) {
	svc, _, _, _, _ := newListingFixture()
	_, err := svc.SearchCargoPosts(context.Background(), SearchCriteria{Status: "archived"})
	if code := domainCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("code = %q, want VALIDATION_FAILED", code)
	}
}

func TestCreateTruckPostRequiresCapacity(t *testing.T) {
	svc, _, _, _, _ := newListingFixture()
	input := TruckPostInput{
		Title:           "Mercedes Actros",
		CurrentLocation: "Bursa",
		Destination:     "Antalya",
		TruckType:       "tir",
		Description:     "available this week",
		AvailableDate:   time.Now(),
	}
	_, err := svc.CreateTruckPost(context.Background(), testUser(uuid.NewString()), input)
	if code := domainCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("code = %q, want VALIDATION_FAILED", code)
	}

	input.Capacity = "24.5"
	post, err := svc.CreateTruckPost(context.Background(), testUser(uuid.NewString()), input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if post.Capacity != 24.5 {
		t.Errorf("capacity = %v, want 24.5", post.Capacity)
	}
	if !strings.HasPrefix(post.ReferenceKey, "TRK-") {
		t.Errorf("reference key = %q, want TRK- prefix", post.ReferenceKey)
	}
}

func TestListingMutationsAuditQuietly(t *testing.T) {
	svc, _, _, activityRepo, _ := newListingFixture()
	activityRepo.failErr = errors.New("db down")

	// a failing audit write must not fail the mutation itself
	post, err := svc.CreateCargoPost(context.Background(), testUser(uuid.NewString()), validCargoInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if post.ID == "" {
		t.Error("post should be persisted despite audit failure")
	}
}

func TestCreateCargoPostRecordsActivity(t *testing.T) {
	svc, _, _, activityRepo, _ := newListingFixture()
	owner := testUser(uuid.NewString())
	if _, err := svc.CreateCargoPost(context.Background(), owner, validCargoInput()); err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(activityRepo.entries) != 1 {
		t.Fatalf("activities = %d, want 1", len(activityRepo.entries))
	}
	entry := activityRepo.entries[0]
	if entry.Type != domain.ActivityTypeCargo {
		t.Errorf("type = %q, want %q", entry.Type, domain.ActivityTypeCargo)
	}
	if entry.UserName != owner.Name {
		t.Errorf("userName = %q, want snapshot %q", entry.UserName, owner.Name)
	}
}
