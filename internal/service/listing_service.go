package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/freight-board/internal/domain"
	"github.com/spec-kit/freight-board/internal/events"
	"github.com/spec-kit/freight-board/internal/repository"
	apperrors "github.com/spec-kit/freight-board/pkg/util"
)

// OwnerContact is the owner snapshot attached to listing detail views.
type OwnerContact struct {
	Name  string
	Email string
	Phone *string
}

// CargoPostInput describes cargo listing creation. Numeric fields arrive as
// raw form strings and are parsed here.
type CargoPostInput struct {
	LoadingCity      string
	LoadingAddress   string
	UnloadingCity    string
	UnloadingAddress string
	LoadingDate      time.Time
	UnloadingDate    time.Time
	VehicleType      string
	Description      *string
	Weight           string
	Volume           string
	Price            string
	PalletCount      string
	PalletType       *string
}

// CargoPostPatch describes a partial cargo listing update. Nil means "leave
// unchanged".
type CargoPostPatch struct {
	LoadingCity      *string
	LoadingAddress   *string
	UnloadingCity    *string
	UnloadingAddress *string
	LoadingDate      *time.Time
	UnloadingDate    *time.Time
	VehicleType      *string
	Description      *string
	Status           *string
	Weight           *string
	Volume           *string
	Price            *string
	PalletCount      *string
	PalletType       *string
}

// TruckPostInput describes truck listing creation.
type TruckPostInput struct {
	Title           string
	CurrentLocation string
	Destination     string
	TruckType       string
	Capacity        string
	Price           string
	Description     string
	AvailableDate   time.Time
}

// TruckPostPatch describes a partial truck listing update.
type TruckPostPatch struct {
	Title           *string
	CurrentLocation *string
	Destination     *string
	TruckType       *string
	Capacity        *string
	Price           *string
	Description     *string
	AvailableDate   *time.Time
	Status          *string
}

// SearchCriteria captures the public listing search surface. Empty string
// and "all" are equivalent no-filter sentinels for every field.
type SearchCriteria struct {
	Search      string
	VehicleType string
	Status      string
	DateRange   string
	Limit       int
	Offset      int
}

// ListingService coordinates cargo and truck listing workflows.
type ListingService struct {
	cargo      repository.CargoPostRepository
	trucks     repository.TruckPostRepository
	users      repository.UserRepository
	activities *ActivityService
	dispatcher events.Dispatcher
}

// NewListingService constructs the service.
func NewListingService(cargo repository.CargoPostRepository, trucks repository.TruckPostRepository, users repository.UserRepository, activities *ActivityService, dispatcher events.Dispatcher) *ListingService {
	return &ListingService{
		cargo:      cargo,
		trucks:     trucks,
		users:      users,
		activities: activities,
		dispatcher: dispatcher,
	}
}

// CreateCargoPost validates and persists a cargo listing. Status and owner
// are forced regardless of caller input; missing addresses fall back to the
// corresponding city.
func (s *ListingService) CreateCargoPost(ctx context.Context, owner *domain.User, input CargoPostInput) (*domain.CargoPost, error) {
	details := map[string]any{}
	requireField(details, "loadingCity", input.LoadingCity)
	requireField(details, "unloadingCity", input.UnloadingCity)
	requireField(details, "vehicleType", input.VehicleType)
	if input.LoadingDate.IsZero() {
		details["loadingDate"] = "required"
	}
	if input.UnloadingDate.IsZero() {
		details["unloadingDate"] = "required"
	}

	weight := parseOptionalFloat(details, "weight", input.Weight)
	volume := parseOptionalFloat(details, "volume", input.Volume)
	price := parseOptionalFloat(details, "price", input.Price)
	palletCount := parseOptionalInt(details, "palletCount", input.PalletCount)

	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid cargo post", details)
	}

	post := &domain.CargoPost{
		ReferenceKey:     generateReferenceKey("CRG"),
		LoadingCity:      strings.TrimSpace(input.LoadingCity),
		LoadingAddress:   defaultToCity(input.LoadingAddress, input.LoadingCity),
		UnloadingCity:    strings.TrimSpace(input.UnloadingCity),
		UnloadingAddress: defaultToCity(input.UnloadingAddress, input.UnloadingCity),
		LoadingDate:      input.LoadingDate,
		UnloadingDate:    input.UnloadingDate,
		VehicleType:      strings.TrimSpace(input.VehicleType),
		Description:      input.Description,
		Status:           domain.CargoStatusActive,
		CreatedBy:        owner.ID,
		Weight:           weight,
		Volume:           volume,
		Price:            price,
		PalletCount:      palletCount,
		PalletType:       input.PalletType,
	}
	if err := s.cargo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.activities.RecordQuiet(ctx, owner, "cargo post created", domain.ActivityTypeCargo,
		map[string]any{"reference": post.ReferenceKey})
	publish(ctx, s.dispatcher, events.Event{
		Type:    events.EventListingCreated,
		ActorID: owner.ID,
		Payload: events.ListingCreatedPayload{
			Kind:        domain.ListingKindCargo,
			ListingID:   post.ID,
			Reference:   post.ReferenceKey,
			Origin:      post.LoadingCity,
			Destination: post.UnloadingCity,
		},
	})
	return post, nil
}

// GetCargoPost fetches a cargo listing with its owner's contact snapshot.
func (s *ListingService) GetCargoPost(ctx context.Context, id string) (*domain.CargoPost, *OwnerContact, error) {
	if err := validateID(id); err != nil {
		return nil, nil, err
	}
	post, err := s.cargo.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewNotFound("cargo post", nil)
		}
		return nil, nil, err
	}
	contact, err := s.ownerContact(ctx, post.CreatedBy)
	if err != nil {
		return nil, nil, err
	}
	return post, contact, nil
}

// UpdateCargoPost applies a partial update after the ownership check.
func (s *ListingService) UpdateCargoPost(ctx context.Context, caller *domain.User, id string, patch CargoPostPatch) (*domain.CargoPost, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	post, err := s.cargo.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("cargo post", nil)
		}
		return nil, err
	}
	if post.CreatedBy != caller.ID {
		return nil, apperrors.NewForbidden("only the owner may modify this listing")
	}

	details := map[string]any{}
	applyString(&post.LoadingCity, patch.LoadingCity)
	applyString(&post.LoadingAddress, patch.LoadingAddress)
	applyString(&post.UnloadingCity, patch.UnloadingCity)
	applyString(&post.UnloadingAddress, patch.UnloadingAddress)
	applyString(&post.VehicleType, patch.VehicleType)
	if patch.LoadingDate != nil {
		post.LoadingDate = *patch.LoadingDate
	}
	if patch.UnloadingDate != nil {
		post.UnloadingDate = *patch.UnloadingDate
	}
	if patch.Description != nil {
		post.Description = patch.Description
	}
	if patch.PalletType != nil {
		post.PalletType = patch.PalletType
	}
	if patch.Status != nil {
		status := domain.CargoStatus(*patch.Status)
		if !status.Valid() {
			details["status"] = "unknown value"
		} else {
			// no transition rules: any valid value is accepted
			post.Status = status
		}
	}
	if patch.Weight != nil {
		post.Weight = parseOptionalFloat(details, "weight", *patch.Weight)
	}
	if patch.Volume != nil {
		post.Volume = parseOptionalFloat(details, "volume", *patch.Volume)
	}
	if patch.Price != nil {
		post.Price = parseOptionalFloat(details, "price", *patch.Price)
	}
	if patch.PalletCount != nil {
		post.PalletCount = parseOptionalInt(details, "palletCount", *patch.PalletCount)
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid cargo post", details)
	}

	if err := s.cargo.Update(ctx, post); err != nil {
		return nil, err
	}
	s.activities.RecordQuiet(ctx, caller, "cargo post updated", domain.ActivityTypeCargo,
		map[string]any{"reference": post.ReferenceKey})
	return post, nil
}

// DeleteCargoPost removes a listing after the ownership check. A missing id
// is NotFound; the underlying delete primitive stays idempotent.
func (s *ListingService) DeleteCargoPost(ctx context.Context, caller *domain.User, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	post, err := s.cargo.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("cargo post", nil)
		}
		return err
	}
	if post.CreatedBy != caller.ID {
		return apperrors.NewForbidden("only the owner may delete this listing")
	}
	if _, err := s.cargo.Delete(ctx, id); err != nil {
		return err
	}
	s.activities.RecordQuiet(ctx, caller, "cargo post deleted", domain.ActivityTypeCargo,
		map[string]any{"reference": post.ReferenceKey})
	return nil
}

// SearchCargoPosts runs the public filtered search, newest first.
func (s *ListingService) SearchCargoPosts(ctx context.Context, criteria SearchCriteria) ([]domain.CargoPost, error) {
	filter, err := buildFilter(criteria)
	if err != nil {
		return nil, err
	}
	if filter.Status != "" && !domain.CargoStatus(filter.Status).Valid() {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": filter.Status})
	}
	return s.cargo.ListWithFilter(ctx, filter)
}

// CreateTruckPost validates and persists a truck listing.
func (s *ListingService) CreateTruckPost(ctx context.Context, owner *domain.User, input TruckPostInput) (*domain.TruckPost, error) {
	details := map[string]any{}
	requireField(details, "title", input.Title)
	requireField(details, "currentLocation", input.CurrentLocation)
	requireField(details, "destination", input.Destination)
	requireField(details, "truckType", input.TruckType)
	requireField(details, "description", input.Description)
	if input.AvailableDate.IsZero() {
		details["availableDate"] = "required"
	}

	capacity := parseRequiredFloat(details, "capacity", input.Capacity)
	price := parseOptionalFloat(details, "price", input.Price)

	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid truck post", details)
	}

	post := &domain.TruckPost{
		ReferenceKey:    generateReferenceKey("TRK"),
		Title:           strings.TrimSpace(input.Title),
		CurrentLocation: strings.TrimSpace(input.CurrentLocation),
		Destination:     strings.TrimSpace(input.Destination),
		TruckType:       strings.TrimSpace(input.TruckType),
		Capacity:        capacity,
		Price:           price,
		Description:     strings.TrimSpace(input.Description),
		AvailableDate:   input.AvailableDate,
		Status:          domain.TruckStatusActive,
		CreatedBy:       owner.ID,
	}
	if err := s.trucks.Create(ctx, post); err != nil {
		return nil, err
	}

	s.activities.RecordQuiet(ctx, owner, "truck post created", domain.ActivityTypeTruck,
		map[string]any{"reference": post.ReferenceKey})
	publish(ctx, s.dispatcher, events.Event{
		Type:    events.EventListingCreated,
		ActorID: owner.ID,
		Payload: events.ListingCreatedPayload{
			Kind:        domain.ListingKindTruck,
			ListingID:   post.ID,
			Reference:   post.ReferenceKey,
			Origin:      post.CurrentLocation,
			Destination: post.Destination,
		},
	})
	return post, nil
}

// GetTruckPost fetches a truck listing with its owner's contact snapshot.
func (s *ListingService) GetTruckPost(ctx context.Context, id string) (*domain.TruckPost, *OwnerContact, error) {
	if err := validateID(id); err != nil {
		return nil, nil, err
	}
	post, err := s.trucks.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewNotFound("truck post", nil)
		}
		return nil, nil, err
	}
	contact, err := s.ownerContact(ctx, post.CreatedBy)
	if err != nil {
		return nil, nil, err
	}
	return post, contact, nil
}

// UpdateTruckPost applies a partial update after the ownership check.
func (s *ListingService) UpdateTruckPost(ctx context.Context, caller *domain.User, id string, patch TruckPostPatch) (*domain.TruckPost, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	post, err := s.trucks.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("truck post", nil)
		}
		return nil, err
	}
	if post.CreatedBy != caller.ID {
		return nil, apperrors.NewForbidden("only the owner may modify this listing")
	}

	details := map[string]any{}
	applyString(&post.Title, patch.Title)
	applyString(&post.CurrentLocation, patch.CurrentLocation)
	applyString(&post.Destination, patch.Destination)
	applyString(&post.TruckType, patch.TruckType)
	applyString(&post.Description, patch.Description)
	if patch.AvailableDate != nil {
		post.AvailableDate = *patch.AvailableDate
	}
	if patch.Status != nil {
		status := domain.TruckStatus(*patch.Status)
		if !status.Valid() {
			details["status"] = "unknown value"
		} else {
			post.Status = status
		}
	}
	if patch.Capacity != nil {
		post.Capacity = parseRequiredFloat(details, "capacity", *patch.Capacity)
	}
	if patch.Price != nil {
		post.Price = parseOptionalFloat(details, "price", *patch.Price)
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid truck post", details)
	}

	if err := s.trucks.Update(ctx, post); err != nil {
		return nil, err
	}
	s.activities.RecordQuiet(ctx, caller, "truck post updated", domain.ActivityTypeTruck,
		map[string]any{"reference": post.ReferenceKey})
	return post, nil
}

// DeleteTruckPost removes a listing after the ownership check.
func (s *ListingService) DeleteTruckPost(ctx context.Context, caller *domain.User, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	post, err := s.trucks.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("truck post", nil)
		}
		return err
	}
	if post.CreatedBy != caller.ID {
		return apperrors.NewForbidden("only the owner may delete this listing")
	}
	if _, err := s.trucks.Delete(ctx, id); err != nil {
		return err
	}
	s.activities.RecordQuiet(ctx, caller, "truck post deleted", domain.ActivityTypeTruck,
		map[string]any{"reference": post.ReferenceKey})
	return nil
}

// SearchTruckPosts runs the public filtered search, newest first.
func (s *ListingService) SearchTruckPosts(ctx context.Context, criteria SearchCriteria) ([]domain.TruckPost, error) {
	filter, err := buildFilter(criteria)
	if err != nil {
		return nil, err
	}
	if filter.Status != "" && !domain.TruckStatus(filter.Status).Valid() {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": filter.Status})
	}
	return s.trucks.ListWithFilter(ctx, filter)
}

func (s *ListingService) ownerContact(ctx context.Context, ownerID string) (*OwnerContact, error) {
	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		if err == pgx.ErrNoRows {
			// owner record missing; listing stays visible without contact
			return &OwnerContact{}, nil
		}
		return nil, err
	}
	return &OwnerContact{Name: owner.Name, Email: owner.Email, Phone: owner.Phone}, nil
}

func buildFilter(criteria SearchCriteria) (repository.ListingFilter, error) {
	filter := repository.ListingFilter{
		SearchTerm:  normalizeSentinel(criteria.Search),
		VehicleType: normalizeSentinel(criteria.VehicleType),
		Status:      normalizeSentinel(criteria.Status),
		Limit:       criteria.Limit,
		Offset:      criteria.Offset,
	}
	from, err := dateRangeStart(normalizeSentinel(criteria.DateRange), time.Now())
	if err != nil {
		return repository.ListingFilter{}, err
	}
	filter.CreatedFrom = from
	return filter, nil
}

// normalizeSentinel maps the UI's "no filter" sentinels to the empty string.
func normalizeSentinel(val string) string {
	val = strings.TrimSpace(val)
	if strings.EqualFold(val, "all") {
		return ""
	}
	return val
}

// dateRangeStart resolves a relative range name to its lower bound.
func dateRangeStart(name string, now time.Time) (*time.Time, error) {
	switch name {
	case "":
		return nil, nil
	case "today":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return &start, nil
	case "week":
		start := now.AddDate(0, 0, -7)
		return &start, nil
	case "month":
		start := now.AddDate(0, -1, 0)
		return &start, nil
	default:
		return nil, apperrors.NewValidationError("unknown date range", map[string]any{"dateRange": name})
	}
}

func defaultToCity(address, city string) string {
	address = strings.TrimSpace(address)
	if address == "" {
		return strings.TrimSpace(city)
	}
	return address
}

func applyString(target *string, patch *string) {
	if patch != nil {
		*target = strings.TrimSpace(*patch)
	}
}

func requireField(details map[string]any, name, value string) {
	if strings.TrimSpace(value) == "" {
		details[name] = "required"
	}
}

func parseOptionalFloat(details map[string]any, name, raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		details[name] = "not a number"
		return nil
	}
	return &parsed
}

func parseRequiredFloat(details map[string]any, name, raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		details[name] = "required"
		return 0
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		details[name] = "not a number"
		return 0
	}
	return parsed
}

func parseOptionalInt(details map[string]any, name, raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		details[name] = "not a number"
		return nil
	}
	return &parsed
}

// validateID rejects malformed identifiers before they reach the store.
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewValidationError("malformed identifier", map[string]any{"id": id})
	}
	return nil
}

func generateReferenceKey(prefix string) string {
	return prefix + "-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func publish(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = dispatcher.Publish(ctx, event)
}
