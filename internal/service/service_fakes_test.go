package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/freight-board/internal/domain"
	"github.com/spec-kit/freight-board/internal/events"
	"github.com/spec-kit/freight-board/internal/repository"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	// mirrors the column default: a fresh account counts as active
	user.LastActiveAt = user.CreatedAt
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == repository.NormalizeEmail(email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) TouchLastActive(_ context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		user.LastActiveAt = at
	}
	return nil
}

func (f *fakeUserRepo) CountActiveSince(_ context.Context, since time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, user := range f.users {
		if !user.LastActiveAt.Before(since) {
			count++
		}
	}
	return count, nil
}

type fakeCargoRepo struct {
	mu          sync.Mutex
	posts       map[string]*domain.CargoPost
	order       []string
	lastFilter  *repository.ListingFilter
	lastOwnerID *string
	monthly     []repository.MonthCount
	cities      []repository.CityCount
}

func newFakeCargoRepo() *fakeCargoRepo {
	return &fakeCargoRepo{posts: map[string]*domain.CargoPost{}}
}

func (f *fakeCargoRepo) Create(_ context.Context, post *domain.CargoPost) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post.ID = uuid.NewString()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	clone := *post
	f.posts[post.ID] = &clone
	f.order = append(f.order, post.ID)
	return nil
}

func (f *fakeCargoRepo) Update(_ context.Context, post *domain.CargoPost) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[post.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *post
	f.posts[post.ID] = &clone
	return nil
}

func (f *fakeCargoRepo) GetByID(_ context.Context, id string) (*domain.CargoPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *post
	return &clone, nil
}

func (f *fakeCargoRepo) Delete(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return false, nil
	}
	delete(f.posts, id)
	return true, nil
}

func (f *fakeCargoRepo) ListWithFilter(_ context.Context, filter repository.ListingFilter) ([]domain.CargoPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = &filter
	result := make([]domain.CargoPost, 0, len(f.order))
	for i := len(f.order) - 1; i >= 0; i-- {
		if post, ok := f.posts[f.order[i]]; ok {
			result = append(result, *post)
		}
	}
	return result, nil
}

func (f *fakeCargoRepo) CountOpen(_ context.Context, ownerID *string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastOwnerID = ownerID
	var count int64
	for _, post := range f.posts {
		if post.Status == domain.CargoStatusCompleted {
			continue
		}
		if ownerID != nil && post.CreatedBy != *ownerID {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeCargoRepo) MonthlyCounts(_ context.Context, _ time.Time, _ *string) ([]repository.MonthCount, error) {
	return f.monthly, nil
}

func (f *fakeCargoRepo) CityCounts(_ context.Context, _ *string, limit int) ([]repository.CityCount, error) {
	if limit < len(f.cities) {
		return f.cities[:limit], nil
	}
	return f.cities, nil
}

type fakeTruckRepo struct {
	mu         sync.Mutex
	posts      map[string]*domain.TruckPost
	order      []string
	lastFilter *repository.ListingFilter
	monthly    []repository.MonthCount
}

func newFakeTruckRepo() *fakeTruckRepo {
	return &fakeTruckRepo{posts: map[string]*domain.TruckPost{}}
}

func (f *fakeTruckRepo) Create(_ context.Context, post *domain.TruckPost) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post.ID = uuid.NewString()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	clone := *post
	f.posts[post.ID] = &clone
	f.order = append(f.order, post.ID)
	return nil
}

func (f *fakeTruckRepo) Update(_ context.Context, post *domain.TruckPost) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[post.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *post
	f.posts[post.ID] = &clone
	return nil
}

func (f *fakeTruckRepo) GetByID(_ context.Context, id string) (*domain.TruckPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *post
	return &clone, nil
}

func (f *fakeTruckRepo) Delete(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return false, nil
	}
	delete(f.posts, id)
	return true, nil
}

func (f *fakeTruckRepo) ListWithFilter(_ context.Context, filter repository.ListingFilter) ([]domain.TruckPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = &filter
	result := make([]domain.TruckPost, 0, len(f.order))
	for i := len(f.order) - 1; i >= 0; i-- {
		if post, ok := f.posts[f.order[i]]; ok {
			result = append(result, *post)
		}
	}
	return result, nil
}

func (f *fakeTruckRepo) CountOpen(_ context.Context, ownerID *string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, post := range f.posts {
		if post.Status == domain.TruckStatusCompleted {
			continue
		}
		if ownerID != nil && post.CreatedBy != *ownerID {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeTruckRepo) MonthlyCounts(_ context.Context, _ time.Time, _ *string) ([]repository.MonthCount, error) {
	return f.monthly, nil
}

type fakeActivityRepo struct {
	mu      sync.Mutex
	entries []domain.Activity
	failErr error
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{}
}

func (f *fakeActivityRepo) Create(_ context.Context, activity *domain.Activity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return f.failErr
	}
	activity.ID = uuid.NewString()
	f.entries = append(f.entries, *activity)
	return nil
}

func (f *fakeActivityRepo) ListRecent(_ context.Context, userID *string, limit int) ([]domain.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]domain.Activity, 0, limit)
	for i := len(f.entries) - 1; i >= 0 && len(result) < limit; i-- {
		if userID != nil && f.entries[i].UserID != *userID {
			continue
		}
		result = append(result, f.entries[i])
	}
	return result, nil
}

type fakeBidRepo struct {
	mu   sync.Mutex
	bids map[string]*domain.Bid
}

func newFakeBidRepo() *fakeBidRepo {
	return &fakeBidRepo{bids: map[string]*domain.Bid{}}
}

func (f *fakeBidRepo) Create(_ context.Context, bid *domain.Bid) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	bid.ID = uuid.NewString()
	bid.CreatedAt = time.Now()
	clone := *bid
	f.bids[bid.ID] = &clone
	return nil
}

func (f *fakeBidRepo) GetByID(_ context.Context, id string) (*domain.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bid, ok := f.bids[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *bid
	return &clone, nil
}

func (f *fakeBidRepo) ListByCargoPost(_ context.Context, cargoPostID string) ([]domain.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []domain.Bid{}
	for _, bid := range f.bids {
		if bid.CargoPostID == cargoPostID {
			result = append(result, *bid)
		}
	}
	return result, nil
}

func (f *fakeBidRepo) ListByBidder(_ context.Context, bidderID string) ([]domain.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []domain.Bid{}
	for _, bid := range f.bids {
		if bid.BidderID == bidderID {
			result = append(result, *bid)
		}
	}
	return result, nil
}

func (f *fakeBidRepo) UpdateStatus(_ context.Context, id string, status domain.BidStatus, decidedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	bid, ok := f.bids[id]
	if !ok {
		return pgx.ErrNoRows
	}
	bid.Status = status
	bid.DecidedAt = &decidedAt
	return nil
}

type fakeDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (f *fakeDispatcher) Publish(_ context.Context, event events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeDispatcher) Subscribe(events.EventType, events.EventHandler) {}
