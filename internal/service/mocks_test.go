package service

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/events"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	result := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		result = append(result, *user)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FullName < result[j].FullName })
	return result, nil
}

type fakeItemCodeRepo struct {
	codes map[int64]*domain.ItemCode
}

func newFakeItemCodeRepo(codes ...domain.ItemCode) *fakeItemCodeRepo {
	repo := &fakeItemCodeRepo{codes: map[int64]*domain.ItemCode{}}
	for i := range codes {
		repo.codes[codes[i].ID] = &codes[i]
	}
	return repo
}

func (r *fakeItemCodeRepo) GetByID(_ context.Context, id int64) (*domain.ItemCode, error) {
	code, ok := r.codes[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *code
	return &clone, nil
}

func (r *fakeItemCodeRepo) List(_ context.Context) ([]domain.ItemCode, error) {
	result := make([]domain.ItemCode, 0, len(r.codes))
	for _, code := range r.codes {
		result = append(result, *code)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Codigo < result[j].Codigo })
	return result, nil
}

type fakeInventoryRepo struct {
	items  map[int64]*domain.InventoryItem
	nextID int64
	codes  *fakeItemCodeRepo
	users  *fakeUserRepo
}

func newFakeInventoryRepo(codes *fakeItemCodeRepo, users *fakeUserRepo) *fakeInventoryRepo {
	return &fakeInventoryRepo{items: map[int64]*domain.InventoryItem{}, codes: codes, users: users}
}

func (r *fakeInventoryRepo) Create(_ context.Context, item *domain.InventoryItem) error {
	for _, existing := range r.items {
		if existing.SN == item.SN {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	r.nextID++
	item.ID = r.nextID
	item.FechaIngreso = time.Now()
	clone := *item
	r.items[item.ID] = &clone
	return nil
}

func (r *fakeInventoryRepo) Update(_ context.Context, item *domain.InventoryItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return pgx.ErrNoRows
	}
	for id, existing := range r.items {
		if id != item.ID && existing.SN == item.SN {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	clone := *item
	r.items[item.ID] = &clone
	return nil
}

func (r *fakeInventoryRepo) GetByID(_ context.Context, id int64) (*domain.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *item
	return &clone, nil
}

func (r *fakeInventoryRepo) GetRecord(ctx context.Context, id int64) (*domain.InventoryRecord, error) {
	item, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.buildRecord(ctx, item)
}

func (r *fakeInventoryRepo) List(ctx context.Context) ([]domain.InventoryRecord, error) {
	ids := make([]int64, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	result := make([]domain.InventoryRecord, 0, len(ids))
	for _, id := range ids {
		record, err := r.GetRecord(ctx, id)
		if err != nil {
			return nil, err
		}
		result = append(result, *record)
	}
	return result, nil
}

func (r *fakeInventoryRepo) ListByAssignee(ctx context.Context, userID int64) ([]domain.InventoryRecord, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]domain.InventoryRecord, 0)
	for _, record := range all {
		if record.Item.AssignedTo(userID) {
			result = append(result, record)
		}
	}
	return result, nil
}

func (r *fakeInventoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *fakeInventoryRepo) buildRecord(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryRecord, error) {
	record := domain.InventoryRecord{Item: *item}
	code, err := r.codes.GetByID(ctx, item.ItemCodeID)
	if err != nil {
		return nil, err
	}
	record.ItemCode = *code
	if item.AssignedToID != nil {
		user, err := r.users.GetByID(ctx, *item.AssignedToID)
		if err != nil {
			return nil, err
		}
		record.Assignee = user
	}
	return &record, nil
}

type capturedEvents struct {
	events []events.Event
}

func (c *capturedEvents) Publish(_ context.Context, event events.Event) error {
	c.events = append(c.events, event)
	return nil
}

func (c *capturedEvents) Subscribe(events.EventType, events.EventHandler) {}

func (c *capturedEvents) ofType(eventType events.EventType) []events.Event {
	var result []events.Event
	for _, event := range c.events {
		if event.Type == eventType {
			result = append(result, event)
		}
	}
	return result
}

type fakeRevocationList struct {
	revoked map[string]time.Time
}

func newFakeRevocationList() *fakeRevocationList {
	return &fakeRevocationList{revoked: map[string]time.Time{}}
}

func (l *fakeRevocationList) Revoke(_ context.Context, jti string, expiresAt time.Time) error {
	l.revoked[jti] = expiresAt
	return nil
}

func (l *fakeRevocationList) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := l.revoked[jti]
	return ok, nil
}
