package service

import (
	"context"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/events"
	"github.com/spec-kit/realty-service/internal/repository"
)

// memStore backs both fake repositories. Its email index plays the role of the
// users_email_key constraint.
type memStore struct {
	mu         sync.Mutex
	nextUser   int64
	nextProp   int64
	users      map[int64]domain.User
	byEmail    map[string]int64
	properties map[int64]domain.Property
	favorites  map[int64]map[int64]struct{}
	writes     int
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[int64]domain.User{},
		byEmail:    map[string]int64{},
		properties: map[int64]domain.Property{},
		favorites:  map[int64]map[int64]struct{}{},
	}
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, taken := r.s.byEmail[u.Email]; taken {
		return repository.ErrEmailTaken
	}
	r.s.nextUser++
	u.ID = r.s.nextUser
	r.s.users[u.ID] = *u
	r.s.byEmail[u.Email] = u.ID
	r.s.writes++
	return nil
}

func (r memUsers) Update(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.users[u.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	if owner, taken := r.s.byEmail[u.Email]; taken && owner != u.ID {
		return repository.ErrEmailTaken
	}
	delete(r.s.byEmail, old.Email)
	r.s.byEmail[u.Email] = u.ID
	r.s.users[u.ID] = *u
	r.s.writes++
	return nil
}

func (r memUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id, ok := r.s.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	u := r.s.users[id]
	return &u, nil
}

func (r memUsers) List(context.Context) ([]domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.User
	for _, u := range r.s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memUsers) ListFavorites(_ context.Context, userID int64) ([]domain.Property, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Property
	for pid := range r.s.favorites[userID] {
		out = append(out, r.s.properties[pid])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memUsers) AddFavorite(_ context.Context, userID, propertyID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.favorites[userID] == nil {
		r.s.favorites[userID] = map[int64]struct{}{}
	}
	r.s.favorites[userID][propertyID] = struct{}{}
	return nil
}

func (r memUsers) RemoveFavorite(_ context.Context, userID, propertyID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.favorites[userID], propertyID)
	return nil
}

type memProperties struct{ s *memStore }

func (r memProperties) Create(_ context.Context, p *domain.Property) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextProp++
	p.ID = r.s.nextProp
	p.Broker.Name = r.s.users[p.Broker.ID].Name
	r.s.properties[p.ID] = *p
	return nil
}

func (r memProperties) Update(_ context.Context, p *domain.Property) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.properties[p.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.s.properties[p.ID] = *p
	return nil
}

func (r memProperties) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.properties[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.properties, id)
	for _, favs := range r.s.favorites {
		delete(favs, id)
	}
	return nil
}

func (r memProperties) GetByID(_ context.Context, id int64) (*domain.Property, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.properties[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &p, nil
}

func (r memProperties) List(context.Context) ([]domain.Property, error) {
	return r.filter(func(domain.Property) bool { return true }), nil
}

func (r memProperties) ListByBroker(_ context.Context, brokerID int64) ([]domain.Property, error) {
	return r.filter(func(p domain.Property) bool { return p.Broker.ID == brokerID }), nil
}

func (r memProperties) filter(keep func(domain.Property) bool) []domain.Property {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Property
	for _, p := range r.s.properties {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// passThroughTx runs the unit of work directly; memStore is already serialized.
type passThroughTx struct{}

func (passThroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, e events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, e)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.events))
	for _, e := range d.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	store      *memStore
	hasher     *auth.BcryptHasher
	dispatcher *recordingDispatcher
	accounts   *AccountService
	listings   *ListingService
}

func newFixture() *fixture {
	store := newMemStore()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	dispatcher := &recordingDispatcher{}
	users := memUsers{store}
	properties := memProperties{store}
	return &fixture{
		store:      store,
		hasher:     hasher,
		dispatcher: dispatcher,
		accounts: NewAccountService(AccountDependencies{
			UserRepo:     users,
			PropertyRepo: properties,
			TxManager:    passThroughTx{},
			Hasher:       hasher,
			Dispatcher:   dispatcher,
		}),
		listings: NewListingService(ListingDependencies{
			PropertyRepo: properties,
			TxManager:    passThroughTx{},
			Dispatcher:   dispatcher,
		}),
	}
}

func ptr[T any](v T) *T { return &v }
