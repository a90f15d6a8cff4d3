package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/events"
	apperrors "github.com/spec-kit/realty-service/pkg/util/errorutil"
)

func mustCreate(t *testing.T, f *fixture, name, email string, role domain.UserRole) *domain.UserView {
	t.Helper()
	view, err := f.accounts.Create(context.Background(), CreateUserInput{
		Name: name, Email: email, Password: "secret1", Role: role,
	})
	if err != nil {
		t.Fatalf("Create(%s): %v", email, err)
	}
	return view
}

func TestCreateNeverExposesPassword(t *testing.T) {
	f := newFixture()
	view := mustCreate(t, f, "Alice", "alice@x.com", domain.UserRoleBroker)

	body, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	stored := f.store.users[view.ID]
	if strings.Contains(string(body), "secret1") || strings.Contains(string(body), stored.PasswordHash) ||
		strings.Contains(strings.ToLower(string(body)), "password") {
		t.Fatalf("view leaks credentials: %s", body)
	}
	if stored.PasswordHash == "secret1" || !f.hasher.Verify(stored.PasswordHash, "secret1") {
		t.Fatal("password must be stored hashed")
	}
	if view.Role != domain.UserRoleBroker {
		t.Fatalf("expected BROKER, got %s", view.Role)
	}
}

func TestCreateDuplicateEmailConflicts(t *testing.T) {
	f := newFixture()
	mustCreate(t, f, "Alice", "a@x.com", domain.UserRoleClient)

	_, err := f.accounts.Create(context.Background(), CreateUserInput{
		Name: "Other", Email: "a@x.com", Password: "pw", Role: domain.UserRoleClient,
	})
	if !apperrors.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if de := apperrors.ToDomainError(err); de.Details["email"] != "a@x.com" {
		t.Fatalf("expected email in details, got %v", de.Details)
	}
}

func TestCreateConcurrentDuplicateEmail(t *testing.T) {
	f := newFixture()

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.accounts.Create(context.Background(), CreateUserInput{
				Name: "Racer", Email: "race@x.com", Password: "pw", Role: domain.UserRoleClient,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case apperrors.IsConflict(err):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 || conflicts != workers-1 {
		t.Fatalf("expected 1 success and %d conflicts, got %d and %d", workers-1, successes, conflicts)
	}
}

func TestCreateRejectsUnknownRole(t *testing.T) {
	f := newFixture()
	_, err := f.accounts.Create(context.Background(), CreateUserInput{
		Name: "X", Email: "x@x.com", Password: "pw", Role: "OWNER",
	})
	if !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetByID(t *testing.T) {
	f := newFixture()
	created := mustCreate(t, f, "Alice", "a@x.com", domain.UserRoleClient)

	got, err := f.accounts.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if *got != *created {
		t.Fatalf("expected %+v, got %+v", created, got)
	}

	_, err = f.accounts.GetByID(context.Background(), 999)
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if de := apperrors.ToDomainError(err); de.Details["id"] != int64(999) {
		t.Fatalf("expected id in details, got %v", de.Details)
	}
}

func TestListAll(t *testing.T) {
	f := newFixture()
	views, err := f.accounts.ListAll(context.Background())
	if err != nil || views == nil || len(views) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v %v", views, err)
	}

	mustCreate(t, f, "A", "a@x.com", domain.UserRoleClient)
	mustCreate(t, f, "B", "b@x.com", domain.UserRoleBroker)
	views, err = f.accounts.ListAll(context.Background())
	if err != nil || len(views) != 2 {
		t.Fatalf("expected 2 users, got %v %v", views, err)
	}
}

func TestUpdateAllFieldsAbsentIsNoop(t *testing.T) {
	f := newFixture()
	created := mustCreate(t, f, "Alice", "a@x.com", domain.UserRoleClient)
	writes := f.store.writes

	got, err := f.accounts.Update(context.Background(), created.ID, UpdateUserInput{})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if *got != *created {
		t.Fatalf("expected unchanged %+v, got %+v", created, got)
	}
	if f.store.writes != writes {
		t.Fatal("no-op update should not write")
	}
}

func TestUpdatePasswordOnly(t *testing.T) {
	f := newFixture()
	created := mustCreate(t, f, "Alice", "a@x.com", domain.UserRoleClient)

	got, err := f.accounts.Update(context.Background(), created.ID, UpdateUserInput{Password: ptr("newsecret")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Name != "Alice" || got.Email != "a@x.com" {
		t.Fatalf("name/email changed: %+v", got)
	}

	stored, err := f.accounts.FindByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if !f.hasher.Verify(stored.PasswordHash, "newsecret") {
		t.Fatal("new password should verify")
	}
	if f.hasher.Verify(stored.PasswordHash, "secret1") {
		t.Fatal("old password should no longer verify")
	}
}

func TestUpdateSameEmailIsNotAConflict(t *testing.T) {
	f := newFixture()
	created := mustCreate(t, f, "A", "a@x.com", domain.UserRoleClient)

	got, err := f.accounts.Update(context.Background(), created.ID, UpdateUserInput{Email: ptr("a@x.com"), Name: ptr("A2")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Email != "a@x.com" || got.Name != "A2" {
		t.Fatalf("unexpected %+v", got)
	}
}

func TestUpdateEmailTakenByAnother(t *testing.T) {
	f := newFixture()
	a := mustCreate(t, f, "A", "a@x.com", domain.UserRoleClient)
	mustCreate(t, f, "B", "b@x.com", domain.UserRoleClient)

	_, err := f.accounts.Update(context.Background(), a.ID, UpdateUserInput{Email: ptr("b@x.com")})
	if !apperrors.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if got, _ := f.accounts.GetByID(context.Background(), a.ID); got.Email != "a@x.com" {
		t.Fatalf("email must be unchanged after conflict, got %s", got.Email)
	}
}

func TestUpdateEmailAndRole(t *testing.T) {
	f := newFixture()
	a := mustCreate(t, f, "A", "a@x.com", domain.UserRoleClient)

	got, err := f.accounts.Update(context.Background(), a.ID, UpdateUserInput{
		Email: ptr("new@x.com"),
		Role:  ptr(domain.UserRoleBroker),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Email != "new@x.com" || got.Role != domain.UserRoleBroker {
		t.Fatalf("unexpected %+v", got)
	}
	if _, err := f.accounts.FindByEmail(context.Background(), "a@x.com"); !apperrors.IsNotFound(err) {
		t.Fatalf("old email should be free, got %v", err)
	}
}

func TestUpdateUnknownUser(t *testing.T) {
	f := newFixture()
	_, err := f.accounts.Update(context.Background(), 42, UpdateUserInput{Name: ptr("x")})
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRegisterAlwaysAssignsClient(t *testing.T) {
	f := newFixture()
	if err := f.accounts.Register(context.Background(), RegisterInput{
		Name: "Alice", Email: "alice@x.com", Password: "secret1",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, err := f.accounts.FindByEmail(context.Background(), "alice@x.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if user.Role != domain.UserRoleClient {
		t.Fatalf("expected CLIENT, got %s", user.Role)
	}
	if !f.hasher.Verify(user.PasswordHash, "secret1") {
		t.Fatal("password should verify")
	}

	err = f.accounts.Register(context.Background(), RegisterInput{Name: "Eve", Email: "alice@x.com", Password: "pw"})
	if !apperrors.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	types := f.dispatcher.types()
	if len(types) != 1 || types[0] != events.EventUserRegistered {
		t.Fatalf("expected one registered event, got %v", types)
	}
}

func TestFindByEmailUnknown(t *testing.T) {
	f := newFixture()
	_, err := f.accounts.FindByEmail(context.Background(), "ghost@x.com")
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFavorites(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	broker := mustCreate(t, f, "Bruno", "bruno@x.com", domain.UserRoleBroker)
	client := mustCreate(t, f, "Carla", "carla@x.com", domain.UserRoleClient)

	favs, err := f.accounts.GetFavorites(ctx, client.ID)
	if err != nil || favs == nil || len(favs) != 0 {
		t.Fatalf("expected empty favorites, got %v %v", favs, err)
	}

	brokerUser, _ := f.accounts.FindByEmail(ctx, "bruno@x.com")
	listing, err := f.listings.Create(ctx, brokerUser, validListing())
	if err != nil {
		t.Fatalf("listing Create: %v", err)
	}

	if err := f.accounts.AddFavorite(ctx, client.ID, listing.ID); err != nil {
		t.Fatalf("AddFavorite: %v", err)
	}
	if err := f.accounts.AddFavorite(ctx, client.ID, listing.ID); err != nil {
		t.Fatalf("AddFavorite twice: %v", err)
	}

	favs, err = f.accounts.GetFavorites(ctx, client.ID)
	if err != nil || len(favs) != 1 {
		t.Fatalf("expected one favorite, got %v %v", favs, err)
	}
	if favs[0].BrokerID != broker.ID || favs[0].BrokerName != "Bruno" {
		t.Fatalf("broker not denormalized: %+v", favs[0])
	}

	if err := f.accounts.AddFavorite(ctx, client.ID, 999); !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found for unknown property, got %v", err)
	}

	if err := f.accounts.RemoveFavorite(ctx, client.ID, listing.ID); err != nil {
		t.Fatalf("RemoveFavorite: %v", err)
	}
	favs, _ = f.accounts.GetFavorites(ctx, client.ID)
	if len(favs) != 0 {
		t.Fatalf("expected favorite removed, got %v", favs)
	}
}

func TestGetFavoritesUnknownUser(t *testing.T) {
	f := newFixture()
	_, err := f.accounts.GetFavorites(context.Background(), 404)
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
