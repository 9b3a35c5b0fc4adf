package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/domain"
	"taskboard/internal/service/auth"
	"taskboard/internal/store"
)

// fakeUserStore is an in-memory UserStore keyed by ID and email.
type fakeUserStore struct {
	byID    map[uuid.UUID]*domain.User
	byEmail map[string]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:    make(map[uuid.UUID]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (f *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return store.ErrEmailExists
	}
	clone := *user
	f.byID[user.ID] = &clone
	f.byEmail[user.Email] = &clone
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) List(_ context.Context, _ store.UserFilter) ([]*domain.User, int, error) {
	var out []*domain.User
	for _, user := range f.byID {
		clone := *user
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (f *fakeUserStore) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.byID[user.ID]; !ok {
		return store.ErrUserNotFound
	}
	clone := *user
	f.byID[user.ID] = &clone
	f.byEmail[user.Email] = &clone
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id uuid.UUID) error {
	user, ok := f.byID[id]
	if !ok {
		return store.ErrUserNotFound
	}
	delete(f.byEmail, user.Email)
	delete(f.byID, id)
	return nil
}

func newTestUserService() (*UserServiceImpl, *fakeUserStore) {
	st := newFakeUserStore()
	svc := NewUserService(st, auth.NewBcryptHasher(4), auth.NewBcryptVerifier(), slog.Default())
	return svc, st
}

func TestUserService_RegisterHashesPassword(t *testing.T) {
	t.Parallel()

	svc, st := newTestUserService()

	user, err := svc.Register(context.Background(), "Ada@Example.com", "hunter2hunter2", "Ada", "Lovelace")
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", user.Email, "emails are normalized")
	assert.Empty(t, user.Password, "plaintext is discarded after hashing")
	assert.NotEmpty(t, user.HashedPassword)
	assert.NotEqual(t, "hunter2hunter2", user.HashedPassword)

	stored, err := st.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", stored.FirstName)
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUserService()

	_, err := svc.Register(context.Background(), "dup@example.com", "hunter2hunter2", "", "")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "dup@example.com", "otherpassword", "", "")
	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestUserService_Authenticate(t *testing.T) {
	t.Parallel()

	svc, st := newTestUserService()

	registered, err := svc.Register(context.Background(), "ada@example.com", "hunter2hunter2", "", "")
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		user, err := svc.Authenticate(context.Background(), "ada@example.com", "hunter2hunter2")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "ada@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "ghost@example.com", "hunter2hunter2")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("disabled account", func(t *testing.T) {
		disabled := *st.byEmail["ada@example.com"]
		disabled.IsActive = false
		require.NoError(t, st.Update(context.Background(), &disabled))

		_, err := svc.Authenticate(context.Background(), "ada@example.com", "hunter2hunter2")
		assert.ErrorIs(t, err, ErrAccountDisabled)
	})
}

func TestUserService_UpdateProfilePartial(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUserService()

	user, err := svc.Register(context.Background(), "ada@example.com", "hunter2hunter2", "Ada", "Lovelace")
	require.NoError(t, err)

	first := "Augusta"
	updated, err := svc.UpdateProfile(context.Background(), user.ID, ProfileUpdate{FirstName: &first})
	require.NoError(t, err)

	assert.Equal(t, "Augusta", updated.FirstName)
	assert.Equal(t, "Lovelace", updated.LastName, "omitted fields keep their value")
}

func TestUserService_DeleteAccount(t *testing.T) {
	t.Parallel()

	svc, _ := newTestUserService()

	user, err := svc.Register(context.Background(), "ada@example.com", "hunter2hunter2", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(context.Background(), user.ID))

	_, err = svc.GetUser(context.Background(), user.ID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	err = svc.DeleteAccount(context.Background(), user.ID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
