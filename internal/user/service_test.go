package user

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	users map[uuid.UUID]*User
}

func newMockStore() *mockStore {
	return &mockStore{users: make(map[uuid.UUID]*User)}
}

func (m *mockStore) add(name, email, phone string) *User {
	u := &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: "stored-hash",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.users[u.ID] = u
	return u
}

func (m *mockStore) List(_ context.Context) ([]*User, error) {
	var users []*User
	for _, u := range m.users {
		users = append(users, u)
	}
	return users, nil
}

func (m *mockStore) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (m *mockStore) Update(_ context.Context, id uuid.UUID, params UpdateParams) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if params.Name != nil {
		u.Name = *params.Name
	}
	if params.Email != nil {
		u.Email = *params.Email
	}
	if params.Phone != nil {
		u.Phone = *params.Phone
	}
	if params.PasswordHash != nil {
		u.PasswordHash = *params.PasswordHash
	}
	return u, nil
}

func (m *mockStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	delete(m.users, id)
	return nil
}

var (
	errBadPassword = errors.New("password rejected")
	errBadPhone    = errors.New("phone rejected")
)

// mockCredentials accepts anything by default; reject flags flip the policies
type mockCredentials struct {
	rejectPassword bool
	rejectPhone    bool
}

func (m mockCredentials) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (m mockCredentials) ValidatePassword(string) error {
	if m.rejectPassword {
		return errBadPassword
	}
	return nil
}

func (m mockCredentials) ValidatePhone(string) error {
	if m.rejectPhone {
		return errBadPhone
	}
	return nil
}

func TestGet(t *testing.T) {
	store := newMockStore()
	svc := NewService(store, mockCredentials{})

	stored := store.add("T", "t@example.com", "+71234567890")

	got, err := svc.Get(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.Email, got.Email)

	_, err = svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList(t *testing.T) {
	store := newMockStore()
	svc := NewService(store, mockCredentials{})

	store.add("A", "a@example.com", "+71234567890")
	store.add("B", "b@example.com", "+70987654321")

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUpdate_Name(t *testing.T) {
	store := newMockStore()
	svc := NewService(store, mockCredentials{})

	stored := store.add("T", "t@example.com", "+71234567890")

	newName := "Renamed"
	updated, err := svc.Update(context.Background(), stored.ID, UpdateInput{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "t@example.com", updated.Email)
}

func TestUpdate_PasswordIsHashed(t *testing.T) {
	store := newMockStore()
	svc := NewService(store, mockCredentials{})

	stored := store.add("T", "t@example.com", "+71234567890")

	newPassword := "NewPassword1!"
	updated, err := svc.Update(context.Background(), stored.ID, UpdateInput{Password: &newPassword})
	require.NoError(t, err)

	// the repository only ever sees the hash
	assert.Equal(t, "hashed:NewPassword1!", updated.PasswordHash)
}

func TestUpdate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		creds   mockCredentials
		input   UpdateInput
		wantErr error
	}{
		{
			name:    "name too long",
			input:   UpdateInput{Name: ptr(strings.Repeat("a", 151))},
			wantErr: ErrNameTooLong,
		},
		{
			name:    "malformed email",
			input:   UpdateInput{Email: ptr("not-an-email")},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "rejected phone",
			creds:   mockCredentials{rejectPhone: true},
			input:   UpdateInput{Phone: ptr("12345")},
			wantErr: errBadPhone,
		},
		{
			name:    "rejected password",
			creds:   mockCredentials{rejectPassword: true},
			input:   UpdateInput{Password: ptr("weak")},
			wantErr: errBadPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockStore()
			svc := NewService(store, tt.creds)
			stored := store.add("T", "t@example.com", "+71234567890")

			_, err := svc.Update(context.Background(), stored.ID, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)

			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(newMockStore(), mockCredentials{})

	name := "T"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateInput{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	store := newMockStore()
	svc := NewService(store, mockCredentials{})

	stored := store.add("T", "t@example.com", "+71234567890")

	require.NoError(t, svc.Delete(context.Background(), stored.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), stored.ID), ErrNotFound)
}

func ptr[T any](v T) *T { return &v }
