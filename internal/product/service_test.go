package product

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	products map[uuid.UUID]*Product
}

func newMockStore() *mockStore {
	return &mockStore{products: make(map[uuid.UUID]*Product)}
}

func (m *mockStore) Create(_ context.Context, params CreateParams) (*Product, error) {
	p := &Product{
		ID:          uuid.New(),
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
		IsActive:    false,
		OwnerID:     params.OwnerID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	m.products[p.ID] = p
	return p, nil
}

func (m *mockStore) GetByID(_ context.Context, id uuid.UUID) (*Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (m *mockStore) Update(_ context.Context, id uuid.UUID, params UpdateParams) (*Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	if params.Name != nil {
		p.Name = *params.Name
	}
	if params.Description != nil {
		p.Description = *params.Description
	}
	if params.Price != nil {
		p.Price = *params.Price
	}
	return p, nil
}

func (m *mockStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.products[id]; !ok {
		return ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockStore) ListActive(_ context.Context, limit, offset int) ([]*Product, error) {
	var active []*Product
	for _, p := range m.products {
		if p.IsActive {
			active = append(active, p)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].CreatedAt.Before(active[j].CreatedAt) })

	if offset >= len(active) {
		return nil, nil
	}
	active = active[offset:]
	if limit < len(active) {
		active = active[:limit]
	}
	return active, nil
}

func (m *mockStore) SetActive(_ context.Context, id uuid.UUID, isActive bool) (*Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	p.IsActive = isActive
	return p, nil
}

func (m *mockStore) ToggleActive(_ context.Context, id uuid.UUID) (*Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	p.IsActive = !p.IsActive
	return p, nil
}

func TestCreate_InactiveByDefault(t *testing.T) {
	store := newMockStore()
	svc := NewService(store)
	ownerID := uuid.New()

	p, err := svc.Create(context.Background(), ownerID, CreateInput{
		Name:        "Widget",
		Description: "A widget",
		Price:       10.00,
	})
	require.NoError(t, err)

	assert.False(t, p.IsActive)
	assert.Equal(t, ownerID, p.OwnerID)
	assert.Equal(t, 10.00, p.Price)

	// inactive products never show up in the public listing
	listed, err := svc.ListActive(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateInput
		wantErr error
	}{
		{
			name:    "empty name",
			input:   CreateInput{Name: "", Price: 10.00},
			wantErr: ErrNameRequired,
		},
		{
			name:    "name too long",
			input:   CreateInput{Name: strings.Repeat("a", 151), Price: 10.00},
			wantErr: ErrNameTooLong,
		},
		{
			name:    "description too long",
			input:   CreateInput{Name: "Widget", Description: strings.Repeat("a", 351), Price: 10.00},
			wantErr: ErrDescriptionTooLong,
		},
		{
			name:    "zero price",
			input:   CreateInput{Name: "Widget", Price: 0},
			wantErr: ErrInvalidPrice,
		},
		{
			name:    "negative price",
			input:   CreateInput{Name: "Widget", Price: -1.50},
			wantErr: ErrInvalidPrice,
		},
		{
			name:    "too many decimal places",
			input:   CreateInput{Name: "Widget", Price: 9.999},
			wantErr: ErrInvalidPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockStore()
			svc := NewService(store)

			_, err := svc.Create(context.Background(), uuid.New(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, store.products)
		})
	}
}

func TestValidatePrice_BoundaryValues(t *testing.T) {
	assert.NoError(t, validatePrice(0.01))
	assert.NoError(t, validatePrice(10.00))
	assert.NoError(t, validatePrice(19.99))
	assert.Error(t, validatePrice(0.001))
}

func TestUpdate_Partial(t *testing.T) {
	store := newMockStore()
	svc := NewService(store)

	p, err := svc.Create(context.Background(), uuid.New(), CreateInput{Name: "Widget", Price: 10.00})
	require.NoError(t, err)

	newPrice := 15.00
	updated, err := svc.Update(context.Background(), p.ID, UpdateInput{Price: &newPrice})
	require.NoError(t, err)

	assert.Equal(t, "Widget", updated.Name)
	assert.Equal(t, 15.00, updated.Price)
}

func TestUpdate_Validation(t *testing.T) {
	store := newMockStore()
	svc := NewService(store)

	p, err := svc.Create(context.Background(), uuid.New(), CreateInput{Name: "Widget", Price: 10.00})
	require.NoError(t, err)

	empty := ""
	_, err = svc.Update(context.Background(), p.ID, UpdateInput{Name: &empty})
	assert.ErrorIs(t, err, ErrNameRequired)

	badPrice := 9.999
	_, err = svc.Update(context.Background(), p.ID, UpdateInput{Price: &badPrice})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(newMockStore())

	name := "Widget"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateInput{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	store := newMockStore()
	svc := NewService(store)

	p, err := svc.Create(context.Background(), uuid.New(), CreateInput{Name: "Widget", Price: 10.00})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), p.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), p.ID), ErrNotFound)
}

func TestListActive_Pagination(t *testing.T) {
	store := newMockStore()
	svc := NewService(store)
	ownerID := uuid.New()

	for i := 0; i < 5; i++ {
		p, err := svc.Create(context.Background(), ownerID, CreateInput{Name: "Widget", Price: 10.00})
		require.NoError(t, err)
		_, err = svc.SetActive(context.Background(), p.ID, true)
		require.NoError(t, err)
	}

	listed, err := svc.ListActive(context.Background(), 2, 0)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	rest, err := svc.ListActive(context.Background(), 10, 4)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}

func TestListActive_LimitClamping(t *testing.T) {
	store := newMockStore()
	svc := NewService(store)
	ownerID := uuid.New()

	for i := 0; i < maxListLimit+10; i++ {
		p, err := svc.Create(context.Background(), ownerID, CreateInput{Name: "Widget", Price: 10.00})
		require.NoError(t, err)
		_, err = svc.SetActive(context.Background(), p.ID, true)
		require.NoError(t, err)
	}

	// oversized limit is clamped
	listed, err := svc.ListActive(context.Background(), 1000, 0)
	require.NoError(t, err)
	assert.Len(t, listed, maxListLimit)

	// non-positive limit falls back to the default
	listed, err = svc.ListActive(context.Background(), -1, 0)
	require.NoError(t, err)
	assert.Len(t, listed, defaultListLimit)
}

func TestSetActive_And_Toggle(t *testing.T) {
	store := newMockStore()
	svc := NewService(store)

	p, err := svc.Create(context.Background(), uuid.New(), CreateInput{Name: "Widget", Price: 10.00})
	require.NoError(t, err)

	activated, err := svc.SetActive(context.Background(), p.ID, true)
	require.NoError(t, err)
	assert.True(t, activated.IsActive)

	// setting an already-set flag holds the value
	activated, err = svc.SetActive(context.Background(), p.ID, true)
	require.NoError(t, err)
	assert.True(t, activated.IsActive)

	toggled, err := svc.ToggleActive(context.Background(), p.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	toggled, err = svc.ToggleActive(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)
}

func TestSetActive_NotFound(t *testing.T) {
	svc := NewService(newMockStore())

	_, err := svc.SetActive(context.Background(), uuid.New(), true)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.ToggleActive(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
