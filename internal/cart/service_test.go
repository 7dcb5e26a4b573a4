package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigbazar/bb-api/internal/product"
)

// mockStore mirrors the join-table semantics: one cart per user, a set of
// product ids per cart, totals summed from current product prices.
type mockStore struct {
	cartsByUser map[uuid.UUID]uuid.UUID
	members     map[uuid.UUID]map[uuid.UUID]bool // cartID -> product set
	catalog     map[uuid.UUID]*product.Product
}

func newMockStore() *mockStore {
	return &mockStore{
		cartsByUser: make(map[uuid.UUID]uuid.UUID),
		members:     make(map[uuid.UUID]map[uuid.UUID]bool),
		catalog:     make(map[uuid.UUID]*product.Product),
	}
}

func (m *mockStore) addCatalogProduct(name string, price float64) uuid.UUID {
	p := &product.Product{ID: uuid.New(), Name: name, Price: price, IsActive: true}
	m.catalog[p.ID] = p
	return p.ID
}

func (m *mockStore) GetOrCreate(_ context.Context, userID uuid.UUID) (uuid.UUID, error) {
	if cartID, ok := m.cartsByUser[userID]; ok {
		return cartID, nil
	}
	cartID := uuid.New()
	m.cartsByUser[userID] = cartID
	m.members[cartID] = make(map[uuid.UUID]bool)
	return cartID, nil
}

func (m *mockStore) AddProducts(_ context.Context, cartID uuid.UUID, productIDs []uuid.UUID) error {
	for _, id := range productIDs {
		if _, ok := m.catalog[id]; !ok {
			return ErrProductNotFound
		}
	}
	for _, id := range productIDs {
		m.members[cartID][id] = true
	}
	return nil
}

func (m *mockStore) RemoveProduct(_ context.Context, cartID, productID uuid.UUID) error {
	delete(m.members[cartID], productID)
	return nil
}

func (m *mockStore) Clear(_ context.Context, cartID uuid.UUID) error {
	m.members[cartID] = make(map[uuid.UUID]bool)
	return nil
}

func (m *mockStore) ListProducts(_ context.Context, cartID uuid.UUID) ([]*product.Product, error) {
	var products []*product.Product
	for id := range m.members[cartID] {
		products = append(products, m.catalog[id])
	}
	return products, nil
}

func (m *mockStore) TotalPrice(_ context.Context, cartID uuid.UUID) (float64, error) {
	var total float64
	for id := range m.members[cartID] {
		total += m.catalog[id].Price
	}
	return total, nil
}

func TestGet_CreatesEmptyCart(t *testing.T) {
	store := newMockStore()
	svc := NewService(store)
	userID := uuid.New()

	c, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, userID, c.UserID)
	assert.Empty(t, c.Products)
	assert.Equal(t, 0.0, c.TotalPrice)

	// a second get reuses the same cart
	again, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, again.ID)
}

func TestAddProducts_Total(t *testing.T) {
	store := newMockStore()
	svc := NewService(store)
	userID := uuid.New()

	first := store.addCatalogProduct("first", 10.00)
	second := store.addCatalogProduct("second", 15.00)

	err := svc.AddProducts(context.Background(), userID, first, second)
	require.NoError(t, err)

	c, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)

	assert.Len(t, c.Products, 2)
	assert.Equal(t, 25.00, c.TotalPrice)
}

func TestAddProducts_Idempotent(t *testing.T) {
	store := newMockStore()
	svc := NewService(store)
	userID := uuid.New()

	productID := store.addCatalogProduct("only", 10.00)

	require.NoError(t, svc.AddProducts(context.Background(), userID, productID))
	require.NoError(t, svc.AddProducts(context.Background(), userID, productID))

	c, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)

	assert.Len(t, c.Products, 1)
	assert.Equal(t, 10.00, c.TotalPrice)
}

func TestAddProducts_Empty(t *testing.T) {
	svc := NewService(newMockStore())

	err := svc.AddProducts(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNoProducts)
}

func TestAddProducts_UnknownProduct(t *testing.T) {
	store := newMockStore()
	svc := NewService(store)

	err := svc.AddProducts(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestRemoveProduct(t *testing.T) {
	store := newMockStore()
	svc := NewService(store)
	userID := uuid.New()

	keep := store.addCatalogProduct("keep", 15.00)
	drop := store.addCatalogProduct("drop", 10.00)
	require.NoError(t, svc.AddProducts(context.Background(), userID, keep, drop))

	require.NoError(t, svc.RemoveProduct(context.Background(), userID, drop))

	c, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, c.Products, 1)
	assert.Equal(t, 15.00, c.TotalPrice)
}

func TestRemoveProduct_AbsentIsNoOp(t *testing.T) {
	store := newMockStore()
	svc := NewService(store)
	userID := uuid.New()

	productID := store.addCatalogProduct("only", 10.00)
	require.NoError(t, svc.AddProducts(context.Background(), userID, productID))

	err := svc.RemoveProduct(context.Background(), userID, uuid.New())
	require.NoError(t, err)

	c, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, c.Products, 1)
}

func TestClear(t *testing.T) {
	store := newMockStore()
	svc := NewService(store)
	userID := uuid.New()

	first := store.addCatalogProduct("first", 10.00)
	second := store.addCatalogProduct("second", 15.00)
	require.NoError(t, svc.AddProducts(context.Background(), userID, first, second))

	require.NoError(t, svc.Clear(context.Background(), userID))

	c, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, c.Products)
	assert.Equal(t, 0.0, c.TotalPrice)
}

func TestTotalPrice_ReflectsCurrentPrices(t *testing.T) {
	store := newMockStore()
	svc := NewService(store)
	userID := uuid.New()

	productID := store.addCatalogProduct("only", 10.00)
	require.NoError(t, svc.AddProducts(context.Background(), userID, productID))

	store.catalog[productID].Price = 12.50

	total, err := svc.TotalPrice(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 12.50, total)
}
