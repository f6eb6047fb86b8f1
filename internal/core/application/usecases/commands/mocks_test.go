package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/store"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Find(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) FindRefs(ctx context.Context, ids []kernel.UUID) ([]ports.OrderRef, error) {
	args := m.Called(ctx, ids)
	refs, _ := args.Get(0).([]ports.OrderRef)
	return refs, args.Error(1)
}

func (m *MockOrderRepository) DeleteByIDs(ctx context.Context, ids []kernel.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockStoreRepository struct{ mock.Mock }

func (m *MockStoreRepository) Add(_ context.Context, _ *store.Store) error { return nil }

func (m *MockStoreRepository) Get(ctx context.Context, id kernel.UUID) (*store.Store, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*store.Store)
	return s, args.Error(1)
}

func (m *MockStoreRepository) ResetSyncCheckpoints(ctx context.Context, ids []kernel.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStoreRepository) ResetAllSyncCheckpoints(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) StoreRepository() ports.StoreRepository {
	args := m.Called()
	return args.Get(0).(ports.StoreRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockTemplateReader struct{ mock.Mock }

func (m *MockTemplateReader) FindBySKUs(ctx context.Context, skus []string) ([]*product.Template, error) {
	args := m.Called(ctx, skus)
	templates, _ := args.Get(0).([]*product.Template)
	return templates, args.Error(1)
}

type MockBlobStorage struct{ mock.Mock }

func (m *MockBlobStorage) Get(ctx context.Context, path string) ([]byte, error) {
	args := m.Called(ctx, path)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockBlobStorage) Put(ctx context.Context, path string, data []byte) error {
	args := m.Called(ctx, path, data)
	return args.Error(0)
}

func (m *MockBlobStorage) List(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	paths, _ := args.Get(0).([]string)
	return paths, args.Error(1)
}

func (m *MockBlobStorage) Remove(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func testClock() kernel.Clock {
	return kernel.FixedClock(testNow)
}

type orderOption func(t *testing.T, o *order.Order)

func withStatus(status order.Status) orderOption {
	return func(t *testing.T, o *order.Order) {
		if status == order.LoadedForShipment {
			require.NoError(t, o.AttachLabel("1Z999", "labels/x.pdf"))
		}
		require.NoError(t, o.SetStatus(status, nil, testNow))
	}
}

// newOrder builds an order with one line item per SKU. Pending events are
// cleared so tests observe only what the handler records.
func newOrder(t *testing.T, storeID kernel.UUID, skus []string, variations []order.Variation, opts ...orderOption) *order.Order {
	t.Helper()

	items := make([]order.LineItem, len(skus))
	for i, sku := range skus {
		items[i] = order.LineItem{ID: "tx-" + sku, SKU: sku, Quantity: 1, Title: sku, Variations: variations}
	}

	o, err := order.NewOrder(
		kernel.NewUUID(), "1001", storeID,
		order.Customer{Name: "Jane Roe"},
		order.ShippingAddress{Country: "US"},
		order.Detail{LineItems: items},
		testNow.Add(-time.Hour),
	)
	require.NoError(t, err)

	for _, opt := range opts {
		opt(t, o)
	}
	o.ClearDomainEvents()
	return o
}
