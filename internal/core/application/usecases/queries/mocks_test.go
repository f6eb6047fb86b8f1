package queries_test

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderFinder struct{ mock.Mock }

func (m *MockOrderFinder) Find(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
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

type MockDocumentMerger struct{ mock.Mock }

func (m *MockDocumentMerger) PageCount(data []byte) (int, error) {
	args := m.Called(data)
	return args.Int(0), args.Error(1)
}

func (m *MockDocumentMerger) Merge(docs [][]byte) ([]byte, error) {
	args := m.Called(docs)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}
