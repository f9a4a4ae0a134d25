package mocks

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/mock"
)

type MockCatalogCache struct {
	mock.Mock
}

func NewMockCatalogCache(t *testing.T) *MockCatalogCache {
	m := &MockCatalogCache{}
	register(t, &m.Mock)

	return m
}

func (m *MockCatalogCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	args := m.Called(ctx, key, dest)

	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogCache) Set(ctx context.Context, key string, value any) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *MockCatalogCache) InvalidatePrefix(ctx context.Context, prefix string) error {
	return m.Called(ctx, prefix).Error(0)
}

type MockBlobStore struct {
	mock.Mock
}

func NewMockBlobStore(t *testing.T) *MockBlobStore {
	m := &MockBlobStore{}
	register(t, &m.Mock)

	return m
}

func (m *MockBlobStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	return m.Called(ctx, key, data, contentType).Error(0)
}

func (m *MockBlobStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)

	return ret[io.ReadCloser](args, 0), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
