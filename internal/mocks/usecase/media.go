package mocks

import (
	"context"
	"io"
	"testing"

	"lumera/internal/domain/entity"
	"lumera/internal/usecase"

	"github.com/stretchr/testify/mock"
)

type MockMediaUsecase struct {
	mock.Mock
}

func NewMockMediaUsecase(t *testing.T) *MockMediaUsecase {
	m := &MockMediaUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockMediaUsecase) Upload(ctx context.Context, input *usecase.UploadMediaInput) (*entity.Media, error) {
	args := m.Called(ctx, input)

	return ret[*entity.Media](args, 0), args.Error(1)
}

func (m *MockMediaUsecase) Open(ctx context.Context, id string) (*entity.Media, io.ReadCloser, error) {
	args := m.Called(ctx, id)

	return ret[*entity.Media](args, 0), ret[io.ReadCloser](args, 1), args.Error(2)
}

func (m *MockMediaUsecase) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
