package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tagumdiocese/directory/internal/models"
)

// MockDirectoryRepository is a mock implementation of DirectoryRepository for testing
type MockDirectoryRepository struct {
	mock.Mock
}

func result[T any](args mock.Arguments) ([]T, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	items, ok := args.Get(0).([]T)
	if !ok {
		return nil, args.Error(1)
	}
	return items, args.Error(1)
}

func (m *MockDirectoryRepository) Parishes(ctx context.Context) ([]models.Parish, error) {
	return result[models.Parish](m.Called(ctx))
}

func (m *MockDirectoryRepository) BECs(ctx context.Context) ([]models.BEC, error) {
	return result[models.BEC](m.Called(ctx))
}

func (m *MockDirectoryRepository) Schools(ctx context.Context) ([]models.School, error) {
	return result[models.School](m.Called(ctx))
}

func (m *MockDirectoryRepository) Ministries(ctx context.Context) ([]models.Ministry, error) {
	return result[models.Ministry](m.Called(ctx))
}

func (m *MockDirectoryRepository) Corporations(ctx context.Context) ([]models.Corporation, error) {
	return result[models.Corporation](m.Called(ctx))
}

func (m *MockDirectoryRepository) Congregations(ctx context.Context) ([]models.Congregation, error) {
	return result[models.Congregation](m.Called(ctx))
}

func (m *MockDirectoryRepository) DclaimGroups(ctx context.Context) ([]models.DclaimGroup, error) {
	return result[models.DclaimGroup](m.Called(ctx))
}

func (m *MockDirectoryRepository) Priests(ctx context.Context) ([]models.Priest, error) {
	return result[models.Priest](m.Called(ctx))
}

func (m *MockDirectoryRepository) Sponsors(ctx context.Context) ([]models.Sponsor, error) {
	return result[models.Sponsor](m.Called(ctx))
}

func (m *MockDirectoryRepository) Videos(ctx context.Context) ([]models.Video, error) {
	return result[models.Video](m.Called(ctx))
}
