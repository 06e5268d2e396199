package mocks

import (
	"context"

	"audiodrop/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockAudioRepository struct {
	mock.Mock
}

func (m *MockAudioRepository) Load(ctx context.Context) ([]model.AudioRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AudioRecord), args.Error(1)
}

func (m *MockAudioRepository) Save(ctx context.Context, records []model.AudioRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockAudioRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
