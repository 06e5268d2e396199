package mocks

import (
	"context"

	"audiodrop/internal/ingest"
	"audiodrop/internal/metadata"
	"audiodrop/internal/model"
	"audiodrop/internal/player"
	"audiodrop/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockAudioService struct {
	mock.Mock
}

func (m *MockAudioService) Upload(ctx context.Context, files []ingest.File) (*service.UploadResult, error) {
	args := m.Called(ctx, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadResult), args.Error(1)
}

func (m *MockAudioService) List(ctx context.Context) (*service.AudioListResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AudioListResult), args.Error(1)
}

func (m *MockAudioService) Get(ctx context.Context, id string) (*model.AudioRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AudioRecord), args.Error(1)
}

func (m *MockAudioService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAudioService) Content(ctx context.Context, id string) (string, []byte, error) {
	args := m.Called(ctx, id)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).([]byte), args.Error(2)
}

func (m *MockAudioService) Tags(ctx context.Context, id string) (*metadata.Tags, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*metadata.Tags), args.Error(1)
}

func (m *MockAudioService) Toggle(ctx context.Context, id string) (player.Transition, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(player.Transition), args.Error(1)
}

func (m *MockAudioService) Ended(ctx context.Context, id string) (player.Transition, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(player.Transition), args.Error(1)
}

func (m *MockAudioService) State(id string) player.State {
	args := m.Called(id)
	return args.Get(0).(player.State)
}

func (m *MockAudioService) AcceptedMIME() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockAudioService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAudioService) ResetPlayback() {
	m.Called()
}
