package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTagger mocks the git Tagger interface
type MockTagger struct {
	mock.Mock
}

// CreateTag mocks tag creation
func (m *MockTagger) CreateTag(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// PushTag mocks pushing a tag to a remote
func (m *MockTagger) PushTag(ctx context.Context, remote, name string) error {
	args := m.Called(ctx, remote, name)
	return args.Error(0)
}

// MockRemoteInspector mocks the git RemoteInspector interface
type MockRemoteInspector struct {
	mock.Mock
}

// RemoteURL mocks remote lookup
func (m *MockRemoteInspector) RemoteURL(remote string) (string, error) {
	args := m.Called(remote)
	return args.String(0), args.Error(1)
}
