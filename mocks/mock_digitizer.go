package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockDigitizer is a mock implementation of port.Digitizer.
type MockDigitizer struct {
	mock.Mock
}

func (m *MockDigitizer) Digitize(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}
