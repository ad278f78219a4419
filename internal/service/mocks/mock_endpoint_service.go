package mocks

import (
	"context"

	"perfserver/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockEndpointService struct {
	mock.Mock
}

func (m *MockEndpointService) Fast() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockEndpointService) AnotherFast() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockEndpointService) Slow(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockEndpointService) FastPost(body []byte) (*model.EchoResponse, error) {
	args := m.Called(body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EchoResponse), args.Error(1)
}

func (m *MockEndpointService) FastPut(body []byte) (*model.EchoResponse, error) {
	args := m.Called(body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EchoResponse), args.Error(1)
}

func (m *MockEndpointService) SlowDelete(ctx context.Context, body []byte) (*model.EchoResponse, error) {
	args := m.Called(ctx, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EchoResponse), args.Error(1)
}
