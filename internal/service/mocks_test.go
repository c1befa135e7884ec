package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/meesha7/mrmonitor/internal/domain"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockClient) ListOpenMergeRequests(ctx context.Context, projectID, author string) ([]domain.MergeRequest, error) {
	args := m.Called(ctx, projectID, author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MergeRequest), args.Error(1)
}

func (m *MockClient) GetApprovals(ctx context.Context, projectID string, iid int) (*domain.Approval, error) {
	args := m.Called(ctx, projectID, iid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Approval), args.Error(1)
}

func (m *MockClient) ListMergeRequestPipelines(ctx context.Context, projectID string, iid int) ([]domain.Pipeline, error) {
	args := m.Called(ctx, projectID, iid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Pipeline), args.Error(1)
}
