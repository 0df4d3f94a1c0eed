// Code generated by MockGen. DO NOT EDIT.
// Source: interfaces.go
//
// Generated by this command:
//
//	mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	domain "meta_indexer/internal/domain"
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockRunStore is a mock of RunStore interface.
type MockRunStore struct {
	ctrl     *gomock.Controller
	recorder *MockRunStoreMockRecorder
	isgomock struct{}
}

// MockRunStoreMockRecorder is the mock recorder for MockRunStore.
type MockRunStoreMockRecorder struct {
	mock *MockRunStore
}

// NewMockRunStore creates a new mock instance.
func NewMockRunStore(ctrl *gomock.Controller) *MockRunStore {
	mock := &MockRunStore{ctrl: ctrl}
	mock.recorder = &MockRunStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRunStore) EXPECT() *MockRunStoreMockRecorder {
	return m.recorder
}

// Get mocks base method.
func (m *MockRunStore) Get(ctx context.Context, id int64) (*domain.HarvestRun, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx, id)
	ret0, _ := ret[0].(*domain.HarvestRun)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get.
func (mr *MockRunStoreMockRecorder) Get(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockRunStore)(nil).Get), ctx, id)
}

// MockEventStore is a mock of EventStore interface.
type MockEventStore struct {
	ctrl     *gomock.Controller
	recorder *MockEventStoreMockRecorder
	isgomock struct{}
}

// MockEventStoreMockRecorder is the mock recorder for MockEventStore.
type MockEventStoreMockRecorder struct {
	mock *MockEventStore
}

// NewMockEventStore creates a new mock instance.
func NewMockEventStore(ctrl *gomock.Controller) *MockEventStore {
	mock := &MockEventStore{ctrl: ctrl}
	mock.recorder = &MockEventStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockEventStore) EXPECT() *MockEventStoreMockRecorder {
	return m.recorder
}

// PageByRun mocks base method.
func (m *MockEventStore) PageByRun(ctx context.Context, runID int64, limit, offset int) ([]domain.EventPage, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PageByRun", ctx, runID, limit, offset)
	ret0, _ := ret[0].([]domain.EventPage)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// PageByRun indicates an expected call of PageByRun.
func (mr *MockEventStoreMockRecorder) PageByRun(ctx, runID, limit, offset any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PageByRun", reflect.TypeOf((*MockEventStore)(nil).PageByRun), ctx, runID, limit, offset)
}

// MockPublisher is a mock of Publisher interface.
type MockPublisher struct {
	ctrl     *gomock.Controller
	recorder *MockPublisherMockRecorder
	isgomock struct{}
}

// MockPublisherMockRecorder is the mock recorder for MockPublisher.
type MockPublisherMockRecorder struct {
	mock *MockPublisher
}

// NewMockPublisher creates a new mock instance.
func NewMockPublisher(ctrl *gomock.Controller) *MockPublisher {
	mock := &MockPublisher{ctrl: ctrl}
	mock.recorder = &MockPublisherMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockPublisher) EXPECT() *MockPublisherMockRecorder {
	return m.recorder
}

// Publish mocks base method.
func (m *MockPublisher) Publish(ctx context.Context, msg *domain.BatchMessage) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Publish", ctx, msg)
	ret0, _ := ret[0].(error)
	return ret0
}

// Publish indicates an expected call of Publish.
func (mr *MockPublisherMockRecorder) Publish(ctx, msg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Publish", reflect.TypeOf((*MockPublisher)(nil).Publish), ctx, msg)
}
