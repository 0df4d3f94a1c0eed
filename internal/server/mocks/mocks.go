// Code generated by MockGen. DO NOT EDIT.
// Source: handlers.go
//
// Generated by this command:
//
//	mockgen -source=handlers.go -destination=mocks/mocks.go -package=mocks
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	domain "meta_indexer/internal/domain"
	reflect "reflect"
	time "time"

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

// Close mocks base method.
func (m *MockRunStore) Close(ctx context.Context, id int64, success bool, startedAt, completedAt time.Time) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Close", ctx, id, success, startedAt, completedAt)
	ret0, _ := ret[0].(error)
	return ret0
}

// Close indicates an expected call of Close.
func (mr *MockRunStoreMockRecorder) Close(ctx, id, success, startedAt, completedAt any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Close", reflect.TypeOf((*MockRunStore)(nil).Close), ctx, id, success, startedAt, completedAt)
}

// EndpointByURL mocks base method.
func (m *MockRunStore) EndpointByURL(ctx context.Context, harvestURL string) (*domain.Endpoint, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "EndpointByURL", ctx, harvestURL)
	ret0, _ := ret[0].(*domain.Endpoint)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// EndpointByURL indicates an expected call of EndpointByURL.
func (mr *MockRunStoreMockRecorder) EndpointByURL(ctx, harvestURL any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EndpointByURL", reflect.TypeOf((*MockRunStore)(nil).EndpointByURL), ctx, harvestURL)
}

// Endpoints mocks base method.
func (m *MockRunStore) Endpoints(ctx context.Context) ([]domain.Endpoint, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Endpoints", ctx)
	ret0, _ := ret[0].([]domain.Endpoint)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Endpoints indicates an expected call of Endpoints.
func (mr *MockRunStoreMockRecorder) Endpoints(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Endpoints", reflect.TypeOf((*MockRunStore)(nil).Endpoints), ctx)
}

// Latest mocks base method.
func (m *MockRunStore) Latest(ctx context.Context, harvestURL string) (*domain.HarvestRun, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Latest", ctx, harvestURL)
	ret0, _ := ret[0].(*domain.HarvestRun)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Latest indicates an expected call of Latest.
func (mr *MockRunStoreMockRecorder) Latest(ctx, harvestURL any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Latest", reflect.TypeOf((*MockRunStore)(nil).Latest), ctx, harvestURL)
}

// Open mocks base method.
func (m *MockRunStore) Open(ctx context.Context, harvestURL string, untilDate time.Time) (*domain.OpenedRun, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Open", ctx, harvestURL, untilDate)
	ret0, _ := ret[0].(*domain.OpenedRun)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Open indicates an expected call of Open.
func (mr *MockRunStoreMockRecorder) Open(ctx, harvestURL, untilDate any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Open", reflect.TypeOf((*MockRunStore)(nil).Open), ctx, harvestURL, untilDate)
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

// Record mocks base method.
func (m *MockEventStore) Record(ctx context.Context, ev *domain.HarvestEvent) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Record", ctx, ev)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Record indicates an expected call of Record.
func (mr *MockEventStoreMockRecorder) Record(ctx, ev any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Record", reflect.TypeOf((*MockEventStore)(nil).Record), ctx, ev)
}

// MockProducer is a mock of Producer interface.
type MockProducer struct {
	ctrl     *gomock.Controller
	recorder *MockProducerMockRecorder
	isgomock struct{}
}

// MockProducerMockRecorder is the mock recorder for MockProducer.
type MockProducerMockRecorder struct {
	mock *MockProducer
}

// NewMockProducer creates a new mock instance.
func NewMockProducer(ctrl *gomock.Controller) *MockProducer {
	mock := &MockProducer{ctrl: ctrl}
	mock.recorder = &MockProducerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockProducer) EXPECT() *MockProducerMockRecorder {
	return m.recorder
}

// EnqueueRun mocks base method.
func (m *MockProducer) EnqueueRun(ctx context.Context, runID int64) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "EnqueueRun", ctx, runID)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// EnqueueRun indicates an expected call of EnqueueRun.
func (mr *MockProducerMockRecorder) EnqueueRun(ctx, runID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EnqueueRun", reflect.TypeOf((*MockProducer)(nil).EnqueueRun), ctx, runID)
}
