// Package mocks contains a hand-written gomock-style double for
// store.Gateway, for tests that need to assert on call sequencing
// rather than on committed state (store.FakeGateway covers the latter).
package mocks

import (
	"context"
	"reflect"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/bitmark-inc/hub/store"
	"github.com/bitmark-inc/hub/tangle"
)

// MockGateway is a mock of the store.Gateway interface.
type MockGateway struct {
	ctrl     *gomock.Controller
	recorder *MockGatewayMockRecorder
}

// MockGatewayMockRecorder is the mock recorder for MockGateway.
type MockGatewayMockRecorder struct {
	mock *MockGateway
}

// NewMockGateway creates a new mock instance.
func NewMockGateway(ctrl *gomock.Controller) *MockGateway {
	mock := &MockGateway{ctrl: ctrl}
	mock.recorder = &MockGatewayMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockGateway) EXPECT() *MockGatewayMockRecorder {
	return m.recorder
}

func (m *MockGateway) BeginTransaction(ctx context.Context) (store.Tx, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "BeginTransaction", ctx)
	tx, _ := ret[0].(store.Tx)
	return tx, castErr(ret[1])
}

func (mr *MockGatewayMockRecorder) BeginTransaction(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BeginTransaction", reflect.TypeOf((*MockGateway)(nil).BeginTransaction), ctx)
}

func (m *MockGateway) GetUnconfirmedSweeps(ctx context.Context, asOf time.Time) ([]store.Sweep, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetUnconfirmedSweeps", ctx, asOf)
	return ret[0].([]store.Sweep), castErr(ret[1])
}

func (mr *MockGatewayMockRecorder) GetUnconfirmedSweeps(ctx, asOf interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetUnconfirmedSweeps", reflect.TypeOf((*MockGateway)(nil).GetUnconfirmedSweeps), ctx, asOf)
}

func (m *MockGateway) GetTailsForSweep(ctx context.Context, tx store.Tx, sweepID string) ([]tangle.Hash, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetTailsForSweep", ctx, tx, sweepID)
	return ret[0].([]tangle.Hash), castErr(ret[1])
}

func (mr *MockGatewayMockRecorder) GetTailsForSweep(ctx, tx, sweepID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetTailsForSweep", reflect.TypeOf((*MockGateway)(nil).GetTailsForSweep), ctx, tx, sweepID)
}

func (m *MockGateway) CreateTail(ctx context.Context, tx store.Tx, sweepID string, tailHash tangle.Hash) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateTail", ctx, tx, sweepID, tailHash)
	return castErr(ret[0])
}

func (mr *MockGatewayMockRecorder) CreateTail(ctx, tx, sweepID, tailHash interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateTail", reflect.TypeOf((*MockGateway)(nil).CreateTail), ctx, tx, sweepID, tailHash)
}

func (m *MockGateway) MarkTailAsConfirmed(ctx context.Context, tx store.Tx, tailHash tangle.Hash) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkTailAsConfirmed", ctx, tx, tailHash)
	return castErr(ret[0])
}

func (mr *MockGatewayMockRecorder) MarkTailAsConfirmed(ctx, tx, tailHash interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkTailAsConfirmed", reflect.TypeOf((*MockGateway)(nil).MarkTailAsConfirmed), ctx, tx, tailHash)
}

func castErr(v interface{}) error {
	if nil == v {
		return nil
	}
	return v.(error)
}
