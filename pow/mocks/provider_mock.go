// Package mocks contains a hand-written gomock-style double for
// pow.Provider.
package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/bitmark-inc/hub/tangle"
)

// MockProvider is a mock of the pow.Provider interface.
type MockProvider struct {
	ctrl     *gomock.Controller
	recorder *MockProviderMockRecorder
}

// MockProviderMockRecorder is the mock recorder for MockProvider.
type MockProviderMockRecorder struct {
	mock *MockProvider
}

// NewMockProvider creates a new mock instance.
func NewMockProvider(ctrl *gomock.Controller) *MockProvider {
	mock := &MockProvider{ctrl: ctrl}
	mock.recorder = &MockProviderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockProvider) EXPECT() *MockProviderMockRecorder {
	return m.recorder
}

func (m *MockProvider) PerformPow(ctx context.Context, trytes []tangle.Trytes) ([]tangle.Trytes, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PerformPow", ctx, trytes)
	return ret[0].([]tangle.Trytes), castErr(ret[1])
}

func (mr *MockProviderMockRecorder) PerformPow(ctx, trytes interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PerformPow", reflect.TypeOf((*MockProvider)(nil).PerformPow), ctx, trytes)
}

func (m *MockProvider) DoPow(ctx context.Context, trytes []tangle.Trytes, tips tangle.TipPair) ([]tangle.Trytes, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DoPow", ctx, trytes, tips)
	return ret[0].([]tangle.Trytes), castErr(ret[1])
}

func (mr *MockProviderMockRecorder) DoPow(ctx, trytes, tips interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DoPow", reflect.TypeOf((*MockProvider)(nil).DoPow), ctx, trytes, tips)
}

func castErr(v interface{}) error {
	if nil == v {
		return nil
	}
	return v.(error)
}
