// Package mocks contains a hand-written gomock-style double for
// ledger.Client, in the shape mockgen would generate, so the attachment
// controller can be tested without a real ledger node.
package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/bitmark-inc/hub/tangle"
)

// MockClient is a mock of the ledger.Client interface.
type MockClient struct {
	ctrl     *gomock.Controller
	recorder *MockClientMockRecorder
}

// MockClientMockRecorder is the mock recorder for MockClient.
type MockClientMockRecorder struct {
	mock *MockClient
}

// NewMockClient creates a new mock instance.
func NewMockClient(ctrl *gomock.Controller) *MockClient {
	mock := &MockClient{ctrl: ctrl}
	mock.recorder = &MockClientMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockClient) EXPECT() *MockClientMockRecorder {
	return m.recorder
}

func (m *MockClient) NodeInfo(ctx context.Context) (tangle.NodeInfo, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "NodeInfo", ctx)
	return ret[0].(tangle.NodeInfo), castErr(ret[1])
}

func (mr *MockClientMockRecorder) NodeInfo(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "NodeInfo", reflect.TypeOf((*MockClient)(nil).NodeInfo), ctx)
}

func (m *MockClient) GetBalances(ctx context.Context, addresses []string) (map[string]uint64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetBalances", ctx, addresses)
	return ret[0].(map[string]uint64), castErr(ret[1])
}

func (mr *MockClientMockRecorder) GetBalances(ctx, addresses interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetBalances", reflect.TypeOf((*MockClient)(nil).GetBalances), ctx, addresses)
}

func (m *MockClient) FindTransactions(ctx context.Context, addresses []string, bundles []tangle.Hash) ([]tangle.Hash, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindTransactions", ctx, addresses, bundles)
	return ret[0].([]tangle.Hash), castErr(ret[1])
}

func (mr *MockClientMockRecorder) FindTransactions(ctx, addresses, bundles interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindTransactions", reflect.TypeOf((*MockClient)(nil).FindTransactions), ctx, addresses, bundles)
}

func (m *MockClient) GetTrytes(ctx context.Context, hashes []tangle.Hash) ([]tangle.Transaction, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetTrytes", ctx, hashes)
	return ret[0].([]tangle.Transaction), castErr(ret[1])
}

func (mr *MockClientMockRecorder) GetTrytes(ctx, hashes interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetTrytes", reflect.TypeOf((*MockClient)(nil).GetTrytes), ctx, hashes)
}

func (m *MockClient) FilterConfirmedTails(ctx context.Context, tails []tangle.Hash, reference tangle.Hash) ([]tangle.Hash, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FilterConfirmedTails", ctx, tails, reference)
	return ret[0].([]tangle.Hash), castErr(ret[1])
}

func (mr *MockClientMockRecorder) FilterConfirmedTails(ctx, tails, reference interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FilterConfirmedTails", reflect.TypeOf((*MockClient)(nil).FilterConfirmedTails), ctx, tails, reference)
}

func (m *MockClient) FilterConsistentTails(ctx context.Context, tails []tangle.Hash) ([]tangle.Hash, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FilterConsistentTails", ctx, tails)
	return ret[0].([]tangle.Hash), castErr(ret[1])
}

func (mr *MockClientMockRecorder) FilterConsistentTails(ctx, tails interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FilterConsistentTails", reflect.TypeOf((*MockClient)(nil).FilterConsistentTails), ctx, tails)
}

func (m *MockClient) GetTransactionsToApprove(ctx context.Context, depth int, reference tangle.Hash) (tangle.TipPair, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetTransactionsToApprove", ctx, depth, reference)
	return ret[0].(tangle.TipPair), castErr(ret[1])
}

func (mr *MockClientMockRecorder) GetTransactionsToApprove(ctx, depth, reference interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetTransactionsToApprove", reflect.TypeOf((*MockClient)(nil).GetTransactionsToApprove), ctx, depth, reference)
}

func (m *MockClient) AttachToTangle(ctx context.Context, tips tangle.TipPair, mwm int, trytes []tangle.Trytes) ([]tangle.Trytes, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AttachToTangle", ctx, tips, mwm, trytes)
	return ret[0].([]tangle.Trytes), castErr(ret[1])
}

func (mr *MockClientMockRecorder) AttachToTangle(ctx, tips, mwm, trytes interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AttachToTangle", reflect.TypeOf((*MockClient)(nil).AttachToTangle), ctx, tips, mwm, trytes)
}

func (m *MockClient) StoreTransactions(ctx context.Context, trytes []tangle.Trytes) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "StoreTransactions", ctx, trytes)
	return castErr(ret[0])
}

func (mr *MockClientMockRecorder) StoreTransactions(ctx, trytes interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "StoreTransactions", reflect.TypeOf((*MockClient)(nil).StoreTransactions), ctx, trytes)
}

func (m *MockClient) BroadcastTransactions(ctx context.Context, trytes []tangle.Trytes) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "BroadcastTransactions", ctx, trytes)
	return castErr(ret[0])
}

func (mr *MockClientMockRecorder) BroadcastTransactions(ctx, trytes interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BroadcastTransactions", reflect.TypeOf((*MockClient)(nil).BroadcastTransactions), ctx, trytes)
}

func castErr(v interface{}) error {
	if nil == v {
		return nil
	}
	return v.(error)
}
