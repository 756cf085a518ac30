package daemon

import (
	"context"

	"github.com/tcwallet/walletlib/blockdata"
)

// MockClient is a scriptable in-memory Client for unit tests of the main
// loop and synchronizer, mirroring wallet/mock.go's mockChainClient.
type MockClient struct {
	InfoResp   *InfoResult
	InfoErr    error
	FeeResp    *FeeResult
	FeeErr     error
	Blocks     []blockdata.Block
	BlocksErr  error
	GlobalIdx  map[blockdata.Hash32][]uint64
	Unknown    []blockdata.Hash32
	StatusErr  error
	KindValue  Kind

	// SyncDataCalls records every request passed to GetWalletSyncData,
	// for assertions on checkpoint/startHeight plumbing.
	SyncDataCalls []WalletSyncDataRequest
}

var _ Client = (*MockClient)(nil)

func NewMock() *MockClient {
	return &MockClient{
		InfoResp:  &InfoResult{},
		FeeResp:   &FeeResult{Status: "OK"},
		GlobalIdx: map[blockdata.Hash32][]uint64{},
	}
}

func (m *MockClient) Info(ctx context.Context) (*InfoResult, error) {
	return m.InfoResp, m.InfoErr
}

func (m *MockClient) Fee(ctx context.Context) (*FeeResult, error) {
	return m.FeeResp, m.FeeErr
}

func (m *MockClient) GetWalletSyncData(ctx context.Context, req WalletSyncDataRequest) ([]blockdata.Block, error) {
	m.SyncDataCalls = append(m.SyncDataCalls, req)
	if m.BlocksErr != nil {
		return nil, m.BlocksErr
	}
	blocks := m.Blocks
	m.Blocks = nil
	return blocks, nil
}

func (m *MockClient) GetGlobalIndexesForRange(ctx context.Context, startHeight, endHeight uint64) (map[blockdata.Hash32][]uint64, error) {
	return m.GlobalIdx, nil
}

func (m *MockClient) GetTransactionsStatus(ctx context.Context, transactionHashes []blockdata.Hash32) (*TransactionsStatusResult, error) {
	if m.StatusErr != nil {
		return nil, m.StatusErr
	}
	return &TransactionsStatusResult{TransactionsUnknown: m.Unknown}, nil
}

func (m *MockClient) Kind() Kind { return m.KindValue }
