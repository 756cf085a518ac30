// Package walletrpc exposes spec section 5's read surface over gRPC,
// grounded on this codebase's rpc/legacyrpc package (one handler struct
// wrapping the wallet, one method per RPC, errors translated to the
// transport's error shape) but generalized from legacyrpc's JSON-RPC 1.0
// dispatch table to a protoc-generated gRPC service, since the module
// carries google.golang.org/grpc and github.com/golang/protobuf as direct
// dependencies without an included caller of its own.
package walletrpc

import (
	"context"

	"github.com/tcwallet/walletlib/blockdata"
	"github.com/tcwallet/walletlib/walletbackend"
)

// Server adapts a WalletBackend to the generated WalletRPCServer
// interface.
type Server struct {
	UnimplementedWalletRPCServer

	backend *walletbackend.WalletBackend
}

// NewServer builds a Server backed by backend.
func NewServer(backend *walletbackend.WalletBackend) *Server {
	return &Server{backend: backend}
}

var _ WalletRPCServer = (*Server)(nil)

// GetSyncStatus implements the getSyncStatus read operation.
func (s *Server) GetSyncStatus(ctx context.Context, _ *Empty) (*SyncStatusResponse, error) {
	walletHeight, networkHeight := s.backend.GetSyncStatus()
	return &SyncStatusResponse{WalletHeight: walletHeight, NetworkHeight: networkHeight}, nil
}

// GetBalance implements the getBalance read operation. An empty address
// list sums every subwallet; otherwise each address is resolved to its
// public spend key via GetSpendKeys.
func (s *Server) GetBalance(ctx context.Context, req *BalanceRequest) (*BalanceResponse, error) {
	var subset []blockdata.Hash32
	if len(req.Addresses) > 0 {
		subset = make([]blockdata.Hash32, 0, len(req.Addresses))
		for _, addr := range req.Addresses {
			pub, _, err := s.backend.GetSpendKeys(addr)
			if err != nil {
				return nil, err
			}
			subset = append(subset, pub)
		}
	}
	unlocked, locked := s.backend.GetBalance(subset)
	return &BalanceResponse{Unlocked: unlocked, Locked: locked}, nil
}

// GetNodeFee implements the getNodeFee read operation.
func (s *Server) GetNodeFee(ctx context.Context, _ *Empty) (*NodeFeeResponse, error) {
	address, amount, err := s.backend.GetNodeFee(ctx)
	if err != nil {
		return nil, err
	}
	return &NodeFeeResponse{Address: address, Amount: amount}, nil
}

// GetPrimaryAddress implements the getPrimaryAddress read operation.
func (s *Server) GetPrimaryAddress(ctx context.Context, _ *Empty) (*PrimaryAddressResponse, error) {
	return &PrimaryAddressResponse{Address: s.backend.GetPrimaryAddress()}, nil
}
