package daemon

import (
	"context"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"time"

	resty "github.com/go-resty/resty/v2"
	socks "github.com/abesuite/go-socks/socks"

	"github.com/tcwallet/walletlib/blockdata"
	"github.com/tcwallet/walletlib/walleterr"
)

// HTTPClient implements Client against a TurtleCoin-family daemon's
// JSON/HTTP RPC surface using resty, the same HTTP client library
// CHIHCHIEH-LAI/btcwatcher polls a remote chain API with.
type HTTPClient struct {
	rc   *resty.Client
	kind Kind
}

// HTTPClientOption configures an HTTPClient at construction time.
type HTTPClientOption func(*HTTPClient)

// WithSOCKSProxy routes all daemon RPC traffic through a SOCKS5 proxy
// (typically a local Tor daemon), using this codebase's own go-socks
// dependency as the dialer.
func WithSOCKSProxy(proxyAddr string) HTTPClientOption {
	return func(c *HTTPClient) {
		dialer := &socks.Proxy{Addr: proxyAddr}
		transport := &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			},
		}
		c.rc.SetTransport(transport)
	}
}

// WithTimeout overrides the per-request timeout (spec section 6,
// config.requestTimeout).
func WithTimeout(d time.Duration) HTTPClientOption {
	return func(c *HTTPClient) {
		c.rc.SetTimeout(d)
	}
}

// NewHTTPClient builds a Client talking to baseURL, tagged as either a
// conventional node or a blockchain-cache accelerator.
func NewHTTPClient(baseURL string, kind Kind, opts ...HTTPClientOption) *HTTPClient {
	c := &HTTPClient{
		rc:   resty.New().SetBaseURL(baseURL).SetTimeout(10 * time.Second),
		kind: kind,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPClient) Kind() Kind { return c.kind }

func wrapTransportErr(err error) error {
	if err == nil {
		return nil
	}
	return walleterr.Wrap(walleterr.ErrDaemonOffline, err)
}

type infoWire struct {
	Height         uint64 `json:"height"`
	NetworkHeight  uint64 `json:"network_height"`
	IncomingPeers  int    `json:"incoming_connections_count"`
	OutgoingPeers  int    `json:"outgoing_connections_count"`
	Difficulty     uint64 `json:"difficulty"`
}

func (c *HTTPClient) Info(ctx context.Context) (*InfoResult, error) {
	var wire infoWire
	resp, err := c.rc.R().SetContext(ctx).SetResult(&wire).Get("/getinfo")
	if err != nil {
		return nil, wrapTransportErr(err)
	}
	if resp.IsError() {
		return nil, walleterr.Wrap(walleterr.ErrDaemonOffline, fmt.Errorf("getinfo: http %d", resp.StatusCode()))
	}
	return &InfoResult{
		Height:                   wire.Height,
		NetworkHeight:            wire.NetworkHeight,
		IncomingConnectionsCount: wire.IncomingPeers,
		OutgoingConnectionsCount: wire.OutgoingPeers,
		Difficulty:               wire.Difficulty,
	}, nil
}

func (c *HTTPClient) Fee(ctx context.Context) (*FeeResult, error) {
	var wire FeeResult
	resp, err := c.rc.R().SetContext(ctx).SetResult(&wire).Get("/fee")
	if err != nil {
		return nil, wrapTransportErr(err)
	}
	if resp.IsError() {
		return nil, walleterr.Wrap(walleterr.ErrDaemonOffline, fmt.Errorf("fee: http %d", resp.StatusCode()))
	}
	return &wire, nil
}

type rawOutputWire struct {
	Key         string  `json:"key"`
	Amount      uint64  `json:"amount"`
	GlobalIndex *uint64 `json:"globalIndex,omitempty"`
}

type rawInputWire struct {
	Amount        uint64   `json:"amount"`
	KeyImage      string   `json:"keyImage"`
	OutputOffsets []uint64 `json:"outputOffsets"`
}

type rawTxWire struct {
	Hash        string          `json:"hash"`
	TxPublicKey string          `json:"txPublicKey"`
	UnlockTime  uint64          `json:"unlockTime"`
	Outputs     []rawOutputWire `json:"outputs"`
	Inputs      []rawInputWire  `json:"inputs"`
	PaymentID   string          `json:"paymentId"`
}

type blockWire struct {
	Height     uint64      `json:"height"`
	Hash       string      `json:"hash"`
	Timestamp  uint64      `json:"timestamp"`
	PrevHash   string      `json:"prevHash"`
	CoinbaseTx rawTxWire   `json:"coinbaseTX"`
	Txs        []rawTxWire `json:"transactions"`
}

func hash32FromHex(s string) (blockdata.Hash32, error) {
	var out blockdata.Hash32
	if s == "" {
		return out, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 32 {
		return out, walleterr.New(walleterr.ErrInvalidKey)
	}
	copy(out[:], b)
	return out, nil
}

func decodeRawTx(w rawTxWire, isCoinbase bool) (blockdata.RawTx, error) {
	hash, err := hash32FromHex(w.Hash)
	if err != nil {
		return blockdata.RawTx{}, err
	}
	pub, err := hash32FromHex(w.TxPublicKey)
	if err != nil {
		return blockdata.RawTx{}, err
	}
	outputs := make([]blockdata.RawOutput, len(w.Outputs))
	for i, o := range w.Outputs {
		key, err := hash32FromHex(o.Key)
		if err != nil {
			return blockdata.RawTx{}, err
		}
		outputs[i] = blockdata.RawOutput{Key: key, Amount: o.Amount, GlobalIndex: o.GlobalIndex}
	}
	inputs := make([]blockdata.RawInput, len(w.Inputs))
	for i, in := range w.Inputs {
		ki, err := hash32FromHex(in.KeyImage)
		if err != nil {
			return blockdata.RawTx{}, err
		}
		inputs[i] = blockdata.RawInput{Amount: in.Amount, KeyImage: ki, OutputOffsets: in.OutputOffsets}
	}
	return blockdata.RawTx{
		Hash:        hash,
		TxPublicKey: pub,
		UnlockTime:  w.UnlockTime,
		Outputs:     outputs,
		Inputs:      inputs,
		PaymentID:   w.PaymentID,
		IsCoinbase:  isCoinbase,
	}, nil
}

func (c *HTTPClient) GetWalletSyncData(ctx context.Context, req WalletSyncDataRequest) ([]blockdata.Block, error) {
	checkpoints := make([]string, len(req.BlockHashCheckpoints))
	for i, h := range req.BlockHashCheckpoints {
		checkpoints[i] = hex.EncodeToString(h[:])
	}
	body := map[string]interface{}{
		"blockHashCheckpoints": checkpoints,
		"startHeight":          req.StartHeight,
		"startTimestamp":       req.StartTimestamp,
		"blockCount":           req.BlockCount,
	}
	var wire struct {
		Blocks []blockWire `json:"blocks"`
	}
	resp, err := c.rc.R().SetContext(ctx).SetBody(body).SetResult(&wire).Post("/getwalletsyncdata")
	if err != nil {
		return nil, wrapTransportErr(err)
	}
	if resp.IsError() {
		return nil, walleterr.Wrap(walleterr.ErrDaemonOffline, fmt.Errorf("getwalletsyncdata: http %d", resp.StatusCode()))
	}
	blocks := make([]blockdata.Block, len(wire.Blocks))
	for i, bw := range wire.Blocks {
		hash, err := hash32FromHex(bw.Hash)
		if err != nil {
			return nil, err
		}
		prev, err := hash32FromHex(bw.PrevHash)
		if err != nil {
			return nil, err
		}
		coinbase, err := decodeRawTx(bw.CoinbaseTx, true)
		if err != nil {
			return nil, err
		}
		txs := make([]blockdata.RawTx, len(bw.Txs))
		for j, tw := range bw.Txs {
			txs[j], err = decodeRawTx(tw, false)
			if err != nil {
				return nil, err
			}
		}
		blocks[i] = blockdata.Block{
			Height:     bw.Height,
			Hash:       hash,
			Timestamp:  bw.Timestamp,
			PrevHash:   prev,
			CoinbaseTx: coinbase,
			Txs:        txs,
		}
	}
	return blocks, nil
}

func (c *HTTPClient) GetGlobalIndexesForRange(ctx context.Context, startHeight, endHeight uint64) (map[blockdata.Hash32][]uint64, error) {
	var wire map[string][]uint64
	resp, err := c.rc.R().SetContext(ctx).
		SetBody(map[string]interface{}{"startHeight": startHeight, "endHeight": endHeight}).
		SetResult(&wire).
		Post("/get_global_indexes_for_range")
	if err != nil {
		// The blockchain-cache accelerator is permitted to be lossy
		// here (spec section 6); treat a transport failure as "no
		// indexes available" rather than fatal when talking to it.
		if c.kind == KindCache {
			return map[blockdata.Hash32][]uint64{}, nil
		}
		return nil, wrapTransportErr(err)
	}
	if resp.IsError() {
		return nil, walleterr.Wrap(walleterr.ErrDaemonOffline, fmt.Errorf("get_global_indexes_for_range: http %d", resp.StatusCode()))
	}
	out := make(map[blockdata.Hash32][]uint64, len(wire))
	for k, v := range wire {
		h, err := hash32FromHex(k)
		if err != nil {
			continue
		}
		out[h] = v
	}
	return out, nil
}

func (c *HTTPClient) GetTransactionsStatus(ctx context.Context, transactionHashes []blockdata.Hash32) (*TransactionsStatusResult, error) {
	hashes := make([]string, len(transactionHashes))
	for i, h := range transactionHashes {
		hashes[i] = hex.EncodeToString(h[:])
	}
	var wire struct {
		TransactionsUnknown []string `json:"transactionsUnknown"`
	}
	resp, err := c.rc.R().SetContext(ctx).
		SetBody(map[string]interface{}{"transactionHashes": hashes}).
		SetResult(&wire).
		Post("/get_transactions_status")
	if err != nil {
		return nil, wrapTransportErr(err)
	}
	if resp.IsError() {
		return nil, walleterr.Wrap(walleterr.ErrDaemonOffline, fmt.Errorf("get_transactions_status: http %d", resp.StatusCode()))
	}
	unknown := make([]blockdata.Hash32, 0, len(wire.TransactionsUnknown))
	for _, s := range wire.TransactionsUnknown {
		h, err := hash32FromHex(s)
		if err != nil {
			continue
		}
		unknown = append(unknown, h)
	}
	return &TransactionsStatusResult{TransactionsUnknown: unknown}, nil
}
