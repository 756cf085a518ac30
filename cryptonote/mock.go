package cryptonote

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/tcwallet/walletlib/blockdata"
)

// mockOps is a minimal Ops implementation for tests that never need real
// curve arithmetic, only a consistent, invertible mapping from outputs to
// owners. Addresses are encoded as "ts" + hex(publicSpendKey) +
// hex(publicViewKey) [+ paymentID, appended as given, for integrated
// addresses].
type mockOps struct{}

// NewMock returns an Ops implementation suitable for exercising the wallet
// synchronization engine in tests without any real cryptography, mirroring
// wallet/mock.go's mockChainClient satisfying chain.Interface.
func NewMock() Ops {
	return mockOps{}
}

var _ Ops = mockOps{}

func xorDerive(a, b blockdata.Hash32) blockdata.Hash32 {
	var out blockdata.Hash32
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return out
}

func (mockOps) GenerateKeyDerivation(txPublicKey, privateViewKey blockdata.Hash32) (blockdata.Hash32, error) {
	return xorDerive(txPublicKey, privateViewKey), nil
}

func (mockOps) UnderivePublicKey(derivation blockdata.Hash32, outputIndex int, outputKey blockdata.Hash32) (blockdata.Hash32, error) {
	d := derivation
	d[0] ^= byte(outputIndex)
	return xorDerive(d, outputKey), nil
}

func (mockOps) GenerateKeyImage(publicSpendKey, privateSpendKey, derivation blockdata.Hash32, outputIndex int) (blockdata.Hash32, error) {
	var zero blockdata.Hash32
	if privateSpendKey == zero {
		return ZeroKeyImage, nil
	}
	ki := xorDerive(publicSpendKey, privateSpendKey)
	ki = xorDerive(ki, derivation)
	ki[31] ^= byte(outputIndex)
	return ki, nil
}

func (mockOps) GenerateKeyPair() (public, private blockdata.Hash32, err error) {
	if _, err = rand.Read(private[:]); err != nil {
		return public, private, err
	}
	public, err = mockOps{}.PrivateKeyToPublicKey(private)
	return public, private, err
}

func (mockOps) PrivateKeyToPublicKey(private blockdata.Hash32) (blockdata.Hash32, error) {
	var out blockdata.Hash32
	for i := range out {
		out[i] = private[i] ^ 0xA5
	}
	return out, nil
}

func (mockOps) DecodeAddress(address string) (publicSpendKey, publicViewKey blockdata.Hash32, paymentID string, err error) {
	if len(address) < 2 || address[:2] != "ts" {
		return publicSpendKey, publicViewKey, "", errors.New("not a mock address")
	}
	body := address[2:]
	spendHex := body[:64]
	viewHex := body[64:128]
	spendBytes, err := hex.DecodeString(spendHex)
	if err != nil {
		return publicSpendKey, publicViewKey, "", err
	}
	viewBytes, err := hex.DecodeString(viewHex)
	if err != nil {
		return publicSpendKey, publicViewKey, "", err
	}
	copy(publicSpendKey[:], spendBytes)
	copy(publicViewKey[:], viewBytes)
	if len(body) > 128 {
		paymentID = body[128:]
	}
	return publicSpendKey, publicViewKey, paymentID, nil
}

func (mockOps) EncodeAddress(publicSpendKey, publicViewKey blockdata.Hash32, paymentID string) (string, error) {
	return "ts" + hex.EncodeToString(publicSpendKey[:]) + hex.EncodeToString(publicViewKey[:]) + paymentID, nil
}

func (mockOps) MnemonicToPrivateKey(words []string) (blockdata.Hash32, error) {
	var out blockdata.Hash32
	for i, w := range words {
		for j := 0; j < len(w); j++ {
			out[(i+j)%32] ^= w[j]
		}
	}
	return out, nil
}

func (mockOps) PrivateKeyToMnemonic(private blockdata.Hash32) ([]string, error) {
	words := make([]string, 25)
	for i := range words {
		words[i] = hex.EncodeToString(private[i%32 : i%32+1])
	}
	return words, nil
}
