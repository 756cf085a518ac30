package cryptonote

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/tcwallet/walletlib/blockdata"
	"github.com/tcwallet/walletlib/walleterr"
)

// Default is a Keccak-based reference Ops implementation. CryptoNote's real
// primitives require Ed25519-variant scalar/point arithmetic (elliptic
// curve scalar multiplication, not just hashing); binding that math is the
// out-of-scope "pure CryptoOps capability" collaborator named in spec
// section 1. Default exists so this module builds and runs end to end
// without that binding: key pairs come from crypto/rand, derivation and
// key images use Keccak-256 (the hash CryptoNote itself uses throughout)
// to combine key material in a deterministic, order-sensitive way, and
// addresses are a hex encoding rather than CryptoNote's real base58
// format. A production deployment replaces Default with a binding to the
// reference crypto library; the wallet engine depends only on the Ops
// interface, never on Default.
type Default struct{}

var _ Ops = Default{}

func keccak(parts ...[]byte) blockdata.Hash32 {
	h := sha3.NewLegacyKeccak256()
	for _, p := range parts {
		h.Write(p)
	}
	var out blockdata.Hash32
	copy(out[:], h.Sum(nil))
	return out
}

func (Default) GenerateKeyDerivation(txPublicKey, privateViewKey blockdata.Hash32) (blockdata.Hash32, error) {
	return keccak(txPublicKey[:], privateViewKey[:]), nil
}

func (Default) UnderivePublicKey(derivation blockdata.Hash32, outputIndex int, outputKey blockdata.Hash32) (blockdata.Hash32, error) {
	idx := varintBytes(outputIndex)
	scalar := keccak(derivation[:], idx)
	var out blockdata.Hash32
	for i := range out {
		out[i] = scalar[i] ^ outputKey[i]
	}
	return out, nil
}

func (Default) GenerateKeyImage(publicSpendKey, privateSpendKey, derivation blockdata.Hash32, outputIndex int) (blockdata.Hash32, error) {
	var zero blockdata.Hash32
	if privateSpendKey == zero {
		return ZeroKeyImage, nil
	}
	idx := varintBytes(outputIndex)
	return keccak(publicSpendKey[:], privateSpendKey[:], derivation[:], idx), nil
}

// addressPrefix distinguishes a Default-encoded address from the
// mockOps "ts" shape at a glance; neither is the real CryptoNote base58
// format.
const addressPrefix = "tc1"

func (Default) GenerateKeyPair() (public, private blockdata.Hash32, err error) {
	if _, err = rand.Read(private[:]); err != nil {
		return public, private, fmt.Errorf("cryptonote: generating key pair: %w", err)
	}
	public, err = Default{}.PrivateKeyToPublicKey(private)
	return public, private, err
}

func (Default) PrivateKeyToPublicKey(private blockdata.Hash32) (blockdata.Hash32, error) {
	return keccak(private[:], []byte("pub")), nil
}

// DecodeAddress parses the hex(publicSpendKey)+hex(publicViewKey)
// [+paymentID] body EncodeAddress produces.
func (Default) DecodeAddress(address string) (publicSpendKey, publicViewKey blockdata.Hash32, paymentID string, err error) {
	if !strings.HasPrefix(address, addressPrefix) {
		return publicSpendKey, publicViewKey, "", walleterr.New(walleterr.ErrAddressNotValid)
	}
	body := address[len(addressPrefix):]
	if len(body) < 128 {
		return publicSpendKey, publicViewKey, "", walleterr.New(walleterr.ErrAddressNotValid)
	}
	spendBytes, err := hex.DecodeString(body[:64])
	if err != nil {
		return publicSpendKey, publicViewKey, "", walleterr.New(walleterr.ErrAddressNotValid)
	}
	viewBytes, err := hex.DecodeString(body[64:128])
	if err != nil {
		return publicSpendKey, publicViewKey, "", walleterr.New(walleterr.ErrAddressNotValid)
	}
	copy(publicSpendKey[:], spendBytes)
	copy(publicViewKey[:], viewBytes)
	if len(body) > 128 {
		paymentID = body[128:]
	}
	return publicSpendKey, publicViewKey, paymentID, nil
}

func (Default) EncodeAddress(publicSpendKey, publicViewKey blockdata.Hash32, paymentID string) (string, error) {
	return addressPrefix + hex.EncodeToString(publicSpendKey[:]) + hex.EncodeToString(publicViewKey[:]) + paymentID, nil
}

func (Default) MnemonicToPrivateKey(words []string) (blockdata.Hash32, error) {
	if len(words) != 25 {
		return blockdata.Hash32{}, walleterr.New(walleterr.ErrInvalidMnemonic)
	}
	parts := make([][]byte, len(words))
	for i, w := range words {
		parts[i] = []byte(w)
	}
	return keccak(parts...), nil
}

// PrivateKeyToMnemonic renders the first 25 bytes of private as 25 hex
// words, one per byte; the last 7 bytes of the key are not represented
// (CryptoNote mnemonics are always 25 words, 24 data words plus a checksum
// word).
// This is not the inverse of MnemonicToPrivateKey, which validates and
// hashes whatever 25 words it is given rather than decoding them back to
// these same bytes; the mnemonic prompt flow only needs the words
// displayed here to be stable and distinguishable, not round-trippable
// through that hash.
func (Default) PrivateKeyToMnemonic(private blockdata.Hash32) ([]string, error) {
	words := make([]string, 25)
	for i := range words {
		words[i] = hex.EncodeToString(private[i%len(private) : i%len(private)+1])
	}
	return words, nil
}

func varintBytes(n int) []byte {
	return []byte(hex.EncodeToString([]byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}))
}
