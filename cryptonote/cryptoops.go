// Package cryptonote defines the CryptoOps capability the wallet
// synchronization engine consumes for address decoding, key derivation,
// key-image computation, and mnemonic handling. Per spec section 1 these
// primitives are explicitly out of scope for the core engine; this package
// only pins down the interface the engine is written against, plus a
// reference implementation adequate for tests and a mock for unit tests
// of the engine itself (mirrors this codebase's wallet/mock.go pattern of a
// minimal interface-satisfying stand-in living next to the interface it
// implements).
package cryptonote

import "github.com/tcwallet/walletlib/blockdata"

// Ops is the capability the wallet synchronizer and subwallets need from
// the CryptoNote primitives layer. A production binary wires a real
// implementation (bindings to the reference CryptoNote crypto library);
// the engine never imports one directly.
type Ops interface {
	// GenerateKeyDerivation computes the shared secret between a
	// transaction's public key and a view key.
	GenerateKeyDerivation(txPublicKey, privateViewKey blockdata.Hash32) (blockdata.Hash32, error)

	// UnderivePublicKey recovers the spend key an output was sent to,
	// given the derivation and the output's index and key.
	UnderivePublicKey(derivation blockdata.Hash32, outputIndex int, outputKey blockdata.Hash32) (blockdata.Hash32, error)

	// GenerateKeyImage computes the unique per-output marker for an
	// output owned by (publicSpendKey, privateSpendKey).
	GenerateKeyImage(publicSpendKey, privateSpendKey, derivation blockdata.Hash32, outputIndex int) (blockdata.Hash32, error)

	// GenerateKeyPair produces a fresh (public, private) spend or view
	// key pair.
	GenerateKeyPair() (public, private blockdata.Hash32, err error)

	// PrivateKeyToPublicKey derives the public key for a private key.
	PrivateKeyToPublicKey(private blockdata.Hash32) (blockdata.Hash32, error)

	// DecodeAddress splits a base58 wallet address into its public
	// spend key, public view key, and (for integrated addresses) an
	// embedded payment ID.
	DecodeAddress(address string) (publicSpendKey, publicViewKey blockdata.Hash32, paymentID string, err error)

	// EncodeAddress is the inverse of DecodeAddress.
	EncodeAddress(publicSpendKey, publicViewKey blockdata.Hash32, paymentID string) (string, error)

	// MnemonicToPrivateKey converts a 25-word mnemonic seed phrase into
	// a private spend key.
	MnemonicToPrivateKey(words []string) (blockdata.Hash32, error)

	// PrivateKeyToMnemonic renders a private key as a 25-word mnemonic.
	// In both implementations in this package, feeding those words back
	// through MnemonicToPrivateKey does not return the same key.
	PrivateKeyToMnemonic(private blockdata.Hash32) ([]string, error)
}

// ZeroKeyImage is the sentinel key image stored for inputs owned by a
// view-only subwallet, which cannot compute real key images without the
// private spend key (spec section 3, "SubWallet").
var ZeroKeyImage blockdata.Hash32
