package nautilus

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Wallet is the signing identity of one request: a parsed ECDSA key, its
// derived address, and a chain RPC client bound to the network's node. A
// Wallet is created per request and discarded with the session that owns it;
// the key is never persisted or logged.
type Wallet struct {
	privateKey *ecdsa.PrivateKey
	address    common.Address
	client     *ethclient.Client
}

// NewWallet parses a hex-encoded ECDSA private key and connects an RPC client
// to nodeURI. It returns an error if the hex string is invalid or the public
// key cannot be derived from the private key.
func NewWallet(ctx context.Context, privateKeyHex, nodeURI string) (*Wallet, error) {
	privateKey, err := crypto.HexToECDSA(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	publicKey, ok := privateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil, errors.New("failed to derive public key")
	}

	client, err := ethclient.DialContext(ctx, nodeURI)
	if err != nil {
		return nil, fmt.Errorf("failed to dial chain node: %w", err)
	}

	return &Wallet{
		privateKey: privateKey,
		address:    crypto.PubkeyToAddress(*publicKey),
		client:     client,
	}, nil
}

// Address returns the address derived from the signing key.
func (w *Wallet) Address() common.Address {
	return w.address
}

// ChainID queries the connected node for its chain identifier.
func (w *Wallet) ChainID(ctx context.Context) (*big.Int, error) {
	return w.client.ChainID(ctx)
}

// Sign signs the keccak256 hash of message with the wallet key and returns
// the signature hex-encoded with a 0x prefix.
func (w *Wallet) Sign(message []byte) (string, error) {
	signature, err := crypto.Sign(crypto.Keccak256(message), w.privateKey)
	if err != nil {
		return "", fmt.Errorf("signing failed: %w", err)
	}
	return hexutil.Encode(signature), nil
}

// Close releases the RPC client connection.
func (w *Wallet) Close() {
	w.client.Close()
}
