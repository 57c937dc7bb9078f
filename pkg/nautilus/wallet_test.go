package nautilus

import (
	"context"
	"strings"
	"testing"
)

// Well-known test vector: the private key 0x...01 derives this address.
const (
	testKeyHex  = "0000000000000000000000000000000000000000000000000000000000000001"
	testKeyAddr = "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf"
)

// TestNewWallet_AddressDerivation verifies address derivation from a raw hex
// key. The RPC client dials lazily, so no node is needed here.
func TestNewWallet_AddressDerivation(t *testing.T) {
	w, err := NewWallet(context.Background(), testKeyHex, "http://localhost:8545")
	if err != nil {
		t.Fatalf("NewWallet failed: %v", err)
	}
	defer w.Close()

	if got := w.Address().Hex(); got != testKeyAddr {
		t.Fatalf("unexpected address: %s", got)
	}
}

// TestNewWallet_RejectsMalformedKeys verifies defense-in-depth key parsing.
func TestNewWallet_RejectsMalformedKeys(t *testing.T) {
	tests := []string{
		"",
		"abc",
		strings.Repeat("z", 64),
		strings.Repeat("0", 63),
		"0x" + testKeyHex,
	}
	for _, key := range tests {
		if _, err := NewWallet(context.Background(), key, "http://localhost:8545"); err == nil {
			t.Fatalf("NewWallet(%q) should fail", key)
		}
	}
}

// TestWalletSign verifies signatures are hex-encoded 65-byte recoverable
// signatures and deterministic for a fixed message.
func TestWalletSign(t *testing.T) {
	w, err := NewWallet(context.Background(), testKeyHex, "http://localhost:8545")
	if err != nil {
		t.Fatalf("NewWallet failed: %v", err)
	}
	defer w.Close()

	sig, err := w.Sign([]byte("did:op:ab12"))
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if !strings.HasPrefix(sig, "0x") || len(sig) != 132 {
		t.Fatalf("unexpected signature encoding: %s", sig)
	}

	again, err := w.Sign([]byte("did:op:ab12"))
	if err != nil {
		t.Fatalf("second Sign failed: %v", err)
	}
	if sig != again {
		t.Fatal("signature not deterministic for identical message")
	}
}
