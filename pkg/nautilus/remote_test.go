package nautilus

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deltadao/nautilus-bridge-go/pkg/networks"
	"github.com/deltadao/nautilus-bridge-go/pkg/pricing"
)

// fakeChainNode answers eth_chainId with the given chain ID so that connect
// can cross-check the registry without a live node.
func fakeChainNode(t *testing.T, chainIDHex string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("malformed RPC request: %v", err)
		}
		if req.Method != "eth_chainId" {
			t.Fatalf("unexpected RPC method: %s", req.Method)
		}
		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": chainIDHex}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Fatalf("failed to encode RPC response: %v", err)
		}
	}))
}

func testSession(t *testing.T, remote *httptest.Server) *remoteSession {
	t.Helper()
	w, err := NewWallet(context.Background(), testKeyHex, "http://localhost:8545")
	if err != nil {
		t.Fatalf("NewWallet failed: %v", err)
	}
	t.Cleanup(w.Close)
	return &remoteSession{
		wallet: w,
		cfg: networks.Config{
			ChainID:          100,
			ProviderURI:      remote.URL,
			MetadataCacheURI: remote.URL,
		},
		http: remote.Client(),
	}
}

// TestConnect_ChainIDCheck verifies that session setup accepts a node
// reporting the registered chain ID and rejects a mismatching one.
func TestConnect_ChainIDCheck(t *testing.T) {
	node := fakeChainNode(t, "0x64") // chain 100
	defer node.Close()

	cfg := networks.Config{ChainID: 100, NodeURI: node.URL}
	session, err := connect(context.Background(), cfg, testKeyHex)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	session.Close()

	cfg.ChainID = 80001
	if _, err := connect(context.Background(), cfg, testKeyHex); err == nil {
		t.Fatal("connect should fail on chain ID mismatch")
	}
}

// TestRemoteSession_Publish verifies the publish request shape and DID
// extraction from the provider response.
func TestRemoteSession_Publish(t *testing.T) {
	var got struct {
		Asset            *Asset `json:"asset"`
		PublisherAddress string `json:"publisherAddress"`
		Nonce            string `json:"nonce"`
		Signature        string `json:"signature"`
	}
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/services/publish" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("malformed body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		if _, err := w.Write([]byte(`{"id":"did:op:feed"}`)); err != nil {
			t.Fatal(err)
		}
	}))
	defer remote.Close()

	s := testSession(t, remote)
	asset := &Asset{Type: "dataset", Name: "n", Owner: s.OwnerAddress(),
		Services: []Service{{Type: ServiceTypeAccess, ServiceEndpoint: "https://p",
			Files:   []File{NewURLFile("https://x", nil)},
			Pricing: pricing.Mechanism{Type: pricing.TypeFree}}}}

	did, err := s.Publish(context.Background(), asset)
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if did != "did:op:feed" {
		t.Fatalf("unexpected DID: %s", did)
	}
	if got.PublisherAddress != testKeyAddr {
		t.Fatalf("unexpected publisher: %s", got.PublisherAddress)
	}
	if got.Nonce == "" || got.Signature == "" {
		t.Fatal("publish request must carry nonce and signature")
	}
}

// TestRemoteSession_Access verifies signed download URL requests.
func TestRemoteSession_Access(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/services/download" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("documentId") != "did:op:ab12" || q.Get("consumerAddress") != testKeyAddr {
			t.Fatalf("unexpected query: %v", q)
		}
		if q.Get("nonce") == "" || q.Get("signature") == "" {
			t.Fatal("download request must carry nonce and signature")
		}
		if _, err := w.Write([]byte(`{"url":"https://provider/one-time/xyz"}`)); err != nil {
			t.Fatal(err)
		}
	}))
	defer remote.Close()

	s := testSession(t, remote)
	url, err := s.Access(context.Background(), "did:op:ab12")
	if err != nil {
		t.Fatalf("Access failed: %v", err)
	}
	if url != "https://provider/one-time/xyz" {
		t.Fatalf("unexpected url: %s", url)
	}
}

// TestRemoteSession_GetAsset verifies DDO resolution against the metadata
// cache.
func TestRemoteSession_GetAsset(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/aquarius/assets/ddo/did:op:ab12" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if _, err := w.Write([]byte(`{"id":"did:op:ab12","type":"dataset","services":[{"id":"svc-1","type":"access"}]}`)); err != nil {
			t.Fatal(err)
		}
	}))
	defer remote.Close()

	s := testSession(t, remote)
	asset, err := s.GetAsset(context.Background(), "did:op:ab12")
	if err != nil {
		t.Fatalf("GetAsset failed: %v", err)
	}
	if asset.DID != "did:op:ab12" || len(asset.Services) != 1 || asset.Services[0].ID != "svc-1" {
		t.Fatalf("unexpected asset: %#v", asset)
	}
}

// TestRemoteSession_SetLifecycleState verifies the state transition request.
func TestRemoteSession_SetLifecycleState(t *testing.T) {
	var got struct {
		DID   string         `json:"did"`
		State LifecycleState `json:"state"`
	}
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/aquarius/assets/ddo/did:op:ab12/state" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("malformed body: %v", err)
		}
	}))
	defer remote.Close()

	s := testSession(t, remote)
	err := s.SetLifecycleState(context.Background(), &Asset{DID: "did:op:ab12"}, StateRevokedByPublisher)
	if err != nil {
		t.Fatalf("SetLifecycleState failed: %v", err)
	}
	if got.DID != "did:op:ab12" || got.State != StateRevokedByPublisher {
		t.Fatalf("unexpected request: %#v", got)
	}
}

// TestRemoteSession_RemoteRejections verifies non-2xx provider responses
// surface as errors with the status attached.
func TestRemoteSession_RemoteRejections(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer remote.Close()

	s := testSession(t, remote)
	ctx := context.Background()

	if _, err := s.Access(ctx, "did:op:ab12"); err == nil {
		t.Fatal("Access should surface the rejection")
	}
	if _, err := s.GetAsset(ctx, "did:op:ab12"); err == nil {
		t.Fatal("GetAsset should surface the rejection")
	}
	if err := s.SetServicePrice(ctx, &Asset{DID: "did:op:ab12"}, "svc-1", "2.5"); err == nil {
		t.Fatal("SetServicePrice should surface the rejection")
	}
}
