package nautilus

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/deltadao/nautilus-bridge-go/pkg/networks"
)

// Session is an authenticated handle to the data-exchange network, scoped to
// one signing identity and one network. Sessions are single-request objects;
// close them when the owning operation ends.
type Session interface {
	// Publish registers the asset with the network and returns its new DID.
	Publish(ctx context.Context, asset *Asset) (string, error)
	// Access returns a time-limited download URL for the asset. The URL's
	// validity window is the remote protocol's own concern.
	Access(ctx context.Context, assetDID string) (string, error)
	// GetAsset resolves the asset's current remote representation.
	GetAsset(ctx context.Context, assetDID string) (*Asset, error)
	// SetLifecycleState transitions the asset to the given state.
	SetLifecycleState(ctx context.Context, asset *Asset, state LifecycleState) error
	// SetServicePrice updates the rate of one service of the asset.
	SetServicePrice(ctx context.Context, asset *Asset, serviceID, rate string) error
	// OwnerAddress returns the address of the signing identity as hex.
	OwnerAddress() string
	// Close releases the session's resources.
	Close()
}

// Factory constructs a Session for one network and raw signing key. The
// production factory is Connect; tests substitute recording stubs.
type Factory func(ctx context.Context, network networks.Network, privateKeyHex string) (Session, error)

// Connect builds a signing identity against the network's node endpoint,
// cross-checks the node's chain ID against the registry, and returns a
// session speaking to the network's provider and metadata cache. Each call is
// a fresh, independent attempt; no retries are performed.
func Connect(ctx context.Context, network networks.Network, privateKeyHex string) (Session, error) {
	cfg, err := networks.ConnectionParams(network)
	if err != nil {
		return nil, err
	}

	session, err := connect(ctx, cfg, privateKeyHex)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("session established",
		zap.String("network", string(network)),
		zap.Int64("chain_id", cfg.ChainID))
	return session, nil
}

func connect(ctx context.Context, cfg networks.Config, privateKeyHex string) (*remoteSession, error) {
	wallet, err := NewWallet(ctx, privateKeyHex, cfg.NodeURI)
	if err != nil {
		return nil, err
	}

	chainID, err := wallet.ChainID(ctx)
	if err != nil {
		wallet.Close()
		return nil, fmt.Errorf("chain node unreachable: %w", err)
	}
	if chainID.Int64() != cfg.ChainID {
		wallet.Close()
		return nil, fmt.Errorf("node reports chain %d, registry expects %d",
			chainID.Int64(), cfg.ChainID)
	}

	return &remoteSession{
		wallet: wallet,
		cfg:    cfg,
		http:   &http.Client{Timeout: 30 * time.Second},
	}, nil
}
