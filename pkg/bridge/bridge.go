// Package bridge implements the four dataset lifecycle orchestrations:
// publish, access, revoke, and reprice. Every orchestration follows the same
// shape: obtain a fresh session from the factory, perform the remote
// operation, normalize the outcome. Sessions are never reused across calls.
package bridge

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/deltadao/nautilus-bridge-go/pkg/nautilus"
	"github.com/deltadao/nautilus-bridge-go/pkg/networks"
)

// Datatoken naming applied to every published access service, so access
// token transactions stay identifiable in the chain explorer.
const (
	datatokenName   = "Data Access Token"
	datatokenSymbol = "DAT"
)

// ErrUnknownCurrency reports a currency with no pricing template in the
// network's catalog. It is a client error; everything else a session returns
// is a remote operation failure.
var ErrUnknownCurrency = errors.New("unknown currency")

// ServiceDescriptor describes how the published dataset is served.
type ServiceDescriptor struct {
	URL     string
	APIKey  string
	DataKey string
	Timeout int
}

// Price is an abstract price/currency pair, resolved against a network's
// pricing catalog at publish time.
type Price struct {
	Value    decimal.Decimal
	Currency string
}

// AssetDescriptor describes the dataset being published.
type AssetDescriptor struct {
	Name        string
	Type        string
	Description string
	Author      string
	License     string
	Price       Price
}

// Bridge runs lifecycle operations against the data-exchange network through
// per-request sessions.
type Bridge struct {
	connect nautilus.Factory
}

// New returns a Bridge using the given session factory. A nil factory falls
// back to the production nautilus.Connect.
func New(factory nautilus.Factory) *Bridge {
	if factory == nil {
		factory = nautilus.Connect
	}
	return &Bridge{connect: factory}
}

// PublishDataset publishes a dataset with one access service and returns the
// DID assigned by the network. The currency is re-validated against the
// catalog here even though the HTTP layer fast-fails on it: the catalog is
// the source of truth and this check must never be skipped.
func (b *Bridge) PublishDataset(ctx context.Context, network networks.Network, service ServiceDescriptor, asset AssetDescriptor, privateKeyHex string) (string, error) {
	session, err := b.connect(ctx, network, privateKeyHex)
	if err != nil {
		return "", fmt.Errorf("session setup failed: %w", err)
	}
	defer session.Close()

	catalog, err := networks.PricingCatalog(network)
	if err != nil {
		return "", err
	}
	template, ok := catalog.Lookup(asset.Price.Currency)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, asset.Price.Currency)
	}

	// Shared templates stay untouched; the rate lives only on this
	// request's copy.
	pricingConfig := template
	if !template.Free() {
		pricingConfig = template.WithRate(asset.Price.Value)
	}

	params, err := networks.ConnectionParams(network)
	if err != nil {
		return "", err
	}

	file := nautilus.NewURLFile(service.URL, map[string]string{
		"API_KEY":  service.APIKey,
		"DATA_KEY": service.DataKey,
	})

	accessService, err := nautilus.NewServiceBuilder(nautilus.ServiceTypeAccess).
		SetServiceEndpoint(params.ProviderURI).
		SetTimeout(service.Timeout).
		AddFile(file).
		SetPricing(pricingConfig).
		SetDatatokenNameAndSymbol(datatokenName, datatokenSymbol).
		Build()
	if err != nil {
		return "", fmt.Errorf("service composition failed: %w", err)
	}

	publishable, err := nautilus.NewAssetBuilder().
		SetType(asset.Type).
		SetName(asset.Name).
		SetDescription(asset.Description).
		SetAuthor(asset.Author).
		SetLicense(asset.License).
		SetOwner(session.OwnerAddress()).
		AddService(accessService).
		Build()
	if err != nil {
		return "", fmt.Errorf("asset composition failed: %w", err)
	}

	did, err := session.Publish(ctx, publishable)
	if err != nil {
		return "", fmt.Errorf("publish failed: %w", err)
	}

	zap.L().Info("dataset published",
		zap.String("network", string(network)),
		zap.String("did", did))
	return did, nil
}

// Access returns a time-limited download URL for the asset.
func (b *Bridge) Access(ctx context.Context, network networks.Network, assetDID, privateKeyHex string) (string, error) {
	session, err := b.connect(ctx, network, privateKeyHex)
	if err != nil {
		return "", fmt.Errorf("session setup failed: %w", err)
	}
	defer session.Close()

	url, err := session.Access(ctx, assetDID)
	if err != nil {
		return "", fmt.Errorf("access failed: %w", err)
	}
	return url, nil
}

// Revoke transitions the asset to the revoked-by-publisher state. The current
// state is not pre-checked: repeating the call on an already revoked asset is
// settled by the remote state machine and surfaces here as a remote failure
// when rejected.
func (b *Bridge) Revoke(ctx context.Context, network networks.Network, assetDID, privateKeyHex string) error {
	session, err := b.connect(ctx, network, privateKeyHex)
	if err != nil {
		return fmt.Errorf("session setup failed: %w", err)
	}
	defer session.Close()

	asset, err := session.GetAsset(ctx, assetDID)
	if err != nil {
		return fmt.Errorf("asset resolution failed: %w", err)
	}

	if err := session.SetLifecycleState(ctx, asset, nautilus.StateRevokedByPublisher); err != nil {
		return fmt.Errorf("revoke failed: %w", err)
	}

	zap.L().Info("dataset revoked",
		zap.String("network", string(network)),
		zap.String("did", assetDID))
	return nil
}

// ChangePrice updates the price of the asset's first service. Assets carry
// one access service as published by this bridge; multi-service assets only
// ever have services[0] repriced.
func (b *Bridge) ChangePrice(ctx context.Context, network networks.Network, assetDID string, price decimal.Decimal, privateKeyHex string) error {
	session, err := b.connect(ctx, network, privateKeyHex)
	if err != nil {
		return fmt.Errorf("session setup failed: %w", err)
	}
	defer session.Close()

	asset, err := session.GetAsset(ctx, assetDID)
	if err != nil {
		return fmt.Errorf("asset resolution failed: %w", err)
	}
	if len(asset.Services) == 0 {
		return fmt.Errorf("asset %s has no services", assetDID)
	}

	if err := session.SetServicePrice(ctx, asset, asset.Services[0].ID, price.String()); err != nil {
		return fmt.Errorf("price update failed: %w", err)
	}

	zap.L().Info("dataset repriced",
		zap.String("network", string(network)),
		zap.String("did", assetDID))
	return nil
}
