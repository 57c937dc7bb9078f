package nautilus

import (
	"errors"
	"fmt"

	"github.com/deltadao/nautilus-bridge-go/pkg/pricing"
)

// ServiceBuilder composes an access Service step by step. Build validates
// that every required part was supplied.
type ServiceBuilder struct {
	service Service
}

// NewServiceBuilder starts a builder for a service of the given type.
func NewServiceBuilder(serviceType ServiceType) *ServiceBuilder {
	return &ServiceBuilder{service: Service{Type: serviceType}}
}

// SetServiceEndpoint sets the provider endpoint serving the files.
func (b *ServiceBuilder) SetServiceEndpoint(endpoint string) *ServiceBuilder {
	b.service.ServiceEndpoint = endpoint
	return b
}

// SetTimeout sets the access timeout in seconds. Zero means unlimited.
func (b *ServiceBuilder) SetTimeout(seconds int) *ServiceBuilder {
	b.service.Timeout = seconds
	return b
}

// AddFile appends a file descriptor to the service.
func (b *ServiceBuilder) AddFile(f File) *ServiceBuilder {
	b.service.Files = append(b.service.Files, f)
	return b
}

// SetPricing sets the pricing mechanism of the service. Pass an already
// rate-applied mechanism; the builder does not touch it.
func (b *ServiceBuilder) SetPricing(m pricing.Mechanism) *ServiceBuilder {
	b.service.Pricing = m
	return b
}

// SetDatatokenNameAndSymbol sets the name and symbol of the access token
// minted for this service.
func (b *ServiceBuilder) SetDatatokenNameAndSymbol(name, symbol string) *ServiceBuilder {
	b.service.DatatokenName = name
	b.service.DatatokenSymbol = symbol
	return b
}

// Build returns the composed service or an error when a required part is
// missing.
func (b *ServiceBuilder) Build() (Service, error) {
	s := b.service
	if s.ServiceEndpoint == "" {
		return Service{}, errors.New("service endpoint is required")
	}
	if len(s.Files) == 0 {
		return Service{}, errors.New("at least one file is required")
	}
	if s.Pricing.Type == "" {
		return Service{}, errors.New("pricing is required")
	}
	if s.Timeout < 0 {
		return Service{}, fmt.Errorf("timeout must not be negative, got %d", s.Timeout)
	}
	return s, nil
}

// AssetBuilder composes a publishable Asset.
type AssetBuilder struct {
	asset Asset
}

// NewAssetBuilder starts an empty asset builder.
func NewAssetBuilder() *AssetBuilder {
	return &AssetBuilder{}
}

// SetType sets the asset type (e.g. "dataset").
func (b *AssetBuilder) SetType(t string) *AssetBuilder {
	b.asset.Type = t
	return b
}

// SetName sets the human-readable asset name.
func (b *AssetBuilder) SetName(name string) *AssetBuilder {
	b.asset.Name = name
	return b
}

// SetDescription sets the asset description.
func (b *AssetBuilder) SetDescription(description string) *AssetBuilder {
	b.asset.Description = description
	return b
}

// SetAuthor sets the asset author.
func (b *AssetBuilder) SetAuthor(author string) *AssetBuilder {
	b.asset.Author = author
	return b
}

// SetLicense sets the asset license identifier.
func (b *AssetBuilder) SetLicense(license string) *AssetBuilder {
	b.asset.License = license
	return b
}

// SetOwner sets the owner address the asset is published under.
func (b *AssetBuilder) SetOwner(owner string) *AssetBuilder {
	b.asset.Owner = owner
	return b
}

// AddService appends a service offer to the asset.
func (b *AssetBuilder) AddService(s Service) *AssetBuilder {
	b.asset.Services = append(b.asset.Services, s)
	return b
}

// Build returns the composed asset or an error when a required part is
// missing. A publishable asset needs at least one service.
func (b *AssetBuilder) Build() (*Asset, error) {
	a := b.asset
	if a.Type == "" {
		return nil, errors.New("asset type is required")
	}
	if a.Name == "" {
		return nil, errors.New("asset name is required")
	}
	if a.Owner == "" {
		return nil, errors.New("asset owner is required")
	}
	if len(a.Services) == 0 {
		return nil, errors.New("at least one service is required")
	}
	return &a, nil
}
