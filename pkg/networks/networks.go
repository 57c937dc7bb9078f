// Package networks holds the static registry of supported data-exchange
// networks: connection parameters (chain RPC, provider, metadata cache) and
// the per-network catalog of supported pricing currencies. The registry is
// compiled into the binary and read-only after process start; VerifyRegistry
// guards its internal consistency at startup.
package networks

import (
	"fmt"
	"strings"

	"github.com/deltadao/nautilus-bridge-go/pkg/pricing"
)

// Network identifies one supported chain/environment target.
type Network string

const (
	// GenX is the GEN-X Gaia-X testnet.
	GenX Network = "GENX"
	// Mumbai is the Polygon Mumbai testnet.
	Mumbai Network = "MUMBAI"
)

// All enumerates every supported network. Both registry tables must carry
// exactly one entry per element.
var All = []Network{GenX, Mumbai}

// Config holds the connection parameters of one network. Values are immutable
// after process start.
type Config struct {
	// ChainID is the EVM chain identifier, used to cross-check the RPC node.
	ChainID int64
	// NodeURI is the chain JSON-RPC endpoint.
	NodeURI string
	// ProviderURI is the data-exchange provider service endpoint.
	ProviderURI string
	// MetadataCacheURI is the asset metadata cache (DDO resolver) endpoint.
	MetadataCacheURI string
}

var configs = map[Network]Config{
	GenX: {
		ChainID:          100,
		NodeURI:          "https://rpc.genx.minimal-gaia-x.eu",
		ProviderURI:      "https://provider.v4.genx.delta-dao.com",
		MetadataCacheURI: "https://aquarius.v4.delta-dao.com",
	},
	Mumbai: {
		ChainID:          80001,
		NodeURI:          "https://rpc-mumbai.maticvigil.com",
		ProviderURI:      "https://v4.provider.mumbai.oceanprotocol.com",
		MetadataCacheURI: "https://v4.aquarius.oceanprotocol.com",
	},
}

var catalogs = map[Network]pricing.Catalog{
	GenX: {
		"FREE": {Type: pricing.TypeFree},
		"EUROE": {
			Type:              pricing.TypeFixedRate,
			BaseToken:         "0xe974c4894996E012399dEDbda0bE7314a73BBff1",
			BaseTokenDecimals: 6,
			DatatokenDecimals: 18,
		},
	},
	Mumbai: {
		"FREE": {Type: pricing.TypeFree},
		"EUROE": {
			Type:              pricing.TypeFixedRate,
			BaseToken:         "0xA089a21902914C3f3325dBE2334E9B466071E5f1",
			BaseTokenDecimals: 6,
			DatatokenDecimals: 18,
		},
		"MATIC": {
			Type:              pricing.TypeFixedRate,
			BaseToken:         "0x0000000000000000000000000000000000001010",
			BaseTokenDecimals: 18,
			DatatokenDecimals: 18,
		},
	},
}

// Resolve matches a network name case-insensitively against the enumeration.
// Unknown names are a client error at the request boundary.
func Resolve(name string) (Network, error) {
	candidate := Network(strings.ToUpper(name))
	for _, n := range All {
		if n == candidate {
			return n, nil
		}
	}
	return "", fmt.Errorf("unknown network: %q", name)
}

// ConnectionParams returns the connection parameters of the given network.
// A missing entry is a registry inconsistency, not a caller mistake.
func ConnectionParams(n Network) (Config, error) {
	cfg, ok := configs[n]
	if !ok {
		return Config{}, fmt.Errorf("no connection parameters registered for network %s", n)
	}
	return cfg, nil
}

// PricingCatalog returns the currency catalog of the given network.
func PricingCatalog(n Network) (pricing.Catalog, error) {
	c, ok := catalogs[n]
	if !ok {
		return nil, fmt.Errorf("no pricing catalog registered for network %s", n)
	}
	return c, nil
}

// VerifyRegistry checks that every enumerated network has exactly one entry
// in both registry tables, that no table carries entries for networks outside
// the enumeration, and that catalog keys are canonical uppercase. Call it once
// at startup and treat a failure as fatal.
func VerifyRegistry() error {
	for _, n := range All {
		if _, ok := configs[n]; !ok {
			return fmt.Errorf("network %s has no connection parameters", n)
		}
		catalog, ok := catalogs[n]
		if !ok {
			return fmt.Errorf("network %s has no pricing catalog", n)
		}
		if len(catalog) == 0 {
			return fmt.Errorf("network %s has an empty pricing catalog", n)
		}
		for code := range catalog {
			if code != strings.ToUpper(code) {
				return fmt.Errorf("network %s: currency key %q is not canonical uppercase", n, code)
			}
		}
	}
	if len(configs) != len(All) {
		return fmt.Errorf("connection parameter table has %d entries for %d networks", len(configs), len(All))
	}
	if len(catalogs) != len(All) {
		return fmt.Errorf("pricing catalog table has %d entries for %d networks", len(catalogs), len(All))
	}
	return nil
}
