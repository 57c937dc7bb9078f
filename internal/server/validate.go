package server

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/deltadao/nautilus-bridge-go/pkg/networks"
)

var (
	// privKeyPattern matches a raw 64-character lowercase hex private key.
	privKeyPattern = regexp.MustCompile(`^[0-9a-z]{64}$`)

	// assetDIDPattern matches a decentralized asset identifier: the did:op:
	// prefix followed by 64 lowercase hex characters.
	assetDIDPattern = regexp.MustCompile(`^did:op:[0-9a-z]{64}$`)
)

// fieldErrors collects validation failures keyed by field. The first message
// per field wins, matching one error per input field in the response.
type fieldErrors map[string]string

func (f fieldErrors) add(field, message string) {
	if _, taken := f[field]; !taken {
		f[field] = message
	}
}

// privateKey extracts and format-checks the priv_key header. The value is a
// write-only credential: it is never echoed in responses and never logged,
// only its validity is reported.
func privateKey(ctx echo.Context, errs fieldErrors) string {
	key := ctx.Request().Header.Get("priv_key")
	if !privKeyPattern.MatchString(key) {
		errs.add("priv_key", "must be 64 lowercase hex characters")
		return ""
	}
	return key
}

// networkParam resolves the :network path segment case-insensitively against
// the enumerated networks.
func networkParam(ctx echo.Context, errs fieldErrors) networks.Network {
	name := ctx.Param("network")
	network, err := networks.Resolve(name)
	if err != nil {
		errs.add("network", fmt.Sprintf("Unknown Network: '%s'", strings.ToUpper(name)))
		return ""
	}
	return network
}

// assetDIDParam format-checks the :assetdid path segment.
func assetDIDParam(ctx echo.Context, errs fieldErrors) string {
	did := ctx.Param("assetdid")
	if !assetDIDPattern.MatchString(did) {
		errs.add("assetdid", "must be did:op: followed by 64 lowercase hex characters")
		return ""
	}
	return did
}

// validate checks the publish payload shape and domain constraints, and
// case-normalizes the coerced fields in place: asset type is lower-cased,
// currency is upper-cased. Timeout defaults to 0 when omitted.
func (r *publishRequest) validate() fieldErrors {
	errs := fieldErrors{}

	if r.ServiceDescr == nil {
		errs.add("service_descr", "is required")
	} else {
		r.ServiceDescr.validate(errs)
	}

	if r.AssetDescr == nil {
		errs.add("asset_descr", "is required")
	} else {
		r.AssetDescr.validate(errs)
	}

	return errs
}

func (d *serviceDescriptor) validate(errs fieldErrors) {
	switch {
	case d.URL == nil:
		errs.add("service_descr.url", "is required")
	default:
		parsed, err := url.Parse(*d.URL)
		if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			errs.add("service_descr.url", "must be a valid http(s) URL")
		}
	}

	if d.APIKey == nil {
		errs.add("service_descr.api_key", "is required")
	}
	if d.DataKey == nil {
		errs.add("service_descr.data_key", "is required")
	}

	if d.Timeout == nil {
		zero := 0
		d.Timeout = &zero
	} else if *d.Timeout < 0 {
		errs.add("service_descr.timeout", "must not be negative")
	}
}

func (d *assetDescriptor) validate(errs fieldErrors) {
	if d.Name == nil || *d.Name == "" {
		errs.add("asset_descr.name", "is required")
	}
	if d.Description == nil {
		errs.add("asset_descr.description", "is required")
	}
	if d.Author == nil {
		errs.add("asset_descr.author", "is required")
	}
	if d.License == nil {
		errs.add("asset_descr.license", "is required")
	}

	if d.Type == nil {
		errs.add("asset_descr.type", "is required")
	} else {
		lowered := strings.ToLower(*d.Type)
		d.Type = &lowered
		if lowered != "dataset" {
			errs.add("asset_descr.type", "must be 'dataset'")
		}
	}

	if d.Price == nil {
		errs.add("asset_descr.price", "is required")
		return
	}

	if d.Price.Value == nil {
		errs.add("asset_descr.price.value", "is required")
	} else if *d.Price.Value < 0.0 {
		errs.add("asset_descr.price.value", "must be at least 0")
	}

	if d.Price.Currency == nil || *d.Price.Currency == "" {
		errs.add("asset_descr.price.currency", "is required")
	} else {
		uppered := strings.ToUpper(*d.Price.Currency)
		d.Price.Currency = &uppered
	}
}

// minUpdatePrice is the lowest accepted price for an update. Publishing
// accepts 0.0 (free templates exist), updating an already priced service
// does not.
const minUpdatePrice = 0.01

func (r *updatePriceRequest) validate() fieldErrors {
	errs := fieldErrors{}
	if r.Price == nil {
		errs.add("price", "is required")
	} else if *r.Price < minUpdatePrice {
		errs.add("price", "must be at least 0.01")
	}
	return errs
}
