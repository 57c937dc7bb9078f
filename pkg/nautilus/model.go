package nautilus

import (
	"fmt"

	"github.com/ipfs/go-cid"

	"github.com/deltadao/nautilus-bridge-go/pkg/pricing"
)

// LifecycleState is the remote status of a published asset. The numeric
// values mirror the metadata state codes of the remote network.
type LifecycleState int

const (
	StateActive LifecycleState = iota
	StateEndOfLife
	StateDeprecated
	StateRevokedByPublisher
	StateOrderingDisabledTemporarily
	StateAssetUnlisted
)

// FileType tags how a service file is addressed.
type FileType string

const (
	FileTypeURL  FileType = "url"
	FileTypeIPFS FileType = "ipfs"
)

// File describes one file exposed by a service: either a URL fetched with the
// given method and headers, or an IPFS object addressed by CID.
type File struct {
	Type    FileType          `json:"type"`
	URL     string            `json:"url,omitempty"`
	Method  string            `json:"method,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Hash    string            `json:"hash,omitempty"`
}

// NewURLFile builds a URL file descriptor fetched with GET and the supplied
// headers.
func NewURLFile(url string, headers map[string]string) File {
	return File{
		Type:    FileTypeURL,
		URL:     url,
		Method:  "GET",
		Headers: headers,
	}
}

// NewIPFSFile builds an IPFS file descriptor. The hash must be a valid CID.
func NewIPFSFile(hash string) (File, error) {
	if _, err := cid.Decode(hash); err != nil {
		return File{}, fmt.Errorf("invalid content identifier %q: %w", hash, err)
	}
	return File{Type: FileTypeIPFS, Hash: hash}, nil
}

// ServiceType tags the kind of offer a service represents.
type ServiceType string

// ServiceTypeAccess is a download/access offer, the only kind this client
// publishes.
const ServiceTypeAccess ServiceType = "access"

// Service is one accessible offer attached to an asset.
type Service struct {
	ID              string            `json:"id,omitempty"`
	Type            ServiceType       `json:"type"`
	ServiceEndpoint string            `json:"serviceEndpoint"`
	Timeout         int               `json:"timeout"`
	Files           []File            `json:"files"`
	Pricing         pricing.Mechanism `json:"pricing"`
	DatatokenName   string            `json:"datatokenName"`
	DatatokenSymbol string            `json:"datatokenSymbol"`
}

// Asset is the remote representation of a published dataset. The DID is
// assigned by the network on publish.
type Asset struct {
	DID         string         `json:"id,omitempty"`
	Type        string         `json:"type"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Author      string         `json:"author"`
	License     string         `json:"license"`
	Owner       string         `json:"owner"`
	Services    []Service      `json:"services"`
	State       LifecycleState `json:"state"`
}
