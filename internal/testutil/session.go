// Package testutil provides recording stubs for the data-exchange session
// layer, shared by orchestrator and HTTP surface tests.
package testutil

import (
	"context"
	"fmt"

	"github.com/deltadao/nautilus-bridge-go/pkg/nautilus"
	"github.com/deltadao/nautilus-bridge-go/pkg/networks"
)

// StateChange records one lifecycle transition applied through the stub.
type StateChange struct {
	AssetDID string
	State    nautilus.LifecycleState
}

// PriceChange records one service price update applied through the stub.
type PriceChange struct {
	AssetDID  string
	ServiceID string
	Rate      string
}

// RecordingSession implements nautilus.Session in memory and records every
// call for assertions.
type RecordingSession struct {
	Owner      string
	PublishDID string
	AccessURL  string
	// Assets backs GetAsset lookups.
	Assets map[string]*nautilus.Asset
	// Err, when set, is returned by every operation to simulate remote
	// failures.
	Err error

	Published    []*nautilus.Asset
	Accessed     []string
	Fetched      []string
	StateChanges []StateChange
	PriceChanges []PriceChange
	Closed       bool
}

var _ nautilus.Session = (*RecordingSession)(nil)

func (s *RecordingSession) Publish(_ context.Context, asset *nautilus.Asset) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	s.Published = append(s.Published, asset)
	return s.PublishDID, nil
}

func (s *RecordingSession) Access(_ context.Context, assetDID string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	s.Accessed = append(s.Accessed, assetDID)
	return s.AccessURL, nil
}

func (s *RecordingSession) GetAsset(_ context.Context, assetDID string) (*nautilus.Asset, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.Fetched = append(s.Fetched, assetDID)
	asset, ok := s.Assets[assetDID]
	if !ok {
		return nil, fmt.Errorf("asset %s not found", assetDID)
	}
	return asset, nil
}

func (s *RecordingSession) SetLifecycleState(_ context.Context, asset *nautilus.Asset, state nautilus.LifecycleState) error {
	if s.Err != nil {
		return s.Err
	}
	s.StateChanges = append(s.StateChanges, StateChange{AssetDID: asset.DID, State: state})
	return nil
}

func (s *RecordingSession) SetServicePrice(_ context.Context, asset *nautilus.Asset, serviceID, rate string) error {
	if s.Err != nil {
		return s.Err
	}
	s.PriceChanges = append(s.PriceChanges, PriceChange{AssetDID: asset.DID, ServiceID: serviceID, Rate: rate})
	return nil
}

func (s *RecordingSession) OwnerAddress() string {
	return s.Owner
}

func (s *RecordingSession) Close() {
	s.Closed = true
}

// FactoryRecorder produces a nautilus.Factory handing out the given session
// and records how it was invoked.
type FactoryRecorder struct {
	Session *RecordingSession
	// Err, when set, makes every factory call fail (unreachable node, bad
	// key, SDK init failure).
	Err error

	Calls    int
	Networks []networks.Network
}

// Factory returns the nautilus.Factory backed by the recorder.
func (f *FactoryRecorder) Factory() nautilus.Factory {
	return func(_ context.Context, network networks.Network, _ string) (nautilus.Session, error) {
		f.Calls++
		f.Networks = append(f.Networks, network)
		if f.Err != nil {
			return nil, f.Err
		}
		return f.Session, nil
	}
}
