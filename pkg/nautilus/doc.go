// Package nautilus is a thin client for the decentralized data-exchange
// network this service publishes datasets to. It exposes the capability
// surface the rest of the repository consumes: per-request sessions bound to
// a signing identity and a network, asset/service model types, and builders
// for composing publishable assets.
//
// # Sessions
//
// A Session is obtained from a Factory for one network and one raw private
// key. Sessions are owned by the orchestration call that created them: they
// are never pooled, cached, or shared across requests, and must be closed
// when the call ends.
//
//	session, err := nautilus.Connect(ctx, networks.GenX, privateKeyHex)
//	if err != nil { ... }
//	defer session.Close()
//	url, err := session.Access(ctx, assetDID)
//
// # Remote protocol
//
// The production session speaks JSON over HTTP to the network's provider and
// metadata cache endpoints, signing each mutating request with the wallet
// key. On-chain settlement, proof construction, and transaction building are
// the remote network's concern; the client treats operation outcomes as
// opaque success or failure.
package nautilus
