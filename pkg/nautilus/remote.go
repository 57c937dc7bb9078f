package nautilus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/deltadao/nautilus-bridge-go/pkg/networks"
)

// remoteSession implements Session over the network's JSON/HTTP provider and
// metadata cache endpoints. Mutating requests carry a nonce and a wallet
// signature over assetDID+nonce (owner+nonce for publish).
type remoteSession struct {
	wallet *Wallet
	cfg    networks.Config
	http   *http.Client
}

func (s *remoteSession) OwnerAddress() string {
	return s.wallet.Address().Hex()
}

func (s *remoteSession) Close() {
	s.wallet.Close()
}

func (s *remoteSession) Publish(ctx context.Context, asset *Asset) (string, error) {
	nonce := newNonce()
	signature, err := s.wallet.Sign([]byte(asset.Owner + nonce))
	if err != nil {
		return "", err
	}

	payload := struct {
		Asset            *Asset `json:"asset"`
		PublisherAddress string `json:"publisherAddress"`
		Nonce            string `json:"nonce"`
		Signature        string `json:"signature"`
	}{asset, s.OwnerAddress(), nonce, signature}

	var result struct {
		DID string `json:"id"`
	}
	if err := s.doJSON(ctx, http.MethodPost, s.cfg.ProviderURI+"/api/services/publish", payload, &result); err != nil {
		return "", fmt.Errorf("publish rejected: %w", err)
	}
	if result.DID == "" {
		return "", fmt.Errorf("provider returned no asset identifier")
	}

	zap.L().Info("asset published",
		zap.String("did", result.DID),
		zap.String("owner", asset.Owner))
	return result.DID, nil
}

func (s *remoteSession) Access(ctx context.Context, assetDID string) (string, error) {
	nonce := newNonce()
	signature, err := s.wallet.Sign([]byte(assetDID + nonce))
	if err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("documentId", assetDID)
	query.Set("consumerAddress", s.OwnerAddress())
	query.Set("nonce", nonce)
	query.Set("signature", signature)

	var result struct {
		URL string `json:"url"`
	}
	endpoint := s.cfg.ProviderURI + "/api/services/download?" + query.Encode()
	if err := s.doJSON(ctx, http.MethodGet, endpoint, nil, &result); err != nil {
		return "", fmt.Errorf("access request rejected: %w", err)
	}
	if result.URL == "" {
		return "", fmt.Errorf("provider returned no download URL")
	}
	return result.URL, nil
}

func (s *remoteSession) GetAsset(ctx context.Context, assetDID string) (*Asset, error) {
	var asset Asset
	endpoint := s.cfg.MetadataCacheURI + "/api/aquarius/assets/ddo/" + assetDID
	if err := s.doJSON(ctx, http.MethodGet, endpoint, nil, &asset); err != nil {
		return nil, fmt.Errorf("asset resolution failed: %w", err)
	}
	return &asset, nil
}

func (s *remoteSession) SetLifecycleState(ctx context.Context, asset *Asset, state LifecycleState) error {
	nonce := newNonce()
	signature, err := s.wallet.Sign([]byte(asset.DID + nonce))
	if err != nil {
		return err
	}

	payload := struct {
		DID       string         `json:"did"`
		State     LifecycleState `json:"state"`
		Address   string         `json:"publisherAddress"`
		Nonce     string         `json:"nonce"`
		Signature string         `json:"signature"`
	}{asset.DID, state, s.OwnerAddress(), nonce, signature}

	endpoint := s.cfg.MetadataCacheURI + "/api/aquarius/assets/ddo/" + asset.DID + "/state"
	if err := s.doJSON(ctx, http.MethodPost, endpoint, payload, nil); err != nil {
		return fmt.Errorf("state transition rejected: %w", err)
	}
	return nil
}

func (s *remoteSession) SetServicePrice(ctx context.Context, asset *Asset, serviceID, rate string) error {
	nonce := newNonce()
	signature, err := s.wallet.Sign([]byte(asset.DID + nonce))
	if err != nil {
		return err
	}

	payload := struct {
		DID       string `json:"did"`
		ServiceID string `json:"serviceId"`
		Rate      string `json:"rate"`
		Address   string `json:"publisherAddress"`
		Nonce     string `json:"nonce"`
		Signature string `json:"signature"`
	}{asset.DID, serviceID, rate, s.OwnerAddress(), nonce, signature}

	if err := s.doJSON(ctx, http.MethodPost, s.cfg.ProviderURI+"/api/services/price", payload, nil); err != nil {
		return fmt.Errorf("price update rejected: %w", err)
	}
	return nil
}

// doJSON performs one JSON request. A nil out discards the response body;
// non-2xx statuses are returned as errors carrying the status and a bounded
// slice of the body.
func (s *remoteSession) doJSON(ctx context.Context, method, endpoint string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			zap.L().Warn("failed to close response body", zap.Error(err))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("remote returned status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("malformed remote response: %w", err)
	}
	return nil
}

func newNonce() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}
