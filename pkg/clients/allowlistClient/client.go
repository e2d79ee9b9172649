package allowlistClient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/server"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/types"
)

const defaultTimeout = 30 * time.Second

// ErrNotEligible is returned by GetProof when the server has no leaf for the address.
var ErrNotEligible = errors.New("address not eligible")

// ClientConfig holds the configuration for the allowlist client
type ClientConfig struct {
	BaseURL    string
	AdminToken string
	Logger     *zap.Logger
	// HTTPClient defaults to a client with a 30s timeout.
	HTTPClient *http.Client
}

// Client talks to an allowlist server
type Client struct {
	baseURL    string
	adminToken string
	httpClient *http.Client
	logger     *zap.Logger
}

// StatusError is a non-2xx response from the server.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("allowlist server returned %d: %s", e.StatusCode, e.Message)
}

// NewClient creates a new allowlist client
func NewClient(config *ClientConfig) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if config.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.ParseRequestURI(config.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if config.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		adminToken: config.AdminToken,
		httpClient: httpClient,
		logger:     config.Logger,
	}, nil
}

// GetRoot fetches the active allowlist version.
func (c *Client) GetRoot(ctx context.Context) (*server.RootResponse, error) {
	var resp server.RootResponse
	if err := c.do(ctx, http.MethodGet, "/root", nil, false, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetProof fetches addr's proof against the active root.
func (c *Client) GetProof(ctx context.Context, addr common.Address) (*server.ProofResponse, error) {
	var resp server.ProofResponse
	err := c.do(ctx, http.MethodGet, "/proof?address="+url.QueryEscape(addr.Hex()), nil, false, &resp)
	var se *StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotEligible, addr.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Verify asks the server to check a proof. A zero root uses the active root.
func (c *Client) Verify(ctx context.Context, addr common.Address, proof []types.Digest, root types.Digest) (*server.VerifyResponse, error) {
	req := &server.VerifyRequest{
		Address: addr.Hex(),
		Proof:   types.DigestsToHex(proof),
	}
	if !root.IsZero() {
		req.Root = root.Hex()
	}
	var resp server.VerifyResponse
	if err := c.do(ctx, http.MethodPost, "/verify", req, false, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Publish uploads a new allowlist version. Requires the admin token.
func (c *Client) Publish(ctx context.Context, addrs []common.Address, label string) (*server.RootResponse, error) {
	req := &server.PublishRequest{
		Addresses: types.AddressesToHex(addrs),
		Label:     label,
	}
	var resp server.RootResponse
	if err := c.do(ctx, http.MethodPost, "/allowlist", req, true, &resp); err != nil {
		return nil, err
	}
	c.logger.Sugar().Infow("Published allowlist", "version", resp.Version, "root", resp.Root.Hex(), "count", resp.Count)
	return &resp, nil
}

// RecordCommit tells the server which setRoot transaction put version on chain.
func (c *Client) RecordCommit(ctx context.Context, version int64, txHash common.Hash) error {
	req := &server.CommitRequest{
		Version: version,
		TxHash:  txHash.Hex(),
	}
	if err := c.do(ctx, http.MethodPost, "/versions/commit", req, true, nil); err != nil {
		return err
	}
	c.logger.Sugar().Infow("Recorded setRoot transaction", "version", version, "txHash", txHash.Hex())
	return nil
}

// Versions lists stored versions.
func (c *Client) Versions(ctx context.Context) (*server.VersionsResponse, error) {
	var resp server.VersionsResponse
	if err := c.do(ctx, http.MethodGet, "/versions", nil, false, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, admin bool, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		if c.adminToken == "" {
			return fmt.Errorf("admin token is required for %s %s", method, path)
		}
		req.Header.Set("Authorization", "Bearer "+c.adminToken)
	}

	c.logger.Sugar().Debugw("Calling allowlist server", "method", method, "url", c.baseURL+path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to contact allowlist server: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var e struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(respBody))
		if json.Unmarshal(respBody, &e) == nil && e.Error != "" {
			msg = e.Error
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
