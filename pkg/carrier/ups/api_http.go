package ups

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Jatin123lodhi/shipping-carrier-integration-service/pkg/carrier"
	"github.com/google/uuid"
)

const (
	tokenPath = "/security/v1/oauth/token"
	ratePath  = "/api/rating/v1/Rate"

	// transactionSource is the fixed transactionSrc header sent on every
	// rating call; UPS uses it to attribute traffic to an integration.
	transactionSource = "carrier-bridge"
)

// HTTPAPIClient is the production implementation of APIClient.
type HTTPAPIClient struct {
	baseURL      string
	tokenURL     string
	clientID     string
	clientSecret string
	timeout      time.Duration
	httpClient   *http.Client
}

// HTTPAPIClientConfig holds configuration for the HTTP client.
type HTTPAPIClientConfig struct {
	BaseURL      string
	TokenURL     string // optional override; defaults to BaseURL + token path
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// NewHTTPAPIClient creates a new HTTP-based API client for production use.
func NewHTTPAPIClient(cfg HTTPAPIClientConfig) *HTTPAPIClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = strings.TrimRight(cfg.BaseURL, "/") + tokenPath
	}

	return &HTTPAPIClient{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		tokenURL:     tokenURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		timeout:      timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ExchangeToken performs one client-credentials exchange against the OAuth
// token endpoint.
func (c *HTTPAPIClient) ExchangeToken(ctx context.Context) (*TokenResponse, *carrier.Error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, carrier.FromUnexpected(err, carrierName, "building token request")
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, carrier.FromNetworkFailure(err, carrierName, c.timeout)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, carrier.FromNetworkFailure(err, carrierName, c.timeout)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.classifyHTTPError(resp, body)
	}

	var tok TokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, carrier.FromMalformedPayload(err, carrierName, string(body))
	}
	return &tok, nil
}

// GetRates posts a rating request with the supplied Authorization header
// value and a freshly generated transaction id.
func (c *HTTPAPIClient) GetRates(ctx context.Context, authorization string, wireReq *RateRequestWire) (*RateResponseWire, *carrier.Error) {
	payload, err := json.Marshal(wireReq)
	if err != nil {
		return nil, carrier.FromUnexpected(err, carrierName, "marshaling rate request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ratePath, bytes.NewReader(payload))
	if err != nil {
		return nil, carrier.FromUnexpected(err, carrierName, "building rate request")
	}
	req.Header.Set("Authorization", authorization)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("transId", uuid.New().String())
	req.Header.Set("transactionSrc", transactionSource)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, carrier.FromNetworkFailure(err, carrierName, c.timeout)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, carrier.FromNetworkFailure(err, carrierName, c.timeout)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.classifyHTTPError(resp, body)
	}

	var wireResp RateResponseWire
	if err := json.Unmarshal(body, &wireResp); err != nil {
		return nil, carrier.FromMalformedPayload(err, carrierName, string(body))
	}
	return &wireResp, nil
}

// classifyHTTPError normalizes a non-2xx response. Rate-limited responses
// carry the Retry-After header through as a retry delay when present.
func (c *HTTPAPIClient) classifyHTTPError(resp *http.Response, body []byte) *carrier.Error {
	cerr := carrier.FromHTTPResponse(resp.StatusCode, http.StatusText(resp.StatusCode), body, carrierName)
	if resp.StatusCode == http.StatusTooManyRequests {
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
			cerr.WithDetail(carrier.DetailRetryAfter, time.Duration(secs)*time.Second)
		}
	}
	return cerr
}

// Ensure HTTPAPIClient implements APIClient interface
var _ APIClient = (*HTTPAPIClient)(nil)
