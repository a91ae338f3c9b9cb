package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// TLS version constants
const (
	TLS12 = tls.VersionTLS12
	TLS13 = tls.VersionTLS13
)

// DefaultUserAgent is sent when HTTPSConfig.UserAgent is empty
const DefaultUserAgent = "go-mktows/1.0"

// Recommended TLS 1.2 cipher suites
var RecommendedTLS12CipherSuites = []uint16{
	tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
	tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
}

// HTTPSConfig contains HTTPS client configuration
type HTTPSConfig struct {
	MinTLSVersion   uint16
	MaxTLSVersion   uint16
	CipherSuites    []uint16
	Certificates    []tls.Certificate
	RootCAs         *x509.CertPool
	Timeout         time.Duration
	IdleConnTimeout time.Duration
	// RateLimit is the sustained number of requests per second; zero or
	// negative disables limiting
	RateLimit float64
	RateBurst int
	UserAgent string
}

// DefaultHTTPSConfig returns a default HTTPS configuration. The rate limit
// matches the service quota of 100 calls per 20 seconds.
func DefaultHTTPSConfig() *HTTPSConfig {
	return &HTTPSConfig{
		MinTLSVersion:   TLS12,
		MaxTLSVersion:   TLS13,
		CipherSuites:    RecommendedTLS12CipherSuites,
		Timeout:         20 * time.Second,
		IdleConnTimeout: 90 * time.Second,
		RateLimit:       5,
		RateBurst:       5,
		UserAgent:       DefaultUserAgent,
	}
}

// StatusError is returned for non-200 responses. Body holds the response
// so callers can look for a SOAP fault in it.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, string(e.Body))
}

// HTTPSClient posts SOAP messages over HTTPS. It is safe for concurrent use.
type HTTPSClient struct {
	client  *http.Client
	config  *HTTPSConfig
	limiter *rate.Limiter
}

// NewHTTPSClient creates a new HTTPS client. The client keeps its own copy
// of config.
func NewHTTPSClient(config *HTTPSConfig) *HTTPSClient {
	if config == nil {
		config = DefaultHTTPSConfig()
	}
	cfg := *config
	config = &cfg
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	tlsConfig := &tls.Config{
		MinVersion:   config.MinTLSVersion,
		MaxVersion:   config.MaxTLSVersion,
		CipherSuites: config.CipherSuites,
		Certificates: config.Certificates,
		RootCAs:      config.RootCAs,
	}

	transport := &http.Transport{
		TLSClientConfig:     tlsConfig,
		IdleConnTimeout:     config.IdleConnTimeout,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
	}

	limit := rate.Inf
	burst := config.RateBurst
	if config.RateLimit > 0 {
		limit = rate.Limit(config.RateLimit)
		if burst <= 0 {
			burst = 1
		}
	}

	return &HTTPSClient{
		client: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
		},
		config:  config,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Send posts message to endpoint and returns the response body. Non-200
// responses are returned as *StatusError.
func (c *HTTPSClient) Send(ctx context.Context, endpoint string, message []byte, contentType, soapAction string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(message))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("SOAPAction", `"`+soapAction+`"`)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: responseBody}
	}

	return responseBody, nil
}

// CloseIdleConnections releases pooled connections
func (c *HTTPSClient) CloseIdleConnections() {
	c.client.CloseIdleConnections()
}
