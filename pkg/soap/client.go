package soap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sirosfoundation/go-mktows/pkg/fault"
	"github.com/sirosfoundation/go-mktows/pkg/signature"
	"github.com/sirosfoundation/go-mktows/pkg/transport"
)

// DefaultTimeout is the per-call timeout used by DefaultCallOptions
const DefaultTimeout = 20 * time.Second

// CallOptions are the per-call settings handed to a Transport
type CallOptions struct {
	Endpoint string
	Timeout  time.Duration
	// Trace logs request and response bodies at debug level
	Trace      bool
	SOAPAction string
}

// DefaultCallOptions returns options for endpoint with the default timeout
func DefaultCallOptions(endpoint string) CallOptions {
	return CallOptions{
		Endpoint: endpoint,
		Timeout:  DefaultTimeout,
	}
}

// Transport performs one remote operation. A successful call returns the
// decoded response tree; a remote fault is returned as *fault.Fault.
type Transport interface {
	Invoke(ctx context.Context, operation string, params any, opts CallOptions, header *signature.Header) (map[string]any, error)
}

// Sender posts a serialized envelope and returns the response body
type Sender interface {
	Send(ctx context.Context, endpoint string, message []byte, contentType, soapAction string) ([]byte, error)
}

// ClientConfig configures a Client
type ClientConfig struct {
	// Sender defaults to an HTTPS client with default settings
	Sender Sender
	// Namespace is used when the header does not name one
	Namespace string
	Logger    *slog.Logger
}

// Client is the SOAP 1.1 Transport implementation
type Client struct {
	sender    Sender
	namespace string
	logger    *slog.Logger
}

var _ Transport = (*Client)(nil)

// NewClient creates a new SOAP client
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = &ClientConfig{}
	}

	sender := config.Sender
	if sender == nil {
		sender = transport.NewHTTPSClient(nil)
	}
	namespace := config.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		sender:    sender,
		namespace: namespace,
		logger:    logger,
	}
}

// Invoke sends params to opts.Endpoint and decodes the reply. Faults that
// arrive with a non-200 status are decoded as well.
func (c *Client) Invoke(ctx context.Context, operation string, params any, opts CallOptions, header *signature.Header) (map[string]any, error) {
	if opts.Endpoint == "" {
		return nil, errors.New("endpoint is required")
	}

	namespace := c.namespace
	if header != nil && header.Namespace != "" {
		namespace = header.Namespace
	}

	envelope, err := BuildEnvelope(namespace, params, header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	logger := c.logger.With(
		slog.String("call_id", uuid.NewString()),
		slog.String("operation", operation),
	)
	if opts.Trace {
		logger.Debug("SOAP request",
			slog.String("endpoint", opts.Endpoint),
			slog.String("body", string(envelope)))
	}

	body, err := c.sender.Send(ctx, opts.Endpoint, envelope, ContentType, opts.SOAPAction)
	if err != nil {
		var statusErr *transport.StatusError
		if errors.As(err, &statusErr) {
			if opts.Trace {
				logger.Debug("SOAP response",
					slog.Int("status", statusErr.StatusCode),
					slog.String("body", string(statusErr.Body)))
			}
			var f *fault.Fault
			if _, perr := ParseResponse(statusErr.Body); errors.As(perr, &f) {
				return nil, f
			}
		}
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	if opts.Trace {
		logger.Debug("SOAP response", slog.String("body", string(body)))
	}

	resp, err := ParseResponse(body)
	if err != nil {
		var f *fault.Fault
		if errors.As(err, &f) {
			return nil, f
		}
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	return resp, nil
}
