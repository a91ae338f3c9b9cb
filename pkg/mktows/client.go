package mktows

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sirosfoundation/go-mktows/pkg/attribute"
	"github.com/sirosfoundation/go-mktows/pkg/fault"
	"github.com/sirosfoundation/go-mktows/pkg/leadkey"
	"github.com/sirosfoundation/go-mktows/pkg/message"
	"github.com/sirosfoundation/go-mktows/pkg/signature"
	"github.com/sirosfoundation/go-mktows/pkg/soap"
)

// ClientConfig contains configuration for the Marketo client
type ClientConfig struct {
	// Transport performs the remote calls. Its lifecycle belongs to the caller.
	Transport soap.Transport
	Endpoint  string
	UserID    string
	SecretKey string
	// Namespace defaults to soap.DefaultNamespace
	Namespace string
	// Location is the zone for request timestamps and campaign run times.
	// Defaults to UTC.
	Location *time.Location
	// Timeout defaults to soap.DefaultTimeout
	Timeout time.Duration
	// Debug turns on request/response tracing in the transport
	Debug  bool
	Logger *slog.Logger
	// Clock replaces time.Now, mainly for tests
	Clock func() time.Time
}

// Client exposes one method per Marketo SOAP operation. It holds no mutable
// state; it is safe for concurrent use when its Transport is.
type Client struct {
	transport soap.Transport
	signer    *signature.Signer
	opts      soap.CallOptions
	logger    *slog.Logger
}

// NewClient creates a new Marketo client
func NewClient(config *ClientConfig) (*Client, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}
	if config.Transport == nil {
		return nil, errors.New("transport is required")
	}
	if config.Endpoint == "" {
		return nil, errors.New("endpoint is required")
	}
	if config.UserID == "" || config.SecretKey == "" {
		return nil, errors.New("user id and secret key are required")
	}

	namespace := config.Namespace
	if namespace == "" {
		namespace = soap.DefaultNamespace
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var signerOpts []signature.Option
	if config.Clock != nil {
		signerOpts = append(signerOpts, signature.WithClock(config.Clock))
	}

	opts := soap.DefaultCallOptions(config.Endpoint)
	if config.Timeout > 0 {
		opts.Timeout = config.Timeout
	}
	opts.Trace = config.Debug

	return &Client{
		transport: config.Transport,
		signer: signature.NewSigner(signature.Credentials{
			UserID:    config.UserID,
			SecretKey: config.SecretKey,
			Namespace: namespace,
			Location:  config.Location,
		}, signerOpts...),
		opts:   opts,
		logger: logger,
	}, nil
}

// invoke signs and sends exactly one call
func (c *Client) invoke(ctx context.Context, operation string, params any) (map[string]any, error) {
	return c.transport.Invoke(ctx, operation, params, c.opts, c.signer.Header())
}

func (c *Client) logError(operation string, err error) {
	c.logger.Error("Marketo SOAP API call failed",
		slog.String("operation", operation),
		slog.Int("code", int(fault.Classify(err))),
		slog.String("error", err.Error()))
}

// GetLeadBy looks up leads by an explicit key. A lead-not-found fault
// returns nil, nil; a lone match is returned as a one-element slice.
func (c *Client) GetLeadBy(ctx context.Context, key leadkey.LeadKey) ([]message.Lead, error) {
	params := message.ParamsGetLead{LeadKey: key}

	resp, err := c.invoke(ctx, message.OpGetLead, params)
	if err != nil {
		if fault.IsLeadNotFound(err) {
			return nil, nil
		}
		c.logError(message.OpGetLead, err)
		return nil, err
	}

	return message.NormalizeLeads(resp)
}

// GetLeadByKey looks up leads by a key whose type is inferred
func (c *Client) GetLeadByKey(ctx context.Context, key string) ([]message.Lead, error) {
	return c.GetLeadBy(ctx, leadkey.New(key))
}

// GetLeadActivity returns the activity log of a lead. An empty keyType is
// inferred from key. A lead-not-found fault yields an empty slice.
func (c *Client) GetLeadActivity(ctx context.Context, key string, keyType leadkey.Type) ([]message.Activity, error) {
	typ := leadkey.Classify(key)
	if keyType != "" {
		var err error
		if typ, err = leadkey.ParseType(string(keyType)); err != nil {
			return nil, &ValidationError{Field: "keyType", Reason: err.Error()}
		}
	}

	params := message.ParamsGetLeadActivity{
		LeadKey:   leadkey.LeadKey{Type: typ, Value: key},
		BatchSize: message.DefaultActivityBatchSize,
	}

	resp, err := c.invoke(ctx, message.OpGetLeadActivity, params)
	if err != nil {
		if fault.IsLeadNotFound(err) {
			return []message.Activity{}, nil
		}
		c.logError(message.OpGetLeadActivity, err)
		return nil, err
	}

	return message.NormalizeActivity(resp, c.signer.Location())
}

type syncOptions struct {
	leadKey string
	cookie  string
}

// SyncOption configures a SyncLead call
type SyncOption func(*syncOptions)

// WithLeadKey identifies the lead to update, by numeric id or email
func WithLeadKey(key string) SyncOption {
	return func(o *syncOptions) {
		o.leadKey = key
	}
}

// WithCookie associates the lead with a Munchkin tracking cookie
func WithCookie(cookie string) SyncOption {
	return func(o *syncOptions) {
		o.cookie = cookie
	}
}

// SyncLead creates or updates a lead and returns it as stored
func (c *Client) SyncLead(ctx context.Context, attrs *attribute.Map, opts ...SyncOption) (*message.SyncResult, error) {
	var o syncOptions
	for _, opt := range opts {
		opt(&o)
	}

	params := message.ParamsSyncLead{
		LeadRecord:    BuildLeadRecord(attrs, o.leadKey),
		ReturnLead:    true,
		MarketoCookie: o.cookie,
	}

	resp, err := c.invoke(ctx, message.OpSyncLead, params)
	if err != nil {
		c.logError(message.OpSyncLead, err)
		return nil, err
	}

	return message.NormalizeSyncResult(resp)
}

// BuildLeadRecord encodes attrs into a wire lead record, identified by
// leadKey when it is not empty
func BuildLeadRecord(attrs *attribute.Map, leadKey string) message.LeadRecord {
	return message.NewLeadRecord(attrs, leadKey)
}

// GetFields maps lead field names to display names. Any error is logged and
// an empty map returned: callers must read an empty map as unknown.
func (c *Client) GetFields(ctx context.Context) map[string]string {
	params := message.ParamsDescribeMObject{ObjectName: message.ObjectLeadRecord}

	resp, err := c.invoke(ctx, message.OpDescribeMObject, params)
	if err == nil {
		var fields map[string]string
		if fields, err = message.NormalizeFields(resp); err == nil {
			return fields
		}
	}

	c.logger.Warn("Failed to load lead field metadata",
		slog.String("operation", message.OpDescribeMObject),
		slog.String("error", err.Error()))
	return map[string]string{}
}
