package mktows

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/sirosfoundation/go-mktows/pkg/leadkey"
	"github.com/sirosfoundation/go-mktows/pkg/message"
	"github.com/sirosfoundation/go-mktows/pkg/signature"
)

// CampaignKey selects a campaign either by id or by name. It is
// implemented by CampaignID and CampaignName.
type CampaignKey interface {
	apply(p *message.ParamsRequestCampaign)
	String() string
}

// CampaignID selects a campaign by numeric id
type CampaignID int64

func (id CampaignID) apply(p *message.ParamsRequestCampaign) {
	v := int64(id)
	p.CampaignID = &v
}

func (id CampaignID) String() string { return strconv.FormatInt(int64(id), 10) }

// CampaignName selects a campaign by name
type CampaignName string

func (n CampaignName) apply(p *message.ParamsRequestCampaign) {
	p.CampaignName = string(n)
}

func (n CampaignName) String() string { return string(n) }

// ParseCampaignKey treats integer strings as ids and anything else as a name
func ParseCampaignKey(s string) CampaignKey {
	trimmed := strings.TrimSpace(s)
	if leadkey.IsNumeric(trimmed) {
		if id, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return CampaignID(id)
		}
	}
	return CampaignName(s)
}

// GetCampaigns lists campaigns available to the API. A non-empty name
// restricts the result to that exact name.
func (c *Client) GetCampaigns(ctx context.Context, name string) ([]message.Campaign, error) {
	params := message.ParamsGetCampaignsForSource{Source: message.SourceMKTOWS}
	if name != "" {
		exact := true
		params.Name = name
		params.ExactName = &exact
	}

	resp, err := c.invoke(ctx, message.OpGetCampaignsForSource, params)
	if err != nil {
		c.logError(message.OpGetCampaignsForSource, err)
		return nil, err
	}

	return message.NormalizeCampaigns(resp)
}

// RequestCampaign runs a campaign on the given leads. Tokens may be nil.
func (c *Client) RequestCampaign(ctx context.Context, key CampaignKey, leads []leadkey.LeadKey, tokens []message.Token) (bool, error) {
	if key == nil {
		return false, &ValidationError{Field: "campaignKey", Reason: "is required"}
	}

	keys := make([]leadkey.LeadKey, len(leads))
	for i, l := range leads {
		keys[i] = leadkey.LeadKey{Type: leadkey.Type(strings.ToUpper(string(l.Type))), Value: l.Value}
	}

	params := message.ParamsRequestCampaign{
		Source:   message.SourceMKTOWS,
		LeadList: message.LeadKeyList{LeadKeys: keys},
	}
	if tokens != nil {
		params.ProgramTokenList = &message.ProgramTokens{Attrib: tokens}
	}
	key.apply(&params)

	resp, err := c.invoke(ctx, message.OpRequestCampaign, params)
	if err != nil {
		c.logError(message.OpRequestCampaign, err)
		return false, err
	}

	return message.NormalizeSuccess(resp)
}

// ScheduleRequest describes a campaign run with token values
type ScheduleRequest struct {
	ProgramName  string
	CampaignName string
	// Tokens is required; an empty non-nil slice sends no tokens
	Tokens []message.Token
	// RunAt defaults to now
	RunAt time.Time
}

func (r *ScheduleRequest) validate() error {
	if r == nil {
		return &ValidationError{Field: "request", Reason: "is required"}
	}
	if r.ProgramName == "" {
		return &ValidationError{Field: "programName", Reason: "is required"}
	}
	if r.CampaignName == "" {
		return &ValidationError{Field: "campaignName", Reason: "is required"}
	}
	if r.Tokens == nil {
		return &ValidationError{Field: "tokens", Reason: "is required"}
	}
	for i, t := range r.Tokens {
		if t.Name == "" {
			return &ValidationError{Field: "tokens[" + strconv.Itoa(i) + "].name", Reason: "is required"}
		}
	}
	return nil
}

// ScheduleCampaign schedules a campaign of a program. The request is
// checked locally first; an invalid request never reaches the transport.
func (c *Client) ScheduleCampaign(ctx context.Context, req *ScheduleRequest) (bool, error) {
	if err := req.validate(); err != nil {
		return false, err
	}

	runAt := req.RunAt
	if runAt.IsZero() {
		runAt = c.signer.Now()
	}

	params := message.ParamsScheduleCampaign{
		ProgramName:      req.ProgramName,
		CampaignName:     req.CampaignName,
		CampaignRunAt:    signature.FormatTimestamp(runAt, c.signer.Location()),
		ProgramTokenList: message.ProgramTokens{Attrib: req.Tokens},
	}

	resp, err := c.invoke(ctx, message.OpScheduleCampaign, params)
	if err != nil {
		c.logError(message.OpScheduleCampaign, err)
		return false, err
	}

	c.logger.Debug("Campaign scheduled",
		slog.String("program", req.ProgramName),
		slog.String("campaign", req.CampaignName),
		slog.String("run_at", params.CampaignRunAt))

	return message.NormalizeSuccess(resp)
}
