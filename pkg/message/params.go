package message

import (
	"encoding/xml"

	"github.com/sirosfoundation/go-mktows/pkg/attribute"
	"github.com/sirosfoundation/go-mktows/pkg/leadkey"
)

// Operation names
const (
	OpGetLead               = "getLead"
	OpSyncLead              = "syncLead"
	OpGetLeadActivity       = "getLeadActivity"
	OpGetCampaignsForSource = "getCampaignsForSource"
	OpRequestCampaign       = "requestCampaign"
	OpScheduleCampaign      = "scheduleCampaign"
	OpDescribeMObject       = "describeMObject"
)

// SourceMKTOWS is the campaign source for API triggered campaigns
const SourceMKTOWS = "MKTOWS"

// ObjectLeadRecord is the object described by describeMObject
const ObjectLeadRecord = "LeadRecord"

// DefaultActivityBatchSize is the page size requested from getLeadActivity
const DefaultActivityBatchSize = 100

// ParamsGetLead is the request body of getLead
type ParamsGetLead struct {
	XMLName xml.Name        `xml:"paramsGetLead"`
	LeadKey leadkey.LeadKey `xml:"leadKey"`
}

// ParamsSyncLead is the request body of syncLead
type ParamsSyncLead struct {
	XMLName       xml.Name   `xml:"paramsSyncLead"`
	LeadRecord    LeadRecord `xml:"leadRecord"`
	ReturnLead    bool       `xml:"returnLead"`
	MarketoCookie string     `xml:"marketoCookie,omitempty"`
}

// LeadRecord is a lead as sent to syncLead
type LeadRecord struct {
	ID                string        `xml:"Id,omitempty"`
	Email             string        `xml:"Email,omitempty"`
	LeadAttributeList AttributeList `xml:"leadAttributeList"`
}

// AttributeList wraps a typed attribute list
type AttributeList struct {
	Attributes []attribute.Wire `xml:"attribute"`
}

// NewLeadRecord encodes attrs into a lead record. A non-empty leadKey
// identifies the lead: numeric keys go to Id, anything else to Email.
func NewLeadRecord(attrs *attribute.Map, leadKey string) LeadRecord {
	rec := LeadRecord{
		LeadAttributeList: AttributeList{Attributes: attribute.Encode(attrs)},
	}
	if leadKey != "" {
		if leadkey.IsNumeric(leadKey) {
			rec.ID = leadKey
		} else {
			rec.Email = leadKey
		}
	}
	return rec
}

// ParamsGetLeadActivity is the request body of getLeadActivity
type ParamsGetLeadActivity struct {
	XMLName        xml.Name        `xml:"paramsGetLeadActivity"`
	LeadKey        leadkey.LeadKey `xml:"leadKey"`
	ActivityFilter struct{}        `xml:"activityFilter"`
	StartPosition  struct{}        `xml:"startPosition"`
	BatchSize      int             `xml:"batchSize"`
}

// ParamsGetCampaignsForSource is the request body of getCampaignsForSource
type ParamsGetCampaignsForSource struct {
	XMLName   xml.Name `xml:"paramsGetCampaignsForSource"`
	Source    string   `xml:"source"`
	Name      string   `xml:"name,omitempty"`
	ExactName *bool    `xml:"exactName,omitempty"`
}

// ParamsRequestCampaign is the request body of requestCampaign. Exactly one
// of CampaignID and CampaignName is set.
type ParamsRequestCampaign struct {
	XMLName          xml.Name       `xml:"paramsRequestCampaign"`
	Source           string         `xml:"source"`
	CampaignID       *int64         `xml:"campaignId,omitempty"`
	LeadList         LeadKeyList    `xml:"leadList"`
	CampaignName     string         `xml:"campaignName,omitempty"`
	ProgramTokenList *ProgramTokens `xml:"programTokenList,omitempty"`
}

// LeadKeyList wraps the leads a campaign runs on
type LeadKeyList struct {
	LeadKeys []leadkey.LeadKey `xml:"leadKey"`
}

// ParamsScheduleCampaign is the request body of scheduleCampaign
type ParamsScheduleCampaign struct {
	XMLName          xml.Name      `xml:"paramsScheduleCampaign"`
	ProgramName      string        `xml:"programName"`
	CampaignName     string        `xml:"campaignName"`
	CampaignRunAt    string        `xml:"campaignRunAt"`
	ProgramTokenList ProgramTokens `xml:"programTokenList"`
}

// ProgramTokens wraps campaign token values
type ProgramTokens struct {
	Attrib []Token `xml:"attrib"`
}

// Token sets the value of a campaign token such as "{{my.post name}}"
type Token struct {
	Name  string `xml:"name"`
	Value string `xml:"value"`
}

// ParamsDescribeMObject is the request body of describeMObject
type ParamsDescribeMObject struct {
	XMLName    xml.Name `xml:"paramsDescribeMObject"`
	ObjectName string   `xml:"objectName"`
}
