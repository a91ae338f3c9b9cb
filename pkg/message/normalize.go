package message

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirosfoundation/go-mktows/pkg/attribute"
)

// Lead is a lead record with its attribute list flattened
type Lead struct {
	ID                 int64
	Email              string
	ForeignSysPersonID string
	ForeignSysType     string
	Attributes         *attribute.Map
	// Extra holds top-level fields not modelled above
	Extra map[string]any
}

// SyncResult is the outcome of syncLead
type SyncResult struct {
	LeadID int64
	Status string
	Error  string
	Lead   *Lead
}

// Activity is one lead activity record with its attributes flattened
type Activity struct {
	ID               int64
	ActivityDateTime time.Time // zero when RawDateTime does not parse
	RawDateTime      string
	ActivityType     string
	MktgAssetName    string
	Campaign         string
	PersonName       string
	MktPersonID      string
	ForeignSysID     string
	OrgName          string
	ForeignSysOrgID  string
	Attributes       *attribute.Map
}

// Campaign is a smart campaign available to the API
type Campaign struct {
	ID          int64
	Name        string
	Description string
}

// ShapeError reports a response that does not have the expected structure
type ShapeError struct {
	Path   string
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unexpected response at %s: %s", e.Path, e.Reason)
}

// NormalizeLeads turns a getLead response into a list of leads. The service
// returns a lone object for a single match and an array otherwise; both
// come back as a slice.
func NormalizeLeads(resp map[string]any) ([]Lead, error) {
	result, err := requireObject(resp, "result")
	if err != nil {
		return nil, err
	}

	records := list(lookup(result, "leadRecordList", "leadRecord"))
	leads := make([]Lead, 0, len(records))
	for i, r := range records {
		rec, ok := object(r)
		if !ok {
			return nil, &ShapeError{Path: fmt.Sprintf("result.leadRecordList.leadRecord[%d]", i), Reason: "not an object"}
		}
		lead, err := newLead(rec)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, nil
}

// NormalizeSyncResult reads a syncLead response
func NormalizeSyncResult(resp map[string]any) (*SyncResult, error) {
	result, err := requireObject(resp, "result")
	if err != nil {
		return nil, err
	}

	out := &SyncResult{}
	if out.LeadID, err = integer(result["leadId"], "result.leadId"); err != nil {
		return nil, err
	}
	if status, ok := object(result["syncStatus"]); ok {
		out.Status = text(status["status"])
		out.Error = text(status["error"])
		if out.LeadID == 0 {
			if out.LeadID, err = integer(status["leadId"], "result.syncStatus.leadId"); err != nil {
				return nil, err
			}
		}
	}
	if rec, ok := object(result["leadRecord"]); ok {
		lead, err := newLead(rec)
		if err != nil {
			return nil, err
		}
		out.Lead = &lead
	}
	return out, nil
}

// NormalizeActivity reads a getLeadActivity response. The record list is
// trusted only as far as returnCount says: zero means no records, one means
// a lone object. Timestamps without an offset are read in loc (UTC if nil).
func NormalizeActivity(resp map[string]any, loc *time.Location) ([]Activity, error) {
	lal, err := requireObject(resp, "leadActivityList")
	if err != nil {
		return nil, err
	}

	count, err := integer(lal["returnCount"], "leadActivityList.returnCount")
	if err != nil {
		return nil, err
	}

	var records []any
	switch {
	case count <= 0:
		return []Activity{}, nil
	case count == 1:
		rec := lookup(lal, "activityRecordList", "activityRecord")
		if _, isList := rec.([]any); isList {
			records = list(rec)
		} else {
			records = []any{rec}
		}
	default:
		records = list(lookup(lal, "activityRecordList", "activityRecord"))
	}

	out := make([]Activity, 0, len(records))
	for i, r := range records {
		rec, ok := object(r)
		if !ok {
			return nil, &ShapeError{Path: fmt.Sprintf("leadActivityList.activityRecordList.activityRecord[%d]", i), Reason: "not an object"}
		}
		act, err := newActivity(rec, loc)
		if err != nil {
			return nil, err
		}
		out = append(out, act)
	}
	return out, nil
}

// NormalizeFields maps field names to display names from a describeMObject
// response
func NormalizeFields(resp map[string]any) (map[string]string, error) {
	result, err := requireObject(resp, "result")
	if err != nil {
		return nil, err
	}

	fields := make(map[string]string)
	for _, f := range list(lookup(result, "metadata", "fieldList", "field")) {
		field, ok := object(f)
		if !ok {
			continue
		}
		name := text(field["name"])
		if name == "" {
			continue
		}
		fields[name] = text(field["displayName"])
	}
	return fields, nil
}

// NormalizeCampaigns reads a getCampaignsForSource response
func NormalizeCampaigns(resp map[string]any) ([]Campaign, error) {
	result, err := requireObject(resp, "result")
	if err != nil {
		return nil, err
	}

	records := list(lookup(result, "campaignRecordList", "campaignRecord"))
	out := make([]Campaign, 0, len(records))
	for i, r := range records {
		rec, ok := object(r)
		if !ok {
			return nil, &ShapeError{Path: fmt.Sprintf("result.campaignRecordList.campaignRecord[%d]", i), Reason: "not an object"}
		}
		id, err := integer(rec["id"], "campaignRecord.id")
		if err != nil {
			return nil, err
		}
		out = append(out, Campaign{
			ID:          id,
			Name:        text(rec["name"]),
			Description: text(rec["description"]),
		})
	}
	return out, nil
}

// NormalizeSuccess reads the success flag of requestCampaign and
// scheduleCampaign responses. The call got through without a fault, so a
// response that carries no flag counts as success.
func NormalizeSuccess(resp map[string]any) (bool, error) {
	raw := strings.TrimSpace(text(lookup(resp, "result", "success")))
	if raw == "" {
		return true, nil
	}
	ok, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &ShapeError{Path: "result.success", Reason: fmt.Sprintf("not a boolean: %q", raw)}
	}
	return ok, nil
}

func newLead(rec map[string]any) (Lead, error) {
	lead := Lead{Attributes: attribute.NewMap()}
	for k, v := range rec {
		switch k {
		case "Id":
			id, err := integer(v, "leadRecord.Id")
			if err != nil {
				return Lead{}, err
			}
			lead.ID = id
		case "Email":
			lead.Email = text(v)
		case "ForeignSysPersonId":
			lead.ForeignSysPersonID = text(v)
		case "ForeignSysType":
			lead.ForeignSysType = text(v)
		case "leadAttributeList":
			lead.Attributes = attribute.Decode(attributesFrom(v))
		default:
			if lead.Extra == nil {
				lead.Extra = make(map[string]any)
			}
			lead.Extra[k] = v
		}
	}
	return lead, nil
}

func newActivity(rec map[string]any, loc *time.Location) (Activity, error) {
	id, err := integer(rec["id"], "activityRecord.id")
	if err != nil {
		return Activity{}, err
	}
	act := Activity{
		ID:              id,
		ActivityType:    text(rec["activityType"]),
		MktgAssetName:   text(rec["mktgAssetName"]),
		Campaign:        text(rec["campaign"]),
		PersonName:      text(rec["personName"]),
		MktPersonID:     text(rec["mktPersonId"]),
		ForeignSysID:    text(rec["foreignSysId"]),
		OrgName:         text(rec["orgName"]),
		ForeignSysOrgID: text(rec["foreignSysOrgId"]),
		Attributes:      attribute.Decode(attributesFrom(rec["activityAttributes"])),
		RawDateTime:     text(rec["activityDateTime"]),
	}
	act.ActivityDateTime = parseDateTime(act.RawDateTime, loc)
	return act, nil
}

// localDateTime is xsd:dateTime without a zone offset
const localDateTime = "2006-01-02T15:04:05.999999999"

// parseDateTime reads an xsd:dateTime. Values that do not parse yield the
// zero time; the caller keeps the raw string.
func parseDateTime(raw string, loc *time.Location) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return ts
	}
	if loc == nil {
		loc = time.UTC
	}
	if ts, err := time.ParseInLocation(localDateTime, raw, loc); err == nil {
		return ts
	}
	return time.Time{}
}

// attributesFrom reads {attribute: [...]} into wire entries, skipping
// anything that is not an object
func attributesFrom(v any) []attribute.Wire {
	container, ok := object(v)
	if !ok {
		return nil
	}
	items := list(container["attribute"])
	out := make([]attribute.Wire, 0, len(items))
	for _, item := range items {
		obj, ok := object(item)
		if !ok {
			continue
		}
		raw, present := obj["attrValue"]
		out = append(out, attribute.Wire{
			Name:  text(obj["attrName"]),
			Type:  text(obj["attrType"]),
			Value: text(raw),
			Nil:   !present || raw == nil,
		})
	}
	return out
}

func requireObject(resp map[string]any, key string) (map[string]any, error) {
	obj, ok := object(resp[key])
	if !ok {
		return nil, &ShapeError{Path: key, Reason: "missing or not an object"}
	}
	return obj, nil
}

func object(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func lookup(root map[string]any, path ...string) any {
	var cur any = root
	for _, p := range path {
		obj, ok := object(cur)
		if !ok {
			return nil
		}
		cur = obj[p]
	}
	return cur
}

// list normalizes a lone value or an array into a slice
func list(v any) []any {
	switch x := v.(type) {
	case nil:
		return nil
	case []any:
		return x
	case []map[string]any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = x[i]
		}
		return out
	case string:
		// an empty element decodes to ""
		if strings.TrimSpace(x) == "" {
			return nil
		}
		return []any{x}
	default:
		return []any{x}
	}
}

func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

func integer(v any, path string) (int64, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case int:
		return int64(x), nil
	case int64:
		return x, nil
	case float64:
		return int64(x), nil
	}
	raw := strings.TrimSpace(text(v))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &ShapeError{Path: path, Reason: fmt.Sprintf("not an integer: %q", raw)}
	}
	return n, nil
}
