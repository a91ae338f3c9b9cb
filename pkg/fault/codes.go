package fault

import "strconv"

// Code is a numeric error code reported by the service in
// detail.serviceException.code
type Code int

// Unknown is used when a fault carries no recognizable service code
const Unknown Code = 1

// Service error codes
const (
	SevereInternalError   Code = 10001
	InternalError         Code = 20011
	RequestNotUnderstood  Code = 20012
	AccessDenied          Code = 20013
	AuthFailed            Code = 20014
	RequestLimitExceeded  Code = 20015
	RequestExpired        Code = 20016
	InvalidRequest        Code = 20017
	BadEncoding           Code = 20018
	UnsupportedOperation  Code = 20019
	LeadKeyRequired       Code = 20101
	LeadKeyBad            Code = 20102
	LeadNotFound          Code = 20103
	LeadDetailRequired    Code = 20104
	LeadAttributeBad      Code = 20105
	LeadSyncFailed        Code = 20106
	ActivityKeyBad        Code = 20107
	ParameterRequired     Code = 20109
	ParameterBad          Code = 20110
	ListNotFound          Code = 20111
	CampaignNotFound      Code = 20113
	BadParameter          Code = 20114
	BadStreamPosition     Code = 20122
	StreamAtEnd           Code = 20123
)

var codeNames = map[Code]string{
	Unknown:              "unknown",
	SevereInternalError:  "severe internal error",
	InternalError:        "internal error",
	RequestNotUnderstood: "request not understood",
	AccessDenied:         "access denied",
	AuthFailed:           "authentication failed",
	RequestLimitExceeded: "request limit exceeded",
	RequestExpired:       "request expired",
	InvalidRequest:       "invalid request",
	BadEncoding:          "bad encoding",
	UnsupportedOperation: "unsupported operation",
	LeadKeyRequired:      "lead key required",
	LeadKeyBad:           "bad lead key",
	LeadNotFound:         "lead not found",
	LeadDetailRequired:   "lead detail required",
	LeadAttributeBad:     "bad lead attribute",
	LeadSyncFailed:       "lead sync failed",
	ActivityKeyBad:       "bad activity key",
	ParameterRequired:    "parameter required",
	ParameterBad:         "bad parameter value",
	ListNotFound:         "list not found",
	CampaignNotFound:     "campaign not found",
	BadParameter:         "bad parameter",
	BadStreamPosition:    "bad stream position",
	StreamAtEnd:          "stream at end",
}

// String returns the code's name, or the number for unlisted codes
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return strconv.Itoa(int(c))
}

// Known reports whether c is in the code table
func (c Code) Known() bool {
	_, ok := codeNames[c]
	return ok
}
