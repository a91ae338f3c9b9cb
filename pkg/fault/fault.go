// Package fault models remote SOAP faults and classifies them by the
// service error code they carry.
package fault

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Fault is a SOAP fault returned by the service
type Fault struct {
	// Code is the SOAP faultcode, e.g. "SOAP-ENV:Client"
	Code string
	// Message is the faultstring
	Message string
	// Detail is the decoded <detail> element, nil when absent
	Detail map[string]any
}

// Error implements the error interface
func (f *Fault) Error() string {
	if f.Code == "" {
		return fmt.Sprintf("soap fault: %s", f.Message)
	}
	return fmt.Sprintf("soap fault %s: %s", f.Code, f.Message)
}

// ServiceCode extracts detail.serviceException.code, falling back to Unknown
func (f *Fault) ServiceCode() Code {
	if f == nil || f.Detail == nil {
		return Unknown
	}
	exc, ok := f.Detail["serviceException"].(map[string]any)
	if !ok {
		return Unknown
	}

	var raw string
	switch v := exc["code"].(type) {
	case string:
		raw = v
	case int:
		return nonZero(Code(v))
	case int64:
		return nonZero(Code(v))
	default:
		return Unknown
	}

	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return Unknown
	}
	return nonZero(Code(n))
}

// ServiceMessage returns detail.serviceException.message if present
func (f *Fault) ServiceMessage() string {
	if f == nil || f.Detail == nil {
		return ""
	}
	exc, ok := f.Detail["serviceException"].(map[string]any)
	if !ok {
		return ""
	}
	msg, _ := exc["message"].(string)
	return msg
}

func nonZero(c Code) Code {
	if c == 0 {
		return Unknown
	}
	return c
}

// Classify returns the service code of the fault wrapped in err. Errors
// that are not faults classify as Unknown.
func Classify(err error) Code {
	var f *Fault
	if errors.As(err, &f) {
		return f.ServiceCode()
	}
	return Unknown
}

// IsLeadNotFound reports whether err is a lead-not-found fault
func IsLeadNotFound(err error) bool {
	return err != nil && Classify(err) == LeadNotFound
}
