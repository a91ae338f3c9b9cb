// Package leadkey identifies leads and infers the type of a lead key.
package leadkey

import (
	"fmt"
	"regexp"
	"strings"
)

// Type is the kind of identifier a lead key carries
type Type string

const (
	Email         Type = "EMAIL"
	IDNum         Type = "IDNUM"
	Cookie        Type = "COOKIE"
	SFDCContactID Type = "SFDCCONTACTID"
	SFDCLeadID    Type = "SFDCLEADID"
	Unknown       Type = "UNKNOWN"
)

var knownTypes = map[Type]bool{
	Email:         true,
	IDNum:         true,
	Cookie:        true,
	SFDCContactID: true,
	SFDCLeadID:    true,
	Unknown:       true,
}

var (
	// local@domain with a dotted domain; the TLD starts with a letter and
	// may be an IDN label such as xn--p1ai
	emailPattern  = regexp.MustCompile(`^[A-Za-z0-9!#$%&'*+/=?^_{|}~-]+(\.[A-Za-z0-9!#$%&'*+/=?^_{|}~-]+)*@([A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?\.)+[A-Za-z][A-Za-z0-9-]*[A-Za-z0-9]$`)
	cookiePattern = regexp.MustCompile(`^id:.*&token:.*`)
	numberPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)
)

// LeadKey identifies a single lead
type LeadKey struct {
	Type  Type   `xml:"keyType"`
	Value string `xml:"keyValue"`
}

// New returns a LeadKey whose type is inferred from value
func New(value string) LeadKey {
	return LeadKey{Type: Classify(value), Value: value}
}

// String implements fmt.Stringer
func (k LeadKey) String() string {
	return fmt.Sprintf("%s=%s", k.Type, k.Value)
}

// Classify infers the key type. Rules are checked in order: email address,
// digits only, tracking cookie (id:...&token:...). Anything else is Unknown.
func Classify(key string) Type {
	switch {
	case emailPattern.MatchString(key):
		return Email
	case isDigits(key):
		return IDNum
	case cookiePattern.MatchString(key):
		return Cookie
	default:
		return Unknown
	}
}

// ParseType normalizes a caller supplied key type
func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	if !knownTypes[t] {
		return "", fmt.Errorf("unknown lead key type %q", s)
	}
	return t, nil
}

// IsNumeric reports whether s parses as a number. It is looser than the
// IDNUM rule: signs, decimals and exponents are accepted.
func IsNumeric(s string) bool {
	return numberPattern.MatchString(strings.TrimSpace(s))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
