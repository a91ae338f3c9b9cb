package signature

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/xml"
	"time"
)

// TimestampLayout is the W3C date-time profile used for request timestamps
// and campaign run times. Offsets are always numeric (+00:00, never Z).
const TimestampLayout = "2006-01-02T15:04:05-07:00"

// HeaderName is the SOAP header element carrying the signature
const HeaderName = "AuthenticationHeader"

// Credentials identify the API user. They are copied into the Signer and
// never modified afterwards.
type Credentials struct {
	UserID    string
	SecretKey string
	Namespace string
	// Location is the zone timestamps are rendered in (default UTC)
	Location *time.Location
}

// Signature is a timestamp and the hash computed over it
type Signature struct {
	Hash      string
	Timestamp string
}

// Header is the AuthenticationHeader attached to a SOAP call
type Header struct {
	Namespace string
	Name      string
	Attrs     HeaderAttrs
}

// HeaderAttrs holds the header's child elements
type HeaderAttrs struct {
	XMLName   xml.Name `xml:"AuthenticationHeader"`
	UserID    string   `xml:"mktowsUserId"`
	Signature string   `xml:"requestSignature"`
	Timestamp string   `xml:"requestTimestamp"`
}

// Sign returns the lowercase hex HMAC-SHA1 of timestamp+userID keyed by secretKey
func Sign(timestamp, userID, secretKey string) string {
	mac := hmac.New(sha1.New, []byte(secretKey))
	mac.Write([]byte(timestamp + userID))
	return hex.EncodeToString(mac.Sum(nil))
}

// FormatTimestamp renders t in loc using TimestampLayout
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(TimestampLayout)
}

// Signer produces fresh signatures for a fixed set of credentials
type Signer struct {
	creds Credentials
	now   func() time.Time
}

// Option configures a Signer
type Option func(*Signer)

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Signer) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSigner creates a signer for the given credentials
func NewSigner(creds Credentials, opts ...Option) *Signer {
	if creds.Location == nil {
		creds.Location = time.UTC
	}
	s := &Signer{
		creds: creds,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UserID returns the API user identifier
func (s *Signer) UserID() string {
	return s.creds.UserID
}

// Namespace returns the service namespace the header is qualified with
func (s *Signer) Namespace() string {
	return s.creds.Namespace
}

// Location returns the zone used for timestamps
func (s *Signer) Location() *time.Location {
	return s.creds.Location
}

// Now returns the current time in the signer's zone
func (s *Signer) Now() time.Time {
	return s.now().In(s.creds.Location)
}

// Sign captures the current time and signs it
func (s *Signer) Sign() Signature {
	ts := FormatTimestamp(s.now(), s.creds.Location)
	return Signature{
		Hash:      Sign(ts, s.creds.UserID, s.creds.SecretKey),
		Timestamp: ts,
	}
}

// Header builds a freshly signed AuthenticationHeader
func (s *Signer) Header() *Header {
	sig := s.Sign()
	return &Header{
		Namespace: s.creds.Namespace,
		Name:      HeaderName,
		Attrs: HeaderAttrs{
			UserID:    s.creds.UserID,
			Signature: sig.Hash,
			Timestamp: sig.Timestamp,
		},
	}
}
