package leadkey

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		key  string
		want Type
	}{
		{"a@b.com", Email},
		{"someaddress@someserver.com", Email},
		{"first.last+tag@sub.example.co.uk", Email},
		{"a@b.xn--p1ai", Email},
		{"user@example.xn--80asehdb", Email},
		{"a@b.c", Unknown},
		{"a@b.1com", Unknown},
		{"123456", IDNum},
		{"0", IDNum},
		{"id:abc&token:xyz", Cookie},
		{"id:561-HYG-937&token:_mch-marketo.com-1374552656411-90718", Cookie},
		{"!!!", Unknown},
		{"", Unknown},
		{"12.5", Unknown},
		{"-12", Unknown},
		{"a@b", Unknown},
		{"token:xyz&id:abc", Unknown},
		{"001d000000FXkBt", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.key))
		})
	}
}

func TestClassify_EmailBeforeCookie(t *testing.T) {
	// a cookie-looking value that is also a valid address stays EMAIL
	assert.Equal(t, Email, Classify("id.token@example.com"))
}

func TestNew(t *testing.T) {
	k := New("123")
	assert.Equal(t, IDNum, k.Type)
	assert.Equal(t, "123", k.Value)
	assert.Equal(t, "IDNUM=123", k.String())
}

func TestParseType(t *testing.T) {
	got, err := ParseType("sfdcleadid")
	require.NoError(t, err)
	assert.Equal(t, SFDCLeadID, got)

	got, err = ParseType(" email ")
	require.NoError(t, err)
	assert.Equal(t, Email, got)

	_, err = ParseType("PHONE")
	assert.Error(t, err)
}

func TestIsNumeric(t *testing.T) {
	for _, s := range []string{"1234", "12.5", "-3", "+7", ".5", "1e3", " 42 "} {
		assert.True(t, IsNumeric(s), s)
	}
	for _, s := range []string{"", "abc", "12a", "Inf", "NaN", "0x1F", "a@b.com"} {
		assert.False(t, IsNumeric(s), s)
	}
}

func TestLeadKey_XML(t *testing.T) {
	data, err := xml.Marshal(struct {
		XMLName xml.Name `xml:"leadKey"`
		LeadKey
	}{LeadKey: LeadKey{Type: Email, Value: "a@b.com"}})
	require.NoError(t, err)
	assert.Equal(t, "<leadKey><keyType>EMAIL</keyType><keyValue>a@b.com</keyValue></leadKey>", string(data))
}
