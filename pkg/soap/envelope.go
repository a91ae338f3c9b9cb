package soap

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/sirosfoundation/go-mktows/pkg/fault"
	"github.com/sirosfoundation/go-mktows/pkg/signature"
)

// Namespaces
const (
	NsSOAPEnv = "http://schemas.xmlsoap.org/soap/envelope/"
	NsXSI     = "http://www.w3.org/2001/XMLSchema-instance"

	// DefaultNamespace is the Marketo service namespace
	DefaultNamespace = "http://www.marketo.com/mktows/"
)

// ContentType is the SOAP 1.1 request content type
const ContentType = "text/xml; charset=utf-8"

const (
	envPrefix  = "SOAP-ENV"
	bodyPrefix = "ns1"
)

var errNotEnvelope = errors.New("response is not a SOAP envelope")

// BuildEnvelope wraps params in a SOAP 1.1 envelope. params is marshalled
// with encoding/xml and qualified with the ns1 prefix bound to namespace;
// its children stay unqualified. A nil header omits the Header element.
func BuildEnvelope(namespace string, params any, header *signature.Header) ([]byte, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	env := doc.CreateElement(envPrefix + ":Envelope")
	env.CreateAttr("xmlns:"+envPrefix, NsSOAPEnv)
	env.CreateAttr("xmlns:"+bodyPrefix, namespace)

	if header != nil {
		name := header.Name
		if name == "" {
			name = signature.HeaderName
		}
		h := env.CreateElement(envPrefix + ":Header")
		auth := h.CreateElement(bodyPrefix + ":" + name)
		auth.CreateElement("mktowsUserId").SetText(header.Attrs.UserID)
		auth.CreateElement("requestSignature").SetText(header.Attrs.Signature)
		auth.CreateElement("requestTimestamp").SetText(header.Attrs.Timestamp)
	}

	body := env.CreateElement(envPrefix + ":Body")
	if params != nil {
		data, err := xml.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal params: %w", err)
		}
		frag := etree.NewDocument()
		if err := frag.ReadFromBytes(data); err != nil {
			return nil, fmt.Errorf("failed to parse marshalled params: %w", err)
		}
		root := frag.Root()
		if root == nil {
			return nil, errors.New("params marshalled to an empty document")
		}
		root.Space = bodyPrefix
		body.AddChild(root)
	}

	return doc.WriteToBytes()
}

// ParseResponse decodes the first element of the SOAP Body into a generic
// tree. A Fault in the body is returned as *fault.Fault.
func ParseResponse(data []byte) (map[string]any, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	env := doc.Root()
	if env == nil || env.Tag != "Envelope" {
		return nil, errNotEnvelope
	}
	body := childElement(env, "Body")
	if body == nil {
		return nil, fmt.Errorf("%w: missing Body", errNotEnvelope)
	}

	children := body.ChildElements()
	if len(children) == 0 {
		return map[string]any{}, nil
	}
	payload := children[0]
	if payload.Tag == "Fault" {
		return nil, decodeFault(payload)
	}

	tree, ok := Decode(payload).(map[string]any)
	if !ok {
		return map[string]any{}, nil
	}
	return tree, nil
}

// Decode converts an element into the generic response tree. Elements with
// children become map[string]any keyed by local name, a name repeated
// among siblings becomes []any, leaves become their text, and xsi:nil
// elements become nil.
func Decode(e *etree.Element) any {
	if isNil(e) {
		return nil
	}
	children := e.ChildElements()
	if len(children) == 0 {
		return e.Text()
	}

	out := make(map[string]any, len(children))
	for _, c := range children {
		v := Decode(c)
		prev, seen := out[c.Tag]
		switch {
		case !seen:
			out[c.Tag] = v
		default:
			// Decode never yields []any itself, so a list here came from
			// an earlier repeat
			if l, ok := prev.([]any); ok {
				out[c.Tag] = append(l, v)
			} else {
				out[c.Tag] = []any{prev, v}
			}
		}
	}
	return out
}

func decodeFault(e *etree.Element) *fault.Fault {
	f := &fault.Fault{}
	for _, c := range e.ChildElements() {
		switch c.Tag {
		case "faultcode":
			f.Code = strings.TrimSpace(c.Text())
		case "faultstring":
			f.Message = strings.TrimSpace(c.Text())
		case "detail":
			if d, ok := Decode(c).(map[string]any); ok {
				f.Detail = d
			}
		}
	}
	return f
}

func childElement(e *etree.Element, tag string) *etree.Element {
	for _, c := range e.ChildElements() {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

func isNil(e *etree.Element) bool {
	for _, a := range e.Attr {
		if a.Key == "nil" && (a.Value == "true" || a.Value == "1") {
			return true
		}
	}
	return false
}
