package suppliers

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"hotel_content/internal/xmldict"
)

const (
	nsSOAP = "http://schemas.xmlsoap.org/soap/envelope/"
	nsWSSE = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd"
	nsWSU  = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-utility-1.0.xsd"

	wssePasswordDigest = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-username-token-profile-1.0#PasswordDigest"
	wsseBase64         = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-soap-message-security-1.0#Base64Binary"
)

func envelope(header, body string) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>`)
	b.WriteString(`<soap:Envelope xmlns:soap="` + nsSOAP + `">`)
	if header != "" {
		b.WriteString(`<soap:Header>` + header + `</soap:Header>`)
	}
	b.WriteString(`<soap:Body>` + body + `</soap:Body></soap:Envelope>`)
	return []byte(b.String())
}

// wsseSecurity renders a WS-Security UsernameToken with a random nonce.
func wsseSecurity(user, password string, now time.Time) string {
	nonce := uuid.New()
	created := now.UTC().Format("2006-01-02T15:04:05.000Z")
	return fmt.Sprintf(`<wsse:Security xmlns:wsse="%s" xmlns:wsu="%s"><wsse:UsernameToken>`+
		`<wsse:Username>%s</wsse:Username>`+
		`<wsse:Password Type="%s">%s</wsse:Password>`+
		`<wsse:Nonce EncodingType="%s">%s</wsse:Nonce>`+
		`<wsu:Created>%s</wsu:Created>`+
		`</wsse:UsernameToken></wsse:Security>`,
		nsWSSE, nsWSU, esc(user),
		wssePasswordDigest, wsseDigest(nonce[:], created, password),
		wsseBase64, base64.StdEncoding.EncodeToString(nonce[:]),
		created)
}

func soapHeader(action string) http.Header {
	h := http.Header{}
	h.Set("Content-Type", "text/xml; charset=utf-8")
	h.Set("Accept", "text/xml")
	if action != "" {
		h.Set("SOAPAction", `"`+action+`"`)
	}
	return h
}

// esc escapes s for use as XML character data or an attribute value.
func esc(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// soapBody returns the prefix-free Body of a decoded envelope. A Fault in the
// body is returned as an error.
func soapBody(doc map[string]any) (map[string]any, error) {
	stripped, _ := xmldict.StripNamespaces(doc).(map[string]any)
	body, _ := lookup(stripped, "Envelope", "Body").(map[string]any)
	if body == nil {
		return nil, fmt.Errorf("%w: no soap body", ErrMalformed)
	}
	if fault, ok := body["Fault"]; ok {
		return nil, fmt.Errorf("soap fault: %s", text(lookup(fault, "faultstring")))
	}
	return body, nil
}
