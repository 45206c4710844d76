package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"hotel_content/internal/domain"
	"hotel_content/internal/xmldict"
)

var errEmptyPayload = errors.New("empty payload")

// object coerces a stored payload into a map. Stored payloads are normally
// decoded JSON; XML and JSON strings are accepted too.
func object(supplier string, raw any) (map[string]any, error) {
	switch t := raw.(type) {
	case map[string]any:
		return t, nil
	case []byte:
		return object(supplier, string(t))
	case string:
		s := strings.TrimSpace(t)
		switch {
		case s == "":
			return nil, &domain.ParseError{Source: supplier, Err: errEmptyPayload}
		case strings.HasPrefix(s, "<"):
			m, err := xmldict.DecodeString(s)
			if err != nil {
				return nil, &domain.ParseError{Source: supplier, Err: err}
			}
			return m, nil
		default:
			var m map[string]any
			if err := json.Unmarshal([]byte(s), &m); err != nil {
				return nil, &domain.ParseError{Source: supplier, Err: err}
			}
			return m, nil
		}
	case nil:
		return nil, &domain.ParseError{Source: supplier, Err: errEmptyPayload}
	}
	return nil, &domain.ParseError{Source: supplier, Err: fmt.Errorf("unsupported payload type %T", raw)}
}

// xmlObject is object followed by namespace stripping.
func xmlObject(supplier string, raw any) (map[string]any, error) {
	m, err := object(supplier, raw)
	if err != nil {
		return nil, err
	}
	return xmldict.StripNamespaces(m).(map[string]any), nil
}

// soapBody returns the Body of a stripped envelope, or m itself when m is
// not an envelope.
func soapBody(m map[string]any) map[string]any {
	if b := digMap(m, "Envelope", "Body"); b != nil {
		return b
	}
	return m
}

// innerDocument parses v when it is an escaped XML string, returning the
// stripped document. Maps pass through.
func innerDocument(source string, v any) (map[string]any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return xmldict.StripNamespaces(t).(map[string]any), nil
	}
	s := str(v)
	if s == "" {
		return nil, nil
	}
	m, err := xmldict.DecodeString(s)
	if err != nil {
		return nil, &domain.ParseError{Source: source, Err: err}
	}
	return xmldict.StripNamespaces(m).(map[string]any), nil
}
