package suppliers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"hotel_content/internal/domain"
	"hotel_content/internal/xmldict"
)

// fetchFunc returns the payload to persist for hotelID. ErrNoData means the
// supplier confirmed there is nothing for the ID.
type fetchFunc func(ctx context.Context, hotelID string) (any, error)

// Fetcher adapts one supplier's fetchFunc to domain.Fetcher, folding errors
// into the three-way FetchResult.
type Fetcher struct {
	supplier string
	fetch    fetchFunc
}

func (f *Fetcher) Fetch(ctx context.Context, hotelID string) domain.FetchResult {
	payload, err := f.fetch(ctx, hotelID)
	switch {
	case err == nil && payload != nil:
		return domain.FetchOK(payload)
	case err == nil, errors.Is(err, ErrNoData):
		log.Info().Str("supplier", f.supplier).Str("hotel_id", hotelID).Msg("supplier reports no data")
		return domain.FetchNotFound()
	default:
		log.Warn().Str("supplier", f.supplier).Str("hotel_id", hotelID).Err(err).Msg("supplier fetch failed")
		return domain.FetchError(err.Error())
	}
}

// client bundles what a supplier's fetchFunc needs.
type client struct {
	supplier string
	creds    Credentials
	t        *Transport
	now      func() time.Time
}

// require fails with ErrCredentials when the base URL or any of vals is empty.
func (c *client) require(vals ...string) error {
	if strings.TrimSpace(c.creds.BaseURL) == "" {
		return fmt.Errorf("%w: %s base_url", ErrCredentials, c.supplier)
	}
	for _, v := range vals {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: %s", ErrCredentials, c.supplier)
		}
	}
	return nil
}

func (c *client) url(path string, query url.Values) string {
	u := strings.TrimRight(c.creds.BaseURL, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// getJSON and postJSON decode a JSON object response.
func (c *client) getJSON(ctx context.Context, endpoint, u string, h http.Header) (map[string]any, error) {
	resp, err := c.t.Do(ctx, endpoint, Request{Method: http.MethodGet, URL: u, Header: jsonHeader(h)})
	if err != nil {
		return nil, err
	}
	return decodeJSON(resp.Body)
}

func (c *client) postJSON(ctx context.Context, endpoint, u string, h http.Header, body any) (map[string]any, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	h = jsonHeader(h)
	h.Set("Content-Type", "application/json")
	resp, err := c.t.Do(ctx, endpoint, Request{Method: http.MethodPost, URL: u, Header: h, Body: b})
	if err != nil {
		return nil, err
	}
	return decodeJSON(resp.Body)
}

// postXML sends body and converts the XML response with xmldict.
func (c *client) postXML(ctx context.Context, endpoint, u string, h http.Header, body []byte) (map[string]any, error) {
	resp, err := c.t.Do(ctx, endpoint, Request{Method: http.MethodPost, URL: u, Header: h, Body: body})
	if err != nil {
		return nil, err
	}
	return decodeXML(resp.Body)
}

func jsonHeader(h http.Header) http.Header {
	if h == nil {
		h = http.Header{}
	}
	if h.Get("Accept") == "" {
		h.Set("Accept", "application/json")
	}
	return h
}

func header(kv ...string) http.Header {
	h := http.Header{}
	for i := 0; i+1 < len(kv); i += 2 {
		h.Set(kv[i], kv[i+1])
	}
	return h
}

func decodeJSON(b []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, ErrNoData
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(m) == 0 {
		return nil, ErrNoData
	}
	return m, nil
}

func decodeXML(b []byte) (map[string]any, error) {
	m, err := xmldict.Decode(b)
	if errors.Is(err, xmldict.ErrEmptyDocument) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return m, nil
}

// lookup walks nested maps by key, returning nil on any miss. A lone map is
// treated as its own first element where a list was expected.
func lookup(v any, keys ...string) any {
	cur := v
	for _, k := range keys {
		if l, ok := cur.([]any); ok {
			if len(l) == 0 {
				return nil
			}
			cur = l[0]
		}
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[k]
	}
	return cur
}

func text(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case map[string]any:
		return text(t[xmldict.TextKey])
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

// find returns the first value under key anywhere below v, shallowest first.
func find(v any, key string) any {
	queue := []any{v}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		switch t := cur.(type) {
		case map[string]any:
			if out, ok := t[key]; ok {
				return out
			}
			keys := make([]string, 0, len(t))
			for k := range t {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				queue = append(queue, t[k])
			}
		case []any:
			queue = append(queue, t...)
		}
	}
	return nil
}

// expect returns m when keys resolve to something present, ErrNoData otherwise.
func expect(m map[string]any, err error, keys ...string) (any, error) {
	if err != nil {
		return nil, err
	}
	if !present(lookup(m, keys...)) {
		return nil, ErrNoData
	}
	return m, nil
}

// present is true for non-empty maps, lists and strings.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case map[string]any:
		return len(t) > 0
	case []any:
		return len(t) > 0
	case string:
		return strings.TrimSpace(t) != ""
	}
	return true
}

// Registry holds one fetcher per supplier code.
type Registry struct {
	fetchers map[string]domain.Fetcher
}

// NewRegistry builds fetchers for every known supplier. Suppliers without
// credentials still get a fetcher; it fails with ErrCredentials.
func NewRegistry(creds map[string]Credentials, opts ...TransportOption) *Registry {
	r := &Registry{fetchers: make(map[string]domain.Fetcher, len(builders))}
	for code, build := range builders {
		c := creds[code]
		cl := &client{supplier: code, creds: c, t: NewTransport(code, c, opts...), now: time.Now}
		r.fetchers[code] = &Fetcher{supplier: code, fetch: build(cl)}
	}
	return r
}

func (r *Registry) Fetcher(code string) (domain.Fetcher, bool) {
	f, ok := r.fetchers[code]
	return f, ok
}

func (r *Registry) Codes() []string {
	out := make([]string, 0, len(r.fetchers))
	for k := range r.fetchers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
