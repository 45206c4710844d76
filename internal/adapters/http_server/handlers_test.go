package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"hotel_content/internal/adapters/auth"
	httpserver "hotel_content/internal/adapters/http_server"
	"hotel_content/internal/app"
	"hotel_content/internal/domain"
	"hotel_content/internal/normalize"
	"hotel_content/internal/storage/rawfs"
)

// ---- fakes ----

type fakeFetchers map[string]domain.Fetcher

func (f fakeFetchers) Fetcher(code string) (domain.Fetcher, bool) {
	x, ok := f[code]
	return x, ok
}

type fakeAccess struct {
	ips    map[string][]string
	grants map[string]bool
}

func (f fakeAccess) IPWhitelist(_ context.Context, userID string) ([]string, error) {
	return f.ips[userID], nil
}

func (f fakeAccess) HasSupplierPermission(_ context.Context, userID, supplier string) (bool, error) {
	return f.grants[userID+"/"+supplier], nil
}

type recordingAudit struct {
	mu   sync.Mutex
	acts []domain.Activity
}

func (r *recordingAudit) LogActivity(_ context.Context, a domain.Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.acts = append(r.acts, a)
}

func (r *recordingAudit) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.acts))
	for _, a := range r.acts {
		out = append(out, a.Type)
	}
	return out
}

// ---- harness ----

func fixedClock() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }

type harness struct {
	h     http.Handler
	jwt   *auth.JWTValidator
	audit *recordingAudit
	base  string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWith(t, httpserver.Options{RequestTimeout: 5 * time.Second})
}

func newHarnessWith(t *testing.T, opts httpserver.Options) *harness {
	t.Helper()
	base := t.TempDir()
	store, err := rawfs.New(base)
	if err != nil {
		t.Fatalf("rawfs: %v", err)
	}
	jwtv, err := auth.NewJWTValidator("test-secret")
	if err != nil {
		t.Fatalf("jwt: %v", err)
	}
	rbac, err := auth.NewEnforcer()
	if err != nil {
		t.Fatalf("enforcer: %v", err)
	}
	aud := &recordingAudit{}

	fetchers := fakeFetchers{
		domain.SupplierInnstant: domain.FetcherFunc(func(_ context.Context, id string) domain.FetchResult {
			switch id {
			case "missing":
				return domain.FetchNotFound()
			case "down":
				return domain.FetchError("connection refused")
			}
			return domain.FetchOK(map[string]any{"id": id, "name": "Hotel " + id})
		}),
	}
	access := fakeAccess{
		ips: map[string][]string{
			"u-general": {"192.0.2.*"},
			"u-admin":   {"192.0.2.1"},
			"u-far":     {"10.0.*"},
		},
		grants: map[string]bool{"u-general/innstant": true},
	}

	srv := httpserver.New(opts)
	srv.MountHandlers(&httpserver.Handlers{
		Push:    app.NewPushService(fetchers, store, nil, 2),
		Raw:     app.NewRawService(store),
		Details: app.NewDetailsService(store, normalize.New(nil, normalize.WithClock(fixedClock)), nil, time.Minute),
		Access:  app.NewAccessService(access, rbac, aud),
		JWT:     jwtv,
		RBAC:    rbac,
		Audit:   aud,
	})
	return &harness{h: srv.Mux(), jwt: jwtv, audit: aud, base: base}
}

func (h *harness) token(t *testing.T, id string, role domain.Role) string {
	t.Helper()
	tok, err := h.jwt.Issue(domain.User{ID: id, Role: role}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return tok
}

func (h *harness) post(t *testing.T, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	return h.postFrom(t, "", "", path, token, body)
}

// postFrom sends from remoteAddr (httptest's default when empty) with an
// optional X-Forwarded-For value.
func (h *harness) postFrom(t *testing.T, remoteAddr, xff, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	if xff != "" {
		req.Header.Set("X-Forwarded-For", xff)
	}
	rr := httptest.NewRecorder()
	h.h.ServeHTTP(rr, req)
	return rr
}

func (r *recordingAudit) lastOf(typ string) (domain.Activity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.acts) - 1; i >= 0; i-- {
		if r.acts[i].Type == typ {
			return r.acts[i], true
		}
	}
	return domain.Activity{}, false
}

func (h *harness) seed(t *testing.T, supplier, id, doc string) {
	t.Helper()
	dir := filepath.Join(h.base, supplier)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, id+".json"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
}

func problemOf(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content-type: %q body=%s", ct, rr.Body.String())
	}
	var p map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode problem: %v", err)
	}
	return p
}

// ---- tests ----

func TestHealthz(t *testing.T) {
	h := newHarness(t)
	rr := httptest.NewRecorder()
	h.h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("healthz: %d %q", rr.Code, rr.Body.String())
	}
}

func TestAuthentication(t *testing.T) {
	h := newHarness(t)

	rr := h.post(t, "/v1.0/hotel/details", "", `{"supplier_code":"innstant","hotel_id":"1"}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: %d", rr.Code)
	}
	problemOf(t, rr)

	rr = h.post(t, "/v1.0/hotel/details", "not-a-jwt", `{"supplier_code":"innstant","hotel_id":"1"}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: %d", rr.Code)
	}
	if got := h.audit.types(); len(got) != 2 || got[0] != domain.ActivityAuthFailed {
		t.Fatalf("audit: %v", got)
	}
}

func TestRoleEnforcement(t *testing.T) {
	h := newHarness(t)
	general := h.token(t, "u-general", domain.RoleGeneralUser)

	for _, path := range []string{"/v1.0/hotel/pushhotel", "/v1.0/hotel/supplier"} {
		rr := h.post(t, path, general, `{"supplier_code":"innstant","hotel_id":"1"}`)
		if rr.Code != http.StatusForbidden {
			t.Fatalf("%s as general_user: %d", path, rr.Code)
		}
	}
	got := h.audit.types()
	if len(got) != 2 || got[0] != domain.ActivityRoleDenied {
		t.Fatalf("audit: %v", got)
	}
}

func TestPushHotel(t *testing.T) {
	h := newHarness(t)
	admin := h.token(t, "u-admin", domain.RoleAdminUser)

	rr := h.post(t, "/v1.0/hotel/pushhotel", admin, `{"supplier_code":"innstant","hotel_id":["1","missing","down","../x"]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d body=%s", rr.Code, rr.Body.String())
	}
	var rep domain.PushReport
	if err := json.Unmarshal(rr.Body.Bytes(), &rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rep.Supplier != "innstant" || len(rep.Results) != 4 {
		t.Fatalf("report: %+v", rep)
	}
	want := []string{
		domain.PushSaved,
		domain.PushNoData,
		domain.PushFetchFailed,
		domain.PushInvalidInput,
	}
	for i, w := range want {
		if rep.Results[i].Status != w {
			t.Fatalf("result %d: got %q want %q", i, rep.Results[i].Status, w)
		}
	}
	if rep.Results[0].Path == "" {
		t.Fatalf("saved result should carry a path")
	}
	if _, err := os.Stat(filepath.Join(h.base, "innstant", "1.json")); err != nil {
		t.Fatalf("raw file not written: %v", err)
	}

	// a single string is accepted too
	rr = h.post(t, "/v1.0/hotel/pushhotel", admin, `{"supplier_code":"innstant","hotel_id":"2"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("single id: %d", rr.Code)
	}
}

func TestPushHotel_BadInput(t *testing.T) {
	h := newHarness(t)
	admin := h.token(t, "u-admin", domain.RoleAdminUser)

	cases := map[string]string{
		"unknown supplier": `{"supplier_code":"nope","hotel_id":"1"}`,
		"missing supplier": `{"hotel_id":"1"}`,
		"missing hotel id": `{"supplier_code":"innstant"}`,
		"empty list":       `{"supplier_code":"innstant","hotel_id":[]}`,
		"numeric id":       `{"supplier_code":"innstant","hotel_id":12}`,
		"broken json":      `{"supplier_code":`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rr := h.post(t, "/v1.0/hotel/pushhotel", admin, body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status: %d body=%s", rr.Code, rr.Body.String())
			}
			problemOf(t, rr)
		})
	}
}

func TestSupplierRaw(t *testing.T) {
	h := newHarness(t)
	su := h.token(t, "u-su", domain.RoleSuperUser)
	h.seed(t, "innstant", "7", `{"id":"7","extra":{"k":1}}`)
	h.seed(t, "innstant", "bad", `{not json`)

	rr := h.post(t, "/v1.0/hotel/supplier", su, `{"supplier_code":"innstant","hotel_id":"7"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d body=%s", rr.Code, rr.Body.String())
	}
	var raw map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if raw["id"] != "7" || raw["extra"] == nil {
		t.Fatalf("raw payload not verbatim: %v", raw)
	}

	if rr := h.post(t, "/v1.0/hotel/supplier", su, `{"supplier_code":"innstant","hotel_id":"8"}`); rr.Code != http.StatusNotFound {
		t.Fatalf("absent file: %d", rr.Code)
	}
	if rr := h.post(t, "/v1.0/hotel/supplier", su, `{"supplier_code":"innstant","hotel_id":"bad"}`); rr.Code != http.StatusInternalServerError {
		t.Fatalf("invalid stored json: %d", rr.Code)
	}
	if rr := h.post(t, "/v1.0/hotel/supplier", su, `{"supplier_code":"innstant","hotel_id":"a/b"}`); rr.Code != http.StatusBadRequest {
		t.Fatalf("path separator: %d", rr.Code)
	}
}

func TestHotelDetails(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "innstant", "42", `{"id":"42","name":"Seaside"}`)
	body := `{"supplier_code":"innstant","hotel_id":"42"}`

	t.Run("granted general user", func(t *testing.T) {
		rr := h.post(t, "/v1.0/hotel/details", h.token(t, "u-general", domain.RoleGeneralUser), body)
		if rr.Code != http.StatusOK {
			t.Fatalf("status: %d body=%s", rr.Code, rr.Body.String())
		}
		var got domain.CanonicalHotel
		if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.HotelID != "42" {
			t.Fatalf("hotel_id: %q", got.HotelID)
		}
		if rr.Header().Get("ETag") == "" {
			t.Fatalf("missing ETag")
		}
	})

	t.Run("elevated role needs no grant", func(t *testing.T) {
		rr := h.post(t, "/v1.0/hotel/details", h.token(t, "u-admin", domain.RoleAdminUser), body)
		if rr.Code != http.StatusOK {
			t.Fatalf("status: %d", rr.Code)
		}
	})

	t.Run("ip not whitelisted", func(t *testing.T) {
		rr := h.post(t, "/v1.0/hotel/details", h.token(t, "u-far", domain.RoleSuperUser), body)
		if rr.Code != http.StatusForbidden {
			t.Fatalf("status: %d", rr.Code)
		}
	})

	t.Run("no supplier grant", func(t *testing.T) {
		rr := h.post(t, "/v1.0/hotel/details", h.token(t, "u-general", domain.RoleGeneralUser), `{"supplier_code":"hotelbeds","hotel_id":"42"}`)
		if rr.Code != http.StatusForbidden {
			t.Fatalf("status: %d", rr.Code)
		}
	})

	t.Run("absent raw file", func(t *testing.T) {
		rr := h.post(t, "/v1.0/hotel/details", h.token(t, "u-admin", domain.RoleAdminUser), `{"supplier_code":"innstant","hotel_id":"43"}`)
		if rr.Code != http.StatusNotFound {
			t.Fatalf("status: %d", rr.Code)
		}
		problemOf(t, rr)
	})

	t.Run("if-none-match", func(t *testing.T) {
		tok := h.token(t, "u-admin", domain.RoleAdminUser)
		first := h.post(t, "/v1.0/hotel/details", tok, body)
		etag := first.Header().Get("ETag")

		req := httptest.NewRequest(http.MethodPost, "/v1.0/hotel/details", strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+tok)
		req.Header.Set("If-None-Match", etag)
		rr := httptest.NewRecorder()
		h.h.ServeHTTP(rr, req)
		if rr.Code != http.StatusNotModified {
			t.Fatalf("status: %d", rr.Code)
		}
	})

	types := strings.Join(h.audit.types(), ",")
	for _, want := range []string{domain.ActivityDetailsRead, domain.ActivityIPDenied, domain.ActivityPermissionDenied} {
		if !strings.Contains(types, want) {
			t.Fatalf("audit missing %s: %s", want, types)
		}
	}
}

func TestHotelDetails_ForwardedFor(t *testing.T) {
	body := `{"supplier_code":"innstant","hotel_id":"42"}`

	t.Run("forged header from an untrusted peer", func(t *testing.T) {
		h := newHarness(t)
		h.seed(t, "innstant", "42", `{"id":"42","name":"Seaside"}`)
		rr := h.postFrom(t, "192.0.2.1:1234", "10.0.9.9", "/v1.0/hotel/details", h.token(t, "u-far", domain.RoleSuperUser), body)
		if rr.Code != http.StatusForbidden {
			t.Fatalf("status: %d body=%s", rr.Code, rr.Body.String())
		}
		a, ok := h.audit.lastOf(domain.ActivityIPDenied)
		if !ok {
			t.Fatalf("no ip denial audited: %v", h.audit.types())
		}
		if a.IP != "192.0.2.1" {
			t.Fatalf("audited ip: %q", a.IP)
		}
	})

	t.Run("header from a trusted proxy", func(t *testing.T) {
		h := newHarnessWith(t, httpserver.Options{RequestTimeout: 5 * time.Second, TrustedProxies: []string{"192.0.2.1"}})
		h.seed(t, "innstant", "42", `{"id":"42","name":"Seaside"}`)
		rr := h.postFrom(t, "192.0.2.1:1234", "10.0.9.9", "/v1.0/hotel/details", h.token(t, "u-far", domain.RoleSuperUser), body)
		if rr.Code != http.StatusOK {
			t.Fatalf("status: %d body=%s", rr.Code, rr.Body.String())
		}
	})

	t.Run("header from a peer outside the trusted range", func(t *testing.T) {
		h := newHarnessWith(t, httpserver.Options{RequestTimeout: 5 * time.Second, TrustedProxies: []string{"198.51.100.0/24"}})
		h.seed(t, "innstant", "42", `{"id":"42","name":"Seaside"}`)
		rr := h.postFrom(t, "192.0.2.1:1234", "10.0.9.9", "/v1.0/hotel/details", h.token(t, "u-far", domain.RoleSuperUser), body)
		if rr.Code != http.StatusForbidden {
			t.Fatalf("status: %d", rr.Code)
		}
	})
}

func TestParseTrustedProxies(t *testing.T) {
	got, err := httpserver.ParseTrustedProxies([]string{"10.0.0.0/8", " 192.0.2.7 ", "", "::1"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("prefixes: %v", got)
	}
	if got[1].String() != "192.0.2.7/32" {
		t.Fatalf("single address: %s", got[1])
	}
	if _, err := httpserver.ParseTrustedProxies([]string{"not-an-ip"}); err == nil {
		t.Fatalf("expected error for a bad entry")
	}
}

func TestHotelDetails_LargeNumericID(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "innstant", "12345678901234567890", `{"id":12345678901234567890,"name":"Long Id Inn"}`)
	rr := h.post(t, "/v1.0/hotel/details", h.token(t, "u-admin", domain.RoleAdminUser),
		`{"supplier_code":"innstant","hotel_id":"12345678901234567890"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d body=%s", rr.Code, rr.Body.String())
	}
	var got domain.CanonicalHotel
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.HotelID != "12345678901234567890" {
		t.Fatalf("hotel_id lost precision: %q", got.HotelID)
	}
}
