package auth_test

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"hotel_content/internal/adapters/auth"
	"hotel_content/internal/domain"
)

func TestJWT_IssueAndValidate(t *testing.T) {
	v, err := auth.NewJWTValidator("test-secret")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	tok, err := v.Issue(domain.User{ID: "u-1", Role: domain.RoleGeneralUser}, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	u, err := v.Validate(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if u.ID != "u-1" || u.Role != domain.RoleGeneralUser {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestJWT_Rejections(t *testing.T) {
	v, _ := auth.NewJWTValidator("test-secret")
	other, _ := auth.NewJWTValidator("other-secret")

	expired, _ := v.Issue(domain.User{ID: "u", Role: domain.RoleAdminUser}, -time.Minute)
	wrongKey, _ := other.Issue(domain.User{ID: "u", Role: domain.RoleAdminUser}, time.Minute)
	badRole, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
		Role:             "root",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u"},
	}).SignedString([]byte("test-secret"))
	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, &auth.Claims{
		Role:             "super_user",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	for name, tok := range map[string]string{
		"expired":   expired,
		"wrong key": wrongKey,
		"bad role":  badRole,
		"alg none":  none,
		"garbage":   "not-a-token",
	} {
		if _, err := v.Validate(tok); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("%s: want ErrUnauthorized, got %v", name, err)
		}
	}
}

func TestBearerToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if auth.BearerToken(r) != "" {
		t.Fatalf("expected empty token")
	}
	r.Header.Set("Authorization", "bearer abc.def")
	if got := auth.BearerToken(r); got != "abc.def" {
		t.Fatalf("got %q", got)
	}
	r.Header.Set("Authorization", "Basic xyz")
	if auth.BearerToken(r) != "" {
		t.Fatalf("basic auth is not a bearer token")
	}
}

func TestEnforcer_RoleHierarchy(t *testing.T) {
	e, err := auth.NewEnforcer()
	if err != nil {
		t.Fatalf("enforcer: %v", err)
	}
	cases := []struct {
		role domain.Role
		obj  string
		want bool
	}{
		{domain.RoleGeneralUser, "/v1.0/hotel/details", true},
		{domain.RoleGeneralUser, "/v1.0/hotel/pushhotel", false},
		{domain.RoleGeneralUser, "/v1.0/hotel/supplier", false},
		{domain.RoleAdminUser, "/v1.0/hotel/details", true},
		{domain.RoleAdminUser, "/v1.0/hotel/pushhotel", true},
		{domain.RoleSuperUser, "/v1.0/hotel/supplier", true},
		{domain.RoleSuperUser, "/v1.0/hotel/details", true},
	}
	for _, c := range cases {
		got, err := e.Allow(c.role, c.obj, "POST")
		if err != nil {
			t.Fatalf("allow: %v", err)
		}
		if got != c.want {
			t.Fatalf("%s %s: want %v got %v", c.role, c.obj, c.want, got)
		}
	}

	for role, want := range map[domain.Role]bool{
		domain.RoleGeneralUser: false,
		domain.RoleAdminUser:   true,
		domain.RoleSuperUser:   true,
	} {
		got, _ := e.Elevated(role, "hotelbeds")
		if got != want {
			t.Fatalf("elevated %s: want %v got %v", role, want, got)
		}
	}
}
