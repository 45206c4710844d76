package shared_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"hotel_content/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Chdir(t.TempDir())

	c, err := shared.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.HTTPAddr != ":8080" || c.Workers != 8 || c.CacheTTL != 15*time.Minute {
		t.Fatalf("defaults not applied: %+v", c)
	}
	if c.Reference.DOTWCSV == "" || c.RawBaseDir != "raw_data" {
		t.Fatalf("reference defaults: %+v", c.Reference)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := `http_addr: ":9000"
ingest_workers: 3
cache_ttl: 30s
suppliers:
  hotelbeds:
    base_url: https://file.example
    api_key: from-file
    rps: 2
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("INGEST_WORKERS", "5")
	t.Setenv("SUPPLIERS__HOTELBEDS__API_KEY", "from-env")
	t.Setenv("SUPPLIERS__DOTW__USERNAME", "agent")
	t.Setenv("SUPPLIERS__DOTW__TIMEOUT", "45s")
	t.Setenv("IRIX_REFERENCE_XML", "/srv/irix.xml")

	c, err := shared.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.HTTPAddr != ":9000" {
		t.Fatalf("file value lost: %q", c.HTTPAddr)
	}
	if c.Workers != 5 {
		t.Fatalf("env should override file: %d", c.Workers)
	}
	if c.CacheTTL != 30*time.Second {
		t.Fatalf("cache ttl: %v", c.CacheTTL)
	}
	if c.Reference.IRIXXML != "/srv/irix.xml" {
		t.Fatalf("legacy reference var: %q", c.Reference.IRIXXML)
	}

	creds := c.SupplierCredentials()
	hb := creds["hotelbeds"]
	if hb.BaseURL != "https://file.example" || hb.APIKey != "from-env" || hb.RPS != 2 {
		t.Fatalf("hotelbeds creds: %+v", hb)
	}
	if d := creds["dotw"]; d.Username != "agent" || d.Timeout != 45*time.Second {
		t.Fatalf("dotw creds: %+v", d)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Chdir(t.TempDir())
	t.Setenv("INGEST_WORKERS", "0")

	if _, err := shared.Load(); err == nil {
		t.Fatalf("expected validation error for zero workers")
	}
}

func TestLoad_TrustedProxies(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Chdir(t.TempDir())
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,192.0.2.7")

	c, err := shared.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.TrustedProxies) != 2 || c.TrustedProxies[0] != "10.0.0.0/8" || c.TrustedProxies[1] != "192.0.2.7" {
		t.Fatalf("trusted proxies: %q", c.TrustedProxies)
	}

	t.Setenv("TRUSTED_PROXIES", "not-an-ip")
	if _, err := shared.Load(); err == nil {
		t.Fatalf("expected validation error for a bad proxy entry")
	}
}
