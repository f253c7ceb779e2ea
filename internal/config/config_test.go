package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	site := Default()
	if site.SiteName != "Artificial Life Institute" {
		t.Errorf("SiteName = %q", site.SiteName)
	}
	if site.NewsletterMode != "local" {
		t.Errorf("NewsletterMode = %q", site.NewsletterMode)
	}
	if site.Theme.Primary != "#65141c" {
		t.Errorf("Theme.Primary = %q", site.Theme.Primary)
	}
	if err := site.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	body := `site_name: Test Lab
site_tagline: Elsewhere
newsletter_mode: provider
newsletter_provider_url: https://lists.example/x
theme:
  primary: "#123456"
`
	if err := os.WriteFile(filepath.Join(dir, "site.yaml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	site, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if site.SiteName != "Test Lab" {
		t.Errorf("SiteName = %q", site.SiteName)
	}
	if site.NewsletterMode != "provider" {
		t.Errorf("NewsletterMode = %q", site.NewsletterMode)
	}
	if site.Theme.Primary != "#123456" {
		t.Errorf("Theme.Primary = %q, want override", site.Theme.Primary)
	}
	// Unset theme tokens fall back to defaults.
	if site.Theme.Accent != "#e0b15a" {
		t.Errorf("Theme.Accent = %q, want default", site.Theme.Accent)
	}
	// logo_text falls back to the site name.
	if site.LogoText != "Test Lab" {
		t.Errorf("LogoText = %q", site.LogoText)
	}
}

func TestLoadJSONFallback(t *testing.T) {
	dir := t.TempDir()
	body := `{"site_name": "JSON Lab", "show_digest_home": true}`
	if err := os.WriteFile(filepath.Join(dir, "site.json"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	site, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if site.SiteName != "JSON Lab" || !site.ShowDigestHome {
		t.Errorf("site = %+v", site)
	}
}

func TestLoadMissingUsesDefaults(t *testing.T) {
	site, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if site.SiteName != Default().SiteName {
		t.Errorf("SiteName = %q", site.SiteName)
	}
}

func TestLoadParseError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "site.yaml"), []byte("site_name: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); !errors.Is(err, ErrConfigParse) {
		t.Errorf("error = %v, want ErrConfigParse", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("site_name: Custom\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	site, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if site.SiteName != "Custom" {
		t.Errorf("SiteName = %q", site.SiteName)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadFile() error = %v, want ErrConfigNotFound", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Site)
		wantErr error
	}{
		{"valid", func(s *Site) {}, nil},
		{
			"site name too long",
			func(s *Site) { s.SiteName = strings.Repeat("x", MaxNameLength+1) },
			ErrFieldTooLong,
		},
		{
			"blurb too long",
			func(s *Site) { s.ContactBlurb = strings.Repeat("x", MaxBlurbLength+1) },
			ErrFieldTooLong,
		},
		{
			"color too long",
			func(s *Site) { s.Theme.Primary = strings.Repeat("#", MaxColorLength+1) },
			ErrFieldTooLong,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := Default()
			tt.mutate(site)
			err := site.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateNewsletterMode(t *testing.T) {
	site := Default()
	site.NewsletterMode = "carrier-pigeon"
	if err := site.Validate(); err == nil {
		t.Error("Validate() accepted an unknown newsletter_mode")
	}
}
