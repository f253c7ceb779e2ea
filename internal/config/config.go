// Package config loads the site-wide configuration.
//
// The preferred format is site.yaml; a legacy site.json with the same
// keys is still accepted. Every key the builder reads has a default,
// so an absent file yields a fully usable configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/artlife/sitegen/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("site config file not found")
	ErrConfigParse    = errors.New("failed to parse site config")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
)

// Field length limits; the config may be edited through a web panel,
// so inputs are treated as untrusted.
const (
	MaxNameLength        = 100
	MaxTaglineLength     = 200
	MaxDescriptionLength = 300
	MaxBlurbLength       = 500
	MaxURLLength         = 2048
	MaxAddressLength     = 200
	MaxColorLength       = 20
)

// Theme holds the color tokens the CSS builder interpolates.
type Theme struct {
	Primary       string `yaml:"primary" json:"primary"`
	PrimaryDark   string `yaml:"primary_dark" json:"primary_dark"`
	PrimaryBright string `yaml:"primary_bright" json:"primary_bright"`
	Background    string `yaml:"background" json:"background"`
	Paper         string `yaml:"paper" json:"paper"`
	Accent        string `yaml:"accent" json:"accent"`
	TextMain      string `yaml:"text_main" json:"text_main"`
	TextMuted     string `yaml:"text_muted" json:"text_muted"`
}

// Site holds all site-wide settings.
type Site struct {
	SiteName              string `yaml:"site_name" json:"site_name"`
	SiteTagline           string `yaml:"site_tagline" json:"site_tagline"`
	MetaDescription       string `yaml:"meta_description" json:"meta_description"`
	ContactBlurb          string `yaml:"contact_blurb" json:"contact_blurb"`
	Domain                string `yaml:"domain" json:"domain"`
	NewsletterMode        string `yaml:"newsletter_mode" json:"newsletter_mode"`
	NewsletterProviderURL string `yaml:"newsletter_provider_url" json:"newsletter_provider_url"`
	FooterNote            string `yaml:"footer_note" json:"footer_note"`
	Address               string `yaml:"address" json:"address"`
	ShowDigestHome        bool   `yaml:"show_digest_home" json:"show_digest_home"`
	LogoText              string `yaml:"logo_text" json:"logo_text"`
	NavCTAText            string `yaml:"nav_cta_text" json:"nav_cta_text"`
	NavCTATarget          string `yaml:"nav_cta_target" json:"nav_cta_target"`
	Theme                 Theme  `yaml:"theme" json:"theme"`
}

// Default returns the standard institute configuration.
func Default() *Site {
	return &Site{
		SiteName:        "Artificial Life Institute",
		SiteTagline:     "University of Vienna",
		MetaDescription: "Academic research and projects",
		ContactBlurb:    "We welcome collaborations and inquiries.",
		NewsletterMode:  "local",
		FooterNote:      "Department of Evolutionary Biology",
		Address:         "Djerassiplatz 1, 1030 Vienna",
		LogoText:        "ALI",
		NavCTAText:      "Get in touch",
		NavCTATarget:    "contact",
		Theme: Theme{
			Primary:       "#65141c",
			PrimaryDark:   "#3a1016",
			PrimaryBright: "#92202b",
			Background:    "#f3f1f0",
			Paper:         "#f9f8f7",
			Accent:        "#e0b15a",
			TextMain:      "#1a1a1a",
			TextMuted:     "#4a4a4a",
		},
	}
}

// Load reads the site configuration from contentDir, trying site.yaml
// then site.json. A missing file is not an error; defaults apply.
func Load(contentDir string) (*Site, error) {
	if data, err := os.ReadFile(filepath.Join(contentDir, "site.yaml")); err == nil {
		return parse(data, yamlutil.Unmarshal)
	}
	if data, err := os.ReadFile(filepath.Join(contentDir, "site.json")); err == nil {
		return parse(data, json.Unmarshal)
	}
	return Default(), nil
}

// LoadFile reads the site configuration from an explicit path, picking
// the format by extension. Unlike Load, a missing file is an error.
func LoadFile(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if strings.HasSuffix(path, ".json") {
		return parse(data, json.Unmarshal)
	}
	return parse(data, yamlutil.Unmarshal)
}

func parse(data []byte, unmarshal func([]byte, any) error) (*Site, error) {
	site := Default()
	if err := unmarshal(data, site); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	site.applyFallbacks()
	if err := site.Validate(); err != nil {
		return nil, err
	}
	return site, nil
}

// applyFallbacks restores defaults for keys that must never be empty.
func (s *Site) applyFallbacks() {
	defaults := Default()
	if s.NewsletterMode == "" {
		s.NewsletterMode = defaults.NewsletterMode
	}
	if s.LogoText == "" {
		s.LogoText = s.SiteName
	}
	if s.NavCTAText == "" {
		s.NavCTAText = defaults.NavCTAText
	}
	if s.NavCTATarget == "" {
		s.NavCTATarget = defaults.NavCTATarget
	}
	t, dt := &s.Theme, defaults.Theme
	for _, pair := range []struct {
		field *string
		def   string
	}{
		{&t.Primary, dt.Primary},
		{&t.PrimaryDark, dt.PrimaryDark},
		{&t.PrimaryBright, dt.PrimaryBright},
		{&t.Background, dt.Background},
		{&t.Paper, dt.Paper},
		{&t.Accent, dt.Accent},
		{&t.TextMain, dt.TextMain},
		{&t.TextMuted, dt.TextMuted},
	} {
		if *pair.field == "" {
			*pair.field = pair.def
		}
	}
}

// Validate checks field lengths and enumerated values.
func (s *Site) Validate() error {
	checks := []struct {
		name  string
		value string
		max   int
	}{
		{"site_name", s.SiteName, MaxNameLength},
		{"site_tagline", s.SiteTagline, MaxTaglineLength},
		{"meta_description", s.MetaDescription, MaxDescriptionLength},
		{"contact_blurb", s.ContactBlurb, MaxBlurbLength},
		{"domain", s.Domain, MaxURLLength},
		{"newsletter_provider_url", s.NewsletterProviderURL, MaxURLLength},
		{"footer_note", s.FooterNote, MaxBlurbLength},
		{"address", s.Address, MaxAddressLength},
		{"logo_text", s.LogoText, MaxNameLength},
		{"nav_cta_text", s.NavCTAText, MaxNameLength},
		{"theme.primary", s.Theme.Primary, MaxColorLength},
		{"theme.primary_dark", s.Theme.PrimaryDark, MaxColorLength},
		{"theme.primary_bright", s.Theme.PrimaryBright, MaxColorLength},
		{"theme.background", s.Theme.Background, MaxColorLength},
		{"theme.paper", s.Theme.Paper, MaxColorLength},
		{"theme.accent", s.Theme.Accent, MaxColorLength},
		{"theme.text_main", s.Theme.TextMain, MaxColorLength},
		{"theme.text_muted", s.Theme.TextMuted, MaxColorLength},
	}
	for _, c := range checks {
		if err := validateFieldLength(c.name, c.value, c.max); err != nil {
			return err
		}
	}

	switch strings.ToLower(s.NewsletterMode) {
	case "local", "provider":
	default:
		return fmt.Errorf("newsletter_mode: invalid value %q (must be local or provider)", s.NewsletterMode)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}
