package sitegen

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// defaultForbiddenTargets lists URL fragments the built site must
// never link to.
var defaultForbiddenTargets = []string{
	"zid.univie.ac.at/helpdesk",
}

var hrefPattern = regexp.MustCompile(`(?i)(?:href|src)=["']([^"']+)["']`)

// LinkHit is one forbidden link found during verification.
type LinkHit struct {
	File    string // path relative to the site directory
	URL     string
	Matched string // the forbidden fragment that matched
}

// VerifyLinks scans every HTML file under siteDir for href/src values
// containing a forbidden fragment. A nil target list uses the
// defaults. An empty result means the site passed.
func VerifyLinks(siteDir string, forbidden []string) ([]LinkHit, error) {
	if forbidden == nil {
		forbidden = defaultForbiddenTargets
	}
	info, err := os.Stat(siteDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrOutputDir, siteDir)
	}

	var hits []LinkHit
	err = filepath.WalkDir(siteDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(siteDir, path)
		if relErr != nil {
			rel = path
		}
		for _, match := range hrefPattern.FindAllStringSubmatch(string(data), -1) {
			url := strings.TrimSpace(match[1])
			if fragment := matchForbidden(url, forbidden); fragment != "" {
				hits = append(hits, LinkHit{File: filepath.ToSlash(rel), URL: url, Matched: fragment})
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", siteDir, err)
	}
	return hits, nil
}

func matchForbidden(url string, forbidden []string) string {
	lowered := strings.ToLower(url)
	for _, fragment := range forbidden {
		if strings.Contains(lowered, strings.ToLower(fragment)) {
			return fragment
		}
	}
	return ""
}
