// Package yamlutil wraps YAML parsing to isolate the external
// dependency, and adds front matter splitting for content files.
package yamlutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrNoFrontMatter  = errors.New("yamlutil: no front matter delimiters")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Unmarshal parses YAML data into v.
func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// SplitFrontMatter separates a leading YAML front matter block,
// delimited by "---" lines, from the document body. The body is
// returned with surrounding whitespace trimmed. Returns
// ErrNoFrontMatter when the document does not start with a delimiter
// or the closing delimiter is missing.
func SplitFrontMatter(raw string) (meta, body string, err error) {
	if !strings.HasPrefix(raw, "---") {
		return "", "", ErrNoFrontMatter
	}
	rest := raw[3:]
	// The closing delimiter is a line of its own.
	for _, sep := range []string{"\n---\n", "\n---\r\n"} {
		if idx := strings.Index(rest, sep); idx >= 0 {
			return rest[:idx], strings.TrimSpace(rest[idx+len(sep):]), nil
		}
	}
	if idx := strings.LastIndex(rest, "\n---"); idx >= 0 && strings.TrimSpace(rest[idx+4:]) == "" {
		return rest[:idx], "", nil
	}
	return "", "", ErrNoFrontMatter
}

// UnmarshalFrontMatter splits raw into front matter and body and
// parses the front matter into v.
func UnmarshalFrontMatter(raw string, v any) (body string, err error) {
	meta, body, err := SplitFrontMatter(raw)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(meta) != "" {
		if err := Unmarshal([]byte(meta), v); err != nil {
			return "", err
		}
	}
	return body, nil
}
