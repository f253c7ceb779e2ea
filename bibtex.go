package sitegen

import (
	"fmt"
	"regexp"
	"strings"
)

// Precompiled BibTeX patterns.
var (
	entryHeaderPattern = regexp.MustCompile(`@(\w+)\s*\{\s*([^,]+),`)
	fieldStartPattern  = regexp.MustCompile(`^(\w+)\s*=\s*`)
	innerSpacePattern  = regexp.MustCompile(`\s+`)
)

// Entry is one parsed bibliography record. Type and field names are
// lowercased; the key is trimmed. Absent fields are simply missing
// from the map, never defaulted.
type Entry struct {
	Type   string
	Key    string
	Fields map[string]string
}

// Diagnostic describes input the lossy parser dropped.
type Diagnostic struct {
	Offset  int    // byte offset of the dropped input
	Message string // human-readable description
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("offset %d: %s", d.Offset, d.Message)
}

// ParseBibTeX scans raw bibliography text into entry records.
// Malformed fragments are skipped character by character and omitted;
// a well-formed entry elsewhere in the same input is unaffected by a
// malformed neighbor. The parser never fails.
func ParseBibTeX(content string) []Entry {
	entries, _ := parseBibTeX(content, false)
	return entries
}

// ParseBibTeXStrict parses exactly like ParseBibTeX but additionally
// reports every dropped fragment as a diagnostic. The entry list is
// identical to the lossy result.
func ParseBibTeXStrict(content string) ([]Entry, []Diagnostic) {
	return parseBibTeX(content, true)
}

func parseBibTeX(content string, collect bool) ([]Entry, []Diagnostic) {
	var entries []Entry
	var diags []Diagnostic

	pos := 0
	for {
		loc := entryHeaderPattern.FindStringSubmatchIndex(content[pos:])
		if loc == nil {
			break
		}
		entryType := strings.ToLower(content[pos+loc[2] : pos+loc[3]])
		key := strings.TrimSpace(content[pos+loc[4] : pos+loc[5]])

		sc := &bibScanner{src: content, pos: pos + loc[1]}
		fields := make(map[string]string)
		recorded := false
		skipStart := -1

		flushSkipped := func(end int) {
			if collect && skipStart >= 0 {
				diags = append(diags, Diagnostic{
					Offset:  skipStart,
					Message: fmt.Sprintf("skipped malformed fragment %q", content[skipStart:end]),
				})
			}
			skipStart = -1
		}

		for {
			sc.skipSpace()
			if sc.eof() {
				break
			}
			if sc.peek() == '}' {
				flushSkipped(sc.pos)
				sc.advance()
				entries = append(entries, Entry{Type: entryType, Key: key, Fields: fields})
				pos = sc.pos
				recorded = true
				break
			}
			m := fieldStartPattern.FindStringSubmatchIndex(sc.remaining())
			if m == nil {
				// Lossy recovery: drop exactly one character and retry,
				// so a malformed field cannot take the rest of the file
				// down with it.
				if skipStart < 0 {
					skipStart = sc.pos
				}
				sc.advance()
				continue
			}
			flushSkipped(sc.pos)
			name := strings.ToLower(sc.remaining()[m[2]:m[3]])
			sc.advanceBy(m[1])
			fields[name] = normalizeFieldValue(sc.scanValue())
			sc.skipSpace()
			if !sc.eof() && sc.peek() == ',' {
				sc.advance()
			}
		}

		if !recorded {
			// Ran off the end inside an entry body: the partial entry
			// is dropped and the scan terminates.
			if collect {
				diags = append(diags, Diagnostic{
					Offset:  pos + loc[0],
					Message: fmt.Sprintf("unterminated entry %q", key),
				})
			}
			break
		}
	}

	return entries, diags
}

// bibScanner is a cursor over the raw input. Every method either
// advances the cursor or reports end-of-input, so scans always
// terminate.
type bibScanner struct {
	src string
	pos int
}

func (s *bibScanner) eof() bool         { return s.pos >= len(s.src) }
func (s *bibScanner) peek() byte        { return s.src[s.pos] }
func (s *bibScanner) advance()          { s.pos++ }
func (s *bibScanner) advanceBy(n int)   { s.pos += n }
func (s *bibScanner) remaining() string { return s.src[s.pos:] }

func (s *bibScanner) skipSpace() {
	for !s.eof() && isSpace(s.peek()) {
		s.advance()
	}
}

// scanValue reads one field value in braced, quoted, or bare form.
// The cursor ends up past the closing delimiter (braced, quoted) or
// on the terminating ','/'}' (bare), which is not consumed.
func (s *bibScanner) scanValue() string {
	if s.eof() {
		return ""
	}
	switch s.peek() {
	case '{':
		// Brace-balanced: the value ends only when nesting depth
		// returns to zero. Outer braces are stripped, inner braces
		// stay as literal text.
		s.advance()
		depth := 1
		start := s.pos
		for depth > 0 && !s.eof() {
			switch s.peek() {
			case '{':
				depth++
			case '}':
				depth--
			}
			s.advance()
		}
		end := s.pos - 1
		if end < start {
			end = start
		}
		return s.src[start:end]
	case '"':
		s.advance()
		start := s.pos
		for !s.eof() {
			if s.peek() == '"' && s.src[s.pos-1] != '\\' {
				break
			}
			s.advance()
		}
		value := s.src[start:s.pos]
		if !s.eof() {
			s.advance()
		}
		return value
	default:
		start := s.pos
		for !s.eof() && s.peek() != ',' && s.peek() != '}' {
			s.advance()
		}
		return strings.TrimSpace(s.src[start:s.pos])
	}
}

// normalizeFieldValue collapses internal whitespace and newlines to
// single spaces and trims the ends.
func normalizeFieldValue(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", "")
	return strings.TrimSpace(innerSpacePattern.ReplaceAllString(value, " "))
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
