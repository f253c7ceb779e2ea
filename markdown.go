package sitegen

import (
	"regexp"
	"strings"
)

// Precompiled block-level patterns.
var (
	crlfOrCR       = regexp.MustCompile(`\r\n?`)
	headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	rulePattern    = regexp.MustCompile(`^-{3,}$`)
)

// BlockKind identifies the structural variant of a Block.
type BlockKind int

// Block kinds produced by SegmentBlocks.
const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockList
	BlockQuote
	BlockCode
	BlockRule
)

// MaxHeadingLevel caps rendered heading tags at h6.
const MaxHeadingLevel = 6

// Block is one structural unit of parsed markdown. Which fields are
// meaningful depends on Kind: Text for paragraphs and headings (plus
// Level), Items for lists, Lines and Lang for code, Children for
// quotes. Rule carries nothing.
type Block struct {
	Kind     BlockKind
	Level    int      // heading tag level, already offset and clamped
	Text     string   // paragraph or heading text
	Items    []string // list item texts
	Lines    []string // verbatim code lines
	Lang     string   // fence info string, may be empty
	Children []Block  // nested blocks of a quote
}

// segState tracks what the segmenter is currently accumulating.
type segState int

const (
	stateIdle segState = iota
	stateParagraph
	stateList
	stateQuote
	stateCode
)

// segmenter accumulates lines into the current block until a flush.
type segmenter struct {
	state  segState
	buf    []string
	lang   string
	blocks []Block
}

// SegmentBlocks splits raw markdown text into an ordered sequence of
// typed blocks. The whole input is consumed exactly once; blocks never
// overlap, and end of input performs a final flush. Empty buffers flush
// to nothing, so blank input yields no blocks.
func SegmentBlocks(text string) []Block {
	lines := strings.Split(crlfOrCR.ReplaceAllString(text, "\n"), "\n")

	s := &segmenter{}
	for _, line := range lines {
		stripped := strings.TrimSpace(line)

		// Fence lines toggle code mode; anything after the backticks
		// on the opening fence is kept as the language tag.
		if strings.HasPrefix(stripped, "```") {
			if s.state == stateCode {
				s.flush()
			} else {
				s.flush()
				s.state = stateCode
				s.lang = strings.TrimSpace(strings.TrimPrefix(stripped, "```"))
			}
			continue
		}

		if s.state == stateCode {
			s.buf = append(s.buf, line)
			continue
		}

		if stripped == "" {
			s.flush()
			continue
		}

		if strings.HasPrefix(stripped, "- ") || strings.HasPrefix(stripped, "* ") {
			if s.state != stateList {
				s.flush()
			}
			s.state = stateList
			s.buf = append(s.buf, stripped[2:])
			continue
		}

		if strings.HasPrefix(stripped, ">") {
			if s.state != stateQuote {
				s.flush()
			}
			s.state = stateQuote
			s.buf = append(s.buf, strings.TrimPrefix(stripped[1:], " "))
			continue
		}

		if s.state == stateList || s.state == stateQuote {
			s.flush()
		}
		s.state = stateParagraph
		s.buf = append(s.buf, stripped)
	}
	// An unterminated fence still flushes whatever was captured.
	s.flush()

	return s.blocks
}

// flush emits at most one block from the accumulated buffer and
// returns the segmenter to Idle.
func (s *segmenter) flush() {
	state, buf, lang := s.state, s.buf, s.lang
	s.state = stateIdle
	s.buf = nil
	s.lang = ""

	if len(buf) == 0 {
		return
	}

	switch state {
	case stateCode:
		s.blocks = append(s.blocks, Block{Kind: BlockCode, Lines: buf, Lang: lang})
	case stateList:
		s.blocks = append(s.blocks, Block{Kind: BlockList, Items: buf})
	case stateQuote:
		// Quote lines are rejoined with blank-line separators and run
		// through the segmenter again, so a quote can hold any block
		// type, including another quote.
		s.blocks = append(s.blocks, Block{
			Kind:     BlockQuote,
			Children: SegmentBlocks(strings.Join(buf, "\n\n")),
		})
	default:
		s.blocks = append(s.blocks, classifyText(strings.Join(buf, " ")))
	}
}

// classifyText turns a flushed paragraph buffer into a heading, rule,
// or paragraph block.
func classifyText(text string) Block {
	if m := headingPattern.FindStringSubmatch(text); m != nil {
		// The rendered level is one deeper than the hash count so that
		// document headings never collide with the page's own <h1>.
		level := len(m[1]) + 1
		if level > MaxHeadingLevel {
			level = MaxHeadingLevel
		}
		return Block{Kind: BlockHeading, Level: level, Text: m[2]}
	}
	if rulePattern.MatchString(text) {
		return Block{Kind: BlockRule}
	}
	return Block{Kind: BlockParagraph, Text: text}
}
