package sitegen

import (
	"sort"
	"strings"
)

// categoryByType maps BibTeX entry types to publication categories.
// Unknown types fall through to "Other".
var categoryByType = map[string]string{
	"article":       "Journal Articles",
	"inproceedings": "Conference Papers",
	"proceedings":   "Conference Papers",
	"book":          "Books",
	"incollection":  "Book Chapters",
	"phdthesis":     "Theses",
	"mastersthesis": "Theses",
	"techreport":    "Technical Reports",
	"unpublished":   "Working Papers",
	"misc":          "Other",
}

// preferredCategoryOrder fixes the emission order of known categories.
// Categories outside this list follow in first-encountered order.
var preferredCategoryOrder = []string{
	"Journal Articles",
	"Conference Papers",
	"Books",
	"Book Chapters",
	"Keynotes",
	"Working Papers",
	"Technical Reports",
	"Theses",
	"Other",
}

// missingYearSentinel sorts entries without a year after all dated
// entries when ordering a category year-descending.
const missingYearSentinel = "0000"

// CategorizeEntry returns the publication category for an entry.
// A note field starting with "keynote" (case-folded) forces the
// Keynotes category regardless of type.
func CategorizeEntry(e Entry) string {
	if strings.HasPrefix(strings.ToLower(e.Fields["note"]), "keynote") {
		return "Keynotes"
	}
	if category, ok := categoryByType[e.Type]; ok {
		return category
	}
	return "Other"
}

// FormatEntry renders a single entry as one markdown citation line:
// bold authors, parenthesized year, italic title, then the first
// non-empty source field and the note, if any. Missing optional
// fields default only here, at format time.
func FormatEntry(e Entry) string {
	authors := e.Fields["author"]
	if authors == "" {
		authors = "Unknown"
	}
	authors = strings.ReplaceAll(authors, " and ", ", ")

	year := e.Fields["year"]
	if year == "" {
		year = "n.d."
	}
	title := e.Fields["title"]
	if title == "" {
		title = "Untitled"
	}

	var sb strings.Builder
	sb.WriteString("* **")
	sb.WriteString(authors)
	sb.WriteString("** (")
	sb.WriteString(year)
	sb.WriteString("). *")
	sb.WriteString(title)
	sb.WriteString("*.")

	for _, field := range []string{"journal", "booktitle", "publisher", "school", "institution"} {
		if source := e.Fields[field]; source != "" {
			sb.WriteString(" ")
			sb.WriteString(source)
			sb.WriteString(".")
			break
		}
	}

	if note := e.Fields["note"]; note != "" {
		sb.WriteString(" (")
		sb.WriteString(note)
		sb.WriteString(").")
	}

	return sb.String()
}

// FormatBibliography groups, sorts, and renders entries into a
// markdown document headed "# Publications", with one section per
// non-empty category. The result feeds straight back into the
// markdown renderer.
func FormatBibliography(entries []Entry) string {
	grouped := make(map[string][]Entry)
	var encountered []string
	for _, e := range entries {
		category := CategorizeEntry(e)
		if _, ok := grouped[category]; !ok {
			encountered = append(encountered, category)
		}
		grouped[category] = append(grouped[category], e)
	}

	var sb strings.Builder
	sb.WriteString("# Publications\n\n")

	emit := func(category string) {
		list := grouped[category]
		sortByYearDesc(list)
		sb.WriteString("## ")
		sb.WriteString(category)
		sb.WriteString("\n\n")
		for _, e := range list {
			sb.WriteString(FormatEntry(e))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	emitted := make(map[string]bool)
	for _, category := range preferredCategoryOrder {
		if _, ok := grouped[category]; ok {
			emit(category)
			emitted[category] = true
		}
	}
	for _, category := range encountered {
		if !emitted[category] {
			emit(category)
		}
	}

	return sb.String()
}

// sortByYearDesc orders a category's entries newest first, keeping
// input order for equal years. Entries without a year sort last.
func sortByYearDesc(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return sortYear(entries[i]) > sortYear(entries[j])
	})
}

func sortYear(e Entry) string {
	if year := e.Fields["year"]; year != "" {
		return year
	}
	return missingYearSentinel
}
