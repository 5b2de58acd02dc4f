// Package notebody serializes the three logical note fields to and from the
// single opaque text blob stored in the CRM engagement body.
package notebody

import "strings"

const (
	titlePrefix   = "Title: "
	summaryPrefix = "Summary: "
	authorPrefix  = "Author: "
)

// Fields holds the decoded note content. Empty means "unset" for merge
// purposes.
type Fields struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Author  string `json:"author"`
}

// Encode produces the canonical three-line body blob:
//
//	Title: {title}\nSummary: {summary}\nAuthor: {author}
//
// Field values containing newlines are not escaped; Decode(Encode(f)) == f
// holds only for newline-free values.
func Encode(f Fields) string {
	return titlePrefix + f.Title + "\n" + summaryPrefix + f.Summary + "\n" + authorPrefix + f.Author
}

// Decode parses a body blob back into fields. Decoding is deliberately
// lenient: a field whose label line is absent decodes to the empty string,
// and lines matching no label are ignored. Never returns an error — the
// merge-on-empty update semantics depends on "absent field = empty string,
// not failure", so this must not be upgraded to a strict parse.
func Decode(blob string) Fields {
	var f Fields
	for _, line := range strings.Split(blob, "\n") {
		switch {
		case strings.HasPrefix(line, titlePrefix):
			f.Title = strings.TrimPrefix(line, titlePrefix)
		case strings.HasPrefix(line, summaryPrefix):
			f.Summary = strings.TrimPrefix(line, summaryPrefix)
		case strings.HasPrefix(line, authorPrefix):
			f.Author = strings.TrimPrefix(line, authorPrefix)
		}
	}
	return f
}

// Merge combines caller-supplied fields with previously stored ones. For
// each field independently the caller value wins only when non-empty; an
// explicitly empty caller field leaves the stored value unchanged, so a
// field can never be cleared through update.
func Merge(previous, supplied Fields) Fields {
	merged := previous
	if supplied.Title != "" {
		merged.Title = supplied.Title
	}
	if supplied.Summary != "" {
		merged.Summary = supplied.Summary
	}
	if supplied.Author != "" {
		merged.Author = supplied.Author
	}
	return merged
}
