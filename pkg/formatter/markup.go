// Package formatter turns the small Markdown subset the model is asked to use
// into inline markup that the browser inserts as-is.
//
// The output is not sanitised. Model replies are trusted.
package formatter

import "regexp"

var (
	// A heading runs to the next line terminator; \r ends it too, so CRLF
	// replies do not carry the \r inside the bold tag.
	headingPattern = regexp.MustCompile(`#{1,6}\s*([^\r\n\x{2028}\x{2029}]*)`)
	newlinePattern = regexp.MustCompile(`\n`)
	boldPattern    = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicPattern  = regexp.MustCompile(`\*(.*?)\*`)
)

// Format applies the rules in a fixed order. Headings are line anchored, so they
// must run before newlines are replaced, and both must run before emphasis so that
// markers inside converted headings are handled exactly once.
func Format(raw string) string {
	out := headingPattern.ReplaceAllString(raw, "<b>$1</b>")
	out = newlinePattern.ReplaceAllString(out, "<br>")
	out = boldPattern.ReplaceAllString(out, "<b>$1</b>")
	out = italicPattern.ReplaceAllString(out, "<i>$1</i>")
	return out
}
