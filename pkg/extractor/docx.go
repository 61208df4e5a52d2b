package extractor

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	paragraphEnd = regexp.MustCompile(`</w:p>`)
	runTab       = regexp.MustCompile(`<w:tab/>`)
	runBreak     = regexp.MustCompile(`<w:br[^>]*/>`)
	anyTag       = regexp.MustCompile(`<[^>]+>`)
)

func extractDOCX(content []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", &Error{Format: FormatDOCX, Stage: "open", Err: err}
	}
	defer doc.Close()

	return plainText(doc.Editable().GetContent()), nil
}

// plainText drops WordprocessingML formatting, keeping paragraph breaks and tabs.
func plainText(wordML string) string {
	s := paragraphEnd.ReplaceAllString(wordML, "\n")
	s = runTab.ReplaceAllString(s, "\t")
	s = runBreak.ReplaceAllString(s, "\n")
	s = anyTag.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}
