package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// wordGap is the TJ displacement, in thousandths of an em, from which a gap
// between two fragments reads as a word break. Kerning stays well below it.
const wordGap = 200

// extractPDF reads the text layer page by page. Each text-showing operator
// yields one item; items on a page are joined with a single space, pages with
// a newline. The pdf package panics on some malformed streams; those panics
// are reported as a failure of the stage that was running.
func extractPDF(content []byte) (text string, err error) {
	stage := "open"
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &Error{Format: FormatPDF, Stage: stage, Err: fmt.Errorf("%v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", &Error{Format: FormatPDF, Stage: stage, Err: err}
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		stage = fmt.Sprintf("page %d", i)
		pages = append(pages, joinItems(pageItems(reader.Page(i))))
	}

	return joinPages(pages), nil
}

type rawEncoding struct{}

func (rawEncoding) Decode(raw string) string { return raw }

// pageItems walks the content stream in drawing order. Unlike the row API of
// the pdf package, a kerned TJ array stays one item and positioning operators
// produce nothing.
func pageItems(page pdf.Page) []string {
	if page.V.IsNull() {
		return nil
	}
	contents := page.V.Key("Contents")
	if contents.Kind() == pdf.Null {
		return nil
	}

	encodings := make(map[string]pdf.TextEncoding)
	for _, name := range page.Fonts() {
		encodings[name] = page.Font(name).Encoder()
	}

	var enc pdf.TextEncoding = rawEncoding{}
	var items []string
	add := func(s string) {
		if strings.TrimSpace(s) != "" {
			items = append(items, s)
		}
	}

	pdf.Interpret(contents, func(stk *pdf.Stack, op string) {
		args := make([]pdf.Value, stk.Len())
		for i := len(args) - 1; i >= 0; i-- {
			args[i] = stk.Pop()
		}
		if len(args) == 0 {
			return
		}
		last := args[len(args)-1]

		switch op {
		case "Tf":
			if e, ok := encodings[args[0].Name()]; ok && e != nil {
				enc = e
			} else {
				enc = rawEncoding{}
			}
		case "Tj", "'", "\"":
			add(enc.Decode(last.RawString()))
		case "TJ":
			add(decodeTJ(enc, last))
		}
	})

	return items
}

// decodeTJ concatenates the strings of a TJ array. Negative numbers move the
// pen right; one at or beyond wordGap becomes a space.
func decodeTJ(enc pdf.TextEncoding, array pdf.Value) string {
	var b strings.Builder
	for i := 0; i < array.Len(); i++ {
		v := array.Index(i)
		switch v.Kind() {
		case pdf.String:
			b.WriteString(enc.Decode(v.RawString()))
		case pdf.Integer, pdf.Real:
			if -v.Float64() >= wordGap && b.Len() > 0 && !strings.HasSuffix(b.String(), " ") {
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}

func joinItems(items []string) string {
	return strings.Join(items, " ")
}

func joinPages(pages []string) string {
	return strings.Join(pages, "\n")
}
